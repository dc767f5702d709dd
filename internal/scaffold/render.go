package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

const templateExt = ".tmpl"

//go:embed templates
var templateFS embed.FS

// render executes the embedded template at name and formats the result
// with goimports when outPath is a Go file.
func render(name, outPath string, data any) ([]byte, error) {
	raw, err := templateFS.ReadFile(path.Join("templates", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	if !strings.HasSuffix(outPath, ".go") {
		return buf.Bytes(), nil
	}

	formatted, err := imports.Process(outPath, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to format %s: %w", outPath, err)
	}

	return formatted, nil
}

// renderTree renders every template under root, keeping the relative layout
// and dropping the .tmpl extension.
func renderTree(root string, data any) ([]File, error) {
	base := path.Join("templates", root)

	var files []File

	err := fs.WalkDir(templateFS, base, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !strings.HasSuffix(p, templateExt) {
			return nil
		}

		rel := strings.TrimPrefix(p, base+"/")
		out := strings.TrimSuffix(rel, templateExt)

		content, err := render(path.Join(root, rel), out, data)
		if err != nil {
			return err
		}

		files = append(files, File{Path: out, Content: content})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", root, err)
	}

	return files, nil
}
