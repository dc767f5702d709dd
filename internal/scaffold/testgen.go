package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
)

const (
	testingPkg = "testing"
	assertPkg  = "github.com/stretchr/testify/assert"
)

// TestTargets are the exported top-level names of one Go file.
type TestTargets struct {
	Package   string
	Functions []string
	Types     []string
	Generic   map[string]bool // types declared with type parameters
}

// ParseTargets collects exported functions and types declared at the top
// level of source. Methods and unexported names are skipped.
func ParseTargets(source string) (TestTargets, error) {
	if !strings.HasSuffix(source, ".go") {
		return TestTargets{}, fmt.Errorf("%w: %s", ErrNotGoSource, source)
	}

	if _, err := os.Stat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return TestTargets{}, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
		}

		return TestTargets{}, fmt.Errorf("failed to stat %s: %w", source, err)
	}

	file, err := parser.ParseFile(token.NewFileSet(), source, nil, parser.SkipObjectResolution)
	if err != nil {
		return TestTargets{}, fmt.Errorf("failed to parse %s: %w", source, err)
	}

	targets := TestTargets{
		Package: file.Name.Name,
		Generic: map[string]bool{},
	}

	for _, decl := range file.Decls {
		switch decl := decl.(type) {
		case *ast.FuncDecl:
			if decl.Recv != nil || !decl.Name.IsExported() {
				continue
			}

			targets.Functions = append(targets.Functions, decl.Name.Name)
		case *ast.GenDecl:
			if decl.Tok != token.TYPE {
				continue
			}

			for _, spec := range decl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok || !typeSpec.Name.IsExported() {
					continue
				}

				targets.Types = append(targets.Types, typeSpec.Name.Name)
				targets.Generic[typeSpec.Name.Name] = typeSpec.TypeParams != nil
			}
		}
	}

	return targets, nil
}

// DefaultTestPath is foo.go -> foo_test.go in the same directory.
func DefaultTestPath(source string) string {
	return strings.TrimSuffix(source, ".go") + "_test.go"
}

// TestSkeleton renders a testify test file for source. The returned File's
// Path is output, or the default test path when output is empty.
func TestSkeleton(source, output string) (File, error) {
	targets, err := ParseTargets(source)
	if err != nil {
		return File{}, err
	}

	if output == "" {
		output = DefaultTestPath(source)
	}

	f := jen.NewFile(targets.Package)
	f.HeaderComment(fmt.Sprintf("Tests for %s.", filepath.Base(source)))

	if len(targets.Functions)+len(targets.Types) == 0 {
		f.Comment("No exported functions or types found.")
	}

	for _, name := range targets.Functions {
		f.Add(functionTest(name))
		f.Line()
	}

	for _, name := range targets.Types {
		f.Add(typeTest(name, targets.Generic[name]))
		f.Line()
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return File{}, fmt.Errorf("failed to render tests for %s: %w", source, err)
	}

	return File{Path: output, Content: buf.Bytes()}, nil
}

func testingT() *jen.Statement {
	return jen.Id("t").Op("*").Qual(testingPkg, "T")
}

// functionTest is a table-driven skeleton that skips until filled in.
func functionTest(name string) jen.Code {
	return jen.Func().Id("Test"+name).Params(testingT()).Block(
		jen.Id("tests").Op(":=").Index().Struct(
			jen.Id("name").String(),
		).Values(
			jen.Values(jen.Dict{jen.Id("name"): jen.Lit("TODO")}),
		),
		jen.Line(),
		jen.For(jen.List(jen.Id("_"), jen.Id("tt")).Op(":=").Range().Id("tests")).Block(
			jen.Id("t").Dot("Run").Call(
				jen.Id("tt").Dot("name"),
				jen.Func().Params(testingT()).Block(
					jen.Comment(fmt.Sprintf("Arrange, call %s, then assert on the result.", name)),
					jen.Id("t").Dot("Skip").Call(jen.Lit("not implemented")),
				),
			),
		),
	)
}

func typeTest(name string, generic bool) jen.Code {
	if generic {
		return jen.Func().Id("Test"+name).Params(testingT()).Block(
			jen.Comment(fmt.Sprintf("Instantiate %s with concrete type arguments.", name)),
			jen.Id("t").Dot("Skip").Call(jen.Lit("not implemented")),
		)
	}

	return jen.Func().Id("Test"+name).Params(testingT()).Block(
		jen.Var().Id("subject").Id(name),
		jen.Line(),
		jen.Qual(assertPkg, "NotNil").Call(jen.Id("t"), jen.Op("&").Id("subject")),
	)
}
