package scaffold

import "fmt"

var crudLayout = []struct {
	template string
	path     string
}{
	{template: "crud/model.go.tmpl", path: "internal/domains/%s/model/model.go"},
	{template: "crud/dto.go.tmpl", path: "internal/domains/%s/model/dto/dto.go"},
	{template: "crud/repository.go.tmpl", path: "internal/domains/%s/repository/repository.go"},
	{template: "crud/service.go.tmpl", path: "internal/domains/%s/service/service.go"},
	{template: "crud/handler.go.tmpl", path: "internal/handlers/%s/handler.go"},
}

// CRUD renders the model, request/response shapes, repository, service and
// chi handler for res, laid out the way the task domain is.
func CRUD(res Resource) ([]File, error) {
	files := make([]File, 0, len(crudLayout))

	for _, entry := range crudLayout {
		out := fmt.Sprintf(entry.path, res.Package)

		content, err := render(entry.template, out, res)
		if err != nil {
			return nil, err
		}

		files = append(files, File{Path: out, Content: content})
	}

	return files, nil
}
