package scaffold

import (
	"fmt"
	"sort"
)

// projectTitles maps each starter template to the title its server announces.
var projectTitles = map[string]string{
	"hello":   "Hello World API",
	"crud":    "Item CRUD API",
	"modular": "Modular Item API",
}

type projectData struct {
	Name   string
	Module string
}

// ProjectKinds lists the starter templates Project accepts.
func ProjectKinds() []string {
	kinds := make([]string, 0, len(projectTitles))
	for kind := range projectTitles {
		kinds = append(kinds, kind)
	}

	sort.Strings(kinds)

	return kinds
}

// Project renders the starter project kind with module as its module path.
func Project(kind, module string) ([]File, error) {
	title, ok := projectTitles[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProject, kind)
	}

	return renderTree("new/"+kind, projectData{Name: title, Module: module})
}
