// Package scaffold renders boilerplate for new resources, test skeletons,
// migrations and starter projects. Output is text for a developer to review;
// nothing generated here is compiled or executed.
package scaffold

import (
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/laiba166-shaikh/AI-400-task-manager/shared/validator"
)

// DefaultModule is the import path generated code refers to when none is given.
const DefaultModule = "github.com/laiba166-shaikh/AI-400-task-manager"

// Resource is every spelling of a resource name the templates need.
//
//	UserProfile -> Package userprofile, Var userProfile, Table user_profiles, Path /user-profiles
type Resource struct {
	Name      string
	Var       string
	Package   string
	Snake     string
	Plural    string
	PluralVar string
	Table     string
	Path      string
	Human     string
	Module    string
}

type resourceName struct {
	Name string `json:"resource" validate:"required,pascalcase"`
}

// NewResource validates name (PascalCase, letters only) and derives its spellings.
func NewResource(name, module string) (Resource, error) {
	if err := validator.ValidateStruct(&resourceName{Name: name}); err != nil {
		return Resource{}, ErrInvalidResourceName
	}

	if module == "" {
		module = DefaultModule
	}

	plural := inflect.Pluralize(name)
	snakePlural := inflect.Underscore(plural)

	return Resource{
		Name:      name,
		Var:       inflect.CamelizeDownFirst(name),
		Package:   strings.ToLower(name),
		Snake:     inflect.Underscore(name),
		Plural:    plural,
		PluralVar: inflect.CamelizeDownFirst(plural),
		Table:     snakePlural,
		Path:      "/" + strings.ReplaceAll(snakePlural, "_", "-"),
		Human:     strings.ToLower(inflect.Humanize(inflect.Underscore(name))),
		Module:    strings.TrimSuffix(module, "/"),
	}, nil
}
