package dto

import (
	"fmt"
	"strings"
)

// Filter matches rows whose column equals Value. Table qualifies the column
// when set.
type Filter struct {
	Field string
	Value any
	Table string
}

func (f Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

// FilterGroup is a conjunction of filters. The zero value matches every row.
type FilterGroup struct {
	Filters []Filter
}

// GetWhereClause renders the group as a parenthesised condition with named
// parameters, e.g. "(tasks.id = :id)". It returns "" for an empty group.
func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := make(map[string]any, len(f.Filters))
	conditions := make([]string, 0, len(f.Filters))

	for _, filter := range f.Filters {
		if filter.Field == "" {
			continue
		}

		name := filter.Field
		if _, taken := args[name]; taken {
			name = fmt.Sprintf("%s_%d", filter.Field, len(args))
		}

		args[name] = filter.Value
		conditions = append(conditions, fmt.Sprintf("%s = :%s", filter.column(), name))
	}

	if len(conditions) == 0 {
		return "", args
	}

	return "(" + strings.Join(conditions, " AND ") + ")", args
}
