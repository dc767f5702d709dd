package shared

import (
	"fmt"
	"strings"

	"github.com/laiba166-shaikh/AI-400-task-manager/shared/dto"
)

// BuildCacheKey joins the parts with ":", e.g. BuildCacheKey("task", 1) == "task:1".
func BuildCacheKey(parts ...any) string {
	keys := make([]string, 0, len(parts))

	for _, part := range parts {
		keys = append(keys, fmt.Sprint(part))
	}

	return strings.Join(keys, ":")
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []dto.Filter{{Field: fieldID, Value: id, Table: table}},
	}
}
