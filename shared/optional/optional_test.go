package optional_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiba166-shaikh/AI-400-task-manager/shared/optional"
)

type patch struct {
	Title       optional.Field[string] `json:"title"`
	Description optional.Field[string] `json:"description"`
	Completed   optional.Field[bool]   `json:"completed"`
}

func TestField_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		validate func(t *testing.T, p patch)
	}{
		{
			name: "absent fields stay unset",
			body: `{}`,
			validate: func(t *testing.T, p patch) {
				assert.False(t, p.Title.Set)
				assert.False(t, p.Description.Set)
				assert.False(t, p.Completed.Set)
			},
		},
		{
			name: "explicit null is set and null",
			body: `{"description": null}`,
			validate: func(t *testing.T, p patch) {
				assert.True(t, p.Description.Set)
				assert.True(t, p.Description.Null)
				assert.Nil(t, p.Description.Ptr())
				assert.Nil(t, p.Description.Any())
				assert.False(t, p.Title.Set)
			},
		},
		{
			name: "values are set",
			body: `{"title": "Walk the dog", "completed": false}`,
			validate: func(t *testing.T, p patch) {
				assert.True(t, p.Title.Set)
				assert.False(t, p.Title.Null)
				assert.Equal(t, "Walk the dog", p.Title.Value)
				assert.True(t, p.Completed.Set)
				assert.False(t, p.Completed.Value)
				require.NotNil(t, p.Completed.Ptr())
				assert.Equal(t, false, p.Completed.Any())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p patch

			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			tt.validate(t, p)
		})
	}
}

func TestField_UnmarshalJSON_TypeMismatch(t *testing.T) {
	var p patch

	err := json.Unmarshal([]byte(`{"completed": "yes"}`), &p)
	assert.Error(t, err)
}

func TestField_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(patch{
		Title:       optional.Of("Buy groceries"),
		Description: optional.Null[string](),
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Buy groceries","description":null,"completed":null}`, string(out))
}
