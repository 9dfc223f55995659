package publish

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		change  Change
		wantErr error
	}{
		{"create without id", Change{Type: EntitySlider, Action: ActionCreate}, nil},
		{"update", Change{ID: "1", Type: EntityPost, Action: ActionUpdate}, nil},
		{"update without id", Change{Type: EntityPost, Action: ActionUpdate}, ErrMissingID},
		{"bad type", Change{ID: "1", Type: "product", Action: ActionUpdate}, ErrUnknownType},
		{"bad action", Change{ID: "1", Type: EntitySection, Action: "archive"}, ErrUnknownAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.change.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadAndSaveChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "changes.json")

	changes, err := LoadChanges(path)
	require.NoError(t, err)
	assert.Empty(t, changes)

	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":"3","type":"section","action":"update","data":{"title":"Nuevo"},"timestamp":"2024-02-01T10:00:00Z"},
		{"id":"tmp-1","type":"post","action":"create","data":{"title":"Hola"},"timestamp":"2024-02-01T10:01:00Z"}
	]`), 0o644))

	changes, err = LoadChanges(path)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, EntitySection, changes[0].Type)
	assert.Equal(t, "Nuevo", changes[0].Data["title"])

	require.NoError(t, SaveChanges(path, nil))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"1","type":"banner","action":"update"}]`), 0o644))
	_, err = LoadChanges(path)
	assert.ErrorIs(t, err, ErrUnknownType)
}
