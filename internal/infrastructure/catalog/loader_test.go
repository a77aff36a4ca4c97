package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "products.json", `[
		{"name": "Ring A", "popularityScore": 0.85, "weight": 2.1,
		 "images": {"yellow": "a-y.jpg", "rose": "a-r.jpg"}},
		{"id": 7, "name": "Ring B", "popularityScore": 0.5, "weight": 3.4}
	]`)

	items, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, "Ring A", items[0].Name)
	assert.Equal(t, 2.1, items[0].Weight)
	assert.Equal(t, "a-r.jpg", items[0].Images["rose"])

	assert.Equal(t, 7, items[1].ID)
	assert.NotNil(t, items[1].Images)
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "products.yaml", `
- name: Ring A
  popularityScore: 0.85
  weight: 2.1
  images:
    white: a-w.jpg
- name: Ring B
  popularityScore: 0.2
  weight: 1.5
`)

	items, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[1].ID)
	assert.Equal(t, "a-w.jpg", items[0].Images["white"])
	assert.Equal(t, 0.2, items[1].PopularityScore)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{name: "empty list", file: "p.json", content: `[]`, wantErr: ErrEmptyCatalog},
		{name: "missing name", file: "p.json", content: `[{"weight": 1, "popularityScore": 0.1}]`, wantErr: ErrInvalidItem},
		{name: "zero weight", file: "p.json", content: `[{"name": "x", "weight": 0, "popularityScore": 0.1}]`, wantErr: ErrInvalidItem},
		{name: "popularity out of range", file: "p.json", content: `[{"name": "x", "weight": 1, "popularityScore": 1.5}]`, wantErr: ErrInvalidItem},
		{name: "unknown extension", file: "p.toml", content: `x = 1`, wantErr: ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	_, err := LoadFile(writeFile(t, "p.json", `[{"name": `))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_ShippedCatalog(t *testing.T) {
	items, err := LoadFile(filepath.Join("..", "..", "..", "configs", "products.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, items)
}
