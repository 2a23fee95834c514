package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableHasThirteenPoints(t *testing.T) {
	assert.Len(t, DefaultSnapPoints, 13)
}

func TestSnapTableFallback(t *testing.T) {
	table := NewSnapTable(map[uint][]Point{7: {{10, 20}}})

	assert.Equal(t, []Point{{10, 20}}, table.ForBracelet(7))
	assert.Nil(t, table.ForBracelet(8))
	assert.Equal(t, DefaultSnapPoints, table.Resolve(8))

	var nilTable *SnapTable
	assert.Nil(t, nilTable.ForBracelet(1))
	assert.Len(t, nilTable.Resolve(1), 13)
}

func TestLoadSnapTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.yaml")
	body := `
bracelets:
  - id: 2
    points:
      - {x: 100, y: 140}
      - {x: 320, y: 200}
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	table, err := LoadSnapTable(path)
	require.NoError(t, err)
	assert.Equal(t, []Point{{100, 140}, {320, 200}}, table.ForBracelet(2))
}

func TestParseSnapTableRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty list", "bracelets:\n  - id: 1\n    points: []\n"},
		{"outside design space", "bracelets:\n  - id: 1\n    points: [{x: 900, y: 10}]\n"},
		{"duplicate id", "bracelets:\n  - id: 1\n    points: [{x: 1, y: 1}]\n  - id: 1\n    points: [{x: 2, y: 2}]\n"},
		{"not yaml", "bracelets: [:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnapTable([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}
