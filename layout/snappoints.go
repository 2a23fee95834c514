package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Design space all layout coordinates live in.
const (
	DesignWidth  = 800.0
	DesignHeight = 350.0
)

// Point is a coordinate, either in design space or in pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// DefaultSnapPoints is used for any bracelet without its own table.
var DefaultSnapPoints = []Point{
	{40, 110}, {100, 135}, {160, 155}, {220, 172}, {280, 185}, {340, 194}, {400, 198},
	{460, 194}, {520, 185}, {580, 172}, {640, 155}, {700, 135}, {760, 110},
}

// SnapTable maps bracelet ids to their custom snap points.
type SnapTable struct {
	custom map[uint][]Point
}

// NewSnapTable builds a table from custom per-bracelet entries. Entries are copied.
func NewSnapTable(custom map[uint][]Point) *SnapTable {
	t := &SnapTable{custom: make(map[uint][]Point, len(custom))}
	for id, pts := range custom {
		t.custom[id] = append([]Point(nil), pts...)
	}
	return t
}

// ForBracelet returns the custom points for a bracelet, or nil when it has none.
func (t *SnapTable) ForBracelet(braceletID uint) []Point {
	if t == nil {
		return nil
	}
	pts, ok := t.custom[braceletID]
	if !ok {
		return nil
	}
	return append([]Point(nil), pts...)
}

// Resolve is ForBracelet with the default table as fallback.
func (t *SnapTable) Resolve(braceletID uint) []Point {
	if pts := t.ForBracelet(braceletID); pts != nil {
		return pts
	}
	return append([]Point(nil), DefaultSnapPoints...)
}

type snapFile struct {
	Bracelets []struct {
		ID     uint    `yaml:"id"`
		Points []Point `yaml:"points"`
	} `yaml:"bracelets"`
}

// LoadSnapTable reads custom tables from a YAML file of the form
//
//	bracelets:
//	  - id: 3
//	    points: [{x: 100, y: 140}, ...]
func LoadSnapTable(path string) (*SnapTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snap points: %w", err)
	}
	return ParseSnapTable(data)
}

// ParseSnapTable decodes and validates the YAML form accepted by LoadSnapTable.
func ParseSnapTable(data []byte) (*SnapTable, error) {
	var f snapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse snap points: %w", err)
	}
	custom := make(map[uint][]Point, len(f.Bracelets))
	for _, b := range f.Bracelets {
		if len(b.Points) == 0 {
			return nil, fmt.Errorf("bracelet %d: empty snap point list", b.ID)
		}
		for i, p := range b.Points {
			if p.X < 0 || p.X > DesignWidth || p.Y < 0 || p.Y > DesignHeight {
				return nil, fmt.Errorf("bracelet %d: point %d (%v,%v) outside design space", b.ID, i, p.X, p.Y)
			}
		}
		if _, dup := custom[b.ID]; dup {
			return nil, fmt.Errorf("bracelet %d listed twice", b.ID)
		}
		custom[b.ID] = b.Points
	}
	return NewSnapTable(custom), nil
}
