package raster

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MemorySource serves a grid and optional fields held in memory.
type MemorySource struct {
	grid   *Grid
	fields map[string]*mat.Dense
}

// NewMemorySource wraps a grid with no fields.
func NewMemorySource(g *Grid) *MemorySource {
	return &MemorySource{grid: g, fields: make(map[string]*mat.Dense)}
}

// SetField adds or replaces a named field; its shape must match the grid.
func (s *MemorySource) SetField(name string, values *mat.Dense) error {
	rows, cols := s.grid.Dims()
	r, c := values.Dims()
	if r != rows || c != cols {
		return fmt.Errorf("field %s is %dx%d, grid is %dx%d", name, r, c, rows, cols)
	}
	s.fields[name] = values
	return nil
}

// Grid returns the validated grid.
func (s *MemorySource) Grid() (*Grid, error) {
	if err := s.grid.Validate(); err != nil {
		return nil, err
	}
	return s.grid, nil
}

// Field returns a named field.
func (s *MemorySource) Field(name string) (*mat.Dense, error) {
	f, ok := s.fields[name]
	if !ok {
		return nil, fmt.Errorf("variable %s not found", name)
	}
	return f, nil
}

// Close is a no-op.
func (s *MemorySource) Close() error {
	return nil
}
