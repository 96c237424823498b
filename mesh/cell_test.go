package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellType(t *testing.T) {
	tests := []struct {
		cell  CellType
		name  string
		nodes int
		vtk   uint64
	}{
		{Vertex, "Vertex", 1, 1},
		{Edge, "Edge", 2, 2},
		{Triangle, "Triangle", 3, 4},
		{Quadrilateral, "Quadrilateral", 4, 5},
		{Tetrahedron, "Tetrahedron", 4, 6},
		{Pyramid, "Pyramid", 5, 7},
		{Wedge, "Wedge", 6, 8},
		{Hexahedron, "Hexahedron", 8, 9},
		{Edge3, "Edge3", 3, 34},
		{Quadrilateral9, "Quadrilateral9", 9, 35},
		{Triangle6, "Triangle6", 6, 36},
		{Quadrilateral8, "Quadrilateral8", 8, 37},
		{Tetrahedron10, "Tetrahedron10", 10, 38},
		{Pyramid13, "Pyramid13", 13, 39},
		{Wedge15, "Wedge15", 15, 40},
		{Wedge18, "Wedge18", 18, 41},
		{Hexahedron20, "Hexahedron20", 20, 48},
		{Hexahedron24, "Hexahedron24", 24, 49},
		{Hexahedron27, "Hexahedron27", 27, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.cell.String())
			assert.Equal(t, tt.nodes, tt.cell.NodeCount())
			assert.Equal(t, tt.vtk, tt.cell.VTKCode())
		})
	}
}

func TestCellTypeInvalid(t *testing.T) {
	c := CellType(99)
	assert.Equal(t, "CellType(99)", c.String())
	assert.Equal(t, 0, c.NodeCount())
	assert.Equal(t, uint64(0), c.VTKCode())
}
