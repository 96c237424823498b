package mesh

import "fmt"

// CellType identifies the element type of a cell. The numeric wire codes
// follow the VTK convention used by XDMF mixed topologies.
type CellType int

const (
	Vertex CellType = iota
	Edge
	Triangle
	Quadrilateral
	Tetrahedron
	Pyramid
	Wedge
	Hexahedron
	Edge3
	Quadrilateral9
	Triangle6
	Quadrilateral8
	Tetrahedron10
	Pyramid13
	Wedge15
	Wedge18
	Hexahedron20
	Hexahedron24
	Hexahedron27
)

// cellInfo holds the per-type constants. Indexed by CellType.
var cellInfo = [...]struct {
	name  string
	nodes int
	vtk   uint64
}{
	Vertex:         {"Vertex", 1, 1},
	Edge:           {"Edge", 2, 2},
	Triangle:       {"Triangle", 3, 4},
	Quadrilateral:  {"Quadrilateral", 4, 5},
	Tetrahedron:    {"Tetrahedron", 4, 6},
	Pyramid:        {"Pyramid", 5, 7},
	Wedge:          {"Wedge", 6, 8},
	Hexahedron:     {"Hexahedron", 8, 9},
	Edge3:          {"Edge3", 3, 34},
	Quadrilateral9: {"Quadrilateral9", 9, 35},
	Triangle6:      {"Triangle6", 6, 36},
	Quadrilateral8: {"Quadrilateral8", 8, 37},
	Tetrahedron10:  {"Tetrahedron10", 10, 38},
	Pyramid13:      {"Pyramid13", 13, 39},
	Wedge15:        {"Wedge15", 15, 40},
	Wedge18:        {"Wedge18", 18, 41},
	Hexahedron20:   {"Hexahedron20", 20, 48},
	Hexahedron24:   {"Hexahedron24", 24, 49},
	Hexahedron27:   {"Hexahedron27", 27, 50},
}

func (c CellType) valid() bool {
	return c >= Vertex && int(c) < len(cellInfo)
}

// NodeCount returns the number of nodes a cell of this type connects.
func (c CellType) NodeCount() int {
	if !c.valid() {
		return 0
	}
	return cellInfo[c].nodes
}

// VTKCode returns the VTK type code written into mixed topology streams.
func (c CellType) VTKCode() uint64 {
	if !c.valid() {
		return 0
	}
	return cellInfo[c].vtk
}

func (c CellType) String() string {
	if !c.valid() {
		return fmt.Sprintf("CellType(%d)", int(c))
	}
	return cellInfo[c].name
}

// polyCount reports whether the encoded form carries an explicit node count
// after the type code. VTK treats Vertex and Edge as POLYVERTEX/POLYLINE,
// which are variable-sized and need the count.
func (c CellType) polyCount() bool {
	return c == Vertex || c == Edge
}

// encodedSize is the number of uint64 values one cell contributes to the
// mixed topology stream: code, optional count, then the node indices.
func (c CellType) encodedSize() int {
	n := 1 + c.NodeCount()
	if c.polyCount() {
		n++
	}
	return n
}
