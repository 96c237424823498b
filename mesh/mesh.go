// Package mesh models unstructured simulation meshes: flat XYZ point
// coordinates, a list of typed cells, and the connectivity stream joining
// them. Validation happens at construction, so a *Mesh in hand is always
// structurally sound.
package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPoints is returned when a mesh is constructed without points.
	ErrNoPoints = errors.New("at least one point is required")

	// ErrNoCells is returned when a mesh is constructed without cells.
	ErrNoCells = errors.New("at least one cell is required")

	// ErrPointDimensions is returned when the flat coordinate slice is not a
	// multiple of three.
	ErrPointDimensions = errors.New("points must have 3 dimensions")
)

// ErrIndexOutOfBounds indicates a connectivity index referencing a point
// beyond the mesh.
type ErrIndexOutOfBounds struct {
	MaxIndex  uint64
	NumPoints int
}

func (e *ErrIndexOutOfBounds) Error() string {
	return fmt.Sprintf("connectivity indices out of bounds for the given points, max index: %d, but number of points is %d", e.MaxIndex, e.NumPoints)
}

// ErrConnectivitySize indicates a connectivity stream whose length does not
// match the node counts of the declared cells.
type ErrConnectivitySize struct {
	Got  int
	Want int
}

func (e *ErrConnectivitySize) Error() string {
	return fmt.Sprintf("size of connectivities not match the expected number based on the cell types: %d != %d", e.Got, e.Want)
}

// ErrUnknownCellType indicates a cell type outside the supported set.
type ErrUnknownCellType struct {
	Type CellType
}

func (e *ErrUnknownCellType) Error() string {
	return fmt.Sprintf("unknown cell type: %d", int(e.Type))
}

// Mesh is a validated unstructured mesh.
type Mesh struct {
	points       []float64 // flat XYZ triples
	cells        []CellType
	connectivity []uint64
	encodedLen   int
}

// New validates points, cells, and connectivity and returns a Mesh.
//
// points is a flat slice of XYZ triples; cells declares the type of each
// cell; connectivity concatenates the point indices of every cell in order.
// Validation checks, in order: non-empty points and cells, the coordinate
// stride, known cell types, the connectivity length implied by the cell
// types, and index bounds.
func New(points []float64, cells []CellType, connectivity []uint64) (*Mesh, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	if len(points)%3 != 0 {
		return nil, ErrPointDimensions
	}
	if len(cells) == 0 {
		return nil, ErrNoCells
	}

	wantConn := 0
	encodedLen := 0
	for _, c := range cells {
		if !c.valid() {
			return nil, &ErrUnknownCellType{Type: c}
		}
		wantConn += c.NodeCount()
		encodedLen += c.encodedSize()
	}
	if len(connectivity) != wantConn {
		return nil, &ErrConnectivitySize{Got: len(connectivity), Want: wantConn}
	}

	numPoints := len(points) / 3
	var maxIndex uint64
	for _, idx := range connectivity {
		if idx > maxIndex {
			maxIndex = idx
		}
	}
	if maxIndex >= uint64(numPoints) {
		return nil, &ErrIndexOutOfBounds{MaxIndex: maxIndex, NumPoints: numPoints}
	}

	return &Mesh{
		points:       points,
		cells:        cells,
		connectivity: connectivity,
		encodedLen:   encodedLen,
	}, nil
}

// NumPoints returns the number of points.
func (m *Mesh) NumPoints() int { return len(m.points) / 3 }

// NumCells returns the number of cells.
func (m *Mesh) NumCells() int { return len(m.cells) }

// Points returns the flat XYZ coordinate slice.
func (m *Mesh) Points() []float64 { return m.points }

// Cells returns the cell type list.
func (m *Mesh) Cells() []CellType { return m.cells }

// Connectivity returns the raw connectivity stream.
func (m *Mesh) Connectivity() []uint64 { return m.connectivity }

// EncodedLen returns the length of the mixed topology stream produced by
// EncodedConnectivity.
func (m *Mesh) EncodedLen() int { return m.encodedLen }

// EncodedConnectivity returns the XDMF mixed topology stream: per cell the
// VTK type code, a node count for the variable-sized poly types (Vertex,
// Edge), then the point indices.
func (m *Mesh) EncodedConnectivity() []uint64 {
	out := make([]uint64, 0, m.encodedLen)
	off := 0
	for _, c := range m.cells {
		out = append(out, c.VTKCode())
		n := c.NodeCount()
		if c.polyCount() {
			out = append(out, uint64(n))
		}
		out = append(out, m.connectivity[off:off+n]...)
		off += n
	}
	return out
}
