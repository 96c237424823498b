package mesh

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Stats summarizes the structure of a mesh.
type Stats struct {
	Points       int
	Cells        int
	Referenced   uint64 // distinct points referenced by at least one cell
	Unreferenced uint64 // points no cell references
}

// Stats computes structural statistics. Unreferenced points are legal but
// usually indicate an extraction or numbering problem upstream; the writer
// logs a warning when it sees them.
func (m *Mesh) Stats() Stats {
	bm := roaring64.New()
	bm.AddMany(m.connectivity)
	referenced := bm.GetCardinality()

	return Stats{
		Points:       m.NumPoints(),
		Cells:        m.NumCells(),
		Referenced:   referenced,
		Unreferenced: uint64(m.NumPoints()) - referenced,
	}
}
