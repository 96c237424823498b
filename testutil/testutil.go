package testutil

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/hupe1980/xdmfgo/attribute"
	"github.com/hupe1980/xdmfgo/mesh"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Points generates n random points in the unit cube as flat XYZ triples.
func (r *RNG) Points(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]float64, 3*n)
	for i := range points {
		points[i] = r.rand.Float64()
	}

	return points
}

// Field generates a field of the given kind with one value tuple per
// entity, filled with uniform values in [0, 1).
func (r *RNG) Field(name string, kind attribute.Kind, entities int) attribute.Field {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make(attribute.F64, entities*kind.Size())
	for i := range values {
		values[i] = r.rand.Float64()
	}

	return attribute.Field{
		Name:   name,
		Kind:   kind,
		Values: values,
	}
}

// ScalarField generates a scalar field with one value per entity.
func (r *RNG) ScalarField(name string, entities int) attribute.Field {
	return r.Field(name, attribute.Scalar(), entities)
}

// VectorField generates a vector field with three values per entity.
func (r *RNG) VectorField(name string, entities int) attribute.Field {
	return r.Field(name, attribute.Vector(), entities)
}

// GridMesh builds a structured nx by ny quadrilateral grid on the z=0
// plane with unit spacing: (nx+1)*(ny+1) points and nx*ny cells.
func GridMesh(nx, ny int) (*mesh.Mesh, error) {
	points := make([]float64, 0, 3*(nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			points = append(points, float64(i), float64(j), 0)
		}
	}

	idx := func(i, j int) uint64 {
		return uint64(j*(nx+1) + i)
	}

	cells := make([]mesh.CellType, 0, nx*ny)
	connectivity := make([]uint64, 0, 4*nx*ny)

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			cells = append(cells, mesh.Quadrilateral)
			connectivity = append(connectivity, idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1))
		}
	}

	return mesh.New(points, cells, connectivity)
}

// TimeLabels returns n parseable, strictly increasing time labels
// "0.0", "1.0", and so on.
func TimeLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.FormatFloat(float64(i), 'f', 1, 64)
	}

	return labels
}
