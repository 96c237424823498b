// Package attribute models the data arrays attached to a mesh: numeric
// payloads (F64/U64), their logical shape (Kind), and their placement on
// the mesh (Center). A Field bundles the three under a name.
package attribute

import "fmt"

// Center says which mesh entity a field lives on.
type Center int

const (
	// Node centers a field on points.
	Node Center = iota
	// Cell centers a field on cells.
	Cell
)

// String returns the XDMF Center label.
func (c Center) String() string {
	if c == Cell {
		return "Cell"
	}
	return "Node"
}

// GroupName returns the storage group for this center ("point_data" or
// "cell_data"), used for file names and HDF5 group names.
func (c Center) GroupName() string {
	if c == Cell {
		return "cell_data"
	}
	return "point_data"
}

// Label returns the human label used in validation messages.
func (c Center) Label() string {
	if c == Cell {
		return "cell-data"
	}
	return "point-data"
}

// Field is one named data array of a time step.
type Field struct {
	Name   string
	Kind   Kind // zero value is Scalar
	Values Values
}

// ErrInvalidName indicates a field name outside the allowed character set.
type ErrInvalidName struct {
	Name   string
	Center Center
}

func (e *ErrInvalidName) Error() string {
	return fmt.Sprintf("data name '%s' of %s is not valid, must be non-empty and contain only alphanumeric characters, underscores or dashes", e.Name, e.Center.Label())
}

// ErrFieldSize indicates a payload whose length does not match the mesh
// entity count times the kind's component count.
type ErrFieldSize struct {
	Name   string
	Center Center
	Want   int
	Got    int
}

func (e *ErrFieldSize) Error() string {
	return fmt.Sprintf("size of %s '%s' must be %d, but is %d", e.Center.Label(), e.Name, e.Want, e.Got)
}

// ErrInvalidKind indicates a kind with no components (e.g. a zero-sized
// Matrix or Generic).
type ErrInvalidKind struct {
	Name string
	Kind Kind
}

func (e *ErrInvalidKind) Error() string {
	return fmt.Sprintf("kind %s of field '%s' must have at least one component", e.Kind, e.Name)
}

// Validate checks the field against the entity count it is centered on:
// name charset, a usable kind, and the payload length.
func (f Field) Validate(entities int, center Center) error {
	if !validName(f.Name) {
		return &ErrInvalidName{Name: f.Name, Center: center}
	}
	size := f.Kind.Size()
	if size < 1 {
		return &ErrInvalidKind{Name: f.Name, Kind: f.Kind}
	}
	want := entities * size
	got := 0
	if f.Values != nil {
		got = f.Values.Len()
	}
	if got != want {
		return &ErrFieldSize{Name: f.Name, Center: center, Want: want, Got: got}
	}
	return nil
}

// validName reports whether a field name is non-empty ASCII consisting of
// alphanumerics, underscores, or dashes.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
