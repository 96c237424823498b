// Package storage provides the heavy-data backends behind the time series
// writer: inline XML text, plain-text sidecar files, and the two HDF5
// layouts. A backend persists validated payloads and returns, for each one,
// the light-data item describing where the payload landed.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/xdmfgo/attribute"
	"github.com/hupe1980/xdmfgo/internal/fs"
	"github.com/hupe1980/xdmfgo/xdmf"
)

// DataStorage selects how heavy data is laid out on disk.
type DataStorage int

const (
	// AsciiInline embeds all values as text inside the document itself.
	AsciiInline DataStorage = iota

	// Ascii writes one plain-text file per payload into a sidecar
	// directory next to the document.
	Ascii

	// Hdf5SingleFile writes every payload into one HDF5 container.
	Hdf5SingleFile

	// Hdf5MultipleFiles writes the mesh and each time step into separate
	// HDF5 files inside a sidecar directory.
	Hdf5MultipleFiles
)

// String returns the variant name as it appears in the document's
// data_storage Information element.
func (s DataStorage) String() string {
	switch s {
	case AsciiInline:
		return "AsciiInline"
	case Ascii:
		return "Ascii"
	case Hdf5SingleFile:
		return "Hdf5SingleFile"
	case Hdf5MultipleFiles:
		return "Hdf5MultipleFiles"
	default:
		return fmt.Sprintf("DataStorage(%d)", int(s))
	}
}

// ErrInvalidVariant is returned by Parse for unknown variant names.
type ErrInvalidVariant struct {
	Value string
}

func (e *ErrInvalidVariant) Error() string {
	return fmt.Sprintf("invalid DataStorage variant: '%s'. Valid options are: 'Ascii', 'AsciiInline', 'Hdf5SingleFile', 'Hdf5MultipleFiles'", e.Value)
}

// Parse maps a variant name to a DataStorage. Matching is case-insensitive
// and accepts snake_case and kebab-case spellings.
func Parse(s string) (DataStorage, error) {
	normalized := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(s))
	switch normalized {
	case "ascii":
		return Ascii, nil
	case "asciiinline":
		return AsciiInline, nil
	case "hdf5singlefile":
		return Hdf5SingleFile, nil
	case "hdf5multiplefiles":
		return Hdf5MultipleFiles, nil
	default:
		return AsciiInline, &ErrInvalidVariant{Value: s}
	}
}

// StepScope identifies one time step: the user-supplied label as it appears
// in Time elements and file names, and the zero-based ordinal in call order.
type StepScope struct {
	Label string
	Index int
}

var (
	// ErrStepOpen is returned by BeginStep while a step is already open.
	ErrStepOpen = errors.New("writing data was already initialized")

	// ErrStepNotOpen is returned by WriteField and EndStep outside an open
	// step.
	ErrStepNotOpen = errors.New("writing data was not initialized")
)

// DataWriter stores heavy payloads and describes each one with a light-data
// item. WritePoints and WriteCells persist the mesh; fields are written
// between BeginStep and EndStep. Returned items carry everything except the
// Name, which the document assigns.
type DataWriter interface {
	WritePoints(points attribute.F64) (xdmf.DataItem, error)
	WriteCells(conn attribute.U64) (xdmf.DataItem, error)
	BeginStep(scope StepScope) error
	WriteField(scope StepScope, center attribute.Center, f attribute.Field) (xdmf.DataItem, error)
	EndStep(scope StepScope) error
	Flush() error
	Close() error
}

// NewDataWriter constructs the backend for kind, rooted at basePath (the
// writer's base file; sidecar names replace its final extension). Directory
// and container creation happen here, eagerly.
func NewDataWriter(kind DataStorage, basePath string, fsys fs.FileSystem) (DataWriter, error) {
	switch kind {
	case AsciiInline:
		return newInlineWriter(), nil
	case Ascii:
		return newAsciiWriter(basePath, fsys)
	case Hdf5SingleFile:
		return newHdf5SingleWriter(basePath)
	case Hdf5MultipleFiles:
		return newHdf5MultipleWriter(basePath, fsys)
	default:
		return nil, &ErrInvalidVariant{Value: kind.String()}
	}
}

// stepGuard tracks BeginStep/EndStep pairing for the backends.
type stepGuard struct {
	open bool
}

func (g *stepGuard) begin() error {
	if g.open {
		return ErrStepOpen
	}
	g.open = true
	return nil
}

func (g *stepGuard) end() error {
	if !g.open {
		return ErrStepNotOpen
	}
	g.open = false
	return nil
}

func (g *stepGuard) check() error {
	if !g.open {
		return ErrStepNotOpen
	}
	return nil
}
