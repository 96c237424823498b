package xdmfgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/xdmfgo/storage"
)

var (
	// ErrMeshAlreadyWritten is returned when WriteMesh is called twice.
	ErrMeshAlreadyWritten = errors.New("mesh already written")

	// ErrMeshNotWritten is returned when WriteData is called before WriteMesh.
	ErrMeshNotWritten = errors.New("mesh not yet written")

	// ErrClosed is returned for operations on a closed writer.
	ErrClosed = errors.New("writer is closed")

	// ErrNilMesh is returned when WriteMesh receives a nil mesh.
	ErrNilMesh = errors.New("mesh must not be nil")

	// ErrNoData is returned when a step carries neither point nor cell data.
	ErrNoData = errors.New("at least one of point_data or cell_data must be provided")

	// ErrStorageInit marks failures while constructing a storage backend or
	// its directories. Match with errors.Is.
	ErrStorageInit = errors.New("storage initialization failed")

	// ErrStorageState marks BeginStep/EndStep pairing misuse inside a
	// backend. Match with errors.Is.
	ErrStorageState = errors.New("storage state error")
)

// ErrInvalidTime indicates a step time label that does not parse as a float.
type ErrInvalidTime struct {
	Label string
}

func (e *ErrInvalidTime) Error() string {
	return fmt.Sprintf("time must be a valid float, and not '%s'", e.Label)
}

// ErrInvalidFileName indicates a base file name with forbidden characters.
type ErrInvalidFileName struct {
	Name string
}

func (e *ErrInvalidFileName) Error() string {
	return fmt.Sprintf("file name '%s' contains invalid characters", e.Name)
}

// StorageError wraps a failure in the heavy-data backend or in rewriting
// the document file.
//
// The underlying cause can be accessed via errors.Unwrap; construction
// failures additionally match ErrStorageInit and pairing misuse matches
// ErrStorageState.
type StorageError struct {
	Op   string // "write mesh", "write data", "write document", "flush", "close", "init"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// translateError normalizes backend and filesystem failures into the
// storage error family at the API boundary. Validation and state checks
// never reach it; they return their own errors directly.
func translateError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrStepOpen) || errors.Is(err, storage.ErrStepNotOpen) {
		return &StorageError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ErrStorageState, err)}
	}
	return &StorageError{Op: op, Path: path, Err: err}
}

// initError wraps a construction failure so it matches both StorageError
// and ErrStorageInit.
func initError(path string, err error) error {
	return &StorageError{Op: "init", Path: path, Err: fmt.Errorf("%w: %w", ErrStorageInit, err)}
}
