package xdmfgo

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/xdmfgo/attribute"
	"github.com/hupe1980/xdmfgo/internal/fs"
	"github.com/hupe1980/xdmfgo/mesh"
	"github.com/hupe1980/xdmfgo/storage"
	"github.com/hupe1980/xdmfgo/xdmf"
)

// invalidFileNameChars are rejected in the document file name. The colon is
// reserved because HDF5 locators separate file path and dataset with it.
const invalidFileNameChars = "?\x00:*\"<>|"

// Step is a single time step of results: a time label plus the fields
// recorded at that time, grouped by where they live on the mesh.
type Step struct {
	// Time is the decimal representation of the step's time. It appears
	// verbatim in the document and in heavy-data file names.
	Time string

	// PointData holds fields with one tuple per mesh point.
	PointData []attribute.Field

	// CellData holds fields with one tuple per mesh cell.
	CellData []attribute.Field
}

// TimeSeriesWriter writes a time series of simulation results as an XDMF
// document plus heavy data in the configured storage backend.
//
// The document on disk is updated after every successful operation and is
// always complete and well formed. The writer enforces the write order:
// the mesh exactly once, then any number of time steps.
//
// TimeSeriesWriter is not safe for concurrent use.
type TimeSeriesWriter struct {
	docPath string
	tmpPath string
	fsys    fs.FileSystem

	backend storage.DataWriter
	doc     *xdmf.Document

	metricsCollector MetricsCollector
	logger           *Logger

	numPoints   int
	numCells    int
	meshWritten bool
	closed      bool
}

// New creates a TimeSeriesWriter rooted at the given path. The document is
// written next to any heavy-data files with the extension xdmf2, replacing
// an extension the path may carry. Parent directories are created as
// needed.
func New(path string, optFns ...Option) (*TimeSeriesWriter, error) {
	opts := applyOptions(optFns)

	if err := validateFileName(path); err != nil {
		return nil, err
	}

	docPath := fs.ReplaceExt(path, "xdmf2")
	tmpPath := fs.ReplaceExt(path, "xdmf.tmp")

	if err := fs.MkdirAllWait(opts.fsys, filepath.Dir(docPath)); err != nil {
		return nil, initError(docPath, err)
	}

	backend, err := storage.NewDataWriter(opts.storage, docPath, opts.fsys)
	if err != nil {
		return nil, initError(docPath, err)
	}

	return &TimeSeriesWriter{
		docPath:          docPath,
		tmpPath:          tmpPath,
		fsys:             opts.fsys,
		backend:          backend,
		doc:              xdmf.New(opts.storage.String(), Version),
		metricsCollector: opts.metricsCollector,
		logger:           opts.logger.WithPath(docPath),
	}, nil
}

// WriteMesh writes the mesh to the storage backend and records its geometry
// and topology in the document. It must be called exactly once, before the
// first call to WriteData.
func (w *TimeSeriesWriter) WriteMesh(m *mesh.Mesh) error {
	start := time.Now()

	var stats mesh.Stats
	if m != nil {
		stats = m.Stats()
	}

	err := w.writeMesh(m)

	w.metricsCollector.RecordWriteMesh(time.Since(start), err)
	w.logger.LogWriteMesh(stats, err)

	return err
}

func (w *TimeSeriesWriter) writeMesh(m *mesh.Mesh) error {
	if w.closed {
		return ErrClosed
	}

	if w.meshWritten {
		return ErrMeshAlreadyWritten
	}

	if m == nil {
		return ErrNilMesh
	}

	coords, err := w.backend.WritePoints(attribute.F64(m.Points()))
	if err != nil {
		return translateError("write mesh", w.docPath, err)
	}

	conn, err := w.backend.WriteCells(attribute.U64(m.EncodedConnectivity()))
	if err != nil {
		return translateError("write mesh", w.docPath, err)
	}

	if err := w.backend.Flush(); err != nil {
		return translateError("write mesh", w.docPath, err)
	}

	w.doc.SetMesh(coords, conn, m.NumCells())

	if err := w.writeDocument(); err != nil {
		return err
	}

	w.numPoints = m.NumPoints()
	w.numCells = m.NumCells()
	w.meshWritten = true

	return nil
}

// WriteData writes one time step. The heavy data of every field is written
// and flushed before the document is updated to reference it, so a failed
// call leaves the previous document intact.
func (w *TimeSeriesWriter) WriteData(step Step) error {
	start := time.Now()

	err := w.writeData(step)

	w.metricsCollector.RecordWriteData(time.Since(start), err)
	w.logger.LogWriteData(step.Time, len(step.PointData), len(step.CellData), err)

	return err
}

func (w *TimeSeriesWriter) writeData(step Step) error {
	if w.closed {
		return ErrClosed
	}

	if !w.meshWritten {
		return ErrMeshNotWritten
	}

	if _, err := strconv.ParseFloat(step.Time, 64); err != nil {
		return &ErrInvalidTime{Label: step.Time}
	}

	if len(step.PointData) == 0 && len(step.CellData) == 0 {
		return ErrNoData
	}

	for _, f := range step.PointData {
		if err := f.Validate(w.numPoints, attribute.Node); err != nil {
			return err
		}
	}

	for _, f := range step.CellData {
		if err := f.Validate(w.numCells, attribute.Cell); err != nil {
			return err
		}
	}

	scope := storage.StepScope{Label: step.Time, Index: w.doc.Steps()}

	if err := w.backend.BeginStep(scope); err != nil {
		return translateError("write data", w.docPath, err)
	}

	var attrs []xdmf.Attribute

	attrs, err := w.writeFields(scope, attribute.Node, step.PointData, attrs)
	if err != nil {
		return err
	}

	attrs, err = w.writeFields(scope, attribute.Cell, step.CellData, attrs)
	if err != nil {
		return err
	}

	if err := w.backend.EndStep(scope); err != nil {
		return translateError("write data", w.docPath, err)
	}

	if err := w.backend.Flush(); err != nil {
		return translateError("write data", w.docPath, err)
	}

	w.doc.AppendStep(step.Time, attrs)

	return w.writeDocument()
}

// writeFields writes one side of a step and appends the document attribute
// for each written field. A field failure ends the step in the backend so
// the writer stays usable.
func (w *TimeSeriesWriter) writeFields(scope storage.StepScope, center attribute.Center, fields []attribute.Field, attrs []xdmf.Attribute) ([]xdmf.Attribute, error) {
	for _, f := range fields {
		item, err := w.backend.WriteField(scope, center, f)
		if err != nil {
			_ = w.backend.EndStep(scope)

			return nil, translateError("write data", w.docPath, err)
		}

		attrs = append(attrs, xdmf.Attribute{
			Name:   f.Name,
			Type:   f.Kind.AttributeType(),
			Center: center,
			Item:   item,
		})
	}

	return attrs, nil
}

// writeDocument renders the document and atomically replaces the file on
// disk, leaving the previous version in place on failure.
func (w *TimeSeriesWriter) writeDocument() error {
	data, err := w.doc.Render()
	if err != nil {
		return translateError("write document", w.docPath, err)
	}

	if err := fs.WriteFileAtomic(w.fsys, w.docPath, w.tmpPath, data); err != nil {
		return translateError("write document", w.docPath, err)
	}

	return nil
}

// Flush forces buffered heavy data to disk. The document itself needs no
// flushing because every operation rewrites it atomically.
func (w *TimeSeriesWriter) Flush() error {
	start := time.Now()

	err := w.flush()

	w.metricsCollector.RecordFlush(time.Since(start), err)
	w.logger.LogFlush(err)

	return err
}

func (w *TimeSeriesWriter) flush() error {
	if w.closed {
		return ErrClosed
	}

	if err := w.backend.Flush(); err != nil {
		return translateError("flush", w.docPath, err)
	}

	return nil
}

// DocumentPath returns the path of the document file, which carries the
// xdmf2 extension regardless of the extension passed to New.
func (w *TimeSeriesWriter) DocumentPath() string {
	return w.docPath
}

// Steps returns the number of time steps written so far.
func (w *TimeSeriesWriter) Steps() int {
	return w.doc.Steps()
}

// validateFileName rejects document names whose characters would corrupt
// heavy-data locators or are unportable across filesystems.
func validateFileName(path string) error {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return &ErrInvalidFileName{Name: path}
	}

	if strings.ContainsAny(name, invalidFileNameChars) {
		return &ErrInvalidFileName{Name: name}
	}

	return nil
}
