package storage

import (
	"fmt"
	"path/filepath"

	"github.com/robert-malhotra/go-hdf5/hdf5"

	"github.com/hupe1980/xdmfgo/attribute"
	"github.com/hupe1980/xdmfgo/internal/fs"
	"github.com/hupe1980/xdmfgo/xdmf"
)

// hdf5SingleWriter keeps every payload in one HDF5 container next to the
// document. The container is created eagerly and held open until Close.
//
// Mesh datasets live at the root; each step writes under its own
// /step_<index> group, keyed by the step ordinal so that repeated time
// labels never collide.
type hdf5SingleWriter struct {
	stepGuard
	file *hdf5.File
	base string // container name as referenced from the document

	step    *hdf5.Group            // group of the open step, nil between steps
	centers map[string]*hdf5.Group // point_data/cell_data under the open step
}

func newHdf5SingleWriter(basePath string) (*hdf5SingleWriter, error) {
	container := fs.ReplaceExt(basePath, "h5")
	file, err := hdf5.Create(container)
	if err != nil {
		return nil, err
	}
	return &hdf5SingleWriter{file: file, base: filepath.Base(container)}, nil
}

func (w *hdf5SingleWriter) WritePoints(points attribute.F64) (xdmf.DataItem, error) {
	if _, err := w.file.Root().CreateDataset("points", []float64(points)); err != nil {
		return xdmf.DataItem{}, err
	}
	return w.item("points", points, []int{points.Len() / 3, 3}), nil
}

func (w *hdf5SingleWriter) WriteCells(conn attribute.U64) (xdmf.DataItem, error) {
	if _, err := w.file.Root().CreateDataset("cells", []uint64(conn)); err != nil {
		return xdmf.DataItem{}, err
	}
	return w.item("cells", conn, []int{conn.Len()}), nil
}

func (w *hdf5SingleWriter) BeginStep(scope StepScope) error {
	if err := w.begin(); err != nil {
		return err
	}
	group, err := w.file.Root().CreateGroup(fmt.Sprintf("step_%d", scope.Index))
	if err != nil {
		w.open = false
		return err
	}
	w.step = group
	w.centers = make(map[string]*hdf5.Group, 2)
	return nil
}

func (w *hdf5SingleWriter) WriteField(scope StepScope, center attribute.Center, f attribute.Field) (xdmf.DataItem, error) {
	if err := w.check(); err != nil {
		return xdmf.DataItem{}, err
	}
	group, err := w.centerGroup(center)
	if err != nil {
		return xdmf.DataItem{}, err
	}
	if _, err := group.CreateDataset(f.Name, rawValues(f.Values)); err != nil {
		return xdmf.DataItem{}, err
	}
	locator := fmt.Sprintf("/step_%d/%s/%s", scope.Index, center.GroupName(), f.Name)
	return w.item(locator, f.Values, f.Kind.Dimensions(f.Values.Len())), nil
}

func (w *hdf5SingleWriter) EndStep(_ StepScope) error {
	if err := w.end(); err != nil {
		return err
	}
	w.step = nil
	w.centers = nil
	return nil
}

func (w *hdf5SingleWriter) Flush() error {
	if w.file == nil {
		return nil
	}
	return w.file.Flush()
}

func (w *hdf5SingleWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// centerGroup returns the point_data or cell_data group of the open step,
// creating it on first use so empty sides leave no group behind.
func (w *hdf5SingleWriter) centerGroup(center attribute.Center) (*hdf5.Group, error) {
	name := center.GroupName()
	if group, ok := w.centers[name]; ok {
		return group, nil
	}
	group, err := w.step.CreateGroup(name)
	if err != nil {
		return nil, err
	}
	w.centers[name] = group
	return group, nil
}

func (w *hdf5SingleWriter) item(locator string, v attribute.Values, dims []int) xdmf.DataItem {
	return xdmf.DataItem{
		Dimensions: dims,
		NumberType: v.NumberType(),
		Format:     xdmf.FormatHDF,
		Precision:  v.Precision(),
		Text:       w.base + ":" + locator,
	}
}

// rawValues unwraps the sealed Values implementations for the HDF5 encoder.
func rawValues(v attribute.Values) any {
	switch d := v.(type) {
	case attribute.F64:
		return []float64(d)
	case attribute.U64:
		return []uint64(d)
	}
	return nil
}
