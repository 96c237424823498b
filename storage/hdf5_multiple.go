package storage

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/robert-malhotra/go-hdf5/hdf5"

	"github.com/hupe1980/xdmfgo/attribute"
	"github.com/hupe1980/xdmfgo/internal/fs"
	"github.com/hupe1980/xdmfgo/xdmf"
)

// hdf5MultipleWriter writes the mesh and each time step into separate HDF5
// files inside a sidecar directory next to the document. mesh.h5 holds the
// points and cells datasets; every step gets its own data_t_<label>.h5.
// Like the ascii backend, step files are keyed by label, so a duplicate
// label overwrites the file of its namesake step.
type hdf5MultipleWriter struct {
	stepGuard
	dir  string // sidecar directory on disk
	base string // directory name as referenced from the document

	stepFile *hdf5.File             // file of the open step, nil between steps
	centers  map[string]*hdf5.Group // point_data/cell_data in the open step file
}

func newHdf5MultipleWriter(basePath string, fsys fs.FileSystem) (*hdf5MultipleWriter, error) {
	dir := fs.ReplaceExt(basePath, "h5")
	if err := fs.MkdirAllWait(fsys, dir); err != nil {
		return nil, err
	}
	return &hdf5MultipleWriter{dir: dir, base: filepath.Base(dir)}, nil
}

func (w *hdf5MultipleWriter) WritePoints(points attribute.F64) (xdmf.DataItem, error) {
	file, err := hdf5.Create(filepath.Join(w.dir, "mesh.h5"))
	if err != nil {
		return xdmf.DataItem{}, err
	}
	if _, err := file.Root().CreateDataset("points", []float64(points)); err != nil {
		file.Close()
		return xdmf.DataItem{}, err
	}
	if err := file.Close(); err != nil {
		return xdmf.DataItem{}, err
	}
	return w.meshItem("points", points, []int{points.Len() / 3, 3}), nil
}

func (w *hdf5MultipleWriter) WriteCells(conn attribute.U64) (xdmf.DataItem, error) {
	file, err := hdf5.OpenReadWrite(filepath.Join(w.dir, "mesh.h5"))
	if err != nil {
		return xdmf.DataItem{}, err
	}
	if _, err := file.Root().CreateDataset("cells", []uint64(conn)); err != nil {
		file.Close()
		return xdmf.DataItem{}, err
	}
	if err := file.Close(); err != nil {
		return xdmf.DataItem{}, err
	}
	return w.meshItem("cells", conn, []int{conn.Len()}), nil
}

func (w *hdf5MultipleWriter) BeginStep(scope StepScope) error {
	if err := w.begin(); err != nil {
		return err
	}
	file, err := hdf5.Create(filepath.Join(w.dir, stepFileName(scope)))
	if err != nil {
		w.open = false
		return err
	}
	w.stepFile = file
	w.centers = make(map[string]*hdf5.Group, 2)
	return nil
}

func (w *hdf5MultipleWriter) WriteField(scope StepScope, center attribute.Center, f attribute.Field) (xdmf.DataItem, error) {
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
	return xdmf.DataItem{
		Dimensions: f.Kind.Dimensions(f.Values.Len()),
		NumberType: f.Values.NumberType(),
		Format:     xdmf.FormatHDF,
		Precision:  f.Values.Precision(),
		Text:       fmt.Sprintf("%s:/%s/%s", path.Join(w.base, stepFileName(scope)), center.GroupName(), f.Name),
	}, nil
}

func (w *hdf5MultipleWriter) EndStep(_ StepScope) error {
	if err := w.end(); err != nil {
		return err
	}
	err := w.stepFile.Close()
	w.stepFile = nil
	w.centers = nil
	return err
}

// Flush is a no-op; each file is closed as soon as its step or mesh write
// finishes.
func (w *hdf5MultipleWriter) Flush() error { return nil }

func (w *hdf5MultipleWriter) Close() error {
	if w.stepFile == nil {
		return nil
	}
	err := w.stepFile.Close()
	w.stepFile = nil
	w.centers = nil
	return err
}

func (w *hdf5MultipleWriter) centerGroup(center attribute.Center) (*hdf5.Group, error) {
	name := center.GroupName()
	if group, ok := w.centers[name]; ok {
		return group, nil
	}
	group, err := w.stepFile.Root().CreateGroup(name)
	if err != nil {
		return nil, err
	}
	w.centers[name] = group
	return group, nil
}

func (w *hdf5MultipleWriter) meshItem(dataset string, v attribute.Values, dims []int) xdmf.DataItem {
	return xdmf.DataItem{
		Dimensions: dims,
		NumberType: v.NumberType(),
		Format:     xdmf.FormatHDF,
		Precision:  v.Precision(),
		Text:       path.Join(w.base, "mesh.h5") + ":" + dataset,
	}
}

func stepFileName(scope StepScope) string {
	return fmt.Sprintf("data_t_%s.h5", scope.Label)
}
