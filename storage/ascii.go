package storage

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/hupe1980/xdmfgo/attribute"
	"github.com/hupe1980/xdmfgo/internal/fs"
	"github.com/hupe1980/xdmfgo/xdmf"
)

// asciiWriter writes each payload as one line of space-separated text into a
// sidecar directory next to the document. Files are referenced from the
// document through xi:include, so hrefs stay relative and use forward
// slashes.
type asciiWriter struct {
	stepGuard
	dir  string // sidecar directory on disk
	base string // directory name as referenced from the document
	fsys fs.FileSystem
}

func newAsciiWriter(basePath string, fsys fs.FileSystem) (*asciiWriter, error) {
	dir := fs.ReplaceExt(basePath, "txt")
	if err := fs.MkdirAllWait(fsys, dir); err != nil {
		return nil, err
	}
	return &asciiWriter{dir: dir, base: filepath.Base(dir), fsys: fsys}, nil
}

func (w *asciiWriter) WritePoints(points attribute.F64) (xdmf.DataItem, error) {
	return w.writeValues("points.txt", points, []int{points.Len() / 3, 3})
}

func (w *asciiWriter) WriteCells(conn attribute.U64) (xdmf.DataItem, error) {
	return w.writeValues("cells.txt", conn, []int{conn.Len()})
}

func (w *asciiWriter) BeginStep(_ StepScope) error { return w.begin() }

// WriteField names files after the step label, so a duplicate label
// overwrites the files of its namesake step.
func (w *asciiWriter) WriteField(scope StepScope, center attribute.Center, f attribute.Field) (xdmf.DataItem, error) {
	if err := w.check(); err != nil {
		return xdmf.DataItem{}, err
	}
	name := fmt.Sprintf("data_t_%s_%s_%s.txt", scope.Label, center.GroupName(), f.Name)
	return w.writeValues(name, f.Values, f.Kind.Dimensions(f.Values.Len()))
}

func (w *asciiWriter) EndStep(_ StepScope) error { return w.end() }

// Flush is a no-op; every file is flushed and closed as it is written.
func (w *asciiWriter) Flush() error { return nil }

func (w *asciiWriter) Close() error { return nil }

func (w *asciiWriter) writeValues(name string, v attribute.Values, dims []int) (xdmf.DataItem, error) {
	f, err := w.fsys.OpenFile(filepath.Join(w.dir, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return xdmf.DataItem{}, err
	}
	bw := bufio.NewWriter(f)
	if err := v.WriteText(bw); err != nil {
		f.Close()
		return xdmf.DataItem{}, err
	}
	if err := bw.WriteByte('\n'); err != nil {
		f.Close()
		return xdmf.DataItem{}, err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return xdmf.DataItem{}, err
	}
	if err := f.Close(); err != nil {
		return xdmf.DataItem{}, err
	}

	return xdmf.DataItem{
		Dimensions: dims,
		NumberType: v.NumberType(),
		Format:     xdmf.FormatXML,
		Precision:  v.Precision(),
		Include:    &xdmf.Include{Href: path.Join(w.base, name)},
	}, nil
}
