package storage

import (
	"github.com/hupe1980/xdmfgo/attribute"
	"github.com/hupe1980/xdmfgo/xdmf"
)

// inlineWriter keeps heavy data inside the document itself. It touches no
// files, so Flush and Close have nothing to do.
type inlineWriter struct {
	stepGuard
}

func newInlineWriter() *inlineWriter { return &inlineWriter{} }

func (w *inlineWriter) WritePoints(points attribute.F64) (xdmf.DataItem, error) {
	return inlineItem(points, []int{points.Len() / 3, 3}), nil
}

func (w *inlineWriter) WriteCells(conn attribute.U64) (xdmf.DataItem, error) {
	return inlineItem(conn, []int{conn.Len()}), nil
}

func (w *inlineWriter) BeginStep(_ StepScope) error { return w.begin() }

func (w *inlineWriter) WriteField(_ StepScope, _ attribute.Center, f attribute.Field) (xdmf.DataItem, error) {
	if err := w.check(); err != nil {
		return xdmf.DataItem{}, err
	}
	return inlineItem(f.Values, f.Kind.Dimensions(f.Values.Len())), nil
}

func (w *inlineWriter) EndStep(_ StepScope) error { return w.end() }

func (w *inlineWriter) Flush() error { return nil }

func (w *inlineWriter) Close() error { return nil }

func inlineItem(v attribute.Values, dims []int) xdmf.DataItem {
	return xdmf.DataItem{
		Dimensions: dims,
		NumberType: v.NumberType(),
		Format:     xdmf.FormatXML,
		Precision:  v.Precision(),
		Text:       v.Text(),
	}
}
