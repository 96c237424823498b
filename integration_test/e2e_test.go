package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/hupe1980/xdmfgo"
	"github.com/hupe1980/xdmfgo/attribute"
	"github.com/hupe1980/xdmfgo/storage"
	"github.com/hupe1980/xdmfgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSeries writes a small but complete series: a grid mesh, three time
// steps, point and cell fields of every kind.
func writeSeries(t *testing.T, docPath string, kind storage.DataStorage) string {
	t.Helper()

	w, err := xdmfgo.New(docPath, xdmfgo.WithStorage(kind))
	require.NoError(t, err)

	m, err := testutil.GridMesh(4, 3)
	require.NoError(t, err)

	require.NoError(t, w.WriteMesh(m))

	rng := testutil.NewRNG(1)

	for _, label := range testutil.TimeLabels(3) {
		err := w.WriteData(xdmfgo.Step{
			Time: label,
			PointData: []attribute.Field{
				rng.ScalarField("temperature", m.NumPoints()),
				rng.VectorField("velocity", m.NumPoints()),
			},
			CellData: []attribute.Field{
				rng.ScalarField("pressure", m.NumCells()),
				rng.Field("stress", attribute.Tensor(), m.NumCells()),
			},
		})
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	return w.DocumentPath()
}

func TestFullLifecycle(t *testing.T) {
	for _, kind := range []storage.DataStorage{
		storage.AsciiInline,
		storage.Ascii,
		storage.Hdf5SingleFile,
		storage.Hdf5MultipleFiles,
	} {
		t.Run(kind.String(), func(t *testing.T) {
			dir := t.TempDir()

			docPath := writeSeries(t, filepath.Join(dir, "sim.xdmf2"), kind)

			// The document exists, parses, and carries every step and field.
			data, err := os.ReadFile(docPath)
			require.NoError(t, err)

			doc := etree.NewDocument()
			require.NoError(t, doc.ReadFromBytes(data))

			grids := doc.FindElements("//Grid[@GridType='Uniform']")
			assert.Len(t, grids, 3)

			for _, grid := range grids {
				assert.Len(t, grid.FindElements("./Attribute"), 4)
			}

			assert.Len(t, doc.FindElements("//Time"), 3)
		})
	}
}

func TestE2E_DocumentCompleteAfterEveryStep(t *testing.T) {
	dir := t.TempDir()

	w, err := xdmfgo.New(filepath.Join(dir, "sim.xdmf2"), xdmfgo.WithStorage(storage.Ascii))
	require.NoError(t, err)
	defer w.Close()

	m, err := testutil.GridMesh(2, 2)
	require.NoError(t, err)

	require.NoError(t, w.WriteMesh(m))

	rng := testutil.NewRNG(2)

	for i, label := range testutil.TimeLabels(5) {
		err := w.WriteData(xdmfgo.Step{
			Time:      label,
			PointData: []attribute.Field{rng.ScalarField("temperature", m.NumPoints())},
		})
		require.NoError(t, err)

		// Reread the document after every step: it must parse and hold
		// exactly the steps written so far.
		data, err := os.ReadFile(w.DocumentPath())
		require.NoError(t, err)

		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(data))

		assert.Len(t, doc.FindElements("//Grid[@GridType='Uniform']"), i+1)
	}
}

func TestE2E_WriterUnusableAfterClose(t *testing.T) {
	dir := t.TempDir()

	w, err := xdmfgo.New(filepath.Join(dir, "sim.xdmf2"))
	require.NoError(t, err)

	m, err := testutil.GridMesh(2, 2)
	require.NoError(t, err)

	require.NoError(t, w.WriteMesh(m))
	require.NoError(t, w.Close())

	err = w.WriteData(xdmfgo.Step{
		Time:      "1.0",
		PointData: []attribute.Field{testutil.NewRNG(3).ScalarField("temperature", m.NumPoints())},
	})
	require.ErrorIs(t, err, xdmfgo.ErrClosed)

	require.ErrorIs(t, w.Flush(), xdmfgo.ErrClosed)
}
