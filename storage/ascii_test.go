package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/xdmfgo/attribute"
	"github.com/hupe1980/xdmfgo/internal/fs"
	"github.com/hupe1980/xdmfgo/xdmf"
)

func TestAsciiWriteMesh(t *testing.T) {
	dir := t.TempDir()
	w, err := newAsciiWriter(filepath.Join(dir, "sim.out"), fs.Default)
	require.NoError(t, err)

	points, err := w.WritePoints(attribute.F64{0, 0, 0, 1, 0, 0, 0, 1, 0})
	require.NoError(t, err)
	cells, err := w.WriteCells(attribute.U64{4, 3, 0, 1, 2})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 3}, points.Dimensions)
	assert.Equal(t, attribute.NumberFloat, points.NumberType)
	assert.Equal(t, xdmf.FormatXML, points.Format)
	assert.Empty(t, points.Text)
	require.NotNil(t, points.Include)
	assert.Equal(t, "sim.txt/points.txt", points.Include.Href)

	assert.Equal(t, []int{5}, cells.Dimensions)
	assert.Equal(t, attribute.NumberUInt, cells.NumberType)
	require.NotNil(t, cells.Include)
	assert.Equal(t, "sim.txt/cells.txt", cells.Include.Href)

	data, err := os.ReadFile(filepath.Join(dir, "sim.txt", "points.txt"))
	require.NoError(t, err)
	assert.Equal(t,
		"0.0000000000000000e0 0.0000000000000000e0 0.0000000000000000e0 "+
			"1.0000000000000000e0 0.0000000000000000e0 0.0000000000000000e0 "+
			"0.0000000000000000e0 1.0000000000000000e0 0.0000000000000000e0\n",
		string(data))

	data, err = os.ReadFile(filepath.Join(dir, "sim.txt", "cells.txt"))
	require.NoError(t, err)
	assert.Equal(t, "4 3 0 1 2\n", string(data))
}

func TestAsciiWriteFields(t *testing.T) {
	dir := t.TempDir()
	w, err := newAsciiWriter(filepath.Join(dir, "sim.out"), fs.Default)
	require.NoError(t, err)

	_, err = w.WritePoints(attribute.F64{0, 0, 0, 1, 0, 0, 0, 1, 0})
	require.NoError(t, err)
	_, err = w.WriteCells(attribute.U64{4, 3, 0, 1, 2})
	require.NoError(t, err)

	scope := StepScope{Label: "0.5"}
	require.NoError(t, w.BeginStep(scope))

	temp, err := w.WriteField(scope, attribute.Node, attribute.Field{
		Name: "temperature", Kind: attribute.Scalar(), Values: attribute.F64{1, 2, 3},
	})
	require.NoError(t, err)
	pressure, err := w.WriteField(scope, attribute.Cell, attribute.Field{
		Name: "pressure", Kind: attribute.Scalar(), Values: attribute.F64{4},
	})
	require.NoError(t, err)

	require.NoError(t, w.EndStep(scope))
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	assert.Equal(t, "sim.txt/data_t_0.5_point_data_temperature.txt", temp.Include.Href)
	assert.Equal(t, "sim.txt/data_t_0.5_cell_data_pressure.txt", pressure.Include.Href)

	data, err := os.ReadFile(filepath.Join(dir, "sim.txt", "data_t_0.5_point_data_temperature.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1.0000000000000000e0 2.0000000000000000e0 3.0000000000000000e0\n", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "sim.txt"))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{
		"cells.txt",
		"data_t_0.5_cell_data_pressure.txt",
		"data_t_0.5_point_data_temperature.txt",
		"points.txt",
	}, names)
}

func TestAsciiDuplicateLabelOverwrites(t *testing.T) {
	dir := t.TempDir()
	w, err := newAsciiWriter(filepath.Join(dir, "sim.out"), fs.Default)
	require.NoError(t, err)

	for i, value := range []float64{1, 2} {
		scope := StepScope{Label: "1.0", Index: i}
		require.NoError(t, w.BeginStep(scope))
		_, err := w.WriteField(scope, attribute.Node, attribute.Field{
			Name: "temperature", Kind: attribute.Scalar(), Values: attribute.F64{value},
		})
		require.NoError(t, err)
		require.NoError(t, w.EndStep(scope))
	}

	entries, err := os.ReadDir(filepath.Join(dir, "sim.txt"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, "sim.txt", "data_t_1.0_point_data_temperature.txt"))
	require.NoError(t, err)
	assert.Equal(t, "2.0000000000000000e0\n", string(data))
}

func TestAsciiStepPairing(t *testing.T) {
	w, err := newAsciiWriter(filepath.Join(t.TempDir(), "sim.out"), fs.Default)
	require.NoError(t, err)

	scope := StepScope{Label: "0.0"}
	_, err = w.WriteField(scope, attribute.Node, attribute.Field{
		Name: "temperature", Kind: attribute.Scalar(), Values: attribute.F64{1},
	})
	assert.ErrorIs(t, err, ErrStepNotOpen)

	require.NoError(t, w.BeginStep(scope))
	assert.ErrorIs(t, w.BeginStep(scope), ErrStepOpen)
}

func TestAsciiWriteFault(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("write", func(t *testing.T) {
		ffs := fs.NewFaultyFS(nil)
		ffs.AddRule("points.txt", fs.Fault{FailAfterBytes: 0, Err: errBoom})

		w, err := newAsciiWriter(filepath.Join(t.TempDir(), "sim.out"), ffs)
		require.NoError(t, err)

		_, err = w.WritePoints(attribute.F64{0, 0, 0})
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("close", func(t *testing.T) {
		ffs := fs.NewFaultyFS(nil)
		ffs.AddRule("cells.txt", fs.Fault{FailAfterBytes: -1, FailOnClose: true, Err: errBoom})

		w, err := newAsciiWriter(filepath.Join(t.TempDir(), "sim.out"), ffs)
		require.NoError(t, err)

		_, err = w.WriteCells(attribute.U64{1, 0})
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestAsciiSidecarPathOccupied(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sim.txt"), []byte("in the way"), 0644))

	// Construction tolerates the existing path (it only ensures something is
	// there); the collision surfaces on the first write.
	w, err := newAsciiWriter(filepath.Join(dir, "sim.out"), fs.Default)
	require.NoError(t, err)

	_, err = w.WritePoints(attribute.F64{0, 0, 0})
	require.Error(t, err)
}
