package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/xdmfgo/attribute"
	"github.com/hupe1980/xdmfgo/xdmf"
)

func TestInlineWritePoints(t *testing.T) {
	w := newInlineWriter()

	item, err := w.WritePoints(attribute.F64{0, 0, 0, 1, 0, 0, 0, 1, 0})
	require.NoError(t, err)

	assert.Empty(t, item.Name) // the document names mesh items
	assert.Equal(t, []int{3, 3}, item.Dimensions)
	assert.Equal(t, attribute.NumberFloat, item.NumberType)
	assert.Equal(t, xdmf.FormatXML, item.Format)
	assert.Equal(t, 8, item.Precision)
	assert.Nil(t, item.Include)
	assert.Equal(t,
		"0.0000000000000000e0 0.0000000000000000e0 0.0000000000000000e0 "+
			"1.0000000000000000e0 0.0000000000000000e0 0.0000000000000000e0 "+
			"0.0000000000000000e0 1.0000000000000000e0 0.0000000000000000e0",
		item.Text)
}

func TestInlineWriteCells(t *testing.T) {
	w := newInlineWriter()

	item, err := w.WriteCells(attribute.U64{4, 3, 0, 1, 2})
	require.NoError(t, err)

	assert.Equal(t, []int{5}, item.Dimensions)
	assert.Equal(t, attribute.NumberUInt, item.NumberType)
	assert.Equal(t, xdmf.FormatXML, item.Format)
	assert.Equal(t, "4 3 0 1 2", item.Text)
}

func TestInlineWriteField(t *testing.T) {
	w := newInlineWriter()
	scope := StepScope{Label: "0.5"}

	require.NoError(t, w.BeginStep(scope))

	f := attribute.Field{Name: "velocity", Kind: attribute.Vector(), Values: attribute.F64{1, 0, 0, 0, 1, 0}}
	item, err := w.WriteField(scope, attribute.Node, f)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, item.Dimensions)
	assert.Equal(t, attribute.NumberFloat, item.NumberType)
	assert.Equal(t, xdmf.FormatXML, item.Format)
	assert.Contains(t, item.Text, "1.0000000000000000e0")

	require.NoError(t, w.EndStep(scope))
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())
}

func TestInlineStepPairing(t *testing.T) {
	w := newInlineWriter()
	scope := StepScope{Label: "1.0"}
	f := attribute.Field{Name: "temperature", Kind: attribute.Scalar(), Values: attribute.F64{1}}

	_, err := w.WriteField(scope, attribute.Node, f)
	assert.ErrorIs(t, err, ErrStepNotOpen)
	assert.ErrorIs(t, w.EndStep(scope), ErrStepNotOpen)

	require.NoError(t, w.BeginStep(scope))
	assert.ErrorIs(t, w.BeginStep(scope), ErrStepOpen)

	require.NoError(t, w.EndStep(scope))
	require.NoError(t, w.BeginStep(StepScope{Label: "2.0", Index: 1}))
}
