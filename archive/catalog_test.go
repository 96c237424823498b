package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCatalogEmpty(t *testing.T) {
	catalog := NewLocalCatalog(t.TempDir())

	_, err := catalog.Latest(context.Background(), "sim")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalCatalogCommit(t *testing.T) {
	dir := t.TempDir()
	catalog := NewLocalCatalog(dir)

	v1, err := catalog.Commit(context.Background(), "sim", "sim-a.tar.zst")
	require.NoError(t, err)
	assert.Equal(t, "sim", v1.Series)
	assert.Equal(t, uint64(1), v1.Number)
	assert.Equal(t, "sim-a.tar.zst", v1.Bundle)

	v2, err := catalog.Commit(context.Background(), "sim", "sim-b.tar.zst")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v2.Number)

	latest, err := catalog.Latest(context.Background(), "sim")
	require.NoError(t, err)
	assert.Equal(t, v2, latest)

	// A fresh catalog on the same directory sees the committed state.
	reopened := NewLocalCatalog(dir)

	latest, err = reopened.Latest(context.Background(), "sim")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), latest.Number)
	assert.Equal(t, "sim-b.tar.zst", latest.Bundle)
}

func TestLocalCatalogSeriesIsolated(t *testing.T) {
	catalog := NewLocalCatalog(t.TempDir())

	_, err := catalog.Commit(context.Background(), "heat", "heat.tar.zst")
	require.NoError(t, err)

	_, err = catalog.Commit(context.Background(), "flow", "flow-a.tar.zst")
	require.NoError(t, err)

	_, err = catalog.Commit(context.Background(), "flow", "flow-b.tar.zst")
	require.NoError(t, err)

	heat, err := catalog.Latest(context.Background(), "heat")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), heat.Number)
	assert.Equal(t, "heat.tar.zst", heat.Bundle)

	flow, err := catalog.Latest(context.Background(), "flow")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), flow.Number)
	assert.Equal(t, "flow-b.tar.zst", flow.Bundle)
}

func TestLocalCatalogCorruptFile(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, catalogFileName), []byte("not json"), 0644)
	require.NoError(t, err)

	catalog := NewLocalCatalog(dir)

	_, err = catalog.Latest(context.Background(), "sim")
	require.ErrorContains(t, err, "parse catalog")

	_, err = catalog.Commit(context.Background(), "sim", "sim.tar.zst")
	require.ErrorContains(t, err, "parse catalog")
}
