package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/xdmfgo/archive"
	"github.com/hupe1980/xdmfgo/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_PublishRestoreRoundTrip(t *testing.T) {
	for _, kind := range []storage.DataStorage{
		storage.Ascii,
		storage.Hdf5SingleFile,
		storage.Hdf5MultipleFiles,
	} {
		t.Run(kind.String(), func(t *testing.T) {
			dir := t.TempDir()

			resultsDir := filepath.Join(dir, "results")
			bundlesDir := filepath.Join(dir, "bundles")
			restoreDir := filepath.Join(dir, "restore")

			// 1. Write and discover
			docPath := writeSeries(t, filepath.Join(resultsDir, "sim.xdmf2"), kind)

			set, err := archive.ResultSet(docPath)
			require.NoError(t, err)

			// 2. Publish
			pub := archive.NewPublisher(archive.NewLocalSink(bundlesDir))
			require.NoError(t, pub.Publish(context.Background(), set))

			// 3. Restore
			f, err := os.Open(filepath.Join(bundlesDir, pub.BundleName(set)))
			require.NoError(t, err)
			defer f.Close()

			require.NoError(t, archive.Unpack(f, restoreDir))

			// 4. Rediscovery finds the same set with identical contents
			restored, err := archive.ResultSet(filepath.Join(restoreDir, "sim.xdmf2"))
			require.NoError(t, err)
			assert.Equal(t, set.Name, restored.Name)
			assert.ElementsMatch(t, set.Files, restored.Files)

			for _, name := range set.Files {
				want, err := os.ReadFile(filepath.Join(set.Dir, name))
				require.NoError(t, err)

				got, err := os.ReadFile(filepath.Join(restored.Dir, name))
				require.NoError(t, err)

				assert.Equal(t, want, got, "file %s differs after round trip", name)
			}
		})
	}
}

func TestE2E_CatalogTracksLatestBundle(t *testing.T) {
	dir := t.TempDir()

	bundlesDir := filepath.Join(dir, "bundles")
	catalog := archive.NewLocalCatalog(bundlesDir)

	ctx := context.Background()

	// Two publish cycles of the same series, each under its own run
	// prefix, as reruns of a simulation would be stored.
	for i, run := range []string{"run-a", "run-b"} {
		resultsDir := filepath.Join(dir, "results", run)
		docPath := writeSeries(t, filepath.Join(resultsDir, "sim.xdmf2"), storage.Ascii)

		set, err := archive.ResultSet(docPath)
		require.NoError(t, err)

		pub := archive.NewPublisher(archive.NewLocalSink(filepath.Join(bundlesDir, run)))
		require.NoError(t, pub.Publish(ctx, set))

		v, err := catalog.Commit(ctx, set.Name, filepath.Join(run, pub.BundleName(set)))
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), v.Number)
	}

	latest, err := catalog.Latest(ctx, "sim")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), latest.Number)
	assert.Equal(t, filepath.Join("run-b", "sim.tar.zst"), latest.Bundle)

	// The recorded bundle restores to a working result set.
	f, err := os.Open(filepath.Join(bundlesDir, latest.Bundle))
	require.NoError(t, err)
	defer f.Close()

	restoreDir := filepath.Join(dir, "restore")
	require.NoError(t, archive.Unpack(f, restoreDir))

	restored, err := archive.ResultSet(filepath.Join(restoreDir, "sim.xdmf2"))
	require.NoError(t, err)
	assert.NotEmpty(t, restored.Files)
}
