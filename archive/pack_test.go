package archive_test

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/xdmfgo/archive"
	"github.com/hupe1980/xdmfgo/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readTree reads every file below dir keyed by its relative slash path.
func readTree(t *testing.T, dir string) map[string][]byte {
	t.Helper()

	tree := make(map[string][]byte)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		tree[filepath.ToSlash(rel)] = data

		return nil
	})
	require.NoError(t, err)

	return tree
}

func TestPackUnpackRoundTrip(t *testing.T) {
	for _, codec := range []archive.Codec{archive.CodecNone, archive.CodecLZ4, archive.CodecZstd} {
		t.Run(codec.String(), func(t *testing.T) {
			srcDir := t.TempDir()
			docPath := writeResults(t, srcDir, storage.Ascii)

			set, err := archive.ResultSet(docPath)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, archive.Pack(&buf, set, archive.WithCodec(codec)))

			dstDir := t.TempDir()
			require.NoError(t, archive.Unpack(&buf, dstDir, archive.WithCodec(codec)))

			assert.Equal(t, readTree(t, srcDir), readTree(t, dstDir))
		})
	}
}

// An unpacked bundle is a complete result set again.
func TestUnpackedBundleIsDiscoverable(t *testing.T) {
	docPath := writeResults(t, t.TempDir(), storage.Ascii)

	set, err := archive.ResultSet(docPath)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, archive.Pack(&buf, set))

	dstDir := t.TempDir()
	require.NoError(t, archive.Unpack(&buf, dstDir))

	unpacked, err := archive.ResultSet(filepath.Join(dstDir, "sim.xdmf2"))
	require.NoError(t, err)
	assert.Equal(t, set.Files, unpacked.Files)
}

func TestPackMissingFile(t *testing.T) {
	docPath := writeResults(t, t.TempDir(), storage.AsciiInline)

	set, err := archive.ResultSet(docPath)
	require.NoError(t, err)

	set.Files = append(set.Files, "missing.txt")

	var buf bytes.Buffer
	err = archive.Pack(&buf, set)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorContains(t, err, `pack "missing.txt"`)
}

func TestPackUnknownCodec(t *testing.T) {
	docPath := writeResults(t, t.TempDir(), storage.AsciiInline)

	set, err := archive.ResultSet(docPath)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = archive.Pack(&buf, set, archive.WithCodec(archive.Codec(9)))
	require.EqualError(t, err, "unknown codec: 9")
}

func TestUnpackRejectsEscapingPaths(t *testing.T) {
	tests := []struct {
		label string
		name  string
	}{
		{label: "relative escape", name: "../evil.txt"},
		{label: "absolute path", name: "/abs.txt"},
	}

	for _, tt := range tests {
		name := tt.name

		t.Run(tt.label, func(t *testing.T) {
			var buf bytes.Buffer

			tw := tar.NewWriter(&buf)
			require.NoError(t, tw.WriteHeader(&tar.Header{
				Typeflag: tar.TypeReg,
				Name:     name,
				Mode:     0644,
				Size:     4,
			}))

			_, err := tw.Write([]byte("evil"))
			require.NoError(t, err)
			require.NoError(t, tw.Close())

			err = archive.Unpack(&buf, t.TempDir(), archive.WithCodec(archive.CodecNone))
			require.ErrorContains(t, err, "path escapes destination")
		})
	}
}
