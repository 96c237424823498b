package fs

import (
	"path/filepath"
	"strings"
)

// ReplaceExt returns path with its final extension replaced by ext (which may
// itself contain dots, e.g. "xdmf.tmp"). A path without an extension gets one
// appended: "out/sim" becomes "out/sim.xdmf2", "out/sim.h5" too.
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}
