// Package xdmfgo writes time series of simulation results in the XDMF
// format: one XML document carrying the light data (structure, dimensions,
// data locations) and a pluggable heavy-data backend for the arrays
// themselves.
//
// # Quick Start
//
//	m, err := mesh.New(points, cells, connectivity)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w, err := xdmfgo.New("out/sim.xdmf2",
//	    xdmfgo.WithStorage(storage.Hdf5SingleFile),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := w.WriteMesh(m); err != nil {
//	    log.Fatal(err)
//	}
//
//	err = w.WriteData(xdmfgo.Step{
//	    Time: "0.5",
//	    PointData: []attribute.Field{
//	        {Name: "temperature", Kind: attribute.Scalar(), Values: attribute.F64(temps)},
//	    },
//	})
//
// # Storage Backends
//
// Choose where the heavy data lives:
//   - AsciiInline: everything inside the document, no auxiliary files
//   - Ascii: one plain-text file per array in a <stem>.txt/ directory
//   - Hdf5SingleFile: one <stem>.h5 container, held open across steps
//   - Hdf5MultipleFiles: mesh and per-step HDF5 files in a <stem>.h5/ directory
//
// The document references heavy data by relative paths, so a result set
// (document plus sidecar files) can be moved or archived as a unit.
//
// # Consistency
//
// The document on disk is valid and complete after every operation:
// rewrites go through a temp file, fsync, and an atomic rename. Heavy data
// is always written before the document references it, so a failed or
// crashed write leaves the previous complete document behind, never a torn
// one.
//
// The writer is not safe for concurrent use. Writes are strictly ordered:
// the mesh first, then time steps in call order.
package xdmfgo
