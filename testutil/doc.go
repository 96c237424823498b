// Package testutil provides testing utilities for xdmfgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic mesh builders and seeded random field data.
//
// # Meshes
//
//	m, err := testutil.GridMesh(4, 3) // 20 points, 12 quadrilaterals
//
// # Random Field Data
//
//	rng := testutil.NewRNG(seed)
//	temperature := rng.ScalarField("temperature", m.NumPoints())
//	velocity := rng.VectorField("velocity", m.NumPoints())
package testutil
