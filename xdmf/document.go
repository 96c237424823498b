// Package xdmf models the light-data side of an XDMF time series: the XML
// document that names every stored array and points at its heavy data. The
// document is append-only; the mesh block is set once and each written time
// step adds one grid, so rendering at any point reflects exactly the steps
// persisted so far.
package xdmf

import (
	"bytes"

	"github.com/beevik/etree"
)

const (
	xdmfVersion = "2.0"
	xincludeURL = "http://www.w3.org/2001/XInclude"

	coordsName = "coords"
	connName   = "connectivity"
)

// Document accumulates the light-data tree for one time series.
type Document struct {
	// Storage is the DataStorage name recorded in the data_storage
	// Information element.
	Storage string

	// Version is the library version recorded in the version Information
	// element.
	Version string

	mesh  *Grid
	items []DataItem
	steps []Grid
}

// New returns an empty document carrying the given storage and version
// metadata.
func New(storage, version string) *Document {
	return &Document{Storage: storage, Version: version}
}

// SetMesh records the static mesh block: the coords and connectivity items
// at domain level, plus a shared grid whose geometry and topology reference
// them. cells is the cell count. Called once, before any step.
func (d *Document) SetMesh(coords, conn DataItem, cells int) {
	coords.Name = coordsName
	conn.Name = connName
	d.items = []DataItem{coords, conn}

	d.mesh = &Grid{
		Name: "mesh",
		Geometry: Geometry{
			Type: GeometryXYZ,
			Item: NewReference(coordsName),
		},
		Topology: Topology{
			Type:     TopologyMixed,
			Elements: cells,
			Item:     NewReference(connName),
		},
	}
}

// AppendStep adds the grid for one time step. Steps render in append order;
// labels are taken verbatim.
func (d *Document) AppendStep(label string, attrs []Attribute) {
	d.steps = append(d.steps, Grid{
		Name:       "time_series-t" + label,
		Geometry:   d.mesh.Geometry,
		Topology:   d.mesh.Topology,
		Time:       &Time{Value: label},
		Attributes: attrs,
	})
}

// Steps returns the number of appended steps.
func (d *Document) Steps() int {
	return len(d.steps)
}

// Render serializes the document: no XML declaration, a leading newline,
// 4-space indentation, and no trailing newline. With zero steps the mesh
// grid is written directly; otherwise a temporal collection holds one grid
// per step.
func (d *Document) Render() ([]byte, error) {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalText = true

	root := doc.CreateElement("Xdmf")
	root.CreateAttr("Version", xdmfVersion)
	root.CreateAttr("xmlns:xi", xincludeURL)

	domain := root.CreateElement("Domain")

	switch {
	case len(d.steps) > 0:
		coll := domain.CreateElement("Grid")
		coll.CreateAttr("Name", "time_series")
		coll.CreateAttr("GridType", "Collection")
		coll.CreateAttr("CollectionType", "Temporal")

		for _, g := range d.steps {
			g.render(coll)
		}
	case d.mesh != nil:
		d.mesh.render(domain)
	}

	for _, it := range d.items {
		it.render(domain)
	}

	for _, info := range [][2]string{
		{"data_storage", d.Storage},
		{"version", d.Version},
	} {
		el := root.CreateElement("Information")
		el.CreateAttr("Name", info[0])
		el.CreateAttr("Value", info[1])
	}

	doc.IndentWithSettings(&etree.IndentSettings{
		Spaces:                     4,
		SuppressTrailingWhitespace: true,
	})

	var buf bytes.Buffer

	buf.WriteByte('\n')

	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
