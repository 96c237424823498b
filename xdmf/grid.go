package xdmf

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/hupe1980/xdmfgo/attribute"
)

const (
	// GeometryXYZ is the geometry type for 3D point coordinates.
	GeometryXYZ = "XYZ"

	// TopologyMixed is the topology type for cell-code-tagged connectivity.
	TopologyMixed = "Mixed"
)

// Geometry describes the point coordinates of a grid.
type Geometry struct {
	Type string
	Item DataItem
}

// Topology describes how points connect into cells. Elements is the cell
// count.
type Topology struct {
	Type     string
	Elements int
	Item     DataItem
}

// Time tags a grid with its time-step label. The value is kept as the
// caller-supplied string so formatting stays with the caller.
type Time struct {
	Value string
}

// Attribute is one named data array attached to a grid.
type Attribute struct {
	Name   string
	Type   string
	Center attribute.Center
	Item   DataItem
}

// Grid is a uniform grid: shared geometry and topology plus, for time-step
// grids, a Time tag and the step's attributes.
type Grid struct {
	Name       string
	Geometry   Geometry
	Topology   Topology
	Time       *Time
	Attributes []Attribute
}

func (g Grid) render(parent *etree.Element) {
	el := parent.CreateElement("Grid")
	el.CreateAttr("Name", g.Name)
	el.CreateAttr("GridType", "Uniform")

	geo := el.CreateElement("Geometry")
	geo.CreateAttr("GeometryType", g.Geometry.Type)
	g.Geometry.Item.render(geo)

	top := el.CreateElement("Topology")
	top.CreateAttr("TopologyType", g.Topology.Type)
	top.CreateAttr("NumberOfElements", strconv.Itoa(g.Topology.Elements))
	g.Topology.Item.render(top)

	if g.Time != nil {
		el.CreateElement("Time").CreateAttr("Value", g.Time.Value)
	}

	for _, a := range g.Attributes {
		at := el.CreateElement("Attribute")
		at.CreateAttr("Name", a.Name)
		at.CreateAttr("AttributeType", a.Type)
		at.CreateAttr("Center", a.Center.String())
		a.Item.render(at)
	}
}
