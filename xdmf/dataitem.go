package xdmf

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/hupe1980/xdmfgo/attribute"
)

// Format says where a DataItem's payload lives: embedded in the document
// (XML, possibly via xi:include) or inside an HDF5 container.
type Format string

const (
	FormatXML Format = "XML"
	FormatHDF Format = "HDF"
)

// DataItem describes one stored array: its logical shape, numeric type, and
// the location of the heavy data. Exactly one of Text, Include, or the
// reference form produced by NewReference carries the payload.
type DataItem struct {
	Name       string
	Dimensions []int
	NumberType attribute.NumberType
	Format     Format
	Precision  int

	// Text holds the inline payload for Format XML, or the container
	// locator ("file.h5:path") for Format HDF.
	Text string

	// Include points at an external text file holding the payload.
	Include *Include

	// Reference is "XML" for items that reference a named domain-level
	// item by XPath instead of carrying a payload.
	Reference string
}

// Include is an xi:include pointer to an external file, always included as
// text.
type Include struct {
	Href string
}

// NewReference builds a DataItem referencing the domain-level item with the
// given name.
func NewReference(name string) DataItem {
	return DataItem{
		Text:      `/Xdmf/Domain/DataItem[@Name="` + name + `"]`,
		Reference: "XML",
	}
}

func (di DataItem) render(parent *etree.Element) {
	el := parent.CreateElement("DataItem")

	if di.Name != "" {
		el.CreateAttr("Name", di.Name)
	}

	if len(di.Dimensions) > 0 {
		el.CreateAttr("Dimensions", dimString(di.Dimensions))
	}

	if di.NumberType != "" {
		el.CreateAttr("NumberType", string(di.NumberType))
	}

	if di.Format != "" {
		el.CreateAttr("Format", string(di.Format))
	}

	if di.Precision > 0 {
		el.CreateAttr("Precision", strconv.Itoa(di.Precision))
	}

	if di.Reference != "" {
		el.CreateAttr("Reference", di.Reference)
	}

	switch {
	case di.Include != nil:
		inc := el.CreateElement("xi:include")
		inc.CreateAttr("href", di.Include.Href)
		inc.CreateAttr("parse", "text")
	case di.Text != "":
		el.SetText(di.Text)
	}
}

func dimString(dims []int) string {
	var b strings.Builder

	for i, n := range dims {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(strconv.Itoa(n))
	}

	return b.String()
}
