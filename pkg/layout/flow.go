// Package layout turns the optional auto-layout hint on canonical container
// nodes into a flow descriptor and its CSS flexbox rendering. Containers
// without a hint fall back to absolute positioning of their children, which
// preserves the design pixel-exactly at the captured size.
package layout

import (
	"fmt"
	"math"

	"github.com/hellenic-development/figma-forge/pkg/canonical"
)

// Flow describes how a container lays out its children along one axis.
type Flow struct {
	Direction  canonical.Direction
	Gap        float64
	Padding    canonical.Padding
	MainAlign  canonical.Alignment
	CrossAlign canonical.Alignment
	Wrap       bool
}

// DeriveFlow returns the flow descriptor for a container, or nil when the
// design carries no auto-layout hint. Derivation never guesses: a container
// the designer laid out by hand stays absolutely positioned.
func DeriveFlow(n *canonical.Node) *Flow {
	al := n.AutoLayout
	if al == nil {
		return nil
	}
	return &Flow{
		Direction:  al.Direction,
		Gap:        al.Gap,
		Padding:    al.Padding,
		MainAlign:  al.MainAlign,
		CrossAlign: al.CrossAlign,
		Wrap:       al.Wrap,
	}
}

// CSS renders the flow as ordered flexbox declarations. Declarations with
// their CSS default value are omitted.
func (f *Flow) CSS() []string {
	decls := []string{"display: flex"}
	if f.Direction == canonical.Column {
		decls = append(decls, "flex-direction: column")
	}
	if f.Wrap {
		decls = append(decls, "flex-wrap: wrap")
	}
	if f.Gap > 0 {
		decls = append(decls, "gap: "+px(f.Gap))
	}
	if p := paddingValue(f.Padding); p != "" {
		decls = append(decls, "padding: "+p)
	}
	if v := justify(f.MainAlign); v != "" {
		decls = append(decls, "justify-content: "+v)
	}
	if v := alignItems(f.CrossAlign); v != "" {
		decls = append(decls, "align-items: "+v)
	}
	return decls
}

// AbsoluteCSS renders the positioning declarations for a child of a
// container without a flow: pinned to its root-local box.
func AbsoluteCSS(g canonical.Geometry) []string {
	return []string{
		"position: absolute",
		"left: " + px(g.X),
		"top: " + px(g.Y),
		"width: " + px(g.Width),
		"height: " + px(g.Height),
	}
}

// ContainerCSS renders the declarations for a container whose children are
// absolutely positioned.
func ContainerCSS(g canonical.Geometry) []string {
	return []string{
		"position: relative",
		"width: " + px(g.Width),
		"height: " + px(g.Height),
	}
}

// paddingValue renders padding in CSS shorthand, "" when all edges are zero.
func paddingValue(p canonical.Padding) string {
	if p.Top == 0 && p.Right == 0 && p.Bottom == 0 && p.Left == 0 {
		return ""
	}
	if p.Uniform() {
		return px(p.Top)
	}
	if p.Top == p.Bottom && p.Left == p.Right {
		return px(p.Top) + " " + px(p.Right)
	}
	return fmt.Sprintf("%s %s %s %s", px(p.Top), px(p.Right), px(p.Bottom), px(p.Left))
}

func justify(a canonical.Alignment) string {
	switch a {
	case canonical.AlignCenter:
		return "center"
	case canonical.AlignEnd:
		return "flex-end"
	case canonical.AlignSpaceBetween:
		return "space-between"
	default:
		return ""
	}
}

func alignItems(a canonical.Alignment) string {
	switch a {
	case canonical.AlignCenter:
		return "center"
	case canonical.AlignEnd:
		return "flex-end"
	default:
		return ""
	}
}

func px(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%dpx", int(v))
	}
	return fmt.Sprintf("%gpx", v)
}
