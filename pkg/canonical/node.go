// Package canonical defines the strongly-typed internal node model and the
// normalizer that projects a loosely-typed Figma document tree into it.
// Everything downstream of this package (token extraction, variant and state
// detection, layout derivation, emitters) operates on canonical nodes only
// and never branches on raw document shape again.
package canonical

import "fmt"

// Kind classifies a canonical node. The set is closed: normalization maps
// every raw node type onto one of these, with KindUnsupported as the explicit
// arm for types the pipeline cannot interpret.
type Kind int

const (
	KindFrame Kind = iota
	KindText
	KindVector
	KindInstance
	KindComponent
	KindComponentSet
	KindUnsupported
)

// String returns a short label for the node kind.
func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindText:
		return "text"
	case KindVector:
		return "vector"
	case KindInstance:
		return "instance"
	case KindComponent:
		return "component"
	case KindComponentSet:
		return "component-set"
	default:
		return "unsupported"
	}
}

// Geometry is a node's bounding box in root-local coordinates: the normalizer
// subtracts the root node's origin so downstream consumers never see absolute
// canvas positions.
type Geometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RGBA is a resolved color with channels normalized to the 0-1 range.
type RGBA struct {
	R float64
	G float64
	B float64
	A float64
}

// Hex formats the color as #RRGGBB, or #RRGGBBAA when the alpha channel
// is below 1.
func (c RGBA) Hex() string {
	r := int(c.R*255 + 0.5)
	g := int(c.G*255 + 0.5)
	b := int(c.B*255 + 0.5)
	if c.A < 1 {
		return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, int(c.A*255+0.5))
	}
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Font is a resolved typography descriptor.
type Font struct {
	Family        string
	Weight        float64
	Size          float64
	LineHeight    float64 // pixels; 0 when the design does not specify one
	LetterSpacing float64
	Align         string // left, center, right, justified (lowercased)
}

// Shadow is a resolved drop or inner shadow.
type Shadow struct {
	Inset  bool
	X      float64
	Y      float64
	Blur   float64
	Spread float64
	Color  RGBA
}

// Padding holds per-edge padding in pixels.
type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Uniform reports whether all four edges carry the same padding.
func (p Padding) Uniform() bool {
	return p.Top == p.Right && p.Right == p.Bottom && p.Bottom == p.Left
}

// Style is a node's resolved visual style. Optional aspects are pointers;
// nil means the design specifies nothing for that aspect.
type Style struct {
	Fill         *RGBA
	Stroke       *RGBA
	StrokeWeight float64
	CornerRadius float64
	Font         *Font
	Shadows      []Shadow
	Opacity      float64 // 1 when unspecified
}

// Direction is the main axis of an auto-layout container.
type Direction int

const (
	Row Direction = iota
	Column
)

// String returns the CSS-facing direction name.
func (d Direction) String() string {
	if d == Column {
		return "column"
	}
	return "row"
}

// Alignment is a flow alignment value along one axis.
type Alignment string

const (
	AlignStart        Alignment = "start"
	AlignCenter       Alignment = "center"
	AlignEnd          Alignment = "end"
	AlignSpaceBetween Alignment = "space-between"
)

// AutoLayout is the optional relative-flow hint carried by container nodes.
// The normalizer decides its presence exactly once; consumers that find it nil
// fall back to absolute positioning for that node's children.
type AutoLayout struct {
	Direction  Direction
	Gap        float64
	Padding    Padding
	MainAlign  Alignment
	CrossAlign Alignment
	Wrap       bool
}

// Node is the canonical projection of one design element. IDs are unique
// within a conversion run, children are owned exclusively by their parent,
// and sibling order matches the input document verbatim.
type Node struct {
	ID       string
	Name     string // sanitized identifier-safe name
	RawName  string // original design-tool name, kept for variant grammar parsing
	Kind     Kind
	Geometry Geometry
	Style    Style
	Text     string // characters for text nodes
	ImageRef string // image fill reference, empty unless the node carries an IMAGE paint

	// AutoLayout is non-nil only for containers with a flow hint.
	AutoLayout *AutoLayout

	Children []*Node
}

// Walk visits n and every descendant in depth-first, sibling order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// Diagnostic records a non-fatal interpretation issue encountered during
// normalization, such as an unsupported node type. Diagnostics accompany the
// result instead of aborting it: partial visual fidelity beats total failure.
type Diagnostic struct {
	NodeID   string
	NodeName string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("node %s (%s): %s", d.NodeID, d.NodeName, d.Message)
}

// MalformedInputError reports an unusable root node: missing type tag,
// missing bounding box, or non-finite geometry. It always aborts the whole
// conversion; no partial result is produced.
type MalformedInputError struct {
	NodeID string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at node %q: %s", e.NodeID, e.Reason)
}
