package canonical

import (
	"math"
	"strings"

	"github.com/hellenic-development/figma-forge/pkg/figma"
)

// Options configures normalization.
type Options struct {
	// IncludeHidden keeps nodes the designer marked invisible. By default
	// they are dropped, matching what a rendered frame would show.
	IncludeHidden bool
}

// Normalize projects a raw Figma node tree into a canonical node tree.
//
// The traversal is depth-first and preserves sibling order verbatim; geometry
// is re-based so the root sits at the origin; styles resolve with node-local
// values taking precedence over inherited container values and type defaults.
// Normalize is a pure function of its input: the same raw tree always yields
// a structurally identical canonical tree.
//
// A root without a type tag, without a bounding box, or with non-finite
// geometry fails with *MalformedInputError. Child-level interpretation
// issues (unknown node types, missing boxes) degrade to pass-through nodes
// and are reported as diagnostics instead of errors.
func Normalize(raw *figma.Node, opts Options) (*Node, []Diagnostic, error) {
	if raw == nil {
		return nil, nil, &MalformedInputError{Reason: "nil root node"}
	}
	if raw.Type == "" {
		return nil, nil, &MalformedInputError{NodeID: raw.ID, Reason: "missing type tag"}
	}
	box := raw.AbsoluteBoundingBox
	if box == nil {
		return nil, nil, &MalformedInputError{NodeID: raw.ID, Reason: "missing bounding box"}
	}
	for _, v := range []float64{box.X, box.Y, box.Width, box.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, &MalformedInputError{NodeID: raw.ID, Reason: "non-finite geometry"}
		}
	}

	w := &walker{opts: opts, originX: box.X, originY: box.Y}
	root := w.node(raw, Style{})
	return root, w.diags, nil
}

// walker carries per-run normalization state: the root origin for geometry
// re-basing and the accumulated diagnostics.
type walker struct {
	opts    Options
	originX float64
	originY float64
	diags   []Diagnostic
}

func (w *walker) node(raw *figma.Node, inherited Style) *Node {
	kind, supported := mapKind(raw.Type)
	if !supported {
		w.diags = append(w.diags, Diagnostic{
			NodeID:   raw.ID,
			NodeName: raw.Name,
			Message:  "unsupported node type " + raw.Type + ", passing through",
		})
	}

	n := &Node{
		ID:       raw.ID,
		RawName:  raw.Name,
		Name:     sanitizeName(raw.Name, raw.ID),
		Kind:     kind,
		Geometry: w.geometry(raw),
	}

	if supported {
		n.Style = resolveStyle(raw, kind, inherited)
		if kind == KindText {
			n.Text = raw.Characters
		}
		n.ImageRef = imageRef(raw)
		n.AutoLayout = autoLayout(raw)
	} else {
		// Pass-through: geometry and hierarchy survive, style does not.
		n.Style = Style{Opacity: 1}
	}

	childInherited := inheritable(n.Style, inherited)
	for i := range raw.Children {
		child := &raw.Children[i]
		if !child.IsVisible() && !w.opts.IncludeHidden {
			continue
		}
		n.Children = append(n.Children, w.node(child, childInherited))
	}

	return n
}

func (w *walker) geometry(raw *figma.Node) Geometry {
	box := raw.AbsoluteBoundingBox
	if box == nil {
		w.diags = append(w.diags, Diagnostic{
			NodeID:   raw.ID,
			NodeName: raw.Name,
			Message:  "missing bounding box, using zero geometry",
		})
		return Geometry{}
	}
	return Geometry{
		X:      box.X - w.originX,
		Y:      box.Y - w.originY,
		Width:  box.Width,
		Height: box.Height,
	}
}

// mapKind is the closed raw-type dispatch. Adding support for a new Figma
// node type means adding a case here and nowhere else.
func mapKind(rawType string) (Kind, bool) {
	switch rawType {
	case "DOCUMENT", "CANVAS", "FRAME", "GROUP":
		return KindFrame, true
	case "TEXT":
		return KindText, true
	case "VECTOR", "RECTANGLE", "ELLIPSE", "LINE", "STAR", "REGULAR_POLYGON", "BOOLEAN_OPERATION":
		return KindVector, true
	case "INSTANCE":
		return KindInstance, true
	case "COMPONENT":
		return KindComponent, true
	case "COMPONENT_SET":
		return KindComponentSet, true
	default:
		return KindUnsupported, false
	}
}

// resolveStyle builds a node's resolved style with the precedence
// node-local > inherited > type default.
func resolveStyle(raw *figma.Node, kind Kind, inherited Style) Style {
	s := Style{Opacity: 1}
	if raw.Opacity > 0 && raw.Opacity < 1 {
		s.Opacity = raw.Opacity
	}

	if fill := firstSolidPaint(raw.Fills); fill != nil {
		s.Fill = fill
	} else if kind == KindText && inherited.Fill != nil {
		s.Fill = inherited.Fill
	}

	if stroke := firstSolidPaint(raw.Strokes); stroke != nil {
		s.Stroke = stroke
		s.StrokeWeight = raw.StrokeWeight
	}

	s.CornerRadius = raw.CornerRadius

	switch {
	case raw.Style != nil:
		s.Font = convertFont(raw.Style)
	case inherited.Font != nil:
		s.Font = inherited.Font
	case kind == KindText:
		// Type default for text nodes that specify nothing at all.
		s.Font = &Font{Size: 16, Weight: 400}
	}

	for i := range raw.Effects {
		e := &raw.Effects[i]
		if !e.IsVisible() || (e.Type != "DROP_SHADOW" && e.Type != "INNER_SHADOW") {
			continue
		}
		sh := Shadow{
			Inset:  e.Type == "INNER_SHADOW",
			Blur:   e.Radius,
			Spread: e.Spread,
		}
		if e.Offset != nil {
			sh.X, sh.Y = e.Offset.X, e.Offset.Y
		}
		if e.Color != nil {
			sh.Color = RGBA{R: e.Color.R, G: e.Color.G, B: e.Color.B, A: e.Color.A}
		}
		s.Shadows = append(s.Shadows, sh)
	}

	return s
}

// inheritable extracts the style aspects that cascade into children:
// typography and text color. Box styling never cascades.
func inheritable(s Style, fallback Style) Style {
	out := Style{Font: s.Font, Fill: s.Fill}
	if out.Font == nil {
		out.Font = fallback.Font
	}
	if out.Fill == nil {
		out.Fill = fallback.Fill
	}
	return out
}

func convertFont(ts *figma.TypeStyle) *Font {
	return &Font{
		Family:        ts.FontFamily,
		Weight:        ts.FontWeight,
		Size:          ts.FontSize,
		LineHeight:    ts.LineHeightPx,
		LetterSpacing: ts.LetterSpacing,
		Align:         strings.ToLower(ts.TextAlignHorizontal),
	}
}

func firstSolidPaint(paints []figma.Paint) *RGBA {
	for i := range paints {
		p := &paints[i]
		if p.Type == "SOLID" && p.Color != nil && p.IsVisible() {
			c := RGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: p.Color.A}
			if p.Opacity > 0 && p.Opacity < 1 {
				c.A *= p.Opacity
			}
			return &c
		}
	}
	return nil
}

func imageRef(raw *figma.Node) string {
	for i := range raw.Fills {
		p := &raw.Fills[i]
		if p.Type == "IMAGE" && p.IsVisible() && p.ImageRef != "" {
			return p.ImageRef
		}
	}
	return ""
}

func autoLayout(raw *figma.Node) *AutoLayout {
	var dir Direction
	switch raw.LayoutMode {
	case "HORIZONTAL":
		dir = Row
	case "VERTICAL":
		dir = Column
	default:
		return nil
	}

	return &AutoLayout{
		Direction: dir,
		Gap:       raw.ItemSpacing,
		Padding: Padding{
			Top:    raw.PaddingTop,
			Right:  raw.PaddingRight,
			Bottom: raw.PaddingBottom,
			Left:   raw.PaddingLeft,
		},
		MainAlign:  mapAlignment(raw.PrimaryAxisAlignItems),
		CrossAlign: mapAlignment(raw.CounterAxisAlignItems),
		Wrap:       raw.LayoutWrap == "WRAP",
	}
}

func mapAlignment(v string) Alignment {
	switch v {
	case "CENTER":
		return AlignCenter
	case "MAX":
		return AlignEnd
	case "SPACE_BETWEEN":
		return AlignSpaceBetween
	default:
		return AlignStart
	}
}

// sanitizeName converts a design-tool layer name into an identifier-safe
// kebab-case string: punctuation stripped, whitespace collapsed to single
// hyphens. Falls back to "node-<id>" when nothing survives sanitization.
func sanitizeName(name, id string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	s := b.String()

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")

	if s == "" {
		return "node-" + sanitizeID(id)
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "n-" + s
	}
	return s
}

func sanitizeID(id string) string {
	return strings.NewReplacer(":", "-", ";", "-").Replace(id)
}
