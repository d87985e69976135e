package emitter

import (
	"fmt"
	"strings"

	"github.com/hellenic-development/figma-forge/pkg/canonical"
	"github.com/hellenic-development/figma-forge/pkg/generator"
	"github.com/hellenic-development/figma-forge/pkg/layout"
	"github.com/hellenic-development/figma-forge/pkg/tokens"
)

// rule is one CSS rule: a class selector and its ordered declarations.
type rule struct {
	Class string
	Decls []string
}

// classNames assigns a unique emitted class name to every node in a
// component tree: the root gets the component name, descendants get
// block__element names derived from their node name, with numeric suffixes
// on collision. Assignment order is traversal order, so regeneration keeps
// names stable.
type classNames struct {
	base  string
	byID  map[string]string
	taken map[string]int
}

func newClassNames(m *generator.ComponentModel) *classNames {
	c := &classNames{
		base:  m.Name,
		byID:  make(map[string]string),
		taken: make(map[string]int),
	}
	root := m.Representative()
	c.byID[root.ID] = c.base
	root.Walk(func(n *canonical.Node) {
		if n == root {
			return
		}
		name := c.base + "__" + n.Name
		if count, ok := c.taken[name]; ok {
			c.taken[name] = count + 1
			name = fmt.Sprintf("%s-%d", name, count+1)
		} else {
			c.taken[name] = 1
		}
		c.byID[n.ID] = name
	})
	return c
}

func (c *classNames) of(n *canonical.Node) string { return c.byID[n.ID] }

// componentRules renders the whole component as CSS rules: one rule per
// node of the representative tree, plus a modifier rule per non-default
// interaction state.
func componentRules(m *generator.ComponentModel) []rule {
	names := newClassNames(m)
	root := m.Representative()

	var rules []rule
	appendNodeRules(&rules, names, m.Tokens, root, nil)

	for _, st := range m.States {
		if st.Name == "default" || st.Node == nil || st.Node == root {
			continue
		}
		rules = append(rules, rule{
			Class: m.Name + "--" + st.Name,
			Decls: styleDecls(st.Node, m.Tokens),
		})
	}
	return rules
}

// appendNodeRules emits the rule for n and recurses. parent is nil for the
// component root; child positioning depends on whether the parent carries a
// flow.
func appendNodeRules(rules *[]rule, names *classNames, ts *tokens.Set, n, parent *canonical.Node) {
	var decls []string

	if parent != nil && parent.AutoLayout == nil {
		g := n.Geometry
		// Geometry is root-local; re-base against the positioned parent.
		g.X -= parent.Geometry.X
		g.Y -= parent.Geometry.Y
		decls = append(decls, layout.AbsoluteCSS(g)...)
	}

	switch {
	case n.AutoLayout != nil:
		decls = append(decls, layout.DeriveFlow(n).CSS()...)
	case len(n.Children) > 0 && parent == nil:
		decls = append(decls, layout.ContainerCSS(n.Geometry)...)
	case len(n.Children) > 0 && parent.AutoLayout != nil:
		decls = append(decls, "position: relative")
	}

	decls = append(decls, styleDecls(n, ts)...)
	*rules = append(*rules, rule{Class: names.of(n), Decls: decls})

	for _, child := range n.Children {
		appendNodeRules(rules, names, ts, child, n)
	}
}

// styleDecls renders a node's resolved visual style. Colors go through the
// token set so generated stylesheets reference one variable per distinct
// color instead of repeating literals.
func styleDecls(n *canonical.Node, ts *tokens.Set) []string {
	var decls []string
	s := n.Style

	if s.Fill != nil {
		prop := "background-color"
		if n.Kind == canonical.KindText {
			prop = "color"
		}
		decls = append(decls, prop+": "+colorRef(ts, *s.Fill))
	}
	if s.Stroke != nil {
		w := s.StrokeWeight
		if w == 0 {
			w = 1
		}
		decls = append(decls, fmt.Sprintf("border: %s solid %s", cssPx(w), colorRef(ts, *s.Stroke)))
	}
	if s.CornerRadius > 0 {
		decls = append(decls, "border-radius: "+cssPx(s.CornerRadius))
	}
	if n.Kind == canonical.KindText && s.Font != nil {
		decls = append(decls, fontDecls(s.Font)...)
	}
	if len(s.Shadows) > 0 {
		var parts []string
		for _, sh := range s.Shadows {
			parts = append(parts, shadowCSS(sh))
		}
		decls = append(decls, "box-shadow: "+strings.Join(parts, ", "))
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		decls = append(decls, fmt.Sprintf("opacity: %g", s.Opacity))
	}
	return decls
}

func fontDecls(f *canonical.Font) []string {
	var decls []string
	if f.Family != "" {
		decls = append(decls, fmt.Sprintf("font-family: %q", f.Family))
	}
	if f.Size > 0 {
		decls = append(decls, "font-size: "+cssPx(f.Size))
	}
	if f.Weight > 0 {
		decls = append(decls, fmt.Sprintf("font-weight: %g", f.Weight))
	}
	if f.LineHeight > 0 {
		decls = append(decls, "line-height: "+cssPx(f.LineHeight))
	}
	if f.LetterSpacing != 0 {
		decls = append(decls, "letter-spacing: "+cssPx(f.LetterSpacing))
	}
	if f.Align != "" && f.Align != "left" {
		decls = append(decls, "text-align: "+f.Align)
	}
	return decls
}

// colorRef resolves a color through the token set, falling back to the
// literal hex value for colors the extractor never collected.
func colorRef(ts *tokens.Set, c canonical.RGBA) string {
	if ts != nil {
		if name := ts.ColorName(c); name != "" {
			return "var(--color-" + name + ")"
		}
	}
	return c.Hex()
}

func shadowCSS(sh canonical.Shadow) string {
	prefix := ""
	if sh.Inset {
		prefix = "inset "
	}
	c := sh.Color
	return fmt.Sprintf("%s%s %s %s %s rgba(%d, %d, %d, %.2f)",
		prefix, cssPx(sh.X), cssPx(sh.Y), cssPx(sh.Blur), cssPx(sh.Spread),
		int(c.R*255+0.5), int(c.G*255+0.5), int(c.B*255+0.5), c.A)
}

func cssPx(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%dpx", int(v))
	}
	return fmt.Sprintf("%gpx", v)
}

// renderRules writes rules as a stylesheet, one class rule per node.
func renderRules(rules []rule) string {
	var b strings.Builder
	for i, r := range rules {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("." + r.Class + " {\n")
		for _, d := range r.Decls {
			b.WriteString("  " + d + ";\n")
		}
		b.WriteString("}\n")
	}
	return b.String()
}
