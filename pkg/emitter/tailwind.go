package emitter

import (
	"fmt"
	"strings"

	"github.com/hellenic-development/figma-forge/pkg/canonical"
	"github.com/hellenic-development/figma-forge/pkg/generator"
	"github.com/hellenic-development/figma-forge/pkg/merge"
)

// Tailwind emits an Angular component styled with Tailwind utility classes
// instead of a generated stylesheet. Styling values are inlined as arbitrary
// values (bg-[#336699], gap-[8px]) so no companion CSS file is written.
type Tailwind struct{}

func (e *Tailwind) Name() string { return "tailwind" }

func (e *Tailwind) Emit(m *generator.ComponentModel) ([]File, error) {
	base := m.Name + ".component"
	return []File{
		{Path: base + ".ts", Content: (&Angular{}).typescript(m)},
		{Path: base + ".html", Content: e.template(m)},
	}, nil
}

func (e *Tailwind) template(m *generator.ComponentModel) string {
	root := m.Representative()
	utilities := strings.Join(tailwindClasses(root, nil, true), " ")

	var b strings.Builder
	b.WriteString(`<div [class]="rootClasses + ' ` + utilities + `'">` + "\n")
	for _, child := range root.Children {
		renderTailwindNode(&b, m, child, root, 1)
	}
	b.WriteString("</div>\n")
	return merge.Region("<!-- ", " -->", b.String())
}

func renderTailwindNode(b *strings.Builder, m *generator.ComponentModel, n, parent *canonical.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	class := `class="` + strings.Join(tailwindClasses(n, parent, false), " ") + `"`

	switch {
	case n.Kind == canonical.KindText:
		b.WriteString(indent + "<span " + class + ">" + escapeText(n.Text) + "</span>\n")
	case n.ImageRef != "":
		b.WriteString(indent + "<img " + class + ` src="./assets/` + m.AssetFile(n) + `" alt="` + n.Name + `" />` + "\n")
	case len(n.Children) == 0:
		b.WriteString(indent + "<div " + class + "></div>\n")
	default:
		b.WriteString(indent + "<div " + class + ">\n")
		for _, child := range n.Children {
			renderTailwindNode(b, m, child, n, depth+1)
		}
		b.WriteString(indent + "</div>\n")
	}
}

// tailwindClasses maps one node's resolved layout and style onto utility
// classes. Positioning follows the same rule as the CSS core: children of a
// parent without flow are absolutely positioned against it.
func tailwindClasses(n, parent *canonical.Node, isRoot bool) []string {
	var classes []string

	if parent != nil && parent.AutoLayout == nil {
		g := n.Geometry
		g.X -= parent.Geometry.X
		g.Y -= parent.Geometry.Y
		classes = append(classes, "absolute", "left-["+cssPx(g.X)+"]", "top-["+cssPx(g.Y)+"]")
	}

	if al := n.AutoLayout; al != nil {
		classes = append(classes, "flex")
		if al.Direction == canonical.Column {
			classes = append(classes, "flex-col")
		}
		if al.Wrap {
			classes = append(classes, "flex-wrap")
		}
		classes = append(classes, justifyClass(al.MainAlign), itemsClass(al.CrossAlign))
		if al.Gap > 0 {
			classes = append(classes, "gap-["+cssPx(al.Gap)+"]")
		}
		classes = append(classes, paddingClasses(al.Padding)...)
	} else if len(n.Children) > 0 {
		classes = append(classes, "relative")
	}

	g := n.Geometry
	if isRoot {
		if g.Width > 0 {
			classes = append(classes, "w-full", "max-w-["+cssPx(g.Width)+"]")
		}
	} else {
		if g.Width > 0 {
			classes = append(classes, "w-["+cssPx(g.Width)+"]")
		}
		if g.Height > 0 {
			classes = append(classes, "h-["+cssPx(g.Height)+"]")
		}
	}

	s := n.Style
	if s.Fill != nil {
		if n.Kind == canonical.KindText {
			classes = append(classes, "text-["+twColor(*s.Fill)+"]")
		} else {
			classes = append(classes, "bg-["+twColor(*s.Fill)+"]")
		}
	}
	if s.Stroke != nil {
		w := s.StrokeWeight
		if w == 0 {
			w = 1
		}
		classes = append(classes, "border-["+cssPx(w)+"]", "border-["+twColor(*s.Stroke)+"]")
	}
	if s.CornerRadius > 0 {
		classes = append(classes, "rounded-["+cssPx(s.CornerRadius)+"]")
	}
	if n.Kind == canonical.KindText && s.Font != nil {
		classes = append(classes, tailwindFontClasses(s.Font)...)
	}
	if len(s.Shadows) > 0 {
		sh := s.Shadows[0]
		classes = append(classes, fmt.Sprintf("shadow-[%s_%s_%s_%s]",
			cssPx(sh.X), cssPx(sh.Y), cssPx(sh.Blur), twColor(sh.Color)))
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		classes = append(classes, fmt.Sprintf("opacity-[%g]", s.Opacity))
	}

	return classes
}

func tailwindFontClasses(f *canonical.Font) []string {
	var classes []string
	if f.Size > 0 {
		classes = append(classes, "text-["+cssPx(f.Size)+"]")
	}
	if w := fontWeightClass(f.Weight); w != "" {
		classes = append(classes, w)
	}
	if f.LineHeight > 0 {
		classes = append(classes, "leading-["+cssPx(f.LineHeight)+"]")
	}
	if f.LetterSpacing != 0 {
		classes = append(classes, "tracking-["+cssPx(f.LetterSpacing)+"]")
	}
	switch f.Align {
	case "center":
		classes = append(classes, "text-center")
	case "right":
		classes = append(classes, "text-right")
	case "justified":
		classes = append(classes, "text-justify")
	}
	return classes
}

func fontWeightClass(weight float64) string {
	switch int(weight) {
	case 100:
		return "font-thin"
	case 200:
		return "font-extralight"
	case 300:
		return "font-light"
	case 400:
		return "font-normal"
	case 500:
		return "font-medium"
	case 600:
		return "font-semibold"
	case 700:
		return "font-bold"
	case 800:
		return "font-extrabold"
	case 900:
		return "font-black"
	}
	return ""
}

func justifyClass(a canonical.Alignment) string {
	switch a {
	case canonical.AlignCenter:
		return "justify-center"
	case canonical.AlignEnd:
		return "justify-end"
	case canonical.AlignSpaceBetween:
		return "justify-between"
	default:
		return "justify-start"
	}
}

func itemsClass(a canonical.Alignment) string {
	switch a {
	case canonical.AlignCenter:
		return "items-center"
	case canonical.AlignEnd:
		return "items-end"
	default:
		return "items-start"
	}
}

func paddingClasses(p canonical.Padding) []string {
	if p.Top == p.Right && p.Top == p.Bottom && p.Top == p.Left {
		if p.Top > 0 {
			return []string{"p-[" + cssPx(p.Top) + "]"}
		}
		return nil
	}

	var classes []string
	for _, side := range []struct {
		prefix string
		value  float64
	}{
		{"pt", p.Top}, {"pr", p.Right}, {"pb", p.Bottom}, {"pl", p.Left},
	} {
		if side.value > 0 {
			classes = append(classes, side.prefix+"-["+cssPx(side.value)+"]")
		}
	}
	return classes
}

// twColor renders a color as a Tailwind arbitrary value. rgba output carries
// no spaces since arbitrary values cannot contain them.
func twColor(c canonical.RGBA) string {
	if c.A < 1 {
		return fmt.Sprintf("rgba(%d,%d,%d,%.2f)",
			int(c.R*255+0.5), int(c.G*255+0.5), int(c.B*255+0.5), c.A)
	}
	return c.Hex()
}
