package emitter

import (
	"strings"

	"github.com/hellenic-development/figma-forge/pkg/canonical"
	"github.com/hellenic-development/figma-forge/pkg/generator"
)

// renderChildren renders the markup for a node's children. The root element
// itself is framework-specific (it carries dynamic state classes), so each
// target writes it and delegates the subtree here. classAttr is "class" for
// Angular templates and "className" for JSX.
func renderChildren(m *generator.ComponentModel, names *classNames, n *canonical.Node, classAttr string, depth int) string {
	var b strings.Builder
	for _, child := range n.Children {
		renderNode(&b, m, names, child, classAttr, depth)
	}
	return b.String()
}

func renderNode(b *strings.Builder, m *generator.ComponentModel, names *classNames, n *canonical.Node, classAttr string, depth int) {
	indent := strings.Repeat("  ", depth)
	class := classAttr + `="` + names.of(n) + `"`

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
			renderNode(b, m, names, child, classAttr, depth+1)
		}
		b.WriteString(indent + "</div>\n")
	}
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
