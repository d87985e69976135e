package emitter

import (
	"strings"

	"github.com/hellenic-development/figma-forge/pkg/generator"
	"github.com/hellenic-development/figma-forge/pkg/merge"
	"github.com/hellenic-development/figma-forge/pkg/tokens"
)

// SCSS emits a framework-neutral stylesheet pair: the shared token sheet
// and the component's class rules.
type SCSS struct{}

func (e *SCSS) Name() string { return "scss" }

func (e *SCSS) Emit(m *generator.ComponentModel) ([]File, error) {
	return []File{
		{Path: "_tokens.scss", Content: tokenSheet(m.Tokens)},
		{Path: m.Name + ".scss", Content: componentSheet(m)},
	}, nil
}

// tokenSheet renders the token set: colors as CSS custom properties on
// :root (so component rules can reference them with var()), everything else
// as SCSS variables.
func tokenSheet(ts *tokens.Set) string {
	var b strings.Builder

	colors := ts.ByKind(tokens.Color)
	if len(colors) > 0 {
		b.WriteString(":root {\n")
		for _, t := range colors {
			b.WriteString("  --color-" + t.Name + ": " + t.Value + ";\n")
		}
		b.WriteString("}\n")
	}

	for _, kind := range []tokens.Kind{tokens.Typography, tokens.Spacing, tokens.Shadow} {
		group := ts.ByKind(kind)
		if len(group) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		for _, t := range group {
			b.WriteString("$" + kind.String() + "-" + t.Name + ": " + t.Value + ";\n")
		}
	}

	return merge.Region("/* ", " */", b.String())
}

func componentSheet(m *generator.ComponentModel) string {
	sheet := `@use "tokens";` + "\n\n" + renderRules(componentRules(m))
	return merge.Region("/* ", " */", sheet)
}
