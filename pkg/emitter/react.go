package emitter

import (
	"strings"

	"github.com/hellenic-development/figma-forge/pkg/generator"
	"github.com/hellenic-development/figma-forge/pkg/merge"
	"github.com/hellenic-development/figma-forge/pkg/variants"
)

// React emits a typed function component and its stylesheet. Variant
// properties become optional props with their design defaults.
type React struct{}

func (e *React) Name() string { return "react" }

func (e *React) Emit(m *generator.ComponentModel) ([]File, error) {
	names := newClassNames(m)
	return []File{
		{Path: m.PascalName() + ".tsx", Content: e.tsx(m, names)},
		{Path: m.Name + ".css", Content: componentCSS(m)},
	}, nil
}

func (e *React) tsx(m *generator.ComponentModel, names *classNames) string {
	name := m.PascalName()
	var b strings.Builder

	if m.Variants != nil {
		b.WriteString("export interface " + name + "Props {\n")
		for _, p := range m.Variants.Properties {
			b.WriteString("  " + p.Name + "?: " + propType(p) + ";\n")
		}
		b.WriteString("}\n\n")

		b.WriteString("export function " + name + "({ " + propDefaults(m.Variants) + " }: " + name + "Props) {\n")
	} else {
		b.WriteString("export function " + name + "() {\n")
	}

	b.WriteString("  const classes = ['" + m.Name + "'];\n")
	if p := stateProperty(m.Variants); p != nil {
		b.WriteString("  if (state !== '" + p.Default() + "') {\n")
		b.WriteString("    classes.push(`" + m.Name + "--${state.toLowerCase()}`);\n")
		b.WriteString("  }\n")
	}
	b.WriteString("\n")
	b.WriteString("  return (\n")
	b.WriteString("    <div className={classes.join(' ')}>\n")
	b.WriteString(renderChildren(m, names, m.Representative(), "className", 3))
	b.WriteString("    </div>\n")
	b.WriteString("  );\n")
	b.WriteString("}\n")

	return "import './" + m.Name + ".css';\n\n" + merge.Region("// ", "", b.String())
}

func propType(p variants.Property) string {
	if p.Kind == variants.Boolean {
		return "boolean"
	}
	var values []string
	for _, v := range p.Values {
		values = append(values, "'"+v+"'")
	}
	return strings.Join(values, " | ")
}

func propDefaults(vs *variants.Set) string {
	var parts []string
	for _, p := range vs.Properties {
		if p.Kind == variants.Boolean {
			parts = append(parts, p.Name+" = "+p.Default())
		} else {
			parts = append(parts, p.Name+" = '"+p.Default()+"'")
		}
	}
	return strings.Join(parts, ", ")
}

// componentCSS renders the component rules as plain CSS for targets that do
// not preprocess stylesheets.
func componentCSS(m *generator.ComponentModel) string {
	return merge.Region("/* ", " */", renderRules(componentRules(m)))
}
