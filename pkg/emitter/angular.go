package emitter

import (
	"fmt"
	"strings"

	"github.com/hellenic-development/figma-forge/pkg/generator"
	"github.com/hellenic-development/figma-forge/pkg/merge"
	"github.com/hellenic-development/figma-forge/pkg/variants"
)

// Angular emits a standard component triple: class, template, stylesheet.
// Variant properties become @Input()s and interaction states become class
// modifiers toggled through the state input.
type Angular struct{}

func (e *Angular) Name() string { return "angular" }

func (e *Angular) Emit(m *generator.ComponentModel) ([]File, error) {
	names := newClassNames(m)
	base := m.Name + ".component"
	return []File{
		{Path: base + ".ts", Content: e.typescript(m)},
		{Path: base + ".html", Content: e.template(m, names)},
		{Path: base + ".scss", Content: componentSheet(m)},
	}, nil
}

func (e *Angular) typescript(m *generator.ComponentModel) string {
	var b strings.Builder

	b.WriteString("@Component({\n")
	b.WriteString("  selector: 'app-" + m.Name + "',\n")
	b.WriteString("  templateUrl: './" + m.Name + ".component.html',\n")
	b.WriteString("  styleUrls: ['./" + m.Name + ".component.scss'],\n")
	b.WriteString("})\n")
	b.WriteString("export class " + m.PascalName() + "Component {\n")

	if m.Variants != nil {
		for _, p := range m.Variants.Properties {
			b.WriteString("  @Input() " + p.Name + inputDecl(p) + ";\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("  get rootClasses(): string {\n")
	b.WriteString("    const classes = ['" + m.Name + "'];\n")
	if p := stateProperty(m.Variants); p != nil {
		// The base class already renders the default member's styling, so
		// only non-default states push a modifier. Modifier class names are
		// lowercase while the input keeps the design's value spelling.
		b.WriteString("    if (this.state !== '" + p.Default() + "') {\n")
		b.WriteString("      classes.push(`" + m.Name + "--${this.state.toLowerCase()}`);\n")
		b.WriteString("    }\n")
	}
	b.WriteString("    return classes.join(' ');\n")
	b.WriteString("  }\n")
	b.WriteString("}\n")

	return "import { Component, Input } from '@angular/core';\n\n" +
		merge.Region("// ", "", b.String())
}

func (e *Angular) template(m *generator.ComponentModel, names *classNames) string {
	body := `<div [class]="rootClasses">` + "\n" +
		renderChildren(m, names, m.Representative(), "class", 1) +
		"</div>\n"
	return merge.Region("<!-- ", " -->", body)
}

// inputDecl renders the type annotation and default for one variant
// property: booleans get a boolean default, enums a string-union type with
// the first-declared value as default.
func inputDecl(p variants.Property) string {
	if p.Kind == variants.Boolean {
		return " = " + p.Default()
	}
	var values []string
	for _, v := range p.Values {
		values = append(values, "'"+v+"'")
	}
	return fmt.Sprintf(": %s = '%s'", strings.Join(values, " | "), p.Default())
}

// stateProperty returns the enum "state" property driving modifier classes,
// or nil. A boolean "state" property has no value union to compare against.
func stateProperty(vs *variants.Set) *variants.Property {
	if vs == nil {
		return nil
	}
	p := vs.Property("state")
	if p == nil || p.Kind != variants.Enum {
		return nil
	}
	return p
}
