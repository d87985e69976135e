package emitter

import (
	"strings"

	"github.com/hellenic-development/figma-forge/pkg/merge"
	"github.com/hellenic-development/figma-forge/pkg/tokens"
)

// VariablesSheet renders the file-level variable groups for a target. The
// scss target gets SCSS variables for each group's default mode; every other
// target gets CSS custom properties with the default mode on :root and one
// [data-theme] block per extra mode, so multi-mode collections theme at
// runtime.
func VariablesSheet(target string, groups []tokens.VariableGroup) File {
	if target == "scss" {
		return File{Path: "_variables.scss", Content: variablesSCSS(groups)}
	}
	return File{Path: "variables.css", Content: variablesCSS(groups)}
}

func variablesSCSS(groups []tokens.VariableGroup) string {
	var b strings.Builder
	for _, g := range groups {
		mode := g.Default()
		if mode == nil || len(mode.Variables) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("// " + g.Name + " (" + mode.Name + ")\n")
		for _, v := range mode.Variables {
			if v.Description != "" {
				b.WriteString("// " + v.Description + "\n")
			}
			b.WriteString("$" + v.Name + ": " + variableValue(v) + ";\n")
		}
	}
	return merge.Region("/* ", " */", b.String())
}

func variablesCSS(groups []tokens.VariableGroup) string {
	var b strings.Builder

	b.WriteString(":root {\n")
	for _, g := range groups {
		if mode := g.Default(); mode != nil {
			writeCustomProps(&b, mode.Variables)
		}
	}
	b.WriteString("}\n")

	for _, g := range groups {
		def := g.Default()
		for i := range g.Modes {
			mode := &g.Modes[i]
			if mode == def || len(mode.Variables) == 0 {
				continue
			}
			b.WriteString("\n[data-theme=\"" + mode.Name + "\"] {\n")
			writeCustomProps(&b, mode.Variables)
			b.WriteString("}\n")
		}
	}

	return merge.Region("/* ", " */", b.String())
}

func writeCustomProps(b *strings.Builder, vars []tokens.Variable) {
	for _, v := range vars {
		b.WriteString("  --" + v.Name + ": " + variableValue(v) + ";\n")
	}
}

// variableValue appends the pixel unit to bare numbers; every other type is
// already CSS-usable.
func variableValue(v tokens.Variable) string {
	if v.Type == "float" && !strings.HasPrefix(v.Value, "var(") {
		return v.Value + "px"
	}
	return v.Value
}
