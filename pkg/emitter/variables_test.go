package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hellenic-development/figma-forge/pkg/tokens"
)

func themeGroups() []tokens.VariableGroup {
	return []tokens.VariableGroup{
		{
			Name:        "colors",
			DefaultMode: "light",
			Modes: []tokens.VariableMode{
				{Name: "light", Variables: []tokens.Variable{
					{Name: "brand-primary", Type: "color", Value: "#3366ff"},
					{Name: "brand-accent", Type: "color", Value: "var(--brand-primary)"},
				}},
				{Name: "dark", Variables: []tokens.Variable{
					{Name: "brand-primary", Type: "color", Value: "#112244"},
				}},
			},
		},
		{
			Name:        "spacing",
			DefaultMode: "default",
			Modes: []tokens.VariableMode{
				{Name: "default", Variables: []tokens.Variable{
					{Name: "gap-md", Type: "float", Value: "16", Description: "Grid gutter"},
				}},
			},
		},
	}
}

func TestVariablesSheetSCSS(t *testing.T) {
	f := VariablesSheet("scss", themeGroups())
	assert.Equal(t, "_variables.scss", f.Path)

	assert.Contains(t, f.Content, "/* AUTO-GEN-START */")
	assert.Contains(t, f.Content, "// colors (light)")
	assert.Contains(t, f.Content, "$brand-primary: #3366ff;")
	assert.Contains(t, f.Content, "$brand-accent: var(--brand-primary);")
	// Default mode only; SCSS variables cannot switch at runtime.
	assert.NotContains(t, f.Content, "#112244")
	// Bare numbers pick up the pixel unit, descriptions ride along.
	assert.Contains(t, f.Content, "// Grid gutter")
	assert.Contains(t, f.Content, "$gap-md: 16px;")
}

func TestVariablesSheetCSS(t *testing.T) {
	f := VariablesSheet("react", themeGroups())
	assert.Equal(t, "variables.css", f.Path)

	assert.Contains(t, f.Content, "/* AUTO-GEN-START */")
	assert.Contains(t, f.Content, ":root {")
	assert.Contains(t, f.Content, "  --brand-primary: #3366ff;")
	assert.Contains(t, f.Content, "  --gap-md: 16px;")
	// Non-default modes theme through a data attribute.
	assert.Contains(t, f.Content, `[data-theme="dark"] {`)
	assert.Contains(t, f.Content, "  --brand-primary: #112244;")
}
