package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-forge/pkg/figma"
	"github.com/hellenic-development/figma-forge/pkg/generator"
)

func box(x, y, w, h float64) *figma.Rectangle {
	return &figma.Rectangle{X: x, Y: y, Width: w, Height: h}
}

func buttonModel(t *testing.T) *generator.ComponentModel {
	t.Helper()
	blue := &figma.Color{R: 0.2, G: 0.4, B: 0.6, A: 1}
	raw := &figma.Node{
		ID: "1:1", Name: "Button", Type: "COMPONENT_SET",
		AbsoluteBoundingBox: box(0, 0, 300, 100),
		Children: []figma.Node{
			{ID: "1:2", Name: "State=Default, Disabled=false", Type: "COMPONENT",
				AbsoluteBoundingBox: box(0, 0, 120, 40),
				LayoutMode:          "HORIZONTAL", ItemSpacing: 8,
				Fills: []figma.Paint{{Type: "SOLID", Color: blue}},
				Children: []figma.Node{
					{ID: "1:5", Name: "Label", Type: "TEXT", AbsoluteBoundingBox: box(16, 10, 88, 20),
						Characters: "Save",
						Style:      &figma.TypeStyle{FontFamily: "Inter", FontSize: 14, FontWeight: 600}},
				}},
			{ID: "1:3", Name: "State=Hover, Disabled=false", Type: "COMPONENT",
				AbsoluteBoundingBox: box(150, 0, 120, 40),
				Fills:               []figma.Paint{{Type: "SOLID", Color: &figma.Color{R: 0.3, G: 0.5, B: 0.7, A: 1}}}},
			{ID: "1:4", Name: "State=Default, Disabled=true", Type: "COMPONENT",
				AbsoluteBoundingBox: box(0, 50, 120, 40)},
		},
	}

	m, err := generator.BuildModel(raw, generator.Options{})
	require.NoError(t, err)
	return m
}

func TestForTarget(t *testing.T) {
	for _, name := range Targets() {
		e, err := ForTarget(name)
		require.NoError(t, err)
		assert.Equal(t, name, e.Name())
	}

	_, err := ForTarget("vue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vue")
}

func TestAngularEmit(t *testing.T) {
	m := buttonModel(t)
	files, err := (&Angular{}).Emit(m)
	require.NoError(t, err)
	require.Len(t, files, 3)

	byPath := map[string]string{}
	for _, f := range files {
		byPath[f.Path] = f.Content
	}

	ts := byPath["button.component.ts"]
	assert.Contains(t, ts, "selector: 'app-button'")
	assert.Contains(t, ts, "export class ButtonComponent")
	assert.Contains(t, ts, "@Input() state: 'Default' | 'Hover' = 'Default';")
	assert.Contains(t, ts, "@Input() disabled = false;")
	assert.Contains(t, ts, "if (this.state !== 'Default') {")
	assert.Contains(t, ts, "classes.push(`button--${this.state.toLowerCase()}`);")
	assert.Contains(t, ts, "// AUTO-GEN-START")
	assert.Contains(t, ts, "// AUTO-GEN-END")

	html := byPath["button.component.html"]
	assert.Contains(t, html, `<div [class]="rootClasses">`)
	assert.Contains(t, html, `<span class="button__label">Save</span>`)
	assert.Contains(t, html, "<!-- AUTO-GEN-START -->")

	scss := byPath["button.component.scss"]
	assert.Contains(t, scss, ".button {")
	assert.Contains(t, scss, ".button--hover {")
	assert.Contains(t, scss, "display: flex")
}

func TestReactEmit(t *testing.T) {
	m := buttonModel(t)
	files, err := (&React{}).Emit(m)
	require.NoError(t, err)
	require.Len(t, files, 2)

	byPath := map[string]string{}
	for _, f := range files {
		byPath[f.Path] = f.Content
	}

	tsx := byPath["Button.tsx"]
	assert.Contains(t, tsx, "export interface ButtonProps {")
	assert.Contains(t, tsx, "state?: 'Default' | 'Hover';")
	assert.Contains(t, tsx, "disabled?: boolean;")
	assert.Contains(t, tsx, "export function Button({ state = 'Default', disabled = false }: ButtonProps) {")
	assert.Contains(t, tsx, "if (state !== 'Default') {")
	assert.Contains(t, tsx, "classes.push(`button--${state.toLowerCase()}`);")
	assert.Contains(t, tsx, `<span className="button__label">Save</span>`)
	assert.Contains(t, tsx, "import './button.css';")

	css := byPath["button.css"]
	assert.Contains(t, css, ".button__label {")
	assert.Contains(t, css, `font-family: "Inter"`)
}

func TestTailwindEmit(t *testing.T) {
	m := buttonModel(t)
	files, err := (&Tailwind{}).Emit(m)
	require.NoError(t, err)
	require.Len(t, files, 2)

	byPath := map[string]string{}
	for _, f := range files {
		byPath[f.Path] = f.Content
	}

	// The component class matches the angular target; styling moves into
	// utility classes instead of a stylesheet.
	ts := byPath["button.component.ts"]
	assert.Contains(t, ts, "@Input() state: 'Default' | 'Hover' = 'Default';")

	html := byPath["button.component.html"]
	assert.Contains(t, html, `[class]="rootClasses + ' `)
	assert.Contains(t, html, "flex")
	assert.Contains(t, html, "gap-[8px]")
	assert.Contains(t, html, "bg-[#336699]")
	assert.Contains(t, html, "max-w-[120px]")
	assert.Contains(t, html, "text-[14px]")
	assert.Contains(t, html, "font-semibold")
	assert.Contains(t, html, ">Save</span>")
	assert.Contains(t, html, "<!-- AUTO-GEN-START -->")
}

func TestTailwindAbsoluteFallback(t *testing.T) {
	raw := &figma.Node{
		ID: "1:1", Name: "Card", Type: "FRAME",
		AbsoluteBoundingBox: box(0, 0, 300, 200),
		Children: []figma.Node{
			{ID: "1:2", Name: "Badge", Type: "RECTANGLE", AbsoluteBoundingBox: box(20, 30, 40, 16)},
		},
	}
	m, err := generator.BuildModel(raw, generator.Options{})
	require.NoError(t, err)

	files, err := (&Tailwind{}).Emit(m)
	require.NoError(t, err)
	html := files[1].Content
	assert.Contains(t, html, "absolute")
	assert.Contains(t, html, "left-[20px]")
	assert.Contains(t, html, "top-[30px]")
	assert.Contains(t, html, "w-[40px]")
	assert.Contains(t, html, "h-[16px]")
}

// A set whose state values never include a default still has to emit a
// guard that type-checks: the comparison uses the union's first value, not a
// literal the union does not contain.
func TestStateGuardWithoutDefaultValue(t *testing.T) {
	raw := &figma.Node{
		ID: "2:1", Name: "Chip", Type: "COMPONENT_SET",
		AbsoluteBoundingBox: box(0, 0, 200, 60),
		Children: []figma.Node{
			{ID: "2:2", Name: "State=Hover", Type: "COMPONENT", AbsoluteBoundingBox: box(0, 0, 80, 24)},
			{ID: "2:3", Name: "State=Focus", Type: "COMPONENT", AbsoluteBoundingBox: box(100, 0, 80, 24)},
		},
	}
	m, err := generator.BuildModel(raw, generator.Options{})
	require.NoError(t, err)

	files, err := (&Angular{}).Emit(m)
	require.NoError(t, err)
	ts := files[0].Content
	assert.Contains(t, ts, "@Input() state: 'Hover' | 'Focus' = 'Hover';")
	assert.Contains(t, ts, "if (this.state !== 'Hover') {")
	assert.NotContains(t, ts, "!== 'default'")

	files, err = (&React{}).Emit(m)
	require.NoError(t, err)
	tsx := files[0].Content
	assert.Contains(t, tsx, "export function Chip({ state = 'Hover' }: ChipProps) {")
	assert.Contains(t, tsx, "if (state !== 'Hover') {")
}

func TestSCSSEmit(t *testing.T) {
	m := buttonModel(t)
	files, err := (&SCSS{}).Emit(m)
	require.NoError(t, err)
	require.Len(t, files, 2)

	tokens := files[0]
	assert.Equal(t, "_tokens.scss", tokens.Path)
	assert.Contains(t, tokens.Content, ":root {")
	assert.Contains(t, tokens.Content, "--color-state-default-disabled-false: #336699;")
	assert.Contains(t, tokens.Content, "$typography-label: 600 14px Inter;")
	assert.Contains(t, tokens.Content, "$spacing-state-default-disabled-false-gap: 8px;")

	sheet := files[1]
	assert.Equal(t, "button.scss", sheet.Path)
	assert.Contains(t, sheet.Content, `@use "tokens";`)
}

func TestComponentRulesUseTokenVariables(t *testing.T) {
	m := buttonModel(t)
	rules := componentRules(m)

	var rootDecls []string
	for _, r := range rules {
		if r.Class == "button" {
			rootDecls = r.Decls
		}
	}
	require.NotNil(t, rootDecls)
	assert.Contains(t, rootDecls, "background-color: var(--color-state-default-disabled-false)")
	assert.Contains(t, rootDecls, "display: flex")
	assert.Contains(t, rootDecls, "gap: 8px")
}

func TestComponentRulesAbsoluteFallback(t *testing.T) {
	raw := &figma.Node{
		ID: "1:1", Name: "Card", Type: "FRAME",
		AbsoluteBoundingBox: box(0, 0, 300, 200),
		Children: []figma.Node{
			{ID: "1:2", Name: "Badge", Type: "RECTANGLE", AbsoluteBoundingBox: box(20, 30, 40, 16)},
		},
	}
	m, err := generator.BuildModel(raw, generator.Options{})
	require.NoError(t, err)

	rules := componentRules(m)
	require.Len(t, rules, 2)

	assert.Equal(t, "card", rules[0].Class)
	assert.Contains(t, rules[0].Decls, "position: relative")

	assert.Equal(t, "card__badge", rules[1].Class)
	assert.Contains(t, rules[1].Decls, "position: absolute")
	assert.Contains(t, rules[1].Decls, "left: 20px")
	assert.Contains(t, rules[1].Decls, "top: 30px")
}

func TestClassNameCollisions(t *testing.T) {
	raw := &figma.Node{
		ID: "1:1", Name: "List", Type: "FRAME",
		AbsoluteBoundingBox: box(0, 0, 100, 100),
		LayoutMode:          "VERTICAL",
		Children: []figma.Node{
			{ID: "1:2", Name: "Item", Type: "FRAME", AbsoluteBoundingBox: box(0, 0, 100, 20)},
			{ID: "1:3", Name: "Item", Type: "FRAME", AbsoluteBoundingBox: box(0, 20, 100, 20)},
		},
	}
	m, err := generator.BuildModel(raw, generator.Options{})
	require.NoError(t, err)

	rules := componentRules(m)
	require.Len(t, rules, 3)
	assert.Equal(t, "list__item", rules[1].Class)
	assert.Equal(t, "list__item-2", rules[2].Class)
}

func TestMarkupImageNode(t *testing.T) {
	raw := &figma.Node{
		ID: "1:1", Name: "Card", Type: "FRAME",
		AbsoluteBoundingBox: box(0, 0, 300, 200),
		Children: []figma.Node{
			{ID: "1:2", Name: "Hero", Type: "RECTANGLE", AbsoluteBoundingBox: box(0, 0, 300, 150),
				Fills: []figma.Paint{{Type: "IMAGE", ImageRef: "ref-1"}}},
		},
	}
	m, err := generator.BuildModel(raw, generator.Options{})
	require.NoError(t, err)

	names := newClassNames(m)
	markup := renderChildren(m, names, m.Representative(), "class", 1)
	assert.Contains(t, markup, `<img class="card__hero" src="./assets/hero.png" alt="hero" />`)
}
