package tokens

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hellenic-development/figma-forge/pkg/figma"
)

// VariableGroup is the token view of one variable collection: every variable
// resolved per mode, ready for stylesheet emission. Multi-mode collections
// (Light/Dark themes, breakpoints) keep one VariableMode per mode.
type VariableGroup struct {
	Name        string // slug of the collection name
	DefaultMode string // slug of the collection's default mode
	Modes       []VariableMode
}

// VariableMode holds a group's variables resolved for one mode.
type VariableMode struct {
	Name      string
	Variables []Variable
}

// Variable is one resolved design variable.
type Variable struct {
	Name        string // slug, stable across modes
	Type        string // color, float, string, boolean
	Value       string // CSS-usable value; float values carry no unit
	Description string
}

// Default returns the mode the stylesheet's base values come from: the
// collection's default mode, falling back to the first declared mode.
func (g *VariableGroup) Default() *VariableMode {
	for i := range g.Modes {
		if g.Modes[i].Name == g.DefaultMode {
			return &g.Modes[i]
		}
	}
	if len(g.Modes) == 0 {
		return nil
	}
	return &g.Modes[0]
}

// ExtractVariables converts a local-variables API response into variable
// groups. Variables keep the designer's declaration order inside each
// collection; collections are ordered by name so regeneration is
// deterministic regardless of API map ordering. Aliased variables resolve to
// var() references instead of copying the aliased value, preserving the
// design's indirection in the emitted stylesheet.
func ExtractVariables(resp *figma.VariablesResponse) []VariableGroup {
	if resp == nil || len(resp.Meta.VariableCollections) == 0 {
		return nil
	}

	collections := make([]figma.VariableCollection, 0, len(resp.Meta.VariableCollections))
	for _, c := range resp.Meta.VariableCollections {
		collections = append(collections, c)
	}
	sort.Slice(collections, func(i, j int) bool {
		if collections[i].Name != collections[j].Name {
			return collections[i].Name < collections[j].Name
		}
		return collections[i].ID < collections[j].ID
	})

	var groups []VariableGroup
	for _, coll := range collections {
		g := VariableGroup{Name: variableSlug(coll.Name)}

		for _, mode := range coll.Modes {
			modeName := variableSlug(mode.Name)
			if mode.ModeID == coll.DefaultModeID {
				g.DefaultMode = modeName
			}

			vm := VariableMode{Name: modeName}
			for _, varID := range coll.VariableIDs {
				v, ok := resp.Meta.Variables[varID]
				if !ok {
					continue
				}
				raw, ok := v.ValuesByMode[mode.ModeID]
				if !ok {
					continue
				}
				vm.Variables = append(vm.Variables, Variable{
					Name:        variableSlug(v.Name),
					Type:        strings.ToLower(v.ResolvedType),
					Value:       resolveVariableValue(raw, v.ResolvedType, resp.Meta.Variables),
					Description: v.Description,
				})
			}
			g.Modes = append(g.Modes, vm)
		}

		if len(g.Modes) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// resolveVariableValue turns one raw mode value into its CSS-usable form.
// The raw shape depends on the resolved type: color object, number, string,
// boolean, or an alias object referencing another variable.
func resolveVariableValue(raw any, resolvedType string, byID map[string]figma.Variable) string {
	if obj, ok := raw.(map[string]any); ok {
		if t, _ := obj["type"].(string); t == "VARIABLE_ALIAS" {
			id, _ := obj["id"].(string)
			if aliased, ok := byID[id]; ok {
				return "var(--" + variableSlug(aliased.Name) + ")"
			}
			return ""
		}
		if resolvedType == "COLOR" {
			return colorValue(obj)
		}
	}

	switch v := raw.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	}
	return fmt.Sprintf("%v", raw)
}

func colorValue(obj map[string]any) string {
	channel := func(key string, fallback float64) float64 {
		if v, ok := obj[key].(float64); ok {
			return v
		}
		return fallback
	}
	r := int(channel("r", 0)*255 + 0.5)
	g := int(channel("g", 0)*255 + 0.5)
	b := int(channel("b", 0)*255 + 0.5)
	a := channel("a", 1)

	if a < 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", r, g, b, a)
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// variableSlug converts a variable or collection name into an identifier-safe
// token name: lowercased, path segments and spaces joined with hyphens,
// leading digits stripped.
func variableSlug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	s := b.String()

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	s = strings.TrimLeft(s, "0123456789")
	s = strings.TrimPrefix(s, "-")

	if s == "" {
		return "token"
	}
	return s
}
