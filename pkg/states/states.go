// Package states derives a component's interaction states (default, hover,
// focus, ...) from its variant model. States are just a designer convention
// layered on the variant grammar: a property named "state" whose values use
// a known interaction vocabulary.
package states

import (
	"strings"

	"github.com/hellenic-development/figma-forge/pkg/canonical"
	"github.com/hellenic-development/figma-forge/pkg/variants"
)

// State binds one interaction state name to the member node that renders it.
type State struct {
	Name string
	Node *canonical.Node
}

// vocabulary is the fixed ordering of known interaction states. Values
// outside it are passed through after the known ones, in first-seen order.
var vocabulary = []string{"default", "hover", "focus", "active", "disabled", "selected"}

// Extract derives the state list for one component. A component without a
// variant set, or whose set lacks a "state" property, has exactly one
// default state bound to the node itself. Otherwise each observed state
// value becomes a state, ordered by the interaction vocabulary with unknown
// values trailing; a default state is synthesized from the set's default
// member when the design never declared one.
func Extract(vs *variants.Set, node *canonical.Node) []State {
	if vs == nil {
		return []State{{Name: "default", Node: node}}
	}
	prop := vs.Property("state")
	if prop == nil {
		n := node
		if vs.Default != nil {
			n = vs.Default.Node
		}
		return []State{{Name: "default", Node: n}}
	}

	observed := make(map[string]*canonical.Node, len(prop.Values))
	var order []string
	for _, m := range vs.Members {
		v, ok := m.Values["state"]
		if !ok {
			continue
		}
		v = strings.ToLower(v)
		if _, seen := observed[v]; !seen {
			observed[v] = m.Node
			order = append(order, v)
		}
	}

	var out []State
	for _, v := range vocabulary {
		if n, ok := observed[v]; ok {
			out = append(out, State{Name: v, Node: n})
			delete(observed, v)
		}
	}
	for _, v := range order {
		if n, ok := observed[v]; ok {
			out = append(out, State{Name: v, Node: n})
		}
	}

	if len(out) == 0 || out[0].Name != "default" {
		n := node
		if vs.Default != nil {
			n = vs.Default.Node
		}
		out = append([]State{{Name: "default", Node: n}}, out...)
	}
	return out
}
