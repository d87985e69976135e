// Package variants parses the "Key=Value, Key=Value" naming grammar that
// design tools use for component set members and turns it into a typed
// variant model: named properties, their observed values, and a default
// member.
package variants

import (
	"strings"
	"unicode"

	"github.com/hellenic-development/figma-forge/pkg/canonical"
)

// PropertyKind classifies a variant property.
type PropertyKind int

const (
	// Enum properties carry an open set of string values.
	Enum PropertyKind = iota
	// Boolean properties were inferred from true/false or yes/no value pairs.
	Boolean
)

// String returns the kind label used in emitted prop types.
func (k PropertyKind) String() string {
	if k == Boolean {
		return "boolean"
	}
	return "enum"
}

// Property is one axis of variation across the members of a component set.
// Values appear in first-declared order; the first value is the property
// default.
type Property struct {
	Name   string // camelCase
	Kind   PropertyKind
	Values []string
}

// Default returns the property's default value, the first one declared.
func (p Property) Default() string {
	if len(p.Values) == 0 {
		return ""
	}
	return p.Values[0]
}

// Member binds one component node to its property values.
type Member struct {
	Node   *canonical.Node
	Values map[string]string // property name -> value as declared in the design
}

// Set is the variant model of one component set.
type Set struct {
	Properties []Property
	Members    []Member
	// Default is the member whose values all match their property defaults,
	// falling back to the first member.
	Default *Member
}

// Property returns the property with the given name, or nil.
func (s *Set) Property(name string) *Property {
	for i := range s.Properties {
		if s.Properties[i].Name == name {
			return &s.Properties[i]
		}
	}
	return nil
}

// Extract parses the variant grammar from the raw names of a component set's
// members. It returns nil when any member name does not follow the
// "Key=Value, Key=Value" grammar: a half-parsed variant model would generate
// wrong component APIs, so the whole set degrades to plain components
// instead.
func Extract(siblings []*canonical.Node) *Set {
	if len(siblings) == 0 {
		return nil
	}

	s := &Set{}
	order := map[string]int{} // property name -> index into s.Properties

	for _, node := range siblings {
		pairs := parsePairs(node.RawName)
		if pairs == nil {
			return nil
		}

		m := Member{Node: node, Values: make(map[string]string, len(pairs))}
		for _, kv := range pairs {
			idx, seen := order[kv.key]
			if !seen {
				idx = len(s.Properties)
				order[kv.key] = idx
				s.Properties = append(s.Properties, Property{Name: kv.key})
			}
			p := &s.Properties[idx]
			if !contains(p.Values, kv.value) {
				p.Values = append(p.Values, kv.value)
			}
			m.Values[kv.key] = kv.value
		}
		s.Members = append(s.Members, m)
	}

	for i := range s.Properties {
		inferKind(&s.Properties[i], s.Members)
	}

	s.Default = defaultMember(s)
	return s
}

type pair struct {
	key   string
	value string
}

// parsePairs splits a member name on top-level commas and each segment on
// its first '='. A name with any segment missing an '=' is not variant
// grammar and yields nil. Property names are camelCased; values keep the
// spelling the designer declared, so emitted enum unions show the design's
// own labels.
func parsePairs(rawName string) []pair {
	segments := strings.Split(rawName, ",")
	pairs := make([]pair, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		eq := strings.Index(seg, "=")
		if eq <= 0 {
			return nil
		}
		key := camelCase(seg[:eq])
		value := strings.TrimSpace(seg[eq+1:])
		if key == "" || value == "" {
			return nil
		}
		pairs = append(pairs, pair{key: key, value: value})
	}
	if len(pairs) == 0 {
		return nil
	}
	return pairs
}

// inferKind promotes a property to Boolean when its observed values are
// exactly one of the pairs {true, false} or {yes, no}, case-insensitively.
// Anything else stays Enum: a lone {true}, a mix of the two pairs, or a set
// declaring {true, large} all read safer as an enum API.
func inferKind(p *Property, members []Member) {
	seen := make(map[string]bool, 2)
	for _, v := range p.Values {
		seen[strings.ToLower(v)] = true
	}
	trueFalse := len(seen) == 2 && seen["true"] && seen["false"]
	yesNo := len(seen) == 2 && seen["yes"] && seen["no"]
	if !trueFalse && !yesNo {
		return
	}

	p.Kind = Boolean
	for i, v := range p.Values {
		p.Values[i] = normalizeBool(v)
	}
	p.Values = dedup(p.Values)
	for i := range members {
		if v, ok := members[i].Values[p.Name]; ok {
			members[i].Values[p.Name] = normalizeBool(v)
		}
	}
}

func normalizeBool(v string) string {
	switch strings.ToLower(v) {
	case "true", "yes":
		return "true"
	default:
		return "false"
	}
}

// defaultMember picks the member whose every value matches its property's
// first-declared value, falling back to the first member.
func defaultMember(s *Set) *Member {
	for i := range s.Members {
		m := &s.Members[i]
		match := true
		for _, p := range s.Properties {
			if v, ok := m.Values[p.Name]; !ok || v != p.Default() {
				match = false
				break
			}
		}
		if match {
			return m
		}
	}
	return &s.Members[0]
}

// camelCase normalizes a grammar token: words split on spaces, hyphens, and
// underscores, first word lowercased, the rest title-cased.
func camelCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	})
	var b strings.Builder
	for i, w := range words {
		w = strings.ToLower(w)
		if i == 0 {
			b.WriteString(w)
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func dedup(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if !contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
