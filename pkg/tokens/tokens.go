// Package tokens derives a deduplicated design-token set (colors, typography,
// spacing, shadows) from a canonical node tree. Token names come from the
// first node that used the value; ordering follows first-seen traversal order
// so regenerating an unchanged design yields byte-identical output.
package tokens

import (
	"fmt"
	"math"

	"github.com/hellenic-development/figma-forge/pkg/canonical"
)

// Kind classifies a design token.
type Kind int

const (
	Color Kind = iota
	Typography
	Spacing
	Shadow
)

// String returns the token kind label used in emitted variable names.
func (k Kind) String() string {
	switch k {
	case Color:
		return "color"
	case Typography:
		return "typography"
	case Spacing:
		return "spacing"
	default:
		return "shadow"
	}
}

// Token is a named, deduplicated style value.
type Token struct {
	Kind  Kind
	Name  string // collision-free within the kind
	Value string // resolved CSS value
}

// Set is an ordered collection of tokens. Order is first-seen traversal
// order and is stable across repeated extraction of the same tree.
type Set struct {
	tokens []Token

	// dedup key (per kind) -> index into tokens
	index map[string]int
	// names already taken per kind, for collision suffixing
	names map[string]int
}

// All returns the tokens in first-seen order. The returned slice is shared;
// callers must not modify it.
func (s *Set) All() []Token { return s.tokens }

// ByKind returns the tokens of one kind in first-seen order.
func (s *Set) ByKind(k Kind) []Token {
	var out []Token
	for _, t := range s.tokens {
		if t.Kind == k {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the total number of tokens.
func (s *Set) Len() int { return len(s.tokens) }

// Lookup returns the token name assigned to a value of the given kind,
// or "" when the value was never collected.
func (s *Set) Lookup(k Kind, value string) string {
	if i, ok := s.index[k.String()+"\x00"+value]; ok {
		return s.tokens[i].Name
	}
	return ""
}

// ColorName returns the token name assigned to a color, or "" when the
// color was never collected. Emitters use this to reference fills through
// token variables instead of repeating literal values.
func (s *Set) ColorName(c canonical.RGBA) string {
	return s.Lookup(Color, colorKey(c))
}

// colorEpsilon is the channel precision for color deduplication: two colors
// whose RGBA channels differ only below 1e-4 collapse into one token.
const colorEpsilon = 1e-4

// Extract walks the canonical tree and collects every resolved color, font
// descriptor, spacing value, and shadow into a deduplicated token set.
// Extract is pure and idempotent: re-running it over the same tree yields
// the same tokens with the same names in the same order.
func Extract(root *canonical.Node) *Set {
	s := &Set{
		index: make(map[string]int),
		names: make(map[string]int),
	}

	root.Walk(func(n *canonical.Node) {
		hint := n.Name

		if n.Style.Fill != nil {
			s.add(Color, hint, colorKey(*n.Style.Fill), n.Style.Fill.Hex())
		}
		if n.Style.Stroke != nil {
			s.add(Color, hint+"-border", colorKey(*n.Style.Stroke), n.Style.Stroke.Hex())
		}

		if n.Kind == canonical.KindText && n.Style.Font != nil {
			f := n.Style.Font
			key := fmt.Sprintf("%s|%g|%g|%g", f.Family, f.Weight, f.Size, f.LineHeight)
			s.add(Typography, hint, key, fontValue(f))
		}

		if al := n.AutoLayout; al != nil {
			if al.Gap > 0 {
				s.add(Spacing, hint+"-gap", formatPx(al.Gap), formatPx(al.Gap))
			}
			for _, v := range []float64{al.Padding.Top, al.Padding.Right, al.Padding.Bottom, al.Padding.Left} {
				if v > 0 {
					s.add(Spacing, hint+"-padding", formatPx(v), formatPx(v))
				}
			}
		}

		for _, sh := range n.Style.Shadows {
			v := shadowValue(sh)
			s.add(Shadow, hint, v, v)
		}
	})

	return s
}

// add records a value under the given kind unless an equal value was already
// seen, assigning the first-usage hint as the name with numeric suffixes on
// collision.
func (s *Set) add(kind Kind, hint, key, value string) {
	dedupKey := kind.String() + "\x00" + key
	if _, ok := s.index[dedupKey]; ok {
		return
	}

	name := hint
	nameKey := kind.String() + "\x00" + hint
	if count, taken := s.names[nameKey]; taken {
		s.names[nameKey] = count + 1
		name = fmt.Sprintf("%s-%d", hint, count+1)
	} else {
		s.names[nameKey] = 1
	}

	s.index[dedupKey] = len(s.tokens)
	s.tokens = append(s.tokens, Token{Kind: kind, Name: name, Value: value})
}

// colorKey rounds each channel to the dedup precision so rounding noise
// below colorEpsilon collapses to one token.
func colorKey(c canonical.RGBA) string {
	round := func(v float64) float64 {
		return math.Round(v/colorEpsilon) * colorEpsilon
	}
	return fmt.Sprintf("%.4f:%.4f:%.4f:%.4f", round(c.R), round(c.G), round(c.B), round(c.A))
}

// fontValue renders a font descriptor as a CSS font shorthand.
func fontValue(f *canonical.Font) string {
	if f.LineHeight > 0 {
		return fmt.Sprintf("%g %s/%s %s", f.Weight, formatPx(f.Size), formatPx(f.LineHeight), f.Family)
	}
	return fmt.Sprintf("%g %s %s", f.Weight, formatPx(f.Size), f.Family)
}

// shadowValue renders a shadow as a CSS box-shadow value.
func shadowValue(sh canonical.Shadow) string {
	prefix := ""
	if sh.Inset {
		prefix = "inset "
	}
	return fmt.Sprintf("%s%s %s %s %s %s",
		prefix, formatPx(sh.X), formatPx(sh.Y), formatPx(sh.Blur), formatPx(sh.Spread), rgbaValue(sh.Color))
}

func rgbaValue(c canonical.RGBA) string {
	r := int(c.R*255 + 0.5)
	g := int(c.G*255 + 0.5)
	b := int(c.B*255 + 0.5)
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", r, g, b, c.A)
}

// formatPx formats a pixel value, dropping the fraction for whole numbers.
func formatPx(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%dpx", int(v))
	}
	return fmt.Sprintf("%gpx", v)
}
