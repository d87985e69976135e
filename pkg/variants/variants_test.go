package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-forge/pkg/canonical"
)

func member(id, rawName string) *canonical.Node {
	return &canonical.Node{ID: id, RawName: rawName, Kind: canonical.KindComponent}
}

func TestExtractEnumProperties(t *testing.T) {
	s := Extract([]*canonical.Node{
		member("1:1", "State=Default, Size=Large"),
		member("1:2", "State=Hover, Size=Large"),
		member("1:3", "State=Default, Size=Small"),
	})
	require.NotNil(t, s)

	require.Len(t, s.Properties, 2)
	state := s.Property("state")
	require.NotNil(t, state)
	assert.Equal(t, Enum, state.Kind)
	assert.Equal(t, []string{"Default", "Hover"}, state.Values)

	size := s.Property("size")
	require.NotNil(t, size)
	assert.Equal(t, []string{"Large", "Small"}, size.Values)

	require.Len(t, s.Members, 3)
	assert.Equal(t, map[string]string{"state": "Default", "size": "Large"}, s.Members[0].Values)
}

func TestExtractKeepsDeclaredValueSpelling(t *testing.T) {
	s := Extract([]*canonical.Node{
		member("1:1", "State=Default, Size=Large"),
		member("1:2", "State=Hover, Size=Large"),
	})
	require.NotNil(t, s)

	// Property names normalize, values carry the design's own casing.
	state := s.Property("state")
	require.NotNil(t, state)
	assert.Equal(t, []string{"Default", "Hover"}, state.Values)
	assert.Equal(t, "Default", state.Default())
	require.NotNil(t, s.Default)
	assert.Equal(t, "1:1", s.Default.Node.ID)
}

func TestExtractBooleanInference(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{name: "true/false", names: []string{"Disabled=true", "Disabled=false"}},
		{name: "mixed case", names: []string{"Disabled=True", "Disabled=False"}},
		{name: "yes/no", names: []string{"Disabled=Yes", "Disabled=No"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nodes []*canonical.Node
			for i, n := range tt.names {
				nodes = append(nodes, member(string(rune('a'+i)), n))
			}

			s := Extract(nodes)
			require.NotNil(t, s)
			p := s.Property("disabled")
			require.NotNil(t, p)
			assert.Equal(t, Boolean, p.Kind)
			assert.Equal(t, []string{"true", "false"}, p.Values)
			assert.Equal(t, "true", s.Members[0].Values["disabled"])
			assert.Equal(t, "false", s.Members[1].Values["disabled"])
		})
	}
}

func TestExtractLoneBooleanValueStaysEnum(t *testing.T) {
	s := Extract([]*canonical.Node{
		member("1:1", "Disabled=true, Size=Large"),
		member("1:2", "Disabled=true, Size=Small"),
	})
	require.NotNil(t, s)

	// Boolean needs the full pair observed; a single "true" is an enum of one.
	p := s.Property("disabled")
	require.NotNil(t, p)
	assert.Equal(t, Enum, p.Kind)
	assert.Equal(t, []string{"true"}, p.Values)
}

func TestExtractBooleanConflictStaysEnum(t *testing.T) {
	s := Extract([]*canonical.Node{
		member("1:1", "Disabled=true"),
		member("1:2", "Disabled=no"),
	})
	require.NotNil(t, s)

	p := s.Property("disabled")
	require.NotNil(t, p)
	// Vocabularies from both boolean pairs read as a conflict, so the
	// property keeps its literal values as an enum.
	assert.Equal(t, Enum, p.Kind)
	assert.Equal(t, []string{"true", "no"}, p.Values)
}

func TestExtractNonBooleanValueStaysEnum(t *testing.T) {
	s := Extract([]*canonical.Node{
		member("1:1", "Size=true"),
		member("1:2", "Size=large"),
	})
	require.NotNil(t, s)
	assert.Equal(t, Enum, s.Property("size").Kind)
}

func TestExtractCamelCasePropertyNames(t *testing.T) {
	s := Extract([]*canonical.Node{
		member("1:1", "Icon Position=Left, Has_Label=true"),
		member("1:2", "Icon Position=Right, Has_Label=false"),
	})
	require.NotNil(t, s)

	require.NotNil(t, s.Property("iconPosition"))
	require.NotNil(t, s.Property("hasLabel"))
	assert.Equal(t, []string{"Left", "Right"}, s.Property("iconPosition").Values)
}

func TestExtractDefaultMember(t *testing.T) {
	s := Extract([]*canonical.Node{
		member("1:1", "State=Hover, Size=Large"),
		member("1:2", "State=Hover, Size=Small"),
		member("1:3", "State=Large, Size=Hover"), // values crossed on purpose
	})
	require.NotNil(t, s)

	// First-declared value of every property: state=hover, size=large.
	require.NotNil(t, s.Default)
	assert.Equal(t, "1:1", s.Default.Node.ID)
}

func TestExtractDefaultFallsBackToFirstMember(t *testing.T) {
	s := Extract([]*canonical.Node{
		member("1:1", "State=Hover"),
		member("1:2", "State=Focus"),
		member("1:3", "Size=Large"), // no member carries both defaults
	})
	require.NotNil(t, s)
	require.NotNil(t, s.Default)
	assert.Equal(t, "1:1", s.Default.Node.ID)
}

func TestExtractUnparseableNameReturnsNil(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{name: "plain name", names: []string{"Primary Button"}},
		{name: "one bad member", names: []string{"State=Default", "Just A Button"}},
		{name: "empty key", names: []string{"=Default"}},
		{name: "empty value", names: []string{"State="}},
		{name: "no members", names: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nodes []*canonical.Node
			for i, n := range tt.names {
				nodes = append(nodes, member(string(rune('a'+i)), n))
			}
			assert.Nil(t, Extract(nodes))
		})
	}
}

func TestExtractValueOrderIsFirstDeclared(t *testing.T) {
	s := Extract([]*canonical.Node{
		member("1:1", "Size=Medium"),
		member("1:2", "Size=Small"),
		member("1:3", "Size=Large"),
		member("1:4", "Size=Small"),
	})
	require.NotNil(t, s)
	assert.Equal(t, []string{"Medium", "Small", "Large"}, s.Property("size").Values)
}
