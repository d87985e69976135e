// Package generator orchestrates the conversion pipeline: raw document tree
// in, complete component model out. The stages always run in the same order
// and the first fatal error aborts the build; a model is either complete or
// absent, never partial.
package generator

import (
	"fmt"
	"strings"

	"github.com/hellenic-development/figma-forge/pkg/canonical"
	"github.com/hellenic-development/figma-forge/pkg/figma"
	"github.com/hellenic-development/figma-forge/pkg/layout"
	"github.com/hellenic-development/figma-forge/pkg/states"
	"github.com/hellenic-development/figma-forge/pkg/tokens"
	"github.com/hellenic-development/figma-forge/pkg/variants"
)

// Options configures model building.
type Options struct {
	// IncludeHidden keeps design layers marked invisible.
	IncludeHidden bool
}

// ComponentModel is everything the emitters need to generate one component:
// the canonical tree plus every derived view of it.
type ComponentModel struct {
	Name     string // sanitized component name
	Root     *canonical.Node
	Tokens   *tokens.Set
	Variants *variants.Set // nil unless the root is a component set with variant grammar
	States   []states.State
	Flow     *layout.Flow // nil when the root has no auto-layout hint

	// Assets maps emitted asset filenames to the image references that
	// back them. Filenames are unique within the model.
	Assets map[string]string

	Diagnostics []canonical.Diagnostic

	// node ID -> asset filename, for emitters referencing image fills
	assetByNode map[string]string
}

// AssetFile returns the asset filename assigned to a node's image fill,
// or "" when the node has none.
func (m *ComponentModel) AssetFile(n *canonical.Node) string {
	return m.assetByNode[n.ID]
}

// AssetNodes returns the node ID to asset filename mapping for every node
// carrying an image fill. Downloaders render these nodes through the images
// API and save them under the returned names.
func (m *ComponentModel) AssetNodes() map[string]string {
	out := make(map[string]string, len(m.assetByNode))
	for id, name := range m.assetByNode {
		out[id] = name
	}
	return out
}

// BuildModel runs the full pipeline over one raw node tree. The stage order
// is fixed: normalize, tokens, variants, states, layout, assets. Later
// stages consume earlier stages' output and never re-read the raw tree.
func BuildModel(raw *figma.Node, opts Options) (*ComponentModel, error) {
	root, diags, err := canonical.Normalize(raw, canonical.Options{IncludeHidden: opts.IncludeHidden})
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	m := &ComponentModel{
		Name:        root.Name,
		Root:        root,
		Diagnostics: diags,
	}

	m.Tokens = tokens.Extract(root)

	if root.Kind == canonical.KindComponentSet && len(root.Children) > 0 {
		m.Variants = variants.Extract(root.Children)
	}

	m.States = states.Extract(m.Variants, root)
	m.Flow = layout.DeriveFlow(root)
	m.Assets, m.assetByNode = collectAssets(root)

	return m, nil
}

// Representative returns the node emitters should render as the component
// body: the variant default member when one exists, the root otherwise.
func (m *ComponentModel) Representative() *canonical.Node {
	if m.Variants != nil && m.Variants.Default != nil {
		return m.Variants.Default.Node
	}
	return m.Root
}

// PascalName returns the component name in PascalCase for class and type
// identifiers.
func (m *ComponentModel) PascalName() string {
	return PascalCase(m.Name)
}

// PascalCase converts a sanitized kebab-case name into PascalCase.
func PascalCase(kebab string) string {
	var b strings.Builder
	for _, w := range strings.Split(kebab, "-") {
		if w == "" {
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

// collectAssets walks the tree and assigns a unique filename to every node
// carrying an image fill. Filenames derive from node names; collisions get
// numeric suffixes in traversal order so regeneration is stable.
func collectAssets(root *canonical.Node) (assets, byNode map[string]string) {
	assets = make(map[string]string)
	byNode = make(map[string]string)
	taken := make(map[string]int)

	root.Walk(func(n *canonical.Node) {
		if n.ImageRef == "" {
			return
		}
		base := n.Name
		name := base + ".png"
		if count, ok := taken[base]; ok {
			taken[base] = count + 1
			name = fmt.Sprintf("%s-%d.png", base, count+1)
		} else {
			taken[base] = 1
		}
		assets[name] = n.ImageRef
		byNode[n.ID] = name
	})

	return assets, byNode
}
