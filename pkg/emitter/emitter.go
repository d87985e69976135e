// Package emitter renders a component model into framework source files.
// Each target (angular, react, scss, tailwind) implements the Emitter
// interface over the same model; the stylesheet targets share one CSS
// rendering core so the visual output is identical regardless of framework.
package emitter

import (
	"fmt"

	"github.com/hellenic-development/figma-forge/pkg/generator"
)

// File is one generated source file, path relative to the output directory.
type File struct {
	Path    string
	Content string
}

// Emitter renders a component model into source files for one target.
type Emitter interface {
	// Name is the target name users select on the command line.
	Name() string
	Emit(m *generator.ComponentModel) ([]File, error)
}

// ForTarget returns the emitter for a target name.
func ForTarget(name string) (Emitter, error) {
	switch name {
	case "angular":
		return &Angular{}, nil
	case "react":
		return &React{}, nil
	case "scss":
		return &SCSS{}, nil
	case "tailwind":
		return &Tailwind{}, nil
	default:
		return nil, fmt.Errorf("unknown target %q (supported: angular, react, scss, tailwind)", name)
	}
}

// Targets lists the supported target names.
func Targets() []string {
	return []string{"angular", "react", "scss", "tailwind"}
}
