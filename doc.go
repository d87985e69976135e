// Package figmaforge converts Figma design trees into framework component
// sources. The pipeline normalizes the loosely-typed API document into a
// canonical node model, derives design tokens, variant properties,
// interaction states, and layout flow from it, then emits Angular, React,
// SCSS, or Tailwind sources. Files using the Figma Variables API can
// additionally have their variable collections extracted into a variables
// stylesheet, modes included.
//
// The CLI lives in cmd/figmaforge; this root package exposes the same
// pipeline as a Go API so that callers can embed generation in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmaforge:
//
//	import "github.com/hellenic-development/figma-forge" // package figmaforge
//
// # Quick start
//
//	result, err := figmaforge.Run(figmaforge.Options{
//	    AccessToken: os.Getenv("FIGMA_TOKEN"),
//	    FileURL:     "https://www.figma.com/design/ABC123/My-Design",
//	    Target:      "react",
//	    OutputDir:   "src/components/generated",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range result.Components {
//	    log.Printf("generated %s (%d files)", c.Model.Name, len(c.Written))
//	}
//
// # Regeneration contract
//
// Generated files wrap their content in AUTO-GEN-START / AUTO-GEN-END
// marker comments. On regeneration only the marked regions are rewritten;
// everything a user added outside them survives byte-for-byte, and files
// without markers are never touched.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
// # Watch mode
//
// [Watch] polls the file's lastModified stamp and reruns the conversion
// whenever the design changes:
//
//	err := figmaforge.Watch(ctx, figmaforge.WatchOptions{
//	    Options:  opts,
//	    Interval: 30 * time.Second,
//	})
package figmaforge
