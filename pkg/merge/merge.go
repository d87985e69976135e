// Package merge implements the regeneration contract for generated files:
// content between the generation markers belongs to the generator, content
// outside them belongs to the user and survives regeneration byte-for-byte.
package merge

import (
	"fmt"
	"strings"
)

const (
	// StartMarker opens a generated region.
	StartMarker = "AUTO-GEN-START"
	// EndMarker closes a generated region.
	EndMarker = "AUTO-GEN-END"
)

// Region wraps generated content in markers using the given line-comment
// prefix and suffix ("// " and "" for TypeScript, "/* " and " */" for CSS,
// "<!-- " and " -->" for HTML).
func Region(prefix, suffix, content string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(StartMarker)
	b.WriteString(suffix)
	b.WriteString("\n")
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(prefix)
	b.WriteString(EndMarker)
	b.WriteString(suffix)
	b.WriteString("\n")
	return b.String()
}

// Merge replaces every generated region in existing with the corresponding
// region from generated, preserving everything outside the markers. The
// regions are matched in order. When existing has no markers it is treated
// as fully hand-written and returned unchanged with ok=false; callers then
// decide whether to overwrite or skip.
func Merge(existing, generated string) (merged string, ok bool, err error) {
	exRegions, err := splitRegions(existing)
	if err != nil {
		return "", false, fmt.Errorf("existing file: %w", err)
	}
	if len(exRegions.generated) == 0 {
		return existing, false, nil
	}

	genRegions, err := splitRegions(generated)
	if err != nil {
		return "", false, fmt.Errorf("generated content: %w", err)
	}
	if len(genRegions.generated) < len(exRegions.generated) {
		return "", false, fmt.Errorf("existing file has %d generated regions, new content has %d",
			len(exRegions.generated), len(genRegions.generated))
	}

	var b strings.Builder
	for i, manual := range exRegions.manual {
		b.WriteString(manual)
		if i < len(exRegions.generated) {
			b.WriteString(genRegions.generated[i])
		}
	}
	return b.String(), true, nil
}

// regions is a file split into alternating manual and generated spans.
// manual always has one more entry than generated: the spans before, between,
// and after the marked regions.
type regions struct {
	manual    []string
	generated []string
}

// splitRegions splits file content on marker lines. The marker lines
// themselves belong to the generated span so regeneration rewrites them.
func splitRegions(content string) (regions, error) {
	var r regions
	rest := content
	for {
		startLine, startIdx := findMarkerLine(rest, StartMarker)
		if startIdx < 0 {
			r.manual = append(r.manual, rest)
			return r, nil
		}
		afterStart := rest[startIdx+len(startLine):]
		endLine, endIdx := findMarkerLine(afterStart, EndMarker)
		if endIdx < 0 {
			return regions{}, fmt.Errorf("unterminated %s region", StartMarker)
		}

		r.manual = append(r.manual, rest[:startIdx])
		genEnd := startIdx + len(startLine) + endIdx + len(endLine)
		r.generated = append(r.generated, rest[startIdx:genEnd])
		rest = rest[genEnd:]
	}
}

// findMarkerLine locates the first line containing the marker and returns
// the full line (including its trailing newline when present) and its byte
// offset, or -1 when absent.
func findMarkerLine(content, marker string) (string, int) {
	idx := strings.Index(content, marker)
	if idx < 0 {
		return "", -1
	}
	lineStart := strings.LastIndex(content[:idx], "\n") + 1
	lineEnd := strings.Index(content[idx:], "\n")
	if lineEnd < 0 {
		return content[lineStart:], lineStart
	}
	return content[lineStart : idx+lineEnd+1], lineStart
}
