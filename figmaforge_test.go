package figmaforge

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-forge/pkg/cache"
)

const fileJSON = `{
	"name": "Design System",
	"lastModified": "2026-08-20T10:00:00Z",
	"document": {
		"id": "0:0", "name": "Document", "type": "DOCUMENT",
		"children": [{
			"id": "0:1", "name": "Page 1", "type": "CANVAS",
			"absoluteBoundingBox": {"x": 0, "y": 0, "width": 1000, "height": 1000},
			"children": [{
				"id": "1:1", "name": "Primary Button", "type": "COMPONENT",
				"absoluteBoundingBox": {"x": 0, "y": 0, "width": 120, "height": 40},
				"layoutMode": "HORIZONTAL", "itemSpacing": 8,
				"fills": [{"type": "SOLID", "color": {"r": 0.2, "g": 0.4, "b": 0.6, "a": 1}}],
				"children": [{
					"id": "1:2", "name": "Label", "type": "TEXT",
					"absoluteBoundingBox": {"x": 16, "y": 10, "width": 88, "height": 20},
					"characters": "Save",
					"style": {"fontFamily": "Inter", "fontSize": 14, "fontWeight": 600}
				}]
			}]
		}]
	}
}`

func newAPIServer(t *testing.T, fileRequests *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fileRequests != nil {
			fileRequests.Add(1)
		}
		w.Write([]byte(fileJSON))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunGeneratesComponent(t *testing.T) {
	srv := newAPIServer(t, nil)
	out := t.TempDir()

	result, err := Run(Options{
		AccessToken: "tok",
		FileURL:     "https://www.figma.com/file/ABC123/Design",
		Target:      "react",
		OutputDir:   out,
		apiBaseURL:  srv.URL,
	})
	require.NoError(t, err)

	assert.Equal(t, "Design System", result.FileName)
	require.Len(t, result.Components, 1)
	comp := result.Components[0]
	assert.Equal(t, "primary-button", comp.Model.Name)
	assert.ElementsMatch(t, []string{"PrimaryButton.tsx", "primary-button.css"}, comp.Written)

	tsx, err := os.ReadFile(filepath.Join(out, "PrimaryButton.tsx"))
	require.NoError(t, err)
	assert.Contains(t, string(tsx), "export function PrimaryButton()")
	assert.Contains(t, string(tsx), `<span className="primary-button__label">Save</span>`)
}

func TestRunMergesManualEdits(t *testing.T) {
	srv := newAPIServer(t, nil)
	out := t.TempDir()
	opts := Options{
		AccessToken: "tok",
		FileURL:     "https://www.figma.com/file/ABC123/Design",
		Target:      "react",
		OutputDir:   out,
		apiBaseURL:  srv.URL,
	}

	_, err := Run(opts)
	require.NoError(t, err)

	// Simulate a hand-written addition outside the generated region.
	path := filepath.Join(out, "PrimaryButton.tsx")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	edited := string(content) + "\nexport const handWritten = true;\n"
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	_, err = Run(opts)
	require.NoError(t, err)

	merged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(merged), "export const handWritten = true;")
	assert.Contains(t, string(merged), "export function PrimaryButton()")
}

func TestRunSkipsUnmarkedFiles(t *testing.T) {
	srv := newAPIServer(t, nil)
	out := t.TempDir()

	// A fully hand-written file at a generated path must survive untouched.
	handWritten := "const precious = 1;\n"
	require.NoError(t, os.WriteFile(filepath.Join(out, "PrimaryButton.tsx"), []byte(handWritten), 0o644))

	result, err := Run(Options{
		AccessToken: "tok",
		FileURL:     "https://www.figma.com/file/ABC123/Design",
		Target:      "react",
		OutputDir:   out,
		apiBaseURL:  srv.URL,
	})
	require.NoError(t, err)

	require.Len(t, result.Components, 1)
	assert.Contains(t, result.Components[0].Skipped, "PrimaryButton.tsx")

	got, err := os.ReadFile(filepath.Join(out, "PrimaryButton.tsx"))
	require.NoError(t, err)
	assert.Equal(t, handWritten, string(got))
}

const variablesJSON = `{"meta":{
	"variableCollections":{"VC:1":{"id":"VC:1","name":"Colors","modes":[{"modeId":"1:0","name":"Light"},{"modeId":"1:1","name":"Dark"}],"defaultModeId":"1:0","variableIds":["V:1"]}},
	"variables":{"V:1":{"id":"V:1","name":"Brand/Primary","variableCollectionId":"VC:1","resolvedType":"COLOR","valuesByMode":{"1:0":{"r":0.2,"g":0.4,"b":0.6,"a":1},"1:1":{"r":0.1,"g":0.1,"b":0.2,"a":1}}}}}}`

func TestRunWritesVariables(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/ABC123", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fileJSON))
	})
	mux.HandleFunc("/files/ABC123/variables/local", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(variablesJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	out := t.TempDir()
	result, err := Run(Options{
		AccessToken:      "tok",
		FileURL:          "https://www.figma.com/file/ABC123/Design",
		Target:           "react",
		OutputDir:        out,
		IncludeVariables: true,
		apiBaseURL:       srv.URL,
	})
	require.NoError(t, err)
	require.Len(t, result.Variables, 1)
	assert.Equal(t, "colors", result.Variables[0].Name)

	css, err := os.ReadFile(filepath.Join(out, "variables.css"))
	require.NoError(t, err)
	assert.Contains(t, string(css), "--brand-primary: #336699;")
	assert.Contains(t, string(css), `[data-theme="dark"] {`)
}

// A file without variables (the endpoint 404s) must not fail the run.
func TestRunVariablesUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/ABC123", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fileJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	out := t.TempDir()
	result, err := Run(Options{
		AccessToken:      "tok",
		FileURL:          "https://www.figma.com/file/ABC123/Design",
		Target:           "react",
		OutputDir:        out,
		IncludeVariables: true,
		apiBaseURL:       srv.URL,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Variables)
	require.Len(t, result.Components, 1)

	_, err = os.Stat(filepath.Join(out, "variables.css"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunUsesCache(t *testing.T) {
	var requests atomic.Int64
	srv := newAPIServer(t, &requests)

	opts := Options{
		AccessToken: "tok",
		FileURL:     "https://www.figma.com/file/ABC123/Design",
		Target:      "scss",
		OutputDir:   t.TempDir(),
		Cache:       cache.New(t.TempDir(), time.Hour),
		apiBaseURL:  srv.URL,
	}

	_, err := Run(opts)
	require.NoError(t, err)
	first := requests.Load()

	_, err = Run(opts)
	require.NoError(t, err)
	assert.Equal(t, first, requests.Load(), "second run should be served from cache")
}

func TestRunBadURL(t *testing.T) {
	_, err := Run(Options{AccessToken: "tok", FileURL: "https://example.com/nope"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "extract file key"))
}

func TestRunUnknownTarget(t *testing.T) {
	_, err := Run(Options{
		AccessToken: "tok",
		FileURL:     "https://www.figma.com/file/ABC123/Design",
		Target:      "vue",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vue")
}
