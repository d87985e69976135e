package assets

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-forge/pkg/figma"
)

func newTestDownloader(apiURL string) *Downloader {
	c := figma.NewClient("test-token")
	c.SetBaseURL(apiURL)
	return NewDownloader(c)
}

func TestDownloadSavesFiles(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "png-bytes-for%s", r.URL.Path)
	}))
	defer cdn.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"err":null,"images":{"1:2":%q,"1:3":%q}}`, cdn.URL+"/a", cdn.URL+"/b")
	}))
	defer api.Close()

	dir := t.TempDir()
	result, err := newTestDownloader(api.URL).Download("KEY", map[string]string{
		"1:2": "hero.png",
		"1:3": "avatar.png",
	}, dir)
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	assert.ElementsMatch(t, []string{"hero.png", "avatar.png"}, result.Saved)

	data, err := os.ReadFile(filepath.Join(dir, "hero.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes-for/a", string(data))
}

func TestDownloadMissingURLIsNonFatal(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"err":null,"images":{"1:2":""}}`)
	}))
	defer api.Close()

	result, err := newTestDownloader(api.URL).Download("KEY", map[string]string{"1:2": "hero.png"}, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, result.Saved)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error(), "1:2")
}

func TestDownloadFailedFetchIsNonFatal(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer cdn.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"err":null,"images":{"1:2":%q,"1:3":%q}}`, cdn.URL+"/broken", cdn.URL+"/fine")
	}))
	defer api.Close()

	result, err := newTestDownloader(api.URL).Download("KEY", map[string]string{
		"1:2": "broken.png",
		"1:3": "fine.png",
	}, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"fine.png"}, result.Saved)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error(), "broken.png")
}

func TestDownloadNothingToDo(t *testing.T) {
	result, err := NewDownloader(figma.NewClient("tok")).Download("KEY", nil, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, result.Saved)
	assert.Empty(t, result.Errors)
}
