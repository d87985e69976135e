// Package assets downloads the image fills referenced by a component model
// and saves them under the filenames the model assigned. Downloads run
// concurrently with a bounded worker count; a single failed image is
// reported, not fatal, so one broken CDN link does not sink a whole
// conversion.
package assets

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/hellenic-development/figma-forge/pkg/figma"
)

const (
	maxNodesPerRequest   = 100
	maxParallelDownloads = 5
)

// Downloader fetches rendered images through the API and writes them to
// disk.
type Downloader struct {
	client *figma.Client

	// httpClient fetches the rendered image URLs, which live on a CDN
	// outside the API host.
	httpClient *http.Client
}

// NewDownloader returns a downloader backed by the given API client.
func NewDownloader(client *figma.Client) *Downloader {
	return &Downloader{client: client, httpClient: http.DefaultClient}
}

// Result lists the files written and the per-image failures.
type Result struct {
	Saved  []string
	Errors []error
}

// Download renders the given nodes (node ID -> target filename) as PNGs and
// saves them into dir. The API is called in batches; the returned error is
// non-nil only for failures that sink the whole operation, per-image
// problems land in Result.Errors.
func (d *Downloader) Download(fileKey string, nodes map[string]string, dir string) (*Result, error) {
	result := &Result{}
	if len(nodes) == 0 {
		return result, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset directory %q: %w", dir, err)
	}

	nodeIDs := make([]string, 0, len(nodes))
	for id := range nodes {
		nodeIDs = append(nodeIDs, id)
	}

	for i := 0; i < len(nodeIDs); i += maxNodesPerRequest {
		end := i + maxNodesPerRequest
		if end > len(nodeIDs) {
			end = len(nodeIDs)
		}
		batch := nodeIDs[i:end]

		imgResp, err := d.client.GetImages(fileKey, batch, "png", 1)
		if err != nil {
			return nil, fmt.Errorf("render images: %w", err)
		}

		var wg sync.WaitGroup
		sem := make(chan struct{}, maxParallelDownloads)
		var mu sync.Mutex

		for _, nodeID := range batch {
			url := imgResp.Images[nodeID]
			if url == "" {
				mu.Lock()
				result.Errors = append(result.Errors, fmt.Errorf("no image URL returned for node %s", nodeID))
				mu.Unlock()
				continue
			}

			wg.Add(1)
			go func(nodeID, url string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				dest := filepath.Join(dir, nodes[nodeID])
				err := d.fetch(url, dest)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("download %s: %w", nodes[nodeID], err))
					return
				}
				result.Saved = append(result.Saved, nodes[nodeID])
			}(nodeID, url)
		}

		wg.Wait()
	}

	return result, nil
}

func (d *Downloader) fetch(url, dest string) error {
	resp, err := d.httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading image", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create file %q: %w", dest, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write file %q: %w", dest, err)
	}
	return nil
}
