package figmaforge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hellenic-development/figma-forge/pkg/assets"
	"github.com/hellenic-development/figma-forge/pkg/cache"
	"github.com/hellenic-development/figma-forge/pkg/emitter"
	"github.com/hellenic-development/figma-forge/pkg/figma"
	"github.com/hellenic-development/figma-forge/pkg/generator"
	"github.com/hellenic-development/figma-forge/pkg/merge"
	"github.com/hellenic-development/figma-forge/pkg/tokens"
)

// Version is the figma-forge release version reported by the CLI.
const Version = "1.0.0"

// Options configures a conversion run.
type Options struct {
	AccessToken string
	FileURL     string   // Figma file URL
	NodeIDs     []string // empty = every top-level frame of the first page

	Target    string // "angular", "react", "scss", "tailwind"
	OutputDir string
	AssetsDir string // relative to OutputDir

	IncludeHidden  bool
	DownloadAssets bool
	// IncludeVariables also fetches the file's design variables and writes
	// them as a variables stylesheet alongside the components.
	IncludeVariables bool

	// Cache, when non-nil, short-circuits repeated API fetches.
	Cache *cache.Cache

	Logger Logger // nil = no logging

	// apiBaseURL overrides the API host in tests.
	apiBaseURL string
}

func (o *Options) newClient() *figma.Client {
	client := figma.NewClient(o.AccessToken)
	if o.apiBaseURL != "" {
		client.SetBaseURL(o.apiBaseURL)
	}
	return client
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// GeneratedComponent is the outcome for one component root.
type GeneratedComponent struct {
	Model   *generator.ComponentModel
	Written []string // files created or merged
	Skipped []string // existing files without generation markers, left alone
}

// Result contains the conversion output.
type Result struct {
	FileName     string
	LastModified string
	Components   []GeneratedComponent
	AssetErrors  []error

	// Variables holds the file's variable collections when
	// Options.IncludeVariables was set and the file defines any.
	Variables []tokens.VariableGroup
}

// Run executes the full conversion pipeline: fetch, normalize, extract,
// emit, write. Component-level interpretation issues surface as warnings;
// only malformed input, API failures, and write failures abort the run.
func Run(opts Options) (*Result, error) {
	applyDefaults(&opts)

	fileKey, err := figma.ExtractFileKey(opts.FileURL)
	if err != nil {
		return nil, fmt.Errorf("extract file key: %w", err)
	}

	targetNodeIDs := opts.NodeIDs
	if len(targetNodeIDs) == 0 {
		if targetNodeIDs, err = figma.ExtractNodeIDs(opts.FileURL); err != nil {
			return nil, fmt.Errorf("extract node IDs from URL: %w", err)
		}
	}

	em, err := emitter.ForTarget(opts.Target)
	if err != nil {
		return nil, err
	}

	client := opts.newClient()

	opts.logInfo("Fetching file %s...", fileKey)
	fileResp, err := fetchFile(&opts, client, fileKey)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	opts.logInfo("File: %s (last modified %s)", fileResp.Name, fileResp.LastModified)

	roots, err := componentRoots(&opts, client, fileKey, fileResp, targetNodeIDs)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, errors.New("no component roots found in file")
	}
	opts.logInfo("Converting %d component root(s)...", len(roots))

	result := &Result{FileName: fileResp.Name, LastModified: fileResp.LastModified}

	for _, root := range roots {
		m, err := generator.BuildModel(root, generator.Options{IncludeHidden: opts.IncludeHidden})
		if err != nil {
			return nil, fmt.Errorf("build model for %q: %w", root.Name, err)
		}
		for _, d := range m.Diagnostics {
			opts.logWarn("%s", d)
		}

		files, err := em.Emit(m)
		if err != nil {
			return nil, fmt.Errorf("emit %q: %w", m.Name, err)
		}

		gc := GeneratedComponent{Model: m}
		for _, f := range files {
			written, err := writeGenerated(filepath.Join(opts.OutputDir, f.Path), f.Content)
			if err != nil {
				return nil, err
			}
			if written {
				gc.Written = append(gc.Written, f.Path)
			} else {
				opts.logWarn("%s exists without generation markers, leaving it alone", f.Path)
				gc.Skipped = append(gc.Skipped, f.Path)
			}
		}
		opts.logInfo("Generated %s (%d file(s))", m.Name, len(gc.Written))

		if opts.DownloadAssets && len(m.Assets) > 0 {
			assetDir := filepath.Join(opts.OutputDir, opts.AssetsDir)
			opts.logInfo("Downloading %d asset(s) to %s...", len(m.Assets), assetDir)
			dl, err := assets.NewDownloader(client).Download(fileKey, m.AssetNodes(), assetDir)
			if err != nil {
				return nil, fmt.Errorf("download assets for %q: %w", m.Name, err)
			}
			for _, dlErr := range dl.Errors {
				opts.logWarn("%v", dlErr)
			}
			result.AssetErrors = append(result.AssetErrors, dl.Errors...)
		}

		result.Components = append(result.Components, gc)
	}

	if opts.IncludeVariables {
		if err := writeVariables(&opts, client, fileKey, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// writeVariables fetches the file's local variables and writes the variables
// stylesheet. Files without variables (or tokens without the variables
// scope) degrade to a warning rather than failing the run.
func writeVariables(opts *Options, client *figma.Client, fileKey string, result *Result) error {
	resp, err := fetchVariables(opts, client, fileKey)
	if err != nil {
		var apiErr *figma.APIError
		if errors.As(err, &apiErr) && (apiErr.Kind == figma.ErrNotFound || apiErr.Kind == figma.ErrUnauthorized) {
			opts.logWarn("Variables unavailable for this file: %v", err)
			return nil
		}
		return fmt.Errorf("fetch variables: %w", err)
	}

	groups := tokens.ExtractVariables(resp)
	if len(groups) == 0 {
		opts.logInfo("File defines no variables")
		return nil
	}

	f := emitter.VariablesSheet(opts.Target, groups)
	written, err := writeGenerated(filepath.Join(opts.OutputDir, f.Path), f.Content)
	if err != nil {
		return err
	}
	if !written {
		opts.logWarn("%s exists without generation markers, leaving it alone", f.Path)
		return nil
	}

	opts.logInfo("Wrote %d variable collection(s) to %s", len(groups), f.Path)
	result.Variables = groups
	return nil
}

func fetchVariables(opts *Options, client *figma.Client, fileKey string) (*figma.VariablesResponse, error) {
	key := "variables:" + fileKey
	if opts.Cache != nil {
		var cached figma.VariablesResponse
		if opts.Cache.Get(key, &cached) {
			opts.logInfo("Using cached variable data")
			return &cached, nil
		}
	}
	resp, err := client.GetLocalVariables(fileKey)
	if err != nil {
		return nil, err
	}
	if opts.Cache != nil {
		if err := opts.Cache.Put(key, resp); err != nil {
			opts.logWarn("Cache write failed: %v", err)
		}
	}
	return resp, nil
}

func applyDefaults(opts *Options) {
	if opts.Target == "" {
		opts.Target = "angular"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "generated"
	}
	if opts.AssetsDir == "" {
		opts.AssetsDir = "assets"
	}
}

// fetchFile loads the file document, through the cache when one is
// configured.
func fetchFile(opts *Options, client *figma.Client, fileKey string) (*figma.FileResponse, error) {
	key := "file:" + fileKey
	if opts.Cache != nil {
		var cached figma.FileResponse
		if opts.Cache.Get(key, &cached) {
			opts.logInfo("Using cached file data")
			return &cached, nil
		}
	}
	resp, err := client.GetFile(fileKey)
	if err != nil {
		return nil, err
	}
	if opts.Cache != nil {
		if err := opts.Cache.Put(key, resp); err != nil {
			opts.logWarn("Cache write failed: %v", err)
		}
	}
	return resp, nil
}

// componentRoots resolves the raw nodes to convert: the requested nodes, or
// every top-level frame of the first page when none were requested.
func componentRoots(opts *Options, client *figma.Client, fileKey string, fileResp *figma.FileResponse, nodeIDs []string) ([]*figma.Node, error) {
	if len(nodeIDs) == 0 {
		if len(fileResp.Document.Children) == 0 {
			return nil, nil
		}
		page := &fileResp.Document.Children[0]
		roots := make([]*figma.Node, 0, len(page.Children))
		for i := range page.Children {
			roots = append(roots, &page.Children[i])
		}
		return roots, nil
	}

	key := "nodes:" + fileKey + ":" + strings.Join(nodeIDs, ",")
	var nodesResp *figma.NodesResponse
	if opts.Cache != nil {
		var cached figma.NodesResponse
		if opts.Cache.Get(key, &cached) {
			opts.logInfo("Using cached node data")
			nodesResp = &cached
		}
	}
	if nodesResp == nil {
		var err error
		if nodesResp, err = client.GetFileNodes(fileKey, nodeIDs); err != nil {
			return nil, fmt.Errorf("fetch nodes: %w", err)
		}
		if opts.Cache != nil {
			if err := opts.Cache.Put(key, nodesResp); err != nil {
				opts.logWarn("Cache write failed: %v", err)
			}
		}
	}

	roots := make([]*figma.Node, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		nd, ok := nodesResp.Nodes[id]
		if !ok {
			return nil, fmt.Errorf("node %s not found in file", id)
		}
		doc := nd.Document
		roots = append(roots, &doc)
	}
	return roots, nil
}

// writeGenerated writes content to path, merging into an existing file when
// it carries generation markers. It reports false when the existing file has
// no markers and was left untouched.
func writeGenerated(path, content string) (bool, error) {
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return false, fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return false, fmt.Errorf("write %s: %w", path, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	merged, ok, err := merge.Merge(string(existing), content)
	if err != nil {
		return false, fmt.Errorf("merge %s: %w", path, err)
	}
	if !ok {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(merged), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// WatchOptions configures watch mode.
type WatchOptions struct {
	Options
	// Interval is the polling interval for change detection.
	Interval time.Duration
	// OnRun receives the outcome of every conversion attempt.
	OnRun func(*Result, error)
}

// Watch converts once, then polls the file's lastModified stamp and
// reconverts whenever it changes, until the context is canceled. Poll
// failures are reported through the logger and retried on the next tick.
func Watch(ctx context.Context, opts WatchOptions) error {
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	applyDefaults(&opts.Options)

	fileKey, err := figma.ExtractFileKey(opts.FileURL)
	if err != nil {
		return fmt.Errorf("extract file key: %w", err)
	}
	client := opts.newClient()

	runOnce := func() string {
		result, err := Run(opts.Options)
		if opts.OnRun != nil {
			opts.OnRun(result, err)
		}
		if err != nil {
			opts.logWarn("Conversion failed: %v", err)
			return ""
		}
		return result.LastModified
	}

	lastModified := runOnce()

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			resp, err := client.GetFile(fileKey)
			if err != nil {
				opts.logWarn("Poll failed: %v", err)
				continue
			}
			if resp.LastModified == lastModified {
				continue
			}
			opts.logInfo("File changed at %s, regenerating...", resp.LastModified)
			// A stale cache would hand the previous revision right back.
			if opts.Cache != nil {
				if err := opts.Cache.Clear(); err != nil {
					opts.logWarn("Cache clear failed: %v", err)
				}
			}
			if lm := runOnce(); lm != "" {
				lastModified = lm
			}
		}
	}
}
