package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	figmaforge "github.com/hellenic-development/figma-forge"
	"github.com/hellenic-development/figma-forge/pkg/cache"
	"github.com/hellenic-development/figma-forge/pkg/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = figmaforge.Version

var (
	figmaURL      string
	accessToken   string
	nodeIDs       string
	target        string
	outputDir     string
	assetsDir     string
	configPath    string
	downloadFlag  bool
	includeHidden bool
	withVariables bool
	noCache       bool
	watchInterval time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "figmaforge",
		Short: "Generate UI components from Figma designs",
		Long:  "A tool that converts Figma design trees into framework components: design tokens, variant props, interaction states, and layout, emitted as Angular, React, SCSS, or Tailwind sources",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default figmaforge.yml when present)")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Convert a Figma file into component sources",
		Run:   runGenerate,
	}
	addGenerateFlags(generateCmd)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the Figma file changes",
		Run:   runWatch,
	}
	addGenerateFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Polling interval (default from config)")

	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "Extract only the design token stylesheet",
		Run:   runTokens,
	}
	addGenerateFlags(tokensCmd)

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the API response cache",
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached API response",
		Run:   runCacheClear,
	})

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figmaforge version %s\n", version)
		},
	}

	rootCmd.AddCommand(generateCmd, watchCmd, tokensCmd, cacheCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&figmaURL, "url", "u", "", "Figma file URL (required)")
	cmd.Flags().StringVarP(&accessToken, "token", "t", "", "Figma Personal Access Token (or FIGMA_TOKEN)")
	cmd.Flags().StringVarP(&nodeIDs, "node-ids", "n", "", "Comma-separated node IDs to convert (default: every top-level frame of the first page)")
	cmd.Flags().StringVar(&target, "target", "", "Output target: angular, react, scss, tailwind")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for generated sources")
	cmd.Flags().StringVar(&assetsDir, "assets", "", "Asset directory, relative to the output directory")
	cmd.Flags().BoolVar(&downloadFlag, "download-assets", false, "Download image fills referenced by the components")
	cmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "Keep layers the designer marked invisible")
	cmd.Flags().BoolVar(&withVariables, "variables", false, "Also extract the file's design variables into a variables stylesheet")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the API response cache")
	cmd.MarkFlagRequired("url")
}

// loadConfig resolves the effective configuration: file and environment
// first, explicit flags on top.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fail(err)
	}
	if accessToken != "" {
		cfg.Token = accessToken
	}
	if target != "" {
		cfg.Target = target
	}
	if outputDir != "" {
		cfg.Output = outputDir
	}
	if assetsDir != "" {
		cfg.Assets = assetsDir
	}
	if includeHidden {
		cfg.IncludeHidden = true
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}
	return cfg
}

func buildOptions(cfg *config.Config) figmaforge.Options {
	opts := figmaforge.Options{
		AccessToken:      cfg.Token,
		FileURL:          figmaURL,
		Target:           cfg.Target,
		OutputDir:        cfg.Output,
		AssetsDir:        cfg.Assets,
		IncludeHidden:    cfg.IncludeHidden,
		IncludeVariables: cfg.Variables || withVariables,
		DownloadAssets:   downloadFlag,
		Logger:           &cliLogger{},
	}
	if nodeIDs != "" {
		opts.NodeIDs = parseNodeIDs(nodeIDs)
	}
	if !noCache {
		opts.Cache = cache.New(cfg.CacheDir, cfg.CacheTTL.Std())
	}
	return opts
}

func runGenerate(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan)
	cyan.Println("\n🔨 FigmaForge")
	cyan.Println("=============")
	cyan.Println()

	cfg := loadConfig()
	result, err := figmaforge.Run(buildOptions(cfg))
	if err != nil {
		fail(err)
	}

	printSummary(result)
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	opts := figmaforge.WatchOptions{
		Options:  buildOptions(cfg),
		Interval: cfg.WatchInterval.Std(),
		OnRun: func(result *figmaforge.Result, err error) {
			if err == nil {
				printSummary(result)
			}
		},
	}
	if watchInterval > 0 {
		opts.Interval = watchInterval
	}

	color.New(color.FgCyan).Printf("\n👀 Watching for changes (every %s), Ctrl-C to stop\n\n", opts.Interval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := figmaforge.Watch(ctx, opts); err != nil && ctx.Err() == nil {
		fail(err)
	}
	fmt.Println("\nStopped.")
}

func runTokens(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	cfg.Target = "scss"
	cfg.Variables = true

	result, err := figmaforge.Run(buildOptions(cfg))
	if err != nil {
		fail(err)
	}

	green := color.New(color.FgGreen)
	for _, comp := range result.Components {
		green.Printf("✓ %s: %d token(s)\n", comp.Model.Name, comp.Model.Tokens.Len())
	}
	if len(result.Variables) > 0 {
		green.Printf("✓ %d variable collection(s)\n", len(result.Variables))
	}
	green.Printf("\n✨ Token stylesheet written to %s\n", cfg.Output)
}

func runCacheClear(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fail(err)
	}
	if err := cache.New(cfg.CacheDir, cfg.CacheTTL.Std()).Clear(); err != nil {
		fail(err)
	}
	color.New(color.FgGreen).Println("✓ Cache cleared")
}

func printSummary(result *figmaforge.Result) {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	cyan.Println("\n📊 Generation Summary:")
	fmt.Printf("  • File: %s\n", result.FileName)
	for _, comp := range result.Components {
		fmt.Printf("  • %s: %d file(s)", comp.Model.Name, len(comp.Written))
		if comp.Model.Variants != nil {
			fmt.Printf(", %d variant propert(ies)", len(comp.Model.Variants.Properties))
		}
		fmt.Printf(", %d state(s), %d token(s)\n", len(comp.Model.States), comp.Model.Tokens.Len())
		for _, skipped := range comp.Skipped {
			color.New(color.FgYellow).Printf("    ⚠ %s left untouched (no generation markers)\n", skipped)
		}
	}
	if len(result.Variables) > 0 {
		fmt.Printf("  • %d variable collection(s)\n", len(result.Variables))
	}
	if len(result.AssetErrors) > 0 {
		color.New(color.FgYellow).Printf("  • %d asset(s) failed to download\n", len(result.AssetErrors))
	}

	green.Println("\n✨ Done")
}

func parseNodeIDs(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func fail(err error) {
	color.New(color.FgRed).Printf("Error: %v\n", err)
	os.Exit(1)
}

// cliLogger implements figmaforge.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
