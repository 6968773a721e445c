package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/collage-cli/internal/config"
	"github.com/AnyUserName/collage-cli/internal/pipeline"
	"github.com/AnyUserName/collage-cli/internal/profile"
	"github.com/spf13/cobra"
)

var (
	buildConfigPath    string
	buildProfile       string
	buildCellSize      int
	buildBacking       string
	buildMmapThreshold int
	buildFormat        string
	buildQuality       int
	buildLossy         bool
	buildExtensions    []string
	buildAutoOrient    bool
	buildManifest      bool
	buildNoProgress    bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&buildConfigPath, "config", "", "YAML config file")
	f.StringVarP(&buildProfile, "profile", "p", profile.DefaultName, fmt.Sprintf("preset %v", profile.Names()))
	f.IntVarP(&buildCellSize, "cell-size", "s", 200, "size in pixels for each cell")
	f.StringVar(&buildBacking, "backing", "auto", "canvas store: auto, memory or disk")
	f.IntVar(&buildMmapThreshold, "mmap-threshold-mb", 256, "canvas size above which auto backing uses disk")
	f.StringVarP(&buildFormat, "format", "f", "webp", "output format: webp, png, jpeg or auto (from extension)")
	f.IntVarP(&buildQuality, "quality", "q", 0, "quality 1-100 for lossy output (0 = profile default)")
	f.BoolVar(&buildLossy, "lossy", false, "lossy WebP instead of lossless")
	f.StringSliceVar(&buildExtensions, "ext", nil, "image extensions to include (default jpg,jpeg,webp)")
	f.BoolVar(&buildAutoOrient, "auto-orient", false, "apply EXIF orientation when decoding")
	f.BoolVar(&buildManifest, "manifest", false, "write <output>.manifest.json next to the collage")
	f.BoolVar(&buildNoProgress, "no-progress", false, "hide the progress bar")
}

// loadBuildConfig merges config file, environment and explicitly set flags.
func loadBuildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(buildConfigPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("profile") {
		cfg.Profile = buildProfile
	}
	if flags.Changed("cell-size") {
		cfg.CellSize = buildCellSize
	}
	if flags.Changed("backing") {
		cfg.Backing = buildBacking
	}
	if flags.Changed("mmap-threshold-mb") {
		cfg.MmapThresholdMB = buildMmapThreshold
	}
	if flags.Changed("format") {
		cfg.Format = buildFormat
	}
	if flags.Changed("quality") {
		cfg.Quality = buildQuality
	}
	if flags.Changed("lossy") {
		lossless := !buildLossy
		cfg.Lossless = &lossless
	}
	if flags.Changed("ext") {
		cfg.Extensions = buildExtensions
	}
	if flags.Changed("auto-orient") {
		cfg.AutoOrient = buildAutoOrient
	}
	if flags.Changed("manifest") {
		cfg.Manifest = buildManifest
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir, outputPath := args[0], args[1]
	start := time.Now()

	cfg, err := loadBuildConfig(cmd)
	if err != nil {
		return err
	}
	if !profile.Known(cfg.Profile) {
		fmt.Fprintf(os.Stderr, "warning: unknown profile %q, using defaults\n", cfg.Profile)
	}

	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	log := newLogger()
	log.Debug("configuration",
		"input", inputDir,
		"output", absOutput,
		"profile", cfg.Profile,
		"cell_size", cfg.CellSize,
		"backing", cfg.Backing,
		"format", cfg.Format,
		"lossless", *cfg.Lossless,
		"extensions", cfg.Extensions)

	pcfg := pipeline.Config{
		InputDir:      inputDir,
		OutputPath:    absOutput,
		Profile:       cfg.Profile,
		CellSize:      cfg.CellSize,
		Backing:       cfg.CanvasBacking(),
		MmapThreshold: cfg.MmapThreshold(),
		Extensions:    cfg.Extensions,
		Format:        cfg.Format,
		Encode:        cfg.EncodeOptions(),
		AutoOrient:    cfg.AutoOrient,
		WriteManifest: cfg.Manifest,
		Stdout:        os.Stdout,
		Logger:        log,
	}
	if !buildNoProgress {
		pcfg.ProgressOut = os.Stderr
	}

	r, err := pipeline.New(pcfg).Run()
	if err != nil {
		return err
	}
	if r.Empty {
		return nil
	}

	fmt.Printf("Collage saved to '%s'\n", outputPath)
	printBuildReport(r, time.Since(start))
	return nil
}

func printBuildReport(r *pipeline.Report, elapsed time.Duration) {
	fmt.Println()
	fmt.Printf("  Grid:        %d x %d cells of %dpx\n", r.Grid.Columns, r.Grid.Rows, r.Grid.CellSize)
	fmt.Printf("  Canvas:      %d x %d px (%s, %s)\n",
		r.Grid.Width, r.Grid.Height, formatBytes(r.Grid.BufferLen()), r.Backing)
	fmt.Printf("  Images:      %d placed", len(r.Cells)-r.Failed())
	if n := r.Failed(); n > 0 {
		fmt.Printf(", %d skipped (unreadable)", n)
	}
	fmt.Println()
	fmt.Printf("  Output:      %s, %s\n", r.Format, formatBytes(r.OutputSize))
	if r.ManifestPath != "" {
		fmt.Printf("  Manifest:    %s\n", r.ManifestPath)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncPath(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
