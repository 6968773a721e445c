package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/AnyUserName/collage-cli/internal/canvas"
	"github.com/AnyUserName/collage-cli/internal/codec"
	"github.com/AnyUserName/collage-cli/internal/collage"
	"github.com/AnyUserName/collage-cli/internal/encoder"
	"github.com/AnyUserName/collage-cli/internal/hasher"
	"github.com/AnyUserName/collage-cli/internal/layout"
	"github.com/AnyUserName/collage-cli/internal/source"
	"github.com/schollz/progressbar/v3"
)

// Config holds all parameters for a collage run.
type Config struct {
	InputDir      string
	OutputPath    string
	Profile       string
	CellSize      int
	Backing       canvas.Backing
	MmapThreshold int64 // bytes; Auto switches to disk above this
	Extensions    []string
	Format        string // encoder format name or encoder.Auto
	Encode        encoder.Options
	AutoOrient    bool
	WriteManifest bool

	// Stdout receives the folder summary. Defaults to os.Stdout.
	Stdout io.Writer
	// ProgressOut, if set, receives a progress bar while compositing.
	ProgressOut io.Writer
	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

// Report is the outcome of a run.
type Report struct {
	// Empty is set when no images were found; nothing was written.
	Empty bool

	Scan         *source.Result
	Grid         layout.Grid
	Cells        []collage.Cell
	Backing      canvas.Backing
	CanvasHash   string // set when a manifest is written
	Output       string
	Format       string
	OutputSize   int64
	ManifestPath string
	Elapsed      time.Duration
}

// Failed returns the number of images that could not be decoded.
func (r *Report) Failed() int {
	n := 0
	for _, c := range r.Cells {
		if !c.OK() {
			n++
		}
	}
	return n
}

// Pipeline runs discovery, compositing and writing, one image at a time.
type Pipeline struct {
	cfg      Config
	log      *slog.Logger
	registry *encoder.Registry
	codec    *codec.Codec
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		cfg:      cfg,
		log:      log,
		registry: encoder.NewRegistry(),
		codec:    codec.New(cfg.AutoOrient),
	}
}

// Run executes the pipeline. Finding no images is not an error: the
// report comes back with Empty set and no output is written.
func (p *Pipeline) Run() (*Report, error) {
	start := time.Now()
	p.log.Debug(p.registry.String())

	// Step 1: Discover images.
	res, err := source.Scan(p.cfg.InputDir, p.cfg.Extensions)
	if err != nil {
		var dirErr *source.DirError
		if errors.As(err, &dirErr) {
			return nil, &collage.DiscoveryError{Path: dirErr.Path, Err: dirErr.Err}
		}
		return nil, &collage.DiscoveryError{Path: p.cfg.InputDir, Err: err}
	}
	printSummary(p.cfg.Stdout, res)

	report := &Report{Scan: res, Output: p.cfg.OutputPath}
	if len(res.Images) == 0 {
		fmt.Fprintln(p.cfg.Stdout, "No supported images found in the provided folders.")
		report.Empty = true
		return report, nil
	}

	// Step 2: Lay out the grid and pick the encoder before doing any work.
	grid, err := layout.ComputeGrid(len(res.Images), p.cfg.CellSize)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	enc, err := p.registry.Resolve(p.cfg.Format, p.cfg.OutputPath)
	if err != nil {
		return nil, &collage.EncodeError{Path: p.cfg.OutputPath, Err: err}
	}
	report.Grid = grid
	report.Format = enc.Format()

	// Step 3: Allocate the canvas. Released on every path.
	buf, err := canvas.New(p.cfg.Backing, grid.Width, grid.Height, p.cfg.MmapThreshold)
	if err != nil {
		return nil, fmt.Errorf("allocate canvas: %w", err)
	}
	defer buf.Close()
	report.Backing = buf.Backing()

	p.log.Info("assembling collage",
		"images", len(res.Images),
		"grid", fmt.Sprintf("%dx%d", grid.Columns, grid.Rows),
		"canvas", fmt.Sprintf("%dx%d", grid.Width, grid.Height),
		"backing", buf.Backing(),
		"format", enc.Format())

	// Step 4: Composite.
	comp := collage.NewCompositor(p.codec, p.log)
	bar := p.progressBar(len(res.Images))
	if bar != nil {
		comp.OnCell = func(collage.Cell) { bar.Add(1) }
	}
	cells, err := comp.Compose(res.Images, grid, buf)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}
	report.Cells = cells
	if n := report.Failed(); n > 0 {
		p.log.Warn("some images were skipped", "failed", n, "total", len(cells))
	}

	if p.cfg.WriteManifest {
		report.CanvasHash = hasher.Sum(buf.Pix())
	}

	// Step 5: Write. The writer owns buf from here on.
	if err := collage.NewWriter(enc, p.cfg.Encode).Write(buf, p.cfg.OutputPath); err != nil {
		return nil, err
	}
	if info, err := os.Stat(p.cfg.OutputPath); err == nil {
		report.OutputSize = info.Size()
	}

	// Step 6: Manifest.
	if p.cfg.WriteManifest {
		path, err := p.writeManifest(report)
		if err != nil {
			return nil, fmt.Errorf("write manifest: %w", err)
		}
		report.ManifestPath = path
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

func (p *Pipeline) progressBar(total int) *progressbar.ProgressBar {
	if p.cfg.ProgressOut == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.cfg.ProgressOut),
		progressbar.OptionSetDescription("Compositing"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.cfg.ProgressOut) }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// printSummary writes the per-folder image counts and the grand total.
func printSummary(w io.Writer, res *source.Result) {
	fmt.Fprintln(w, "Image counts per folder:")
	for _, f := range res.Folders {
		fmt.Fprintf(w, "  %s: %d images\n", f.Path, f.Count)
	}
	fmt.Fprintf(w, "\nTotal images found: %d\n", len(res.Images))
}
