package cmd

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/AnyUserName/collage-cli/internal/hasher"
	"github.com/AnyUserName/collage-cli/internal/layout"
	"github.com/AnyUserName/collage-cli/internal/manifest"
	"github.com/spf13/cobra"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Check a collage manifest against the collage file it describes",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	m, err := manifest.Read(manifestPath)
	if err != nil {
		return err
	}

	errors := validateManifest(m, filepath.Dir(manifestPath))

	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d cells, %dx%d collage matches on disk\n", len(m.Cells), m.Output.Width, m.Output.Height)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	// Grid must be what the image count implies.
	if want, err := layout.ComputeGrid(len(m.Cells), m.Grid.CellSize); err != nil {
		errs = append(errs, fmt.Sprintf("grid: %v", err))
	} else if want != m.Grid {
		errs = append(errs, fmt.Sprintf("grid %+v does not match %d images at %dpx (want %+v)",
			m.Grid, len(m.Cells), m.Grid.CellSize, want))
	}
	if m.Output.Width != m.Grid.Width || m.Output.Height != m.Grid.Height {
		errs = append(errs, fmt.Sprintf("output %dx%d does not match grid %dx%d",
			m.Output.Width, m.Output.Height, m.Grid.Width, m.Grid.Height))
	}

	// Cells.
	failed := 0
	for i, c := range m.Cells {
		if c.Index != i {
			errs = append(errs, fmt.Sprintf("cell[%d]: index %d out of order", i, c.Index))
		}
		if c.Source == "" {
			errs = append(errs, fmt.Sprintf("cell[%d]: missing source", i))
		}
		switch c.Status {
		case manifest.StatusPlaced:
			if c.Placement == nil {
				errs = append(errs, fmt.Sprintf("cell[%d]: placed without placement", i))
				continue
			}
			if c.SrcWidth > 0 && c.SrcHeight > 0 && m.Grid.Columns > 0 {
				if want := layout.ResolvePlacement(i, c.SrcWidth, c.SrcHeight, m.Grid); want != *c.Placement {
					errs = append(errs, fmt.Sprintf("cell[%d]: placement %+v, want %+v", i, *c.Placement, want))
				}
			}
		case manifest.StatusDecodeFailed:
			failed++
		default:
			errs = append(errs, fmt.Sprintf("cell[%d]: unknown status %q", i, c.Status))
		}
	}

	// Stats consistency.
	if m.Stats.TotalImages != len(m.Cells) {
		errs = append(errs, fmt.Sprintf("stats.total_images mismatch: %d != %d", m.Stats.TotalImages, len(m.Cells)))
	}
	if m.Stats.Failed != failed {
		errs = append(errs, fmt.Sprintf("stats.failed mismatch: %d != %d", m.Stats.Failed, failed))
	}

	// Output file.
	if m.Output.Path == "" {
		return append(errs, "output: missing path")
	}
	fullPath := filepath.Join(baseDir, m.Output.Path)
	sum, size, err := hasher.File(fullPath)
	if err != nil {
		return append(errs, fmt.Sprintf("output: file not found: %s", m.Output.Path))
	}
	if m.Output.Size > 0 && size != m.Output.Size {
		errs = append(errs, fmt.Sprintf("output: size mismatch: manifest=%d, disk=%d", m.Output.Size, size))
	}
	if m.Output.Hash != "" && sum != m.Output.Hash {
		errs = append(errs, fmt.Sprintf("output: hash mismatch: manifest=%s, disk=%s", m.Output.Hash, sum))
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return append(errs, fmt.Sprintf("output: %v", err))
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return append(errs, fmt.Sprintf("output: cannot decode header: %v", err))
	}
	if cfg.Width != m.Grid.Width || cfg.Height != m.Grid.Height {
		errs = append(errs, fmt.Sprintf("output: decoded %dx%d, want %dx%d", cfg.Width, cfg.Height, m.Grid.Width, m.Grid.Height))
	}
	if m.Output.Format != "" && format != m.Output.Format {
		errs = append(errs, fmt.Sprintf("output: format %s, manifest says %s", format, m.Output.Format))
	}

	return errs
}
