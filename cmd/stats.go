package cmd

import (
	"fmt"
	"os"

	"github.com/AnyUserName/collage-cli/internal/canvas"
	"github.com/AnyUserName/collage-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <collage_or_manifest>",
	Short: "Display statistics from a collage manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// Given the collage itself, look for its manifest alongside.
	if _, err := os.Stat(manifest.PathFor(path)); err == nil {
		path = manifest.PathFor(path)
	}

	m, err := manifest.Read(path)
	if err != nil {
		return err
	}

	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	fmt.Printf("  Input:            %s\n", m.Input)
	fmt.Println()

	g := m.Grid
	fmt.Printf("  Grid:             %d x %d cells of %dpx (%d unused)\n",
		g.Columns, g.Rows, g.CellSize, g.Cells()-len(m.Cells))
	fmt.Printf("  Canvas:           %d x %d px, %s in %s\n",
		g.Width, g.Height, formatBytes(canvas.Size(g.Width, g.Height)), m.Canvas.Backing)
	fmt.Printf("  Output:           %s (%s, %s)\n", m.Output.Path, m.Output.Format, formatBytes(m.Output.Size))

	s := m.Stats
	fmt.Printf("  Images:           %d placed, %d failed\n", s.Placed, s.Failed)
	if s.InputBytes > 0 && m.Output.Size > 0 {
		ratio := float64(m.Output.Size) / float64(s.InputBytes) * 100
		fmt.Printf("  Size:             %s in → %s out (%.1f%%)\n",
			formatBytes(s.InputBytes), formatBytes(m.Output.Size), ratio)
	}
	fmt.Println()

	fmt.Println("  Folder breakdown:")
	for _, f := range m.Folders {
		fmt.Printf("    %-40s %4d images\n", truncPath(f.Name, 40), f.Count)
	}
	fmt.Println()

	var failed []manifest.Cell
	for _, c := range m.Cells {
		if c.Status != manifest.StatusPlaced {
			failed = append(failed, c)
		}
	}
	if len(failed) > 0 {
		fmt.Printf("  Skipped (%d):\n", len(failed))
		for _, c := range failed {
			fmt.Printf("    ⚠ #%d %s: %s\n", c.Index, c.Source, c.Error)
		}
		fmt.Println()
	}
}
