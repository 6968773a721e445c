package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "collage <input_dir> <output_file>",
	Short: "Build a grid collage from images in sorted subfolders",
	Long: `collage lays out every image found in the subfolders of <input_dir>
as one near-square grid of equal cells and writes it as a single WebP.

Folders are visited in name order, images within a folder in name order.
Each image is scaled so its longer side fills the cell and centred in it;
unused and letterboxed areas stay transparent.`,
	Version:      version,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runBuild,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"collage %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

// newLogger returns the stderr logger; --verbose enables debug records.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
