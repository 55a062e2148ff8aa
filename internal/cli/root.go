package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tonal",
	Short: "Learn color scale patterns and generate perceptual palettes",
	Long: `tonal learns how lightness, chroma and hue move across example color
scales and applies that pattern to any anchor color to build a ten-stop
palette (100 to 1000) in OKLCH.

Configuration is read from TONAL_* environment variables; run 'tonal config'
to see them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
