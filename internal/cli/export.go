package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/tonal"
)

var exportCmd = &cobra.Command{
	Use:   "export <color>",
	Short: "Generate a palette and write it as JSON, CSS or hex",
	Long: `Generate a palette like 'tonal generate' and write it in a machine-readable
format, to stdout or to --out.

Examples:
  tonal export '#2D72D2' -n primary -f css -o primary.css
  tonal export '#E5484D' --stop 600 -f json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

// Flags
var (
	exportFormat   string
	exportOut      string
	exportStopFlag int
	exportPattern  string
	exportName     string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", formatJSON, "Output format: json, css, hex")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to this file instead of stdout")
	exportCmd.Flags().IntVarP(&exportStopFlag, "stop", "s", 500, "Stop the anchor color sits at (100-1000)")
	exportCmd.Flags().StringVarP(&exportPattern, "pattern", "p", "", "Pattern name (default: TONAL_DEFAULT_PATTERN)")
	exportCmd.Flags().StringVarP(&exportName, "name", "n", "palette", "Palette name")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat == formatSwatch {
		return fmt.Errorf("swatch output is for the terminal, use 'tonal generate'")
	}
	if err := validFormat(exportFormat); err != nil {
		return err
	}
	stop, err := stopFlag(exportStopFlag)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	return withApp(ctx, storeOptional, func(a *AppContext) error {
		anchor, err := a.Service.ParseColor(args[0])
		if err != nil {
			return err
		}
		palette, err := a.Service.Generate(ctx, tonal.GenerateRequest{
			Name:       exportName,
			Anchor:     anchor,
			AnchorStop: stop,
			Pattern:    exportPattern,
		})
		if err != nil {
			return err
		}

		if exportOut == "" {
			return writePalettes(cmd.OutOrStdout(), a.Space, []domain.Palette{palette}, exportFormat)
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOut, err)
		}
		if err := writePalettes(f, a.Space, []domain.Palette{palette}, exportFormat); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", exportOut)
		return nil
	})
}
