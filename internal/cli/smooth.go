package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/tonal/internal/adapters/storage"
	"github.com/emiliopalmerini/tonal/internal/pattern"
)

var smoothCmd = &cobra.Command{
	Use:   "smooth <pattern.json>",
	Short: "Smooth a raw pattern file",
	Long: `Fit lightness and chroma to curves through stops 100, 500 and 1000 and
apply the median hue shift to every stop.

Examples:
  tonal learn blue.json --raw --out raw.json
  tonal smooth raw.json --name brand --save`,
	Args: cobra.ExactArgs(1),
	RunE: runSmooth,
}

// Flags
var (
	smoothName string
	smoothOut  string
	smoothSave bool
)

func init() {
	rootCmd.AddCommand(smoothCmd)

	smoothCmd.Flags().StringVarP(&smoothName, "name", "n", "", "Name for the smoothed pattern")
	smoothCmd.Flags().StringVarP(&smoothOut, "out", "o", "", "Write the smoothed pattern to a JSON file")
	smoothCmd.Flags().BoolVar(&smoothSave, "save", false, "Store the smoothed pattern")
}

func runSmooth(cmd *cobra.Command, args []string) error {
	raw, err := storage.LoadPatternFile(args[0])
	if err != nil {
		return err
	}
	smoothed, err := pattern.Smooth(raw)
	if err != nil {
		return err
	}
	if smoothName != "" {
		smoothed.Name = smoothName
	}

	w := cmd.OutOrStdout()
	writePatternTable(w, smoothed)

	if smoothOut != "" {
		if err := storage.SavePatternFile(smoothOut, smoothed); err != nil {
			return err
		}
		fmt.Fprintf(w, "\nWrote %s\n", smoothOut)
	}

	if !smoothSave {
		return nil
	}
	ctx := cmd.Context()
	return withApp(ctx, storeRequired, func(a *AppContext) error {
		if err := a.Service.SavePattern(ctx, smoothed); err != nil {
			return err
		}
		fmt.Fprintf(w, "\nSaved pattern %q\n", smoothed.Name)
		return nil
	})
}
