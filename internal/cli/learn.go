package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/tonal/internal/adapters/storage"
	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/tonal"
)

var learnCmd = &cobra.Command{
	Use:   "learn [file|dir]...",
	Short: "Learn a pattern from example palettes",
	Long: `Learn a transformation pattern from one or more example palettes and
smooth it into a generation-ready curve.

Palette files are JSON: {"name": "blue", "stops": {"100": "#EBF1FA", ..., "1000": "#061A35"}}
or an array of such objects. A directory is read file by file.

Examples:
  tonal learn blue.json red.json --name brand --save
  tonal learn palettes/ --reference-stop 600 --out brand.json
  tonal learn --from-store --name house --save        # Use stored example palettes
  tonal learn blue.json --raw --out raw.json          # Skip smoothing`,
	RunE: runLearn,
}

// Flags
var (
	learnReferenceStop int
	learnName          string
	learnSave          bool
	learnSaveExamples  bool
	learnFromStore     bool
	learnExamples      []string
	learnOut           string
	learnRaw           bool
)

func init() {
	rootCmd.AddCommand(learnCmd)

	learnCmd.Flags().IntVar(&learnReferenceStop, "reference-stop", 500, "Stop the pattern is expressed relative to")
	learnCmd.Flags().StringVarP(&learnName, "name", "n", "", "Name for the smoothed pattern")
	learnCmd.Flags().BoolVar(&learnSave, "save", false, "Store the smoothed pattern")
	learnCmd.Flags().BoolVar(&learnSaveExamples, "save-examples", false, "Store the input palettes as examples")
	learnCmd.Flags().BoolVar(&learnFromStore, "from-store", false, "Learn from stored example palettes")
	learnCmd.Flags().StringSliceVarP(&learnExamples, "examples", "e", nil, "Stored example palettes to use with --from-store (default: all)")
	learnCmd.Flags().StringVarP(&learnOut, "out", "o", "", "Write the pattern to a JSON file")
	learnCmd.Flags().BoolVar(&learnRaw, "raw", false, "Print and write the unsmoothed pattern")
}

func runLearn(cmd *cobra.Command, args []string) error {
	ref, err := stopFlag(learnReferenceStop)
	if err != nil {
		return err
	}
	if learnFromStore == (len(args) > 0) {
		return fmt.Errorf("give palette files or --from-store, not both or neither")
	}
	ctx := cmd.Context()

	mode := storeOptional
	if learnSave || learnSaveExamples || learnFromStore {
		mode = storeRequired
	}

	return withApp(ctx, mode, func(a *AppContext) error {
		var palettes []domain.AnalyzedPalette
		if learnFromStore {
			palettes, err = a.Service.StoredExamples(ctx, learnExamples...)
		} else {
			palettes, err = loadPalettes(ctx, a.Loader, args)
		}
		if err != nil {
			return err
		}

		res, err := a.Service.Learn(ctx, tonal.LearnRequest{
			Palettes:      palettes,
			ReferenceStop: ref,
			Name:          learnName,
			Save:          learnSave,
			SaveExamples:  learnSaveExamples && !learnFromStore,
		})
		if err != nil {
			return err
		}

		out := res.Smoothed
		if learnRaw {
			out = res.Raw
		}
		w := cmd.OutOrStdout()
		writePatternTable(w, out)

		if learnOut != "" {
			if err := storage.SavePatternFile(learnOut, out); err != nil {
				return err
			}
			fmt.Fprintf(w, "\nWrote %s\n", learnOut)
		}
		if learnSave {
			fmt.Fprintf(w, "\nSaved pattern %q\n", res.Smoothed.Name)
		}
		return nil
	})
}
