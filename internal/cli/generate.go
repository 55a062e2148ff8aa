package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/tonal/internal/adapters/prompter"
	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/tonal"
)

var generateCmd = &cobra.Command{
	Use:   "generate [color]",
	Short: "Generate a palette from an anchor color",
	Long: `Generate a ten-stop palette in which the anchor color sits at --stop.

Colors can be hex (#2D72D2, #fff, #2D72D2CC), oklch(0.55 0.15 255) or
rgb(45, 114, 210). With --reference the anchor is first given the reference
color's lightness and chroma while keeping its own hue.

Examples:
  tonal generate '#2D72D2'                       # Built-in pattern, anchor at 500
  tonal generate '#E5484D' --stop 600 -n danger  # Anchor at 600
  tonal generate '#30A46C' --pattern brand -f css
  tonal generate '#30A46C' --reference '#2D72D2' # Match the blue's appearance
  tonal generate -i                              # Interactive prompt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

// Flags
var (
	generateStop        int
	generatePattern     string
	generateName        string
	generateFormat      string
	generateReference   string
	generateInteractive bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&generateStop, "stop", "s", 500, "Stop the anchor color sits at (100-1000)")
	generateCmd.Flags().StringVarP(&generatePattern, "pattern", "p", "", "Pattern name (default: TONAL_DEFAULT_PATTERN)")
	generateCmd.Flags().StringVarP(&generateName, "name", "n", "palette", "Palette name")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", formatSwatch, "Output format: swatch, json, css, hex")
	generateCmd.Flags().StringVarP(&generateReference, "reference", "r", "", "Transfer this color's lightness and chroma onto the anchor first")
	generateCmd.Flags().BoolVarP(&generateInteractive, "interactive", "i", false, "Prompt for the anchor color")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := validFormat(generateFormat); err != nil {
		return err
	}
	stop, err := stopFlag(generateStop)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	return withApp(ctx, storeOptional, func(a *AppContext) error {
		var anchor domain.Color
		switch {
		case generateInteractive:
			initial := ""
			if len(args) == 1 {
				initial = args[0]
			}
			p := prompter.NewBubbleTeaPrompter(a.Space, a.Logger)
			c, ok, err := p.PromptColor(cmd.InOrStdin(), cmd.ErrOrStderr(), initial)
			if err != nil {
				return fmt.Errorf("failed to prompt for color: %w", err)
			}
			if !ok {
				return nil
			}
			anchor = c
		case len(args) == 1:
			anchor, err = a.Service.ParseColor(args[0])
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("an anchor color is required (or use -i)")
		}

		req := tonal.GenerateRequest{
			Name:       generateName,
			Anchor:     anchor,
			AnchorStop: stop,
			Pattern:    generatePattern,
		}

		var palette domain.Palette
		if strings.TrimSpace(generateReference) != "" {
			ref, err := a.Service.ParseColor(generateReference)
			if err != nil {
				return fmt.Errorf("reference: %w", err)
			}
			palette, err = a.Service.GenerateFromReference(ctx, ref, anchor, req)
			if err != nil {
				return err
			}
		} else {
			palette, err = a.Service.Generate(ctx, req)
			if err != nil {
				return err
			}
		}

		return writePalettes(cmd.OutOrStdout(), a.Space, []domain.Palette{palette}, generateFormat)
	})
}
