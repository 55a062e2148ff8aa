package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/pkg/tui/theme"
)

var transformCmd = &cobra.Command{
	Use:   "transform <reference> <target>...",
	Short: "Give targets the reference color's lightness and chroma",
	Long: `Copy the perceived brightness and saturation of the reference color onto
the hue of each target. Results that leave sRGB are pulled back by reducing
chroma.

Examples:
  tonal transform '#2D72D2' '#E5484D' '#30A46C'
  tonal transform 'oklch(0.6 0.15 255)' '#E5484D' -f hex`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTransform,
}

var viableCmd = &cobra.Command{
	Use:   "viable <reference> <target>",
	Short: "Check whether a transform would keep the reference's appearance",
	Long: `Report whether transferring the reference's lightness and chroma onto the
target's hue gives a faithful result. Near-black and near-white references,
and transfers that lose more than half their chroma to the sRGB gamut, are
not viable.`,
	Args: cobra.ExactArgs(2),
	RunE: runViable,
}

// Flags
var transformFormat string

func init() {
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(viableCmd)

	transformCmd.Flags().StringVarP(&transformFormat, "format", "f", formatSwatch, "Output format: swatch, hex")
}

func runTransform(cmd *cobra.Command, args []string) error {
	if transformFormat != formatSwatch && transformFormat != formatHex {
		return fmt.Errorf("unknown format %q (want swatch or hex)", transformFormat)
	}
	ctx := cmd.Context()

	return withApp(ctx, storeOptional, func(a *AppContext) error {
		ref, err := a.Service.ParseColor(args[0])
		if err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		targets := make([]domain.Color, 0, len(args)-1)
		for _, arg := range args[1:] {
			c, err := a.Service.ParseColor(arg)
			if err != nil {
				return fmt.Errorf("target %s: %w", arg, err)
			}
			targets = append(targets, c)
		}

		results := a.Service.TransformMany(ctx, ref, targets)

		w := cmd.OutOrStdout()
		styles := theme.Default()
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		failed := 0
		for i, r := range results {
			if r.Err != nil {
				failed++
				if transformFormat == formatHex {
					fmt.Fprintln(w, "-")
				} else {
					fmt.Fprintf(tw, "%s\t%s\n", args[i+1], styles.Error.Render(r.Err.Error()))
				}
				continue
			}
			hex := a.Space.ToHex(r.Color)
			if transformFormat == formatHex {
				fmt.Fprintln(w, hex)
				continue
			}
			note := ""
			if !a.Service.IsViable(ref, targets[i]) {
				note = styles.Warning.Render("not viable")
			}
			fmt.Fprintf(tw, "%s\t→ %s %s\t%s\n", args[i+1], theme.Swatch(hex, r.Color.L).Render("    "), hex, note)
		}
		_ = tw.Flush()

		if failed == len(results) {
			return fmt.Errorf("no target could take the reference's appearance")
		}
		return nil
	})
}

func runViable(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), storeOptional, func(a *AppContext) error {
		ref, err := a.Service.ParseColor(args[0])
		if err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		target, err := a.Service.ParseColor(args[1])
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}

		if a.Service.IsViable(ref, target) {
			fmt.Fprintln(cmd.OutOrStdout(), "viable")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "not viable")
		}
		return nil
	})
}
