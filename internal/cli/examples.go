package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/tonal/internal/util"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Manage stored example palettes",
	Long: `Store example palettes so patterns can be re-learned later with
'tonal learn --from-store'.`,
}

var examplesAddCmd = &cobra.Command{
	Use:   "add <file|dir>...",
	Short: "Store example palettes from JSON files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExamplesAdd,
}

var examplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored example palettes",
	Args:  cobra.NoArgs,
	RunE:  runExamplesList,
}

var examplesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored example palette",
	Args:  cobra.ExactArgs(1),
	RunE:  runExamplesDelete,
}

func init() {
	rootCmd.AddCommand(examplesCmd)
	examplesCmd.AddCommand(examplesAddCmd)
	examplesCmd.AddCommand(examplesListCmd)
	examplesCmd.AddCommand(examplesDeleteCmd)
}

func runExamplesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withApp(ctx, storeRequired, func(a *AppContext) error {
		palettes, err := loadPalettes(ctx, a.Loader, args)
		if err != nil {
			return err
		}
		if err := a.Service.SaveExamples(ctx, palettes); err != nil {
			return err
		}
		for _, p := range palettes {
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %q\n", p.Name)
		}
		return nil
	})
}

func runExamplesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withApp(ctx, storeRequired, func(a *AppContext) error {
		palettes, err := a.Service.StoredExamples(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\t100\t500\t1000\tCREATED")
		for _, p := range palettes {
			fmt.Fprintf(w, "%s", p.Name)
			for _, s := range p.Stops {
				if s.Position == 100 || s.Position == 500 || s.Position == 1000 {
					fmt.Fprintf(w, "\t%s", a.Space.ToHex(s.Color))
				}
			}
			fmt.Fprintf(w, "\t%s\n", util.FormatDateISO(p.CreatedAt))
		}
		return w.Flush()
	})
}

func runExamplesDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withApp(ctx, storeRequired, func(a *AppContext) error {
		if err := a.Service.DeleteExample(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted example palette %q\n", args[0])
		return nil
	})
}
