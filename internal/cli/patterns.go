package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/tonal/internal/adapters/storage"
	"github.com/emiliopalmerini/tonal/internal/util"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Manage patterns",
	Long:  `List, inspect and delete stored patterns. The built-in "default" pattern is always available.`,
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List patterns",
	Args:  cobra.NoArgs,
	RunE:  runPatternsList,
}

var patternsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a pattern's transforms",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternsShow,
}

var patternsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternsDelete,
}

// Flags
var patternsShowJSON bool

func init() {
	rootCmd.AddCommand(patternsCmd)
	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsShowCmd)
	patternsCmd.AddCommand(patternsDeleteCmd)

	patternsShowCmd.Flags().BoolVar(&patternsShowJSON, "json", false, "Print the pattern as JSON")
}

func runPatternsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withApp(ctx, storeOptional, func(a *AppContext) error {
		patterns, err := a.Service.Patterns(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tREFERENCE\tSOURCES\tCONFIDENCE\tCREATED")
		for _, p := range patterns {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
				p.Name, int(p.ReferenceStop), p.Metadata.SourceCount,
				util.FormatPercent(p.Metadata.Confidence), util.FormatDateISO(p.CreatedAt))
		}
		return w.Flush()
	})
}

func runPatternsShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withApp(ctx, storeOptional, func(a *AppContext) error {
		p, err := a.Service.ResolvePattern(ctx, args[0])
		if err != nil {
			return err
		}
		if patternsShowJSON {
			return storage.WritePattern(cmd.OutOrStdout(), p)
		}
		writePatternTable(cmd.OutOrStdout(), p)
		return nil
	})
}

func runPatternsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withApp(ctx, storeRequired, func(a *AppContext) error {
		if err := a.Service.DeletePattern(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted pattern %q\n", args[0])
		return nil
	})
}
