package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/tonal/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "database\t%s\n", cfg.DatabaseURL)
	fmt.Fprintf(tw, "auth token\t%s\n", mask(cfg.AuthToken))
	fmt.Fprintf(tw, "workers\t%d\n", cfg.Workers)
	fmt.Fprintf(tw, "log level\t%s\n", cfg.LogLevel)
	fmt.Fprintf(tw, "default pattern\t%s\n", cfg.DefaultPattern)
	fmt.Fprintf(tw, "otel\t%t\n", cfg.OTEL.Enabled)
	if cfg.OTEL.Enabled {
		fmt.Fprintf(tw, "otel endpoint\t%s\n", cfg.OTEL.Endpoint)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	return config.Usage(w)
}

func mask(secret string) string {
	if secret == "" {
		return "(none)"
	}
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", 8)
}
