package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/generator"
	"github.com/emiliopalmerini/tonal/internal/tonal"
)

var batchCmd = &cobra.Command{
	Use:   "batch <requests.json>",
	Short: "Generate many palettes at once",
	Long: `Generate every palette described in a JSON file. Each request succeeds or
fails on its own; the command fails only when every request failed.

File format:
  [
    {"name": "primary", "anchor": "#2D72D2"},
    {"name": "danger",  "anchor": "#E5484D", "stop": 600, "pattern": "brand"}
  ]

Examples:
  tonal batch palettes.json
  tonal batch palettes.json -f css > tokens.css`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

// Flags
var batchFormat string

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", formatSwatch, "Output format: swatch, json, css, hex")
}

type batchRequest struct {
	Name    string `json:"name"`
	Anchor  string `json:"anchor"`
	Stop    int    `json:"stop"`
	Pattern string `json:"pattern"`
}

func readBatchFile(path string) ([]batchRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	var reqs []batchRequest
	if err := json.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("failed to decode batch file: %w", err)
	}
	return reqs, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	if err := validFormat(batchFormat); err != nil {
		return err
	}
	items, err := readBatchFile(args[0])
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	return withApp(ctx, storeOptional, func(a *AppContext) error {
		errs := make([]error, len(items))
		var (
			reqs  []tonal.GenerateRequest
			index []int
		)
		for i, it := range items {
			if it.Name == "" {
				it.Name = fmt.Sprintf("palette-%d", i+1)
				items[i].Name = it.Name
			}
			if it.Stop == 0 {
				it.Stop = int(domain.Stop500)
			}
			anchor, err := a.Service.ParseColor(it.Anchor)
			if err != nil {
				errs[i] = err
				continue
			}
			stop, err := stopFlag(it.Stop)
			if err != nil {
				errs[i] = err
				continue
			}
			reqs = append(reqs, tonal.GenerateRequest{Name: it.Name, Anchor: anchor, AnchorStop: stop, Pattern: it.Pattern})
			index = append(index, i)
		}

		palettes := make([]*domain.Palette, len(items))
		results, _ := a.Service.Batch(ctx, reqs)
		for j, r := range results {
			if r.Err != nil {
				errs[index[j]] = r.Err
				continue
			}
			p := r.Palette
			palettes[index[j]] = &p
		}

		var ok []domain.Palette
		for i := range items {
			if errs[i] != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", items[i].Name, errs[i])
				continue
			}
			ok = append(ok, *palettes[i])
		}

		if len(items) > 0 && len(ok) == 0 {
			return generator.ErrAllFailed
		}
		if len(ok) == 0 {
			return errors.New("batch file is empty")
		}
		return writePalettes(cmd.OutOrStdout(), a.Space, ok, batchFormat)
	})
}
