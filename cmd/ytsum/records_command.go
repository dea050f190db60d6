package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ytsum/internal/config"
	"ytsum/internal/records"
)

const summaryPreviewRunes = 160

func newRecordsCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var asJSON bool
	var full bool

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List summaries stored in the output file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.Paths.OutputFile
			if trimmed := strings.TrimSpace(outputPath); trimmed != "" {
				if path, err = config.ExpandPath(trimmed); err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
			}

			list, err := records.NewStore(path, nil).Read()
			if err != nil {
				return err
			}
			if asJSON {
				if list == nil {
					list = []records.Record{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintf(out, "No records in %s\n", path)
				return nil
			}
			rows := make([][]string, 0, len(list))
			for i, r := range list {
				text := r.Summary
				if !full {
					text = previewSummary(text, summaryPreviewRunes)
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), r.URL, text})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "#", align: alignRight},
				{header: "URL"},
				{header: "Summary", maxWidth: 80},
			}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file to read (defaults to paths.output_file)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit records as JSON")
	cmd.Flags().BoolVar(&full, "full", false, "Show complete summaries instead of previews")
	return cmd
}

// previewSummary collapses whitespace and truncates to limit runes.
func previewSummary(value string, limit int) string {
	collapsed := strings.Join(strings.Fields(value), " ")
	runes := []rune(collapsed)
	if limit <= 0 || len(runes) <= limit {
		return collapsed
	}
	return string(runes[:limit-1]) + "…"
}
