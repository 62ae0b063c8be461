package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/petpy/config"
	"github.com/s0up4200/petpy/table"
)

// rawOutput reports whether results should be printed as received
func rawOutput() bool {
	return cfg.Output.Format == config.FormatRaw
}

// printTable filters t, narrows it to the configured columns and renders it
func printTable(cmd *cobra.Command, t *table.Table) error {
	t, err := filters.Apply(cmd.Context(), t, preset, filterExpr)
	if err != nil {
		return fmt.Errorf("failed to filter results: %w", err)
	}

	if len(cfg.Output.Columns) > 0 {
		if t, err = t.Select(cfg.Output.Columns...); err != nil {
			return err
		}
	}

	format, err := table.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	logger.Debug().Int("rows", t.Len()).Str("format", string(format)).Msg("Rendering results")
	return table.Render(cmd.OutOrStdout(), t, format)
}

// printRaw writes v as indented JSON
func printRaw(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResults prints records either raw or through toTable
func printResults[T any](cmd *cobra.Command, records T, toTable func(T) (*table.Table, error)) error {
	if rawOutput() {
		return printRaw(cmd.OutOrStdout(), records)
	}

	t, err := toTable(records)
	if err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}
	return printTable(cmd, t)
}
