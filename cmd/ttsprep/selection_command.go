package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ttsprep/internal/selection"
)

func newSelectionCommand(ctx *commandContext) *cobra.Command {
	selectionCmd := &cobra.Command{
		Use:   "selection",
		Short: "Inspect the voice and language selection",
	}
	selectionCmd.AddCommand(newSelectionShowCommand(ctx))
	return selectionCmd
}

func newSelectionShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective selection, writing the default if the file is missing or invalid",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.SelectionPath()
			sel, rewritten, err := selection.LoadOrDefault(path)
			if err != nil {
				return err
			}
			if rewritten {
				if err := selection.Save(path, sel); err != nil {
					return err
				}
			}

			if jsonOutput {
				return writeJSON(cmd, sel)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Selection file: %s\n", path)
			if rewritten {
				fmt.Fprintln(out, "File was missing or invalid; wrote the default selection")
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Field", "Values"},
				[][]string{
					{"Voices", joinOrNone(sel.Voices)},
					{"Languages", joinOrNone(sel.Languages)},
				},
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the selection as JSON")
	return cmd
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
