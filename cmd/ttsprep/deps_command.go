package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ttsprep/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Report availability of external binaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			self, _ := os.Executable()

			statuses := deps.Check(cfg, self)

			rows := make([][]string, 0, len(statuses))
			var missingRequired []string
			for _, st := range statuses {
				rows = append(rows, []string{st.Name, st.Command, yesNo(st.Available), yesNo(st.Optional), st.Description, st.Detail})
				if st.Missing() {
					missingRequired = append(missingRequired, st.Name)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Name", "Command", "Available", "Optional", "Purpose", "Detail"},
				rows,
			))
			if len(missingRequired) > 0 {
				return fmt.Errorf("required dependencies missing: %v", missingRequired)
			}
			return nil
		},
	}
}
