package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/techalysis/techalysis/pkg/binding"
	"github.com/techalysis/techalysis/pkg/style"
)

func init() {
	RootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:          "list",
	Short:        "list the registered indicators",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(*style.NewDefaultTableStyle())
		t.AppendHeader(table.Row{"name", "inputs", "columns", "lookback", "description"})

		for _, name := range binding.Names() {
			ind, err := binding.Lookup(name)
			if err != nil {
				return err
			}

			lookback, err := ind.Lookback(binding.Params{})
			if err != nil {
				return err
			}

			t.AppendRow(table.Row{
				ind.Name,
				strings.Join(ind.Inputs, ","),
				strings.Join(ind.Columns, ","),
				fmt.Sprintf("%d", lookback),
				ind.Description,
			})
		}

		for _, name := range binding.ReservedNames() {
			t.AppendRow(table.Row{name, "", "", "", "not implemented yet"})
		}

		t.Render()
		return nil
	},
}
