package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dotCmd = &cobra.Command{
	Use:   "dot <file>",
	Short: "Export the machine as a Graphviz DOT graph",
	Long:  `Loads the definition and prints a DOT digraph of its states, event transitions and list order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMachine(cmd, args[0])
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), m.ToDOT())

		return err
	},
}

func init() {
	rootCmd.AddCommand(dotCmd)
}
