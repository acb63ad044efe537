package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/enetx/stepper"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Step through a machine",
	Long: `Loads the definition and prints the active state after every change.

Events given with --event are sent in order. Without them, commands are read
from stdin, one per line:

  next          advance in list order
  next <state>  move to <state>
  <EVENT>       send EVENT
  quit          destroy the machine and exit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMachine(cmd, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		m.Subscribe(func(active *stepper.StateDef, _ *stepper.Context) {
			fmt.Fprintln(out, active.Type)
		})

		events, _ := cmd.Flags().GetStringSlice("event")
		if len(events) > 0 {
			for _, event := range events {
				m.Send(stepper.Event(event))
			}

			m.Destroy()

			return nil
		}

		return drive(m, cmd.InOrStdin())
	},
}

func init() {
	runCmd.Flags().StringSlice("event", nil, "Events to send instead of reading stdin")
	rootCmd.AddCommand(runCmd)
}

// drive applies stdin commands to m until quit or end of input.
func drive(m *stepper.Machine, in io.Reader) error {
	defer m.Destroy()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit":
			return nil
		case "next":
			if len(fields) > 1 {
				m.Next(stepper.State(fields[1]))
			} else {
				m.Next()
			}
		default:
			m.Send(stepper.Event(fields[0]))
		}
	}

	return scanner.Err()
}
