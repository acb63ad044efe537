package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/enetx/g"
	"github.com/enetx/stepper"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stepper",
	Short: "Drive and inspect cyclic state machines defined in YAML",
	Long: `stepper loads a state list from a YAML or JSON document and either renders
it as a Graphviz DOT graph or steps through it interactively.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Log every enter, exit and transition to stderr")
}

// newLogger writes to stderr so stdout stays usable for DOT or state output.
// The "error" key is normalized to "err".
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}

			return a
		},
	}))
}

// tracingRegistry resolves every action name to an action that logs its
// invocation, so any document can be run without user code.
func tracingRegistry(log *slog.Logger) *stepper.Registry {
	return stepper.NewRegistry().Fallback(func(name g.String) g.Option[stepper.Action] {
		return g.Some[stepper.Action](func(active *stepper.StateDef, _ *stepper.Context) {
			log.Info("action", "name", name, "active", active.Type)
		})
	})
}

func loadMachine(cmd *cobra.Command, path string) (*stepper.Machine, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	log := newLogger(cmd.ErrOrStderr(), debug)

	defs, err := stepper.LoadDefinitions(path, tracingRegistry(log))
	if err != nil {
		return nil, err
	}

	return stepper.New(defs, nil, stepper.WithName(g.String(path)), stepper.WithLogger(log))
}
