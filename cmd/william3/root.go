package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gordian-engine/william3"
	"github.com/spf13/cobra"
)

// cliEnv is the state shared by every subcommand.
type cliEnv struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	log *slog.Logger

	logLevel string
	shape    string
	workers  int

	verbose bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	env := &cliEnv{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:   "william3",
		Short: "WILLIAM3 tree hash tool",

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var lvl slog.Level
			if err := lvl.UnmarshalText([]byte(env.logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			env.log = slog.New(slog.NewTextHandler(env.stderr, &slog.HandlerOptions{
				Level: lvl,
			}))
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&env.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&env.shape, "shape", william3.ShapeLeftFold.String(), "tree shape (left-fold, left-complete)")
	pf.IntVar(&env.workers, "workers", 0, "goroutines hashing chunks concurrently (0 hashes on one goroutine)")

	root.AddCommand(
		newHashCmd(env),
		newVectorsCmd(env),
	)

	return root
}

// reducerConfig maps the shared flags onto a reducer config.
func (e *cliEnv) reducerConfig() (william3.ReducerConfig, error) {
	s, err := william3.ParseShape(e.shape)
	if err != nil {
		return william3.ReducerConfig{}, fmt.Errorf("invalid --shape: %w", err)
	}
	if e.workers < 0 {
		return william3.ReducerConfig{}, fmt.Errorf("invalid --workers: must not be negative (got %d)", e.workers)
	}

	cfg := william3.DefaultReducerConfig()
	cfg.Shape = s
	cfg.Workers = e.workers
	return cfg, nil
}

func (e *cliEnv) reducer() (*william3.Reducer, error) {
	cfg, err := e.reducerConfig()
	if err != nil {
		return nil, err
	}

	e.log.Debug("Using reducer", "shape", cfg.Shape, "workers", cfg.Workers)
	return william3.NewReducer(cfg), nil
}
