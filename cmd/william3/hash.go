package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newHashCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "hash [FILE|-]...",
		Short: "Print the WILLIAM3 digest of each file",
		Long: `Print the WILLIAM3 digest of each file, one per line, followed by the file name.
With no FILE, or when FILE is -, read standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := env.reducer()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				args = []string{"-"}
			}

			for _, name := range args {
				data, err := env.readInput(name)
				if err != nil {
					return err
				}

				d := r.Reduce(data)
				env.log.Info("Hashed input", "name", name, "bytes", len(data))
				if _, err := fmt.Fprintf(env.stdout, "%s  %s\n", d, name); err != nil {
					return fmt.Errorf("failed to write digest: %w", err)
				}
			}
			return nil
		},
	}
}

// readInput reads the whole named file, or standard input for "-".
func (e *cliEnv) readInput(name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
