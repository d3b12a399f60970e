package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gordian-engine/william3/w3vector"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newVectorsCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vectors",
		Short: "Generate, check, and compare test vector files",
	}

	cmd.AddCommand(
		newVectorsGenerateCmd(env),
		newVectorsCheckCmd(env),
		newVectorsCompareCmd(env),
	)
	return cmd
}

func newVectorsGenerateCmd(env *cliEnv) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the default test vectors as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := env.reducer()
			if err != nil {
				return err
			}

			vs := w3vector.Generate(w3vector.DefaultCases(), r.Reduce)

			if out == "" || out == "-" {
				return w3vector.Write(env.stdout, vs)
			}

			var buf bytes.Buffer
			if err := w3vector.Write(&buf, vs); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write vector file: %w", err)
			}

			env.log.Info("Wrote vectors", "path", out, "count", len(vs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default standard output)")
	return cmd
}

func newVectorsCheckCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Recompute every vector in FILE and report mismatches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := env.reducer()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open vector file: %w", err)
			}
			defer f.Close()

			vs, err := w3vector.Read(f)
			if err != nil {
				return err
			}

			ms := w3vector.Check(vs, r.Reduce)
			if env.verbose {
				renderCheckTable(env, vs, ms)
			}
			for _, m := range ms {
				if _, err := fmt.Fprintln(env.stdout, "FAIL", m); err != nil {
					return fmt.Errorf("failed to write mismatch: %w", err)
				}
			}
			if len(ms) > 0 {
				return fmt.Errorf("%d of %d vectors did not match", len(ms), len(vs))
			}

			if _, err := fmt.Fprintf(env.stdout, "ok: %d vectors\n", len(vs)); err != nil {
				return fmt.Errorf("failed to write result: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&env.verbose, "verbose", "v", false, "print a table of every vector")
	return cmd
}

// renderCheckTable writes one row per vector with its check result.
func renderCheckTable(env *cliEnv, vs []w3vector.Vector, ms []w3vector.Mismatch) {
	failed := make(map[int]bool, len(ms))
	for _, m := range ms {
		failed[m.Index] = true
	}

	table := tablewriter.NewWriter(env.stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Description", "Bytes", "Result"})
	for i, v := range vs {
		result := "ok"
		if failed[i] {
			result = "FAIL"
		}
		table.Append([]string{
			strconv.Itoa(i), v.Description, strconv.Itoa(len(v.InputBytes)), result,
		})
	}
	table.Render()
}

// errVectorsDiffer is returned from vectors compare when the files differ.
var errVectorsDiffer = errors.New("vector files differ")

func newVectorsCompareCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "compare A B",
		Short: "Structurally diff two vector files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read vector file: %w", err)
			}
			b, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read vector file: %w", err)
			}

			c, err := w3vector.Compare(a, b)
			if err != nil {
				return err
			}

			if !c.Modified {
				if _, err := fmt.Fprintln(env.stdout, "identical"); err != nil {
					return fmt.Errorf("failed to write result: %w", err)
				}
				return nil
			}

			if _, err := io.WriteString(env.stdout, c.Report); err != nil {
				return fmt.Errorf("failed to write diff report: %w", err)
			}
			return errVectorsDiffer
		},
	}
}
