// Command cprep is a thin demonstration harness around the preprocessor
// core: it reads a JSON token fixture, runs it through the driver, and
// writes the resulting token vector back out as JSON. It is not a C
// lexer or compiler front end — producing the input token vector from
// real C source is an external collaborator's job.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cprep/cprep/internal/cpptoken"
	"github.com/cprep/cprep/internal/preprocessor"
)

var (
	outputPath string
	quiet      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cprep [token-file.json]",
		Short: "Run the constant-expression preprocessor core over a token fixture",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreprocess,
	}
	root.Flags().StringVarP(&outputPath, "out", "o", "", "write the output token vector to this file instead of stdout")
	root.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress #warning output")
	return root
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	input, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading token fixture: %w", err)
	}

	var tokens []cpptoken.Token
	if err := json.Unmarshal(input, &tokens); err != nil {
		return fmt.Errorf("decoding token fixture: %w", err)
	}

	host := preprocessor.NewStderrHost()
	if quiet {
		host.Writer = io.Discard
	}

	ctx := preprocessor.NewContext(tokens, nil, nil, host)
	if err := preprocessor.Run(ctx); err != nil {
		return fmt.Errorf("preprocessing: %w", err)
	}

	out, err := json.MarshalIndent(ctx.Output, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	if outputPath == "" {
		_, err = cmd.OutOrStdout().Write(append(out, '\n'))
		return err
	}
	return os.WriteFile(outputPath, append(out, '\n'), 0o644)
}
