package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/witc/format"
	"github.com/dhamidi/witc/wit/parser"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a .wit file in canonical form",
		Long: `Print a .wit file in canonical form to stdout.

If a file is provided, it must have a .wit extension.
If no file is provided, reads source from stdin.

Use -w to overwrite the file in place (requires a file argument).
Comments are not preserved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error
			var filename string

			if len(args) == 0 {
				if fmtOverwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				filename = args[0]
				if ext := filepath.Ext(filename); ext != ".wit" {
					return fmt.Errorf("expected .wit file, got %s", ext)
				}
				source, err = os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
			}

			tree := parser.Parse(source)
			if !tree.Valid() {
				for _, d := range tree.Diagnostics {
					fmt.Fprintf(os.Stderr, "%s\n", tree.RenderDiagnostic(d))
				}
				return fmt.Errorf("%d parse error(s)", len(tree.Diagnostics))
			}

			var buf bytes.Buffer
			if err := format.NewWITEncoder(&buf).Encode(tree); err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				return os.WriteFile(filename, buf.Bytes(), 0644)
			}
			_, err = os.Stdout.Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "Overwrite the file in place")

	return cmd
}
