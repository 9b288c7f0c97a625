package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/witc/format"
	"github.com/dhamidi/witc/wit/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .wit file and dump the resulting tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			tree := parser.Parse(data)
			if !tree.Valid() {
				for _, d := range tree.Diagnostics {
					fmt.Fprintf(os.Stderr, "%s: %s\n", args[0], tree.RenderDiagnostic(d))
				}
				return fmt.Errorf("%d parse error(s)", len(tree.Diagnostics))
			}

			switch outputFormat {
			case "wit":
				if err := format.NewWITEncoder(os.Stdout).Encode(tree); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			case "json":
				if err := format.NewTreeJSONEncoder(os.Stdout).Encode(tree); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println()
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "wit", "Output format: wit or json")

	return cmd
}
