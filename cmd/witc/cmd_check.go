package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/witc/wit/parser"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse files and report diagnostics without dumping trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				tree := parser.Parse(data)
				for _, d := range tree.Diagnostics {
					fmt.Fprintf(os.Stderr, "%s: %s\n", path, tree.RenderDiagnostic(d))
				}
				if !tree.Valid() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d file(s) failed to parse", failed)
			}
			return nil
		},
	}
}
