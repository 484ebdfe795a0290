// Command explorer is the golf market opportunity explorer: it loads the
// county census dataset, scores counties as golf-equipment markets, and
// either serves the dashboard API or produces one-shot reports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "explorer",
		Short:         "County-level golf market opportunity scoring",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newTopCmd(), newExportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
