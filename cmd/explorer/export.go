package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cookjwelch/golf-market-explorer/internal/export"
	"github.com/cookjwelch/golf-market-explorer/internal/observability"
)

func newExportCmd() *cobra.Command {
	var flags scoreFlags
	var out string
	var toPostgres bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered, scored table to a CSV file or Postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := flags.explore()
			if err != nil {
				return err
			}

			logger := observability.NewLogger("info", "text")

			var sink export.Sink
			if toPostgres {
				dsn := os.Getenv("EXPORT_DSN")
				if dsn == "" {
					return errors.New("--postgres requires EXPORT_DSN")
				}
				table := os.Getenv("EXPORT_TABLE")
				if table == "" {
					table = "scored_counties"
				}
				sink, err = export.NewPostgresSink(cmd.Context(), dsn, table, logger, nil)
				if err != nil {
					return err
				}
			} else {
				sink = export.NewFileSink(out, logger, nil)
			}
			defer sink.Close()

			if err := sink.Write(cmd.Context(), view.Counties); err != nil {
				return err
			}
			fmt.Printf("exported %d counties\n", len(view.Counties))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "golf_market_filtered.csv", "output CSV path")
	cmd.Flags().BoolVar(&toPostgres, "postgres", false, "write to Postgres (EXPORT_DSN) instead of a file")
	return cmd
}
