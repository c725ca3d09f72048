package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/genseq/internal/catalog"
)

func newExportCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "export <base>",
		Short: "Load saved sequence files into the marker_seqs table of a catalog",
		Example: `  genseq export --catalog genome.duckdb data/GRCh38
  genseq export --replace --driver sqlite --catalog genome.db data/GRCh38`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viper.GetString("catalog")
			if path == "" {
				return usageError{fmt.Errorf("no catalog given; use --catalog or 'genseq config set catalog <path>'")}
			}
			return runExport(cmd.Context(), cmd.OutOrStdout(), args[0], viper.GetString("driver"), path, replace)
		},
	}

	flags := cmd.Flags()
	flags.String("catalog", "", "catalog database path")
	flags.String("driver", catalog.DriverDuckDB, "catalog driver: duckdb or sqlite")
	flags.BoolVar(&replace, "replace", false, "remove previously exported sequences of the genome first")

	return cmd
}

func runExport(ctx context.Context, w io.Writer, base, driverName, path string, replace bool) error {
	store, err := loadSaved(base)
	if err != nil {
		return err
	}
	genomeID := store.Genome().ID()

	cat, err := catalog.Open(driverName, path)
	if err != nil {
		return err
	}
	defer cat.Close()

	if replace {
		if err := cat.ClearMarkers(ctx, genomeID); err != nil {
			return fmt.Errorf("clear markers of %s: %w", genomeID, err)
		}
	}
	if err := cat.WriteMarkers(ctx, genomeID, store.All()); err != nil {
		return err
	}

	total, err := cat.MarkerCount(ctx, genomeID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Exported %s sequences of %q (%s in catalog)\n",
		humanize.Comma(int64(store.Len())), genomeID, humanize.Comma(int64(total)))
	return nil
}
