package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/genseq/internal/binseq"
	"github.com/inodb/genseq/internal/catalog"
	"github.com/inodb/genseq/internal/genome"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] [chromosome...]",
		Short: "Extract merged gene region sequences and save them per chromosome",
		Long: `Build reads the genes of a genome and the chromosome sequences from a catalog
database, merges overlapping gene regions, extracts their sequences and writes
one binary file per chromosome named <out>.<chromosome>.bin.

Without chromosome arguments every catalog chromosome carrying genes is
processed. --biotype restricts the genes used, e.g. to protein_coding.`,
		Example: `  genseq build --catalog genome.duckdb --genome GRCh38 --out data/GRCh38
  genseq build --driver sqlite --catalog genome.db --genome GRCh38 -o data/GRCh38 chr1 chr2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return usageError{fmt.Errorf("--out is required")}
			}
			opts := buildOptions{
				catalog:  viper.GetString("catalog"),
				driver:   viper.GetString("driver"),
				genomeID: viper.GetString("genome"),
				out:      out,
				workers:  viper.GetInt("workers"),
				biotypes: viper.GetStringSlice("biotype"),
				verbose:  viper.GetBool("verbose"),
				chroms:   args,
			}
			return runBuild(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.String("catalog", "", "catalog database path")
	flags.String("driver", catalog.DriverDuckDB, "catalog driver: duckdb or sqlite")
	flags.String("genome", "", "genome identifier in the catalog")
	flags.StringP("out", "o", "", "base name of the output files")
	flags.Int("workers", 0, "chromosomes built in parallel (default: number of CPUs)")
	flags.StringSlice("biotype", nil, "only use genes of these biotypes (repeatable)")

	return cmd
}

type buildOptions struct {
	catalog  string
	driver   string
	genomeID string
	out      string
	workers  int
	biotypes []string
	verbose  bool
	chroms   []string
}

func runBuild(ctx context.Context, w io.Writer, opts buildOptions) error {
	if opts.catalog == "" {
		return usageError{fmt.Errorf("no catalog given; use --catalog or 'genseq config set catalog <path>'")}
	}
	if opts.genomeID == "" {
		return usageError{fmt.Errorf("no genome given; use --genome")}
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cat, err := catalog.Open(opts.driver, opts.catalog)
	if err != nil {
		return err
	}
	defer cat.Close()

	all, err := cat.Genome(ctx, opts.genomeID)
	if err != nil {
		return err
	}
	asm := genome.FilterBiotypes(all, opts.biotypes...)

	chroms := opts.chroms
	if len(chroms) == 0 {
		if chroms, err = cat.Chromosomes(ctx); err != nil {
			return err
		}
		chroms = withGenes(chroms, asm.Chromosomes())
	}
	logger.Info("loaded genome",
		zap.String("genome", asm.ID()),
		zap.Int("genes", asm.GeneCount()),
		zap.Int("chromosomes", len(chroms)))

	start := time.Now()
	store := binseq.NewStore(asm)
	store.SetLogger(logger)
	store.SetVerbose(opts.verbose)

	n, err := store.AddParallel(ctx, cat, chroms, opts.workers)
	if err != nil {
		return fmt.Errorf("build %s: %w", opts.genomeID, err)
	}
	if n == 0 {
		logger.Warn("no gene sequences extracted; nothing saved", zap.String("genome", asm.ID()))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.out), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := store.Save(opts.out); err != nil {
		return err
	}
	logger.Info("saved gene sequences",
		zap.String("out", opts.out),
		zap.Int("sequences", n),
		zap.Duration("elapsed", time.Since(start)))

	fmt.Fprintf(w, "Saved %s sequences on %d chromosomes to %s.*.bin\n",
		humanize.Comma(int64(n)), len(store.Forest().Names()), opts.out)
	return nil
}

// withGenes keeps the chromosomes that carry at least one gene, matching
// names without regard to case.
func withGenes(chroms, geneChroms []string) []string {
	var kept []string
	for _, chr := range chroms {
		for _, gc := range geneChroms {
			if strings.EqualFold(chr, gc) {
				kept = append(kept, chr)
				break
			}
		}
	}
	return kept
}
