package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/inodb/genseq/internal/binseq"
)

func newSummaryCmd() *cobra.Command {
	var human bool

	cmd := &cobra.Command{
		Use:   "summary <base>",
		Short: "Show per-chromosome counts of saved sequence files",
		Example: `  genseq summary data/GRCh38
  genseq summary --human data/GRCh38`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadSaved(args[0])
			if err != nil {
				return err
			}
			if human {
				return writeHumanSummary(cmd.OutOrStdout(), store)
			}
			fmt.Fprint(cmd.OutOrStdout(), store)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&human, "human", "H", false, "aligned columns with thousands separators")

	return cmd
}

func writeHumanSummary(w io.Writer, store *binseq.Store) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "CHROM\tSEQUENCES\tBASES\t\n")

	var markers, bases int
	for _, cs := range store.Stats() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", cs.Chrom,
			humanize.Comma(int64(cs.Markers)), humanize.Comma(int64(cs.Bases)))
		markers += cs.Markers
		bases += cs.Bases
	}
	fmt.Fprintf(tw, "TOTAL\t%s\t%s\t\n", humanize.Comma(int64(markers)), humanize.Comma(int64(bases)))
	return tw.Flush()
}

// loadSaved loads the files saved under base and fails when there are none.
func loadSaved(base string) (*binseq.Store, error) {
	store, err := binseq.LoadStore(base)
	if err != nil {
		return nil, err
	}
	if store.IsEmpty() {
		return nil, fmt.Errorf("no sequence files found for %s (expected %s)", base, binseq.ChromFileName(base, "<chromosome>"))
	}
	return store, nil
}
