package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/inodb/genseq/internal/binseq"
	"github.com/inodb/genseq/internal/interval"
)

func newQueryCmd() *cobra.Command {
	var clip bool

	cmd := &cobra.Command{
		Use:   "query <base> <region>...",
		Short: "Print saved sequences overlapping regions as FASTA",
		Long: `Query loads the saved file of each region's chromosome and prints every
stored sequence overlapping the region. Regions are chr:start-end or chr:pos,
0-based and inclusive.`,
		Example: `  genseq query data/GRCh38 chr1:10000-20000
  genseq query --clip data/GRCh38 chr1:15000 chr2:0-100`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			regions := make([]interval.Interval, 0, len(args)-1)
			for _, arg := range args[1:] {
				iv, err := interval.Parse(arg)
				if err != nil {
					return usageError{err}
				}
				regions = append(regions, iv)
			}
			return runQuery(cmd.OutOrStdout(), args[0], regions, clip)
		},
	}
	cmd.Flags().BoolVar(&clip, "clip", false, "print only the part of each sequence inside the region")

	return cmd
}

func runQuery(w io.Writer, base string, regions []interval.Interval, clip bool) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	indexes := make(map[string]*interval.Sorted[*binseq.MarkerSeq])
	for _, region := range regions {
		idx, ok := indexes[region.Chrom]
		if !ok {
			path := binseq.ChromFileName(base, region.Chrom)
			var err error
			idx, _, err = binseq.LoadIndex(path)
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("no saved sequences for %s (expected %s)", region.Chrom, path)
			}
			if err != nil {
				return err
			}
			indexes[region.Chrom] = idx
		}

		for _, m := range idx.QueryOverlapping(region) {
			if !clip {
				fmt.Fprintf(bw, ">%s\n%s\n", m.ID, m.Sequence())
				continue
			}
			seq, clipped, ok := m.SubSequence(region)
			if !ok {
				continue
			}
			fmt.Fprintf(bw, ">%s %s\n%s\n", m.ID, clipped, seq)
		}
	}
	return bw.Flush()
}
