package binseq

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SequenceSource provides the full sequence of a chromosome.
type SequenceSource interface {
	Sequence(ctx context.Context, chrom string) (string, error)
}

// shard is the result of building one chromosome in isolation.
type shard struct {
	store *Store
	added int
}

// AddParallel adds the gene sequences of chroms using a pool of workers,
// each building its chromosome into a private store. The shards are merged
// into s in the order of chroms once every worker has finished, so the
// result matches calling AddGeneSequences for each chromosome in turn.
// If workers is 0, runtime.NumCPU() is used.
//
// On error nothing is merged into s.
func (s *Store) AddParallel(ctx context.Context, src SequenceSource, chroms []string, workers int) (int, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	shards := make([]shard, len(chroms))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, chr := range chroms {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seq, err := src.Sequence(ctx, chr)
			if err != nil {
				return fmt.Errorf("load sequence for %s: %w", chr, err)
			}

			part := NewStore(s.genome)
			part.SetLogger(s.logger.With(zap.String("chrom", chr)))
			part.SetVerbose(s.verbose)
			added, err := part.AddGeneSequences(chr, seq)
			if err != nil {
				return err
			}
			shards[i] = shard{store: part, added: added}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, sh := range shards {
		if err := s.Merge(sh.store); err != nil {
			return total, err
		}
		total += sh.added
	}
	return total, nil
}
