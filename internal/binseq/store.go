package binseq

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inodb/genseq/internal/genome"
	"github.com/inodb/genseq/internal/interval"
)

// Store holds the sequences of all regions of interest in one genome.
//
// A Store is not safe for concurrent use. Use AddParallel to build several
// chromosomes at once.
type Store struct {
	genome  genome.Genome
	forest  *Forest
	logger  *zap.Logger
	verbose bool
}

// NewStore creates an empty store for g. The genome is only read.
func NewStore(g genome.Genome) *Store {
	return &Store{
		genome: g,
		forest: NewForest(),
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for diagnostics.
func (s *Store) SetLogger(l *zap.Logger) {
	s.logger = l
}

// SetVerbose enables progress messages for each chromosome and file.
func (s *Store) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Genome returns the genome the store was built for.
func (s *Store) Genome() genome.Genome {
	return s.genome
}

// Forest returns the underlying interval forest.
func (s *Store) Forest() *Forest {
	return s.forest
}

// AddGeneSequences adds the sequences of all genes on chromosome chr, whose
// full sequence is chrSeq. Overlapping or adjacent genes are merged first, so
// each stored record covers one merged region.
//
// It returns the number of records added. Genes or regions outside the
// chromosome are logged and skipped. A *FatalExtractionError aborts the
// call; records added before the failure stay in the store.
//
// Calling it twice for the same chromosome stores every region twice.
func (s *Store) AddGeneSequences(chr, chrSeq string) (int, error) {
	candidates := s.geneRegions(chr, len(chrSeq))
	regions := interval.Merge(candidates)
	s.logger.Debug("merged gene regions",
		zap.String("chrom", chr),
		zap.Int("before", len(candidates)),
		zap.Int("after", len(regions)))

	added := 0
	for _, region := range regions {
		if !strings.EqualFold(region.Chrom, chr) {
			continue
		}

		m, err := Extract(region, chrSeq)
		var oor *OutOfRangeError
		switch {
		case errors.As(err, &oor):
			s.logger.Warn("ignoring merged region outside chromosome range",
				zap.String("region", region.String()),
				zap.Int("chrom_len", oor.ChromLen))
			continue
		case err != nil:
			return added, fmt.Errorf("add gene sequences for %s: %w", chr, err)
		}

		if err := s.forest.Insert(m); err != nil {
			return added, fmt.Errorf("add gene sequences for %s: %w", chr, err)
		}
		added++
	}

	if s.verbose {
		s.logger.Info("added gene sequences", zap.String("chrom", chr), zap.Int("sequences", added))
	}
	return added, nil
}

// geneRegions returns the intervals of the genes on chr that fit inside a
// chromosome of length chrLen.
func (s *Store) geneRegions(chr string, chrLen int) []interval.Interval {
	var regions []interval.Interval
	for _, g := range genome.GenesOn(s.genome, chr) {
		iv := interval.Interval{Chrom: g.Chrom, Start: g.Start, End: g.End}
		if err := checkBounds(iv, chrLen); err != nil {
			s.logger.Warn("ignoring gene outside chromosome range",
				zap.String("gene", g.ID),
				zap.String("region", iv.String()),
				zap.Int("chrom_len", chrLen))
			continue
		}
		regions = append(regions, iv)
	}
	return regions
}

// Add inserts a record directly. It must carry a sequence.
func (s *Store) Add(m *MarkerSeq) error {
	if !m.HasSequence() || m.Sequence() == "" {
		return fmt.Errorf("add %s: record has no sequence", m.Interval)
	}
	return s.forest.Insert(m)
}

// IsEmpty returns true if no tree holds a record.
func (s *Store) IsEmpty() bool {
	for _, tree := range s.forest.Trees() {
		if tree.Len() > 0 {
			return false
		}
	}
	return true
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return s.forest.Len()
}

// All returns a new slice holding every record. Order is unspecified.
func (s *Store) All() []*MarkerSeq {
	var all []*MarkerSeq
	for _, tree := range s.forest.Trees() {
		all = append(all, tree.All()...)
	}
	return all
}

// Markers iterates over every record. Each call re-reads the forest.
func (s *Store) Markers() iter.Seq[*MarkerSeq] {
	return func(yield func(*MarkerSeq) bool) {
		for _, m := range s.All() {
			if !yield(m) {
				return
			}
		}
	}
}

// Query returns the records overlapping iv.
func (s *Store) Query(iv interval.Interval) []*MarkerSeq {
	return s.forest.Query(iv)
}

// Merge adds every record of other to s.
func (s *Store) Merge(other *Store) error {
	return s.forest.Merge(other.forest)
}

// Save writes one file per chromosome, named by ChromFileName(base, chr).
// Chromosomes are written in sorted order and the first write error aborts
// the remaining ones. An empty store writes nothing.
func (s *Store) Save(base string) error {
	if s.IsEmpty() {
		return nil
	}

	chroms := s.forest.Names()
	taken := make(map[string]string, len(chroms))
	for _, chr := range chroms {
		name := ChromFileName(base, chr)
		if other, ok := taken[name]; ok {
			return fmt.Errorf("save %s: %w: %q and %q", name, ErrFileNameCollision, other, chr)
		}
		taken[name] = chr
	}

	setID := uuid.New()
	for _, chr := range chroms {
		if err := s.saveChrom(base, chr, setID); err != nil {
			return err
		}
	}
	return nil
}

// saveChrom writes the sequences of chromosome chr.
func (s *Store) saveChrom(base, chr string, setID uuid.UUID) error {
	tree, ok := s.forest.Tree(chr)
	if !ok {
		if s.verbose {
			s.logger.Info("no tree found for chromosome", zap.String("chrom", chr))
		}
		return nil
	}
	if tree.Len() == 0 {
		if s.verbose {
			s.logger.Info("no sequences found for chromosome", zap.String("chrom", chr))
		}
		return nil
	}

	fileName := ChromFileName(base, chr)
	if s.verbose {
		s.logger.Info("saving sequences",
			zap.String("chrom", chr),
			zap.String("file", fileName),
			zap.Int("sequences", tree.Len()))
	}
	f := &File{SetID: setID, GenomeID: s.genomeID(), Chrom: chr, Markers: tree.All()}
	if err := WriteFile(fileName, f); err != nil {
		return fmt.Errorf("save chromosome %s: %w", chr, err)
	}
	return nil
}

func (s *Store) genomeID() string {
	if s.genome == nil {
		return ""
	}
	return s.genome.ID()
}

// String summarizes the number of records and stored bases per chromosome.
func (s *Store) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Genomic sequences '%s'\n", s.genomeID())

	var sumMarkers, sumLen int
	for _, stats := range s.Stats() {
		fmt.Fprintf(&sb, "\t%s\t%d\t%d\n", stats.Chrom, stats.Markers, stats.Bases)
		sumMarkers += stats.Markers
		sumLen += stats.Bases
	}
	fmt.Fprintf(&sb, "\tTOTAL\t%d\t%d\n", sumMarkers, sumLen)
	return sb.String()
}

// ChromStats counts the records and stored bases of one chromosome.
type ChromStats struct {
	Chrom   string
	Markers int
	Bases   int
}

// Stats returns per-chromosome statistics in chromosome name order.
func (s *Store) Stats() []ChromStats {
	names := s.forest.Names()
	stats := make([]ChromStats, 0, len(names))
	for _, chr := range names {
		tree, _ := s.forest.Tree(chr)
		cs := ChromStats{Chrom: chr, Markers: tree.Len()}
		for _, m := range tree.All() {
			cs.Bases += m.Len()
		}
		stats = append(stats, cs)
	}
	return stats
}
