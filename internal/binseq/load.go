package binseq

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/inodb/genseq/internal/genome"
	"github.com/inodb/genseq/internal/interval"
)

// LoadIndex reads one chromosome file into a read-only sorted index.
func LoadIndex(path string) (*interval.Sorted[*MarkerSeq], *File, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return interval.NewSorted(f.Markers), f, nil
}

// LoadStore reads every file saved under base into a store. All files must
// come from the same save. The store's genome carries the saved genome ID but
// no genes.
//
// Files of another base that extends base (genome.v2 for genome) also match
// the name pattern; they are told apart by the chromosome in their header and
// skipped.
func LoadStore(base string) (*Store, error) {
	files, err := Glob(base)
	if err != nil {
		return nil, err
	}
	prefix := filepath.Base(base)

	var (
		setID    uuid.UUID
		genomeID string
		loaded   bool
		forest   = NewForest()
	)
	for _, path := range files {
		idx, f, err := LoadIndex(path)
		if err != nil {
			return nil, err
		}
		if name, _ := parseChromFileName(prefix, filepath.Base(path)); f.Chrom != "" && SanitizeFileName(f.Chrom) != name {
			continue
		}
		if !loaded {
			loaded = true
			setID, genomeID = f.SetID, f.GenomeID
		} else if f.SetID != setID {
			return nil, fmt.Errorf("load %s: %w", path, ErrMixedFileSet)
		}
		chrom := f.Chrom
		if chrom == "" {
			// Mixed-chromosome files from SaveMarkers go through the
			// regular insert path.
			for _, m := range f.Markers {
				if err := forest.Insert(m); err != nil {
					return nil, fmt.Errorf("load %s: %w", path, err)
				}
			}
			continue
		}
		if _, exists := forest.Tree(chrom); exists {
			return nil, fmt.Errorf("load %s: duplicate chromosome %s", path, chrom)
		}
		forest.SetTree(chrom, idx)
	}

	s := NewStore(genome.NewAssembly(genomeID))
	s.forest = forest
	return s, nil
}
