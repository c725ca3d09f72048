package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inodb/genseq/internal/genome"
)

var (
	// ErrUnknownGenome is returned when the catalog has no genes for a genome.
	ErrUnknownGenome = errors.New("genome not in catalog")
	// ErrNoChromosome is returned when the catalog has no sequence for a chromosome.
	ErrNoChromosome = errors.New("chromosome not in catalog")
)

// PutGenes inserts the genes of one genome.
func (s *Store) PutGenes(ctx context.Context, genomeID string, genes []*genome.Gene) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin gene insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO genes
		(genome_id, gene_id, name, chrom, start_pos, end_pos, strand, biotype)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare gene insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range genes {
		if _, err := stmt.ExecContext(ctx, genomeID, g.ID, g.Name, g.Chrom,
			int64(g.Start), int64(g.End), int64(g.Strand), g.Biotype); err != nil {
			return fmt.Errorf("insert gene %s: %w", g.ID, err)
		}
	}
	return tx.Commit()
}

// Genome loads the genes of genomeID ordered by position.
func (s *Store) Genome(ctx context.Context, genomeID string) (*genome.Assembly, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		gene_id, name, chrom, start_pos, end_pos, strand, biotype
		FROM genes
		WHERE genome_id = ?
		ORDER BY chrom, start_pos, end_pos, gene_id`, genomeID)
	if err != nil {
		return nil, fmt.Errorf("query genes: %w", err)
	}
	defer rows.Close()

	asm := genome.NewAssembly(genomeID)
	for rows.Next() {
		var (
			g      genome.Gene
			strand int64
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.Chrom, &g.Start, &g.End, &strand, &g.Biotype); err != nil {
			return nil, fmt.Errorf("scan gene: %w", err)
		}
		g.Strand = int8(strand)
		asm.AddGene(&g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genes: %w", err)
	}
	if asm.GeneCount() == 0 {
		return nil, fmt.Errorf("load genome %q: %w", genomeID, ErrUnknownGenome)
	}
	return asm, nil
}

// Genomes returns the sorted identifiers of genomes with genes.
func (s *Store) Genomes(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, "SELECT DISTINCT genome_id FROM genes ORDER BY genome_id")
}

// PutChromosome stores or replaces the sequence of a chromosome.
func (s *Store) PutChromosome(ctx context.Context, name, sequence string) error {
	if _, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO chromosomes (name, sequence) VALUES (?, ?)", name, sequence); err != nil {
		return fmt.Errorf("insert chromosome %s: %w", name, err)
	}
	return nil
}

// Chromosomes returns the sorted names of chromosomes with a sequence.
func (s *Store) Chromosomes(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, "SELECT name FROM chromosomes ORDER BY name")
}

// Sequence returns the full sequence of a chromosome.
func (s *Store) Sequence(ctx context.Context, name string) (string, error) {
	var seq string
	err := s.db.QueryRowContext(ctx, "SELECT sequence FROM chromosomes WHERE name = ?", name).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("sequence %s: %w", name, ErrNoChromosome)
	}
	if err != nil {
		return "", fmt.Errorf("query sequence %s: %w", name, err)
	}
	return seq, nil
}

func (s *Store) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return out, nil
}
