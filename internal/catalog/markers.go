package catalog

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/genseq/internal/binseq"
	"github.com/inodb/genseq/internal/interval"
)

// WriteMarkers batch-inserts marker sequences of one genome. DuckDB catalogs
// use the Appender API; SQLite catalogs a prepared statement in a transaction.
func (s *Store) WriteMarkers(ctx context.Context, genomeID string, markers []*binseq.MarkerSeq) error {
	if len(markers) == 0 {
		return nil
	}
	if s.driver == DriverDuckDB {
		return s.appendMarkers(ctx, genomeID, markers)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin marker insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO marker_seqs
		(genome_id, id, chrom, start_pos, end_pos, length, sequence)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare marker insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range markers {
		if _, err := stmt.ExecContext(ctx, genomeID, m.ID, m.Chrom,
			int64(m.Start), int64(m.End), int64(m.Len()), m.Sequence()); err != nil {
			return fmt.Errorf("insert marker %s: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) appendMarkers(ctx context.Context, genomeID string, markers []*binseq.MarkerSeq) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "marker_seqs")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, m := range markers {
		if err := appender.AppendRow(
			genomeID, m.ID, m.Chrom,
			int64(m.Start), int64(m.End), int64(m.Len()), m.Sequence(),
		); err != nil {
			return fmt.Errorf("append marker %s: %w", m.ID, err)
		}
	}

	return appender.Flush()
}

// ClearMarkers removes the stored marker sequences of a genome.
func (s *Store) ClearMarkers(ctx context.Context, genomeID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM marker_seqs WHERE genome_id = ?", genomeID)
	return err
}

// MarkerCount returns the number of stored marker sequences of a genome.
func (s *Store) MarkerCount(ctx context.Context, genomeID string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM marker_seqs WHERE genome_id = ?", genomeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count markers: %w", err)
	}
	return n, nil
}

// Markers returns the stored marker sequences of a genome overlapping iv,
// ordered by position.
func (s *Store) Markers(ctx context.Context, genomeID string, iv interval.Interval) ([]*binseq.MarkerSeq, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, chrom, start_pos, end_pos, sequence
		FROM marker_seqs
		WHERE genome_id = ? AND chrom = ? AND start_pos <= ? AND end_pos >= ?
		ORDER BY start_pos, end_pos, id`,
		genomeID, iv.Chrom, int64(iv.End), int64(iv.Start))
	if err != nil {
		return nil, fmt.Errorf("query markers: %w", err)
	}
	defer rows.Close()

	var markers []*binseq.MarkerSeq
	for rows.Next() {
		var (
			id, seq string
			region  interval.Interval
		)
		if err := rows.Scan(&id, &region.Chrom, &region.Start, &region.End, &seq); err != nil {
			return nil, fmt.Errorf("scan marker: %w", err)
		}
		m := binseq.NewMarkerSeq(region, id)
		if err := m.SetSequence(seq); err != nil {
			return nil, fmt.Errorf("marker %s: %w", id, err)
		}
		markers = append(markers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate markers: %w", err)
	}
	return markers, nil
}
