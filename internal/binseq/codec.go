package binseq

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/inodb/genseq/internal/interval"
)

// On-disk layout of a marker sequence file:
//
//	magic      [4]byte  "GSEQ"
//	version    uint8
//	set id     [16]byte UUID shared by all files written by one save
//	checksum   uint64   little-endian xxhash64 of the uncompressed payload
//	payload    snappy block of the gob-encoded record set
const (
	magic         = "GSEQ"
	formatVersion = 1
	headerSize    = len(magic) + 1 + 16 + 8
)

// File is the content of one marker sequence file.
type File struct {
	SetID    uuid.UUID
	GenomeID string
	Chrom    string // "" when records span several chromosomes
	Markers  []*MarkerSeq
}

// fileBody is the gob payload.
type fileBody struct {
	GenomeID string
	Chrom    string
	Records  []markerRecord
}

type markerRecord struct {
	Chrom string
	Start int
	End   int
	ID    string
	Seq   string
}

// Encode writes f to w. Records are written in interval order.
func Encode(w io.Writer, f *File) error {
	body := fileBody{GenomeID: f.GenomeID, Chrom: f.Chrom, Records: make([]markerRecord, 0, len(f.Markers))}
	for _, m := range sortedMarkers(f.Markers) {
		if !m.HasSequence() {
			return fmt.Errorf("encode %s: record has no sequence", m.Interval)
		}
		if f.Chrom != "" && m.Chrom != f.Chrom {
			return fmt.Errorf("encode %s: record not on chromosome %s", m.Interval, f.Chrom)
		}
		body.Records = append(body.Records, markerRecord{
			Chrom: m.Chrom, Start: m.Start, End: m.End, ID: m.ID, Seq: m.Sequence(),
		})
	}

	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(body); err != nil {
		return fmt.Errorf("encode markers: %w", err)
	}

	hdr := make([]byte, headerSize)
	copy(hdr, magic)
	hdr[len(magic)] = formatVersion
	copy(hdr[len(magic)+1:], f.SetID[:])
	binary.LittleEndian.PutUint64(hdr[headerSize-8:], xxhash.Sum64(payload.Bytes()))

	if _, err := w.Write(hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(snappy.Encode(nil, payload.Bytes())); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// Decode reads a file written by Encode.
func Decode(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markers: %w", err)
	}
	if len(data) < headerSize || string(data[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}
	if v := data[len(magic)]; v != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, v)
	}
	setID, err := uuid.FromBytes(data[len(magic)+1 : headerSize-8])
	if err != nil {
		return nil, fmt.Errorf("read set id: %w", err)
	}
	sum := binary.LittleEndian.Uint64(data[headerSize-8 : headerSize])

	payload, err := snappy.Decode(nil, data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("decompress markers: %w", err)
	}
	if xxhash.Sum64(payload) != sum {
		return nil, ErrChecksum
	}

	var body fileBody
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode markers: %w", err)
	}

	f := &File{SetID: setID, GenomeID: body.GenomeID, Chrom: body.Chrom, Markers: make([]*MarkerSeq, 0, len(body.Records))}
	for _, rec := range body.Records {
		iv, err := interval.New(rec.Chrom, rec.Start, rec.End)
		if err != nil {
			return nil, fmt.Errorf("decode record %s: %w", rec.ID, err)
		}
		m := NewMarkerSeq(iv, rec.ID)
		if err := m.SetSequence(rec.Seq); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", rec.ID, err)
		}
		f.Markers = append(f.Markers, m)
	}
	return f, nil
}

// WriteFile writes f to path. The file is written to a temporary name in the
// same directory and renamed into place.
func WriteFile(path string, f *File) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create marker file: %w", err)
	}
	if err := Encode(tmp, f); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close marker file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename marker file: %w", err)
	}
	return nil
}

// ReadFile reads a marker sequence file.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open marker file: %w", err)
	}
	defer fh.Close()

	f, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return f, nil
}

// SaveMarkers writes markers to path as a standalone file.
func SaveMarkers(path string, markers []*MarkerSeq) error {
	return WriteFile(path, &File{SetID: uuid.New(), Chrom: commonChrom(markers), Markers: markers})
}

// LoadMarkers reads the records of a file written by SaveMarkers or Store.Save.
func LoadMarkers(path string) ([]*MarkerSeq, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Markers, nil
}

func commonChrom(markers []*MarkerSeq) string {
	if len(markers) == 0 {
		return ""
	}
	chrom := markers[0].Chrom
	for _, m := range markers[1:] {
		if m.Chrom != chrom {
			return ""
		}
	}
	return chrom
}

func sortedMarkers(markers []*MarkerSeq) []*MarkerSeq {
	sorted := make([]*MarkerSeq, len(markers))
	copy(sorted, markers)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := interval.Compare(sorted[i].Interval, sorted[j].Interval); c != 0 {
			return c < 0
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
