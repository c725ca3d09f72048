package binseq

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/genseq/internal/interval"
)

func marker(t *testing.T, chrom string, start int, seq string) *MarkerSeq {
	t.Helper()
	iv := interval.Interval{Chrom: chrom, Start: start, End: start + len(seq) - 1}
	m := NewMarkerSeq(iv, MarkerID(iv))
	require.NoError(t, m.SetSequence(seq))
	return m
}

func encoded(t *testing.T, f *File) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f))
	return buf.Bytes()
}

func TestCodec_RoundTrip(t *testing.T) {
	setID := uuid.New()
	f := &File{
		SetID:    setID,
		GenomeID: "GRCh38",
		Chrom:    "chr1",
		Markers: []*MarkerSeq{
			marker(t, "chr1", 100, "ACGTACGT"),
			marker(t, "chr1", 10, "NNNN"),
		},
	}

	got, err := Decode(bytes.NewReader(encoded(t, f)))
	require.NoError(t, err)
	assert.Equal(t, setID, got.SetID)
	assert.Equal(t, "GRCh38", got.GenomeID)
	assert.Equal(t, "chr1", got.Chrom)
	require.Len(t, got.Markers, 2)

	assert.Equal(t, f.Markers[1], got.Markers[0], "records are written in interval order")
	assert.Equal(t, f.Markers[0], got.Markers[1])
}

func TestCodec_Deterministic(t *testing.T) {
	setID := uuid.New()
	a := marker(t, "chr1", 10, "AC")
	b := marker(t, "chr1", 20, "GT")

	first := encoded(t, &File{SetID: setID, Markers: []*MarkerSeq{a, b}})
	second := encoded(t, &File{SetID: setID, Markers: []*MarkerSeq{b, a}})
	assert.Equal(t, first, second)
}

func TestCodec_Empty(t *testing.T) {
	got, err := Decode(bytes.NewReader(encoded(t, &File{SetID: uuid.New()})))
	require.NoError(t, err)
	assert.Empty(t, got.Markers)
}

func TestCodec_RejectsRecordWithoutSequence(t *testing.T) {
	m := NewMarkerSeq(interval.Interval{Chrom: "chr1", Start: 0, End: 1}, "m")
	err := Encode(&bytes.Buffer{}, &File{Markers: []*MarkerSeq{m}})
	assert.Error(t, err)
}

func TestCodec_RejectsForeignChromosome(t *testing.T) {
	err := Encode(&bytes.Buffer{}, &File{Chrom: "chr1", Markers: []*MarkerSeq{marker(t, "chr2", 0, "A")}})
	assert.Error(t, err)
}

func TestCodec_Corruption(t *testing.T) {
	data := encoded(t, &File{SetID: uuid.New(), Markers: []*MarkerSeq{marker(t, "chr1", 0, "ACGT")}})

	t.Run("magic", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[0] = 'X'
		_, err := Decode(bytes.NewReader(bad))
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(data[:headerSize-1]))
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("version", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(magic)] = formatVersion + 1
		_, err := Decode(bytes.NewReader(bad))
		assert.ErrorIs(t, err, ErrVersion)
	})

	t.Run("checksum", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[headerSize-1] ^= 0xff
		_, err := Decode(bytes.NewReader(bad))
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("payload", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(data[:len(data)-2]))
		assert.Error(t, err)
	})
}

func TestSaveLoadMarkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.bin")
	markers := []*MarkerSeq{
		marker(t, "chr2", 5, "GG"),
		marker(t, "chr1", 5, "CC"),
	}

	require.NoError(t, SaveMarkers(path, markers))

	loaded, err := LoadMarkers(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "chr1", loaded[0].Chrom)
	assert.Equal(t, "CC", loaded[0].Sequence())
	assert.Equal(t, "chr2", loaded[1].Chrom)

	f, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, f.Chrom, "records on several chromosomes")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.bin"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
