package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/genseq/internal/catalog"
	"github.com/inodb/genseq/internal/genome"
)

var chr1 = strings.Repeat("acgt", 50)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// testCatalog writes a SQLite catalog with three genes on chr1 and a
// chromosome without genes.
func testCatalog(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "catalog.db")
	cat, err := catalog.Open(catalog.DriverSQLite, path)
	require.NoError(t, err)
	defer cat.Close()

	ctx := context.Background()
	require.NoError(t, cat.PutGenes(ctx, "test", []*genome.Gene{
		{ID: "A", Chrom: "chr1", Start: 10, End: 20, Strand: 1, Biotype: "protein_coding"},
		{ID: "B", Chrom: "chr1", Start: 15, End: 30, Strand: -1, Biotype: "lncRNA"},
		{ID: "C", Chrom: "chr1", Start: 100, End: 110, Strand: 1, Biotype: "protein_coding"},
	}))
	require.NoError(t, cat.PutChromosome(ctx, "chr1", chr1))
	require.NoError(t, cat.PutChromosome(ctx, "chrM", "ACGT"))
	return path
}

func build(t *testing.T, catPath string) string {
	t.Helper()
	base := filepath.Join(t.TempDir(), "out", "test")
	out, err := execute(t, "build", "--driver", "sqlite", "--catalog", catPath, "--genome", "test", "--out", base)
	require.NoError(t, err)
	assert.Equal(t, "Saved 2 sequences on 1 chromosomes to "+base+".*.bin\n", out)
	assert.FileExists(t, base+".chr1.bin")
	assert.NoFileExists(t, base+".chrM.bin")
	return base
}

func TestBuildAndSummary(t *testing.T) {
	base := build(t, testCatalog(t))

	out, err := execute(t, "summary", base)
	require.NoError(t, err)
	assert.Equal(t, "Genomic sequences 'test'\n\tchr1\t2\t32\n\tTOTAL\t2\t32\n", out)

	out, err = execute(t, "summary", "--human", base)
	require.NoError(t, err)
	assert.Contains(t, out, "CHROM")
	assert.Regexp(t, `TOTAL\s+2\s+32`, out)
}

func TestBuild_ChromosomeArgs(t *testing.T) {
	catPath := testCatalog(t)
	base := filepath.Join(t.TempDir(), "test")

	_, err := execute(t, "build", "--driver", "sqlite", "--catalog", catPath, "--genome", "test", "--out", base, "chr9")
	assert.ErrorIs(t, err, catalog.ErrNoChromosome)
}

func TestBuild_Biotype(t *testing.T) {
	catPath := testCatalog(t)
	base := filepath.Join(t.TempDir(), "coding", "test")

	out, err := execute(t, "build", "--driver", "sqlite", "--catalog", catPath, "--genome", "test",
		"--out", base, "--biotype", "protein_coding")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 sequences")

	out, err = execute(t, "summary", base)
	require.NoError(t, err)
	assert.Equal(t, "Genomic sequences 'test'\n\tchr1\t2\t22\n\tTOTAL\t2\t22\n", out)
}

func TestWithGenes(t *testing.T) {
	assert.Equal(t, []string{"CHR1", "chr3"}, withGenes([]string{"CHR1", "chr2", "chr3"}, []string{"chr1", "chr3"}))
	assert.Empty(t, withGenes([]string{"chr2"}, nil))
}

func TestBuild_MissingOptions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := execute(t, "build", "--genome", "test")
	var ue usageError
	assert.ErrorAs(t, err, &ue)

	_, err = execute(t, "build", "--out", "x", "--genome", "test")
	assert.ErrorAs(t, err, &ue)
	assert.Contains(t, err.Error(), "catalog")
}

func TestQuery(t *testing.T) {
	base := build(t, testCatalog(t))
	upper := strings.ToUpper(chr1)

	out, err := execute(t, "query", base, "chr1:30-100")
	require.NoError(t, err)
	assert.Equal(t, ">chr1:10-30\n"+upper[10:31]+"\n>chr1:100-110\n"+upper[100:111]+"\n", out)

	out, err = execute(t, "query", "--clip", base, "chr1:25")
	require.NoError(t, err)
	assert.Equal(t, ">chr1:10-30 chr1:25-25\n"+upper[25:26]+"\n", out)

	out, err = execute(t, "query", base, "chr1:40-90")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestQuery_Errors(t *testing.T) {
	base := build(t, testCatalog(t))

	_, err := execute(t, "query", base, "chr9:1-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no saved sequences for chr9")

	_, err = execute(t, "query", base, "chr1:20-10")
	var ue usageError
	assert.ErrorAs(t, err, &ue)
}

func TestExport(t *testing.T) {
	base := build(t, testCatalog(t))
	dst := filepath.Join(t.TempDir(), "export.db")

	out, err := execute(t, "export", "--driver", "sqlite", "--catalog", dst, base)
	require.NoError(t, err)
	assert.Equal(t, "Exported 2 sequences of \"test\" (2 in catalog)\n", out)

	out, err = execute(t, "export", "--driver", "sqlite", "--catalog", dst, base)
	require.NoError(t, err)
	assert.Contains(t, out, "(4 in catalog)")

	out, err = execute(t, "export", "--replace", "--driver", "sqlite", "--catalog", dst, base)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 in catalog)")
}

func TestSummary_NoFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := execute(t, "summary", filepath.Join(t.TempDir(), "none"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sequence files found")
}

func TestConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := filepath.Join(t.TempDir(), "genseq.yaml")

	out, err := execute(t, "--config", cfg, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "No configuration set")

	_, err = execute(t, "--config", cfg, "config", "set", "workers", "4")
	require.NoError(t, err)
	_, err = execute(t, "--config", cfg, "config", "set", "driver", "sqlite")
	require.NoError(t, err)

	out, err = execute(t, "--config", cfg, "config", "get", "workers")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	out, err = execute(t, "--config", cfg, "config")
	require.NoError(t, err)
	assert.Equal(t, "driver: sqlite\nworkers: 4\n", out)

	_, err = execute(t, "--config", cfg, "config", "get", "missing")
	assert.Error(t, err)
}

func TestConfig_DriverFromFile(t *testing.T) {
	catPath := testCatalog(t)
	cfg := filepath.Join(t.TempDir(), "genseq.yaml")
	_, err := execute(t, "--config", cfg, "config", "set", "driver", "sqlite")
	require.NoError(t, err)
	_, err = execute(t, "--config", cfg, "config", "set", "catalog", catPath)
	require.NoError(t, err)

	base := filepath.Join(t.TempDir(), "test")
	out, err := execute(t, "--config", cfg, "build", "--genome", "test", "--out", base)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 sequences")
}

func TestInitConfig_BadDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, os.Mkdir(".env", 0755))

	_, err := execute(t, "config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load .env")
}

func TestInitConfig_DotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("GENSEQ_WORKERS=3\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("GENSEQ_WORKERS") })

	out, err := execute(t, "config", "get", "workers")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestRun_ExitCodes(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Equal(t, ExitUsage, run([]string{"build", "--no-such-flag"}))
	viper.Reset()
	assert.Equal(t, ExitError, run([]string{"summary", filepath.Join(t.TempDir(), "none")}))
}
