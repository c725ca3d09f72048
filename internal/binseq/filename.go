package binseq

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const fileExt = ".bin"

// SanitizeFileName replaces every character outside [A-Za-z0-9._-] with '_'.
func SanitizeFileName(name string) string {
	if name == "" {
		return "_"
	}
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// ChromFileName returns the file holding chrom's sequences: base.chrom.bin.
func ChromFileName(base, chrom string) string {
	return base + "." + SanitizeFileName(chrom) + fileExt
}

// Glob returns the sorted list of existing files saved under base.
func Glob(base string) ([]string, error) {
	dir, prefix := filepath.Split(base)
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list marker files: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := parseChromFileName(prefix, entry.Name()); ok {
			files = append(files, filepath.Join(filepath.Dir(base), entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// parseChromFileName recovers the sanitized chromosome from a file name
// written under the given base name.
func parseChromFileName(base, name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, base+".")
	if !ok {
		return "", false
	}
	chrom, ok := strings.CutSuffix(rest, fileExt)
	if !ok || chrom == "" {
		return "", false
	}
	return chrom, true
}
