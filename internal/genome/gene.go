// Package genome provides the reference genome and gene annotation model.
package genome

// Gene represents an annotated genomic region.
type Gene struct {
	ID      string // Gene identifier (e.g., ENSG00000133703)
	Name    string // Gene symbol (e.g., KRAS)
	Chrom   string // Chromosome
	Start   int    // Gene start position (0-based)
	End     int    // Gene end position (0-based, inclusive)
	Strand  int8   // +1 (forward) or -1 (reverse)
	Biotype string // Gene biotype (e.g., protein_coding)
}
