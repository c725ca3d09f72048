package genome

import (
	"slices"
	"sort"
	"strings"
)

// Genome is a read-only view of a reference genome's gene annotations.
type Genome interface {
	ID() string
	Genes() []*Gene
}

// Assembly is an in-memory Genome.
type Assembly struct {
	id    string
	genes []*Gene
}

// NewAssembly creates an assembly holding genes.
func NewAssembly(id string, genes ...*Gene) *Assembly {
	return &Assembly{id: id, genes: genes}
}

// ID returns the assembly identifier (e.g., GRCh38).
func (a *Assembly) ID() string {
	return a.id
}

// Genes returns all genes in annotation order.
func (a *Assembly) Genes() []*Gene {
	return a.genes
}

// AddGene appends a gene to the assembly.
func (a *Assembly) AddGene(g *Gene) {
	a.genes = append(a.genes, g)
}

// GeneCount returns the number of genes.
func (a *Assembly) GeneCount() int {
	return len(a.genes)
}

// Chromosomes returns a sorted list of distinct chromosome names carrying genes.
func (a *Assembly) Chromosomes() []string {
	seen := make(map[string]bool)
	var chroms []string
	for _, g := range a.genes {
		if !seen[g.Chrom] {
			seen[g.Chrom] = true
			chroms = append(chroms, g.Chrom)
		}
	}
	sort.Strings(chroms)
	return chroms
}

// GenesOn returns the genes whose chromosome matches chrom, ignoring case.
func GenesOn(g Genome, chrom string) []*Gene {
	var result []*Gene
	for _, gene := range g.Genes() {
		if strings.EqualFold(gene.Chrom, chrom) {
			result = append(result, gene)
		}
	}
	return result
}

// FilterBiotypes returns an assembly with the genes of g whose biotype is one
// of biotypes. Without biotypes every gene is kept.
func FilterBiotypes(g Genome, biotypes ...string) *Assembly {
	a := NewAssembly(g.ID())
	if len(biotypes) == 0 {
		a.genes = append(a.genes, g.Genes()...)
		return a
	}
	for _, gene := range g.Genes() {
		if slices.Contains(biotypes, gene.Biotype) {
			a.AddGene(gene)
		}
	}
	return a
}
