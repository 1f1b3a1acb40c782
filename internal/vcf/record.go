// Package vcf provides parsing of variant-call records with per-allele depths.
package vcf

// Record represents a single-nucleotide variant call from a VCF file.
type Record struct {
	Chrom        string   // Contig name (e.g., "NC_045512.2")
	Pos          int64    // 1-based genomic position
	Ref          string   // Reference base (single A/T/C/G character)
	Alts         []string // Alternate bases in call order, may be empty
	AlleleDepths []int    // Read depth per allele, reference first; len == len(Alts)+1
}

// TotalDepth returns the read depth summed over all alleles.
func (r *Record) TotalDepth() int {
	total := 0
	for _, d := range r.AlleleDepths {
		total += d
	}
	return total
}

// AltDepth returns the read depth summed over non-reference alleles.
func (r *Record) AltDepth() int {
	total := 0
	for _, d := range r.AlleleDepths[1:] {
		total += d
	}
	return total
}
