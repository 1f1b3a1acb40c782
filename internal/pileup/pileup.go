// Package pileup provides parsing of per-position read-depth files
// (samtools depth output: contig, position, depth).
package pileup

// Site is the read depth observed at a single genomic position.
type Site struct {
	Contig string
	Pos    int64 // 1-based genomic position
	Depth  int   // number of reads covering the position
}
