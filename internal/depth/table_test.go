package depth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceilinglight/devaplot/internal/pileup"
	"github.com/ceilinglight/devaplot/internal/vcf"
)

func sitesRange(start, end int64, depthAt func(pos int64) int) []pileup.Site {
	var sites []pileup.Site
	for pos := start; pos <= end; pos++ {
		sites = append(sites, pileup.Site{Contig: "chr1", Pos: pos, Depth: depthAt(pos)})
	}
	return sites
}

func flatSites(start, end int64, d int) []pileup.Site {
	return sitesRange(start, end, func(int64) int { return d })
}

func TestBuildTable_UncoveredByCalls(t *testing.T) {
	sites := flatSites(1, 5, 30)

	rows, err := BuildTable(nil, sites)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	for i, r := range rows {
		assert.Equal(t, int64(i+1), r.Pos)
		assert.False(t, r.HasSignal())
		assert.Equal(t, 30.0, r.NoVariant)
		assert.Equal(t, 30.0, r.Total)
	}
}

func TestBuildTable_VariantRow(t *testing.T) {
	opts := Options{Major: 0.1, Minor: 0.1, MinDepth: 20}
	rec := &vcf.Record{Pos: 3, Ref: "A", Alts: []string{"T"}, AlleleDepths: []int{15, 10}}
	classified := []Classified{Classify(rec, opts)}

	rows, err := BuildTable(classified, flatSites(1, 5, 28))
	require.NoError(t, err)

	r := rows[2]
	assert.Equal(t, int64(3), r.Pos)
	assert.Equal(t, 15.0, r.A)
	assert.Equal(t, 10.0, r.T)
	assert.Equal(t, 0.0, r.C)
	assert.Equal(t, 0.0, r.G)
	assert.Equal(t, 0.0, r.NoVariant)
	// Total depth is the raw pileup depth, not the per-base sum.
	assert.Equal(t, 28.0, r.Total)
}

func TestBuildTable_NonVariantCallKeepsCoverage(t *testing.T) {
	opts := Options{Major: 0.1, Minor: 0.1, MinDepth: 20}
	rec := &vcf.Record{Pos: 2, Ref: "A", Alts: []string{"T"}, AlleleDepths: []int{18, 2}}
	classified := []Classified{Classify(rec, opts)}

	rows, err := BuildTable(classified, flatSites(1, 3, 22))
	require.NoError(t, err)

	r := rows[1]
	assert.False(t, r.HasSignal())
	assert.Equal(t, 22.0, r.NoVariant)
	assert.Equal(t, 22.0, r.Total)
}

func TestBuildTable_AccountingInvariant(t *testing.T) {
	// For non-variant rows, base depths plus the no-variant bucket equal
	// the total.
	rows, err := BuildTable(nil, sitesRange(1, 50, func(pos int64) int { return int(pos) * 2 }))
	require.NoError(t, err)

	for _, r := range rows {
		assert.Equal(t, r.Total, r.A+r.T+r.C+r.G+r.NoVariant, "position %d", r.Pos)
	}
}

func TestBuildTable_CoverageMismatch(t *testing.T) {
	opts := Options{Major: 0.1, Minor: 0.1, MinDepth: 0}
	rec := &vcf.Record{Pos: 99, Ref: "A", Alts: []string{"T"}, AlleleDepths: []int{1, 9}}
	classified := []Classified{Classify(rec, opts)}

	_, err := BuildTable(classified, flatSites(1, 5, 10))

	var covErr *CoverageError
	require.ErrorAs(t, err, &covErr)
	assert.Equal(t, int64(99), covErr.Pos)
}

func TestBuildTable_DuplicatePileupPosition(t *testing.T) {
	sites := []pileup.Site{
		{Contig: "chr1", Pos: 1, Depth: 10},
		{Contig: "chr1", Pos: 1, Depth: 12},
	}

	_, err := BuildTable(nil, sites)
	assert.Error(t, err)
}

func TestBuildTable_SortsRows(t *testing.T) {
	sites := []pileup.Site{
		{Contig: "chr1", Pos: 3, Depth: 5},
		{Contig: "chr1", Pos: 1, Depth: 5},
		{Contig: "chr1", Pos: 2, Depth: 5},
	}

	rows, err := BuildTable(nil, sites)
	require.NoError(t, err)

	for i, r := range rows {
		assert.Equal(t, int64(i+1), r.Pos)
	}
}
