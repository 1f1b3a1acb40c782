package depth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceilinglight/devaplot/internal/vcf"
)

func TestNewPipeline_RejectsInvalidOptions(t *testing.T) {
	_, err := NewPipeline(Options{Major: 2})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestPipeline_EndToEnd(t *testing.T) {
	opts := Options{
		Major:    0.1,
		Minor:    0.1,
		MinDepth: 20,
		Extend:   2,
		Gaps:     []Gap{{Pos: 90, Length: 5}},
	}
	p, err := NewPipeline(opts)
	require.NoError(t, err)

	records := []*vcf.Record{
		{Chrom: "chr1", Pos: 55, Ref: "A", Alts: []string{"T"}, AlleleDepths: []int{15, 10}},
		{Chrom: "chr1", Pos: 70, Ref: "C", Alts: []string{"G"}, AlleleDepths: []int{18, 2}},
	}
	sites := flatSites(1, 100, 25)

	result, err := p.Run(records, sites)
	require.NoError(t, err)

	// 100 pileup rows plus 5 gap rows, contiguous 1..105.
	require.Len(t, result.Table, 105)
	for i, r := range result.Table {
		assert.Equal(t, int64(i+1), r.Pos)
	}

	// The variant at 55 smears across rows 53-57; the call at 70 stayed
	// below the major threshold and contributes no signal.
	byPos := make(map[int64]*Row, len(result.Table))
	for i := range result.Table {
		byPos[result.Table[i].Pos] = &result.Table[i]
	}
	for pos := int64(53); pos <= 57; pos++ {
		assert.Equal(t, 10.0, byPos[pos].T, "position %d", pos)
		assert.Equal(t, 15.0, byPos[pos].A, "position %d", pos)
	}
	assert.False(t, byPos[52].HasSignal())
	assert.False(t, byPos[58].HasSignal())
	assert.False(t, byPos[70].HasSignal())

	// Gap rows shifted nothing below 90 but occupy 90-94.
	for pos := int64(90); pos <= 94; pos++ {
		assert.True(t, byPos[pos].IsGap(), "position %d", pos)
	}

	require.Len(t, result.Absolute, 5)
	require.Len(t, result.Relative, 5)
	for _, r := range result.Relative {
		assert.InDelta(t, 100.0, r.A+r.T+r.C+r.G, 1e-9)
	}
}

func TestPipeline_SurfacesCoverageMismatch(t *testing.T) {
	p, err := NewPipeline(Options{Major: 0.1, Minor: 0.1, MinDepth: 0})
	require.NoError(t, err)

	records := []*vcf.Record{
		{Chrom: "chr1", Pos: 500, Ref: "A", Alts: []string{"T"}, AlleleDepths: []int{5, 20}},
	}

	_, err = p.Run(records, flatSites(1, 10, 12))

	var covErr *CoverageError
	require.ErrorAs(t, err, &covErr)
}
