package depth

import (
	"math"
	"sort"
)

// InsertGaps remaps row positions to accommodate the declared gaps and
// inserts placeholder rows for the gap stretches.
//
// Gaps are normalized to ascending anchor order, which is equivalent to the
// coordinate-stable descending-anchor application: each row shifts right by
// the summed lengths of all gaps anchored at or before its original
// position, in a single pass. Gap rows carry zero base depth and a NaN
// total so the chart layer can distinguish "no data" from zero coverage.
func InsertGaps(rows []Row, gaps []Gap) []Row {
	if len(gaps) == 0 {
		return rows
	}

	sorted := make([]Gap, len(gaps))
	copy(sorted, gaps)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Pos < sorted[j].Pos })

	// Shift every row once by the cumulative length of gaps anchored at or
	// before its original position. Rows arrive position-sorted, so a single
	// two-pointer sweep covers all gaps.
	out := make([]Row, len(rows), len(rows)+totalGapLength(sorted))
	copy(out, rows)

	var shift int64
	next := 0
	for i := range out {
		for next < len(sorted) && sorted[next].Pos <= out[i].Pos {
			shift += sorted[next].Length
			next++
		}
		out[i].Pos += shift
	}

	// Synthetic rows for gap i start at its anchor shifted by all
	// earlier-anchored gaps, matching descending-anchor application.
	var earlier int64
	for _, g := range sorted {
		start := g.Pos + earlier
		for i := int64(0); i < g.Length; i++ {
			out = append(out, Row{Pos: start + i, Total: math.NaN()})
		}
		earlier += g.Length
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Pos < out[j].Pos })
	return out
}

func totalGapLength(gaps []Gap) int {
	var n int64
	for _, g := range gaps {
		n += g.Length
	}
	return int(n)
}
