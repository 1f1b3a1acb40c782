package depth

import (
	"fmt"
	"math"
	"sort"

	"github.com/ceilinglight/devaplot/internal/pileup"
)

// Row is one position of the master depth table. Total is the raw pileup
// depth for the position; gap-inserted rows carry NaN to signal "no data,
// not zero data" to the chart layer.
type Row struct {
	Pos       int64
	A         float64
	T         float64
	C         float64
	G         float64
	NoVariant float64
	Total     float64
	// Smeared marks rows whose base columns were stamped by a neighboring
	// variant row during extension. Smeared rows are never stamp sources,
	// which makes extension a fixed point.
	Smeared bool
}

// HasSignal reports whether any of the four base columns is strictly positive.
func (r *Row) HasSignal() bool {
	return r.A > 0 || r.T > 0 || r.C > 0 || r.G > 0
}

// IsGap reports whether the row was synthesized by gap insertion.
func (r *Row) IsGap() bool {
	return math.IsNaN(r.Total)
}

// setBase assigns depth d to the named base column. Bases other than
// A/T/C/G (e.g. N calls) are ignored.
func (r *Row) setBase(base string, d float64) {
	switch base {
	case "A":
		r.A = d
	case "T":
		r.T = d
	case "C":
		r.C = d
	case "G":
		r.G = d
	}
}

// BuildTable joins classified records against the pileup by position and
// produces one Row per covered position, ordered by position ascending.
//
// Positions covered by the pileup but absent from the variant calls keep
// zero variant depth with the full pileup depth in the no-variant bucket.
// A variant-call position missing from the pileup is a CoverageError.
// Duplicate pileup positions are an input error.
func BuildTable(records []Classified, sites []pileup.Site) ([]Row, error) {
	byPos := make(map[int64]*Classified, len(records))
	for i := range records {
		byPos[records[i].Record.Pos] = &records[i]
	}

	rows := make([]Row, 0, len(sites))
	seen := make(map[int64]bool, len(sites))
	for _, s := range sites {
		if seen[s.Pos] {
			return nil, fmt.Errorf("duplicate pileup position %d", s.Pos)
		}
		seen[s.Pos] = true

		row := Row{Pos: s.Pos, Total: float64(s.Depth)}
		if c, ok := byPos[s.Pos]; ok && c.IsVariant {
			for base, d := range c.Qualifying {
				row.setBase(base, float64(d))
			}
		} else {
			row.NoVariant = float64(s.Depth)
		}
		rows = append(rows, row)
	}

	for pos := range byPos {
		if !seen[pos] {
			return nil, &CoverageError{Pos: pos}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Pos < rows[j].Pos })
	return rows, nil
}
