package depth

// Report is one row of a variant reporting view: the position plus one
// value per base, either a raw depth or a percentage of the row's own
// base-depth sum.
type Report struct {
	Pos int64
	A   float64
	T   float64
	C   float64
	G   float64
}

// Project derives the two reporting views from a depth table, keeping only
// rows where at least one base column is strictly positive.
//
// The absolute view carries raw depths. The relative view expresses each
// base as a percentage of the row's base-depth sum; rows with a zero sum
// emit zeros rather than failing the division.
func Project(rows []Row) (relative, absolute []Report) {
	for i := range rows {
		r := &rows[i]
		if !r.HasSignal() {
			continue
		}

		absolute = append(absolute, Report{Pos: r.Pos, A: r.A, T: r.T, C: r.C, G: r.G})

		sum := r.A + r.T + r.C + r.G
		if sum > 0 {
			relative = append(relative, Report{
				Pos: r.Pos,
				A:   r.A / sum * 100,
				T:   r.T / sum * 100,
				C:   r.C / sum * 100,
				G:   r.G / sum * 100,
			})
		} else {
			relative = append(relative, Report{Pos: r.Pos})
		}
	}
	return relative, absolute
}
