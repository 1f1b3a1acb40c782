package depth

// ExtendRows smears every variant row's base-depth vector across up to
// extend neighboring rows on each side, so narrow variants stay visible at
// low plot resolution. Neighbors are counted in table rows, not genomic
// distance, and windows are clamped at the table bounds.
//
// Signal rows are visited in table order and each stamps its own vector,
// so overlapping windows resolve last-writer-wins. Reads come from the
// input snapshot while writes go to a fresh copy, so no stamp ever reads a
// partially overwritten row. Rows stamped by a neighbor are marked Smeared
// and never act as stamp sources themselves; re-extending an already
// extended table is therefore a no-op. The no-variant and total columns
// are left untouched.
func ExtendRows(rows []Row, extend int) []Row {
	if extend == 0 {
		return rows
	}

	out := make([]Row, len(rows))
	copy(out, rows)

	for i := range rows {
		src := &rows[i]
		if src.Smeared || !src.HasSignal() {
			continue
		}
		lo, hi := i-extend, i+extend
		if lo < 0 {
			lo = 0
		}
		if hi > len(rows)-1 {
			hi = len(rows) - 1
		}
		for j := lo; j <= hi; j++ {
			out[j].A = src.A
			out[j].T = src.T
			out[j].C = src.C
			out[j].G = src.G
			if j != i {
				out[j].Smeared = true
			}
		}
	}

	return out
}
