package depth

import "github.com/ceilinglight/devaplot/internal/vcf"

// Classified annotates a variant record with the outcome of the threshold tests.
type Classified struct {
	Record    *vcf.Record
	Total     int  // depth summed over all alleles
	IsVariant bool // true when the non-reference read fraction clears the major threshold
	// Qualifying maps base -> depth for each alternate base clearing the
	// minor threshold, plus the reference base's own depth.
	// Nil when IsVariant is false.
	Qualifying map[string]int
}

// Classify applies the major/minor threshold tests to a single record.
// Sites below MinDepth total coverage are never variant sites. A zero-depth
// site with MinDepth == 0 classifies as non-variant rather than failing.
func Classify(r *vcf.Record, opts Options) Classified {
	c := Classified{Record: r, Total: r.TotalDepth()}

	if c.Total < opts.MinDepth || c.Total == 0 {
		return c
	}

	total := float64(c.Total)
	if float64(r.AltDepth())/total <= opts.Major {
		return c
	}

	c.IsVariant = true
	c.Qualifying = map[string]int{r.Ref: r.AlleleDepths[0]}
	for i, alt := range r.Alts {
		d := r.AlleleDepths[i+1]
		if float64(d)/total > opts.Minor {
			c.Qualifying[alt] = d
		}
	}
	return c
}
