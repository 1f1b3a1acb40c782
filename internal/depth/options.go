// Package depth builds the position-indexed depth/variant table from
// classified variant calls and a read-depth pileup.
package depth

import "fmt"

// Gap declares a synthetic coordinate stretch with no real data.
// All positions at or after Pos shift right by Length.
type Gap struct {
	Pos    int64 // 1-based anchor position
	Length int64 // number of positions to insert, >= 0
}

// Options holds the pipeline thresholds and coordinate adjustments.
type Options struct {
	Major    float64 // minimum non-reference read fraction to call a variant site
	Minor    float64 // minimum per-base read fraction for a base to be reported
	MinDepth int     // minimum total depth to trust any call
	Extend   int     // smear window radius, in table rows
	Gaps     []Gap
}

// Validate checks all option values and returns a ConfigError on the first
// violation. It must be called before any parsing work begins.
func (o Options) Validate() error {
	if o.Major < 0 || o.Major > 1 {
		return &ConfigError{Message: fmt.Sprintf("major threshold %g out of range [0,1]", o.Major)}
	}
	if o.Minor < 0 || o.Minor > 1 {
		return &ConfigError{Message: fmt.Sprintf("minor threshold %g out of range [0,1]", o.Minor)}
	}
	if o.MinDepth < 0 {
		return &ConfigError{Message: fmt.Sprintf("minimum depth %d must not be negative", o.MinDepth)}
	}
	if o.Extend < 0 {
		return &ConfigError{Message: fmt.Sprintf("extend %d must not be negative", o.Extend)}
	}
	for _, g := range o.Gaps {
		if g.Pos < 1 {
			return &ConfigError{Message: fmt.Sprintf("gap position %d must be positive", g.Pos)}
		}
		if g.Length < 0 {
			return &ConfigError{Message: fmt.Sprintf("gap length %d must not be negative", g.Length)}
		}
	}
	return nil
}

// ConfigError reports an invalid option value.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Message
}

// CoverageError reports a variant-call position with no pileup coverage,
// which signals an input-pairing bug upstream.
type CoverageError struct {
	Pos int64
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("variant call at position %d has no pileup coverage", e.Pos)
}
