// Package filter provides post-processing of theoretical fragment masses
package filter

import (
	"math"
	"sort"
)

// DefaultTolerance merges masses that differ by less than this
const DefaultTolerance = 1e-7

// Config holds filtering configuration
type Config struct {
	MinMass   float64 // Drop masses below this (0 = no lower bound)
	MaxMass   float64 // Drop masses above this (0 = no upper bound)
	Dedupe    bool    // Sort and merge masses within Tolerance
	Tolerance float64 // Merge tolerance (0 = DefaultTolerance)
}

// Apply applies all configured filters and returns the kept masses. NaN and
// infinite masses are always dropped. The input is not modified.
func (c *Config) Apply(masses []float64) []float64 {
	kept := make([]float64, 0, len(masses))
	for _, m := range masses {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			continue
		}
		if c.MinMass > 0 && m < c.MinMass {
			continue
		}
		if c.MaxMass > 0 && m > c.MaxMass {
			continue
		}
		kept = append(kept, m)
	}

	if c.Dedupe {
		kept = c.dedupe(kept)
	}

	return kept
}

// dedupe sorts masses and keeps the first of each run closer than the tolerance
func (c *Config) dedupe(masses []float64) []float64 {
	if len(masses) < 2 {
		return masses
	}

	tol := c.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	sort.Float64s(masses)

	out := masses[:1]
	for _, m := range masses[1:] {
		if m-out[len(out)-1] >= tol {
			out = append(out, m)
		}
	}
	return out
}
