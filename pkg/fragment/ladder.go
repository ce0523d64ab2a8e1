// Package fragment computes theoretical fragment-ion masses from the
// cumulative residue-mass ladders of a modified peptide.
package fragment

import (
	"math"

	"github.com/ChrisMcGann/pepmass/pkg/core"
)

// EqualityTolerance is the absolute tolerance used when comparing ladders.
const EqualityTolerance = 1e-7

// Ladder holds cumulative residue masses from each terminus of one peptide.
// NTerminalMasses[i] covers residues 1..i+1 and CTerminalMasses[i] covers the
// last i+1 residues; terminal and residue modifications are folded in.
type Ladder struct {
	NTerminalMasses  []float64
	CTerminalMasses  []float64
	MonoisotopicMass float64 // NaN when a residue mass is unknown
}

// NewLadder builds both ladders for a peptide.
func NewLadder(p *core.Peptide) Ladder {
	n := p.Len()
	l := Ladder{
		NTerminalMasses:  make([]float64, n),
		CTerminalMasses:  make([]float64, n),
		MonoisotopicMass: p.NeutralMass(),
	}

	mass := p.NTermMass()
	for i := 1; i <= n; i++ {
		mass += residueWithMod(p, i)
		l.NTerminalMasses[i-1] = mass
	}

	mass = p.CTermMass()
	for i := n; i >= 1; i-- {
		mass += residueWithMod(p, i)
		l.CTerminalMasses[n-i] = mass
	}

	return l
}

func residueWithMod(p *core.Peptide, pos int) float64 {
	mass := p.Residue(pos)
	if mod, ok := p.ModAt(pos); ok {
		mass += mod.Mass
	}
	return mass
}

// Len returns the peptide length the ladder was built for.
func (l Ladder) Len() int {
	return len(l.NTerminalMasses)
}

// Equal reports whether both ladders and the monoisotopic mass agree within
// EqualityTolerance. NaN compares equal to NaN.
func (l Ladder) Equal(other Ladder) bool {
	return massEqual(l.MonoisotopicMass, other.MonoisotopicMass) &&
		massesEqual(l.NTerminalMasses, other.NTerminalMasses) &&
		massesEqual(l.CTerminalMasses, other.CTerminalMasses)
}

func massesEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !massEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func massEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) < EqualityTolerance
}
