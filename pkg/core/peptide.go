package core

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Peptide is a backbone sequence with modifications attached by offset.
// Offset 0 is the N-terminus, 1..len(Sequence) are residues (1-based) and
// anything beyond len(Sequence) is the C-terminus.
type Peptide struct {
	Sequence string
	Mods     map[int]VariableModification
}

// Len returns the number of residues.
func (p *Peptide) Len() int {
	return utf8.RuneCountInString(p.Sequence)
}

// Residue returns the residue mass at a 1-based backbone position.
// Positions count characters, not bytes.
func (p *Peptide) Residue(pos int) float64 {
	if p.Len() == len(p.Sequence) {
		return ResidueMass(rune(p.Sequence[pos-1]))
	}
	return ResidueMass([]rune(p.Sequence)[pos-1])
}

// ModAt returns the modification on a 1-based residue position, if any.
func (p *Peptide) ModAt(pos int) (VariableModification, bool) {
	mod, ok := p.Mods[pos]
	return mod, ok
}

// NTermMass returns the mass of modifications on the N-terminus.
func (p *Peptide) NTermMass() float64 {
	if mod, ok := p.Mods[0]; ok {
		return mod.Mass
	}
	return 0
}

// CTermMass returns the summed mass of modifications beyond the last residue.
func (p *Peptide) CTermMass() float64 {
	total := 0.0
	for pos, mod := range p.Mods {
		if pos > p.Len() {
			total += mod.Mass
		}
	}
	return total
}

// TotalModMass returns the sum of all modification masses.
func (p *Peptide) TotalModMass() float64 {
	total := 0.0
	for _, mod := range p.Mods {
		total += mod.Mass
	}
	return total
}

// NeutralMass computes the monoisotopic mass including all modifications.
// The result is NaN when any residue is unknown.
func (p *Peptide) NeutralMass() float64 {
	mass := MassWater
	for i := 1; i <= p.Len(); i++ {
		mass += p.Residue(i)
	}
	return mass + p.TotalModMass()
}

// ModString returns modifications in format "name@pos;name@pos;..." ordered by position
func (p *Peptide) ModString() string {
	if len(p.Mods) == 0 {
		return ""
	}

	positions := make([]int, 0, len(p.Mods))
	for pos := range p.Mods {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	parts := make([]string, 0, len(positions))
	for _, pos := range positions {
		parts = append(parts, fmt.Sprintf("%s@%d", p.Mods[pos].Name, pos))
	}
	return strings.Join(parts, ";")
}
