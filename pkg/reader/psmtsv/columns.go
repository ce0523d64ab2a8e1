package psmtsv

import (
	"strings"
)

// Field is one logical column of an identification table.
type Field int

const (
	FileName Field = iota
	BaseSequence
	FullSequence
	ProteinAccession
	ProteinName
	GeneName
	OrganismName
	StartAndEndResidues
	PreviousAminoAcid
	NextAminoAcid
	PeptideMonoMass
	DecoyContamTarget
)

// headerTitles maps table header titles to fields.
var headerTitles = map[string]Field{
	"File Name":                         FileName,
	"Base Sequence":                     BaseSequence,
	"Full Sequence":                     FullSequence,
	"Protein Accession":                 ProteinAccession,
	"Protein Name":                      ProteinName,
	"Gene Name":                         GeneName,
	"Organism Name":                     OrganismName,
	"Start and End Residues In Protein": StartAndEndResidues,
	"Previous Amino Acid":               PreviousAminoAcid,
	"Next Amino Acid":                   NextAminoAcid,
	"Peptide Monoisotopic Mass":         PeptideMonoMass,
	"Decoy/Contaminant/Target":          DecoyContamTarget,
}

// Column locates a field in a split line. The zero value is an absent column.
type Column struct {
	Index   int
	Present bool
}

// At returns a present column at index i.
func At(i int) Column {
	return Column{Index: i, Present: true}
}

// ColumnMap maps fields to their columns. Missing keys are absent columns.
type ColumnMap map[Field]Column

// Get returns the column for f.
func (m ColumnMap) Get(f Field) Column {
	return m[f]
}

// FromIndices converts a field-to-index mapping where a negative index marks
// an absent column.
func FromIndices(indices map[Field]int) ColumnMap {
	m := make(ColumnMap, len(indices))
	for f, i := range indices {
		if i >= 0 {
			m[f] = At(i)
		}
	}
	return m
}

// ResolveHeader maps the header line of a table to a ColumnMap. Unknown
// titles are ignored.
func ResolveHeader(header, delimiter string) ColumnMap {
	m := make(ColumnMap)
	for i, title := range strings.Split(header, delimiter) {
		title = strings.TrimSpace(strings.Trim(title, `"`))
		if f, ok := headerTitles[title]; ok {
			m[f] = At(i)
		}
	}
	return m
}
