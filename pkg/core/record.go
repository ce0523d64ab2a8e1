package core

import (
	"fmt"
	"strings"
)

// AlternativeSeparator delimits the parallel values of an ambiguous record.
const AlternativeSeparator = "|"

// PeptideRecord is one identification line. Every field is optional: nil
// means the column was absent from the input, which is distinct from an
// empty value.
type PeptideRecord struct {
	FullSequence        *string
	BaseSequence        *string
	FileName            *string // without raw-file extension
	ProteinAccession    *string
	ProteinName         *string
	GeneName            *string
	OrganismName        *string
	StartAndEndResidues *string // peptide location within the protein, first residue is 1
	PreviousAminoAcid   *string
	NextAminoAcid       *string
	DecoyContamTarget   *string
	PeptideMonoMass     *string
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Value returns the field value or "" when the field is absent.
func Value(field *string) string {
	if field == nil {
		return ""
	}
	return *field
}

// IsAmbiguous reports whether the record carries several candidate sequences.
func (r *PeptideRecord) IsAmbiguous() bool {
	return r.FullSequence != nil && strings.Contains(*r.FullSequence, AlternativeSeparator)
}

// Clone returns an independent copy of the record.
func (r *PeptideRecord) Clone() *PeptideRecord {
	c := *r
	for _, f := range c.fields() {
		if *f.ptr != nil {
			*f.ptr = StringPtr(**f.ptr)
		}
	}
	return &c
}

type recordField struct {
	name string
	ptr  **string
}

func (r *PeptideRecord) fields() []recordField {
	return []recordField{
		{"FullSequence", &r.FullSequence},
		{"BaseSequence", &r.BaseSequence},
		{"FileName", &r.FileName},
		{"ProteinAccession", &r.ProteinAccession},
		{"ProteinName", &r.ProteinName},
		{"GeneName", &r.GeneName},
		{"OrganismName", &r.OrganismName},
		{"StartAndEndResidues", &r.StartAndEndResidues},
		{"PreviousAminoAcid", &r.PreviousAminoAcid},
		{"NextAminoAcid", &r.NextAminoAcid},
		{"DecoyContamTarget", &r.DecoyContamTarget},
		{"PeptideMonoMass", &r.PeptideMonoMass},
	}
}

// ValidationError represents an error found during record validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Validate checks that a record carries enough to compute fragment masses.
func (r *PeptideRecord) Validate() error {
	var errs []string

	if r.FullSequence == nil || *r.FullSequence == "" {
		errs = append(errs, "full sequence is required")
	}
	if r.BaseSequence != nil && *r.BaseSequence == "" {
		errs = append(errs, "base sequence is empty")
	}
	if r.IsAmbiguous() {
		want := strings.Count(*r.FullSequence, AlternativeSeparator) + 1
		if r.BaseSequence != nil {
			if got := strings.Count(*r.BaseSequence, AlternativeSeparator) + 1; got != want {
				errs = append(errs, fmt.Sprintf("base sequence has %d alternatives, full sequence has %d", got, want))
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "PeptideRecord",
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// String returns the full sequence
func (r *PeptideRecord) String() string {
	return Value(r.FullSequence)
}
