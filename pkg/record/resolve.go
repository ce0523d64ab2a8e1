// Package record collapses ambiguous identification records into one record
// per candidate sequence.
package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChrisMcGann/pepmass/pkg/core"
)

// ErrAlternativeIndexOutOfRange is returned when a field has fewer
// alternatives than the requested index.
var ErrAlternativeIndexOutOfRange = errors.New("alternative index out of range")

// Resolve builds the record for one alternative of rec. fullSequence becomes
// the new full sequence; a non-empty baseSequence overrides the base sequence.
//
// If rec is not ambiguous every other field is copied unchanged and index is
// ignored. Otherwise base sequence, residue range, protein accession, protein
// name and gene name are split on the separator and indexed. The peptide mass
// may hold a single value shared by all alternatives. File name, organism,
// flanking residues and the decoy label are always shared.
func Resolve(rec *core.PeptideRecord, fullSequence string, index int, baseSequence string) (*core.PeptideRecord, error) {
	out := rec.Clone()
	out.FullSequence = core.StringPtr(fullSequence)
	if baseSequence != "" {
		out.BaseSequence = core.StringPtr(baseSequence)
	}

	if !rec.IsAmbiguous() {
		return out, nil
	}

	var err error
	if baseSequence == "" {
		if out.BaseSequence, err = pick("BaseSequence", rec.BaseSequence, index); err != nil {
			return nil, err
		}
	}
	if out.StartAndEndResidues, err = pick("StartAndEndResidues", rec.StartAndEndResidues, index); err != nil {
		return nil, err
	}
	if out.ProteinAccession, err = pick("ProteinAccession", rec.ProteinAccession, index); err != nil {
		return nil, err
	}
	if out.ProteinName, err = pick("ProteinName", rec.ProteinName, index); err != nil {
		return nil, err
	}
	if out.GeneName, err = pick("GeneName", rec.GeneName, index); err != nil {
		return nil, err
	}

	if rec.PeptideMonoMass != nil && !strings.Contains(*rec.PeptideMonoMass, core.AlternativeSeparator) {
		out.PeptideMonoMass = core.StringPtr(*rec.PeptideMonoMass)
	} else if out.PeptideMonoMass, err = pick("PeptideMonoMass", rec.PeptideMonoMass, index); err != nil {
		return nil, err
	}

	return out, nil
}

// pick returns alternative index of value. Absent fields stay absent.
func pick(field string, value *string, index int) (*string, error) {
	if value == nil {
		return nil, nil
	}
	parts := strings.Split(*value, core.AlternativeSeparator)
	if index < 0 || index >= len(parts) {
		return nil, fmt.Errorf("%w: %s has %d alternatives, index %d", ErrAlternativeIndexOutOfRange, field, len(parts), index)
	}
	return core.StringPtr(parts[index]), nil
}

// Candidates resolves every alternative of rec in order. A record that is
// not ambiguous yields a single copy of itself.
func Candidates(rec *core.PeptideRecord) ([]*core.PeptideRecord, error) {
	if !rec.IsAmbiguous() {
		return []*core.PeptideRecord{rec.Clone()}, nil
	}

	alternatives := strings.Split(*rec.FullSequence, core.AlternativeSeparator)
	out := make([]*core.PeptideRecord, 0, len(alternatives))
	for i, full := range alternatives {
		c, err := Resolve(rec, full, i, "")
		if err != nil {
			return nil, fmt.Errorf("candidate %d of %s: %w", i, rec, err)
		}
		out = append(out, c)
	}
	return out, nil
}
