package psmtsv

import (
	"fmt"
	"strings"

	"github.com/ChrisMcGann/pepmass/pkg/annotation"
	"github.com/ChrisMcGann/pepmass/pkg/core"
	"github.com/ChrisMcGann/pepmass/pkg/record"
)

// ParseLine builds a record from one delimited line. Absent columns leave
// their fields nil. Values are unquoted and trimmed, except the full
// sequence which is only unquoted. Parenthesized labels are removed from the
// base sequence and known extensions from the file name; unbalanced
// parentheses there are an ErrMalformedAnnotation.
func ParseLine(line, delimiter string, cols ColumnMap, names *record.FileNameNormalizer) (*core.PeptideRecord, error) {
	fields := strings.Split(line, delimiter)
	for i := range fields {
		fields[i] = strings.Trim(fields[i], `"`)
	}

	value := func(f Field, trim bool) (*string, error) {
		col := cols.Get(f)
		if !col.Present {
			return nil, nil
		}
		if col.Index >= len(fields) {
			return nil, fmt.Errorf("column %d missing, line has %d fields", col.Index, len(fields))
		}
		v := fields[col.Index]
		if trim {
			v = strings.TrimSpace(v)
		}
		return &v, nil
	}

	rec := &core.PeptideRecord{}
	targets := []struct {
		field Field
		dst   **string
		trim  bool
	}{
		{FileName, &rec.FileName, true},
		{BaseSequence, &rec.BaseSequence, true},
		{FullSequence, &rec.FullSequence, false},
		{ProteinAccession, &rec.ProteinAccession, true},
		{ProteinName, &rec.ProteinName, true},
		{GeneName, &rec.GeneName, true},
		{OrganismName, &rec.OrganismName, true},
		{StartAndEndResidues, &rec.StartAndEndResidues, true},
		{PreviousAminoAcid, &rec.PreviousAminoAcid, true},
		{NextAminoAcid, &rec.NextAminoAcid, true},
		{PeptideMonoMass, &rec.PeptideMonoMass, true},
		{DecoyContamTarget, &rec.DecoyContamTarget, true},
	}
	for _, t := range targets {
		v, err := value(t.field, t.trim)
		if err != nil {
			return nil, err
		}
		*t.dst = v
	}

	if rec.FileName != nil && names != nil {
		*rec.FileName = names.Normalize(*rec.FileName)
	}
	if rec.BaseSequence != nil {
		if err := annotation.CheckDelimiters(*rec.BaseSequence); err != nil {
			return nil, fmt.Errorf("base sequence: %w", err)
		}
		*rec.BaseSequence = annotation.StripParentheses(*rec.BaseSequence)
	}

	return rec, nil
}
