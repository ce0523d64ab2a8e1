package sqlite

import (
	"database/sql"
	"fmt"
)

// Summary holds read-back statistics of a written database.
type Summary struct {
	Version        int
	CreationDate   string
	Candidates     int
	Records        int
	Files          int
	Decoys         int
	FragmentMasses int
	MinNeutralMass float64
	MaxNeutralMass float64
}

// Summarize opens a database written by Writer and collects its counts.
func Summarize(path string) (*Summary, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	s := &Summary{}

	err = db.QueryRow(`SELECT version, CreationDate FROM HeaderTable LIMIT 1`).
		Scan(&s.Version, &s.CreationDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var minMass, maxMass sql.NullFloat64
	err = db.QueryRow(`
		SELECT COUNT(*), COUNT(DISTINCT SourceLine), COUNT(DISTINCT FileName),
			MIN(NeutralMass), MAX(NeutralMass)
		FROM PeptideTable
	`).Scan(&s.Candidates, &s.Records, &s.Files, &minMass, &maxMass)
	if err != nil {
		return nil, fmt.Errorf("failed to count peptides: %w", err)
	}
	s.MinNeutralMass = minMass.Float64
	s.MaxNeutralMass = maxMass.Float64

	err = db.QueryRow(`SELECT COUNT(*) FROM PeptideTable WHERE DecoyContamTarget = 'D'`).Scan(&s.Decoys)
	if err != nil {
		return nil, fmt.Errorf("failed to count decoys: %w", err)
	}

	var masses sql.NullInt64
	err = db.QueryRow(`SELECT SUM(MassCount) FROM FragmentTable`).Scan(&masses)
	if err != nil {
		return nil, fmt.Errorf("failed to count fragments: %w", err)
	}
	s.FragmentMasses = int(masses.Int64)

	return s, nil
}
