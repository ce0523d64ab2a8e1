// Package sqlite provides SQLite database writing for computed fragment masses
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ChrisMcGann/pepmass/pkg/core"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// Date format for HeaderTable (ISO 8601)
	headerDateFormat = "2006-01-02"
	schemaVersion    = 1
)

// Candidate is one resolved candidate with its fragment masses.
type Candidate struct {
	Record           *core.PeptideRecord
	Peptide          *core.Peptide
	AlternativeIndex int
	SourceLine       int
	IonTypes         string
	Masses           []float64
}

// Writer handles writing candidates to SQLite database files
type Writer struct {
	db           *sql.DB
	tx           *sql.Tx
	outputPath   string
	peptideStmt  *sql.Stmt
	fragmentStmt *sql.Stmt
	peptideID    int
	finalized    bool
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		peptideID:  1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS PeptideTable (
		PeptideId INTEGER PRIMARY KEY,
		SourceLine INTEGER,
		AlternativeIndex INTEGER,
		FileName TEXT,
		FullSequence TEXT,
		BaseSequence TEXT,
		Modifications TEXT,
		ProteinAccession TEXT,
		ProteinName TEXT,
		GeneName TEXT,
		OrganismName TEXT,
		StartAndEndResidues TEXT,
		PreviousAminoAcid TEXT,
		NextAminoAcid TEXT,
		DecoyContamTarget TEXT,
		ReportedMonoMass TEXT,
		NeutralMass DOUBLE
	);

	CREATE TABLE IF NOT EXISTS FragmentTable (
		PeptideId INTEGER REFERENCES PeptideTable(PeptideId),
		IonTypes TEXT,
		MassCount INTEGER,
		blobMass BLOB
	);

	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		Description TEXT
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements opens the write transaction and prepares insert statements
func (w *Writer) prepareStatements() error {
	var err error

	w.tx, err = w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	w.peptideStmt, err = w.tx.Prepare(`
		INSERT INTO PeptideTable (
			PeptideId, SourceLine, AlternativeIndex, FileName, FullSequence,
			BaseSequence, Modifications, ProteinAccession, ProteinName, GeneName,
			OrganismName, StartAndEndResidues, PreviousAminoAcid, NextAminoAcid,
			DecoyContamTarget, ReportedMonoMass, NeutralMass
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		return fmt.Errorf("failed to prepare peptide statement: %w", err)
	}

	w.fragmentStmt, err = w.tx.Prepare(`
		INSERT INTO FragmentTable (PeptideId, IonTypes, MassCount, blobMass)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		return fmt.Errorf("failed to prepare fragment statement: %w", err)
	}

	return nil
}

// WriteCandidate writes a single candidate and its fragment masses
func (w *Writer) WriteCandidate(c *Candidate) error {
	rec := c.Record

	var mods string
	neutralMass := math.NaN()
	if c.Peptide != nil {
		mods = c.Peptide.ModString()
		neutralMass = c.Peptide.NeutralMass()
	}

	_, err := w.peptideStmt.Exec(
		w.peptideID,                    // PeptideId
		c.SourceLine,                   // SourceLine
		c.AlternativeIndex,             // AlternativeIndex
		nullable(rec.FileName),         // FileName
		nullable(rec.FullSequence),     // FullSequence
		nullable(rec.BaseSequence),     // BaseSequence
		mods,                           // Modifications
		nullable(rec.ProteinAccession), // ProteinAccession
		nullable(rec.ProteinName),      // ProteinName
		nullable(rec.GeneName),         // GeneName
		nullable(rec.OrganismName),     // OrganismName
		nullable(rec.StartAndEndResidues),
		nullable(rec.PreviousAminoAcid),
		nullable(rec.NextAminoAcid),
		nullable(rec.DecoyContamTarget),
		nullable(rec.PeptideMonoMass), // ReportedMonoMass
		nullableFloat(neutralMass),    // NeutralMass
	)
	if err != nil {
		return fmt.Errorf("failed to insert peptide: %w", err)
	}

	_, err = w.fragmentStmt.Exec(
		w.peptideID,
		c.IonTypes,
		len(c.Masses),
		encodeFloat64s(c.Masses),
	)
	if err != nil {
		return fmt.Errorf("failed to insert fragments: %w", err)
	}

	w.peptideID++
	return nil
}

// Count returns the number of candidates written so far
func (w *Writer) Count() int {
	return w.peptideID - 1
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullableFloat(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

// encodeFloat64s encodes masses as little-endian float64 blob
func encodeFloat64s(values []float64) []byte {
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// DecodeFloat64s decodes a blob written by the writer
func DecodeFloat64s(blob []byte) []float64 {
	values := make([]float64, len(blob)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return values
}

// Finalize writes the header table, commits and closes the database.
// Calling it more than once is a no-op.
func (w *Writer) Finalize() error {
	if w.finalized {
		return nil
	}
	w.finalized = true

	_, err := w.tx.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, Description)
		VALUES (?, ?, ?)
	`, schemaVersion, time.Now().Format(headerDateFormat), "pepmass fragment masses")
	if err != nil {
		w.tx.Rollback()
		w.db.Close()
		return fmt.Errorf("failed to insert header: %w", err)
	}

	// Close prepared statements
	if w.peptideStmt != nil {
		w.peptideStmt.Close()
	}
	if w.fragmentStmt != nil {
		w.fragmentStmt.Close()
	}

	if err := w.tx.Commit(); err != nil {
		w.db.Close()
		return fmt.Errorf("failed to commit: %w", err)
	}

	// Close database
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close closes the database connection (alias for Finalize)
func (w *Writer) Close() error {
	return w.Finalize()
}
