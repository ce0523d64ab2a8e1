package sqlite

import (
	"database/sql"
	"math"
	"path/filepath"
	"testing"

	"github.com/ChrisMcGann/pepmass/pkg/core"
)

func writeTestDB(t *testing.T, candidates []*Candidate) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.db")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	for _, c := range candidates {
		if err := w.WriteCandidate(c); err != nil {
			t.Fatalf("WriteCandidate() error = %v", err)
		}
	}
	if got := w.Count(); got != len(candidates) {
		t.Errorf("Count() = %d, want %d", got, len(candidates))
	}
	if err := w.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	// second call is a no-op
	if err := w.Close(); err != nil {
		t.Fatalf("Close() after Finalize() error = %v", err)
	}
	return path
}

func testCandidates() []*Candidate {
	target := &core.PeptideRecord{
		FullSequence:      core.StringPtr("AAA"),
		BaseSequence:      core.StringPtr("AAA"),
		FileName:          core.StringPtr("run1"),
		DecoyContamTarget: core.StringPtr("T"),
	}
	decoy := &core.PeptideRecord{
		FullSequence:      core.StringPtr("AXA"),
		BaseSequence:      core.StringPtr("AXA"),
		FileName:          core.StringPtr("run2"),
		DecoyContamTarget: core.StringPtr("D"),
	}
	return []*Candidate{
		{
			Record:     target,
			Peptide:    &core.Peptide{Sequence: "AAA"},
			SourceLine: 2,
			IonTypes:   "b,y",
			Masses:     []float64{72.04439, 143.08150, 90.05496},
		},
		{
			Record:     decoy,
			Peptide:    &core.Peptide{Sequence: "AXA"},
			SourceLine: 3,
			IonTypes:   "b,y",
			Masses:     []float64{72.04439, math.NaN()},
		},
	}
}

func TestWriterSummarize(t *testing.T) {
	path := writeTestDB(t, testCandidates())

	s, err := Summarize(path)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if s.Version != schemaVersion {
		t.Errorf("Version = %d, want %d", s.Version, schemaVersion)
	}
	if s.CreationDate == "" {
		t.Error("CreationDate is empty")
	}
	if s.Candidates != 2 {
		t.Errorf("Candidates = %d, want 2", s.Candidates)
	}
	if s.Records != 2 {
		t.Errorf("Records = %d, want 2", s.Records)
	}
	if s.Files != 2 {
		t.Errorf("Files = %d, want 2", s.Files)
	}
	if s.Decoys != 1 {
		t.Errorf("Decoys = %d, want 1", s.Decoys)
	}
	if s.FragmentMasses != 5 {
		t.Errorf("FragmentMasses = %d, want 5", s.FragmentMasses)
	}

	// unknown residue gives a NULL neutral mass, so both bounds come from AAA
	want := (&core.Peptide{Sequence: "AAA"}).NeutralMass()
	if math.Abs(s.MinNeutralMass-want) > 1e-9 || math.Abs(s.MaxNeutralMass-want) > 1e-9 {
		t.Errorf("neutral mass range = [%f, %f], want %f", s.MinNeutralMass, s.MaxNeutralMass, want)
	}
}

func TestWriterFragmentBlob(t *testing.T) {
	candidates := testCandidates()
	path := writeTestDB(t, candidates)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT PeptideId, MassCount, blobMass FROM FragmentTable ORDER BY PeptideId`)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var id, count int
		var blob []byte
		if err := rows.Scan(&id, &count, &blob); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if id != i+1 {
			t.Errorf("row %d: PeptideId = %d, want %d", i, id, i+1)
		}

		want := candidates[i].Masses
		got := DecodeFloat64s(blob)
		if count != len(want) || len(got) != len(want) {
			t.Fatalf("row %d: count = %d, decoded %d, want %d", i, count, len(got), len(want))
		}
		for j := range want {
			if math.IsNaN(want[j]) {
				if !math.IsNaN(got[j]) {
					t.Errorf("row %d mass %d = %v, want NaN", i, j, got[j])
				}
				continue
			}
			if got[j] != want[j] {
				t.Errorf("row %d mass %d = %v, want %v", i, j, got[j], want[j])
			}
		}
		i++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows.Err() = %v", err)
	}
	if i != len(candidates) {
		t.Errorf("read %d rows, want %d", i, len(candidates))
	}
}

func TestWriterAbsentFieldsAreNull(t *testing.T) {
	path := writeTestDB(t, []*Candidate{{
		Record:  &core.PeptideRecord{FullSequence: core.StringPtr("GG")},
		Peptide: &core.Peptide{Sequence: "GG"},
	}})

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	defer db.Close()

	var gene sql.NullString
	var full string
	err = db.QueryRow(`SELECT FullSequence, GeneName FROM PeptideTable`).Scan(&full, &gene)
	if err != nil {
		t.Fatalf("QueryRow() error = %v", err)
	}
	if full != "GG" {
		t.Errorf("FullSequence = %q, want GG", full)
	}
	if gene.Valid {
		t.Errorf("GeneName = %q, want NULL", gene.String)
	}
}

func TestSummarizeMissingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE Other (x INTEGER)`); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	db.Close()

	if _, err := Summarize(path); err == nil {
		t.Error("Summarize() error = nil, want error for missing HeaderTable")
	}
}
