package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// VariableModification is a mass shift that may lose part of its mass on
// fragmentation. Each neutral loss is one alternative fragmentation pathway.
type VariableModification struct {
	Name          string
	Mass          float64
	NeutralLosses []float64
}

// Losses returns the neutral losses of the modification. A modification that
// declares none fragments intact, which is the single loss 0.
func (m VariableModification) Losses() []float64 {
	if len(m.NeutralLosses) == 0 {
		return []float64{0}
	}
	return m.NeutralLosses
}

// ModDatabase stores modification definitions
type ModDatabase struct {
	mods map[string]VariableModification // name -> definition
}

// NewModDatabase creates an empty modification database
func NewModDatabase() *ModDatabase {
	return &ModDatabase{
		mods: make(map[string]VariableModification),
	}
}

// LoadFromCSV loads modifications from a CSV file.
// Format: mod,massshift[,aa[,neutrallosses]] where neutrallosses is a
// semicolon-separated list of masses.
func (db *ModDatabase) LoadFromCSV(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	// Skip header line
	scanner.Scan()

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			return fmt.Errorf("line %d: invalid format, expected at least 2 comma-separated fields", lineNum)
		}

		modName := strings.TrimSpace(parts[0])
		massStr := strings.TrimSpace(parts[1])

		mass, err := strconv.ParseFloat(massStr, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid mass value '%s': %w", lineNum, massStr, err)
		}

		var losses []float64
		if len(parts) >= 4 {
			for _, l := range strings.Split(parts[3], ";") {
				l = strings.TrimSpace(l)
				if l == "" {
					continue
				}
				loss, err := strconv.ParseFloat(l, 64)
				if err != nil {
					return fmt.Errorf("line %d: invalid neutral loss '%s': %w", lineNum, l, err)
				}
				losses = append(losses, loss)
			}
		}

		db.Add(modName, mass, losses...)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading CSV: %w", err)
	}

	return nil
}

// Get returns the full definition for a modification name
func (db *ModDatabase) Get(name string) (VariableModification, bool) {
	mod, ok := db.mods[name]
	return mod, ok
}

// Add adds or updates a modification
func (db *ModDatabase) Add(name string, mass float64, neutralLosses ...float64) {
	db.mods[name] = VariableModification{
		Name:          name,
		Mass:          mass,
		NeutralLosses: neutralLosses,
	}
}

// Len returns the number of known modifications
func (db *ModDatabase) Len() int {
	return len(db.mods)
}

// DefaultModDatabase returns a ModDatabase pre-loaded with common modifications
func DefaultModDatabase() *ModDatabase {
	db := NewModDatabase()

	// Common modifications from unimod
	db.Add("Acetyl", 42.010565)
	db.Add("Amidated", -0.984016)
	db.Add("Biotin", 226.077598)
	db.Add("Carbamidomethyl", 57.021464)
	db.Add("Carbamyl", 43.005814)
	db.Add("Carboxymethyl", 58.005479)
	db.Add("Deamidated", 0.984016)
	db.Add("Deamidation", 0.984016)
	db.Add("Met->Hse", -29.992806)
	db.Add("Met->Hsl", -48.003371)
	db.Add("NIPCAM", 99.068414)
	db.Add("Phospho", 79.966331, 0, 97.976896)
	db.Add("Phosphorylation", 79.966331, 0, 97.976896)
	db.Add("Dehydrated", -18.010565)
	db.Add("Propionamide", 71.037114)
	db.Add("Pyro-carbamidomethyl", 39.994915)
	db.Add("Glu->pyro-Glu", -18.010565)
	db.Add("Gln->pyro-Glu", -17.026549)
	db.Add("Cation:Na", 21.981943)
	db.Add("Methyl", 14.01565)
	db.Add("Methylation", 14.01565)
	db.Add("Oxidation", 15.994915, 0, 63.998285)
	db.Add("Dimethyl", 28.0313)
	db.Add("Trimethyl", 42.04695)
	db.Add("Methylthio", 45.987721)
	db.Add("Sulfo", 79.956815)
	db.Add("Hex", 162.052824)
	db.Add("Lipoyl", 188.032956)
	db.Add("HexNAc", 203.079373, 0, 203.079373)
	db.Add("Farnesyl", 204.187801)
	db.Add("Myristoyl", 210.198366)
	db.Add("PyridoxalPhosphate", 229.014009)
	db.Add("Palmitoyl", 238.229666)
	db.Add("GeranylGeranyl", 272.250401)
	db.Add("Phosphopantetheine", 340.085794)
	db.Add("FAD", 783.141486)
	db.Add("Guanidinyl", 42.021798)
	db.Add("HNE", 156.11503)
	db.Add("Glucuronyl", 176.032088)
	db.Add("Glutathione", 305.068156)
	db.Add("Propionyl", 56.026215)
	db.Add("TMT", 229.162932)
	db.Add("TMTPro", 304.207146)
	db.Add("TMT6plex", 229.162932)
	db.Add("TMT10plex", 229.162932)
	db.Add("TMT11plex", 229.162932)
	db.Add("TMT16plex", 304.207146)
	db.Add("iTRAQ4plex", 144.102063)
	db.Add("iTRAQ8plex", 304.205360)

	return db
}
