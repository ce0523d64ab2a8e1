package core

import (
	"strings"
	"testing"
)

func TestLoadFromCSV(t *testing.T) {
	csv := `mod,massshift,aa,neutrallosses
Custom,100.5,K,
Lossy,79.966331,S,0;97.976896

`
	db := NewModDatabase()
	if err := db.LoadFromCSV(strings.NewReader(csv)); err != nil {
		t.Fatalf("LoadFromCSV() error = %v", err)
	}

	if db.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", db.Len())
	}

	custom, ok := db.Get("Custom")
	if !ok || custom.Mass != 100.5 {
		t.Errorf("Get(Custom) = %v, %v; want mass 100.5, true", custom, ok)
	}

	mod, ok := db.Get("Lossy")
	if !ok {
		t.Fatal("Get(Lossy) not found")
	}
	if len(mod.NeutralLosses) != 2 || mod.NeutralLosses[1] != 97.976896 {
		t.Errorf("Lossy neutral losses = %v, want [0 97.976896]", mod.NeutralLosses)
	}
}

func TestLoadFromCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"too few fields", "header\nOnlyName\n"},
		{"bad mass", "header\nBad,abc\n"},
		{"bad neutral loss", "header\nBad,1.0,K,zero\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewModDatabase().LoadFromCSV(strings.NewReader(tt.csv)); err == nil {
				t.Error("LoadFromCSV() expected error")
			}
		})
	}
}

func TestLossesDefaultsToIntact(t *testing.T) {
	mod := VariableModification{Name: "Carbamidomethyl", Mass: 57.021464}
	losses := mod.Losses()
	if len(losses) != 1 || losses[0] != 0 {
		t.Errorf("Losses() = %v, want [0]", losses)
	}
}

func TestDefaultModDatabase(t *testing.T) {
	db := DefaultModDatabase()

	mod, ok := db.Get("Phospho")
	if !ok {
		t.Fatal("Phospho missing from default database")
	}
	if len(mod.Losses()) != 2 {
		t.Errorf("Phospho losses = %v, want two", mod.Losses())
	}

	if _, ok := db.Get("Carbamidomethyl"); !ok {
		t.Error("Carbamidomethyl missing from default database")
	}
}
