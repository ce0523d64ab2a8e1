package annotation

import (
	"errors"
	"math"
	"testing"

	"github.com/ChrisMcGann/pepmass/pkg/core"
)

func TestResolverModification(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		tok      string
		wantMass float64
		wantErr  bool
	}{
		{"Common Fixed:Carbamidomethyl on C", 57.021464, false},
		{"Common Variable:Oxidation on M", 15.994915, false},
		{"Oxidation", 15.994915, false},
		{"Cation:Na", 21.981943, false},
		{"+15.9949", 15.9949, false},
		{"-17.0265", -17.0265, false},
		{"Metal:Unobtainium on X", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			mod, err := r.Modification(tt.tok)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Modification() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownModification) {
					t.Errorf("error = %v, want ErrUnknownModification", err)
				}
				return
			}
			if math.Abs(mod.Mass-tt.wantMass) > 1e-9 {
				t.Errorf("mass = %v, want %v", mod.Mass, tt.wantMass)
			}
		})
	}
}

func TestResolverPeptide(t *testing.T) {
	r := NewResolver(nil)

	p, err := r.Peptide("[Acetyl]PEPC[Common Fixed:Carbamidomethyl on C]TIDE-[Amidated]")
	if err != nil {
		t.Fatalf("Peptide() error = %v", err)
	}
	if p.Sequence != "PEPCTIDE" {
		t.Errorf("Sequence = %q, want PEPCTIDE", p.Sequence)
	}

	wantMods := map[int]float64{0: 42.010565, 4: 57.021464, 9: -0.984016}
	if len(p.Mods) != len(wantMods) {
		t.Fatalf("Mods = %v, want positions %v", p.Mods, wantMods)
	}
	for pos, mass := range wantMods {
		if got := p.Mods[pos].Mass; math.Abs(got-mass) > 1e-9 {
			t.Errorf("mod at %d mass = %v, want %v", pos, got, mass)
		}
	}
	if p.CTermMass() != -0.984016 {
		t.Errorf("CTermMass() = %v, want -0.984016", p.CTermMass())
	}
}

func TestResolverPeptideStacksLosses(t *testing.T) {
	r := NewResolver(nil)

	p, err := r.Peptide("PEK[Phospho]|[Oxidation]TIDE")
	if err != nil {
		t.Fatalf("Peptide() error = %v", err)
	}

	mod, ok := p.ModAt(3)
	if !ok {
		t.Fatal("no modification stacked at 3")
	}
	if want := 79.966331 + 15.994915; math.Abs(mod.Mass-want) > 1e-9 {
		t.Errorf("stacked mass = %v, want %v", mod.Mass, want)
	}
	if len(mod.Losses()) != 4 {
		t.Errorf("stacked losses = %v, want 4 combinations", mod.Losses())
	}
}

func TestResolverPeptideErrors(t *testing.T) {
	db := core.NewModDatabase()
	r := NewResolver(db)

	if _, err := r.Peptide("PEP[Mystery]TIDE"); !errors.Is(err, ErrUnknownModification) {
		t.Errorf("error = %v, want ErrUnknownModification", err)
	}
	if _, err := r.Peptide("PEP[Mystery"); !errors.Is(err, ErrMalformedAnnotation) {
		t.Errorf("error = %v, want ErrMalformedAnnotation", err)
	}
}

func TestResolverPeptideSkipsLabels(t *testing.T) {
	r := NewResolver(nil)

	p, err := r.Peptide("PEPK(+8.014)TIDE")
	if err != nil {
		t.Fatalf("Peptide() error = %v", err)
	}
	if p.Sequence != "PEPKTIDE" {
		t.Errorf("Sequence = %q, want PEPKTIDE", p.Sequence)
	}
	want := (&core.Peptide{Sequence: "PEPKTIDE"}).NeutralMass()
	if got := p.NeutralMass(); math.IsNaN(got) || math.Abs(got-want) > 1e-9 {
		t.Errorf("NeutralMass() = %v, want %v", got, want)
	}

	p, err = r.Peptide("PEPK(+8.014)T[Phospho]IDE")
	if err != nil {
		t.Fatalf("Peptide() error = %v", err)
	}
	if _, ok := p.ModAt(5); !ok || p.Residue(5) != core.ResidueMass('T') {
		t.Errorf("Phospho not on T5: mods %v", p.Mods)
	}

	if _, err := r.Peptide("PEPK(+8.014TIDE"); !errors.Is(err, ErrMalformedAnnotation) {
		t.Errorf("error = %v, want ErrMalformedAnnotation", err)
	}
}
