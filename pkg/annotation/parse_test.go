package annotation

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want PositionMap
	}{
		{"no modifications", "PEPTIDE", PositionMap{}},
		{"single residue modification", "PEP[Mod1]TIDE", PositionMap{3: {"Mod1"}}},
		{"N-terminal", "[Acetyl]PEPTIDE", PositionMap{0: {"Acetyl"}}},
		{"C-terminal", "PEPTIDE-[Amidated]", PositionMap{8: {"Amidated"}}},
		{"two residues", "PE[A]PT[B]IDE", PositionMap{2: {"A"}, 4: {"B"}}},
		{"adjacent residues", "M[Oxidation]M[Oxidation]K", PositionMap{1: {"Oxidation"}, 2: {"Oxidation"}}},
		{
			"stacked on missed cleavage",
			"PEK[Mod1]|[Mod1]TIDE",
			PositionMap{3: {"Mod1", "Mod1"}},
		},
		{"SILAC label skipped", "PEPK(+8.014)[Mod1]TIDE", PositionMap{4: {"Mod1"}}},
		{"label after token", "PEP[Mod1]K(+8.014)T[Mod2]IDE", PositionMap{3: {"Mod1"}, 5: {"Mod2"}}},
		{"parentheses inside token", "PEPK[Label:13C(6)]TIDE", PositionMap{4: {"Label:13C(6)"}}},
		{"non-ASCII before token", "PÉP[Mod1]TIDE", PositionMap{3: {"Mod1"}}},
		{
			"token with spaces and colon",
			"PEPC[Common Fixed:Carbamidomethyl on C]TIDE",
			PositionMap{4: {"Common Fixed:Carbamidomethyl on C"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.seq)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.seq, got, tt.want)
			}
		})
	}
}

// Separators are stripped before scanning, so offsets in later alternatives
// include the residues of the earlier ones.
func TestParseAmbiguousOffsetsAreShifted(t *testing.T) {
	got, err := Parse("PEP[M1]TIDE|PEPTIDE[M2]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := PositionMap{3: {"M1"}, 14: {"M2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, seq := range []string{
		"PEP[Mod1TIDE",
		"PEP]TIDE",
		"PE[[x]]PTIDE",
		"PEP[]TIDE",
		"PEP[a]]TIDE",
		"PEPK(+8.014TIDE",
		"PEP)TIDE",
		"PE(P(x))TIDE",
	} {
		t.Run(seq, func(t *testing.T) {
			if _, err := Parse(seq); !errors.Is(err, ErrMalformedAnnotation) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformedAnnotation", seq, err)
			}
		})
	}
}

func TestFoldPositions(t *testing.T) {
	tokens := []token{
		{start: 0, length: 8},  // [Acetyl]
		{start: 11, length: 6}, // after "PEP"
		{start: 17, length: 6}, // stacked directly behind
	}
	got := foldPositions(tokens)
	want := []int{0, 3, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("foldPositions() = %v, want %v", got, want)
	}
}

func TestBaseSequence(t *testing.T) {
	tests := []struct {
		seq  string
		want string
	}{
		{"PEPTIDE", "PEPTIDE"},
		{"[Acetyl]PEP[Mod1]TIDE-[Amidated]", "PEPTIDE"},
		{"PEK[Mod1]|[Mod1]TIDE", "PEKTIDE"},
		{"PEPK(+8.014)TIDE", "PEPKTIDE"},
		{"PEPK[Label:13C(6)]TIDE", "PEPKTIDE"},
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			got, err := BaseSequence(tt.seq)
			if err != nil {
				t.Fatalf("BaseSequence() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BaseSequence() = %q, want %q", got, tt.want)
			}
		})
	}

	for _, seq := range []string{"PEP[Mod", "PEPK(+8.014TIDE"} {
		if _, err := BaseSequence(seq); !errors.Is(err, ErrMalformedAnnotation) {
			t.Errorf("BaseSequence(%q) error = %v, want ErrMalformedAnnotation", seq, err)
		}
	}
}

func TestStripParentheses(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PEPTIDE", "PEPTIDE"},
		{"PEPK(+8.014)TIDE", "PEPKTIDE"},
		{"(a)B(c)D", "BD"},
		{"PEPR(+10.008)K(+8.014)", "PEPRK"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := StripParentheses(tt.in)
			if got != tt.want {
				t.Errorf("StripParentheses(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if twice := StripParentheses(got); twice != got {
				t.Errorf("StripParentheses not idempotent: %q -> %q", got, twice)
			}
		})
	}
}

func TestCheckDelimiters(t *testing.T) {
	tests := []struct {
		seq     string
		wantErr bool
	}{
		{"PEPTIDE", false},
		{"PEPK(+8.014)TIDE", false},
		{"PEPK[Label:13C(6)]TIDE", false},
		{"PEPK[Label:13C(6]TIDE", false},
		{"PEPK(+8.014TIDE", true},
		{"PEPK+8.014)TIDE", true},
		{"PEP[Mod1TIDE", true},
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			err := CheckDelimiters(tt.seq)
			if tt.wantErr && !errors.Is(err, ErrMalformedAnnotation) {
				t.Errorf("CheckDelimiters(%q) = %v, want ErrMalformedAnnotation", tt.seq, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CheckDelimiters(%q) = %v, want nil", tt.seq, err)
			}
		})
	}
}

// An unterminated label is only caught by CheckDelimiters; stripping alone
// keeps everything before it.
func TestStripParenthesesUnterminated(t *testing.T) {
	if got := StripParentheses("PEPK(+8.014TIDE"); got != "PEPK" {
		t.Errorf("StripParentheses() = %q, want PEPK", got)
	}
	if err := CheckDelimiters("PEPK(+8.014TIDE"); !errors.Is(err, ErrMalformedAnnotation) {
		t.Errorf("CheckDelimiters() = %v, want ErrMalformedAnnotation", err)
	}
}
