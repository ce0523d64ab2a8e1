package fragment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChrisMcGann/pepmass/pkg/core"
)

// ErrUnsupportedIonSeries is returned when an ion series has no mass rule.
var ErrUnsupportedIonSeries = errors.New("ion series not implemented")

// IonType is one fragment ion series.
type IonType uint8

const (
	ADot IonType = 1 << iota
	B
	BNoB1 // b ions without b1
	C
	X
	Y
	ZDot
)

// Mass offsets relative to the backbone ladders.
const (
	cIonOffset = core.MassN + 3*core.MassH
	yIonOffset = core.MassWater
	zIonOffset = core.MassO - core.MassN
)

var ionNames = []struct {
	t    IonType
	name string
}{
	{ADot, "adot"},
	{B, "b"},
	{BNoB1, "bnob1"},
	{C, "c"},
	{X, "x"},
	{Y, "y"},
	{ZDot, "zdot"},
}

func (t IonType) String() string {
	for _, n := range ionNames {
		if n.t == t {
			return n.name
		}
	}
	return fmt.Sprintf("IonType(%d)", uint8(t))
}

// IonTypes is a set of ion series.
type IonTypes uint8

// NewIonTypes builds a set from individual series.
func NewIonTypes(types ...IonType) IonTypes {
	var s IonTypes
	for _, t := range types {
		s |= IonTypes(t)
	}
	return s
}

// Has reports whether the set contains t.
func (s IonTypes) Has(t IonType) bool {
	return s&IonTypes(t) != 0
}

func (s IonTypes) String() string {
	var names []string
	for _, n := range ionNames {
		if s.Has(n.t) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseIonTypes parses a comma-separated list such as "b,y" or "c,zdot".
func ParseIonTypes(s string) (IonTypes, error) {
	var set IonTypes
	for _, field := range strings.Split(s, ",") {
		field = strings.ToLower(strings.TrimSpace(field))
		if field == "" {
			continue
		}
		switch field {
		case "z•", "z.":
			field = "zdot"
		case "a•", "a.":
			field = "adot"
		case "b-no-b1", "bnob1ions":
			field = "bnob1"
		}
		found := false
		for _, n := range ionNames {
			if n.name == field {
				set |= IonTypes(n.t)
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown ion type '%s'", field)
		}
	}
	return set, nil
}

// ProductMasses returns every fragment mass of the requested series. All
// N-terminal masses come first in ladder order (b without b1, b, c at each
// position), then all C-terminal masses (y, z•). The result may contain
// duplicates and NaN.
func ProductMasses(l Ladder, types IonTypes) ([]float64, error) {
	if types.Has(ADot) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedIonSeries, ADot)
	}
	if types.Has(X) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedIonSeries, X)
	}

	nLen := len(l.NTerminalMasses)
	cLen := len(l.CTerminalMasses)

	size := 0
	if types.Has(BNoB1) && nLen > 0 {
		size += nLen - 1
	}
	if types.Has(B) {
		size += nLen
	}
	if types.Has(C) {
		size += nLen
	}
	if types.Has(Y) {
		size += cLen
	}
	if types.Has(ZDot) {
		size += cLen
	}

	masses := make([]float64, 0, size)
	for j, m := range l.NTerminalMasses {
		if types.Has(BNoB1) && j > 0 {
			masses = append(masses, m)
		}
		if types.Has(B) {
			masses = append(masses, m)
		}
		if types.Has(C) {
			masses = append(masses, m+cIonOffset)
		}
	}
	for _, m := range l.CTerminalMasses {
		if types.Has(Y) {
			masses = append(masses, m+yIonOffset)
		}
		if types.Has(ZDot) {
			masses = append(masses, m+zIonOffset)
		}
	}

	return masses, nil
}
