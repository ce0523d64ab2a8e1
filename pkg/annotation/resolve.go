package annotation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/pepmass/pkg/core"
)

// ErrUnknownModification is returned for a token with no known mass.
var ErrUnknownModification = errors.New("unknown modification")

// "Common Fixed:Carbamidomethyl on C" -> "Carbamidomethyl"
var tokenName = regexp.MustCompile(`^(?:[^:]*:)?(.+?)(?: on \S+)?$`)

var massShift = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)$`)

// Resolver maps modification tokens to masses through a ModDatabase.
type Resolver struct {
	modDB *core.ModDatabase
}

// NewResolver creates a resolver; a nil database means the default one.
func NewResolver(modDB *core.ModDatabase) *Resolver {
	if modDB == nil {
		modDB = core.DefaultModDatabase()
	}
	return &Resolver{modDB: modDB}
}

// Modification resolves one token. Plain numbers such as "+15.9949" are
// taken as mass shifts without neutral losses.
func (r *Resolver) Modification(tok string) (core.VariableModification, error) {
	tok = strings.TrimSpace(tok)

	if massShift.MatchString(tok) {
		mass, err := strconv.ParseFloat(strings.TrimPrefix(tok, "+"), 64)
		if err != nil {
			return core.VariableModification{}, fmt.Errorf("invalid mass shift '%s': %w", tok, err)
		}
		return core.VariableModification{Name: tok, Mass: mass}, nil
	}

	if mod, ok := r.modDB.Get(tok); ok {
		return mod, nil
	}

	m := tokenName.FindStringSubmatch(tok)
	if m != nil {
		if mod, ok := r.modDB.Get(m[1]); ok {
			return mod, nil
		}
	}

	return core.VariableModification{}, fmt.Errorf("%w '%s'", ErrUnknownModification, tok)
}

// Peptide parses an annotated sequence into a backbone with resolved
// modifications. Tokens stacked on one offset are combined into a single
// modification whose neutral losses are every sum of the individual losses.
func (r *Resolver) Peptide(fullSequence string) (*core.Peptide, error) {
	positions, err := Parse(fullSequence)
	if err != nil {
		return nil, err
	}
	base, err := BaseSequence(fullSequence)
	if err != nil {
		return nil, err
	}

	p := &core.Peptide{
		Sequence: base,
		Mods:     make(map[int]core.VariableModification, len(positions)),
	}
	for pos, toks := range positions {
		var combined core.VariableModification
		for i, tok := range toks {
			mod, err := r.Modification(tok)
			if err != nil {
				return nil, fmt.Errorf("position %d: %w", pos, err)
			}
			if i == 0 {
				combined = mod
				continue
			}
			combined = stack(combined, mod)
		}
		p.Mods[pos] = combined
	}

	return p, nil
}

func stack(a, b core.VariableModification) core.VariableModification {
	var losses []float64
	for _, la := range a.Losses() {
		for _, lb := range b.Losses() {
			losses = append(losses, la+lb)
		}
	}
	return core.VariableModification{
		Name:          a.Name + "+" + b.Name,
		Mass:          a.Mass + b.Mass,
		NeutralLosses: losses,
	}
}
