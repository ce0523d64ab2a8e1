package fragment

import (
	"errors"
	"fmt"
	"iter"

	"github.com/ChrisMcGann/pepmass/pkg/core"
)

// ErrInvalidWalk is returned for a walk with a bad start or direction.
var ErrInvalidWalk = errors.New("invalid fragment walk")

// Walk directions along the backbone.
const (
	TowardCTerminus = 1
	TowardNTerminus = -1
)

// Engine computes fragment masses for one modified peptide. It holds no
// mutable state after construction and is safe for concurrent use.
type Engine struct {
	peptide *core.Peptide
	ladder  Ladder
}

// NewEngine builds the ladders for p.
func NewEngine(p *core.Peptide) *Engine {
	return &Engine{
		peptide: p,
		ladder:  NewLadder(p),
	}
}

// Ladder returns the precomputed ladders.
func (e *Engine) Ladder() Ladder {
	return e.ladder
}

// ProductMasses returns the fragment masses of the requested series.
func (e *Engine) ProductMasses(types IonTypes) ([]float64, error) {
	return ProductMasses(e.ladder, types)
}

// FollowingMasses walks the backbone from the 1-based position start in the
// given direction, adding one residue per step to prevMass and yielding the
// running mass. A residue whose modification has several neutral losses
// splits the walk: each loss yields its own mass and continues its own walk
// to the end of the peptide. The walk stops before the last residue in the
// direction of travel; that residue is only added when start is already on
// it, in which case exactly one step is taken.
//
// The number of masses grows with the product of the neutral-loss counts, so
// callers should stop ranging once they have what they need.
func (e *Engine) FollowingMasses(prevMass float64, start, direction int) (iter.Seq[float64], error) {
	if direction != TowardCTerminus && direction != TowardNTerminus {
		return nil, fmt.Errorf("%w: direction %d", ErrInvalidWalk, direction)
	}
	if start < 1 || start > e.peptide.Len() {
		return nil, fmt.Errorf("%w: start %d outside 1..%d", ErrInvalidWalk, start, e.peptide.Len())
	}

	return func(yield func(float64) bool) {
		e.walk(prevMass, start, direction, yield)
	}, nil
}

// walk reports false once the consumer has stopped.
func (e *Engine) walk(mass float64, pos, direction int, yield func(float64) bool) bool {
	for {
		mass += e.peptide.Residue(pos)

		mod, ok := e.peptide.ModAt(pos)
		losses := mod.Losses()
		switch {
		case !ok:
			if !yield(mass) {
				return false
			}
		case len(losses) == 1:
			mass += mod.Mass - losses[0]
			if !yield(mass) {
				return false
			}
		default:
			for _, nl := range losses {
				branch := mass + mod.Mass - nl
				if !yield(branch) {
					return false
				}
				if e.canStep(pos+direction, direction) {
					if !e.walk(branch, pos+direction, direction, yield) {
						return false
					}
				}
			}
			return true
		}

		pos += direction
		if !e.canStep(pos, direction) {
			return true
		}
	}
}

func (e *Engine) canStep(pos, direction int) bool {
	if direction == TowardCTerminus {
		return pos < e.peptide.Len()
	}
	return pos > 1
}
