package session

import (
	"fmt"
	"math"
)

// ScorePolicy computes a session score from its counters.
type ScorePolicy interface {
	Score(attempted, solved, hints int) int
	Name() string
}

// RatioPolicy weights solved problems by accuracy and discounts hint
// usage:
//
//	floor(solved * 100 * (solved/attempted) * max(0, 1 - hints/(2*attempted)))
//
// Zero attempts score zero.
type RatioPolicy struct{}

func (RatioPolicy) Name() string { return "ratio" }

func (RatioPolicy) Score(attempted, solved, hints int) int {
	if attempted <= 0 {
		return 0
	}
	ratio := float64(solved) / float64(attempted)
	penalty := 1 - float64(hints)/float64(2*attempted)
	if penalty < 0 {
		penalty = 0
	}
	return int(math.Floor(float64(solved) * 100 * ratio * penalty))
}

// FlatPolicy awards a flat ten points per solved problem.
type FlatPolicy struct{}

func (FlatPolicy) Name() string { return "flat" }

func (FlatPolicy) Score(attempted, solved, hints int) int {
	return solved * 10
}

// PolicyFromName resolves a policy by its configuration name.
func PolicyFromName(name string) (ScorePolicy, error) {
	switch name {
	case "", "ratio":
		return RatioPolicy{}, nil
	case "flat":
		return FlatPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown score policy: %s", name)
	}
}
