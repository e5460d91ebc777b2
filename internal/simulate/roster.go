package simulate

import (
	"fmt"
	"math/rand"
)

// Developer is one simulated organization member. It lives only for the
// duration of a run; only the records it produces are persisted.
type Developer struct {
	UserLogin string
	UserID    int64
	Team      Team
	Persona   Persona
	IDE       IDE
	Seniority string
}

// NewRoster builds n synthetic developers: deterministic logins by index,
// round-robin team assignment, and weighted persona/IDE draws from rng.
func NewRoster(n int, rng *rand.Rand) []Developer {
	developers := make([]Developer, 0, n)
	for i := 0; i < n; i++ {
		developers = append(developers, Developer{
			UserLogin: developerName(i),
			UserID:    1000000 + int64(i),
			Team:      teams[i%len(teams)],
			Persona:   personas[weightedIndex(rng, personaWeights)],
			IDE:       ides[weightedIndex(rng, ideWeights())],
			Seniority: seniorities[rng.Intn(len(seniorities))],
		})
	}
	return developers
}

func developerName(index int) string {
	return fmt.Sprintf("%s-%s", firstNames[index%len(firstNames)], lastNames[index%len(lastNames)])
}

func ideWeights() []float64 {
	weights := make([]float64, len(ides))
	for i, ide := range ides {
		weights[i] = ide.Weight
	}
	return weights
}

// weightedIndex draws an index from a discrete distribution. Weights need
// not sum to one.
func weightedIndex(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	target := rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(weights) - 1
}

// intBetween draws uniformly from [lo, hi] inclusive.
func intBetween(rng *rand.Rand, bounds [2]int) int {
	lo, hi := bounds[0], bounds[1]
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// floatBetween draws uniformly from [lo, hi).
func floatBetween(rng *rand.Rand, bounds [2]float64) float64 {
	return bounds[0] + rng.Float64()*(bounds[1]-bounds[0])
}
