package engine

import (
	"math/rand"
	"time"
)

// Roller is the injectable randomness source behind every probabilistic
// resolution. Passing a seeded roller makes outcomes reproducible.
type Roller interface {
	// Chance performs a Bernoulli trial at pct percent.
	Chance(pct float64) bool
	// Between draws uniformly from [min, max] inclusive.
	Between(min, max int) int
}

// DiceRoller is the default Roller backed by math/rand.
type DiceRoller struct {
	rng *rand.Rand
}

// NewDiceRoller creates a time-seeded dice roller.
func NewDiceRoller() *DiceRoller {
	return NewSeededDiceRoller(time.Now().UnixNano())
}

// NewSeededDiceRoller creates a dice roller with a fixed seed.
func NewSeededDiceRoller(seed int64) *DiceRoller {
	return &DiceRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Chance performs a Bernoulli trial at pct percent.
func (dr *DiceRoller) Chance(pct float64) bool {
	if pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	return dr.rng.Float64()*100 < pct
}

// Between draws uniformly from [min, max] inclusive.
func (dr *DiceRoller) Between(min, max int) int {
	if max <= min {
		return min
	}
	return min + dr.rng.Intn(max-min+1)
}
