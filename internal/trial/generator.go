package trial

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/Iron-Ham/stopsignal/internal/errors"
)

// proportionTolerance absorbs float error when proportions sum to exactly 1.
const proportionTolerance = 1e-9

// Proportions are the fractions of a block allotted to each trial type.
// Stop is informational: the stop count is always the remainder.
type Proportions struct {
	CongruentGo   float64 `mapstructure:"congruent_go" yaml:"congruent_go"`
	IncongruentGo float64 `mapstructure:"incongruent_go" yaml:"incongruent_go"`
	NoGo          float64 `mapstructure:"nogo" yaml:"nogo"`
	Stop          float64 `mapstructure:"stop" yaml:"stop"`
}

// DefaultProportions returns the 62.5/12.5/12.5/12.5 split.
func DefaultProportions() Proportions {
	return Proportions{
		CongruentGo:   0.625,
		IncongruentGo: 0.125,
		NoGo:          0.125,
		Stop:          0.125,
	}
}

// Validate checks every proportion is within [0,1] and that they sum to at most 1.
func (p Proportions) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"congruent_go", p.CongruentGo},
		{"incongruent_go", p.IncongruentGo},
		{"nogo", p.NoGo},
		{"stop", p.Stop},
	}
	sum := 0.0
	for _, f := range fields {
		if math.IsNaN(f.value) || f.value < 0 || f.value > 1 {
			return errors.NewConfigurationError("task.proportions."+f.name, f.value, errors.ErrInvalidProportions).
				WithDetail("must be within [0, 1]")
		}
		sum += f.value
	}
	if sum > 1+proportionTolerance {
		return errors.NewConfigurationError("task.proportions", sum, errors.ErrInvalidProportions).
			WithDetail("proportions sum to more than 1")
	}
	return nil
}

// Counts is the number of trials of each type in one block.
type Counts struct {
	CongruentGo   int
	IncongruentGo int
	NoGo          int
	Stop          int
}

// Total returns the block length.
func (c Counts) Total() int {
	return c.CongruentGo + c.IncongruentGo + c.NoGo + c.Stop
}

// Of returns the count for t.
func (c Counts) Of(t Type) int {
	switch t {
	case CongruentGo:
		return c.CongruentGo
	case IncongruentGo:
		return c.IncongruentGo
	case NoGo:
		return c.NoGo
	case Stop:
		return c.Stop
	default:
		return 0
	}
}

// Counts splits a block of n trials. The three leading types get
// floor(n * proportion); stop takes whatever is left so the counts always sum
// to n. A type with a nonzero proportion that ends up with no trials makes the
// block impossible and is rejected.
func (p Proportions) Counts(n int) (Counts, error) {
	if err := p.Validate(); err != nil {
		return Counts{}, err
	}
	if n <= 0 {
		return Counts{}, errors.NewConfigurationError("task.trials_per_set", n, errors.ErrBlockTooSmall).
			WithDetail("must be positive")
	}

	c := Counts{
		CongruentGo:   int(math.Floor(float64(n) * p.CongruentGo)),
		IncongruentGo: int(math.Floor(float64(n) * p.IncongruentGo)),
		NoGo:          int(math.Floor(float64(n) * p.NoGo)),
	}
	c.Stop = n - c.CongruentGo - c.IncongruentGo - c.NoGo

	wanted := map[Type]float64{
		CongruentGo:   p.CongruentGo,
		IncongruentGo: p.IncongruentGo,
		NoGo:          p.NoGo,
		Stop:          p.Stop,
	}
	for _, t := range Types() {
		if wanted[t] > 0 && c.Of(t) == 0 {
			return Counts{}, errors.NewConfigurationError("task.trials_per_set", n, errors.ErrBlockTooSmall).
				WithDetail("%s would get no trials", t)
		}
	}
	return c, nil
}

// Generator builds randomized blocks from a fixed composition.
type Generator struct {
	proportions Proportions
	rng         *rand.Rand
}

// NewGenerator validates proportions and returns a Generator drawing from rng.
func NewGenerator(p Proportions, rng *rand.Rand) (*Generator, error) {
	if rng == nil {
		return nil, fmt.Errorf("trial generator requires a random source")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Generator{proportions: p, rng: rng}, nil
}

// Generate returns a fresh block of trialsPerSet trials: the exact
// composition from Counts, each with a uniformly drawn direction, uniformly
// permuted.
func (g *Generator) Generate(trialsPerSet int) ([]Trial, error) {
	counts, err := g.proportions.Counts(trialsPerSet)
	if err != nil {
		return nil, err
	}

	trials := make([]Trial, 0, trialsPerSet)
	for _, t := range Types() {
		for i := 0; i < counts.Of(t); i++ {
			trials = append(trials, Trial{Type: t, Direction: g.direction()})
		}
	}

	g.rng.Shuffle(len(trials), func(i, j int) {
		trials[i], trials[j] = trials[j], trials[i]
	})
	return trials, nil
}

func (g *Generator) direction() Direction {
	if g.rng.IntN(2) == 0 {
		return Left
	}
	return Right
}

// CountTypes tallies the types present in trials.
func CountTypes(trials []Trial) Counts {
	var c Counts
	for _, t := range trials {
		switch t.Type {
		case CongruentGo:
			c.CongruentGo++
		case IncongruentGo:
			c.IncongruentGo++
		case NoGo:
			c.NoGo++
		case Stop:
			c.Stop++
		}
	}
	return c
}
