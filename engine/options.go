package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
)

const (
	DefaultDepth    = 4
	DefaultMaxMoves = 1000
)

// ErrInvalidOptions is wrapped by Options.Validate.
var ErrInvalidOptions = errors.New("engine: invalid options")

// Options carries the tunables of one engine instance.
type Options struct {
	Depth       int
	Temperature float64
	JitterMax   int
	// MaxMoves caps engine-vs-engine games; 0 means no cap.
	MaxMoves int
	Seed     int64
	Workers  int
}

// DefaultOptions mirrors the settings the engine ships with.
func DefaultOptions() Options {
	return Options{
		Depth:       DefaultDepth,
		Temperature: DefaultTemperature,
		JitterMax:   DefaultJitterMax,
		MaxMoves:    DefaultMaxMoves,
		Seed:        1,
		Workers:     1,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Depth < 0:
		return fmt.Errorf("%w: depth %d", ErrInvalidOptions, o.Depth)
	case o.Temperature < 0:
		return fmt.Errorf("%w: temperature %g", ErrInvalidOptions, o.Temperature)
	case o.JitterMax < 1:
		return fmt.Errorf("%w: jitter max %d", ErrInvalidOptions, o.JitterMax)
	case o.MaxMoves < 0:
		return fmt.Errorf("%w: max moves %d", ErrInvalidOptions, o.MaxMoves)
	case o.Workers < 1:
		return fmt.Errorf("%w: workers %d", ErrInvalidOptions, o.Workers)
	}
	return nil
}

// NewEvaluator returns an evaluator seeded from o.Seed.
func (o Options) NewEvaluator() *Evaluator {
	e := NewEvaluator(rand.NewSource(o.Seed), o.Temperature)
	e.JitterMax = o.JitterMax
	return e
}

// NewSearcher returns a searcher with a fresh evaluator built from o.
func (o Options) NewSearcher(log zerolog.Logger) *Searcher {
	return NewSearcher(o.NewEvaluator(), log)
}
