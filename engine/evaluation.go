package engine

import (
	"math"
	"math/rand"

	"minimax-chess/board"
)

// Score bounds. A missing king pins the evaluation to one of them.
const (
	MaxScore int32 = math.MaxInt32
	MinScore int32 = -MaxScore
)

const (
	DefaultTemperature = 1.5
	DefaultJitterMax   = 100
)

// PieceValues in centipawns, indexed by board.PieceClass.
var PieceValues = [board.NumClasses]int32{
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 300,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   0,
}

// Evaluator scores positions from White's point of view: material balance
// plus a small random jitter so equal lines are not always played the same
// way. An Evaluator owns its random stream and must not be shared between
// goroutines.
type Evaluator struct {
	// Temperature scales the jitter; 0 turns it off.
	Temperature float64
	// JitterMax bounds the raw draw to [1, JitterMax].
	JitterMax int

	rng *rand.Rand
}

// NewEvaluator builds an evaluator drawing jitter from src.
func NewEvaluator(src rand.Source, temperature float64) *Evaluator {
	return &Evaluator{
		Temperature: temperature,
		JitterMax:   DefaultJitterMax,
		rng:         rand.New(src),
	}
}

// Material returns the jitter-free material balance, ignoring kings.
func (e *Evaluator) Material(p *board.Position) int32 {
	var score int32
	for pc := board.Pawn; pc < board.NumClasses; pc++ {
		v := PieceValues[pc]
		if v == 0 {
			continue
		}
		score += v * int32(p.Count(board.SetOf(board.White, pc))-p.Count(board.SetOf(board.Black, pc)))
	}
	return score
}

// Evaluate returns MaxScore when Black has lost its king, MinScore when
// White has (also when both are gone), and otherwise material plus jitter.
func (e *Evaluator) Evaluate(p *board.Position) int32 {
	if !p.HasKing(board.White) {
		return MinScore
	}
	if !p.HasKing(board.Black) {
		return MaxScore
	}
	return e.Material(p) + e.jitter()
}

func (e *Evaluator) jitter() int32 {
	if e.Temperature == 0 || e.rng == nil || e.JitterMax < 1 {
		return 0
	}
	return int32(float64(1+e.rng.Intn(e.JitterMax)) * e.Temperature)
}
