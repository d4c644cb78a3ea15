package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"minimax-chess/board"
)

// Searcher runs a fixed-depth minimax search with alpha-beta pruning. It is
// not safe for concurrent use; see SearchParallel for the multi-worker form.
type Searcher struct {
	Eval *Evaluator
	Log  zerolog.Logger

	nodes uint64
	// per-depth move buffers, reused across searches
	bufs [][]board.Move
}

// NewSearcher returns a searcher scoring leaves with eval.
func NewSearcher(eval *Evaluator, log zerolog.Logger) *Searcher {
	return &Searcher{Eval: eval, Log: log}
}

// Nodes returns the number of nodes visited by the last search.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// Search returns the best move for the side to move and its minimax score.
// maximizing is true when White is to move. A depth of 0, or a side with no
// moves, yields the static evaluation and the null move. The position is
// always left as it was found, also when ctx is cancelled mid-search.
func (s *Searcher) Search(ctx context.Context, p *board.Position, depth int, maximizing bool) (board.Move, int32, error) {
	if depth < 0 {
		return board.NullMove, 0, fmt.Errorf("%w: depth %d", ErrInvalidOptions, depth)
	}
	s.nodes = 0
	s.ensureBuffers(depth)
	start := time.Now()

	best, score, err := s.root(ctx, p, depth, maximizing)
	if err != nil {
		return board.NullMove, 0, err
	}

	elapsed := time.Since(start)
	s.Log.Debug().
		Int("depth", depth).
		Str("side", sideOf(maximizing).String()).
		Int32("score", score).
		Uint64("nodes", s.nodes).
		Dur("elapsed", elapsed).
		Uint64("nps", nps(s.nodes, elapsed)).
		Str("move", best.String()).
		Msg("search done")
	return best, score, nil
}

func (s *Searcher) root(ctx context.Context, p *board.Position, depth int, maximizing bool) (board.Move, int32, error) {
	if err := ctx.Err(); err != nil {
		return board.NullMove, 0, err
	}
	s.nodes++
	if depth == 0 {
		return board.NullMove, s.Eval.Evaluate(p), nil
	}
	moves := p.GenerateMoves(sideOf(maximizing))
	if len(moves) == 0 {
		return board.NullMove, s.Eval.Evaluate(p), nil
	}

	alpha, beta := MinScore, MaxScore
	best, bestScore := board.NullMove, int32(0)
	for i, m := range moves {
		p.ApplyMove(m)
		score, err := s.alphaBeta(ctx, p, depth-1, alpha, beta, !maximizing)
		p.ApplyMove(m)
		if err != nil {
			return board.NullMove, 0, err
		}

		// ties keep the earlier move
		if i == 0 || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			best, bestScore = m, score
		}
		if maximizing {
			alpha = Max(alpha, score)
		} else {
			beta = Min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}
	return best, bestScore, nil
}

func (s *Searcher) alphaBeta(ctx context.Context, p *board.Position, depth int, alpha, beta int32, maximizing bool) (int32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.nodes++
	if depth == 0 {
		return s.Eval.Evaluate(p), nil
	}

	moves := p.GenerateMovesInto(s.bufs[depth][:0], sideOf(maximizing))
	s.bufs[depth] = moves
	if len(moves) == 0 {
		return s.Eval.Evaluate(p), nil
	}

	best := MaxScore
	if maximizing {
		best = MinScore
	}
	for _, m := range moves {
		p.ApplyMove(m)
		score, err := s.alphaBeta(ctx, p, depth-1, alpha, beta, !maximizing)
		p.ApplyMove(m)
		if err != nil {
			return 0, err
		}

		if maximizing {
			best = Max(best, score)
			alpha = Max(alpha, score)
		} else {
			best = Min(best, score)
			beta = Min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}
	return best, nil
}

func (s *Searcher) ensureBuffers(depth int) {
	for len(s.bufs) <= depth {
		s.bufs = append(s.bufs, make([]board.Move, 0, 64))
	}
}

func nps(nodes uint64, elapsed time.Duration) uint64 {
	ms := elapsed.Milliseconds()
	if ms == 0 {
		ms = 1
	}
	return uint64(float64(nodes*1000) / float64(ms))
}
