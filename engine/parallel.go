package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"minimax-chess/board"
)

// fork returns an evaluator with the same settings and an independent
// random stream seeded from e's.
func (e *Evaluator) fork() *Evaluator {
	var seed int64
	if e.rng != nil {
		seed = e.rng.Int63()
	}
	return &Evaluator{
		Temperature: e.Temperature,
		JitterMax:   e.JitterMax,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// SearchParallel splits the root moves across workers. Every worker owns a
// copy of the position and a forked evaluator, and searches its root moves
// with a full window. Results are folded in generation order, so with jitter
// off the move and score match Search exactly.
func (s *Searcher) SearchParallel(ctx context.Context, p *board.Position, depth int, maximizing bool, workers int) (board.Move, int32, error) {
	if workers <= 1 || depth == 0 {
		return s.Search(ctx, p, depth, maximizing)
	}
	if depth < 0 {
		return board.NullMove, 0, fmt.Errorf("%w: depth %d", ErrInvalidOptions, depth)
	}
	moves := p.GenerateMoves(sideOf(maximizing))
	if len(moves) == 0 {
		return s.Search(ctx, p, depth, maximizing)
	}
	workers = Min(workers, len(moves))
	start := time.Now()

	scores := make([]int32, len(moves))
	nodes := make([]uint64, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		pos := *p
		ws := NewSearcher(s.Eval.fork(), s.Log)
		ws.ensureBuffers(depth)
		w := w
		g.Go(func() error {
			for i := w; i < len(moves); i += workers {
				m := moves[i]
				pos.ApplyMove(m)
				score, err := ws.alphaBeta(gctx, &pos, depth-1, MinScore, MaxScore, !maximizing)
				pos.ApplyMove(m)
				if err != nil {
					return err
				}
				scores[i] = score
			}
			nodes[w] = ws.nodes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return board.NullMove, 0, err
	}

	best, bestScore := moves[0], scores[0]
	for i := 1; i < len(moves); i++ {
		if (maximizing && scores[i] > bestScore) || (!maximizing && scores[i] < bestScore) {
			best, bestScore = moves[i], scores[i]
		}
	}

	s.nodes = 1
	for _, n := range nodes {
		s.nodes += n
	}
	elapsed := time.Since(start)
	s.Log.Debug().
		Int("depth", depth).
		Int("workers", workers).
		Int32("score", bestScore).
		Uint64("nodes", s.nodes).
		Dur("elapsed", elapsed).
		Uint64("nps", nps(s.nodes, elapsed)).
		Str("move", best.String()).
		Msg("parallel search done")
	return best, bestScore, nil
}
