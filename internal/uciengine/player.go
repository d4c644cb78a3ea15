// Package uciengine lets an external UCI engine take one side of a game.
package uciengine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/freeeve/uci"
	"github.com/rs/zerolog"

	"minimax-chess/board"
)

// ErrNoBestMove is returned when the engine answers without a usable move.
var ErrNoBestMove = errors.New("uci engine: no best move")

// Config describes the external engine.
type Config struct {
	Path    string
	Depth   int
	HashMB  int
	Threads int
	Logger  zerolog.Logger
}

// Player forwards each position to the external engine as a FEN and plays
// its best move.
type Player struct {
	engine *uci.Engine
	cfg    Config
	log    zerolog.Logger
}

// New starts the engine process and applies the options.
func New(cfg Config) (*Player, error) {
	if cfg.Depth <= 0 {
		cfg.Depth = 8
	}
	if cfg.HashMB <= 0 {
		cfg.HashMB = 16
	}
	if cfg.Threads <= 0 {
		cfg.Threads = 1
	}

	engine, err := uci.NewEngine(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("uci engine: create %s: %w", cfg.Path, err)
	}
	opts := uci.Options{
		Hash:    cfg.HashMB,
		Threads: cfg.Threads,
		MultiPV: 1,
		Ponder:  false,
		OwnBook: false,
	}
	if err := engine.SetOptions(opts); err != nil {
		engine.Close()
		return nil, fmt.Errorf("uci engine: set options: %w", err)
	}

	return &Player{
		engine: engine,
		cfg:    cfg,
		log:    cfg.Logger.With().Str("component", "uciengine").Logger(),
	}, nil
}

func (p *Player) NextMove(ctx context.Context, pos *board.Position, c board.Color) (board.Move, error) {
	if err := ctx.Err(); err != nil {
		return board.NullMove, err
	}
	fen := pos.FEN(c)
	if err := p.engine.SetFEN(fen); err != nil {
		return board.NullMove, fmt.Errorf("uci engine: set FEN: %w", err)
	}
	results, err := p.engine.GoDepth(p.cfg.Depth, uci.HighestDepthOnly)
	if err != nil {
		return board.NullMove, fmt.Errorf("uci engine: go: %w", err)
	}

	var score int
	var mate bool
	if len(results.Results) > 0 {
		best := results.Results[0]
		for _, r := range results.Results {
			if r.Depth > best.Depth {
				best = r
			}
		}
		score, mate = best.Score, best.Mate
	}

	m, err := resolve(pos, c, results.BestMove)
	if err != nil {
		return board.NullMove, err
	}
	p.log.Debug().
		Str("fen", fen).
		Str("move", m.String()).
		Int("score", score).
		Bool("mate", mate).
		Msg("engine replied")
	return m, nil
}

// resolve maps the engine's coordinate move onto a generated move. Moves this
// game cannot express (promotions, null moves) are rejected.
func resolve(pos *board.Position, c board.Color, text string) (board.Move, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "(none)" || text == "0000" {
		return board.NullMove, ErrNoBestMove
	}
	from, to, err := board.ParseSquares(text)
	if err != nil {
		return board.NullMove, fmt.Errorf("uci engine: bestmove %q: %w", text, err)
	}
	m, ok := pos.FindMove(c, from, to)
	if !ok {
		return board.NullMove, fmt.Errorf("uci engine: bestmove %q: %w", text, board.ErrMoveNotFound)
	}
	return m, nil
}

// Close stops the engine process.
func (p *Player) Close() {
	p.engine.Close()
}
