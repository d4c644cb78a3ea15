// Package game drives a session between two players: it owns the position,
// the side to move, the move counter and the record of the game.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"minimax-chess/board"
	"minimax-chess/engine"
)

var (
	// ErrGameOver is returned when a move is requested after the game ended.
	ErrGameOver = errors.New("game: game is over")
	// ErrBadMode is returned by ParseMode.
	ErrBadMode = errors.New("game: unknown mode")
)

// Mode selects who plays whom.
type Mode int

const (
	// HumanVsEngine: a human plays White against the engine.
	HumanVsEngine Mode = iota
	// EngineVsEngine: the engine plays itself until a king falls or the move cap.
	EngineVsEngine
	// EngineVsUCI: the engine plays White against an external UCI engine.
	EngineVsUCI
)

func (m Mode) String() string {
	switch m {
	case HumanVsEngine:
		return "human"
	case EngineVsEngine:
		return "self"
	case EngineVsUCI:
		return "uci"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	for m := HumanVsEngine; m <= EngineVsUCI; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadMode, s)
}

// Outcome is the state of a game as seen after the last ply.
type Outcome int

const (
	Ongoing Outcome = iota
	WhiteWins
	BlackWins
	// NoMoves: the side to move has no pseudo-legal move.
	NoMoves
	// MoveCap: the ply limit was reached.
	MoveCap
)

var outcomeNames = [...]string{"ongoing", "white-wins", "black-wins", "no-moves", "move-cap"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// ParseOutcome accepts the names printed by Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	for i, name := range outcomeNames {
		if name == s {
			return Outcome(i), nil
		}
	}
	return Ongoing, fmt.Errorf("unknown outcome %q", s)
}

// Player picks the move for side c. The position it receives is a copy it may
// search freely but must hand back unchanged.
type Player interface {
	NextMove(ctx context.Context, pos *board.Position, c board.Color) (board.Move, error)
}

// Config describes how a game starts.
type Config struct {
	// Start is the initial position; nil means the standard opening.
	Start  *board.Position
	ToMove board.Color
	// MaxMoves caps the number of plies; 0 plays until a king falls.
	MaxMoves int
	Log      zerolog.Logger
}

// Game is a single session. It is owned by one goroutine.
type Game struct {
	Position  *board.Position
	ToMove    board.Color
	MoveCount int
	MaxMoves  int
	Record    *Record

	log zerolog.Logger
	// origin square of a pending click, 0 when none
	selected board.Tile
	material engine.Evaluator
}

// New sets up a game from cfg.
func New(cfg Config) *Game {
	pos := board.NewPosition()
	if cfg.Start != nil {
		cp := *cfg.Start
		pos = &cp
	}
	pos.Recompute()
	return &Game{
		Position: pos,
		ToMove:   cfg.ToMove,
		MaxMoves: cfg.MaxMoves,
		Record:   NewRecord(pos.FEN(cfg.ToMove)),
		log:      cfg.Log.With().Str("component", "game").Logger(),
	}
}

// Outcome reports whether the game has ended and how.
func (g *Game) Outcome() Outcome {
	switch {
	case !g.Position.HasKing(board.White):
		return BlackWins
	case !g.Position.HasKing(board.Black):
		return WhiteWins
	case g.MaxMoves > 0 && g.MoveCount >= g.MaxMoves:
		return MoveCap
	case len(g.Position.GenerateMoves(g.ToMove)) == 0:
		return NoMoves
	}
	return Ongoing
}

// Material is the jitter-free balance of the current position.
func (g *Game) Material() int32 { return g.material.Material(g.Position) }

// Step asks the player whose turn it is for a move and commits it.
func (g *Game) Step(ctx context.Context, white, black Player) error {
	if g.Outcome() != Ongoing {
		return ErrGameOver
	}
	player := white
	if g.ToMove == board.Black {
		player = black
	}

	view := *g.Position
	m, err := player.NextMove(ctx, &view, g.ToMove)
	if err != nil {
		return fmt.Errorf("%s to move: %w", g.ToMove, err)
	}
	// only the squares of m are trusted; piece tags come from our generator
	legal, ok := g.Position.FindMove(g.ToMove, m.From, m.To)
	if !ok {
		return fmt.Errorf("%s played %s: %w", g.ToMove, m, board.ErrMoveNotFound)
	}
	g.Position.ApplyMove(legal)
	return g.commit(legal)
}

// Run plays plies until the game ends or a player fails.
func (g *Game) Run(ctx context.Context, white, black Player) (Outcome, error) {
	for {
		if o := g.Outcome(); o != Ongoing {
			g.Record.Result = o
			g.log.Info().
				Str("outcome", o.String()).
				Int("plies", g.MoveCount).
				Int32("material", g.Material()).
				Msg("game over")
			return o, nil
		}
		if err := g.Step(ctx, white, black); err != nil {
			return Ongoing, err
		}
	}
}

// Select feeds one click. The first click stores the origin square; the
// second tries the move from the origin to t for the side to move and clears
// the pending origin either way. A rejected move leaves the game untouched
// and returns an error wrapping board.ErrMoveNotFound.
func (g *Game) Select(t board.Tile) (board.Move, bool, error) {
	if !t.Valid() {
		return board.NullMove, false, fmt.Errorf("%w: click on %#x", board.ErrBadSquare, uint64(t))
	}
	if g.Outcome() != Ongoing {
		g.selected = 0
		return board.NullMove, false, ErrGameOver
	}
	if g.selected == 0 {
		g.selected = t
		return board.NullMove, false, nil
	}
	from := g.selected
	g.selected = 0
	m, err := g.Position.TryMove(g.ToMove, from, t)
	if err != nil {
		return board.NullMove, false, err
	}
	if err := g.commit(m); err != nil {
		return m, true, err
	}
	return m, true, nil
}

// Selected returns the pending origin square, 0 when there is none.
func (g *Game) Selected() board.Tile { return g.selected }

// commit books a move that has already been applied to the position.
func (g *Game) commit(m board.Move) error {
	if err := g.Position.Validate(); err != nil {
		return fmt.Errorf("after %s: %w", m, err)
	}
	g.MoveCount++
	ply := Ply{
		Number:   g.MoveCount,
		Color:    g.ToMove,
		Move:     m.String(),
		Material: g.Material(),
		Hash:     g.Position.Hash(),
	}
	g.Record.Add(ply)
	g.log.Debug().
		Int("ply", ply.Number).
		Str("side", ply.Color.String()).
		Str("move", ply.Move).
		Int32("material", ply.Material).
		Msg("move played")
	g.ToMove = g.ToMove.Other()
	return nil
}
