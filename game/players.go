package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"minimax-chess/board"
	"minimax-chess/engine"
)

// ErrNoMove is returned by a player that has nothing to play.
var ErrNoMove = errors.New("game: no move available")

// EnginePlayer plays the moves found by a Searcher.
type EnginePlayer struct {
	Searcher *engine.Searcher
	Depth    int
	// Workers > 1 splits the root moves across goroutines.
	Workers int
}

func (e *EnginePlayer) NextMove(ctx context.Context, pos *board.Position, c board.Color) (board.Move, error) {
	maximizing := c == board.White
	var (
		m   board.Move
		err error
	)
	if e.Workers > 1 {
		m, _, err = e.Searcher.SearchParallel(ctx, pos, e.Depth, maximizing, e.Workers)
	} else {
		m, _, err = e.Searcher.Search(ctx, pos, e.Depth, maximizing)
	}
	if err != nil {
		return board.NullMove, err
	}
	if m.IsNull() {
		return board.NullMove, ErrNoMove
	}
	return m, nil
}

// ConsolePlayer reads coordinate moves ("e2e4") line by line. Unparsable or
// unavailable moves are reported on Out and the player asks again.
type ConsolePlayer struct {
	In  *bufio.Scanner
	Out io.Writer
}

// NewConsolePlayer reads from r and prompts on w.
func NewConsolePlayer(r io.Reader, w io.Writer) *ConsolePlayer {
	return &ConsolePlayer{In: bufio.NewScanner(r), Out: w}
}

func (cp *ConsolePlayer) NextMove(ctx context.Context, pos *board.Position, c board.Color) (board.Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return board.NullMove, err
		}
		fmt.Fprintf(cp.Out, "%s to move> ", c)
		if !cp.In.Scan() {
			if err := cp.In.Err(); err != nil {
				return board.NullMove, err
			}
			return board.NullMove, io.EOF
		}
		line := strings.TrimSpace(cp.In.Text())
		if line == "" {
			continue
		}
		from, to, err := board.ParseSquares(line)
		if err != nil {
			fmt.Fprintf(cp.Out, "%v\n", err)
			continue
		}
		m, ok := pos.FindMove(c, from, to)
		if !ok {
			fmt.Fprintf(cp.Out, "%s is not available\n", line)
			continue
		}
		return m, nil
	}
}

// ScriptedPlayer replays a fixed list of coordinate moves.
type ScriptedPlayer struct {
	Moves []string
	next  int
}

func (sp *ScriptedPlayer) NextMove(_ context.Context, pos *board.Position, c board.Color) (board.Move, error) {
	if sp.next >= len(sp.Moves) {
		return board.NullMove, ErrNoMove
	}
	s := sp.Moves[sp.next]
	sp.next++
	from, to, err := board.ParseSquares(s)
	if err != nil {
		return board.NullMove, err
	}
	m, ok := pos.FindMove(c, from, to)
	if !ok {
		return board.NullMove, fmt.Errorf("%s: %w", s, board.ErrMoveNotFound)
	}
	return m, nil
}
