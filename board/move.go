package board

import (
	"errors"
	"fmt"
	"strings"
)

// Move is an immutable record of a single piece move. Moved and Captured tag
// the piece sets the move mutates; Captured is NoPieceSet for a quiet move.
// The zero Move is the null move.
type Move struct {
	From     Tile
	To       Tile
	Moved    PieceSet
	Captured PieceSet
}

// NullMove is returned when there is no move to report.
var NullMove = Move{Moved: NoPieceSet, Captured: NoPieceSet}

// ErrMoveNotFound is returned when a requested (from, to) pair is not among
// the generated moves of the side to move.
var ErrMoveNotFound = errors.New("board: move not found")

// IsNull reports whether the move carries no squares.
func (m Move) IsNull() bool { return m.From == 0 }

// IsCapture reports whether the move removes an opposing piece.
func (m Move) IsCapture() bool { return m.Captured != NoPieceSet && !m.IsNull() }

// String produces coordinate notation, e.g. "e2e4"; "0000" for the null move.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// ParseSquares splits a coordinate move such as "e2e4" into its two tiles.
// A trailing promotion letter is rejected since pawns never promote here.
func ParseSquares(s string) (from, to Tile, err error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, 0, fmt.Errorf("%w: move %q", ErrBadSquare, s)
	}
	if from, err = ParseTile(s[0:2]); err != nil {
		return 0, 0, err
	}
	if to, err = ParseTile(s[2:4]); err != nil {
		return 0, 0, err
	}
	return from, to, nil
}
