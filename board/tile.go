package board

import (
	"errors"
	"fmt"
	"math/bits"
)

// Tile is a bitboard with exactly one bit set, naming a single square.
// Bit index = rank*8 + file with a1 = 0 and h8 = 63.
type Tile uint64

// ErrBadSquare is returned for malformed algebraic squares.
var ErrBadSquare = errors.New("board: invalid square")

// TileAt returns the tile for a rank and file, both 0-7.
func TileAt(rank, file int) Tile { return Tile(1) << uint(rank*8+file) }

// SquareTile returns the tile for a square index 0-63.
func SquareTile(sq int) Tile { return Tile(1) << uint(sq) }

// Index returns the square index of the tile.
func (t Tile) Index() int { return bits.TrailingZeros64(uint64(t)) }

// Rank returns 0 for rank 1 up to 7 for rank 8.
func (t Tile) Rank() int { return t.Index() / 8 }

// File returns 0 for file a up to 7 for file h.
func (t Tile) File() int { return t.Index() % 8 }

// Valid reports whether exactly one bit is set.
func (t Tile) Valid() bool { return t != 0 && t&(t-1) == 0 }

// String gives the algebraic name, e.g. "e2".
func (t Tile) String() string {
	if !t.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(t.File()), '1' + byte(t.Rank())})
}

// ParseTile parses an algebraic square such as "e2".
func ParseTile(s string) (Tile, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadSquare, s)
	}
	file, rank := s[0], s[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, fmt.Errorf("%w: %q", ErrBadSquare, s)
	}
	return TileAt(int(rank-'1'), int(file-'a')), nil
}
