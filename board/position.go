package board

import (
	"errors"
	"fmt"
	"math/bits"
)

// Color is the side that owns a piece set. White moves first.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// PieceClass is a colorless piece kind.
type PieceClass uint8

const (
	Pawn PieceClass = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NumClasses
)

// PieceSet tags one of the twelve (color, class) bitboards of a Position.
// The tag is color*6 + class, so White sets come first.
type PieceSet int8

const (
	WhitePawns PieceSet = iota
	WhiteKnights
	WhiteBishops
	WhiteRooks
	WhiteQueens
	WhiteKings
	BlackPawns
	BlackKnights
	BlackBishops
	BlackRooks
	BlackQueens
	BlackKings

	NumPieceSets = 12

	// NoPieceSet marks the absence of a captured piece.
	NoPieceSet PieceSet = -1
)

// SetOf combines a side and a class into a set tag.
func SetOf(c Color, pc PieceClass) PieceSet {
	return PieceSet(int(c)*int(NumClasses) + int(pc))
}

// Color returns the side owning the set.
func (ps PieceSet) Color() Color {
	if ps >= BlackPawns {
		return Black
	}
	return White
}

// Class returns the colorless class of the set.
func (ps PieceSet) Class() PieceClass { return PieceClass(ps % PieceSet(NumClasses)) }

// Char returns the dump/FEN letter: upper case for White, lower case for Black.
func (ps PieceSet) Char() byte {
	if ps == NoPieceSet {
		return '.'
	}
	ch := "PNBRQK"[ps.Class()]
	if ps.Color() == Black {
		ch += 'a' - 'A'
	}
	return ch
}

func (ps PieceSet) String() string {
	if ps == NoPieceSet {
		return "none"
	}
	return string(ps.Char())
}

func setFromChar(ch byte) PieceSet {
	for ps := WhitePawns; ps < NumPieceSets; ps++ {
		if ps.Char() == ch {
			return ps
		}
	}
	return NoPieceSet
}

// Standard opening placement, a1 = bit 0.
const (
	startWhitePawns   uint64 = 0x000000000000FF00
	startWhiteKnights uint64 = 0x0000000000000042
	startWhiteBishops uint64 = 0x0000000000000024
	startWhiteRooks   uint64 = 0x0000000000000081
	startWhiteQueens  uint64 = 0x0000000000000008
	startWhiteKings   uint64 = 0x0000000000000010

	startBlackPawns   uint64 = 0x00FF000000000000
	startBlackKnights uint64 = 0x4200000000000000
	startBlackBishops uint64 = 0x2400000000000000
	startBlackRooks   uint64 = 0x8100000000000000
	startBlackQueens  uint64 = 0x0800000000000000
	startBlackKings   uint64 = 0x1000000000000000
)

var (
	// ErrOverlap reports two piece sets claiming the same square.
	ErrOverlap = errors.New("board: square claimed by two piece sets")
	// ErrStaleOccupancy reports occupancy masks that differ from the piece sets.
	ErrStaleOccupancy = errors.New("board: stale occupancy mask")
)

// Position is the bitboard state: twelve piece sets plus the two derived
// side occupancy masks. A Position value is a full independent copy.
type Position struct {
	sets [NumPieceSets]uint64

	// occupancy[White], occupancy[Black]; always the union of that side's six sets
	occupancy [2]uint64
}

// NewPosition returns the standard opening position.
func NewPosition() *Position {
	p := &Position{}
	p.Reset()
	return p
}

// Reset puts every piece back on its opening square.
func (p *Position) Reset() {
	p.sets = [NumPieceSets]uint64{
		startWhitePawns, startWhiteKnights, startWhiteBishops,
		startWhiteRooks, startWhiteQueens, startWhiteKings,
		startBlackPawns, startBlackKnights, startBlackBishops,
		startBlackRooks, startBlackQueens, startBlackKings,
	}
	p.Recompute()
}

// Empty returns a position with no pieces. Used to build synthetic positions.
func Empty() *Position { return &Position{} }

// Recompute rebuilds both occupancy masks from the piece sets.
func (p *Position) Recompute() {
	var occ [2]uint64
	for ps := WhitePawns; ps < NumPieceSets; ps++ {
		occ[ps.Color()] |= p.sets[ps]
	}
	p.occupancy = occ
}

// Set returns the bitboard of one piece set.
func (p *Position) Set(ps PieceSet) uint64 { return p.sets[ps] }

// Occupancy returns every square held by the given side.
func (p *Position) Occupancy(c Color) uint64 { return p.occupancy[c] }

// Occupied returns every occupied square.
func (p *Position) Occupied() uint64 { return p.occupancy[White] | p.occupancy[Black] }

// PieceAt returns the set owning the tile, or NoPieceSet when the tile is empty.
func (p *Position) PieceAt(t Tile) PieceSet {
	for ps := WhitePawns; ps < NumPieceSets; ps++ {
		if p.sets[ps]&uint64(t) != 0 {
			return ps
		}
	}
	return NoPieceSet
}

// HasKing reports whether the side still has a king on the board.
func (p *Position) HasKing(c Color) bool { return p.sets[SetOf(c, King)] != 0 }

// Count returns the number of pieces in a set.
func (p *Position) Count(ps PieceSet) int { return bits.OnesCount64(p.sets[ps]) }

// Put places a piece on a tile, removing whatever stood there.
func (p *Position) Put(ps PieceSet, t Tile) {
	for i := range p.sets {
		p.sets[i] &^= uint64(t)
	}
	p.sets[ps] |= uint64(t)
	p.Recompute()
}

// Clear empties a tile.
func (p *Position) Clear(t Tile) {
	for i := range p.sets {
		p.sets[i] &^= uint64(t)
	}
	p.Recompute()
}

// Validate checks that no square is claimed twice and that the occupancy
// masks match the piece sets.
func (p *Position) Validate() error {
	var seen uint64
	var occ [2]uint64
	for ps := WhitePawns; ps < NumPieceSets; ps++ {
		set := p.sets[ps]
		if dup := seen & set; dup != 0 {
			return fmt.Errorf("%w: %s on %s", ErrOverlap, ps, Tile(dup&-dup))
		}
		seen |= set
		occ[ps.Color()] |= set
	}
	if occ != p.occupancy {
		return fmt.Errorf("%w: have %#x/%#x want %#x/%#x", ErrStaleOccupancy,
			p.occupancy[White], p.occupancy[Black], occ[White], occ[Black])
	}
	return nil
}
