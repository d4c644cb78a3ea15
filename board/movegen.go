package board

// Rank and file masks.
const (
	rank1 uint64 = 0x00000000000000FF
	rank2 uint64 = 0x000000000000FF00
	rank7 uint64 = 0x00FF000000000000
	rank8 uint64 = 0xFF00000000000000

	fileA uint64 = 0x0101010101010101
	fileB uint64 = 0x0202020202020202
	fileG uint64 = 0x4040404040404040
	fileH uint64 = 0x8080808080808080
)

// Ray directions. Rooks walk 0-3, bishops 4-7, queens and kings all eight.
const (
	South = iota
	North
	West
	East
	SouthWest
	NorthEast
	SouthEast
	NorthWest
	NumDirections
)

// directionShifts holds the bit offset of one step along each ray.
var directionShifts = [NumDirections]int{-8, 8, -1, 1, -9, 9, -7, 7}

// edgeMasks marks the squares from which a ray cannot take another step.
var edgeMasks = [NumDirections]uint64{
	rank1,
	rank8,
	fileA,
	fileH,
	rank1 | fileA,
	rank8 | fileH,
	rank1 | fileH,
	rank8 | fileA,
}

// knightSteps pairs each knight offset with the start squares it may not leave from.
var knightSteps = [8]struct {
	shift int
	guard uint64
}{
	{17, rank7 | rank8 | fileH},
	{15, rank7 | rank8 | fileA},
	{6, fileA | fileB | rank8},
	{-10, fileA | fileB | rank1},
	{-17, rank1 | rank2 | fileA},
	{-15, rank1 | rank2 | fileH},
	{-6, fileG | fileH | rank1},
	{10, fileG | fileH | rank8},
}

func shift(b uint64, d int) uint64 {
	if d > 0 {
		return b << uint(d)
	}
	return b >> uint(-d)
}

// GenerateMoves returns the pseudo-legal moves of the given side.
func (p *Position) GenerateMoves(c Color) []Move {
	return p.GenerateMovesInto(make([]Move, 0, 64), c)
}

// GenerateMovesInto appends the pseudo-legal moves of the given side to dst.
// Squares are scanned from h8 down to a1. A move is rejected only when it
// lands on one of the mover's own pieces; king safety is never checked.
func (p *Position) GenerateMovesInto(dst []Move, c Color) []Move {
	p.Recompute()
	own := p.occupancy[c]
	for sq := 63; sq >= 0; sq-- {
		t := uint64(1) << uint(sq)
		if own&t == 0 {
			continue
		}
		ps := p.PieceAt(Tile(t))
		switch ps.Class() {
		case Pawn:
			dst = p.pawnMoves(dst, c, t)
		case Knight:
			dst = p.knightMoves(dst, c, t)
		default:
			dst = p.slidingMoves(dst, c, t, ps)
		}
	}
	return dst
}

func (p *Position) pawnMoves(dst []Move, c Color, start uint64) []Move {
	moved := SetOf(c, Pawn)
	all := p.occupancy[White] | p.occupancy[Black]
	them := p.occupancy[c.Other()]

	lastRank, startRank, forward := rank8, rank2, 8
	// captures toward file h, then toward file a
	capRight, capLeft := 9, 7
	if c == Black {
		lastRank, startRank, forward = rank1, rank7, -8
		capRight, capLeft = -7, -9
	}
	if start&lastRank != 0 {
		return dst
	}

	if one := shift(start, forward); one&all == 0 {
		dst = append(dst, Move{Tile(start), Tile(one), moved, NoPieceSet})
		if two := shift(start, 2*forward); start&startRank != 0 && two&all == 0 {
			dst = append(dst, Move{Tile(start), Tile(two), moved, NoPieceSet})
		}
	}
	if to := shift(start, capRight); start&fileH == 0 && to&them != 0 {
		dst = append(dst, Move{Tile(start), Tile(to), moved, p.PieceAt(Tile(to))})
	}
	if to := shift(start, capLeft); start&fileA == 0 && to&them != 0 {
		dst = append(dst, Move{Tile(start), Tile(to), moved, p.PieceAt(Tile(to))})
	}
	return dst
}

func (p *Position) knightMoves(dst []Move, c Color, start uint64) []Move {
	moved := SetOf(c, Knight)
	own := p.occupancy[c]
	for _, step := range knightSteps {
		if start&step.guard != 0 {
			continue
		}
		to := shift(start, step.shift)
		if to&own != 0 {
			continue
		}
		dst = append(dst, Move{Tile(start), Tile(to), moved, p.PieceAt(Tile(to))})
	}
	return dst
}

func (p *Position) slidingMoves(dst []Move, c Color, start uint64, moved PieceSet) []Move {
	first, last := 0, NumDirections
	switch moved.Class() {
	case Bishop:
		first = SouthWest
	case Rook:
		last = SouthWest
	}
	own, them := p.occupancy[c], p.occupancy[c.Other()]
	isKing := moved.Class() == King

	for dir := first; dir < last; dir++ {
		edge := edgeMasks[dir]
		if start&edge != 0 {
			continue
		}
		d := directionShifts[dir]
		to := shift(start, d)
		for {
			if to&own != 0 {
				break
			}
			dst = append(dst, Move{Tile(start), Tile(to), moved, p.PieceAt(Tile(to))})
			if to&them != 0 || to&edge != 0 || isKing {
				break
			}
			to = shift(to, d)
		}
	}
	return dst
}

// FindMove looks up the generated move of side c going from one tile to another.
func (p *Position) FindMove(c Color, from, to Tile) (Move, bool) {
	for _, m := range p.GenerateMoves(c) {
		if m.From == from && m.To == to {
			return m, true
		}
	}
	return NullMove, false
}
