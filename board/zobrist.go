package board

import (
	"math/bits"
	"math/rand"
)

// zobristPiece holds one key per (piece set, square).
var zobristPiece [NumPieceSets][64]uint64

func init() {
	initZobrist()
}

func initZobrist() {
	// fixed seed so hashes are stable across runs and in game records
	rnd := rand.New(rand.NewSource(0xC0DE))
	for ps := range zobristPiece {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[ps][sq] = rnd.Uint64()
		}
	}
}

// Hash returns the Zobrist key of the piece placement. Side to move is not
// part of the position and therefore not hashed.
func (p *Position) Hash() uint64 {
	var h uint64
	for ps := range p.sets {
		set := p.sets[ps]
		for set != 0 {
			sq := bits.TrailingZeros64(set)
			set &= set - 1
			h ^= zobristPiece[ps][sq]
		}
	}
	return h
}
