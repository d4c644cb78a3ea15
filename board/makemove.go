package board

import "fmt"

// ApplyMove plays a move, and plays it back when called again with the same
// move. Every step is an XOR toggle on a distinct bit, so the sequence is its
// own inverse: from off the moved set, to off the captured set, to on the
// moved set. Occupancy is toggled the same way and stays the union of the sets.
func (p *Position) ApplyMove(m Move) {
	from, to := uint64(m.From), uint64(m.To)
	us := m.Moved.Color()

	p.sets[m.Moved] ^= from
	p.occupancy[us] ^= from
	if m.Captured != NoPieceSet {
		p.sets[m.Captured] ^= to
		p.occupancy[m.Captured.Color()] ^= to
	}
	p.sets[m.Moved] ^= to
	p.occupancy[us] ^= to
}

// TryMove commits the generated move of side c from one tile to another.
// When no such move exists the position is left untouched and the returned
// error wraps ErrMoveNotFound.
func (p *Position) TryMove(c Color, from, to Tile) (Move, error) {
	m, ok := p.FindMove(c, from, to)
	if !ok {
		return NullMove, fmt.Errorf("%w: %s%s for %s", ErrMoveNotFound, from, to, c)
	}
	p.ApplyMove(m)
	return m, nil
}

// Apply plays a move and returns the closure that takes it back.
func (p *Position) Apply(m Move) func() {
	p.ApplyMove(m)
	return func() { p.ApplyMove(m) }
}
