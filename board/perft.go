package board

// Perft counts the leaf nodes of the pseudo-legal move tree of the given
// depth, side c moving first. King captures are counted like any other move.
func Perft(p *Position, c Color, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := &perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(p, c, depth, pc)
}

type perftCtx struct {
	bufs [][]Move
}

// bufFor returns a per-depth scratch buffer so recursion does not allocate.
func (pc *perftCtx) bufFor(depth int) []Move {
	if pc.bufs[depth] == nil {
		pc.bufs[depth] = make([]Move, 0, 128)
	}
	return pc.bufs[depth][:0]
}

func perftRec(p *Position, c Color, depth int, pc *perftCtx) uint64 {
	moves := p.GenerateMovesInto(pc.bufFor(depth), c)
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		p.ApplyMove(m)
		nodes += perftRec(p, c.Other(), depth-1, pc)
		p.ApplyMove(m)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(p *Position, c Color, depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range p.GenerateMoves(c) {
		p.ApplyMove(m)
		out[m] = Perft(p, c.Other(), depth-1)
		p.ApplyMove(m)
	}
	return out
}
