package bench

import (
	"testing"

	"minimax-chess/board"
)

const (
	fenKiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	fenPos6     = "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
)

func benchGenerateMoves(b *testing.B, fen string) {
	pos, side, err := board.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	buf := make([]board.Move, 0, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = pos.GenerateMovesInto(buf, side)
		buf = buf[:0]
	}
}

func BenchmarkGenerateMoves_Initial(b *testing.B) {
	benchGenerateMoves(b, board.FENStartPos)
}

func BenchmarkGenerateMoves_Kiwipete(b *testing.B) {
	benchGenerateMoves(b, fenKiwipete)
}

func BenchmarkGenerateMoves_Pos6(b *testing.B) {
	benchGenerateMoves(b, fenPos6)
}

func benchApplyUndo(b *testing.B, fen string) {
	pos, side, err := board.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	moves := pos.GenerateMoves(side)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			pos.ApplyMove(m)
			pos.ApplyMove(m)
		}
	}
}

func BenchmarkApplyUndo_Initial(b *testing.B) {
	benchApplyUndo(b, board.FENStartPos)
}

func BenchmarkApplyUndo_Kiwipete(b *testing.B) {
	benchApplyUndo(b, fenKiwipete)
}
