package board_test

import (
	"errors"
	"testing"

	"minimax-chess/board"
)

func TestApplyMoveRoundTrip(t *testing.T) {
	fens := []string{
		board.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
	}
	for _, fen := range fens {
		p, _, err := board.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN: %v", err)
		}
		for _, c := range []board.Color{board.White, board.Black} {
			orig := *p
			hash, dump := p.Hash(), p.String()
			for _, m := range p.GenerateMoves(c) {
				p.ApplyMove(m)
				if err := p.Validate(); err != nil {
					t.Fatalf("after %s: %v", m, err)
				}
				if p.PieceAt(m.To) != m.Moved || p.PieceAt(m.From) != board.NoPieceSet {
					t.Fatalf("after %s: piece not moved", m)
				}
				p.ApplyMove(m)
				if *p != orig {
					t.Fatalf("%s not undone", m)
				}
				if p.Hash() != hash || p.String() != dump {
					t.Fatalf("%s: hash or dump changed after undo", m)
				}
			}
		}
	}
}

func TestCaptureRemovesPiece(t *testing.T) {
	p := board.Empty()
	d1, d8 := tile(t, "d1"), tile(t, "d8")
	p.Put(board.WhiteQueens, d1)
	p.Put(board.BlackKings, d8)
	m, err := p.TryMove(board.White, d1, d8)
	if err != nil {
		t.Fatalf("TryMove: %v", err)
	}
	if m.Captured != board.BlackKings {
		t.Fatalf("expected king capture, got %s", m.Captured)
	}
	if p.HasKing(board.Black) {
		t.Fatalf("black king still on the board")
	}
	if p.Occupancy(board.Black) != 0 || p.Occupancy(board.White) != uint64(d8) {
		t.Fatalf("occupancy not updated: %#x / %#x", p.Occupancy(board.White), p.Occupancy(board.Black))
	}
	undo := p.Apply(m)
	if !p.HasKing(board.Black) || p.PieceAt(d1) != board.WhiteQueens {
		t.Fatalf("capture not taken back")
	}
	undo()
	if p.HasKing(board.Black) {
		t.Fatalf("undo closure did not replay the capture")
	}
}

func TestTryMoveRejectsIllegal(t *testing.T) {
	p := board.NewPosition()
	before := *p
	cases := [][2]string{
		{"e2", "e5"}, // too far
		{"e7", "e5"}, // not white's piece
		{"e4", "e5"}, // empty square
		{"d1", "d2"}, // own piece
	}
	for _, tc := range cases {
		_, err := p.TryMove(board.White, tile(t, tc[0]), tile(t, tc[1]))
		if !errors.Is(err, board.ErrMoveNotFound) {
			t.Fatalf("%s%s: expected ErrMoveNotFound, got %v", tc[0], tc[1], err)
		}
		if *p != before {
			t.Fatalf("%s%s: position changed on rejected move", tc[0], tc[1])
		}
	}
	m, err := p.TryMove(board.White, tile(t, "e2"), tile(t, "e4"))
	if err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	if m.String() != "e2e4" {
		t.Fatalf("unexpected move string %q", m)
	}
}

func TestParseSquares(t *testing.T) {
	from, to, err := board.ParseSquares("g1f3")
	if err != nil {
		t.Fatalf("ParseSquares: %v", err)
	}
	if from.String() != "g1" || to.String() != "f3" {
		t.Fatalf("got %s %s", from, to)
	}
	for _, bad := range []string{"", "e2", "e7e8q", "z1a1"} {
		if _, _, err := board.ParseSquares(bad); !errors.Is(err, board.ErrBadSquare) {
			t.Errorf("ParseSquares(%q): expected ErrBadSquare, got %v", bad, err)
		}
	}
	if board.NullMove.String() != "0000" || !board.NullMove.IsNull() {
		t.Fatalf("null move misreported")
	}
}
