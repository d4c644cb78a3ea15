package board_test

import (
	"errors"
	"testing"

	"minimax-chess/board"
)

func TestParseFENStart(t *testing.T) {
	p, side, err := board.ParseFEN(board.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if side != board.White {
		t.Fatalf("expected white to move")
	}
	if *p != *board.NewPosition() {
		t.Fatalf("FEN start differs from NewPosition:\n%s", p)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b - - 0 1",
		"8/8/8/3k4/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		p, side, err := board.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := p.FEN(side); got != fen {
			t.Fatalf("round trip: got %q want %q", got, fen)
		}
	}
}

func TestFENSideOnly(t *testing.T) {
	_, side, err := board.ParseFEN("8/8/8/3k4/8/8/8/4K3 b")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if side != board.Black {
		t.Fatalf("expected black to move")
	}
}

func TestParseFENRejects(t *testing.T) {
	bad := []string{
		"",
		"8/8/8/8/8/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x - - 0 1",
	}
	for _, fen := range bad {
		if _, _, err := board.ParseFEN(fen); !errors.Is(err, board.ErrBadFEN) {
			t.Errorf("ParseFEN(%q): expected ErrBadFEN, got %v", fen, err)
		}
	}
}

func TestDumpRoundTrip(t *testing.T) {
	p := board.NewPosition()
	p.ApplyMove(board.Move{From: tile(t, "g1"), To: tile(t, "f3"), Moved: board.WhiteKnights, Captured: board.NoPieceSet})
	q, err := board.ParseDump(p.String())
	if err != nil {
		t.Fatalf("ParseDump: %v", err)
	}
	if *q != *p {
		t.Fatalf("dump round trip mismatch:\n%s\nvs\n%s", q, p)
	}
	if _, err := board.ParseDump("rnbqkbnr\n"); !errors.Is(err, board.ErrBadDump) {
		t.Fatalf("expected ErrBadDump for short dump, got %v", err)
	}
	if _, err := board.ParseDump(startDump[:len(startDump)-2] + "X\n"); !errors.Is(err, board.ErrBadDump) {
		t.Fatalf("expected ErrBadDump for bad piece, got %v", err)
	}
}
