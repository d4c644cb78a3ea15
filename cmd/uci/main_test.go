package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"minimax-chess/engine"
)

func runSession(t *testing.T, input string) string {
	t.Helper()
	opts := engine.DefaultOptions()
	opts.Depth = 2
	opts.Temperature = 0
	var out bytes.Buffer
	s := newSession(&out, opts, zerolog.Nop())
	if err := s.loop(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("loop: %v", err)
	}
	return out.String()
}

func TestHandshake(t *testing.T) {
	out := runSession(t, "uci\nisready\nquit\nisready\n")
	if !strings.Contains(out, "uciok\n") || !strings.Contains(out, "readyok\n") {
		t.Fatalf("missing handshake in %q", out)
	}
	if strings.Count(out, "readyok") != 1 {
		t.Fatalf("commands after quit were processed: %q", out)
	}
}

func TestGoAnswersBestMove(t *testing.T) {
	out := runSession(t, "position startpos moves e2e4 e7e5\ngo depth 2\n")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "bestmove ") || len(strings.Fields(last)[1]) != 4 {
		t.Fatalf("unexpected final line %q", last)
	}
	if !strings.Contains(out, "info depth 2 score cp") {
		t.Fatalf("missing info line in %q", out)
	}
}

func TestGoCapturesKing(t *testing.T) {
	out := runSession(t, "position fen 3k4/8/8/8/8/8/8/K2Q4 w - - 0 1\ngo depth 1\n")
	if !strings.Contains(out, "bestmove d1d8\n") {
		t.Fatalf("expected king capture, got %q", out)
	}
}

func TestUnknownMoveReported(t *testing.T) {
	out := runSession(t, "position startpos moves e2e5\nd\n")
	if !strings.Contains(out, "info string Move e2e5 not found") {
		t.Fatalf("illegal move not reported: %q", out)
	}
	if !strings.Contains(out, "PPPPPPPP\nRNBQKBNR\n") {
		t.Fatalf("position changed after a rejected move: %q", out)
	}
}

func TestBlackToMoveAfterMoves(t *testing.T) {
	out := runSession(t, "position startpos moves g1f3\nd\n")
	if !strings.Contains(out, "Fen: rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b - - 0 1") {
		t.Fatalf("unexpected FEN in %q", out)
	}
}

func TestSetOption(t *testing.T) {
	out := runSession(t, "setoption name Depth value 0\ngo\nsetoption name Depth value -1\nsetoption name Colour value red\n")
	if !strings.Contains(out, "info depth 0 ") || !strings.Contains(out, "bestmove 0000") {
		t.Fatalf("depth option not applied: %q", out)
	}
	if !strings.Contains(out, "info string Bad value for Depth") {
		t.Fatalf("negative depth accepted: %q", out)
	}
	if !strings.Contains(out, "info string Unknown option Colour") {
		t.Fatalf("unknown option not reported: %q", out)
	}
}

func TestEvalPrintsMaterial(t *testing.T) {
	out := runSession(t, "position fen 4k3/8/8/8/8/8/8/3QK3 w - - 0 1\neval\n")
	if !strings.Contains(out, "info string material 900 eval 900") {
		t.Fatalf("unexpected eval output %q", out)
	}
}
