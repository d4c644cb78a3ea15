package engine_test

import (
	"math/rand"
	"testing"

	"minimax-chess/board"
	"minimax-chess/engine"
)

func mustTile(t *testing.T, s string) board.Tile {
	t.Helper()
	tl, err := board.ParseTile(s)
	if err != nil {
		t.Fatalf("ParseTile(%q): %v", s, err)
	}
	return tl
}

func TestEvaluateMissingKing(t *testing.T) {
	ev := engine.NewEvaluator(rand.NewSource(7), engine.DefaultTemperature)

	p := board.NewPosition()
	p.Clear(mustTile(t, "e8"))
	if got := ev.Evaluate(p); got != engine.MaxScore {
		t.Fatalf("no black king: got %d, want MaxScore", got)
	}

	p = board.NewPosition()
	p.Clear(mustTile(t, "e1"))
	// White is a queen up but has no king
	p.Clear(mustTile(t, "d8"))
	if got := ev.Evaluate(p); got != engine.MinScore {
		t.Fatalf("no white king: got %d, want MinScore", got)
	}

	p.Clear(mustTile(t, "e8"))
	if got := ev.Evaluate(p); got != engine.MinScore {
		t.Fatalf("no kings: got %d, want MinScore", got)
	}
}

func TestMaterial(t *testing.T) {
	ev := engine.NewEvaluator(rand.NewSource(1), 0)
	tests := []struct {
		name  string
		clear []string
		want  int32
	}{
		{"start", nil, 0},
		{"black queen gone", []string{"d8"}, 900},
		{"white rook and knight gone", []string{"a1", "b1"}, -800},
		{"pawns traded", []string{"e2", "d7"}, 0},
		{"bishop for pawn", []string{"c1", "h7"}, -200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := board.NewPosition()
			for _, sq := range tt.clear {
				p.Clear(mustTile(t, sq))
			}
			if got := ev.Material(p); got != tt.want {
				t.Fatalf("Material = %d, want %d", got, tt.want)
			}
			if got := ev.Evaluate(p); got != tt.want {
				t.Fatalf("Evaluate at temperature 0 = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestJitterBounds(t *testing.T) {
	ev := engine.NewEvaluator(rand.NewSource(3), engine.DefaultTemperature)
	p := board.NewPosition()
	lo := int32(1)
	hi := int32(float64(engine.DefaultJitterMax) * engine.DefaultTemperature)
	seen := make(map[int32]bool)
	for i := 0; i < 2000; i++ {
		v := ev.Evaluate(p)
		if v < lo || v > hi {
			t.Fatalf("jitter %d outside [%d, %d]", v, lo, hi)
		}
		seen[v] = true
	}
	if len(seen) < 10 {
		t.Fatalf("jitter looks constant: %d distinct values", len(seen))
	}
}

func TestSeededEvaluatorsAgree(t *testing.T) {
	a := engine.NewEvaluator(rand.NewSource(42), engine.DefaultTemperature)
	b := engine.NewEvaluator(rand.NewSource(42), engine.DefaultTemperature)
	p := board.NewPosition()
	for i := 0; i < 100; i++ {
		if x, y := a.Evaluate(p), b.Evaluate(p); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := engine.DefaultOptions().Validate(); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}
	bad := []func(*engine.Options){
		func(o *engine.Options) { o.Depth = -1 },
		func(o *engine.Options) { o.Temperature = -0.5 },
		func(o *engine.Options) { o.JitterMax = 0 },
		func(o *engine.Options) { o.MaxMoves = -3 },
		func(o *engine.Options) { o.Workers = 0 },
	}
	for i, mutate := range bad {
		o := engine.DefaultOptions()
		mutate(&o)
		if err := o.Validate(); err == nil {
			t.Errorf("case %d: expected an error", i)
		}
	}
	d := engine.DefaultOptions()
	if d.Depth != 4 || d.Temperature != 1.5 || d.JitterMax != 100 || d.MaxMoves != 1000 {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}
