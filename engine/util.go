package engine

import (
	"golang.org/x/exp/constraints"

	"minimax-chess/board"
)

// Min returns the smaller of x or y.
func Min[T constraints.Ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

// Max returns the larger of x or y.
func Max[T constraints.Ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}

// sideOf maps the minimax flag to the side to move.
func sideOf(maximizing bool) board.Color {
	if maximizing {
		return board.White
	}
	return board.Black
}
