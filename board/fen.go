package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// FENStartPos is the FEN string for the standard initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	// ErrBadFEN is returned for FEN strings that cannot be loaded.
	ErrBadFEN = errors.New("board: invalid FEN")
	// ErrBadDump is returned for malformed text dumps.
	ErrBadDump = errors.New("board: invalid board dump")
)

// ParseFEN loads the piece placement and side to move of a FEN string.
// Castling, en passant and clock fields are accepted and ignored.
func ParseFEN(fen string) (pos *Position, toMove Color, err error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, White, fmt.Errorf("%w: empty string", ErrBadFEN)
	}
	if err := checkPlacement(fields[0]); err != nil {
		return nil, White, err
	}
	side := "w"
	if len(fields) > 1 {
		side = fields[1]
	}
	if side != "w" && side != "b" {
		return nil, White, fmt.Errorf("%w: side to move %q", ErrBadFEN, side)
	}

	// dragontoothmg panics on input it does not like; hand it a clean six-field string.
	defer func() {
		if r := recover(); r != nil {
			pos, toMove, err = nil, White, fmt.Errorf("%w: %v", ErrBadFEN, r)
		}
	}()
	dt := dragontoothmg.ParseFen(strings.Join([]string{fields[0], side, "-", "-", "0", "1"}, " "))

	pos = Empty()
	for _, s := range []struct {
		c   Color
		bbs dragontoothmg.Bitboards
	}{{White, dt.White}, {Black, dt.Black}} {
		pos.sets[SetOf(s.c, Pawn)] = s.bbs.Pawns
		pos.sets[SetOf(s.c, Knight)] = s.bbs.Knights
		pos.sets[SetOf(s.c, Bishop)] = s.bbs.Bishops
		pos.sets[SetOf(s.c, Rook)] = s.bbs.Rooks
		pos.sets[SetOf(s.c, Queen)] = s.bbs.Queens
		pos.sets[SetOf(s.c, King)] = s.bbs.Kings
	}
	pos.Recompute()
	if !dt.Wtomove {
		toMove = Black
	}
	return pos, toMove, nil
}

// checkPlacement validates the first FEN field: eight ranks of eight squares.
func checkPlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: %d ranks", ErrBadFEN, len(ranks))
	}
	for i, r := range ranks {
		n := 0
		for j := 0; j < len(r); j++ {
			ch := r[j]
			switch {
			case ch >= '1' && ch <= '8':
				n += int(ch - '0')
			case setFromChar(ch) != NoPieceSet:
				n++
			default:
				return fmt.Errorf("%w: unexpected %q in rank %d", ErrBadFEN, ch, 8-i)
			}
		}
		if n != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrBadFEN, 8-i, n)
		}
	}
	return nil
}

// FEN renders the placement and side to move. Castling and en passant are
// always "-" since neither exists in this game.
func (p *Position) FEN(toMove Color) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			ps := p.PieceAt(TileAt(rank, file))
			if ps == NoPieceSet {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(ps.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	if toMove == Black {
		sb.WriteString(" b - - 0 1")
	} else {
		sb.WriteString(" w - - 0 1")
	}
	return sb.String()
}

// String dumps the board as eight lines, rank 8 first and file a first:
// upper case for White, lower case for Black, '.' for an empty square.
func (p *Position) String() string {
	var sb strings.Builder
	sb.Grow(72)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sb.WriteByte(p.PieceAt(TileAt(rank, file)).Char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseDump is the inverse of String. Blank lines and surrounding spaces are ignored.
func ParseDump(s string) (*Position, error) {
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) != 8 {
		return nil, fmt.Errorf("%w: %d rows", ErrBadDump, len(rows))
	}
	p := Empty()
	for i, row := range rows {
		if len(row) != 8 {
			return nil, fmt.Errorf("%w: row %d has %d squares", ErrBadDump, i+1, len(row))
		}
		rank := 7 - i
		for file := 0; file < 8; file++ {
			ch := row[file]
			if ch == '.' {
				continue
			}
			ps := setFromChar(ch)
			if ps == NoPieceSet {
				return nil, fmt.Errorf("%w: unexpected %q", ErrBadDump, ch)
			}
			p.sets[ps] |= uint64(TileAt(rank, file))
		}
	}
	p.Recompute()
	return p, nil
}
