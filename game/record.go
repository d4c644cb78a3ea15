package game

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"minimax-chess/board"
)

// ErrBadRecord is returned when a game record cannot be parsed.
var ErrBadRecord = errors.New("game: malformed record")

const recordHeader = "# minimax-chess game record"

// Ply is one committed move.
type Ply struct {
	Number   int
	Color    board.Color
	Move     string
	Material int32
	Hash     uint64
}

// Record is the ordered list of plies of one game plus its start and result.
type Record struct {
	StartFEN string
	Plies    []Ply
	Result   Outcome
}

// NewRecord starts an empty record from the given FEN.
func NewRecord(startFEN string) *Record {
	return &Record{StartFEN: startFEN}
}

func (r *Record) Add(p Ply) { r.Plies = append(r.Plies, p) }

// WriteTo writes the plain-text form: a header, the start FEN, one line per
// ply and the result.
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, recordHeader)
	fmt.Fprintf(&buf, "start %s\n", r.StartFEN)
	for _, p := range r.Plies {
		fmt.Fprintf(&buf, "%d %s %s %d %016x\n", p.Number, p.Color, p.Move, p.Material, p.Hash)
	}
	fmt.Fprintf(&buf, "result %s\n", r.Result)
	return buf.WriteTo(w)
}

// ReadRecord parses the plain-text form written by WriteTo.
func ReadRecord(rd io.Reader) (*Record, error) {
	sc := bufio.NewScanner(rd)
	rec := &Record{}
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "start":
			rec.StartFEN = strings.TrimSpace(strings.TrimPrefix(line, "start"))
		case "result":
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: line %d: %q", ErrBadRecord, lineNo, line)
			}
			o, err := ParseOutcome(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadRecord, lineNo, err)
			}
			rec.Result = o
		default:
			p, err := parsePly(fields)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadRecord, lineNo, err)
			}
			rec.Plies = append(rec.Plies, p)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if rec.StartFEN == "" {
		return nil, fmt.Errorf("%w: missing start line", ErrBadRecord)
	}
	return rec, nil
}

func parsePly(fields []string) (Ply, error) {
	if len(fields) != 5 {
		return Ply{}, fmt.Errorf("want 5 fields, got %d", len(fields))
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return Ply{}, err
	}
	var c board.Color
	switch fields[1] {
	case "white":
		c = board.White
	case "black":
		c = board.Black
	default:
		return Ply{}, fmt.Errorf("unknown side %q", fields[1])
	}
	if _, _, err := board.ParseSquares(fields[2]); err != nil {
		return Ply{}, err
	}
	mat, err := strconv.ParseInt(fields[3], 10, 32)
	if err != nil {
		return Ply{}, err
	}
	h, err := strconv.ParseUint(fields[4], 16, 64)
	if err != nil {
		return Ply{}, err
	}
	return Ply{Number: n, Color: c, Move: fields[2], Material: int32(mat), Hash: h}, nil
}

// Save writes the record to path, zstd-compressed when path ends in ".zst".
func (r *Record) Save(path string) error {
	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		return err
	}
	data := buf.Bytes()
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("create zstd encoder: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return fmt.Errorf("close zstd encoder: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// LoadRecord reads a record written by Save.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer dec.Close()
		if data, err = dec.DecodeAll(data, nil); err != nil {
			return nil, fmt.Errorf("decompress record: %w", err)
		}
	}
	return ReadRecord(bytes.NewReader(data))
}
