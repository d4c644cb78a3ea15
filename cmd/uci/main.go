package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"minimax-chess/board"
	"minimax-chess/engine"
	"minimax-chess/internal/logx"
)

func main() {
	var (
		depth       = flag.Int("depth", engine.DefaultDepth, "default search depth for 'go' without a depth")
		temperature = flag.Float64("temperature", engine.DefaultTemperature, "evaluation jitter scale (0 = deterministic)")
		seed        = flag.Int64("seed", 1, "jitter seed")
		workers     = flag.Int("workers", 1, "root-split search goroutines")
		logLevel    = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	logger := logx.NewLogger(*logLevel)

	opts := engine.DefaultOptions()
	opts.Depth = *depth
	opts.Temperature = *temperature
	opts.Seed = *seed
	opts.Workers = *workers
	if err := opts.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid options")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newSession(os.Stdout, opts, logger.With().Str("component", "uci").Logger())
	if err := s.loop(ctx, os.Stdin); err != nil {
		logger.Fatal().Err(err).Msg("uci loop")
	}
}

type session struct {
	out      io.Writer
	opts     engine.Options
	log      zerolog.Logger
	pos      *board.Position
	toMove   board.Color
	searcher *engine.Searcher
}

func newSession(out io.Writer, opts engine.Options, log zerolog.Logger) *session {
	s := &session{out: out, opts: opts, log: log}
	s.newGame()
	return s
}

func (s *session) newGame() {
	s.pos = board.NewPosition()
	s.toMove = board.White
	s.searcher = s.opts.NewSearcher(s.log)
}

func (s *session) println(a ...any) { fmt.Fprintln(s.out, a...) }

// loop reads commands until "quit", end of input or cancellation.
func (s *session) loop(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			s.println("id name minimax-chess")
			s.println("id author minimax-chess developers")
			s.println("option name Depth type spin default", s.opts.Depth, "min 0 max 12")
			s.println("option name Seed type string default", s.opts.Seed)
			s.println("option name Temperature type string default", s.opts.Temperature)
			s.println("uciok")
		case "isready":
			s.println("readyok")
		case "ucinewgame":
			s.newGame()
		case "quit":
			return nil
		case "position":
			s.position(tokens[1:])
		case "go":
			s.goCmd(ctx, tokens[1:])
		case "setoption":
			s.setOption(tokens[1:])
		case "eval":
			s.println("info string material", s.searcher.Eval.Material(s.pos), "eval", s.searcher.Eval.Evaluate(s.pos))
			fmt.Fprint(s.out, s.pos.String())
		case "d":
			fmt.Fprint(s.out, s.pos.String())
			s.println("Fen:", s.pos.FEN(s.toMove))
			s.println("Hash:", strconv.FormatUint(s.pos.Hash(), 16))
		default:
			s.println("info string Unknown command:", line)
		}
	}
	return scanner.Err()
}

func (s *session) position(args []string) {
	if len(args) == 0 {
		s.println("info string Malformed position command")
		return
	}
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		s.pos, s.toMove = board.NewPosition(), board.White
	case "fen":
		i := 0
		for i < len(rest) && strings.ToLower(rest[i]) != "moves" {
			i++
		}
		if i == 0 {
			s.println("info string Invalid fen position")
			return
		}
		pos, side, err := board.ParseFEN(strings.Join(rest[:i], " "))
		if err != nil {
			s.println("info string", err)
			return
		}
		s.pos, s.toMove = pos, side
		rest = rest[i:]
	default:
		s.println("info string Invalid position subcommand")
		return
	}

	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return
	}
	for _, text := range rest[1:] {
		from, to, err := board.ParseSquares(strings.ToLower(text))
		if err != nil {
			s.println("info string", err)
			return
		}
		if _, err := s.pos.TryMove(s.toMove, from, to); err != nil {
			s.println("info string Move", text, "not found for position", s.pos.FEN(s.toMove))
			return
		}
		s.toMove = s.toMove.Other()
	}
}

func (s *session) goCmd(ctx context.Context, args []string) {
	depth := s.opts.Depth
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth":
			if i+1 >= len(args) {
				s.println("info string Malformed go command option depth")
				continue
			}
			i++
			d, err := strconv.Atoi(args[i])
			if err != nil || d < 0 {
				s.println("info string Malformed go command option; could not convert depth")
				continue
			}
			depth = d
		case "infinite", "wtime", "btime", "winc", "binc", "movetime":
			// fixed-depth engine: clock options are read and ignored
			if args[i] != "infinite" {
				i++
			}
		default:
			s.println("info string Unknown go subcommand", args[i])
		}
	}

	maximizing := s.toMove == board.White
	start := time.Now()
	var (
		m     board.Move
		score int32
		err   error
	)
	if s.opts.Workers > 1 {
		m, score, err = s.searcher.SearchParallel(ctx, s.pos, depth, maximizing, s.opts.Workers)
	} else {
		m, score, err = s.searcher.Search(ctx, s.pos, depth, maximizing)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("search aborted")
		s.println("bestmove 0000")
		return
	}
	// UCI scores are from the side to move
	cp := int64(score)
	if !maximizing {
		cp = -cp
	}
	elapsed := time.Since(start).Milliseconds()
	if elapsed == 0 {
		elapsed = 1
	}
	nodes := s.searcher.Nodes()
	s.println("info depth", depth, "score cp", cp, "nodes", nodes, "time", elapsed,
		"nps", nodes*1000/uint64(elapsed), "pv", m)
	s.println("bestmove", m)
}

// setOption handles "setoption name <Name> value <v>".
func (s *session) setOption(args []string) {
	if len(args) < 4 || strings.ToLower(args[0]) != "name" || strings.ToLower(args[2]) != "value" {
		s.println("info string Malformed setoption command")
		return
	}
	name, value := strings.ToLower(args[1]), args[3]
	next := s.opts
	var err error
	switch name {
	case "depth":
		next.Depth, err = strconv.Atoi(value)
	case "seed":
		next.Seed, err = strconv.ParseInt(value, 10, 64)
	case "temperature":
		next.Temperature, err = strconv.ParseFloat(value, 64)
	default:
		s.println("info string Unknown option", args[1])
		return
	}
	if err == nil {
		err = next.Validate()
	}
	if err != nil {
		s.println("info string Bad value for", args[1]+":", err)
		return
	}
	s.opts = next
	s.searcher = s.opts.NewSearcher(s.log)
}
