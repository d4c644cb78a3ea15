package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"minimax-chess/board"
	"minimax-chess/engine"
	"minimax-chess/game"
	"minimax-chess/internal/logx"
	"minimax-chess/internal/uciengine"
)

func main() {
	defaultOpponent := ""
	if envPath := os.Getenv("UCI_ENGINE_PATH"); envPath != "" {
		defaultOpponent = envPath
	}

	var (
		// Game
		modeFlag = flag.String("mode", "self", "game mode: human, self or uci")
		fen      = flag.String("fen", "", "start position (empty = standard opening)")
		maxMoves = flag.Int("max-moves", engine.DefaultMaxMoves, "ply cap for engine games (0 = none)")
		record   = flag.String("record", "", "write the game record here (.zst = compressed)")

		// Engine
		depth       = flag.Int("depth", engine.DefaultDepth, "search depth in plies")
		temperature = flag.Float64("temperature", engine.DefaultTemperature, "evaluation jitter scale (0 = deterministic)")
		seed        = flag.Int64("seed", 1, "jitter seed")
		workers     = flag.Int("workers", 1, "root-split search goroutines")

		// External opponent
		opponent      = flag.String("opponent", defaultOpponent, "path to a UCI engine for -mode uci")
		opponentDepth = flag.Int("opponent-depth", 8, "search depth for the UCI opponent")

		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	if envPath := os.Getenv("UCI_ENGINE_PATH"); envPath != "" {
		*opponent = envPath
	}

	logger := logx.NewLogger(*logLevel)

	mode, err := game.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	opts := engine.DefaultOptions()
	opts.Depth = *depth
	opts.Temperature = *temperature
	opts.Seed = *seed
	opts.Workers = *workers
	opts.MaxMoves = *maxMoves
	if err := opts.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid options")
	}

	cfg := game.Config{Log: logger}
	if *fen != "" {
		pos, side, err := board.ParseFEN(*fen)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse start position")
		}
		cfg.Start, cfg.ToMove = pos, side
	}
	// a human game runs until a king falls
	if mode != game.HumanVsEngine {
		cfg.MaxMoves = opts.MaxMoves
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	searchLog := logger.With().Str("component", "search").Logger()
	newEngine := func(seedOffset int64) *game.EnginePlayer {
		o := opts
		o.Seed += seedOffset
		return &game.EnginePlayer{Searcher: o.NewSearcher(searchLog), Depth: o.Depth, Workers: o.Workers}
	}

	var white, black game.Player
	switch mode {
	case game.HumanVsEngine:
		white = game.NewConsolePlayer(os.Stdin, os.Stdout)
		black = newEngine(0)
	case game.EngineVsEngine:
		white, black = newEngine(0), newEngine(1)
	case game.EngineVsUCI:
		if *opponent == "" {
			fmt.Fprintln(os.Stderr, "-mode uci needs -opponent or UCI_ENGINE_PATH")
			os.Exit(2)
		}
		ext, err := uciengine.New(uciengine.Config{
			Path:   *opponent,
			Depth:  *opponentDepth,
			Logger: logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("start opponent")
		}
		defer ext.Close()
		white, black = newEngine(0), ext
	}

	logger.Info().
		Str("mode", mode.String()).
		Int("depth", opts.Depth).
		Float64("temperature", opts.Temperature).
		Int64("seed", opts.Seed).
		Msg("starting game")

	g := game.New(cfg)
	outcome, err := play(ctx, g, white, black, os.Stdout, logger)
	if *record != "" {
		if serr := g.Record.Save(*record); serr != nil {
			logger.Error().Err(serr).Str("path", *record).Msg("save record")
		} else {
			logger.Info().Str("path", *record).Msg("record saved")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Int("plies", g.MoveCount).Msg("game aborted")
	}
	fmt.Fprintf(os.Stdout, "result: %s after %d plies, material %d\n", outcome, g.MoveCount, g.Material())
}

// play runs the game one ply at a time and prints the board after each ply.
func play(ctx context.Context, g *game.Game, white, black game.Player, out io.Writer, log zerolog.Logger) (game.Outcome, error) {
	fmt.Fprint(out, g.Position.String())
	for {
		if o := g.Outcome(); o != game.Ongoing {
			g.Record.Result = o
			return o, nil
		}
		if err := g.Step(ctx, white, black); err != nil {
			return game.Ongoing, err
		}
		last := g.Record.Plies[len(g.Record.Plies)-1]
		fmt.Fprintf(out, "\n%d. %s %s (material %d)\n", last.Number, last.Color, last.Move, last.Material)
		fmt.Fprint(out, g.Position.String())
		log.Debug().Uint64("hash", last.Hash).Msg("ply done")
	}
}
