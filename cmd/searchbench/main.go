package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"minimax-chess/board"
	"minimax-chess/engine"
	"minimax-chess/internal/logx"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	seedFlag := flag.Int64("seed", 1, "jitter seed")
	tempFlag := flag.Float64("temperature", engine.DefaultTemperature, "evaluation jitter scale")
	workersFlag := flag.Int("workers", 1, "root-split search goroutines")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger := logx.NewLogger(*logLevel)

	opts := engine.DefaultOptions()
	opts.Depth = *depthFlag
	opts.Seed = *seedFlag
	opts.Temperature = *tempFlag
	opts.Workers = *workersFlag
	if err := opts.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid options")
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			logger.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := board.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d workers=%d\n", fen, opts.Depth, *repeatFlag, opts.Workers)

	ctx := context.Background()
	searcher := opts.NewSearcher(logger.With().Str("component", "search").Logger())
	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		// fresh position for each run
		pos, side, err := board.ParseFEN(fen)
		if err != nil {
			logger.Fatal().Err(err).Str("fen", fen).Msg("bad FEN")
		}

		iterStart := time.Now()
		var (
			best  board.Move
			score int32
		)
		if opts.Workers > 1 {
			best, score, err = searcher.SearchParallel(ctx, pos, opts.Depth, side == board.White, opts.Workers)
		} else {
			best, score, err = searcher.Search(ctx, pos, opts.Depth, side == board.White)
		}
		if err != nil {
			logger.Fatal().Err(err).Msg("search failed")
		}
		iterElapsed := time.Since(iterStart)
		totalNodes += searcher.Nodes()

		fmt.Printf("iteration %d: bestmove %s score %d nodes %d time=%v\n", i+1, best, score, searcher.Nodes(), iterElapsed)
	}
	totalElapsed := time.Since(startAll)
	logger.Info().
		Uint64("nodes", totalNodes).
		Dur("elapsed", totalElapsed).
		Float64("nps", float64(totalNodes)/totalElapsed.Seconds()).
		Msg("searchbench done")

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}
