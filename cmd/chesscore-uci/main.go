package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	depth      = flag.Int("depth", envInt("CHESSCORE_DEPTH", engine.DefaultDepth), "default search depth")
	parallel   = flag.Bool("parallel", os.Getenv("CHESSCORE_PARALLEL") == "true", "search root moves concurrently")
	hash       = flag.Int("hash", 1<<16, "transposition table entries (0 disables)")
)

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	eng := engine.NewEngine(*hash)
	eng.SetParallel(*parallel)

	protocol := uci.New(eng, os.Stdin, os.Stdout, os.Stderr)
	protocol.SetDepth(*depth)
	if err := protocol.Run(); err != nil {
		log.Printf("[ENGINE] input error: %v", err)
	}
}
