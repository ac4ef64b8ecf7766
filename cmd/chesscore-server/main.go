package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hailam/chesscore/internal/controller"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/service"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	addr    = flag.String("addr", envString("CHESSCORE_ADDR", ":3000"), "listen address")
	depth   = flag.Int("depth", envInt("CHESSCORE_DEPTH", engine.DefaultDepth), "default engine depth")
	dataDir = flag.String("data", os.Getenv(storage.DataDirEnv), "data directory (empty uses the platform default)")
	memory  = flag.Bool("memory", false, "keep games in memory only")
	origins = flag.String("origins", "*", "allowed CORS origins")
	hash    = flag.Int("hash", 1<<14, "transposition table entries per game")
)

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func openStore() (*storage.Storage, error) {
	if *dataDir != "" {
		os.Setenv(storage.DataDirEnv, *dataDir)
	}
	return storage.NewStorage()
}

func main() {
	flag.Parse()

	var store service.Store
	if !*memory {
		s, err := openStore()
		if err != nil {
			log.Fatalf("[STORE] %v", err)
		}
		defer s.Close()
		store = s
	}

	gameManager := service.NewGameManager(store, *hash)
	gameService := service.NewGameService(gameManager, *depth)

	app := fiber.New(fiber.Config{AppName: "chesscore"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  *origins,
		AllowHeaders:  "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:  "GET, POST, OPTIONS",
		ExposeHeaders: "X-Player-ID",
	}))
	controller.Register(app, gameService)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Printf("[HTTP] shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("[HTTP] shutdown: %v", err)
		}
	}()

	log.Printf("[HTTP] listening on %s", *addr)
	if err := app.Listen(*addr); err != nil {
		log.Fatalf("[HTTP] %v", err)
	}
}
