package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/hailam/chesscore/internal/middleware"
	"github.com/hailam/chesscore/internal/service"
)

// Register mounts the game API and the websocket feed on app.
func Register(app *fiber.App, gameService *service.GameService) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	app.Get("/ws/game/:id",
		middleware.EnsurePlayerID(),
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		}),
	)

	api := app.Group("/api", middleware.EnsurePlayerID())
	api.Post("/game", gameController.CreateGame)
	api.Get("/game/:id", gameController.GetGameState)
	api.Post("/game/:id/join", gameController.JoinGame)
	api.Post("/game/:id/click", gameController.Click)
	api.Post("/game/:id/move", gameController.Move)
	api.Post("/game/:id/engine", gameController.EngineMove)
	api.Get("/game/:id/attacks/:cell", gameController.Attacks)
	api.Get("/game/:id/eval", gameController.Evaluate)
	api.Post("/game/:id/undo", gameController.Undo)
}
