// Package controller maps the game service onto fiber routes.
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/middleware"
	"github.com/hailam/chesscore/internal/service"
	"github.com/hailam/chesscore/internal/ws"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createRequest struct {
	FEN string `json:"fen"`
}

// errorStatus maps service and rule errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrGameFull), errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, board.ErrInvalidCell), errors.Is(err, board.ErrInvalidFEN):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("[HTTP] %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// parseBody decodes an optional JSON body into v.
func parseBody(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(v)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request body: " + err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	gameID, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	st, err := gc.gameService.GetGameState(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(st)
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	color, err := gc.gameService.JoinGame(c.Params("id"), middleware.PlayerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) Click(c *fiber.Ctx) error {
	var req ws.ClickPayload
	req.Cell = board.NoCell
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	res, err := gc.gameService.Click(c.Params("id"), middleware.PlayerID(c), req.Cell)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

func (gc *GameController) Move(c *fiber.Ctx) error {
	req := ws.MovePayload{From: board.NoCell, To: board.NoCell}
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	res, err := gc.gameService.Move(c.Params("id"), middleware.PlayerID(c), board.NewMove(req.From, req.To))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

func (gc *GameController) EngineMove(c *fiber.Ctx) error {
	var req ws.EnginePayload
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	res, err := gc.gameService.EngineMove(c.UserContext(), c.Params("id"), middleware.PlayerID(c), req.Depth)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

func (gc *GameController) Attacks(c *fiber.Ctx) error {
	cell, err := board.ParseCell(c.Params("cell"))
	if err != nil {
		return fail(c, err)
	}
	cells, err := gc.gameService.Attacks(c.Params("id"), cell)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"cell":    cell,
		"attacks": cells,
	})
}

func (gc *GameController) Evaluate(c *fiber.Ctx) error {
	ev, err := gc.gameService.Evaluate(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ev)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	undone, st, err := gc.gameService.Undo(c.Params("id"), middleware.PlayerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"undone": undone,
		"state":  st,
	})
}
