package controller

import (
	"errors"
	"time"

	"github.com/biologicmachine-lab/GameOn/internal/model"
	"github.com/biologicmachine-lab/GameOn/internal/service"
	"github.com/gofiber/fiber/v2"
)

// awaitMatchTimeout bounds a single matchmaking long-poll; clients repoll.
const awaitMatchTimeout = 25 * time.Second

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type moveRequest struct {
	From model.Position `json:"from"`
	To   model.Position `json:"to"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

// MakeMove commits a move over REST and returns the resulting state. The
// websocket carries the same operation for connected clients.
func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed move",
		})
	}

	if err := gc.gameService.HandleMove(gameID, playerID, req.From, req.To); err != nil {
		return errorResponse(c, err)
	}

	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

// GetLegalMoves lists the legal destinations for the piece on the square
// named by the query parameter, "?square=e2" style.
func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	square := c.Query("square")
	from, ok := model.ParsePosition(square)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid square",
		})
	}

	moves, err := gc.gameService.LegalMoves(gameID, from)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"square": square,
		"moves":  moves,
	})
}

func (gc *GameController) Resign(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.Resign(gameID, playerID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "game resigned",
	})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

// AwaitMatch long-polls for the caller's match. It answers immediately when
// the player already sits in a running game, otherwise it waits for the
// matchmaker up to awaitMatchTimeout and replies 204 so the client repolls.
func (gc *GameController) AwaitMatch(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	ch := make(chan service.MatchFound, 1)
	gc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer gc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	if game, color, ok := gc.gameService.FindPlayerGame(playerID); ok {
		return c.JSON(fiber.Map{
			"game_id": game.ID,
			"color":   color,
		})
	}

	select {
	case event := <-ch:
		return c.JSON(fiber.Map{
			"game_id": event.GameID,
			"color":   event.Color,
		})
	case <-time.After(awaitMatchTimeout):
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// errorResponse maps service and engine errors onto HTTP statuses. Engine
// rejections are client errors; they share the 400 default.
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrGameFull),
		errors.Is(err, service.ErrGameOver),
		errors.Is(err, service.ErrAlreadyQueued):
		status = fiber.StatusConflict
	case errors.Is(err, service.ErrNotInGame):
		status = fiber.StatusForbidden
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
