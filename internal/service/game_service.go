package service

import (
	"fmt"

	"github.com/biologicmachine-lab/GameOn/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// GameService is the thin facade the transport layers talk to.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{gameManager: gameManager}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID, playerID string, from, to model.Position) error {
	return gs.gameManager.MakeMove(gameID, playerID, from, to)
}

func (gs *GameService) Resign(gameID, playerID string) error {
	return gs.gameManager.Resign(gameID, playerID)
}

func (gs *GameService) LegalMoves(gameID string, from model.Position) ([]model.Position, error) {
	return gs.gameManager.LegalMoves(gameID, from)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan MatchFound) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan MatchFound) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) FindPlayerGame(playerID string) (*Game, model.Color, bool) {
	return gs.gameManager.FindPlayerGame(playerID)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}

func (gs *GameService) SendError(gameID, playerID, message string) {
	gs.gameManager.SendError(gameID, playerID, message)
}
