package service

import (
	"log"
	"sync"
	"time"

	"github.com/biologicmachine-lab/GameOn/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// matchInterval is how often the matchmaking queue is drained.
const matchInterval = time.Second

// MatchFound tells a queued player which game they were paired into.
type MatchFound struct {
	GameID string      `json:"gameId"`
	Color  model.Color `json:"color"`
}

// GameManager owns every live game, the matchmaking queue, and the channels
// of players waiting to hear about a match.
type GameManager struct {
	mu               sync.RWMutex
	games            map[string]*Game
	queue            *Queue
	matchingChannels map[string]chan MatchFound
	clockTime        time.Duration
}

func NewGameManager(clockTime time.Duration) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*Game),
		queue:            NewQueue(),
		matchingChannels: make(map[string]chan MatchFound),
		clockTime:        clockTime,
	}

	go gm.processMatchmaking()

	return gm
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}
	gm.games[gameID] = NewGame(gameID, gm.clockTime)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return GameState{}, err
	}
	return game.Snapshot(), nil
}

func (gm *GameManager) MakeMove(gameID, playerID string, from, to model.Position) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, from, to)
}

func (gm *GameManager) Resign(gameID, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Resign(playerID)
}

func (gm *GameManager) LegalMoves(gameID string, from model.Position) ([]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(from), nil
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

func (gm *GameManager) SendError(gameID, playerID, message string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.SendError(playerID, message)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.Add(playerID)
}

// LeaveMatchmaking drops a player from the queue and forgets their
// notification channel.
func (gm *GameManager) LeaveMatchmaking(playerID string) {
	gm.queue.Remove(playerID)

	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.matchingChannels, playerID)
}

// RegisterMatchmakingChannel points match notifications for playerID at ch.
// The caller owns the channel; a buffered channel never blocks the matcher.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan MatchFound) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel removes ch if it is still the registered
// channel for playerID. A newer registration stays untouched.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan MatchFound) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.matchingChannels[playerID] == ch {
		delete(gm.matchingChannels, playerID)
	}
}

// FindPlayerGame looks for a running game holding a seat for playerID. It is
// the recovery path for players whose match notification was missed.
func (gm *GameManager) FindPlayerGame(playerID string) (*Game, model.Color, bool) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	for _, game := range gm.games {
		if game.Status().terminal() {
			continue
		}
		if color, ok := game.PlayerColor(playerID); ok {
			return game, color, true
		}
	}
	return nil, "", false
}

func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(matchInterval)
	defer ticker.Stop()

	for range ticker.C {
		gm.matchOnce()
	}
}

// matchOnce drains the queue in pairs, creating a game per pair and
// notifying both players. It is the body of one matchmaking tick.
func (gm *GameManager) matchOnce() {
	for {
		p1, p2, ok := gm.queue.NextPair()
		if !ok {
			return
		}

		gameID := uuid.New().String()
		game := NewGame(gameID, gm.clockTime)
		c1, err := game.AddPlayer(p1)
		if err != nil {
			log.Printf("matchmaking: seat %s: %v", p1, err)
			continue
		}
		c2, err := game.AddPlayer(p2)
		if err != nil {
			log.Printf("matchmaking: seat %s: %v", p2, err)
			continue
		}

		gm.mu.Lock()
		gm.games[gameID] = game
		gm.mu.Unlock()

		gm.notifyMatch(p1, MatchFound{GameID: gameID, Color: c1})
		gm.notifyMatch(p2, MatchFound{GameID: gameID, Color: c2})
		log.Printf("matchmaking: paired %s (%s) and %s (%s) in game %s", p1, c1, p2, c2, gameID)
	}
}

func (gm *GameManager) notifyMatch(playerID string, event MatchFound) {
	gm.mu.Lock()
	ch, ok := gm.matchingChannels[playerID]
	if ok {
		delete(gm.matchingChannels, playerID)
	}
	gm.mu.Unlock()

	if !ok {
		// The player is not long-polling right now; they can still find
		// the game through FindPlayerGame.
		return
	}
	select {
	case ch <- event:
	default:
		log.Printf("matchmaking: notification for %s not delivered", playerID)
	}
}
