package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/biologicmachine-lab/GameOn/internal/model"
	"github.com/biologicmachine-lab/GameOn/internal/ws"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/exp/slices"
)

// Status classifies a session from the players' point of view. The board
// itself only tracks turns; check and the terminal outcomes live here.
// A side with no moves that is not in check stays ongoing.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusResigned  Status = "resigned"
)

func (s Status) terminal() bool {
	return s == StatusCheckmate || s == StatusResigned
}

// Game is one chess session: the board plus everything around it that the
// engine does not own. Seats, clocks, captures, status, and the websocket
// connections observing the game.
type Game struct {
	ID string

	mu       sync.Mutex
	board    *model.Board
	white    string
	black    string
	status   Status
	winner   model.Color
	captured CapturedPieces
	plies    []Ply
	lastMove *MoveSpan

	whiteClock *Clock
	blackClock *Clock

	connections *gameConnections
}

// Ply is one committed move as shown in the move list.
type Ply struct {
	Color    model.Color    `json:"color"`
	From     model.Position `json:"from"`
	To       model.Position `json:"to"`
	Notation string         `json:"notation"`
}

// MoveSpan is the from/to pair clients use to highlight the last move.
type MoveSpan struct {
	From model.Position `json:"from"`
	To   model.Position `json:"to"`
}

// CapturedPieces holds the pieces each side has lost.
type CapturedPieces struct {
	White []model.Piece `json:"white"`
	Black []model.Piece `json:"black"`
}

// GameState is the full wire snapshot of a session. Every piece in it is a
// copy, so encoding never races a later move.
type GameState struct {
	GameID         string           `json:"gameId"`
	Board          [][]*model.Piece `json:"board"`
	ToMove         model.Color      `json:"toMove"`
	Status         Status           `json:"status"`
	Winner         model.Color      `json:"winner,omitempty"`
	IsCheck        bool             `json:"isCheck"`
	MoveHistory    []Ply            `json:"moveHistory"`
	CapturedPieces CapturedPieces   `json:"capturedPieces"`
	LastMove       *MoveSpan        `json:"lastMove,omitempty"`
	Players        Players          `json:"players"`
}

type Players struct {
	White PlayerInfo `json:"white"`
	Black PlayerInfo `json:"black"`
}

// PlayerInfo is one seat as shown to clients; TimeLeft is milliseconds.
type PlayerInfo struct {
	ID       string `json:"id"`
	TimeLeft int64  `json:"timeLeft"`
}

func NewGame(id string, clockTime time.Duration) *Game {
	return &Game{
		ID:          id,
		board:       model.NewBoard(),
		status:      StatusOngoing,
		whiteClock:  NewClock(clockTime),
		blackClock:  NewClock(clockTime),
		connections: newGameConnections(),
	}
}

// AddPlayer seats a player, White first. Seating is idempotent: a player
// already in the game gets their existing color back.
func (g *Game) AddPlayer(playerID string) (model.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case playerID != "" && playerID == g.white:
		return model.White, nil
	case playerID != "" && playerID == g.black:
		return model.Black, nil
	case g.white == "":
		g.white = playerID
		return model.White, nil
	case g.black == "":
		g.black = playerID
		return model.Black, nil
	}
	return "", ErrGameFull
}

// HasPlayer reports whether playerID holds a seat.
func (g *Game) HasPlayer(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seatColor(playerID)
	return ok
}

// Status returns the session's current classification.
func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.status
}

// PlayerColor returns the color seated for playerID.
func (g *Game) PlayerColor(playerID string) (model.Color, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.seatColor(playerID)
}

func (g *Game) seatColor(playerID string) (model.Color, bool) {
	if playerID == "" {
		return "", false
	}
	switch playerID {
	case g.white:
		return model.White, true
	case g.black:
		return model.Black, true
	}
	return "", false
}

// MakeMove authorizes and commits one move for playerID. The engine decides
// move legality; the session decides that the caller is seated, owns the
// side to move, and that the game is still running. After a commit the
// clocks swap, captures and the move list are updated, the status is
// reclassified, and the new state is broadcast.
func (g *Game) MakeMove(playerID string, from, to model.Position) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.seatColor(playerID)
	if !ok {
		return ErrNotInGame
	}
	if g.status.terminal() {
		return ErrGameOver
	}
	if color != g.board.Turn() {
		return model.ErrNotYourTurn
	}
	// The board indexes the source square before it validates anything, so
	// coordinates that name no square must be screened here. Off-board
	// targets the board rejects itself.
	if !from.InBounds() {
		return model.ErrOutOfBounds
	}

	if err := g.board.MovePiece(from, to); err != nil {
		return err
	}

	history := g.board.History()
	rec := history[len(history)-1]
	if rec.Captured != nil {
		switch rec.Captured.Color {
		case model.White:
			g.captured.White = append(g.captured.White, *rec.Captured)
		case model.Black:
			g.captured.Black = append(g.captured.Black, *rec.Captured)
		}
	}
	g.plies = append(g.plies, Ply{Color: color, From: from, To: to, Notation: notationFor(rec)})
	g.lastMove = &MoveSpan{From: from, To: to}

	g.clockFor(color).Stop()
	opponent := color.Opposite()
	g.updateStatus(opponent)
	if !g.status.terminal() {
		g.clockFor(opponent).Start()
	}

	go g.broadcastState()
	return nil
}

// Resign ends the game in the opponent's favor.
func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.seatColor(playerID)
	if !ok {
		return ErrNotInGame
	}
	if g.status.terminal() {
		return ErrGameOver
	}

	g.status = StatusResigned
	g.winner = color.Opposite()
	g.whiteClock.Stop()
	g.blackClock.Stop()

	go g.broadcastState()
	return nil
}

// LegalMoves lists the destinations the piece on from could legally move to.
func (g *Game) LegalMoves(from model.Position) []model.Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board.LegalDestinations(from)
}

func (g *Game) clockFor(color model.Color) *Clock {
	if color == model.White {
		return g.whiteClock
	}
	return g.blackClock
}

// updateStatus reclassifies the session after a commit; next is the side now
// to move.
func (g *Game) updateStatus(next model.Color) {
	switch {
	case g.board.IsCheckmate(next):
		g.status = StatusCheckmate
		g.winner = next.Opposite()
	case g.board.IsInCheck(next):
		g.status = StatusCheck
	default:
		g.status = StatusOngoing
	}
}

// notationFor renders a committed move for the move list: piece letter,
// capture marker, destination square, with the source file prefixed for pawn
// captures.
func notationFor(rec model.MoveRecord) string {
	capture := ""
	if rec.Captured != nil {
		capture = "x"
	}
	pawnFile := ""
	if rec.Piece.Kind == model.Pawn && rec.From.Col != rec.To.Col {
		pawnFile = rec.From.String()[:1]
	}
	return rec.Piece.Kind.Letter() + pawnFile + capture + rec.To.String()
}

// Snapshot assembles a deep copy of the session for the wire.
func (g *Game) Snapshot() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() GameState {
	board := make([][]*model.Piece, 8)
	for r := 0; r < 8; r++ {
		board[r] = make([]*model.Piece, 8)
		for c := 0; c < 8; c++ {
			if p := g.board.GetPiece(model.Position{Row: r, Col: c}); p != nil {
				cp := *p
				board[r][c] = &cp
			}
		}
	}
	state := GameState{
		GameID:         g.ID,
		Board:          board,
		ToMove:         g.board.Turn(),
		Status:         g.status,
		Winner:         g.winner,
		IsCheck:        g.board.IsInCheck(g.board.Turn()),
		MoveHistory:    append([]Ply(nil), g.plies...),
		CapturedPieces: g.captured.sorted(),
		Players: Players{
			White: PlayerInfo{ID: g.white, TimeLeft: g.whiteClock.TimeLeft().Milliseconds()},
			Black: PlayerInfo{ID: g.black, TimeLeft: g.blackClock.TimeLeft().Milliseconds()},
		},
	}
	if g.lastMove != nil {
		lm := *g.lastMove
		state.LastMove = &lm
	}
	return state
}

// sorted returns a copy with each side's losses ordered heaviest first, the
// way capture trays are displayed.
func (c CapturedPieces) sorted() CapturedPieces {
	out := CapturedPieces{
		White: append([]model.Piece(nil), c.White...),
		Black: append([]model.Piece(nil), c.Black...),
	}
	byWeight := func(a, b model.Piece) bool {
		return captureOrder[a.Kind] < captureOrder[b.Kind]
	}
	slices.SortStableFunc(out.White, byWeight)
	slices.SortStableFunc(out.Black, byWeight)
	return out
}

var captureOrder = map[model.PieceKind]int{
	model.Queen:  0,
	model.Rook:   1,
	model.Bishop: 2,
	model.Knight: 3,
	model.Pawn:   4,
}

// RegisterConnection attaches a websocket to the game and pushes the current
// state to it. Seated players may always connect; others only while a seat
// is open. A player already holding a live connection keeps it and the new
// one is closed.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	_, seated := g.seatColor(playerID)
	open := g.white == "" || g.black == ""
	g.mu.Unlock()

	if !seated && !open {
		return ErrNotInGame
	}

	if !g.connections.add(playerID, conn) {
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"),
		)
		conn.Close()
		return nil
	}

	go g.broadcastState()
	return nil
}

// UnregisterConnection detaches playerID's websocket, if any.
func (g *Game) UnregisterConnection(playerID string) {
	g.connections.remove(playerID)
}

// SendError pushes an error envelope to one player's connection, if any.
func (g *Game) SendError(playerID, message string) {
	payload, err := json.Marshal(ws.ErrorPayload{Message: message})
	if err != nil {
		return
	}
	g.connections.writeTo(playerID, ws.Message{Type: ws.MessageTypeError, Payload: payload})
}

// broadcastState pushes the current snapshot to every registered connection
// and drops connections that fail.
func (g *Game) broadcastState() {
	state := g.Snapshot()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	for _, playerID := range g.connections.write(msg) {
		log.Printf("game %s: dropping connection for %s", g.ID, playerID)
		g.connections.remove(playerID)
	}
}

// gameConnections is the websocket registry for one game. writeMu serializes
// writers so concurrent broadcasts cannot interleave frames on a connection.
type gameConnections struct {
	mu      sync.RWMutex
	writeMu sync.Mutex
	conns   map[string]*websocket.Conn
}

func newGameConnections() *gameConnections {
	return &gameConnections{conns: make(map[string]*websocket.Conn)}
}

// add registers conn for playerID, refusing a second connection per player.
func (gc *gameConnections) add(playerID string, conn *websocket.Conn) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if _, exists := gc.conns[playerID]; exists {
		return false
	}
	gc.conns[playerID] = conn
	return true
}

func (gc *gameConnections) remove(playerID string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	delete(gc.conns, playerID)
}

// writeTo sends msg to a single player's connection.
func (gc *gameConnections) writeTo(playerID string, msg ws.Message) {
	gc.mu.RLock()
	conn := gc.conns[playerID]
	gc.mu.RUnlock()
	if conn == nil {
		return
	}

	gc.writeMu.Lock()
	defer gc.writeMu.Unlock()
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("ws: send to %s: %v", playerID, err)
	}
}

// write sends msg to every connection and returns the players whose
// connections failed.
func (gc *gameConnections) write(msg ws.Message) []string {
	gc.mu.RLock()
	conns := make(map[string]*websocket.Conn, len(gc.conns))
	for id, conn := range gc.conns {
		conns[id] = conn
	}
	gc.mu.RUnlock()

	gc.writeMu.Lock()
	defer gc.writeMu.Unlock()

	var failed []string
	for id, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			failed = append(failed, id)
		}
	}
	return failed
}
