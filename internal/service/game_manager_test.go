package service

import (
	"errors"
	"testing"
	"time"

	"github.com/biologicmachine-lab/GameOn/internal/model"
)

func TestManagerCreateAndGet(t *testing.T) {
	gm := NewGameManager(time.Minute)

	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := gm.CreateGame("g1"); !errors.Is(err, ErrGameExists) {
		t.Fatalf("duplicate create: got %v, want ErrGameExists", err)
	}
	if _, err := gm.GetGame("g1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := gm.GetGame("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("get missing: got %v, want ErrGameNotFound", err)
	}

	if color, err := gm.AddPlayerToGame("g1", "alice"); err != nil || color != model.White {
		t.Fatalf("first join got (%s, %v), want white", color, err)
	}
	if color, err := gm.AddPlayerToGame("g1", "bob"); err != nil || color != model.Black {
		t.Fatalf("second join got (%s, %v), want black", color, err)
	}
	state, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Players.White.ID != "alice" || state.Players.Black.ID != "bob" {
		t.Fatalf("players %+v", state.Players)
	}
}

func TestManagerMissingGamePassthrough(t *testing.T) {
	gm := NewGameManager(time.Minute)
	from, to := model.Position{Row: 6, Col: 4}, model.Position{Row: 4, Col: 4}

	if err := gm.MakeMove("missing", "alice", from, to); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("move: got %v, want ErrGameNotFound", err)
	}
	if _, err := gm.GetGameState("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("state: got %v, want ErrGameNotFound", err)
	}
	if _, err := gm.LegalMoves("missing", from); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("legal moves: got %v, want ErrGameNotFound", err)
	}
	if err := gm.Resign("missing", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("resign: got %v, want ErrGameNotFound", err)
	}
	if _, err := gm.AddPlayerToGame("missing", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("join: got %v, want ErrGameNotFound", err)
	}
}

func TestMatchmakingPairsAndNotifies(t *testing.T) {
	gm := NewGameManager(time.Minute)

	chAnn := make(chan MatchFound, 1)
	chBen := make(chan MatchFound, 1)
	gm.RegisterMatchmakingChannel("ann", chAnn)
	gm.RegisterMatchmakingChannel("ben", chBen)

	if err := gm.JoinMatchmaking("ann"); err != nil {
		t.Fatalf("join ann: %v", err)
	}
	if err := gm.JoinMatchmaking("ann"); !errors.Is(err, ErrAlreadyQueued) {
		t.Fatalf("double join: got %v, want ErrAlreadyQueued", err)
	}
	if err := gm.JoinMatchmaking("ben"); err != nil {
		t.Fatalf("join ben: %v", err)
	}

	gm.matchOnce()

	var evAnn, evBen MatchFound
	select {
	case evAnn = <-chAnn:
	case <-time.After(3 * time.Second):
		t.Fatal("ann never heard about the match")
	}
	select {
	case evBen = <-chBen:
	case <-time.After(3 * time.Second):
		t.Fatal("ben never heard about the match")
	}

	if evAnn.GameID == "" || evAnn.GameID != evBen.GameID {
		t.Fatalf("game ids %q and %q, want one shared id", evAnn.GameID, evBen.GameID)
	}
	if evAnn.Color == evBen.Color {
		t.Fatalf("both players were seated as %s", evAnn.Color)
	}

	game, err := gm.GetGame(evAnn.GameID)
	if err != nil {
		t.Fatalf("paired game not registered: %v", err)
	}
	if !game.HasPlayer("ann") || !game.HasPlayer("ben") {
		t.Fatal("paired game is missing a player")
	}

	found, color, ok := gm.FindPlayerGame("ann")
	if !ok || found.ID != evAnn.GameID || color != evAnn.Color {
		t.Fatalf("FindPlayerGame got (%v, %s, %v)", found, color, ok)
	}
}

func TestMatchmakingRecoveryWithoutChannel(t *testing.T) {
	gm := NewGameManager(time.Minute)

	gm.JoinMatchmaking("carl")
	gm.JoinMatchmaking("dana")
	gm.matchOnce()

	game, color, ok := gm.FindPlayerGame("carl")
	if !ok {
		t.Fatal("carl's game is not discoverable")
	}
	if color != model.White {
		t.Fatalf("carl seated as %s, want white for the longer wait", color)
	}
	if game.Status().terminal() {
		t.Fatal("fresh game is already over")
	}
	if _, _, ok := gm.FindPlayerGame("dana"); !ok {
		t.Fatal("dana's game is not discoverable")
	}
	if _, _, ok := gm.FindPlayerGame("mallory"); ok {
		t.Fatal("found a game for a player who never queued")
	}
	if gm.queue.Size() != 0 {
		t.Fatalf("queue still holds %d players", gm.queue.Size())
	}
}

func TestLeaveMatchmaking(t *testing.T) {
	gm := NewGameManager(time.Minute)

	ch := make(chan MatchFound, 1)
	gm.RegisterMatchmakingChannel("eve", ch)
	gm.JoinMatchmaking("eve")
	gm.LeaveMatchmaking("eve")
	gm.JoinMatchmaking("finn")

	gm.matchOnce()

	if _, _, ok := gm.FindPlayerGame("eve"); ok {
		t.Fatal("eve was paired after leaving the queue")
	}
	if _, _, ok := gm.FindPlayerGame("finn"); ok {
		t.Fatal("finn was paired without an opponent")
	}
	if gm.queue.Size() != 1 {
		t.Fatalf("queue holds %d players, want just finn", gm.queue.Size())
	}
	select {
	case ev := <-ch:
		t.Fatalf("eve notified of %+v after leaving", ev)
	default:
	}
}

func TestNotifyMatchNeverBlocks(t *testing.T) {
	gm := NewGameManager(time.Minute)

	// An unbuffered channel with no reader must not wedge the matcher; the
	// player falls back to FindPlayerGame.
	gm.RegisterMatchmakingChannel("gil", make(chan MatchFound))
	gm.JoinMatchmaking("gil")
	gm.JoinMatchmaking("hana")

	done := make(chan struct{})
	go func() {
		gm.matchOnce()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("matchOnce blocked on an unread notification channel")
	}

	if _, _, ok := gm.FindPlayerGame("gil"); !ok {
		t.Fatal("gil cannot recover the game after the dropped notification")
	}
}

func TestUnregisterMatchmakingChannelIdentity(t *testing.T) {
	gm := NewGameManager(time.Minute)

	stale := make(chan MatchFound, 1)
	current := make(chan MatchFound, 1)
	gm.RegisterMatchmakingChannel("ida", stale)
	gm.RegisterMatchmakingChannel("ida", current)

	// Tearing down the stale registration must not disturb the newer one.
	gm.UnregisterMatchmakingChannel("ida", stale)
	gm.mu.Lock()
	got := gm.matchingChannels["ida"]
	gm.mu.Unlock()
	if got != current {
		t.Fatal("newer registration was dropped with the stale one")
	}

	gm.UnregisterMatchmakingChannel("ida", current)
	gm.mu.Lock()
	_, exists := gm.matchingChannels["ida"]
	gm.mu.Unlock()
	if exists {
		t.Fatal("registration survived its own unregister")
	}
}
