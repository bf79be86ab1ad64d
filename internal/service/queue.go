package service

import "sync"

// Queue holds players waiting for an opponent, longest wait first.
type Queue struct {
	mu      sync.Mutex
	players []string
}

func NewQueue() *Queue {
	return &Queue{}
}

// Add enqueues a player. Joining again while still queued is an error.
func (q *Queue) Add(playerID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, id := range q.players {
		if id == playerID {
			return ErrAlreadyQueued
		}
	}
	q.players = append(q.players, playerID)
	return nil
}

// NextPair pops the two longest-waiting players.
func (q *Queue) NextPair() (string, string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return "", "", false
	}
	a, b := q.players[0], q.players[1]
	q.players = q.players[2:]
	return a, b, true
}

// Remove drops a player who stopped waiting.
func (q *Queue) Remove(playerID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, id := range q.players {
		if id == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return
		}
	}
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
