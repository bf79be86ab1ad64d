package model

// MoveRecord is one committed move. Piece points at the live piece, so its
// Position reflects the destination. Captured is nil for quiet moves.
type MoveRecord struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	Piece    *Piece   `json:"piece"`
	Captured *Piece   `json:"captured,omitempty"`
}
