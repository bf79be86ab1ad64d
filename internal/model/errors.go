package model

import "errors"

// Move rejection reasons, listed in the order MovePiece checks them.
var (
	ErrNoPieceAtSource  = errors.New("no piece at source position")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrOutOfBounds      = errors.New("target position out of bounds")
	ErrInvalidPieceMove = errors.New("invalid move for this piece")
	ErrMovesIntoCheck   = errors.New("move would put your king in check")
)
