package model

import (
	"fmt"
	"strings"
)

// Board is the authoritative state of one game: the grid, the side to move,
// and the ordered record of every committed move.
type Board struct {
	grid    Grid
	turn    Color
	history []MoveRecord
}

// NewBoard returns a board with the standard opening placement, White to
// move. White occupies rows 6 and 7, Black rows 0 and 1.
func NewBoard() *Board {
	b := &Board{turn: White}
	order := [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col, kind := range order {
		b.grid[0][col] = &Piece{Kind: kind, Color: Black, Position: Position{Row: 0, Col: col}}
		b.grid[7][col] = &Piece{Kind: kind, Color: White, Position: Position{Row: 7, Col: col}}
	}
	for col := 0; col < 8; col++ {
		b.grid[1][col] = &Piece{Kind: Pawn, Color: Black, Position: Position{Row: 1, Col: col}}
		b.grid[6][col] = &Piece{Kind: Pawn, Color: White, Position: Position{Row: 6, Col: col}}
	}
	return b
}

// Turn returns the side to move.
func (b *Board) Turn() Color {
	return b.turn
}

// GetPiece returns the piece on pos, or nil for an empty square. pos must be
// on the board.
func (b *Board) GetPiece(pos Position) *Piece {
	return b.grid[pos.Row][pos.Col]
}

// History returns a copy of the committed moves, oldest first.
func (b *Board) History() []MoveRecord {
	return append([]MoveRecord(nil), b.history...)
}

// MovePiece validates and commits one move. The checks run in a fixed order
// and the first failure decides the returned error: source occupancy, turn
// ownership, target bounds, piece geometry, king safety. A rejected move
// leaves the board untouched. A committed move removes whatever sat on to,
// relocates the piece, marks it moved, appends to the history, and passes
// the turn. from must be on the board.
func (b *Board) MovePiece(from, to Position) error {
	piece := b.grid[from.Row][from.Col]
	if piece == nil {
		return ErrNoPieceAtSource
	}
	if piece.Color != b.turn {
		return ErrNotYourTurn
	}
	if !to.InBounds() {
		return ErrOutOfBounds
	}
	if !PseudoLegal(&b.grid, piece, to) {
		return ErrInvalidPieceMove
	}
	if b.wouldBeInCheck(piece, to) {
		return ErrMovesIntoCheck
	}

	captured := b.grid[to.Row][to.Col]
	b.grid[to.Row][to.Col] = piece
	b.grid[from.Row][from.Col] = nil
	piece.Position = to
	piece.HasMoved = true
	b.history = append(b.history, MoveRecord{From: from, To: to, Piece: piece, Captured: captured})
	b.turn = b.turn.Opposite()
	return nil
}

// wouldBeInCheck evaluates the move on a throwaway copy of the grid: the
// mover is copied with its new position, the source cell cleared, and check
// evaluated on the copy. The live board is never mutated, so there is
// nothing to restore on any exit path.
func (b *Board) wouldBeInCheck(p *Piece, to Position) bool {
	probe := b.grid
	moved := *p
	moved.Position = to
	probe[to.Row][to.Col] = &moved
	probe[p.Position.Row][p.Position.Col] = nil
	return inCheck(&probe, p.Color)
}

// IsSquareUnderAttack reports whether any piece of by could pseudo-legally
// move onto pos. King safety of the attacker is ignored, so pinned pieces
// still give check.
func (b *Board) IsSquareUnderAttack(pos Position, by Color) bool {
	return squareUnderAttack(&b.grid, pos, by)
}

// IsInCheck reports whether color's king is attacked. A board with no king
// of that color is not in check.
func (b *Board) IsInCheck(color Color) bool {
	return inCheck(&b.grid, color)
}

// FindKing returns the position of color's king; the boolean is false when
// the board holds none.
func (b *Board) FindKing(color Color) (Position, bool) {
	return findKing(&b.grid, color)
}

// IsCheckmate reports whether color is in check and every move of every one
// of its pieces still leaves the king attacked. A side that is not in check
// is never mate here, whatever its mobility.
func (b *Board) IsCheckmate(color Color) bool {
	if !b.IsInCheck(color) {
		return false
	}
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := b.grid[r][c]
			if p == nil || p.Color != color {
				continue
			}
			for tr := 0; tr < 8; tr++ {
				for tc := 0; tc < 8; tc++ {
					target := Position{Row: tr, Col: tc}
					if PseudoLegal(&b.grid, p, target) && !b.wouldBeInCheck(p, target) {
						return false
					}
				}
			}
		}
	}
	return true
}

// LegalDestinations lists every square the piece on from could move to if it
// were that side's turn, honoring both geometry and king safety. An empty
// source yields nil.
func (b *Board) LegalDestinations(from Position) []Position {
	piece := b.grid[from.Row][from.Col]
	if piece == nil {
		return nil
	}
	var dests []Position
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			target := Position{Row: r, Col: c}
			if PseudoLegal(&b.grid, piece, target) && !b.wouldBeInCheck(piece, target) {
				dests = append(dests, target)
			}
		}
	}
	return dests
}

// String renders the grid for a terminal, ranks 8 down to 1, White pieces
// in upper case.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		fmt.Fprintf(&sb, "%d ", 8-r)
		for c := 0; c < 8; c++ {
			ch := byte('.')
			if p := b.grid[r][c]; p != nil {
				ch = fenLetters[p.Kind]
				if p.Color == Black {
					ch += 'a' - 'A'
				}
			}
			sb.WriteByte(ch)
			if c < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

var fenLetters = map[PieceKind]byte{
	Pawn:   'P',
	Rook:   'R',
	Knight: 'N',
	Bishop: 'B',
	Queen:  'Q',
	King:   'K',
}

// findKing scans the grid for color's king.
func findKing(g *Grid, color Color) (Position, bool) {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if p := g[r][c]; p != nil && p.Kind == King && p.Color == color {
				return p.Position, true
			}
		}
	}
	return Position{}, false
}

// squareUnderAttack reports whether any piece of by accepts pos as a
// pseudo-legal destination.
func squareUnderAttack(g *Grid, pos Position, by Color) bool {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if p := g[r][c]; p != nil && p.Color == by && PseudoLegal(g, p, pos) {
				return true
			}
		}
	}
	return false
}

func inCheck(g *Grid, color Color) bool {
	king, ok := findKing(g, color)
	if !ok {
		return false
	}
	return squareUnderAttack(g, king, color.Opposite())
}
