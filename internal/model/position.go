package model

import "fmt"

// Position addresses one square. Row 0 is Black's back rank and row 7 is
// White's, so White pawns advance toward smaller rows. Columns run from
// file a (0) to file h (7).
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

// String renders the square in algebraic notation, "e2" style.
func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, 8-p.Row)
}

// ParsePosition converts algebraic notation back into a Position. The file
// letter may be upper or lower case; the boolean is false for anything that
// does not name a square on the board.
func ParsePosition(coord string) (Position, bool) {
	if len(coord) != 2 {
		return Position{}, false
	}
	file, rank := coord[0], coord[1]
	if file >= 'A' && file <= 'Z' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, false
	}
	return Position{Row: 8 - int(rank-'0'), Col: int(file - 'a')}, true
}
