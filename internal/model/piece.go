package model

// Color identifies a side.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceKind is the closed set of piece kinds.
type PieceKind string

const (
	Pawn   PieceKind = "pawn"
	Rook   PieceKind = "rook"
	Knight PieceKind = "knight"
	Bishop PieceKind = "bishop"
	Queen  PieceKind = "queen"
	King   PieceKind = "king"
)

// Letter returns the kind's move-notation letter. Pawns have none.
func (k PieceKind) Letter() string {
	switch k {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return ""
}

// Piece is one chessman. Position always mirrors the grid cell holding the
// piece. HasMoved only influences the pawn double step.
type Piece struct {
	Kind     PieceKind `json:"kind"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
	HasMoved bool      `json:"hasMoved"`
}

// Grid is the mailbox board representation: each cell holds at most one
// piece, or nil.
type Grid [8][8]*Piece

// PseudoLegal reports whether moving p to target obeys the piece's movement
// and capture geometry on g, ignoring whether the mover's own king would be
// left in check. It is a pure read of g. Callers guarantee target is on the
// board and p sits on g at p.Position.
func PseudoLegal(g *Grid, p *Piece, target Position) bool {
	switch p.Kind {
	case Pawn:
		return pawnMove(g, p, target)
	case Rook:
		return rookMove(g, p, target)
	case Knight:
		return knightMove(g, p, target)
	case Bishop:
		return bishopMove(g, p, target)
	case Queen:
		return rookMove(g, p, target) || bishopMove(g, p, target)
	case King:
		return kingMove(g, p, target)
	}
	return false
}

func pawnMove(g *Grid, p *Piece, target Position) bool {
	dir := -1
	if p.Color == Black {
		dir = 1
	}
	row, col := p.Position.Row, p.Position.Col
	if target.Col == col {
		if target.Row == row+dir {
			return g[target.Row][target.Col] == nil
		}
		if target.Row == row+2*dir && !p.HasMoved {
			return g[row+dir][col] == nil && g[target.Row][target.Col] == nil
		}
		return false
	}
	if abs(target.Col-col) == 1 && target.Row == row+dir {
		t := g[target.Row][target.Col]
		return t != nil && t.Color != p.Color
	}
	return false
}

func rookMove(g *Grid, p *Piece, target Position) bool {
	if target.Row != p.Position.Row && target.Col != p.Position.Col {
		return false
	}
	if !pathClear(g, p.Position, target) {
		return false
	}
	t := g[target.Row][target.Col]
	return t == nil || t.Color != p.Color
}

func knightMove(g *Grid, p *Piece, target Position) bool {
	rd := abs(target.Row - p.Position.Row)
	cd := abs(target.Col - p.Position.Col)
	if !((rd == 2 && cd == 1) || (rd == 1 && cd == 2)) {
		return false
	}
	t := g[target.Row][target.Col]
	return t == nil || t.Color != p.Color
}

func bishopMove(g *Grid, p *Piece, target Position) bool {
	if abs(target.Row-p.Position.Row) != abs(target.Col-p.Position.Col) {
		return false
	}
	if !pathClear(g, p.Position, target) {
		return false
	}
	t := g[target.Row][target.Col]
	return t == nil || t.Color != p.Color
}

func kingMove(g *Grid, p *Piece, target Position) bool {
	if abs(target.Row-p.Position.Row) > 1 || abs(target.Col-p.Position.Col) > 1 {
		return false
	}
	t := g[target.Row][target.Col]
	return t == nil || t.Color != p.Color
}

// pathClear walks the squares strictly between from and to, which must share
// a rank, file, or diagonal. from == to is trivially clear.
func pathClear(g *Grid, from, to Position) bool {
	dr := sign(to.Row - from.Row)
	dc := sign(to.Col - from.Col)
	r, c := from.Row+dr, from.Col+dc
	for r != to.Row || c != to.Col {
		if g[r][c] != nil {
			return false
		}
		r, c = r+dr, c+dc
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
