package board

import "fmt"

// kingSquare finds the given color's king. Panics if the position has
// none, which should never happen for any board this package produces.
func (b *Board) kingSquare(c Color) Square {
	for sq := Square(0); sq < 64; sq++ {
		if o := b.squares[sq]; o.piece == King && o.color == c {
			return sq
		}
	}
	panic(fmt.Sprintf("board has no %s king: %s", c, b.FEN()))
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// pathClear reports whether every square strictly between from and to
// (exclusive) is empty. Only meaningful when from/to lie on a shared
// rank, file, or diagonal.
func (b *Board) pathClear(from, to Square) bool {
	df := sign(to.File() - from.File())
	dr := sign(to.Rank() - from.Rank())
	f, r := from.File()+df, from.Rank()+dr
	for NewSquare(f, r) != to {
		if !b.isEmpty(NewSquare(f, r)) {
			return false
		}
		f += df
		r += dr
	}
	return true
}

// attacksSquare reports whether a piece of the given kind/color sitting
// on `from` geometrically attacks `to`, accounting for blocking pieces
// on sliding moves. It does not check whether `to` holds a friendly
// piece — that distinction matters for move legality, not for whether
// a square is attacked (a king can't step next to an enemy-defended
// square even if the defender itself could not capture there).
func (b *Board) attacksSquare(from Square, piece Piece, color Color, to Square) bool {
	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()
	switch piece {
	case Knight:
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)
	case King:
		return abs(df) <= 1 && abs(dr) <= 1 && (df != 0 || dr != 0)
	case Bishop:
		return abs(df) == abs(dr) && df != 0 && b.pathClear(from, to)
	case Rook:
		return (df == 0) != (dr == 0) && b.pathClear(from, to)
	case Queen:
		return ((abs(df) == abs(dr) && df != 0) || ((df == 0) != (dr == 0))) && b.pathClear(from, to)
	case Pawn:
		forward := 1
		if color == Black {
			forward = -1
		}
		return dr == forward && abs(df) == 1
	default:
		return false
	}
}

// attacked reports whether any piece of color `by` attacks sq.
func (b *Board) attacked(sq Square, by Color) bool {
	for from := Square(0); from < 64; from++ {
		o := b.squares[from]
		if o.piece == NoPiece || o.color != by {
			continue
		}
		if b.attacksSquare(from, o.piece, o.color, sq) {
			return true
		}
	}
	return false
}

// InCheck reports whether c's king is currently attacked.
func (b *Board) InCheck(c Color) bool {
	return b.attacked(b.kingSquare(c), c.Other())
}

// Legal reports whether m is a legal move in this position: the piece
// exists, belongs to the side to move, the destination is reachable by
// that piece's movement rules (with castling and en passant handled as
// special cases), and making the move does not leave the mover's own
// king in check.
func (b *Board) Legal(m Move) bool {
	piece, color, ok := b.PieceOn(m.From)
	if !ok || color != b.SideToMove {
		return false
	}
	if m.From == m.To {
		return false
	}
	if _, destColor, destOK := b.PieceOn(m.To); destOK && destColor == color {
		return false
	}

	if piece == King && abs(m.To.File()-m.From.File()) == 2 && m.To.Rank() == m.From.Rank() {
		return b.legalCastle(m, color)
	}

	if !b.pseudoLegalNonCastle(m, piece, color) {
		return false
	}

	after := b.clone()
	after.applyNonCastle(m, piece, color)
	return !after.attacked(after.kingSquare(color), color.Other())
}

// pseudoLegalNonCastle checks movement-pattern legality for every move
// kind except castling: normal captures/quiets, pawn pushes (single
// and double), and en passant.
func (b *Board) pseudoLegalNonCastle(m Move, piece Piece, color Color) bool {
	if piece != Pawn {
		return b.attacksSquare(m.From, piece, color, m.To)
	}

	forward := 1
	startRank := 1
	if color == Black {
		forward = -1
		startRank = 6
	}
	df := m.To.File() - m.From.File()
	dr := m.To.Rank() - m.From.Rank()

	if df == 0 {
		if dr == forward {
			return b.isEmpty(m.To)
		}
		if dr == 2*forward && m.From.Rank() == startRank {
			mid := NewSquare(m.From.File(), m.From.Rank()+forward)
			return b.isEmpty(mid) && b.isEmpty(m.To)
		}
		return false
	}

	if abs(df) == 1 && dr == forward {
		if _, destColor, ok := b.PieceOn(m.To); ok && destColor != color {
			return true
		}
		return m.To == b.EnPassant
	}
	return false
}

// legalCastle checks a king move of two files as a castling attempt:
// both the king and the relevant rook must still hold their rights,
// the squares between them must be empty, and the king may not start,
// pass through, or land in check.
func (b *Board) legalCastle(m Move, color Color) bool {
	rank := 0
	if color == Black {
		rank = 7
	}
	if m.From != NewSquare(4, rank) {
		return false
	}
	kingside := m.To.File() == 6
	var rookFrom Square
	var right bool
	if kingside {
		rookFrom = NewSquare(7, rank)
		right = map[Color]bool{White: b.Castling.WhiteKingside, Black: b.Castling.BlackKingside}[color]
	} else if m.To.File() == 2 {
		rookFrom = NewSquare(0, rank)
		right = map[Color]bool{White: b.Castling.WhiteQueenside, Black: b.Castling.BlackQueenside}[color]
	} else {
		return false
	}
	if !right {
		return false
	}
	if p, c, ok := b.PieceOn(rookFrom); !ok || p != Rook || c != color {
		return false
	}
	if !b.pathClear(m.From, rookFrom) {
		return false
	}
	if b.attacked(m.From, color.Other()) {
		return false
	}
	step := 1
	if !kingside {
		step = -1
	}
	passThrough := NewSquare(m.From.File()+step, rank)
	if b.attacked(passThrough, color.Other()) {
		return false
	}
	if b.attacked(m.To, color.Other()) {
		return false
	}
	return true
}

func (b Board) clone() *Board {
	c := b
	return &c
}

// applyNonCastle mutates the receiver in place to reflect every move
// kind except castling, including en passant captures and promotion.
func (b *Board) applyNonCastle(m Move, piece Piece, color Color) {
	if piece == Pawn && m.To == b.EnPassant && m.From.File() != m.To.File() && b.isEmpty(m.To) {
		capturedRank := m.From.Rank()
		b.squares[NewSquare(m.To.File(), capturedRank)] = occupant{piece: NoPiece}
	}

	b.squares[m.From] = occupant{piece: NoPiece}
	placed := occupant{piece: piece, color: color}
	if piece == Pawn && m.Promotion != NoPiece {
		placed.piece = m.Promotion
	}
	b.squares[m.To] = placed
}

// MakeMove returns the board resulting from applying m, which must
// already be Legal. Castling rights, en passant target, and side to
// move are all updated; the receiver itself is left unmodified.
func (b Board) MakeMove(m Move) Board {
	piece, color, _ := b.PieceOn(m.From)
	next := b

	if piece == King && abs(m.To.File()-m.From.File()) == 2 {
		rank := m.From.Rank()
		next.squares[m.From] = occupant{piece: NoPiece}
		next.squares[m.To] = occupant{piece: King, color: color}
		if m.To.File() == 6 {
			next.squares[NewSquare(7, rank)] = occupant{piece: NoPiece}
			next.squares[NewSquare(5, rank)] = occupant{piece: Rook, color: color}
		} else {
			next.squares[NewSquare(0, rank)] = occupant{piece: NoPiece}
			next.squares[NewSquare(3, rank)] = occupant{piece: Rook, color: color}
		}
	} else {
		next.applyNonCastle(m, piece, color)
	}

	next.EnPassant = NoSquare
	if piece == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		mid := NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
		next.EnPassant = mid
	}

	if piece == King {
		if color == White {
			next.Castling.WhiteKingside = false
			next.Castling.WhiteQueenside = false
		} else {
			next.Castling.BlackKingside = false
			next.Castling.BlackQueenside = false
		}
	}
	clearRookRight := func(sq Square) {
		switch sq {
		case NewSquare(0, 0):
			next.Castling.WhiteQueenside = false
		case NewSquare(7, 0):
			next.Castling.WhiteKingside = false
		case NewSquare(0, 7):
			next.Castling.BlackQueenside = false
		case NewSquare(7, 7):
			next.Castling.BlackKingside = false
		}
	}
	clearRookRight(m.From)
	clearRookRight(m.To)

	next.SideToMove = color.Other()
	return next
}

// IsCastling reports whether m, as applied to the receiver, is a
// castling move (used by the driver to decide whether to synthesize
// the extra rook half-moves).
func (b *Board) IsCastling(m Move) bool {
	piece, _, ok := b.PieceOn(m.From)
	return ok && piece == King && m.From.File() == 4 && abs(m.To.File()-m.From.File()) == 2
}
