package board

import (
	"fmt"
	"strconv"
	"strings"
)

// CastlingRights tracks which castling moves are still available for
// each side. It is not re-derived from piece positions: like real
// chess rules, once a king or rook has moved the right is gone even if
// an identical piece later occupies the original square.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// occupant is one square's contents.
type occupant struct {
	piece Piece
	color Color
}

// Board is a complete chess position. Values are copied, never
// mutated in place by MakeMove, so callers can freely keep a history
// of positions for the incremental-move heuristic in the driver.
type Board struct {
	squares   [64]occupant // squares[i].piece == NoPiece means empty
	SideToMove Color
	Castling  CastlingRights
	EnPassant Square // target square a pawn could capture onto, or NoSquare
}

// Default returns the standard starting position.
func Default() Board {
	var b Board
	for i := range b.squares {
		b.squares[i] = occupant{piece: NoPiece}
	}
	back := [8]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := 0; f < 8; f++ {
		b.squares[NewSquare(f, 0)] = occupant{piece: back[f], color: White}
		b.squares[NewSquare(f, 1)] = occupant{piece: Pawn, color: White}
		b.squares[NewSquare(f, 6)] = occupant{piece: Pawn, color: Black}
		b.squares[NewSquare(f, 7)] = occupant{piece: back[f], color: Black}
	}
	b.SideToMove = White
	b.Castling = CastlingRights{true, true, true, true}
	b.EnPassant = NoSquare
	return b
}

// PieceOn reports the piece and color occupying sq, if any.
func (b *Board) PieceOn(sq Square) (Piece, Color, bool) {
	o := b.squares[sq]
	if o.piece == NoPiece {
		return NoPiece, White, false
	}
	return o.piece, o.color, true
}

func (b *Board) isEmpty(sq Square) bool {
	return b.squares[sq].piece == NoPiece
}

// Equal reports whether two boards have identical piece placement,
// side to move, castling rights, and en passant target. Used by the
// driver's incremental-vs-full-reset heuristic.
func (b Board) Equal(other Board) bool {
	return b.squares == other.squares &&
		b.SideToMove == other.SideToMove &&
		b.Castling == other.Castling &&
		b.EnPassant == other.EnPassant
}

// FromFEN parses a FEN position string (fields after the board layout
// are optional and default sensibly if absent).
func FromFEN(fen string) (Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return Board{}, fmt.Errorf("empty FEN")
	}
	var b Board
	for i := range b.squares {
		b.squares[i] = occupant{piece: NoPiece}
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Board{}, fmt.Errorf("FEN board must have 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			if file > 7 {
				return Board{}, fmt.Errorf("FEN rank %d overflows", rank)
			}
			color := White
			lower := c
			if c >= 'a' && c <= 'z' {
				color = Black
			} else {
				lower = c + ('a' - 'A')
			}
			piece, err := pieceFromLetter(byte(lower))
			if err != nil {
				return Board{}, fmt.Errorf("bad FEN piece %q: %w", c, err)
			}
			b.squares[NewSquare(file, rank)] = occupant{piece: piece, color: color}
			file++
		}
	}

	b.SideToMove = White
	if len(fields) > 1 && fields[1] == "b" {
		b.SideToMove = Black
	}

	b.Castling = CastlingRights{}
	if len(fields) > 2 {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				b.Castling.WhiteKingside = true
			case 'Q':
				b.Castling.WhiteQueenside = true
			case 'k':
				b.Castling.BlackKingside = true
			case 'q':
				b.Castling.BlackQueenside = true
			}
		}
	}

	b.EnPassant = NoSquare
	if len(fields) > 3 && fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Board{}, fmt.Errorf("bad en passant target: %w", err)
		}
		b.EnPassant = sq
	}

	return b, nil
}

// FEN formats the board as a FEN string. Halfmove clock and fullmove
// number are not tracked by the mirror (the firmware is the sole
// authority on them) so they are always emitted as "0 1".
func (b Board) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			o := b.squares[NewSquare(f, r)]
			if o.piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := o.piece.letter()
			if o.color == White {
				letter = letter - ('a' - 'A')
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	any := false
	if b.Castling.WhiteKingside {
		sb.WriteByte('K')
		any = true
	}
	if b.Castling.WhiteQueenside {
		sb.WriteByte('Q')
		any = true
	}
	if b.Castling.BlackKingside {
		sb.WriteByte('k')
		any = true
	}
	if b.Castling.BlackQueenside {
		sb.WriteByte('q')
		any = true
	}
	if !any {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.EnPassant.String())
	sb.WriteString(" 0 1")
	return sb.String()
}

func (b Board) String() string {
	return b.FEN()
}
