package driver

// button is a single keypad position, numbered exactly as the
// firmware's matrix expects: 0-7 on row 0, 8-15 on row 1.
type button int

const (
	btnCL button = iota
	btnPOS
	btnMEM
	btnINFO
	btnLEV
	btnENT
	btnRightWhite0
	btnLeftBlack9
	btnE5Queen
	btnF6King
	btnG7
	btnA1Pawn
	btnH8
	btnB2Knight
	btnC3Bishop
	btnD4Rook
)

// pieceButtons maps a board.Piece (Pawn..King) to the keypad button
// used to enter that piece kind, matching the physical board's
// piece-set layout printed on the squares themselves.
var pieceButtons = [6]button{
	btnA1Pawn,
	btnB2Knight,
	btnC3Bishop,
	btnD4Rook,
	btnE5Queen,
	btnF6King,
}

// difficultyButtons maps a zero-based difficulty level (0-9) to the
// button pressed after LEV to select it.
var difficultyButtons = [10]button{
	btnA1Pawn,
	btnB2Knight,
	btnC3Bishop,
	btnD4Rook,
	btnE5Queen,
	btnF6King,
	btnG7,
	btnH8,
	btnLeftBlack9,
	btnRightWhite0,
}
