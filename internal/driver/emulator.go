package driver

import (
	"strconv"
	"strings"

	"github.com/BierLiebHaber/mephisto-emu/internal/board"
	"github.com/BierLiebHaber/mephisto-emu/internal/display"
)

// SetDifficulty sets the firmware's playing strength, 1 (weakest) to
// 10 (strongest). A cold reset forgets the level, so setDefaultPos
// calls this again afterwards; SetFEN does not.
func (m *Machine) SetDifficulty(n int) error {
	if n < 1 || n > 10 {
		return &InvalidDifficultyError{Requested: n}
	}
	m.difficulty = n - 1
	m.pressKey(btnLEV)
	m.pressKey(difficultyButtons[m.difficulty])
	m.pressKey(btnENT)
	return nil
}

// setDefaultPos resets the bitboard and mirror to the standard
// starting position, re-initializes, and reapplies the current
// difficulty (cold resets forget it).
func (m *Machine) setDefaultPos() {
	m.Sys.Bitboard = [8]byte{0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0, 0}
	m.Cur = board.Default()
	m.Init()
	// difficulty is already valid (1-10 internally 0-9); re-press it.
	_ = m.SetDifficulty(m.difficulty + 1)
}

// SetFEN drives the firmware to an arbitrary position described by
// fen, or the standard start if fen == "startpos". A FEN the board
// package cannot parse is logged and treated as startpos, matching
// the firmware's own forgiving behavior around malformed input.
func (m *Machine) SetFEN(fen string) {
	if fen == "startpos" {
		m.setDefaultPos()
		return
	}
	b, err := board.FromFEN(fen)
	if err != nil {
		Log.WithError(&InvalidFENError{FEN: fen, Underlying: err}).
			Warn("invalid FEN, falling back to startpos")
		m.setDefaultPos()
		return
	}

	m.Sys.Bitboard = [8]byte{}
	m.Cur = b
	m.Init()
	m.pressKey(btnPOS)
	m.pressKey(btnENT)
	m.wait1Sec()
	Log.WithField("board", b.FEN()).Debug("cur board")

	lastPiece := board.NoPiece
	lastColor := board.White
	havePlaced := false
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			sq := board.NewSquare(f, r)
			piece, color, ok := b.PieceOn(sq)
			if !ok {
				continue
			}
			if !havePlaced || piece != lastPiece || color != lastColor {
				m.pressKey(pieceButtons[piece])
				if color == board.Black {
					m.pressKey(pieceButtons[piece])
				}
			}
			lastPiece, lastColor, havePlaced = piece, color, true
			Log.WithFields(map[string]any{
				"color": color.String(), "piece": piece.String(), "square": sq.String(),
			}).Debug("placing piece")
			m.makeHalfMove(sq)
			m.wait1Sec()
		}
	}

	m.pressKey(btnCL)
	if b.SideToMove == board.Black {
		m.pressKey(btnPOS)
		m.pressKey(btnLeftBlack9)
		m.pressKey(btnCL)
	}
}

// ForceMoves enters "teach the machine these moves" mode and replays
// each move in turn through PlayMove.
func (m *Machine) ForceMoves(moves []board.Move) {
	m.pressKey(btnLEV)
	m.pressKey(btnMEM)
	m.pressKey(btnENT)
	for _, mv := range moves {
		m.PlayMove(mv)
	}
	m.lastMoveForced = true
}

// SetPosition is the primary entry point from UCI's "position" command.
// It tries to recognize the common case of the GUI simply appending
// one new move to a position already on the board (the "incremental
// fast path") before falling back to a full FEN-and-replay.
func (m *Machine) SetPosition(baseline board.Board, baselineIsStartpos bool, moves []board.Move) {
	if baselineIsStartpos && len(moves) == 0 {
		m.setDefaultPos()
		return
	}
	if baselineIsStartpos && len(moves) == 1 {
		m.setDefaultPos()
		m.PlayMove(moves[0])
		return
	}

	if len(moves) > 0 {
		last := moves[len(moves)-1]
		if m.Cur.Legal(last) {
			candidate := m.Cur.MakeMove(last)

			target := baseline
			for _, mv := range moves {
				target = target.MakeMove(mv)
			}
			if candidate.Equal(target) {
				m.PlayMove(last)
				return
			}
		}
	}

	if baselineIsStartpos {
		m.setDefaultPos()
	} else {
		m.SetFEN(baseline.FEN())
	}
	m.ForceMoves(moves)
}

// PlayMove applies m to both the firmware (via the sensor matrix) and
// the host mirror. It panics if m is not legal against the mirror:
// that indicates the mirror and firmware have already diverged, which
// no further driver operation can safely paper over.
func (m *Machine) PlayMove(mv board.Move) {
	if !m.Cur.Legal(mv) {
		panic(&IllegalMoveError{Move: mv.String(), FEN: m.Cur.FEN()})
	}

	if _, _, occupied := m.Cur.PieceOn(mv.To); occupied {
		m.makeHalfMove(mv.To) // capture: lift the captured piece first
	}

	castling := m.Cur.IsCastling(mv)
	m.Cur = m.Cur.MakeMove(mv)
	m.makeHalfMove(mv.From)
	m.makeHalfMove(mv.To)
	m.toneCount = 0

	if castling {
		rank := mv.From.Rank()
		if mv.To.File() == 6 {
			m.makeHalfMove(board.NewSquare(7, rank))
			m.makeHalfMove(board.NewSquare(5, rank))
		} else {
			m.makeHalfMove(board.NewSquare(0, rank))
			m.makeHalfMove(board.NewSquare(3, rank))
		}
	}

	if mv.Promotion != board.NoPiece {
		m.pressKey(pieceButtons[mv.Promotion])
	}
}

// GenMoveResult is the outcome of soliciting a move from the firmware.
// NoMove is set when the firmware has no move; otherwise Move is the
// chosen move, MateIn is also set for a mate announcement, and Ponder,
// ScoreCP, Nodes and HasScore are filled in for an ordinary move.
type GenMoveResult struct {
	Move      board.Move
	Ponder    *board.Move
	MateIn    *int
	ScoreCP   int
	Nodes     int
	HasScore  bool
	NoMove    bool // firmware reported no legal move (stalemate)
}

// GenMove solicits the firmware's chosen move by polling the display
// until it shows a recognized pattern: a mate announcement, a
// promotion prompt, a completed long-algebraic move, or the
// stalemate/no-move indicator. It is the most involved driver
// operation because the only channel back from the firmware is what
// it chooses to put on a 4-character LCD.
func (m *Machine) GenMove() GenMoveResult {
	for {
		m.wait1Sec()
		if m.lastMoveForced || m.Cur.Equal(board.Default()) {
			m.lastMoveForced = false
			m.pressKey(btnENT)
		}
		m.wait1Sec()

		latches := m.Sys.Display
		if !display.Stable(latches) {
			continue
		}
		text := display.Text(latches)

		switch {
		case strings.HasPrefix(text, " N "):
			return m.genMateMove(text)
		case strings.HasPrefix(text, "Pr"):
			return m.genPromotionMove(text)
		case text == "PLAY":
			m.pressKey(btnENT)
			continue
		case text == "NAT ":
			return GenMoveResult{NoMove: true}
		}

		mv, err := board.ParseMove(strings.ToLower(text))
		if err != nil {
			continue
		}
		return m.genOrdinaryMove(mv)
	}
}

func (m *Machine) genMateMove(text string) GenMoveResult {
	n, err := strconv.Atoi(strings.TrimSpace(text[2:]))
	if err != nil {
		Log.WithField("display", text).Warn("could not parse mate count")
		n = 0
	}

	ledSq := board.Square(m.Sys.LEDSquare)
	if _, color, ok := m.Cur.PieceOn(ledSq); ok && color != m.Cur.SideToMove {
		m.makeHalfMove(ledSq) // capture indicated by firmware: lift it
	}
	start := ledSq
	m.makeHalfMove(start) // lift source
	for start == board.Square(m.Sys.LEDSquare) {
		m.wait1Sec()
	}
	mv := board.Move{From: start, To: board.Square(m.Sys.LEDSquare)}
	m.makeHalfMove(board.Square(m.Sys.LEDSquare)) // place

	if !m.Cur.Legal(mv) {
		mv = board.Move{From: mv.To, To: mv.From}
	}
	m.Cur = m.Cur.MakeMove(mv)
	return GenMoveResult{Move: mv, MateIn: &n}
}

func (m *Machine) genPromotionMove(text string) GenMoveResult {
	start := board.Square(m.Sys.LEDSquare)
	m.makeHalfMove(start)

	var prom board.Piece
	switch rune(text[len(text)-1]) {
	case 'D':
		prom = board.Queen
	case 'T':
		prom = board.Rook
	case '5':
		prom = board.Knight
	case 'L':
		prom = board.Bishop
	default:
		panic(&UnknownPromotionError{Glyph: rune(text[len(text)-1])})
	}

	mv := board.Move{From: start, To: board.Square(m.Sys.LEDSquare), Promotion: prom}
	m.makeHalfMove(board.Square(m.Sys.LEDSquare))
	m.pressKey(pieceButtons[prom])

	m.Cur = m.Cur.MakeMove(mv)
	return GenMoveResult{Move: mv}
}

func (m *Machine) genOrdinaryMove(mv board.Move) GenMoveResult {
	m.PlayMove(mv)

	m.pressKey(btnINFO)
	ponderText := strings.ToLower(display.Text(m.Sys.Display))
	var ponder *board.Move
	if pm, err := board.ParseMove(ponderText); err == nil {
		ponder = &pm
	} else {
		Log.WithField("display", ponderText).Debug("failed to parse ponder move")
	}

	m.pressKey(btnA1Pawn)
	scoreText := decimalText(m.Sys.Display)
	score := 0
	if f, err := strconv.ParseFloat(strings.TrimSpace(scoreText), 32); err == nil {
		score = int(f * 100)
	}

	m.pressKey(btnC3Bishop)
	info := display.Text(m.Sys.Display)
	fields := strings.Split(info, " ")
	nodeStr := "0"
	if len(fields) > 1 {
		nodeStr = fields[1]
	}
	nodes, err := strconv.Atoi(strings.TrimSpace(nodeStr))
	if err != nil {
		Log.WithField("display", info).Debug("could not parse node count")
		nodes = 0
	}

	m.pressKey(btnCL)

	return GenMoveResult{Move: mv, Ponder: ponder, ScoreCP: score, Nodes: nodes, HasScore: true}
}

// decimalText renders a display refresh the way the eval-score prompt
// needs: each glyph followed by a literal '.' wherever its decimal
// point is lit, so a fractional pawn value like "1.25" survives being
// shown across four 7-segment digits.
func decimalText(latches [4]byte) string {
	var sb strings.Builder
	for _, d := range display.Decode(latches) {
		sb.WriteRune(d.Glyph)
		if d.DP {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
