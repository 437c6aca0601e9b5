package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBasicCommands(t *testing.T) {
	assert.Equal(t, KindUCI, Parse("uci").Kind)
	assert.Equal(t, KindIsReady, Parse("isready").Kind)
	assert.Equal(t, KindUCINewGame, Parse("ucinewgame").Kind)
	assert.Equal(t, KindQuit, Parse("quit").Kind)
	assert.Equal(t, KindGo, Parse("go infinite").Kind)
	assert.Equal(t, KindUnknown, Parse("").Kind)
	assert.Equal(t, KindUnknown, Parse("blarg").Kind)
}

func TestParseSetOption(t *testing.T) {
	m := Parse("setoption name Difficulty value 7")
	assert.Equal(t, KindSetOption, m.Kind)
	assert.Equal(t, "Difficulty", m.OptionName)
	assert.Equal(t, "7", m.OptionValue)
}

func TestParseSetOptionMultiWordName(t *testing.T) {
	m := Parse("setoption name Own Book value true")
	assert.Equal(t, "Own Book", m.OptionName)
	assert.Equal(t, "true", m.OptionValue)
}

func TestParsePositionStartpos(t *testing.T) {
	m := Parse("position startpos moves e2e4 e7e5")
	assert.Equal(t, KindPosition, m.Kind)
	assert.True(t, m.Startpos)
	assert.Equal(t, []string{"e2e4", "e7e5"}, m.Moves)
}

func TestParsePositionStartposNoMoves(t *testing.T) {
	m := Parse("position startpos")
	assert.True(t, m.Startpos)
	assert.Empty(t, m.Moves)
}

func TestParsePositionFEN(t *testing.T) {
	fen := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	m := Parse("position fen " + fen + " moves e2e4")
	assert.Equal(t, KindPosition, m.Kind)
	assert.False(t, m.Startpos)
	assert.Equal(t, fen, m.FEN)
	assert.Equal(t, []string{"e2e4"}, m.Moves)
}

func TestOutputFormatting(t *testing.T) {
	assert.Equal(t, "id name Mephisto MM2", Id{Name: "Mephisto MM2"}.String())
	assert.Equal(t, "id author Ulf Rathsman", Id{Author: "Ulf Rathsman"}.String())
	assert.Equal(t, "option name Difficulty type spin default 1 min 1 max 10",
		SpinOption{Name: "Difficulty", Default: 1, Min: 1, Max: 10}.String())
	assert.Equal(t, "option name OwnBook type check default true",
		CheckOption{Name: "OwnBook", Default: true}.String())
	assert.Equal(t, "info score mate 3", InfoMate(3))
	assert.Equal(t, "bestmove e2e4", BestMove("e2e4", ""))
	assert.Equal(t, "bestmove e2e4 ponder e7e5", BestMove("e2e4", "e7e5"))
}
