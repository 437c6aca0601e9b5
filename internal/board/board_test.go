package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPositionFEN(t *testing.T) {
	b := Default()
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", b.FEN())
}

func TestFENRoundTrip(t *testing.T) {
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 1"
	b, err := FromFEN(fen)
	require.NoError(t, err)
	assert.Equal(t, fen, b.FEN())
}

func TestStartposPawnPushLegal(t *testing.T) {
	b := Default()
	m, err := ParseMove("e2e4")
	require.NoError(t, err)
	assert.True(t, b.Legal(m))
}

func TestCannotCaptureOwnPiece(t *testing.T) {
	b := Default()
	m := Move{From: NewSquare(0, 0), To: NewSquare(0, 1)} // Ra1-a2, own pawn
	assert.False(t, b.Legal(m))
}

func TestBlockedSliderIsIllegal(t *testing.T) {
	b := Default()
	m, err := ParseMove("a1a4")
	require.NoError(t, err)
	assert.False(t, b.Legal(m)) // rook blocked by own pawn on a2
}

func TestPawnDoublePushSetsEnPassantTarget(t *testing.T) {
	b := Default()
	m, err := ParseMove("e2e4")
	require.NoError(t, err)
	next := b.MakeMove(m)
	assert.Equal(t, NewSquare(4, 2), next.EnPassant)
}

func TestEnPassantCapture(t *testing.T) {
	b, err := FromFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	m, err := ParseMove("e5d6")
	require.NoError(t, err)
	require.True(t, b.Legal(m))
	next := b.MakeMove(m)
	_, _, captured := next.PieceOn(NewSquare(3, 4)) // d5 should now be empty
	assert.False(t, captured)
}

func TestCastlingKingsideWhenClear(t *testing.T) {
	b, err := FromFEN("rnbqk2r/pppp1ppp/5n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 1")
	require.NoError(t, err)
	m, err := ParseMove("e1g1")
	require.NoError(t, err)
	require.True(t, b.Legal(m))
	assert.True(t, b.IsCastling(m))
	next := b.MakeMove(m)
	p, c, ok := next.PieceOn(NewSquare(5, 0)) // f1
	require.True(t, ok)
	assert.Equal(t, Rook, p)
	assert.Equal(t, White, c)
	assert.False(t, next.Castling.WhiteKingside)
}

func TestCannotCastleThroughCheck(t *testing.T) {
	// black rook on f8 rakes down the open f-file, attacking f1 (the
	// square the king must pass through to castle kingside).
	b, err := FromFEN("4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	m, err := ParseMove("e1g1")
	require.NoError(t, err)
	assert.False(t, b.Legal(m))
}

func TestPinnedPieceCannotMoveOffFile(t *testing.T) {
	// White king e1, white rook e2 blocking a black rook on e8.
	// Moving the rook off the e-file would expose the king to check;
	// moving it along the file stays legal.
	b, err := FromFEN("4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	require.NoError(t, err)
	m, err := ParseMove("e2d2")
	require.NoError(t, err)
	assert.False(t, b.Legal(m))

	alongFile, err := ParseMove("e2e3")
	require.NoError(t, err)
	assert.True(t, b.Legal(alongFile))
}

func TestPromotion(t *testing.T) {
	b, err := FromFEN("8/4P3/8/8/8/8/8/4k2K w - - 0 1")
	require.NoError(t, err)
	m, err := ParseMove("e7e8q")
	require.NoError(t, err)
	require.True(t, b.Legal(m))
	next := b.MakeMove(m)
	p, c, ok := next.PieceOn(NewSquare(4, 7))
	require.True(t, ok)
	assert.Equal(t, Queen, p)
	assert.Equal(t, White, c)
}

func TestInCheckDetection(t *testing.T) {
	b, err := FromFEN("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, b.InCheck(White))
}
