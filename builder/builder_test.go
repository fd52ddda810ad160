package builder_test

import (
	"testing"

	"github.com/Shadowcat650/rchess/builder"
	"github.com/Shadowcat650/rchess/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sq(s string) types.Square {
	v, _ := types.SquareFromString(s)
	return v
}

func startingPieces(b *builder.Builder) *builder.Builder {
	for _, f := range []types.File{types.FileA, types.FileB, types.FileC, types.FileD, types.FileE, types.FileF, types.FileG, types.FileH} {
		b.Piece(types.NewSquare(f, types.Rank2), types.Pawn, types.White)
		b.Piece(types.NewSquare(f, types.Rank7), types.Pawn, types.Black)
	}
	back := [...]types.PieceType{types.Rook, types.Knight, types.Bishop, types.Queen, types.King, types.Bishop, types.Knight, types.Rook}
	for i, pt := range back {
		b.Piece(types.NewSquare(types.File(i), types.Rank1), pt, types.White)
		b.Piece(types.NewSquare(types.File(i), types.Rank8), pt, types.Black)
	}
	return b
}

func TestBuilderAssemblesStartingPosition(t *testing.T) {
	b := builder.New()
	startingPieces(b).Turn(types.White).
		CastleRight(types.White, types.Kingside).
		CastleRight(types.White, types.Queenside).
		CastleRight(types.Black, types.Kingside).
		CastleRight(types.Black, types.Queenside)

	pos, err := b.Finish()
	require.NoError(t, err)
	assert.Equal(t, types.White, pos.Turn)
	assert.Equal(t, types.NoSquare, pos.EPSquare)
	assert.True(t, pos.IsCastleRightSet(types.White, types.Kingside))
	assert.True(t, pos.IsCastleRightSet(types.Black, types.Queenside))
}

func TestBuilderRejectsPawnOnBackRank(t *testing.T) {
	b := builder.New()
	b.Piece(sq("a1"), types.Pawn, types.White)
	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrPawnOnLast)
}

func TestBuilderRejectsTwoPiecesOnOneSquare(t *testing.T) {
	b := builder.New()
	b.Piece(sq("e4"), types.Knight, types.White)
	b.Piece(sq("e4"), types.Bishop, types.Black)
	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrTwoPieces)
}

func TestBuilderRejectsTwoKingsSameColor(t *testing.T) {
	b := builder.New()
	b.Piece(sq("e1"), types.King, types.White)
	b.Piece(sq("e8"), types.King, types.White)
	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrTwoKings)
}

func TestBuilderRequiresExactlyOneKingPerSide(t *testing.T) {
	b := builder.New()
	b.Piece(sq("e1"), types.King, types.White)
	b.Turn(types.White)
	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrMissingKing)
}

func TestBuilderRequiresTurn(t *testing.T) {
	b := builder.New()
	b.Piece(sq("e1"), types.King, types.White)
	b.Piece(sq("e8"), types.King, types.Black)
	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrTurnNotSet)
}

func TestBuilderRejectsCastleRightWithoutRookOnHomeSquare(t *testing.T) {
	b := builder.New()
	b.Piece(sq("e1"), types.King, types.White)
	b.Piece(sq("e8"), types.King, types.Black)
	b.Turn(types.White)
	b.CastleRight(types.White, types.Kingside)
	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrInvalidCastleRight)
}

func TestBuilderRejectsInconsistentEnPassant(t *testing.T) {
	b := builder.New()
	b.Piece(sq("e1"), types.King, types.White)
	b.Piece(sq("e8"), types.King, types.Black)
	b.Turn(types.White)
	b.EnPassant(sq("e6"))
	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrInvalidEnPassant)
}

func TestBuilderAcceptsConsistentEnPassant(t *testing.T) {
	b := builder.New()
	b.Piece(sq("e1"), types.King, types.White)
	b.Piece(sq("e8"), types.King, types.Black)
	b.Piece(sq("e5"), types.Pawn, types.Black)
	b.Turn(types.White)
	b.EnPassant(sq("e6"))
	pos, err := b.Finish()
	require.NoError(t, err)
	assert.Equal(t, sq("e6"), pos.EPSquare)
}

func TestBuilderRejectsInactiveKingAttacked(t *testing.T) {
	b := builder.New()
	b.Piece(sq("e1"), types.King, types.White)
	b.Piece(sq("e8"), types.King, types.Black)
	b.Piece(sq("e2"), types.Rook, types.White)
	b.Turn(types.White)
	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrInactiveKingAttacked)
}

func TestBuilderErrorIsFirstErrorWins(t *testing.T) {
	b := builder.New()
	b.Piece(sq("a1"), types.Pawn, types.White) // first error: pawn on back rank
	b.Piece(sq("b1"), types.King, types.White) // ignored, builder already failed
	b.Turn(types.White)
	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrPawnOnLast)
}

func TestBuilderRejectsTurnSetTwice(t *testing.T) {
	b := builder.New()
	b.Turn(types.White)
	b.Turn(types.Black)
	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrTurnAlreadySet)
}

func TestBuilderRejectsCastleRightSetTwice(t *testing.T) {
	b := builder.New()
	b.Piece(sq("e1"), types.King, types.White)
	b.Piece(sq("e8"), types.King, types.Black)
	b.Piece(sq("h1"), types.Rook, types.White)
	b.Turn(types.White)
	b.CastleRight(types.White, types.Kingside)
	b.CastleRight(types.White, types.Kingside)
	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrCastleRightAlreadySet)
}

func TestBuilderRejectsEnPassantSetTwice(t *testing.T) {
	b := builder.New()
	b.Piece(sq("e1"), types.King, types.White)
	b.Piece(sq("e8"), types.King, types.Black)
	b.Turn(types.White)
	b.EnPassant(sq("e6"))
	b.EnPassant(sq("d6"))
	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrEnPassantAlreadySet)
}

func TestBuilderRejectsTooManyPiecesForOneColor(t *testing.T) {
	b := builder.New()
	b.Piece(sq("e1"), types.King, types.White)
	b.Piece(sq("e8"), types.King, types.Black)

	knightSquares := []string{
		"a2", "b2", "c2", "d2", "f2", "g2", "h2",
		"a3", "b3", "c3", "d3", "f3", "g3", "h3",
		"a4", "b4", "c4", "d4",
	}
	require.Len(t, knightSquares, 18) // plus the king already placed: 19 total
	for _, s := range knightSquares {
		b.Piece(sq(s), types.Knight, types.White)
	}
	b.Turn(types.White)

	_, err := b.Finish()
	assert.ErrorIs(t, err, builder.ErrTooManyPieces)
}

func TestBuilderRoundTripOrderIndependentHash(t *testing.T) {
	b1 := builder.New()
	b1.Piece(sq("e1"), types.King, types.White)
	b1.Piece(sq("e8"), types.King, types.Black)
	b1.Piece(sq("d4"), types.Queen, types.White)
	b1.Turn(types.White)
	pos1, err := b1.Finish()
	require.NoError(t, err)

	b2 := builder.New()
	b2.Piece(sq("d4"), types.Queen, types.White)
	b2.Piece(sq("e8"), types.King, types.Black)
	b2.Piece(sq("e1"), types.King, types.White)
	b2.Turn(types.White)
	pos2, err := b2.Finish()
	require.NoError(t, err)

	assert.Equal(t, pos1.Hash, pos2.Hash)
}
