package types_test

import (
	"testing"

	"github.com/Shadowcat650/rchess/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareRoundTrip(t *testing.T) {
	for f := types.FileA; f <= types.FileH; f++ {
		for r := types.Rank1; r <= types.Rank8; r++ {
			sq := types.NewSquare(f, r)
			assert.Equal(t, f, sq.File())
			assert.Equal(t, r, sq.Rank())

			parsed, ok := types.SquareFromString(sq.String())
			require.True(t, ok)
			assert.Equal(t, sq, parsed)
		}
	}
}

func TestSquareFromStringRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "a", "a9", "i1", "A1", "11", "aa"} {
		_, ok := types.SquareFromString(s)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestSquareNamedCorners(t *testing.T) {
	a1, _ := types.SquareFromString("a1")
	h1, _ := types.SquareFromString("h1")
	a8, _ := types.SquareFromString("a8")
	h8, _ := types.SquareFromString("h8")
	assert.Equal(t, types.Square(0), a1)
	assert.Equal(t, types.Square(7), h1)
	assert.Equal(t, types.Square(56), a8)
	assert.Equal(t, types.Square(63), h8)
}

func TestBitboardSetClearHas(t *testing.T) {
	var b types.Bitboard
	sq := types.NewSquare(types.FileE, types.Rank4)

	assert.False(t, b.Has(sq))
	b = b.Set(sq)
	assert.True(t, b.Has(sq))
	assert.Equal(t, 1, b.PopCount())

	b = b.Clear(sq)
	assert.True(t, b.IsEmpty())
}

func TestBitboardLSBMSBPopLSB(t *testing.T) {
	b := types.NewSquare(types.FileA, types.Rank1).Bitboard().
		Union(types.NewSquare(types.FileD, types.Rank4).Bitboard()).
		Union(types.NewSquare(types.FileH, types.Rank8).Bitboard())

	assert.Equal(t, types.NewSquare(types.FileA, types.Rank1), b.LSB())
	assert.Equal(t, types.NewSquare(types.FileH, types.Rank8), b.MSB())

	first := b.PopLSB()
	assert.Equal(t, types.NewSquare(types.FileA, types.Rank1), first)
	assert.Equal(t, 2, b.PopCount())
}

func TestBitboardShiftOffEdgeIsEmpty(t *testing.T) {
	// Shifting file-A squares West, file-H squares East, rank-1 squares
	// South, and rank-8 squares North must all vanish off the board.
	assert.True(t, types.FileABB.Shift(types.West).IsEmpty())
	assert.True(t, types.FileHBB.Shift(types.East).IsEmpty())
	assert.True(t, types.Rank1BB.Shift(types.South).IsEmpty())
	assert.True(t, types.Rank8BB.Shift(types.North).IsEmpty())
}

func TestBitboardShiftUpThenDownIsIdentity(t *testing.T) {
	// Restricted to squares that do not fall off the board when shifted up,
	// shifting up then down must recover the original set.
	interior := types.Rank8BB.Complement()
	up := interior.Shift(types.North)
	down := up.Shift(types.South)
	assert.Equal(t, interior, down)
}

func TestCastlingRightsIndependentBits(t *testing.T) {
	var cr types.CastlingRights
	assert.True(t, cr.IsEmpty())

	cr = cr.Set(types.White, types.Kingside)
	assert.True(t, cr.IsSet(types.White, types.Kingside))
	assert.False(t, cr.IsSet(types.White, types.Queenside))
	assert.False(t, cr.IsSet(types.Black, types.Kingside))

	cr = cr.Set(types.Black, types.Queenside)
	cr = cr.Unset(types.White, types.Kingside)
	assert.False(t, cr.IsSet(types.White, types.Kingside))
	assert.True(t, cr.IsSet(types.Black, types.Queenside))

	cr = cr.UnsetColor(types.Black)
	assert.True(t, cr.IsEmpty())
}

func TestMoveStringRendersPromotion(t *testing.T) {
	start := types.NewSquare(types.FileA, types.Rank7)
	end := types.NewSquare(types.FileA, types.Rank8)

	m := types.NewPromoteMove(start, end, types.Queen)
	assert.Equal(t, "a7a8q", m.String())

	plain := types.NewQuietMove(start, end, types.Pawn)
	assert.Equal(t, "a7a8", plain.String())
}

func TestMoveListPushAndIterate(t *testing.T) {
	var list types.MoveList
	a := types.NewQuietMove(types.NewSquare(types.FileE, types.Rank2), types.NewSquare(types.FileE, types.Rank4), types.Pawn)
	b := types.NewQuietMove(types.NewSquare(types.FileD, types.Rank2), types.NewSquare(types.FileD, types.Rank4), types.Pawn)

	list.Push(a)
	list.Push(b)

	require.Equal(t, 2, list.Count)
	assert.Equal(t, []types.Move{a, b}, list.Slice())

	var seen []types.Move
	list.All()(func(m types.Move) bool {
		seen = append(seen, m)
		return true
	})
	assert.Equal(t, []types.Move{a, b}, seen)
}

func TestPieceLetterCasing(t *testing.T) {
	wp := types.NewPiece(types.White, types.Pawn)
	bp := types.NewPiece(types.Black, types.Pawn)
	assert.Equal(t, byte('P'), wp.Letter())
	assert.Equal(t, byte('p'), bp.Letter())
	assert.Equal(t, types.White, wp.Color())
	assert.Equal(t, types.Pawn, wp.Type())
}
