package zobrist_test

import (
	"testing"

	"github.com/Shadowcat650/rchess/types"
	"github.com/Shadowcat650/rchess/zobrist"
	"github.com/stretchr/testify/assert"
)

func TestInitTablesIsDeterministic(t *testing.T) {
	// InitTables is seeded and idempotent: calling it again must not change
	// already-published keys, and a fresh process computing the same table
	// would derive identical values since the seed is fixed.
	before := zobrist.PieceKey(types.White, types.Pawn, types.NewSquare(types.FileE, types.Rank2))
	zobrist.InitTables()
	after := zobrist.PieceKey(types.White, types.Pawn, types.NewSquare(types.FileE, types.Rank2))
	assert.Equal(t, before, after)
}

func TestKeysAreDistinctAcrossSquaresAndKinds(t *testing.T) {
	a := zobrist.PieceKey(types.White, types.Pawn, types.NewSquare(types.FileE, types.Rank2))
	b := zobrist.PieceKey(types.White, types.Pawn, types.NewSquare(types.FileE, types.Rank4))
	c := zobrist.PieceKey(types.White, types.Knight, types.NewSquare(types.FileE, types.Rank2))
	d := zobrist.PieceKey(types.Black, types.Pawn, types.NewSquare(types.FileE, types.Rank2))

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}

func TestComputeTogglesTurnKey(t *testing.T) {
	var pieceBB [types.NumPieceTypes]types.Bitboard
	var colorBB [2]types.Bitboard

	whiteHash := zobrist.Compute(pieceBB, colorBB, 0, types.NoSquare, types.White)
	blackHash := zobrist.Compute(pieceBB, colorBB, 0, types.NoSquare, types.Black)

	assert.Equal(t, whiteHash^zobrist.TurnZ, blackHash)
}

func TestComputeIgnoresEmptyEPSquare(t *testing.T) {
	var pieceBB [types.NumPieceTypes]types.Bitboard
	var colorBB [2]types.Bitboard

	withNoEP := zobrist.Compute(pieceBB, colorBB, 0, types.NoSquare, types.White)
	withEP := zobrist.Compute(pieceBB, colorBB, 0, types.NewSquare(types.FileE, types.Rank3), types.White)

	assert.NotEqual(t, withNoEP, withEP)
}
