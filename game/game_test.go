package game_test

import (
	"testing"

	"github.com/Shadowcat650/rchess/fen"
	"github.com/Shadowcat650/rchess/format"
	"github.com/Shadowcat650/rchess/game"
	"github.com/Shadowcat650/rchess/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const initialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func playUCI(t *testing.T, g *game.Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		mv, err := format.ParseMove(g.Position, s)
		require.NoError(t, err, "parsing %q", s)
		require.NoError(t, g.MakeMove(mv))
	}
}

func TestFoolsMateBlackWins(t *testing.T) {
	pos, _, err := fen.Load(initialFEN)
	require.NoError(t, err)
	g := game.New(pos)

	playUCI(t, g, "f2f3", "e7e6", "g2g4", "d8h4")

	require.NotNil(t, g.Result)
	assert.False(t, g.Result.Draw)
	assert.Equal(t, types.Black, g.Result.Winner)
}

func TestThreefoldRepetition(t *testing.T) {
	pos, _, err := fen.Load(initialFEN)
	require.NoError(t, err)
	g := game.New(pos)

	playUCI(t, g, "g1f3", "b8a6", "f3g1", "a6b8", "g1f3", "b8a6", "f3g1", "a6b8")

	require.NotNil(t, g.Result)
	assert.True(t, g.Result.Draw)
	assert.Equal(t, game.ThreefoldRepetition, g.Result.Reason)
}

func TestStalemateAtConstruction(t *testing.T) {
	pos, _, err := fen.Load("1r5k/8/8/8/8/8/7r/K7 w - - 0 1")
	require.NoError(t, err)

	g := game.New(pos)
	require.NotNil(t, g.Result)
	assert.True(t, g.Result.Draw)
	assert.Equal(t, game.Stalemate, g.Result.Reason)
	assert.Zero(t, g.Legal.Count)
}

func TestInsufficientMaterialAfterUnderpromotion(t *testing.T) {
	pos, _, err := fen.Load("3k4/PK6/8/8/8/8/8/8 w - - 0 1")
	require.NoError(t, err)
	g := game.New(pos)

	playUCI(t, g, "a7a8n")

	require.NotNil(t, g.Result)
	assert.True(t, g.Result.Draw)
	assert.Equal(t, game.InsufficientMaterial, g.Result.Reason)
}

func TestFiftyMoveRuleAtConstruction(t *testing.T) {
	pos, _, err := fen.Load("4k3/8/8/8/8/8/8/4K3 w - - 100 80")
	require.NoError(t, err)

	g := game.New(pos)
	require.NotNil(t, g.Result)
	assert.True(t, g.Result.Draw)
	assert.Equal(t, game.FiftyMoves, g.Result.Reason)
}

func TestMakeMoveRefusedAfterGameOver(t *testing.T) {
	pos, _, err := fen.Load("1r5k/8/8/8/8/8/7r/K7 w - - 0 1")
	require.NoError(t, err)
	g := game.New(pos)
	require.NotNil(t, g.Result)

	err = g.MakeMove(types.NewQuietMove(0, 1, types.King))
	assert.ErrorIs(t, err, game.ErrGameOver)
}

func TestIsLegalReflectsCurrentPosition(t *testing.T) {
	pos, _, err := fen.Load(initialFEN)
	require.NoError(t, err)
	g := game.New(pos)

	mv, err := format.ParseMove(g.Position, "e2e4")
	require.NoError(t, err)
	assert.True(t, g.IsLegal(mv))

	illegal := types.NewQuietMove(0, 63, types.King)
	assert.False(t, g.IsLegal(illegal))
}
