package format_test

import (
	"strings"
	"testing"

	"github.com/Shadowcat650/rchess/fen"
	"github.com/Shadowcat650/rchess/format"
	"github.com/Shadowcat650/rchess/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const initialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestParseMoveAcceptsLegalDoublePawnPush(t *testing.T) {
	pos, _, err := fen.Load(initialFEN)
	require.NoError(t, err)

	mv, err := format.ParseMove(pos, "e2e4")
	require.NoError(t, err)
	assert.Equal(t, types.DoublePawnPush, mv.Kind)
}

func TestParseMoveRejectsMalformedSyntax(t *testing.T) {
	pos, _, err := fen.Load(initialFEN)
	require.NoError(t, err)

	for _, s := range []string{"", "e2", "e2e4qq", "i2e4", "e2e9"} {
		_, err := format.ParseMove(pos, s)
		assert.ErrorIs(t, err, format.ErrInvalidMove, "input %q", s)
	}
}

func TestParseMoveRejectsIllegalButWellFormed(t *testing.T) {
	pos, _, err := fen.Load(initialFEN)
	require.NoError(t, err)

	_, err = format.ParseMove(pos, "e2e5")
	assert.ErrorIs(t, err, format.ErrIllegalMove)
}

func TestParseMoveDistinguishesPromotionTargets(t *testing.T) {
	pos, _, err := fen.Load("3k4/PK6/8/8/8/8/8/8 w - - 0 1")
	require.NoError(t, err)

	mv, err := format.ParseMove(pos, "a7a8q")
	require.NoError(t, err)
	assert.Equal(t, types.Queen, mv.Target)

	mv, err = format.ParseMove(pos, "a7a8n")
	require.NoError(t, err)
	assert.Equal(t, types.Knight, mv.Target)
}

func TestMoveRendersUCIString(t *testing.T) {
	mv := types.NewQuietMove(types.NewSquare(types.FileE, types.Rank2), types.NewSquare(types.FileE, types.Rank4), types.Pawn)
	assert.Equal(t, "e2e4", format.Move(mv))
}

func TestPositionDisplayHasEightRanksAndFileLabels(t *testing.T) {
	pos, _, err := fen.Load(initialFEN)
	require.NoError(t, err)

	out := format.Position(pos)
	assert.Equal(t, 9, strings.Count(out, "\n"))
	assert.Contains(t, out, "a  b  c  d  e  f  g  h")
	assert.Contains(t, out, "P")
	assert.Contains(t, out, "p")
}
