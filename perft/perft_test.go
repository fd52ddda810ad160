package perft_test

import (
	"testing"

	"github.com/Shadowcat650/rchess/fen"
	"github.com/Shadowcat650/rchess/perft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const initialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestPerftDepthZeroIsOneNode(t *testing.T) {
	pos, _, err := fen.Load(initialFEN)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), perft.Perft(pos, 0))
}

func TestPerftStartingPositionDepthThree(t *testing.T) {
	pos, _, err := fen.Load(initialFEN)
	require.NoError(t, err)
	assert.Equal(t, uint64(8902), perft.Perft(pos, 3))
}

func TestDebugPerftBreakdownSumsToTotal(t *testing.T) {
	pos, _, err := fen.Load(initialFEN)
	require.NoError(t, err)

	breakdown, total := perft.DebugPerft(pos, 2)
	require.Len(t, breakdown, 20)

	var sum uint64
	for _, rc := range breakdown {
		sum += rc.Nodes
	}
	assert.Equal(t, total, sum)
	assert.Equal(t, uint64(400), total)
}

func TestPerftDoesNotMutateRootPosition(t *testing.T) {
	pos, _, err := fen.Load(initialFEN)
	require.NoError(t, err)
	before := *pos

	perft.Perft(pos, 3)

	assert.Equal(t, before, *pos)
}
