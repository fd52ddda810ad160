// Package format renders positions and moves as human-readable text and
// parses the algebraic move-string syntax back into candidate moves. None
// of it is part of any persistence contract; see package fen for that.
package format

import (
	"errors"
	"strings"

	"github.com/Shadowcat650/rchess/movegen"
	"github.com/Shadowcat650/rchess/position"
	"github.com/Shadowcat650/rchess/types"
)

// ErrInvalidMove reports a move string that does not match <startsq><endsq>[<promo>].
var ErrInvalidMove = errors.New("format: malformed move string")

// ErrIllegalMove reports a syntactically valid move string that does not match
// any legal move in the position.
var ErrIllegalMove = errors.New("format: move is not legal in this position")

var promoLetters = map[byte]types.PieceType{
	'n': types.Knight, 'b': types.Bishop, 'r': types.Rook, 'q': types.Queen,
}

// ParseMove parses a move string of the form <startsq><endsq>[<promo>] and
// checks it against the position's legal moves. A string that parses but
// names no legal move yields ErrIllegalMove; one that fails to parse at all
// yields ErrInvalidMove.
func ParseMove(p *position.Position, s string) (types.Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return types.Move{}, ErrInvalidMove
	}
	start, ok := types.SquareFromString(s[0:2])
	if !ok {
		return types.Move{}, ErrInvalidMove
	}
	end, ok := types.SquareFromString(s[2:4])
	if !ok {
		return types.Move{}, ErrInvalidMove
	}

	var wantPromo types.PieceType
	wantsPromo := false
	if len(s) == 5 {
		pt, ok := promoLetters[s[4]]
		if !ok {
			return types.Move{}, ErrInvalidMove
		}
		wantPromo, wantsPromo = pt, true
	}

	if !movegen.LegalTargets(p, start).Has(end) {
		return types.Move{}, ErrIllegalMove
	}

	list := movegen.GenerateMoves(p, false)
	for _, m := range list.Slice() {
		if m.Start != start || m.End != end {
			continue
		}
		if m.IsPromotion() {
			if !wantsPromo || m.Target != wantPromo {
				continue
			}
		} else if wantsPromo {
			continue
		}
		return m, nil
	}
	return types.Move{}, ErrIllegalMove
}

// Move renders a move in <startsq><endsq>[<promo>] form.
func Move(m types.Move) string {
	return m.String()
}

// Position renders the position as 8 ranks top-to-bottom, pieces as
// case-coded letters (uppercase White, lowercase Black) and '-' for empty
// squares, with rank and file labels.
func Position(p *position.Position) string {
	var sb strings.Builder

	for rank := types.Rank8; ; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteString("  ")
		for file := types.FileA; file <= types.FileH; file++ {
			sq := types.NewSquare(file, rank)
			pt, color, ok := p.PieceAt(sq)
			if !ok {
				sb.WriteByte('-')
			} else {
				letter := pt.Letter()
				if color == types.Black {
					letter |= 0x20
				}
				sb.WriteByte(letter)
			}
			sb.WriteString("  ")
		}
		sb.WriteByte('\n')
		if rank == types.Rank1 {
			break
		}
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")

	return sb.String()
}

// Bitboard renders a single bitboard as an 8x8 grid of '1'/'.' characters,
// useful for debugging attack tables and masks.
func Bitboard(b types.Bitboard) string {
	var sb strings.Builder

	for rank := types.Rank8; ; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteString("  ")
		for file := types.FileA; file <= types.FileH; file++ {
			sq := types.NewSquare(file, rank)
			if b.Has(sq) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
			sb.WriteString("  ")
		}
		sb.WriteByte('\n')
		if rank == types.Rank1 {
			break
		}
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")

	return sb.String()
}
