// Package movegen produces the exact set of legal moves for a position,
// pruning pseudo-legal candidates with pin rays, check evasions and
// king-safety tests rather than a slower copy-make-and-recheck approach.
package movegen

import (
	"github.com/Shadowcat650/rchess/magic"
	"github.com/Shadowcat650/rchess/position"
	"github.com/Shadowcat650/rchess/types"
)

type attackFunc func(sq types.Square, occ types.Bitboard) types.Bitboard

// GenerateMoves returns every legal move for the side to move. When
// captureOnly is true the result is restricted to captures (and, when the
// king is in check, every check-evading move regardless of whether it
// captures - evasions take priority over the capture filter).
func GenerateMoves(p *position.Position, captureOnly bool) types.MoveList {
	var list types.MoveList

	if p.Checkers.PopCount() >= 2 {
		generateKingMoves(p, &list, captureOnly)
		return list
	}

	generatePawnMoves(p, &list, captureOnly)
	generateKnightMoves(p, &list, captureOnly)
	generateSliderMoves(p, &list, captureOnly, types.Bishop, magic.BishopAttacks)
	generateSliderMoves(p, &list, captureOnly, types.Rook, magic.RookAttacks)
	generateSliderMoves(p, &list, captureOnly, types.Queen, magic.QueenAttacks)
	generateKingMoves(p, &list, captureOnly)

	return list
}

// LegalTargets returns the destination squares that constitute legal moves
// for whatever piece stands on sq, for the side to move. It is empty when
// the side to move has no piece on sq, or when the king is under double
// check and sq does not hold the king; it is the substrate for "is
// (start,end) legal?" queries built from bare squares.
func LegalTargets(p *position.Position, sq types.Square) types.Bitboard {
	pt, c, ok := p.PieceAt(sq)
	if !ok || c != p.Turn {
		return types.Empty
	}
	if p.Checkers.PopCount() >= 2 && pt != types.King {
		return types.Empty
	}

	var list types.MoveList
	switch pt {
	case types.Pawn:
		generatePawnMoves(p, &list, false)
	case types.Knight:
		generateKnightMoves(p, &list, false)
	case types.Bishop:
		generateSliderMoves(p, &list, false, types.Bishop, magic.BishopAttacks)
	case types.Rook:
		generateSliderMoves(p, &list, false, types.Rook, magic.RookAttacks)
	case types.Queen:
		generateSliderMoves(p, &list, false, types.Queen, magic.QueenAttacks)
	case types.King:
		generateKingMoves(p, &list, false)
	}

	var targets types.Bitboard
	for _, m := range list.Slice() {
		if m.Start == sq {
			targets = targets.Set(m.End)
		}
	}
	return targets
}

// defendingMask returns the squares a non-king move must land on to resolve
// check: the squares between the king and its single checker, plus the
// checker's own square (block or capture). With no checker, every square is
// a valid destination (no restriction); this function is never consulted
// under double check, since only king moves are generated there.
func defendingMask(p *position.Position) types.Bitboard {
	if p.Checkers.IsEmpty() {
		return types.Full
	}
	king := p.KingSquare(p.Turn)
	checker := p.Checkers.LSB()
	return magic.DirectConnections[king][checker].Union(checker.Bitboard())
}

func generateKnightMoves(p *position.Position, list *types.MoveList, captureOnly bool) {
	us := p.Turn
	them := us.Other()
	inCheck := !p.Checkers.IsEmpty()
	dMask := defendingMask(p)

	knights := p.Query(types.Knight, us)
	for knights != 0 {
		sq := knights.PopLSB()
		if p.Pinned.Has(sq) {
			continue
		}

		targets := magic.KnightAttacks[sq].Intersect(p.ColorBB[us].Complement())
		if inCheck {
			targets = targets.Intersect(dMask)
		} else if captureOnly {
			targets = targets.Intersect(p.ColorBB[them])
		}

		for targets != 0 {
			end := targets.PopLSB()
			if p.ColorBB[them].Has(end) {
				list.Push(types.NewCaptureMove(sq, end, types.Knight))
			} else {
				list.Push(types.NewQuietMove(sq, end, types.Knight))
			}
		}
	}
}

func generateSliderMoves(p *position.Position, list *types.MoveList, captureOnly bool, pt types.PieceType, attacks attackFunc) {
	us := p.Turn
	them := us.Other()
	king := p.KingSquare(us)
	occ := p.Occupancy()
	inCheck := !p.Checkers.IsEmpty()
	dMask := defendingMask(p)

	pieces := p.Query(pt, us)
	for pieces != 0 {
		sq := pieces.PopLSB()

		targets := attacks(sq, occ).Intersect(p.ColorBB[us].Complement())
		if inCheck {
			targets = targets.Intersect(dMask)
		} else if captureOnly {
			targets = targets.Intersect(p.ColorBB[them])
		}
		if p.Pinned.Has(sq) {
			targets = targets.Intersect(magic.AxisConnections[king][sq])
		}

		for targets != 0 {
			end := targets.PopLSB()
			if p.ColorBB[them].Has(end) {
				list.Push(types.NewCaptureMove(sq, end, pt))
			} else {
				list.Push(types.NewQuietMove(sq, end, pt))
			}
		}
	}
}

func generateKingMoves(p *position.Position, list *types.MoveList, captureOnly bool) {
	us := p.Turn
	them := us.Other()
	king := p.KingSquare(us)
	occ := p.Occupancy()

	targets := magic.KingAttacks[king].Intersect(p.ColorBB[us].Complement())
	if captureOnly && p.Checkers.IsEmpty() {
		targets = targets.Intersect(p.ColorBB[them])
	}

	// The king itself is removed from the occupancy so that a slider
	// "shadowing" the king's own square does not appear to guard the
	// escape square behind it.
	occWithoutKing := occ.Clear(king)

	for targets != 0 {
		end := targets.PopLSB()
		if p.IsAttackedWithOccupancy(end, them, occWithoutKing) {
			continue
		}
		if p.ColorBB[them].Has(end) {
			list.Push(types.NewCaptureMove(king, end, types.King))
		} else {
			list.Push(types.NewQuietMove(king, end, types.King))
		}
	}

	if !captureOnly {
		generateCastleMoves(p, list)
	}
}

func generateCastleMoves(p *position.Position, list *types.MoveList) {
	if !p.Checkers.IsEmpty() {
		return
	}
	us := p.Turn
	them := us.Other()
	occ := p.Occupancy()
	kingFrom := position.KingHomeSquare(us)

	for _, side := range [...]types.CastleSide{types.Kingside, types.Queenside} {
		if !p.IsCastleRightSet(us, side) {
			continue
		}
		rookFrom := position.CastleRookFrom(us, side)
		kingTo := position.CastleKingTo(us, side)

		emptySquares := magic.DirectConnections[kingFrom][rookFrom]
		if !occ.Intersect(emptySquares).IsEmpty() {
			continue
		}

		transit := magic.DirectConnections[kingFrom][kingTo].Union(kingTo.Bitboard())
		attacked := false
		for transit != 0 {
			sq := transit.PopLSB()
			if p.IsAttacked(sq, them) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}

		list.Push(types.NewCastleMove(kingFrom, kingTo, side))
	}
}
