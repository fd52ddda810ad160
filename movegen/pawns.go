package movegen

import (
	"github.com/Shadowcat650/rchess/magic"
	"github.com/Shadowcat650/rchess/position"
	"github.com/Shadowcat650/rchess/types"
)

func generatePawnMoves(p *position.Position, list *types.MoveList, captureOnly bool) {
	us := p.Turn
	them := us.Other()
	king := p.KingSquare(us)
	occ := p.Occupancy()
	enemyOcc := p.ColorBB[them]
	inCheck := !p.Checkers.IsEmpty()
	dMask := defendingMask(p)

	var pushDir types.Direction
	var startRank, promoRank types.Rank
	if us == types.White {
		pushDir, startRank, promoRank = types.North, types.Rank2, types.Rank8
	} else {
		pushDir, startRank, promoRank = types.South, types.Rank7, types.Rank1
	}

	pawns := p.Query(types.Pawn, us)
	for pawns != 0 {
		sq := pawns.PopLSB()

		pinned := p.Pinned.Has(sq)
		axis := types.Full
		if pinned {
			axis = magic.AxisConnections[king][sq]
		}
		pinnedForward := pinned && sq.File() == king.File()

		emit := func(end types.Square, isCapture bool) {
			if inCheck && !dMask.Has(end) {
				return
			}
			emitPawnTarget(list, sq, end, isCapture, promoRank)
		}

		if (!pinned || pinnedForward) && (!captureOnly || inCheck) {
			single := sq.Bitboard().Shift(pushDir)
			if !single.IsEmpty() && single.Intersect(occ).IsEmpty() {
				singleSq := single.LSB()
				emit(singleSq, false)

				if sq.Rank() == startRank {
					double := single.Shift(pushDir)
					if !double.IsEmpty() && double.Intersect(occ).IsEmpty() {
						doubleSq := double.LSB()
						if !inCheck || dMask.Has(doubleSq) {
							list.Push(types.NewDoublePawnPush(sq, doubleSq))
						}
					}
				}
			}
		}

		if !pinnedForward {
			caps := magic.PawnAttacks[us][sq].Intersect(enemyOcc)
			if pinned {
				caps = caps.Intersect(axis)
			}
			for caps != 0 {
				end := caps.PopLSB()
				emit(end, true)
			}
		}

		if p.EPSquare != types.NoSquare && magic.PawnAttacks[us][sq].Has(p.EPSquare) {
			tryEnPassant(p, list, sq, pinned, axis, inCheck, dMask, king, us, them, occ)
		}
	}
}

func emitPawnTarget(list *types.MoveList, start, end types.Square, isCapture bool, promoRank types.Rank) {
	if end.Rank() == promoRank {
		for _, target := range [...]types.PieceType{types.Knight, types.Bishop, types.Rook, types.Queen} {
			if isCapture {
				list.Push(types.NewPromoteCaptureMove(start, end, target))
			} else {
				list.Push(types.NewPromoteMove(start, end, target))
			}
		}
		return
	}
	if isCapture {
		list.Push(types.NewCaptureMove(start, end, types.Pawn))
	} else {
		list.Push(types.NewQuietMove(start, end, types.Pawn))
	}
}

// tryEnPassant adds the en-passant capture from sq if it is not blocked by a
// pin and does not expose the king to a discovered check along the rank
// both pawns sit on - the classical king/attacker/own-pawn/enemy-pawn
// same-rank case that an ordinary pin check (which only removes one piece
// at a time) cannot catch.
func tryEnPassant(p *position.Position, list *types.MoveList, sq types.Square, pinned bool, axis types.Bitboard,
	inCheck bool, dMask types.Bitboard, king types.Square, us, them types.Color, occ types.Bitboard) {

	epEnd := p.EPSquare
	if pinned && !axis.Has(epEnd) {
		return
	}

	var capturedSq types.Square
	if us == types.White {
		capturedSq = epEnd - 8
	} else {
		capturedSq = epEnd + 8
	}

	if inCheck {
		checker := p.Checkers.LSB()
		resolvesCheck := capturedSq == checker || dMask.Has(epEnd)
		if !resolvesCheck {
			return
		}
	}

	hypOcc := occ.Clear(sq).Clear(capturedSq).Set(epEnd)
	diag := p.Query(types.Bishop, them).Union(p.Query(types.Queen, them))
	straight := p.Query(types.Rook, them).Union(p.Query(types.Queen, them))
	if magic.BishopAttacks(king, hypOcc).Intersect(diag) != 0 {
		return
	}
	if magic.RookAttacks(king, hypOcc).Intersect(straight) != 0 {
		return
	}

	list.Push(types.NewEnPassantMove(sq, epEnd))
}
