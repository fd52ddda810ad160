// Package position implements the board state machine: piece placement,
// castling rights, en-passant bookkeeping, the incremental Zobrist hash,
// and the cached pinned/checker sets that the move generator consumes.
package position

import (
	"github.com/Shadowcat650/rchess/magic"
	"github.com/Shadowcat650/rchess/types"
	"github.com/Shadowcat650/rchess/zobrist"
)

// Position is a complete, self-consistent chess position. It is cheap to
// copy (every field is a value type), so callers clone it by ordinary
// assignment before trying a move they may want to undo.
type Position struct {
	PieceBB  [types.NumPieceTypes]types.Bitboard
	ColorBB  [2]types.Bitboard
	Castling types.CastlingRights
	EPSquare types.Square
	Turn     types.Color

	// Pinned/Checkers/Hash are caches recomputed after every MakeMove; they
	// are only meaningful for a position reached exclusively through
	// MakeMove calls starting from a validated position.
	Pinned   types.Bitboard
	Checkers types.Bitboard
	Hash     uint64

	HalfmoveClock int
}

// Occupancy returns every occupied square.
func (p *Position) Occupancy() types.Bitboard {
	return p.ColorBB[types.White].Union(p.ColorBB[types.Black])
}

// ColorOccupancy returns every square occupied by c's pieces.
func (p *Position) ColorOccupancy(c types.Color) types.Bitboard { return p.ColorBB[c] }

// PieceOccupancy returns every square occupied by a piece of type pt,
// regardless of color.
func (p *Position) PieceOccupancy(pt types.PieceType) types.Bitboard { return p.PieceBB[pt] }

// Query returns the squares occupied by pieces of type pt and color c.
func (p *Position) Query(pt types.PieceType, c types.Color) types.Bitboard {
	return p.PieceBB[pt].Intersect(p.ColorBB[c])
}

// PieceAt reports the type and color of the piece on sq, if any.
func (p *Position) PieceAt(sq types.Square) (types.PieceType, types.Color, bool) {
	if !p.Occupancy().Has(sq) {
		return 0, 0, false
	}
	c := types.White
	if p.ColorBB[types.Black].Has(sq) {
		c = types.Black
	}
	for pt := types.PieceType(0); int(pt) < types.NumPieceTypes; pt++ {
		if p.PieceBB[pt].Has(sq) {
			return pt, c, true
		}
	}
	return 0, 0, false
}

// KingSquare returns the square of c's king.
func (p *Position) KingSquare(c types.Color) types.Square {
	return p.Query(types.King, c).LSB()
}

// IsCastleRightSet reports whether c still has the given castling right.
func (p *Position) IsCastleRightSet(c types.Color, side types.CastleSide) bool {
	return p.Castling.IsSet(c, side)
}

// IsAttacked reports whether sq is attacked by color by under the
// position's real occupancy.
func (p *Position) IsAttacked(sq types.Square, by types.Color) bool {
	return magic.IsAttacked(sq, by, p.Occupancy(), p.PieceBB, p.ColorBB)
}

// IsAttackedWithOccupancy is IsAttacked under a caller-supplied hypothetical
// occupancy, used to test king-step legality without the moving king itself
// on the board.
func (p *Position) IsAttackedWithOccupancy(sq types.Square, by types.Color, occ types.Bitboard) bool {
	return magic.IsAttacked(sq, by, occ, p.PieceBB, p.ColorBB)
}

// Footprint returns the hashable subset of state used for repetition
// detection.
func (p *Position) Footprint() types.Footprint {
	return types.Footprint{
		PieceBB:  p.PieceBB,
		ColorBB:  p.ColorBB,
		Castling: p.Castling,
		EPSquare: p.EPSquare,
		Turn:     p.Turn,
		Hash:     p.Hash,
	}
}

// --- primitive mutators ---------------------------------------------------
//
// Every mutation of a position's pieces, rights, ep square or turn goes
// through one of these; each keeps Hash in incremental lock-step with the
// structural change it makes.

func (p *Position) insert(sq types.Square, pt types.PieceType, c types.Color) {
	p.PieceBB[pt] = p.PieceBB[pt].Set(sq)
	p.ColorBB[c] = p.ColorBB[c].Set(sq)
	p.Hash ^= zobrist.PieceKey(c, pt, sq)
}

// remove clears whatever piece sits on sq and reports what it was. Callers
// must only call it on an occupied square.
func (p *Position) remove(sq types.Square) (types.PieceType, types.Color) {
	pt, c, _ := p.PieceAt(sq)
	p.PieceBB[pt] = p.PieceBB[pt].Clear(sq)
	p.ColorBB[c] = p.ColorBB[c].Clear(sq)
	p.Hash ^= zobrist.PieceKey(c, pt, sq)
	return pt, c
}

func (p *Position) movePiece(start, end types.Square, pt types.PieceType, c types.Color) {
	mask := start.Bitboard().Union(end.Bitboard())
	p.PieceBB[pt] = p.PieceBB[pt].Xor(mask)
	p.ColorBB[c] = p.ColorBB[c].Xor(mask)
	p.Hash ^= zobrist.PieceKey(c, pt, start)
	p.Hash ^= zobrist.PieceKey(c, pt, end)
}

func (p *Position) toggleTurn() {
	p.Turn = p.Turn.Other()
	p.Hash ^= zobrist.TurnZ
}

func (p *Position) setCastleRight(c types.Color, side types.CastleSide) {
	if p.Castling.IsSet(c, side) {
		return
	}
	p.Castling = p.Castling.Set(c, side)
	p.Hash ^= zobrist.CastleKey(c, side)
}

func (p *Position) unsetCastleRight(c types.Color, side types.CastleSide) {
	if !p.Castling.IsSet(c, side) {
		return
	}
	p.Castling = p.Castling.Unset(c, side)
	p.Hash ^= zobrist.CastleKey(c, side)
}

func (p *Position) unsetColorRights(c types.Color) {
	p.unsetCastleRight(c, types.Kingside)
	p.unsetCastleRight(c, types.Queenside)
}

func (p *Position) setEP(sq types.Square) {
	p.EPSquare = sq
	p.Hash ^= zobrist.EPKey(sq.File())
}

func (p *Position) clearEP() {
	if p.EPSquare == types.NoSquare {
		return
	}
	p.Hash ^= zobrist.EPKey(p.EPSquare.File())
	p.EPSquare = types.NoSquare
}

// --- castling geometry -----------------------------------------------------

var castleKingFrom = [2]types.Square{
	types.NewSquare(types.FileE, types.Rank1),
	types.NewSquare(types.FileE, types.Rank8),
}

var castleKingTo = [2][2]types.Square{
	{types.NewSquare(types.FileG, types.Rank1), types.NewSquare(types.FileC, types.Rank1)},
	{types.NewSquare(types.FileG, types.Rank8), types.NewSquare(types.FileC, types.Rank8)},
}

var castleRookFrom = [2][2]types.Square{
	{types.NewSquare(types.FileH, types.Rank1), types.NewSquare(types.FileA, types.Rank1)},
	{types.NewSquare(types.FileH, types.Rank8), types.NewSquare(types.FileA, types.Rank8)},
}

var castleRookTo = [2][2]types.Square{
	{types.NewSquare(types.FileF, types.Rank1), types.NewSquare(types.FileD, types.Rank1)},
	{types.NewSquare(types.FileF, types.Rank8), types.NewSquare(types.FileD, types.Rank8)},
}

// RookHomeSquare returns the home square of c's rook on the given side.
func RookHomeSquare(c types.Color, side types.CastleSide) types.Square {
	return castleRookFrom[c][side]
}

// KingHomeSquare returns the home square of c's king.
func KingHomeSquare(c types.Color) types.Square {
	return castleKingFrom[c]
}

// CastleKingTo returns the king's destination square for color c castling on
// side.
func CastleKingTo(c types.Color, side types.CastleSide) types.Square {
	return castleKingTo[c][side]
}

// CastleRookFrom returns the rook's origin square for color c castling on
// side (same as RookHomeSquare, exposed under the castling-specific name for
// symmetry with CastleRookTo).
func CastleRookFrom(c types.Color, side types.CastleSide) types.Square {
	return castleRookFrom[c][side]
}

// CastleRookTo returns the square the rook lands on for color c castling on
// side.
func CastleRookTo(c types.Color, side types.CastleSide) types.Square {
	return castleRookTo[c][side]
}

func (p *Position) dropRookRightIfHome(c types.Color, sq types.Square) {
	for _, side := range [2]types.CastleSide{types.Kingside, types.Queenside} {
		if sq == RookHomeSquare(c, side) {
			p.unsetCastleRight(c, side)
		}
	}
}

// MakeMove applies mv, a move produced by the legal generator for this
// exact position, and brings every cached field (castling rights, ep
// square, halfmove clock, hash, pinned, checkers) up to date. It is the
// caller's responsibility to ensure mv is legal for this position; no
// validation is performed here.
func (p *Position) MakeMove(mv types.Move) {
	p.clearEP()
	p.toggleTurn()
	mover := p.Turn.Other()
	them := p.Turn

	resetHalfmove := false

	switch mv.Kind {
	case types.Quiet:
		p.movePiece(mv.Start, mv.End, mv.Moving, mover)
		switch mv.Moving {
		case types.King:
			p.unsetColorRights(mover)
		case types.Rook:
			p.dropRookRightIfHome(mover, mv.Start)
		case types.Pawn:
			resetHalfmove = true
		}

	case types.Capture:
		p.remove(mv.End)
		p.dropRookRightIfHome(them, mv.End)
		p.movePiece(mv.Start, mv.End, mv.Moving, mover)
		switch mv.Moving {
		case types.King:
			p.unsetColorRights(mover)
		case types.Rook:
			p.dropRookRightIfHome(mover, mv.Start)
		}
		resetHalfmove = true

	case types.Castle:
		p.movePiece(mv.Start, mv.End, types.King, mover)
		p.movePiece(castleRookFrom[mover][mv.Side], castleRookTo[mover][mv.Side], types.Rook, mover)
		p.unsetColorRights(mover)

	case types.DoublePawnPush:
		p.movePiece(mv.Start, mv.End, types.Pawn, mover)
		skipped := types.Square((int(mv.Start) + int(mv.End)) / 2)
		p.setEP(skipped)
		resetHalfmove = true

	case types.EnPassant:
		var capturedSq types.Square
		if mover == types.White {
			capturedSq = mv.End - 8
		} else {
			capturedSq = mv.End + 8
		}
		p.remove(capturedSq)
		p.movePiece(mv.Start, mv.End, types.Pawn, mover)
		resetHalfmove = true

	case types.Promote:
		p.remove(mv.Start)
		p.insert(mv.End, mv.Target, mover)
		resetHalfmove = true

	case types.PromoteCapture:
		p.remove(mv.End)
		p.dropRookRightIfHome(them, mv.End)
		p.remove(mv.Start)
		p.insert(mv.End, mv.Target, mover)
		resetHalfmove = true
	}

	if resetHalfmove {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}

	p.calculateCheckers()
	p.calculatePinned()
}

// calculateCheckers finds every enemy piece currently giving check to the
// side-to-move's king. A king can never give check in a legal position, so
// king contacts are deliberately not tested here (they are tested by
// IsAttacked, used elsewhere for castling and king-step legality).
func (p *Position) calculateCheckers() {
	us := p.Turn
	them := us.Other()
	king := p.KingSquare(us)
	occ := p.Occupancy()

	var checkers types.Bitboard
	checkers = checkers.Union(magic.PawnAttacks[us][king].Intersect(p.Query(types.Pawn, them)))
	checkers = checkers.Union(magic.KnightAttacks[king].Intersect(p.Query(types.Knight, them)))
	diag := p.Query(types.Bishop, them).Union(p.Query(types.Queen, them))
	checkers = checkers.Union(magic.BishopAttacks(king, occ).Intersect(diag))
	straight := p.Query(types.Rook, them).Union(p.Query(types.Queen, them))
	checkers = checkers.Union(magic.RookAttacks(king, occ).Intersect(straight))

	p.Checkers = checkers
}

// calculatePinned finds every side-to-move piece that is pinned to its own
// king, using the ghost-slider trick: a pinner is an enemy slider whose
// attack set, recomputed as if its first friendly blocker were transparent,
// reaches the king.
func (p *Position) calculatePinned() {
	us := p.Turn
	them := us.Other()
	king := p.KingSquare(us)
	friendly := p.ColorBB[us]
	occ := p.Occupancy()

	var pinned types.Bitboard

	rookPinners := p.Query(types.Rook, them).Union(p.Query(types.Queen, them)).
		Intersect(magic.GhostRook(king, occ, friendly))
	for rookPinners != 0 {
		sq := rookPinners.PopLSB()
		pinned = pinned.Union(friendly.Intersect(magic.DirectConnections[sq][king]))
	}

	bishopPinners := p.Query(types.Bishop, them).Union(p.Query(types.Queen, them)).
		Intersect(magic.GhostBishop(king, occ, friendly))
	for bishopPinners != 0 {
		sq := bishopPinners.PopLSB()
		pinned = pinned.Union(friendly.Intersect(magic.DirectConnections[sq][king]))
	}

	p.Pinned = pinned
}

// RecalculateExtraData recomputes Checkers and Pinned from scratch. Exposed
// for the builder (which the FEN codec loads through), since it assembles a
// Position's bitboards directly and then needs the caches populated without
// going through MakeMove.
func (p *Position) RecalculateExtraData() {
	p.calculateCheckers()
	p.calculatePinned()
}
