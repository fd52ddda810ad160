package magic

import "github.com/Shadowcat650/rchess/types"

// PawnAttacks[color][sq] holds the squares a pawn of that color standing on
// sq attacks (not where it is free to move).
var PawnAttacks [2][64]types.Bitboard

// KnightAttacks[sq] holds the squares a knight on sq attacks.
var KnightAttacks [64]types.Bitboard

// KingAttacks[sq] holds the squares a king on sq attacks (one step in any
// direction, used both for king move generation and for the "is this square
// attacked by the enemy king" contact test).
var KingAttacks [64]types.Bitboard

func genPawnAttacks(sq types.Square, c types.Color) types.Bitboard {
	b := sq.Bitboard()
	if c == types.White {
		return b.Shift(types.NorthWest).Union(b.Shift(types.NorthEast))
	}
	return b.Shift(types.SouthWest).Union(b.Shift(types.SouthEast))
}

func genKnightAttacks(sq types.Square) types.Bitboard {
	b := uint64(sq.Bitboard())
	notA := uint64(types.NotFileA)
	notH := uint64(types.NotFileH)
	const notABFile = 0xFCFCFCFCFCFCFCFC
	const notGHFile = 0x3F3F3F3F3F3F3F3F
	attacks := (b & notA >> 17) |
		(b & notH >> 15) |
		(b & notABFile >> 10) |
		(b & notGHFile >> 6) |
		(b & notABFile << 6) |
		(b & notGHFile << 10) |
		(b & notA << 15) |
		(b & notH << 17)
	return types.Bitboard(attacks)
}

func genKingAttacks(sq types.Square) types.Bitboard {
	b := sq.Bitboard()
	return b.Shift(types.North).Union(b.Shift(types.South)).
		Union(b.Shift(types.East)).Union(b.Shift(types.West)).
		Union(b.Shift(types.NorthEast)).Union(b.Shift(types.NorthWest)).
		Union(b.Shift(types.SouthEast)).Union(b.Shift(types.SouthWest))
}

func initLeapers() {
	for sq := types.Square(0); sq < 64; sq++ {
		PawnAttacks[types.White][sq] = genPawnAttacks(sq, types.White)
		PawnAttacks[types.Black][sq] = genPawnAttacks(sq, types.Black)
		KnightAttacks[sq] = genKnightAttacks(sq)
		KingAttacks[sq] = genKingAttacks(sq)
	}
}
