// Package types declares the primitive vocabulary shared by every other
// package: squares, colors, piece kinds, bitboards, castling rights and
// moves.
package types

import (
	"fmt"

	"github.com/Shadowcat650/rchess/bitutil"
)

// Color identifies a side to move.
type Color int8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType identifies a kind of chess piece, independent of color.
type PieceType int8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceTypes = int(King) + 1
)

var pieceTypeLetters = [NumPieceTypes]byte{'P', 'N', 'B', 'R', 'Q', 'K'}

// Letter returns the uppercase FEN letter for the piece type.
func (pt PieceType) Letter() byte { return pieceTypeLetters[pt] }

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "unknown"
	}
}

// Piece is a (PieceType, Color) pair packed as Color*6+PieceType, matching
// the index order White pawn..king then Black pawn..king. It is used for
// piece identity lookups and display; the Position itself is stored as
// per-type and per-color bitboard arrays (see package position), not as an
// array indexed by Piece.
type Piece int8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NumPieces = int(BlackKing) + 1
)

// NewPiece packs a color and piece type into a Piece.
func NewPiece(c Color, pt PieceType) Piece {
	return Piece(int(c)*NumPieceTypes + int(pt))
}

// Color returns the piece's color.
func (p Piece) Color() Color { return Color(int(p) / NumPieceTypes) }

// Type returns the piece's kind.
func (p Piece) Type() PieceType { return PieceType(int(p) % NumPieceTypes) }

var pieceLetters = [NumPieces]byte{
	'P', 'N', 'B', 'R', 'Q', 'K',
	'p', 'n', 'b', 'r', 'q', 'k',
}

// Letter returns the FEN letter for the piece (uppercase for White).
func (p Piece) Letter() byte { return pieceLetters[p] }

// File ∈ {A..H}.
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

func (f File) String() string { return string(rune('a' + f)) }

// Rank ∈ {First..Eighth}.
type Rank int8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

func (r Rank) String() string { return string(rune('1' + r)) }

// Square is a board square, 0..63 in little-endian rank-file order:
// index = rank*8 + file, so A1=0, H1=7, A8=56, H8=63.
type Square int8

const NoSquare Square = -1

// NewSquare builds a square from its file and rank.
func NewSquare(f File, r Rank) Square { return Square(int(r)*8 + int(f)) }

// File returns the square's file.
func (s Square) File() File { return File(s % 8) }

// Rank returns the square's rank.
func (s Square) Rank() Rank { return Rank(s / 8) }

// Bitboard returns the single-bit bitboard for this square.
func (s Square) Bitboard() Bitboard { return Bitboard(1) << uint(s) }

func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return fmt.Sprintf("%s%s", s.File(), s.Rank())
}

// SquareFromString parses a lowercase algebraic square such as "e4".
// It returns NoSquare and false on malformed input.
func SquareFromString(str string) (Square, bool) {
	if len(str) != 2 {
		return NoSquare, false
	}
	f := str[0]
	r := str[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, false
	}
	return NewSquare(File(f-'a'), Rank(r-'1')), true
}

// Direction is one of the eight compass directions a slider or shift can
// move along.
type Direction int8

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
	NumDirections = int(SouthWest) + 1
)

// CastleSide distinguishes kingside from queenside castling.
type CastleSide int8

const (
	Kingside CastleSide = iota
	Queenside
	NumCastleSides = int(Queenside) + 1
)

// Bitboard is a 64-bit set of squares. It is a distinct named type (not a
// bare uint64) so that the set operations the board logic relies on read as
// named methods rather than raw bitwise operators scattered across callers.
type Bitboard uint64

const (
	Empty Bitboard = 0
	Full  Bitboard = 0xFFFFFFFFFFFFFFFF

	FileABB Bitboard = 0x0101010101010101
	FileHBB Bitboard = FileABB << 7
	Rank1BB Bitboard = 0xFF
	Rank8BB Bitboard = Rank1BB << 56

	NotFileA Bitboard = ^FileABB
	NotFileH Bitboard = ^FileHBB

	// WhiteSquares/BlackSquares are the standard alternating board coloring
	// anchored at A1 = Black.
	WhiteSquares Bitboard = 0x55AA55AA55AA55AA
	BlackSquares Bitboard = 0xAA55AA55AA55AA55
)

// Union returns the set union (bitwise OR).
func (b Bitboard) Union(o Bitboard) Bitboard { return b | o }

// Intersect returns the set intersection (bitwise AND).
func (b Bitboard) Intersect(o Bitboard) Bitboard { return b & o }

// Xor returns the symmetric difference.
func (b Bitboard) Xor(o Bitboard) Bitboard { return b ^ o }

// Complement returns the set of all squares not in b.
func (b Bitboard) Complement() Bitboard { return ^b }

// Has reports whether sq belongs to the set.
func (b Bitboard) Has(sq Square) bool { return b&sq.Bitboard() != 0 }

// Set returns b with sq added.
func (b Bitboard) Set(sq Square) Bitboard { return b | sq.Bitboard() }

// Clear returns b with sq removed.
func (b Bitboard) Clear(sq Square) Bitboard { return b &^ sq.Bitboard() }

// PopCount returns the number of squares in the set.
func (b Bitboard) PopCount() int {
	return bitutil.CountBits(uint64(b))
}

// IsEmpty reports whether the set has no squares.
func (b Bitboard) IsEmpty() bool { return b == 0 }

// LSB returns the lowest-indexed square in the set. Undefined (returns
// NoSquare) if the set is empty; callers are expected to check IsEmpty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bitutil.BitScan(uint64(b)))
}

// MSB returns the highest-indexed square in the set. Undefined (returns
// NoSquare) if the set is empty.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	v := uint64(b)
	n := 63
	for ; v>>uint(n) == 0; n-- {
	}
	return Square(n)
}

// PopLSB removes and returns the lowest-indexed square in the set. Returns
// NoSquare if the set was already empty.
func (b *Bitboard) PopLSB() Square {
	v := uint64(*b)
	idx := bitutil.PopLSB(&v)
	*b = Bitboard(v)
	if idx < 0 {
		return NoSquare
	}
	return Square(idx)
}

// Shift moves every square in b one step in dir, masking off squares that
// would wrap around a board edge.
func (b Bitboard) Shift(dir Direction) Bitboard {
	switch dir {
	case North:
		return b << 8
	case South:
		return b >> 8
	case East:
		return (b & NotFileH) << 1
	case West:
		return (b & NotFileA) >> 1
	case NorthEast:
		return (b & NotFileH) << 9
	case NorthWest:
		return (b & NotFileA) << 7
	case SouthEast:
		return (b & NotFileH) >> 7
	case SouthWest:
		return (b & NotFileA) >> 9
	default:
		return Empty
	}
}

// CastlingRights is a 4-bit vector, one bit per {WK, WQ, BK, BQ} right. The
// bit for (color, side) is color*2+side.
type CastlingRights uint8

func castleBit(c Color, side CastleSide) uint8 { return uint8(1) << (uint(c)*2 + uint(side)) }

// IsSet reports whether the given color still has the given castling right.
func (cr CastlingRights) IsSet(c Color, side CastleSide) bool {
	return cr&CastlingRights(castleBit(c, side)) != 0
}

// Set grants the given castling right.
func (cr CastlingRights) Set(c Color, side CastleSide) CastlingRights {
	return cr | CastlingRights(castleBit(c, side))
}

// Unset revokes the given castling right.
func (cr CastlingRights) Unset(c Color, side CastleSide) CastlingRights {
	return cr &^ CastlingRights(castleBit(c, side))
}

// UnsetColor revokes both castling rights of the given color.
func (cr CastlingRights) UnsetColor(c Color) CastlingRights {
	return cr.Unset(c, Kingside).Unset(c, Queenside)
}

// IsEmpty reports whether no castling rights remain.
func (cr CastlingRights) IsEmpty() bool { return cr == 0 }

// MoveKind is a closed tag over the shapes a Move can take.
type MoveKind int8

const (
	Quiet MoveKind = iota
	Capture
	Castle
	DoublePawnPush
	EnPassant
	Promote
	PromoteCapture
)

// Move is a tagged union over move kinds. Every field is meaningful only for
// the kinds documented alongside it; this mirrors a Rust-style closed sum
// type more directly than a flag-packed integer would, at the cost of a
// slightly larger value.
type Move struct {
	Start  Square
	End    Square
	Kind   MoveKind
	Moving PieceType // Quiet, Capture: the piece that moved.
	Target PieceType // Promote, PromoteCapture: the promotion piece.
	Side   CastleSide
}

// NewQuietMove builds a non-capturing, non-special move.
func NewQuietMove(start, end Square, moving PieceType) Move {
	return Move{Start: start, End: end, Kind: Quiet, Moving: moving}
}

// NewCaptureMove builds a capturing move.
func NewCaptureMove(start, end Square, moving PieceType) Move {
	return Move{Start: start, End: end, Kind: Capture, Moving: moving}
}

// NewCastleMove builds a castling move.
func NewCastleMove(start, end Square, side CastleSide) Move {
	return Move{Start: start, End: end, Kind: Castle, Side: side}
}

// NewDoublePawnPush builds a two-square pawn push.
func NewDoublePawnPush(start, end Square) Move {
	return Move{Start: start, End: end, Kind: DoublePawnPush}
}

// NewEnPassantMove builds an en-passant capture.
func NewEnPassantMove(start, end Square) Move {
	return Move{Start: start, End: end, Kind: EnPassant}
}

// NewPromoteMove builds a non-capturing promotion.
func NewPromoteMove(start, end Square, target PieceType) Move {
	return Move{Start: start, End: end, Kind: Promote, Target: target}
}

// NewPromoteCaptureMove builds a capturing promotion.
func NewPromoteCaptureMove(start, end Square, target PieceType) Move {
	return Move{Start: start, End: end, Kind: PromoteCapture, Target: target}
}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m.Kind == Capture || m.Kind == EnPassant || m.Kind == PromoteCapture
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Kind == Promote || m.Kind == PromoteCapture
}

var promoLetters = [NumPieceTypes]byte{0, 'n', 'b', 'r', 'q', 0}

// String renders the move as "<start><end>[<promo>]", per the move string
// format: a lowercase single-letter promotion suffix (n|b|r|q) when the move
// is a promotion, nothing otherwise.
func (m Move) String() string {
	s := m.Start.String() + m.End.String()
	if m.IsPromotion() {
		s += string(promoLetters[m.Target])
	}
	return s
}

// MaxMoves is the largest number of legal moves possible in any reachable
// chess position (see https://www.talkchess.com/forum/viewtopic.php?t=61792).
const MaxMoves = 218

// MoveList is a fixed-capacity, allocation-free container for generated
// moves.
type MoveList struct {
	Moves [MaxMoves]Move
	Count int
}

// Push appends a move to the list.
func (l *MoveList) Push(m Move) {
	l.Moves[l.Count] = m
	l.Count++
}

// Slice returns the populated portion of the list.
func (l *MoveList) Slice() []Move { return l.Moves[:l.Count] }

// All returns a lazy sequence over the populated moves, for callers that
// prefer range-over-func iteration to index-based access. Iteration order
// matches storage order; every move is produced exactly once.
func (l *MoveList) All() func(yield func(Move) bool) {
	return func(yield func(Move) bool) {
		for i := 0; i < l.Count; i++ {
			if !yield(l.Moves[i]) {
				return
			}
		}
	}
}

// Footprint is the hashable subset of position state sufficient to equate
// positions for repetition purposes: piece/color bitboards, castling
// rights, ep square, side to move and Zobrist hash. It is a plain
// comparable struct so it can be used directly as a Go map key; the hash
// field makes the common case (distinct positions) a cheap integer compare,
// while the structural fields still guarantee correctness on a hash
// collision. The halfmove clock is intentionally excluded.
type Footprint struct {
	PieceBB  [NumPieceTypes]Bitboard
	ColorBB  [2]Bitboard
	Castling CastlingRights
	EPSquare Square
	Turn     Color
	Hash     uint64
}
