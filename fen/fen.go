// Package fen implements the Forsyth-Edwards Notation codec: the external
// string <-> position interface the core depends on but does not define
// the rules for beyond this contract.
package fen

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Shadowcat650/rchess/builder"
	"github.com/Shadowcat650/rchess/position"
	"github.com/Shadowcat650/rchess/types"
)

// Per-field syntactic errors, plus any builder/finalize error propagated
// unchanged from package builder.
var (
	ErrMissingPieceSection    = errors.New("fen: missing piece placement field")
	ErrInvalidPieceSection    = errors.New("fen: invalid piece placement field")
	ErrMissingTurnSection     = errors.New("fen: missing side-to-move field")
	ErrInvalidTurnSection     = errors.New("fen: invalid side-to-move field")
	ErrMissingCastleRights    = errors.New("fen: missing castling rights field")
	ErrInvalidCastleRights    = errors.New("fen: invalid castling rights field")
	ErrMissingEnPassant       = errors.New("fen: missing en-passant field")
	ErrInvalidEnPassant       = errors.New("fen: invalid en-passant field")
	ErrInvalidHalfMoveSection = errors.New("fen: invalid halfmove clock field")
)

var pieceLetters = map[byte]types.PieceType{
	'p': types.Pawn, 'n': types.Knight, 'b': types.Bishop,
	'r': types.Rook, 'q': types.Queen, 'k': types.King,
}

// Load parses a FEN string into a validated Position. The fullmove number
// is accepted and returned but plays no role in rule enforcement within
// this core; it defaults to 1 when absent.
func Load(fenStr string) (*position.Position, int, error) {
	fields := strings.Fields(fenStr)

	if len(fields) < 1 {
		return nil, 0, ErrMissingPieceSection
	}
	b := builder.New()
	if err := parsePieces(b, fields[0]); err != nil {
		return nil, 0, err
	}

	if len(fields) < 2 {
		return nil, 0, ErrMissingTurnSection
	}
	turn, err := parseTurn(fields[1])
	if err != nil {
		return nil, 0, err
	}
	b.Turn(turn)

	if len(fields) < 3 {
		return nil, 0, ErrMissingCastleRights
	}
	if err := parseCastling(b, fields[2]); err != nil {
		return nil, 0, err
	}

	if len(fields) < 4 {
		return nil, 0, ErrMissingEnPassant
	}
	if fields[3] != "-" {
		sq, ok := types.SquareFromString(fields[3])
		if !ok {
			return nil, 0, ErrInvalidEnPassant
		}
		b.EnPassant(sq)
	}

	halfmoves := 0
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 || n > 100 {
			return nil, 0, ErrInvalidHalfMoveSection
		}
		halfmoves = n
	}

	fullmoves := 1
	if len(fields) >= 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			fullmoves = n
		}
	}

	pos, err := b.Finish()
	if err != nil {
		return nil, 0, err
	}
	pos.HalfmoveClock = halfmoves

	return pos, fullmoves, nil
}

func parsePieces(b *builder.Builder, section string) error {
	if section == "" {
		return ErrMissingPieceSection
	}
	ranks := strings.Split(section, "/")
	if len(ranks) != 8 {
		return ErrInvalidPieceSection
	}
	for i, rankStr := range ranks {
		rank := types.Rank(7 - i)
		file := types.FileA
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += types.File(c - '0')
				continue
			}
			if file > types.FileH {
				return ErrInvalidPieceSection
			}
			lower := c | 0x20
			pt, ok := pieceLetters[lower]
			if !ok {
				return ErrInvalidPieceSection
			}
			color := types.Black
			if c == byte(lower^0x20) {
				color = types.White
			}
			b.Piece(types.NewSquare(file, rank), pt, color)
			file++
		}
		if file != types.FileH+1 {
			return ErrInvalidPieceSection
		}
	}
	return nil
}

func parseTurn(section string) (types.Color, error) {
	switch section {
	case "w":
		return types.White, nil
	case "b":
		return types.Black, nil
	default:
		return 0, ErrInvalidTurnSection
	}
}

func parseCastling(b *builder.Builder, section string) error {
	if section == "-" {
		return nil
	}
	for i := 0; i < len(section); i++ {
		switch section[i] {
		case 'K':
			b.CastleRight(types.White, types.Kingside)
		case 'Q':
			b.CastleRight(types.White, types.Queenside)
		case 'k':
			b.CastleRight(types.Black, types.Kingside)
		case 'q':
			b.CastleRight(types.Black, types.Queenside)
		default:
			return ErrInvalidCastleRights
		}
	}
	return nil
}

// Format renders a position back into a FEN string with the four mandatory
// fields plus halfmove and fullmove counters.
func Format(pos *position.Position, fullmoves int) string {
	var sb strings.Builder
	sb.Grow(64)

	writePieces(&sb, pos)
	sb.WriteByte(' ')
	if pos.Turn == types.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastling(&sb, pos.Castling)
	sb.WriteByte(' ')
	sb.WriteString(pos.EPSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(fullmoves))

	return sb.String()
}

func writePieces(sb *strings.Builder, pos *position.Position) {
	for rank := types.Rank8; ; rank-- {
		empty := 0
		for file := types.FileA; file <= types.FileH; file++ {
			sq := types.NewSquare(file, rank)
			pt, color, ok := pos.PieceAt(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			letter := pt.Letter()
			if color == types.Black {
				letter |= 0x20
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank == types.Rank1 {
			break
		}
		sb.WriteByte('/')
	}
}

func writeCastling(sb *strings.Builder, c types.CastlingRights) {
	if c.IsEmpty() {
		sb.WriteByte('-')
		return
	}
	if c.IsSet(types.White, types.Kingside) {
		sb.WriteByte('K')
	}
	if c.IsSet(types.White, types.Queenside) {
		sb.WriteByte('Q')
	}
	if c.IsSet(types.Black, types.Kingside) {
		sb.WriteByte('k')
	}
	if c.IsSet(types.Black, types.Queenside) {
		sb.WriteByte('q')
	}
}
