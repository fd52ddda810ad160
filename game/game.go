// Package game tracks a position through a sequence of moves and detects
// the terminal conditions - checkmate, stalemate, threefold repetition,
// the fifty-move rule and insufficient material - that a bare position
// and move generator know nothing about.
package game

import (
	"errors"

	"github.com/Shadowcat650/rchess/movegen"
	"github.com/Shadowcat650/rchess/position"
	"github.com/Shadowcat650/rchess/types"
)

// ErrGameOver is returned by MakeMove once a terminal Result has already
// been recorded.
var ErrGameOver = errors.New("game: move played after the game already ended")

// DrawReason identifies which of the closed set of draw rules applies.
type DrawReason int

const (
	NoDraw DrawReason = iota
	Stalemate
	FiftyMoves
	ThreefoldRepetition
	InsufficientMaterial
)

func (r DrawReason) String() string {
	switch r {
	case Stalemate:
		return "stalemate"
	case FiftyMoves:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	case InsufficientMaterial:
		return "insufficient material"
	default:
		return "none"
	}
}

// Result is the terminal outcome of a game. A nil *Result means the game
// is still in progress. When Draw is false, Winner names the side that
// delivered checkmate.
type Result struct {
	Draw   bool
	Reason DrawReason
	Winner types.Color
}

// Game wraps a position with move history and repetition tracking. It is
// not safe for concurrent use.
type Game struct {
	Position    *position.Position
	Legal       types.MoveList
	History     []types.Move
	Repetitions map[types.Footprint]int
	Result      *Result
}

// New wraps pos into a fresh game, performing terminal detection
// immediately so that starting from an already-terminal position (e.g. a
// checkmated or stalemated FEN) yields an immediate Result and an empty
// legal-move list.
func New(pos *position.Position) *Game {
	g := &Game{
		Position:    pos,
		Repetitions: make(map[types.Footprint]int, 1),
	}
	g.Repetitions[pos.Footprint()] = 1
	g.Legal = movegen.GenerateMoves(pos, false)
	g.checkTerminal()
	return g
}

// IsLegal reports whether mv appears in the current legal-move list.
func (g *Game) IsLegal(mv types.Move) bool {
	for _, lm := range g.Legal.Slice() {
		if lm == mv {
			return true
		}
	}
	return false
}

// MakeMove applies mv to the position, updates history and repetition
// tracking, and recomputes the terminal Result. It is the caller's
// responsibility to ensure mv is legal (see IsLegal); an illegal mv
// desynchronizes the position from chess rules entirely.
func (g *Game) MakeMove(mv types.Move) error {
	if g.Result != nil {
		return ErrGameOver
	}

	g.Position.MakeMove(mv)
	g.History = append(g.History, mv)

	// A Quiet, non-pawn move is reversible, so the position it produced
	// remains reachable going forward; any other kind - capture, castle,
	// ep, promotion or pawn push - makes every earlier footprint
	// permanently unreachable.
	reversible := mv.Kind == types.Quiet && mv.Moving != types.Pawn
	if !reversible {
		clear(g.Repetitions)
	}

	fp := g.Position.Footprint()
	g.Repetitions[fp]++
	if g.Repetitions[fp] >= 3 {
		g.Result = &Result{Draw: true, Reason: ThreefoldRepetition}
		return nil
	}

	g.Legal = movegen.GenerateMoves(g.Position, false)
	g.checkTerminal()
	return nil
}

// checkTerminal runs the checkmate/stalemate, fifty-move and insufficient
// material tests, in that order, against the current position and legal
// move list. It never reconsiders threefold repetition, which MakeMove
// and New already handle against the repetition map.
func (g *Game) checkTerminal() {
	if g.Legal.Count == 0 {
		if !g.Position.Checkers.IsEmpty() {
			g.Result = &Result{Winner: g.Position.Turn.Other()}
		} else {
			g.Result = &Result{Draw: true, Reason: Stalemate}
		}
		return
	}

	if g.Position.HalfmoveClock >= 100 {
		g.Result = &Result{Draw: true, Reason: FiftyMoves}
		return
	}

	if insufficientMaterial(g.Position) {
		g.Result = &Result{Draw: true, Reason: InsufficientMaterial}
	}
}

// insufficientMaterial reports whether the material on the board can never
// produce checkmate: bare king against bare king, king plus a single
// minor (knight or bishop) against a bare king, or king plus bishop
// against king plus bishop with both bishops on the same color complex.
func insufficientMaterial(p *position.Position) bool {
	nonKing := p.PieceBB[types.King].Complement()
	whiteOthers := p.ColorBB[types.White].Intersect(nonKing)
	blackOthers := p.ColorBB[types.Black].Intersect(nonKing)
	wc, bc := whiteOthers.PopCount(), blackOthers.PopCount()

	if wc == 0 && bc == 0 {
		return true
	}
	if wc == 0 || bc == 0 {
		lone := whiteOthers
		loneCount := wc
		if wc == 0 {
			lone, loneCount = blackOthers, bc
		}
		if loneCount != 1 {
			return false
		}
		pt, _, _ := p.PieceAt(lone.LSB())
		return pt == types.Knight || pt == types.Bishop
	}
	if wc == 1 && bc == 1 {
		wSq, bSq := whiteOthers.LSB(), blackOthers.LSB()
		wPt, _, _ := p.PieceAt(wSq)
		bPt, _, _ := p.PieceAt(bSq)
		if wPt == types.Bishop && bPt == types.Bishop {
			return types.WhiteSquares.Has(wSq) == types.WhiteSquares.Has(bSq)
		}
	}
	return false
}
