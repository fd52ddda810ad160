package magic

import "github.com/Shadowcat650/rchess/types"

// Rays[sq][dir] holds every square reachable from sq walking in dir all the
// way to the board edge (inclusive of the edge square, exclusive of sq
// itself). It backs DirectConnections/AxisConnections and serves as a
// fallback, occupancy-oblivious slider generator.
var Rays [64][types.NumDirections]types.Bitboard

// DirectConnections[a][b] holds the squares strictly between a and b along
// a common rank, file or diagonal. Empty if a and b are not aligned, or if
// a == b.
var DirectConnections [64][64]types.Bitboard

// AxisConnections[a][b] holds the full line through a and b (including both
// endpoints and every square beyond them to the board edges) along their
// common axis. Empty if a and b are not aligned.
var AxisConnections [64][64]types.Bitboard

func genRay(sq types.Square, dir types.Direction) types.Bitboard {
	b := sq.Bitboard()
	var ray types.Bitboard
	for {
		b = b.Shift(dir)
		if b.IsEmpty() {
			break
		}
		ray = ray.Union(b)
	}
	return ray
}

func opposite(dir types.Direction) types.Direction {
	switch dir {
	case types.North:
		return types.South
	case types.South:
		return types.North
	case types.East:
		return types.West
	case types.West:
		return types.East
	case types.NorthEast:
		return types.SouthWest
	case types.SouthWest:
		return types.NorthEast
	case types.NorthWest:
		return types.SouthEast
	default:
		return types.NorthWest
	}
}

// directionTo returns the direction that walks from a towards b along a
// shared rank, file or diagonal, and whether such a direction exists.
func directionTo(a, b types.Square) (types.Direction, bool) {
	if a == b {
		return 0, false
	}
	af, ar := int(a.File()), int(a.Rank())
	bf, br := int(b.File()), int(b.Rank())
	df, dr := bf-af, br-ar

	switch {
	case dr == 0 && df > 0:
		return types.East, true
	case dr == 0 && df < 0:
		return types.West, true
	case df == 0 && dr > 0:
		return types.North, true
	case df == 0 && dr < 0:
		return types.South, true
	case df == dr && df > 0:
		return types.NorthEast, true
	case df == dr && df < 0:
		return types.SouthWest, true
	case df == -dr && df > 0:
		return types.SouthEast, true
	case df == -dr && df < 0:
		return types.NorthWest, true
	default:
		return 0, false
	}
}

func initConnections() {
	for sq := types.Square(0); sq < 64; sq++ {
		for d := types.Direction(0); d < types.Direction(types.NumDirections); d++ {
			Rays[sq][d] = genRay(sq, d)
		}
	}

	for a := types.Square(0); a < 64; a++ {
		for b := types.Square(0); b < 64; b++ {
			dir, ok := directionTo(a, b)
			if !ok {
				continue
			}
			DirectConnections[a][b] = Rays[a][dir].Intersect(Rays[b][opposite(dir)])
			AxisConnections[a][b] = a.Bitboard().Union(b.Bitboard()).
				Union(Rays[a][dir]).Union(Rays[a][opposite(dir)])
		}
	}
}
