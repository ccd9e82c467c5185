package board

import "fmt"

// Player identifies one of the four seats, 0 through 3.
type Player int

// Position is a cell on the board. Ring cells are 0..51; every other
// category uses a per-player block of hundreds (see the tables below).
type Position int

type Kind int

const (
	KindInvalid Kind = iota
	KindBase
	KindRing
	KindLane
	KindHome
)

func (k Kind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindRing:
		return "ring"
	case KindLane:
		return "lane"
	case KindHome:
		return "home"
	default:
		return "invalid"
	}
}

const (
	NumPlayers      = 4
	PiecesPerPlayer = 4
	RingSize        = 52
	LastRingCell    = Position(RingSize - 1)
	LaneLength      = 5
)

var Colors = [NumPlayers]string{"red", "green", "yellow", "blue"}

var (
	baseSlots = [NumPlayers][PiecesPerPlayer]Position{
		{500, 501, 502, 503},
		{600, 601, 602, 603},
		{700, 701, 702, 703},
		{800, 801, 802, 803},
	}
	startCells    = [NumPlayers]Position{0, 13, 26, 39}
	turningPoints = [NumPlayers]Position{50, 11, 24, 37}
	homeLanes     = [NumPlayers][LaneLength]Position{
		{100, 101, 102, 103, 104},
		{200, 201, 202, 203, 204},
		{300, 301, 302, 303, 304},
		{400, 401, 402, 403, 404},
	}
	homeCells = [NumPlayers]Position{105, 205, 305, 405}

	safeCells = map[Position]struct{}{
		0: {}, 8: {}, 13: {}, 21: {}, 26: {}, 34: {}, 39: {}, 47: {},
	}
)

func (p Player) Valid() bool { return p >= 0 && p < NumPlayers }

// Next returns the player whose turn follows p.
func (p Player) Next() Player { return (p + 1) % NumPlayers }

func (p Player) String() string {
	if !p.Valid() {
		return fmt.Sprintf("player(%d)", int(p))
	}
	return Colors[p]
}

func mustValid(p Player) {
	if !p.Valid() {
		panic(fmt.Sprintf("board: invalid player %d", int(p)))
	}
}

// BaseSlots returns the four base slots of p, indexed by piece.
func BaseSlots(p Player) [PiecesPerPlayer]Position {
	mustValid(p)
	return baseSlots[p]
}

func StartCell(p Player) Position {
	mustValid(p)
	return startCells[p]
}

// TurningPoint is the last ring cell p visits before entering its lane.
func TurningPoint(p Player) Position {
	mustValid(p)
	return turningPoints[p]
}

// HomeLane returns p's private lane cells in travel order. The home cell
// itself is not included.
func HomeLane(p Player) [LaneLength]Position {
	mustValid(p)
	return homeLanes[p]
}

func HomeCell(p Player) Position {
	mustValid(p)
	return homeCells[p]
}

func IsSafeCell(c Position) bool {
	_, ok := safeCells[c]
	return ok
}

// SafeCells lists the safe ring cells in ascending order.
func SafeCells() []Position {
	return []Position{0, 8, 13, 21, 26, 34, 39, 47}
}

func IsRing(c Position) bool { return c >= 0 && c <= LastRingCell }

// Kind classifies pos from p's point of view. Cells belonging to another
// player's base, lane or home are KindInvalid for p.
func KindOf(p Player, pos Position) Kind {
	mustValid(p)
	switch {
	case IsRing(pos):
		return KindRing
	case pos == homeCells[p]:
		return KindHome
	}
	for _, c := range baseSlots[p] {
		if c == pos {
			return KindBase
		}
	}
	for _, c := range homeLanes[p] {
		if c == pos {
			return KindLane
		}
	}
	return KindInvalid
}

// DistanceToHome is the number of steps from a lane cell to p's home.
func DistanceToHome(p Player, pos Position) int {
	return int(HomeCell(p) - pos)
}
