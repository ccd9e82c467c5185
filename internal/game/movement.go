package game

import (
	"errors"
	"fmt"

	"ludo/internal/board"
)

var (
	ErrOvershoot       = errors.New("move overshoots home")
	ErrInvalidPosition = errors.New("position cannot move")
)

func ringNext(c board.Position) board.Position {
	if c == board.LastRingCell {
		return 0
	}
	return c + 1
}

// NextCell returns the cell one step ahead of pos along p's path.
func NextCell(p board.Player, pos board.Position) (board.Position, error) {
	switch board.KindOf(p, pos) {
	case board.KindRing:
		if pos == board.TurningPoint(p) {
			return board.HomeLane(p)[0], nil
		}
		return ringNext(pos), nil
	case board.KindLane:
		// the cell after the last lane cell is home
		return pos + 1, nil
	case board.KindHome:
		return pos, ErrOvershoot
	default:
		return pos, fmt.Errorf("%w: %d for %v", ErrInvalidPosition, pos, p)
	}
}

// Path returns every cell visited when moving a piece of p from pos by
// steps, in order. The last element is the landing cell.
func Path(p board.Player, from board.Position, steps int) ([]board.Position, error) {
	out := make([]board.Position, 0, steps)
	cur := from
	for i := 0; i < steps; i++ {
		next, err := NextCell(p, cur)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
		cur = next
	}
	return out, nil
}

// EligiblePieces returns the indices of p's pieces that may move with dice.
func EligiblePieces(p board.Player, pieces [board.PiecesPerPlayer]board.Position, dice int) []int {
	out := make([]int, 0, board.PiecesPerPlayer)
	for i, pos := range pieces {
		switch board.KindOf(p, pos) {
		case board.KindHome:
			continue
		case board.KindBase:
			if dice != 6 {
				continue
			}
		case board.KindLane:
			if dice > board.DistanceToHome(p, pos) {
				continue
			}
		}
		out = append(out, i)
	}
	return out
}
