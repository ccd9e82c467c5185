package game

import "ludo/internal/board"

// HasPlayerWon reports whether every piece of p is on p's home cell.
func HasPlayerWon(ps Positions, p board.Player) bool {
	home := board.HomeCell(p)
	for _, pos := range ps[p] {
		if pos != home {
			return false
		}
	}
	return true
}
