// Package render turns fills into terminal text and PNG images.
package render

import (
	"strings"

	"github.com/domino14/crossfill/grid"
	"github.com/domino14/crossfill/solver"
)

const blockRune = '█'

// Letters lays an assignment out as a height x width rune matrix. Cells
// not covered by any assigned slot hold zero.
func Letters(g *grid.Grid, a solver.Assignment) [][]rune {
	letters := make([][]rune, g.Height())
	for i := range letters {
		letters[i] = make([]rune, g.Width())
	}
	for slot, word := range a {
		cells := slot.Cells()
		for k, r := range []rune(word) {
			letters[cells[k].Row][cells[k].Col] = r
		}
	}
	return letters
}

// Text renders the grid for a terminal, one rune per cell: blocks are
// solid, unfilled open cells are spaces. Pass a nil assignment to draw
// the bare structure.
func Text(g *grid.Grid, a solver.Assignment) string {
	letters := Letters(g, a)
	var sb strings.Builder
	for i := 0; i < g.Height(); i++ {
		for j := 0; j < g.Width(); j++ {
			switch {
			case !g.Open(i, j):
				sb.WriteRune(blockRune)
			case letters[i][j] != 0:
				sb.WriteRune(letters[i][j])
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
