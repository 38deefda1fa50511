package grid

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

const (
	// OpenRune marks a fillable cell in a structure description. Every
	// other rune is a block.
	OpenRune = '_'
	// BlockRune is what Description emits for blocked cells.
	BlockRune = '#'
	// MinSlotLength is the shortest run of open cells that counts as a
	// slot. A lone open cell is not a word.
	MinSlotLength = 2
)

// Grid is the static structure of a puzzle: which cells are open, the
// word slots those cells form, and where the slots cross. A Grid never
// changes after parsing, so it can be shared freely.
type Grid struct {
	height, width int
	open          [][]bool
	slots         []Slot
	overlaps      map[slotPair]Overlap
	neighbors     map[Slot][]Slot
}

type slotPair struct {
	x, y Slot
}

// Overlap constrains an ordered pair of crossing slots (x, y): the letter
// at position XIdx of x's word must equal the letter at position YIdx of
// y's word. The overlap for (y, x) has the indexes swapped.
type Overlap struct {
	XIdx, YIdx int
}

// Parse builds a Grid from the lines of a structure description. Lines
// may have different lengths; the grid is as wide as the longest line and
// missing cells are blocks.
func Parse(lines []string) (*Grid, error) {
	if len(lines) == 0 {
		return nil, errors.New("structure has no rows")
	}
	rows := make([][]rune, len(lines))
	width := 0
	for i, line := range lines {
		rows[i] = []rune(strings.TrimRight(line, "\r"))
		if len(rows[i]) > width {
			width = len(rows[i])
		}
	}
	open := make([][]bool, len(rows))
	for i, row := range rows {
		open[i] = make([]bool, width)
		for j, r := range row {
			open[i][j] = r == OpenRune
		}
	}
	g := &Grid{height: len(rows), width: width, open: open}
	g.findSlots()
	g.findOverlaps()
	return g, nil
}

// ParseReader reads a structure description line by line and parses it.
func ParseReader(r io.Reader) (*Grid, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return Parse(lines)
}

// Load parses the structure file at path.
func Load(path string) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseReader(file)
}

// findSlots scans the grid row-major. A slot starts at any open cell with
// no open cell before it in its direction; both directions are checked at
// each start, across first, which puts slots in standard numbering order.
func (g *Grid) findSlots() {
	for i := 0; i < g.height; i++ {
		for j := 0; j < g.width; j++ {
			if !g.open[i][j] {
				continue
			}
			if j == 0 || !g.open[i][j-1] {
				length := 0
				for k := j; k < g.width && g.open[i][k]; k++ {
					length++
				}
				if length >= MinSlotLength {
					g.slots = append(g.slots, Slot{Row: i, Col: j, Dir: Across, Len: length})
				}
			}
			if i == 0 || !g.open[i-1][j] {
				length := 0
				for k := i; k < g.height && g.open[k][j]; k++ {
					length++
				}
				if length >= MinSlotLength {
					g.slots = append(g.slots, Slot{Row: i, Col: j, Dir: Down, Len: length})
				}
			}
		}
	}
}

func (g *Grid) findOverlaps() {
	g.overlaps = make(map[slotPair]Overlap)
	g.neighbors = make(map[Slot][]Slot)

	byCell := make(map[Cell][]Slot)
	for _, s := range g.slots {
		for _, c := range s.Cells() {
			byCell[c] = append(byCell[c], s)
		}
	}
	for _, s := range g.slots {
		for _, c := range s.Cells() {
			for _, other := range byCell[c] {
				if other == s {
					continue
				}
				g.overlaps[slotPair{s, other}] = Overlap{
					XIdx: s.index(c),
					YIdx: other.index(c),
				}
			}
		}
	}
	// Neighbor lists follow slot scan order so every walk over them is
	// deterministic.
	for _, s := range g.slots {
		for _, other := range g.slots {
			if other == s {
				continue
			}
			if _, ok := g.overlaps[slotPair{s, other}]; ok {
				g.neighbors[s] = append(g.neighbors[s], other)
			}
		}
	}
}

func (g *Grid) Height() int { return g.height }
func (g *Grid) Width() int  { return g.width }

// Open reports whether the cell at (row, col) is fillable. Out-of-range
// cells are blocks.
func (g *Grid) Open(row, col int) bool {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return false
	}
	return g.open[row][col]
}

// Slots returns every slot in scan order.
func (g *Grid) Slots() []Slot {
	return g.slots
}

// Overlap returns the crossing constraint for the ordered pair (x, y),
// if the two slots share a cell.
func (g *Grid) Overlap(x, y Slot) (Overlap, bool) {
	ov, ok := g.overlaps[slotPair{x, y}]
	return ov, ok
}

// Neighbors returns the slots crossing x, in scan order.
func (g *Grid) Neighbors(x Slot) []Slot {
	return g.neighbors[x]
}

// Numbering assigns standard crossword numbers to slots: starting cells
// are numbered row-major, and slots starting on the same cell share a
// number.
func (g *Grid) Numbering() map[Slot]int {
	nums := make(map[Slot]int, len(g.slots))
	n := 0
	var lastStart Cell
	for _, s := range g.slots {
		start := Cell{s.Row, s.Col}
		if n == 0 || start != lastStart {
			n++
			lastStart = start
		}
		nums[s] = n
	}
	return nums
}

// Description renders the structure back out as lines of OpenRune and
// BlockRune, one string per row.
func (g *Grid) Description() []string {
	lines := make([]string, g.height)
	for i := 0; i < g.height; i++ {
		var sb strings.Builder
		for j := 0; j < g.width; j++ {
			if g.open[i][j] {
				sb.WriteRune(OpenRune)
			} else {
				sb.WriteRune(BlockRune)
			}
		}
		lines[i] = sb.String()
	}
	return lines
}
