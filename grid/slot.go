package grid

import "fmt"

// Direction orients a slot on the grid.
type Direction uint8

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Across {
		return "across"
	}
	return "down"
}

// Short returns the single-letter form used in slot labels ("A" or "D").
func (d Direction) Short() string {
	if d == Across {
		return "A"
	}
	return "D"
}

// A Cell addresses one square of the grid, zero-indexed from the top left.
type Cell struct {
	Row, Col int
}

// A Slot is one maximal run of open cells, read across or down. Slots are
// plain comparable values; two slots are the same variable exactly when
// their position, direction, and length all match, so they can key maps
// directly.
type Slot struct {
	Row, Col int
	Dir      Direction
	Len      int
}

// Cells lists the slot's squares in reading order.
func (s Slot) Cells() []Cell {
	cells := make([]Cell, s.Len)
	for k := 0; k < s.Len; k++ {
		if s.Dir == Down {
			cells[k] = Cell{s.Row + k, s.Col}
		} else {
			cells[k] = Cell{s.Row, s.Col + k}
		}
	}
	return cells
}

// index returns the letter position of c within the slot. The cell must
// lie on the slot.
func (s Slot) index(c Cell) int {
	return c.Row - s.Row + c.Col - s.Col
}

func (s Slot) String() string {
	return fmt.Sprintf("(%d,%d %v len %d)", s.Row, s.Col, s.Dir, s.Len)
}
