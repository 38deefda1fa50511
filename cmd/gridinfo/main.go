package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/domino14/crossfill/grid"
	"github.com/domino14/crossfill/render"
)

// numberingLines lists the slots in numbering order. It sorts a copy;
// the grid's own slot order stays untouched.
func numberingLines(g *grid.Grid) []string {
	numbering := g.Numbering()
	slots := append([]grid.Slot(nil), g.Slots()...)
	sort.SliceStable(slots, func(i, j int) bool {
		if numbering[slots[i]] != numbering[slots[j]] {
			return numbering[slots[i]] < numbering[slots[j]]
		}
		return slots[i].Dir < slots[j].Dir
	})
	lines := make([]string, 0, len(slots))
	for _, slot := range slots {
		lines = append(lines, fmt.Sprintf("%d%s: start (%d,%d), length %d",
			numbering[slot], slot.Dir.Short(), slot.Row, slot.Col, slot.Len))
	}
	return lines
}

func main() {
	filename := flag.String("filename", "", "filename of the structure")
	numbers := flag.Bool("numbers", true, "print the slot numbering")

	flag.Parse()
	if *filename == "" {
		fmt.Fprintln(os.Stderr, "need a -filename")
		os.Exit(1)
	}
	g, err := grid.Load(*filename)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%dx%d, %d slots\n", g.Height(), g.Width(), len(g.Slots()))
	fmt.Print(render.Text(g, nil))
	if *numbers {
		for _, line := range numberingLines(g) {
			fmt.Println(line)
		}
	}
}
