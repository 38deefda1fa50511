package grid

import (
	"testing"

	"github.com/matryer/is"
)

func TestParseDimensions(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		lines  []string
		height int
		width  int
	}
	cases := []testdata{
		{[]string{"#"}, 1, 1},
		{[]string{"____"}, 1, 4},
		{[]string{"__", "____", "_"}, 3, 4},
		{[]string{"#####", "#####"}, 2, 5},
	}
	for _, tc := range cases {
		g, err := Parse(tc.lines)
		is.NoErr(err)
		is.Equal(g.Height(), tc.height)
		is.Equal(g.Width(), tc.width)
	}
}

func TestParseNoRows(t *testing.T) {
	is := is.New(t)
	_, err := Parse(nil)
	is.True(err != nil)
}

func TestShortLinesPadAsBlocks(t *testing.T) {
	is := is.New(t)
	g, err := Parse([]string{"__", "____"})
	is.NoErr(err)
	is.True(g.Open(1, 3))
	is.True(!g.Open(0, 2))
	is.True(!g.Open(0, 3))
	is.True(!g.Open(-1, 0))
	is.True(!g.Open(0, 4))
}

func TestFindSlotsCrossingPair(t *testing.T) {
	is := is.New(t)
	g, err := Parse([]string{
		"___",
		"#_#",
		"#_#",
	})
	is.NoErr(err)
	is.Equal(len(g.Slots()), 2)
	is.Equal(g.Slots()[0], Slot{Row: 0, Col: 0, Dir: Across, Len: 3})
	is.Equal(g.Slots()[1], Slot{Row: 0, Col: 1, Dir: Down, Len: 3})
}

func TestSingleCellIsNotASlot(t *testing.T) {
	is := is.New(t)
	g, err := Parse([]string{
		"###",
		"#_#",
		"###",
	})
	is.NoErr(err)
	is.Equal(len(g.Slots()), 0)
}

func TestAllBlockedHasNoSlots(t *testing.T) {
	is := is.New(t)
	g, err := Parse([]string{"##", "##"})
	is.NoErr(err)
	is.Equal(len(g.Slots()), 0)
}

func TestOverlapIndexes(t *testing.T) {
	is := is.New(t)
	g, err := Parse([]string{
		"___",
		"#_#",
		"#_#",
	})
	is.NoErr(err)
	across, down := g.Slots()[0], g.Slots()[1]

	ov, ok := g.Overlap(across, down)
	is.True(ok)
	is.Equal(ov, Overlap{XIdx: 1, YIdx: 0})

	// The reversed pair swaps the indexes.
	ov, ok = g.Overlap(down, across)
	is.True(ok)
	is.Equal(ov, Overlap{XIdx: 0, YIdx: 1})
}

func TestOverlapDisjoint(t *testing.T) {
	is := is.New(t)
	g, err := Parse([]string{"___#___"})
	is.NoErr(err)
	is.Equal(len(g.Slots()), 2)
	_, ok := g.Overlap(g.Slots()[0], g.Slots()[1])
	is.True(!ok)
}

func TestNeighbors(t *testing.T) {
	is := is.New(t)
	g, err := Parse([]string{
		"_____",
		"#_#_#",
		"#_#_#",
	})
	is.NoErr(err)
	is.Equal(len(g.Slots()), 3)
	across := g.Slots()[0]
	d1, d3 := g.Slots()[1], g.Slots()[2]

	is.Equal(g.Neighbors(across), []Slot{d1, d3})
	is.Equal(g.Neighbors(d1), []Slot{across})
	is.Equal(g.Neighbors(d3), []Slot{across})
}

func TestNumbering(t *testing.T) {
	is := is.New(t)

	// Slots starting on the same cell share a number.
	g, err := Parse([]string{
		"___",
		"_##",
		"_##",
	})
	is.NoErr(err)
	nums := g.Numbering()
	is.Equal(len(nums), 2)
	for _, s := range g.Slots() {
		is.Equal(nums[s], 1)
	}

	g, err = Parse([]string{
		"_____",
		"#_#_#",
		"#_#_#",
	})
	is.NoErr(err)
	nums = g.Numbering()
	is.Equal(nums[g.Slots()[0]], 1)
	is.Equal(nums[g.Slots()[1]], 2)
	is.Equal(nums[g.Slots()[2]], 3)
}

func TestSlotCells(t *testing.T) {
	is := is.New(t)
	s := Slot{Row: 1, Col: 2, Dir: Down, Len: 3}
	is.Equal(s.Cells(), []Cell{{1, 2}, {2, 2}, {3, 2}})
	s = Slot{Row: 0, Col: 1, Dir: Across, Len: 2}
	is.Equal(s.Cells(), []Cell{{0, 1}, {0, 2}})
}

func TestDescriptionNormalizes(t *testing.T) {
	is := is.New(t)
	g, err := Parse([]string{"__", "x___"})
	is.NoErr(err)
	is.Equal(g.Description(), []string{"__##", "#___"})
}

func TestLoad(t *testing.T) {
	is := is.New(t)
	g, err := Load("testdata/steps.txt")
	is.NoErr(err)
	is.Equal(g.Height(), 5)
	is.Equal(g.Width(), 5)
	is.Equal(len(g.Slots()), 10)

	_, err = Load("testdata/no-such-file.txt")
	is.True(err != nil)
}
