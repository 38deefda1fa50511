package render

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/domino14/crossfill/grid"
	"github.com/domino14/crossfill/solver"
)

const (
	cellSize   = 32
	cellBorder = 1
)

// WritePNG draws the filled grid to w: white cells with black letters on
// a black background. A nil assignment draws the empty structure.
func WritePNG(g *grid.Grid, a solver.Assignment, w io.Writer) error {
	img := image.NewRGBA(image.Rect(0, 0, g.Width()*cellSize, g.Height()*cellSize))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	letters := Letters(g, a)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
	}
	for i := 0; i < g.Height(); i++ {
		for j := 0; j < g.Width(); j++ {
			if !g.Open(i, j) {
				continue
			}
			cell := image.Rect(
				j*cellSize+cellBorder, i*cellSize+cellBorder,
				(j+1)*cellSize-cellBorder, (i+1)*cellSize-cellBorder,
			)
			draw.Draw(img, cell, image.White, image.Point{}, draw.Src)
			if r := letters[i][j]; r != 0 {
				str := string(r)
				adv := d.MeasureString(str)
				d.Dot = fixed.P(
					j*cellSize+(cellSize-adv.Round())/2,
					i*cellSize+(cellSize+basicfont.Face7x13.Ascent)/2,
				)
				d.DrawString(str)
			}
		}
	}
	return png.Encode(w, img)
}

// SavePNG writes the filled grid to a PNG file at path.
func SavePNG(g *grid.Grid, a solver.Assignment, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(g, a, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
