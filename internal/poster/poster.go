// Package poster renders the static trade infographic. The poster is a
// declarative list of elements (shape, position, color, text) drawn by one
// generic routine; nothing here depends on live data.
package poster

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type Shape string

const (
	ShapeRect   Shape = "rect"
	ShapeCircle Shape = "circle"
	ShapeLine   Shape = "line"
	ShapeText   Shape = "text"
)

// Element is one drawing instruction. Rect uses X, Y, W, H. Circle uses
// X, Y as center and R. Line runs from X, Y to X2, Y2. Text draws at X, Y
// (baseline).
type Element struct {
	Shape Shape
	X, Y  int
	W, H  int
	X2    int
	Y2    int
	R     int
	Color color.RGBA
	Text  string
}

// Render draws the elements in order onto a white canvas.
func Render(width, height int, elements []Element) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	for _, el := range elements {
		switch el.Shape {
		case ShapeRect:
			drawRect(img, el)
		case ShapeCircle:
			drawCircle(img, el)
		case ShapeLine:
			drawLine(img, el)
		case ShapeText:
			drawText(img, el)
		}
	}
	return img
}

func drawRect(img *image.RGBA, el Element) {
	rect := image.Rect(el.X, el.Y, el.X+el.W, el.Y+el.H)
	draw.Draw(img, rect.Intersect(img.Bounds()), &image.Uniform{C: el.Color}, image.Point{}, draw.Src)
}

func drawCircle(img *image.RGBA, el Element) {
	bounds := image.Rect(el.X-el.R, el.Y-el.R, el.X+el.R+1, el.Y+el.R+1).Intersect(img.Bounds())
	rr := el.R * el.R
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx := x - el.X
			dy := y - el.Y
			if dx*dx+dy*dy <= rr {
				img.SetRGBA(x, y, el.Color)
			}
		}
	}
}

func drawLine(img *image.RGBA, el Element) {
	x0, y0, x1, y1 := el.X, el.Y, el.X2, el.Y2
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetRGBA(x0, y0, el.Color)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawText(img *image.RGBA, el Element) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: el.Color},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(el.X, el.Y),
	}
	drawer.DrawString(el.Text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
