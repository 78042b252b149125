package poster

import (
	"image/color"
	"testing"
)

func TestRender(t *testing.T) {
	t.Run("canvas has the requested size and a white background", func(t *testing.T) {
		img := Render(100, 80, nil)
		bounds := img.Bounds()
		if bounds.Dx() != 100 || bounds.Dy() != 80 {
			t.Fatalf("unexpected bounds: %v", bounds)
		}
		if got := img.RGBAAt(50, 40); got != (color.RGBA{255, 255, 255, 255}) {
			t.Errorf("expected white background, got %v", got)
		}
	})

	t.Run("rect fills its area and nothing else", func(t *testing.T) {
		img := Render(100, 100, []Element{
			{Shape: ShapeRect, X: 10, Y: 10, W: 20, H: 20, Color: navy},
		})
		if got := img.RGBAAt(15, 15); got != navy {
			t.Errorf("inside rect: expected %v, got %v", navy, got)
		}
		if got := img.RGBAAt(50, 50); got != white {
			t.Errorf("outside rect: expected white, got %v", got)
		}
	})

	t.Run("circle center is filled, far corner is not", func(t *testing.T) {
		img := Render(100, 100, []Element{
			{Shape: ShapeCircle, X: 50, Y: 50, R: 10, Color: red},
		})
		if got := img.RGBAAt(50, 50); got != red {
			t.Errorf("center: expected %v, got %v", red, got)
		}
		// Corner of the bounding box lies outside the disk.
		if got := img.RGBAAt(59, 59); got == red {
			t.Error("bounding-box corner should stay background")
		}
	})

	t.Run("line touches both endpoints", func(t *testing.T) {
		img := Render(100, 100, []Element{
			{Shape: ShapeLine, X: 10, Y: 10, X2: 90, Y2: 40, Color: gray},
		})
		if got := img.RGBAAt(10, 10); got != gray {
			t.Errorf("line start not drawn: %v", got)
		}
		if got := img.RGBAAt(90, 40); got != gray {
			t.Errorf("line end not drawn: %v", got)
		}
	})

	t.Run("text marks pixels near its baseline", func(t *testing.T) {
		img := Render(200, 50, []Element{
			{Shape: ShapeText, X: 10, Y: 30, Color: black, Text: "HELLO"},
		})
		found := false
		for y := 15; y < 35 && !found; y++ {
			for x := 10; x < 60 && !found; x++ {
				if img.RGBAAt(x, y) == black {
					found = true
				}
			}
		}
		if !found {
			t.Error("expected text pixels near the baseline")
		}
	})

	t.Run("out of bounds elements are clipped, not a panic", func(t *testing.T) {
		Render(50, 50, []Element{
			{Shape: ShapeRect, X: -10, Y: -10, W: 200, H: 200, Color: navy},
			{Shape: ShapeCircle, X: 0, Y: 0, R: 100, Color: red},
			{Shape: ShapeLine, X: -20, Y: -20, X2: 100, Y2: 100, Color: gray},
		})
	})
}

func TestDefault(t *testing.T) {
	elements := Default()
	if len(elements) == 0 {
		t.Fatal("default poster has no elements")
	}

	img := Render(Width, Height, elements)
	if img.Bounds().Dx() != Width || img.Bounds().Dy() != Height {
		t.Fatalf("unexpected poster size: %v", img.Bounds())
	}

	// Header band is the first element.
	if got := img.RGBAAt(10, 10); got != navy {
		t.Errorf("header band: expected %v, got %v", navy, got)
	}
}
