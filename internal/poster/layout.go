package poster

import "image/color"

const (
	Width  = 800
	Height = 1000
)

// OutputName is the fixed artifact name the generator writes.
const OutputName = "trade_infographic.png"

var (
	navy   = color.RGBA{16, 42, 99, 255}
	red    = color.RGBA{198, 40, 40, 255}
	orange = color.RGBA{239, 108, 0, 255}
	green  = color.RGBA{46, 125, 50, 255}
	gray   = color.RGBA{97, 97, 97, 255}
	light  = color.RGBA{236, 239, 244, 255}
	white  = color.RGBA{255, 255, 255, 255}
	black  = color.RGBA{33, 33, 33, 255}
)

// Default is the fixed poster: a header, three headline stat cards, a
// tariff-category legend, and a footer rule.
func Default() []Element {
	elements := []Element{
		// header band
		{Shape: ShapeRect, X: 0, Y: 0, W: Width, H: 120, Color: navy},
		{Shape: ShapeText, X: 40, Y: 55, Color: white, Text: "US TRADE MONITOR"},
		{Shape: ShapeText, X: 40, Y: 85, Color: light, Text: "Tariffs & Trade Deficits at a Glance"},

		// stat cards
		{Shape: ShapeRect, X: 40, Y: 160, W: 220, H: 140, Color: light},
		{Shape: ShapeCircle, X: 80, Y: 200, R: 18, Color: red},
		{Shape: ShapeText, X: 60, Y: 250, Color: black, Text: "Trade deficit"},
		{Shape: ShapeText, X: 60, Y: 275, Color: gray, Text: "imports exceed exports"},

		{Shape: ShapeRect, X: 290, Y: 160, W: 220, H: 140, Color: light},
		{Shape: ShapeCircle, X: 330, Y: 200, R: 18, Color: green},
		{Shape: ShapeText, X: 310, Y: 250, Color: black, Text: "Trade surplus"},
		{Shape: ShapeText, X: 310, Y: 275, Color: gray, Text: "exports exceed imports"},

		{Shape: ShapeRect, X: 540, Y: 160, W: 220, H: 140, Color: light},
		{Shape: ShapeCircle, X: 580, Y: 200, R: 18, Color: orange},
		{Shape: ShapeText, X: 560, Y: 250, Color: black, Text: "Tariff rate"},
		{Shape: ShapeText, X: 560, Y: 275, Color: gray, Text: "% duty on partner goods"},

		// legend
		{Shape: ShapeText, X: 40, Y: 370, Color: navy, Text: "TARIFF CATEGORIES"},
		{Shape: ShapeLine, X: 40, Y: 385, X2: 760, Y2: 385, Color: gray},
	}

	legend := []struct {
		label string
		hint  string
		c     color.RGBA
	}{
		{"FTA Partner", "free-trade agreement, 0% duty", green},
		{"Normal Trade", "standard MFN rates", navy},
		{"Trade War", "elevated retaliatory tariffs", red},
		{"Sanctioned", "punitive rates apply", orange},
	}
	y := 430
	for _, item := range legend {
		elements = append(elements,
			Element{Shape: ShapeRect, X: 40, Y: y - 18, W: 24, H: 24, Color: item.c},
			Element{Shape: ShapeText, X: 80, Y: y, Color: black, Text: item.label},
			Element{Shape: ShapeText, X: 260, Y: y, Color: gray, Text: item.hint},
		)
		y += 60
	}

	// balance explainer
	elements = append(elements,
		Element{Shape: ShapeText, X: 40, Y: 720, Color: navy, Text: "HOW THE BALANCE IS READ"},
		Element{Shape: ShapeLine, X: 40, Y: 735, X2: 760, Y2: 735, Color: gray},
		Element{Shape: ShapeText, X: 40, Y: 775, Color: black, Text: "balance = exports - imports"},
		Element{Shape: ShapeText, X: 40, Y: 805, Color: gray, Text: "positive balance means a surplus with that partner"},
		Element{Shape: ShapeText, X: 40, Y: 830, Color: gray, Text: "negative balance means a deficit with that partner"},

		// footer
		Element{Shape: ShapeLine, X: 40, Y: 930, X2: 760, Y2: 930, Color: navy},
		Element{Shape: ShapeText, X: 40, Y: 960, Color: gray, Text: "Source: US Census Bureau international trade time series"},
	)

	return elements
}
