package ui

import "strings"

// Corner names the terminal corner the animation is anchored to.
type Corner string

const (
	TopLeft     Corner = "top-left"
	TopRight    Corner = "top-right"
	BottomLeft  Corner = "bottom-left"
	BottomRight Corner = "bottom-right"
)

// Corners lists the accepted corner names.
var Corners = []Corner{TopLeft, TopRight, BottomLeft, BottomRight}

// ParseCorner normalizes s. Unknown names fall back to TopLeft.
func ParseCorner(s string) Corner {
	c := Corner(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Corners {
		if c == known {
			return c
		}
	}
	return TopLeft
}

// Region is the fixed rectangle of terminal cells frames are drawn into.
// Top and Left are 1-based.
type Region struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// NewRegion anchors a wantW x wantH rectangle to corner, inset by padding.
// Width and height are clamped to the terminal size minus padding and never
// drop below 1. The rectangle always stays on screen.
func NewRegion(termCols, termRows int, corner Corner, padX, padY, wantW, wantH int) Region {
	termCols = max(termCols, 1)
	termRows = max(termRows, 1)
	padX = max(padX, 0)
	padY = max(padY, 0)

	r := Region{
		Width:  max(1, min(wantW, termCols-padX)),
		Height: max(1, min(wantH, termRows-padY)),
	}
	switch corner {
	case TopRight, BottomRight:
		r.Left = termCols - padX - r.Width + 1
	default:
		r.Left = padX + 1
	}
	switch corner {
	case BottomLeft, BottomRight:
		r.Top = termRows - padY - r.Height + 1
	default:
		r.Top = padY + 1
	}
	r.Left = max(1, min(r.Left, termCols-r.Width+1))
	r.Top = max(1, min(r.Top, termRows-r.Height+1))
	return r
}
