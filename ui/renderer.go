package ui

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/svanichkin/frameplay/device"
	"github.com/svanichkin/frameplay/logs"
)

// Renderer draws frames into a fixed Region of the terminal. It owns the
// cursor visibility for as long as playback runs.
type Renderer struct {
	term   *device.Terminal
	region Region
	style  Style
	blank  string

	// inSync is set while a synchronized update is open.
	inSync bool
}

// NewRenderer builds a renderer for region on term.
func NewRenderer(term *device.Terminal, region Region, style Style) *Renderer {
	return &Renderer{
		term:   term,
		region: region,
		style:  style,
		blank:  strings.Repeat(" ", max(region.Width, 0)),
	}
}

// Region returns the rectangle the renderer draws into.
func (r *Renderer) Region() Region {
	return r.region
}

// HideCursor hides the cursor right away and returns the func that shows it
// again. The release func resets styling, shows the cursor and flushes; it
// does so once no matter how many times it is called. A failed hide is only
// logged; the first frame flush reports a broken terminal.
func (r *Renderer) HideCursor() (release func() error) {
	r.term.HideCursor()
	if err := r.term.Flush(); err != nil {
		logs.LogV("[term] hide cursor: %v", err)
	}

	var (
		once sync.Once
		err  error
	)
	return func() error {
		once.Do(func() {
			r.endSync()
			r.term.ResetStyle()
			r.term.ShowCursor()
			err = r.term.Flush()
		})
		return err
	}
}

// ClearRegion overwrites every row of the region with spaces so rows of the
// next frame that are shorter do not leave old glyphs behind.
func (r *Renderer) ClearRegion() {
	r.beginSync()
	for row := 0; row < r.region.Height; row++ {
		r.term.MoveCursor(r.region.Top+row, r.region.Left)
		r.term.WriteString(r.blank)
	}
}

// DrawFrame writes up to Height rows of lines. Each row is styled and
// left-justified, then padded or cut to exactly Width cells.
func (r *Renderer) DrawFrame(lines []string) {
	r.beginSync()
	prefix := r.style.Prefix()
	for row := 0; row < r.region.Height && row < len(lines); row++ {
		r.term.MoveCursor(r.region.Top+row, r.region.Left)
		r.term.WriteString(prefix)
		r.term.WriteString(FitWidth(lines[row], r.region.Width))
		r.term.WriteString(r.style.Reset())
	}
}

// Flush pushes the queued frame to the terminal.
func (r *Renderer) Flush() error {
	r.endSync()
	return r.term.Flush()
}

func (r *Renderer) beginSync() {
	if !r.inSync {
		r.term.BeginSync()
		r.inSync = true
	}
}

func (r *Renderer) endSync() {
	if r.inSync {
		r.term.EndSync()
		r.inSync = false
	}
}

// FitWidth cuts or space-pads s to exactly width display cells.
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.TrimRight(s, "\r")
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "")
	}
	return runewidth.FillRight(s, width)
}
