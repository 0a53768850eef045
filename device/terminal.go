package device

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	// FallbackCols and FallbackRows are used when the terminal size cannot be read.
	FallbackCols = 80
	FallbackRows = 24
)

const (
	seqCursorHide = "\x1b[?25l"
	seqCursorShow = "\x1b[?25h"
	seqReset      = "\x1b[0m"
	seqSyncBegin  = "\x1b[?2026h"
	seqSyncEnd    = "\x1b[?2026l"
)

// Terminal is a buffered ANSI writer. Nothing reaches the underlying writer
// until Flush is called.
type Terminal struct {
	w    *bufio.Writer
	sync bool
}

// NewTerminal wraps out. Synchronized output markers are emitted around
// each flushed frame when the platform supports them.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{w: bufio.NewWriterSize(out, 64*1024), sync: supportsSyncOutput}
}

// Stdout returns a Terminal writing to os.Stdout.
func Stdout() *Terminal {
	return NewTerminal(os.Stdout)
}

// SetSyncOutput toggles the synchronized output markers.
func (t *Terminal) SetSyncOutput(enabled bool) {
	t.sync = enabled
}

// MoveCursor positions the cursor at 1-based row and col.
func (t *Terminal) MoveCursor(row, col int) {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	var buf [24]byte
	b := append(buf[:0], "\x1b["...)
	b = strconv.AppendInt(b, int64(row), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(col), 10)
	b = append(b, 'H')
	t.w.Write(b)
}

// HideCursor queues the cursor-hide sequence.
func (t *Terminal) HideCursor() {
	t.w.WriteString(seqCursorHide)
}

// ShowCursor queues the cursor-show sequence.
func (t *Terminal) ShowCursor() {
	t.w.WriteString(seqCursorShow)
}

// ResetStyle queues an SGR reset.
func (t *Terminal) ResetStyle() {
	t.w.WriteString(seqReset)
}

// WriteString queues raw text.
func (t *Terminal) WriteString(s string) {
	t.w.WriteString(s)
}

// BeginSync opens a synchronized update (DEC mode 2026) so the terminal
// paints the frame at once.
func (t *Terminal) BeginSync() {
	if t.sync {
		t.w.WriteString(seqSyncBegin)
	}
}

// EndSync closes a synchronized update.
func (t *Terminal) EndSync() {
	if t.sync {
		t.w.WriteString(seqSyncEnd)
	}
}

// Flush writes everything queued so far.
func (t *Terminal) Flush() error {
	return t.w.Flush()
}

// GetTermSize queries the current terminal size in character cells using stdout.
func GetTermSize() (cols, rows int, err error) {
	cols, rows, err = term.GetSize(int(os.Stdout.Fd()))
	return
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TermSizeOr returns the terminal size, falling back to cols x rows when it
// cannot be read or is degenerate. The error is returned for logging only.
func TermSizeOr(query func() (int, int, error), cols, rows int) (int, int, error) {
	if query == nil {
		query = GetTermSize
	}
	c, r, err := query()
	if err != nil {
		return cols, rows, err
	}
	if c <= 0 || r <= 0 {
		return cols, rows, nil
	}
	return c, r, nil
}
