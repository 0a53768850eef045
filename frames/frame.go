package frames

import "unicode/utf8"

// Frame is one still image of ASCII art, stored as rows of text. Rows may
// have different lengths.
type Frame []string

// Box is the bounding box of a frame or sequence in character cells.
type Box struct {
	W int
	H int
}

// Sequence is an ordered, non-empty list of frames played back cyclically.
type Sequence []Frame

// Width returns the longest row of the frame, counted in runes.
func (f Frame) Width() int {
	w := 0
	for _, row := range f {
		if n := utf8.RuneCountInString(row); n > w {
			w = n
		}
	}
	return w
}

// Clone returns a copy of the frame that shares no backing array with f.
func (f Frame) Clone() Frame {
	out := make(Frame, len(f))
	copy(out, f)
	return out
}

// Len returns the number of frames.
func (s Sequence) Len() int {
	return len(s)
}

// At returns frame i, wrapping around so playback can iterate forever.
func (s Sequence) At(i int) Frame {
	n := len(s)
	if n == 0 {
		return nil
	}
	i %= n
	if i < 0 {
		i += n
	}
	return s[i]
}

// Bounds reports the max row width and max row count over every frame.
// It is recomputed on each call since resampling changes frame shape.
func (s Sequence) Bounds() Box {
	var b Box
	for _, f := range s {
		if w := f.Width(); w > b.W {
			b.W = w
		}
		if len(f) > b.H {
			b.H = len(f)
		}
	}
	return b
}

// Map applies fn to every frame and returns a new sequence.
func (s Sequence) Map(fn func(Frame) Frame) Sequence {
	out := make(Sequence, len(s))
	for i, f := range s {
		out[i] = fn(f)
	}
	return out
}
