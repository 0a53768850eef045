// Package plan decides the playback size of an animation and runs the resize
// pipeline over its frames.
package plan

import (
	"math"

	"github.com/svanichkin/frameplay/frames"
	"github.com/svanichkin/frameplay/logs"
	"github.com/svanichkin/frameplay/resample"
)

const (
	MinFit       = 0.05
	MaxFit       = 1.0
	MinScale     = 0.02
	MaxScale     = 1.0
	DefaultScale = 0.5
)

// Size is a width/height pair in character cells.
type Size struct {
	W int
	H int
}

// Intent carries the user's sizing request. Nil pointers and zero sizes mean
// "not given". Fit and Scale are pointers because 0 is a valid request that
// gets clamped.
type Intent struct {
	Fit           *float64
	TargetW       int
	TargetH       int
	FrameWidth    int
	Scale         *float64
	Square        bool
	SquareStretch bool
}

// Result describes what the pipeline decided.
type Result struct {
	Orig   frames.Box
	Target Size
	StepX  int
	StepY  int
}

// Available subtracts padding from the terminal size, keeping each axis >= 1.
func Available(term Size, padX, padY int) Size {
	return Size{W: atLeastOne(term.W - max(padX, 0)), H: atLeastOne(term.H - max(padY, 0))}
}

// Targets returns the target size for playback. Rules are tried in order and
// the first that applies wins: fit fraction, explicit target size, explicit
// frame width, uniform scale. Square then forces both axes to the smaller one.
// Both results are always >= 1.
func Targets(orig frames.Box, avail Size, in Intent) Size {
	orig.W = atLeastOne(orig.W)
	orig.H = atLeastOne(orig.H)
	avail.W = atLeastOne(avail.W)
	avail.H = atLeastOne(avail.H)

	var t Size
	switch {
	case in.Fit != nil:
		f := clamp(*in.Fit, MinFit, MaxFit)
		t = Size{W: floorMul(avail.W, f), H: floorMul(avail.H, f)}
	case in.TargetW > 0 || in.TargetH > 0:
		t = Size{W: in.TargetW, H: in.TargetH}
		switch {
		case t.W > 0 && t.H <= 0:
			t.H = keepAspect(orig.H, t.W, orig.W)
		case t.H > 0 && t.W <= 0:
			t.W = keepAspect(orig.W, t.H, orig.H)
		}
	case in.FrameWidth > 0:
		t = Size{W: in.FrameWidth, H: keepAspect(orig.H, in.FrameWidth, orig.W)}
	default:
		s := DefaultScale
		if in.Scale != nil {
			s = clamp(*in.Scale, MinScale, MaxScale)
		}
		t = Size{W: min(floorMul(orig.W, s), avail.W), H: min(floorMul(orig.H, s), avail.H)}
	}
	t.W = atLeastOne(t.W)
	t.H = atLeastOne(t.H)
	if in.Square {
		side := min(t.W, t.H)
		t = Size{W: side, H: side}
	}
	return t
}

// Apply plans the target size for seq and resamples every frame with that
// single decision. With SquareStretch, rows are first stretched so their
// width matches the original height (capped at the available width) and the
// target becomes the stretched bounding box.
func Apply(seq frames.Sequence, avail Size, in Intent) (frames.Sequence, Result) {
	orig := seq.Bounds()
	target := Targets(orig, avail, in)

	if in.SquareStretch {
		desired := min(atLeastOne(orig.H), atLeastOne(avail.W))
		seq = seq.Map(func(f frames.Frame) frames.Frame {
			return resample.StretchX(f, desired)
		})
		orig = seq.Bounds()
		target = Size{W: atLeastOne(orig.W), H: atLeastOne(orig.H)}
		logs.LogV("[plan] square-stretch to width %d", desired)
	}

	stepX, stepY := resample.Steps(orig.W, orig.H, target.W, target.H)
	if stepX > 1 || stepY > 1 {
		seq = seq.Map(func(f frames.Frame) frames.Frame {
			return resample.Decimate(f, stepX, stepY)
		})
	}
	logs.LogV("[plan] orig %dx%d target %dx%d step %dx%d", orig.W, orig.H, target.W, target.H, stepX, stepY)
	return seq, Result{Orig: orig, Target: target, StepX: stepX, StepY: stepY}
}

func keepAspect(other, target, dim int) int {
	if dim <= 0 {
		return atLeastOne(target)
	}
	return atLeastOne(int(math.Round(float64(other) * float64(target) / float64(dim))))
}

func floorMul(n int, f float64) int {
	return int(math.Floor(float64(n) * f))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
