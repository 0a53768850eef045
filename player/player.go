// Package player drives the timed redraw loop of an animation.
package player

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/svanichkin/frameplay/frames"
	"github.com/svanichkin/frameplay/logs"
)

// minFPS keeps the frame delay finite when fps is zero or negative.
const minFPS = 1e-3

// State is the lifecycle stage of a Player.
type State int32

const (
	Idle State = iota
	Playing
	Interrupted
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Interrupted:
		return "interrupted"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Screen is the drawing surface the loop talks to. ui.Renderer implements it.
type Screen interface {
	// HideCursor hides the cursor and returns the func that restores it.
	HideCursor() (release func() error)
	ClearRegion()
	DrawFrame(lines []string)
	Flush() error
}

// Options configures pacing.
type Options struct {
	FPS float64
}

// Delay returns the pause between frames.
func (o Options) Delay() time.Duration {
	fps := o.FPS
	if fps < minFPS {
		fps = minFPS
	}
	return time.Duration(float64(time.Second) / fps)
}

// Player cycles a frame sequence on a Screen until its context is cancelled.
type Player struct {
	screen Screen
	seq    frames.Sequence
	opts   Options
	state  atomic.Int32
}

// New returns an idle player.
func New(screen Screen, seq frames.Sequence, opts Options) *Player {
	return &Player{screen: screen, seq: seq, opts: opts}
}

// State reports where the player is in its lifecycle.
func (p *Player) State() State {
	return State(p.state.Load())
}

// Run plays frames in order, wrapping forever, with a fixed sleep after each
// one. Cancelling ctx stops playback at the next sleep and returns nil. A
// failed flush or a panic while drawing stops it with an error. The cursor is
// shown again exactly once on every path.
func (p *Player) Run(ctx context.Context) (err error) {
	if len(p.seq) == 0 {
		return frames.ErrNoFrames
	}
	if !p.state.CompareAndSwap(int32(Idle), int32(Playing)) {
		return fmt.Errorf("player already %s", p.State())
	}

	release := p.screen.HideCursor()
	defer func() {
		if rec := recover(); rec != nil {
			p.state.Store(int32(Terminated))
			err = fmt.Errorf("playback panic: %v", rec)
		}
		if relErr := release(); relErr != nil && err == nil {
			err = fmt.Errorf("restore cursor: %w", relErr)
		}
		logs.LogV("[play] %s", p.State())
	}()

	p.screen.ClearRegion()
	if err := p.screen.Flush(); err != nil {
		p.state.Store(int32(Terminated))
		return fmt.Errorf("clear region: %w", err)
	}

	delay := p.opts.Delay()
	logs.LogV("[play] %d frames, delay %s", len(p.seq), delay)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for i := 0; ; i = (i + 1) % len(p.seq) {
		if ctx.Err() != nil {
			p.state.Store(int32(Interrupted))
			return nil
		}
		p.screen.ClearRegion()
		p.screen.DrawFrame(p.seq[i])
		if err := p.screen.Flush(); err != nil {
			p.state.Store(int32(Terminated))
			return fmt.Errorf("draw frame %d: %w", i, err)
		}

		timer.Reset(delay)
		select {
		case <-ctx.Done():
			p.state.Store(int32(Interrupted))
			return nil
		case <-timer.C:
		}
	}
}
