package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/svanichkin/frameplay/conf"
	"github.com/svanichkin/frameplay/device"
	"github.com/svanichkin/frameplay/frames"
	"github.com/svanichkin/frameplay/logs"
	"github.com/svanichkin/frameplay/plan"
	"github.com/svanichkin/frameplay/player"
	"github.com/svanichkin/frameplay/ui"
)

var version = "dev"

func main() {
	cmd := conf.NewCommand(appVersion(), play)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[frameplay] %v\n", err)
		os.Exit(1)
	}
}

func play(cmd *cobra.Command, opts *conf.AppOptions) (err error) {
	logWriter, closeLog, logPath, logErr := initLogSink(opts.ConfigPath)
	if closeLog != nil {
		defer closeLog()
	}
	logOutput := io.Writer(os.Stderr)
	if logWriter != nil {
		logOutput = io.MultiWriter(os.Stderr, logWriter)
	}
	log.SetOutput(logOutput)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if logErr == nil {
		logs.LogV("[frameplay] logs: %s", logPath)
	} else {
		logs.LogV("[frameplay] log file disabled (%v)", logErr)
	}

	session := uuid.New().String()
	if opts.Preset != "" {
		logs.LogV("[session] %s preset %q", session, opts.Preset)
	} else {
		logs.LogV("[session] %s", session)
	}

	seq, err := frames.Load(opts.Source, frames.Options{
		FrameHeight:  opts.FrameHeight,
		DetectHeight: opts.DetectHeight,
	})
	if err != nil {
		return err
	}

	cols, rows := terminalSize(opts)
	avail := plan.Available(plan.Size{W: cols, H: rows}, opts.PadX, opts.PadY)
	seq, res := plan.Apply(seq, avail, intentFrom(opts))
	logs.LogV("[session] %s target %dx%d step %d/%d", session, res.Target.W, res.Target.H, res.StepX, res.StepY)
	region := regionFor(seq, cols, rows, opts)
	logs.LogV("[session] %s terminal %dx%d region %+v", session, cols, rows, region)

	restoreDisplay, err := device.PrepareDisplay()
	if err != nil {
		return fmt.Errorf("prepare display: %w", err)
	}
	defer restoreDisplay()

	appCtx, appCancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer appCancel()

	// stderr would tear the animation from here on
	if logWriter != nil {
		log.SetOutput(logWriter)
	} else {
		log.SetOutput(io.Discard)
	}

	style := ui.NewStyle(opts.Foreground, opts.Background, opts.Bold)
	renderer := ui.NewRenderer(device.Stdout(), region, style)
	started := time.Now()
	err = player.New(renderer, seq, player.Options{FPS: opts.FPS}).Run(appCtx)
	logs.LogV("[session] %s stopped after %s", session, time.Since(started).Round(time.Millisecond))
	return err
}

func intentFrom(opts *conf.AppOptions) plan.Intent {
	return plan.Intent{
		Fit:           opts.Fit,
		TargetW:       opts.TargetWidth,
		TargetH:       opts.TargetHeight,
		FrameWidth:    opts.FrameWidth,
		Scale:         opts.Scale,
		Square:        opts.Square,
		SquareStretch: opts.SquareStretch,
	}
}

// regionFor sizes the drawing region from the frames as they will be drawn.
// Decimation can leave frames larger than the planner target, and a target
// larger than the content must not pull the region away from its corner.
func regionFor(seq frames.Sequence, cols, rows int, opts *conf.AppOptions) ui.Region {
	b := seq.Bounds()
	w := b.W
	if opts.FrameWidth > 0 {
		w = opts.FrameWidth
	}
	return ui.NewRegion(cols, rows, ui.ParseCorner(opts.Corner), opts.PadX, opts.PadY, w, b.H)
}

// terminalSize prefers the geometry hints and asks the terminal for whatever
// is missing, falling back to 80x24.
func terminalSize(opts *conf.AppOptions) (cols, rows int) {
	cols, rows = opts.Cols, opts.Rows
	if cols > 0 && rows > 0 {
		return cols, rows
	}
	qc, qr, err := device.TermSizeOr(device.GetTermSize, device.FallbackCols, device.FallbackRows)
	if err != nil {
		logs.LogV("[term] size query failed, using %dx%d: %v", qc, qr, err)
	}
	if cols <= 0 {
		cols = qc
	}
	if rows <= 0 {
		rows = qr
	}
	return cols, rows
}

func initLogSink(configPath string) (io.Writer, func() error, string, error) {
	dir := filepath.Dir(configPath)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, "", err
	}
	logPath := filepath.Join(dir, "frameplay.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, logPath, err
	}
	closeFn := func() error {
		return f.Close()
	}
	return f, closeFn, logPath, nil
}

func appVersion() string {
	v := strings.TrimSpace(version)
	if v == "" {
		v = "dev"
	}
	if v != "dev" {
		return v
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if ver := strings.TrimSpace(bi.Main.Version); ver != "" && ver != "(devel)" {
		return ver
	}
	if derived := vcsVersion(bi); derived != "" {
		return derived
	}
	return v
}

func vcsVersion(bi *debug.BuildInfo) string {
	revision := buildInfoSetting(bi, "vcs.revision")
	if revision == "" {
		return ""
	}
	short := revision
	if len(short) > 12 {
		short = short[:12]
	}
	dirty := ""
	if buildInfoSetting(bi, "vcs.modified") == "true" {
		dirty = "+dirty"
	}
	if ts := buildInfoSetting(bi, "vcs.time"); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return fmt.Sprintf("v0.0.0-%s-%s%s", t.UTC().Format("20060102150405"), short, dirty)
		}
	}
	return short + dirty
}

func buildInfoSetting(bi *debug.BuildInfo, key string) string {
	for _, setting := range bi.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}
