package conf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Verbose gates logs.LogV output.
var Verbose bool

const (
	appName          = "frameplay"
	defaultFPS       = 20.0
	defaultPadX      = 2
	defaultPadY      = 1
	defaultFG        = "green"
	defaultBG        = "black"
	defaultPreset    = "default"
	defaultCorner    = "top-left"
	defaultConfigExt = ".json"
)

// AppOptions aggregates every CLI flag and profile setting the player needs.
// JSON tags describe the profile file format.
type AppOptions struct {
	Source        string   `json:"source,omitempty"`
	Corner        string   `json:"corner,omitempty"`
	PadX          int      `json:"pad_x,omitempty"`
	PadY          int      `json:"pad_y,omitempty"`
	FPS           float64  `json:"fps,omitempty"`
	FrameWidth    int      `json:"width,omitempty"`
	TargetWidth   int      `json:"target_width,omitempty"`
	TargetHeight  int      `json:"target_height,omitempty"`
	Fit           *float64 `json:"fit,omitempty"`
	Scale         *float64 `json:"scale,omitempty"`
	Square        bool     `json:"square,omitempty"`
	SquareStretch bool     `json:"square_stretch,omitempty"`
	Foreground    string   `json:"fg,omitempty"`
	Background    string   `json:"bg,omitempty"`
	Bold          bool     `json:"bold,omitempty"`
	Cols          int      `json:"cols,omitempty"`
	Rows          int      `json:"rows,omitempty"`
	FrameHeight   int      `json:"frame_height,omitempty"`
	DetectHeight  bool     `json:"detect_height,omitempty"`

	Verbose    bool   `json:"-"`
	ConfigPath string `json:"-"`
	Preset     string `json:"-"`
}

// Presets are named configurations. "default" is used when the program is
// started without any arguments.
var Presets = map[string]AppOptions{
	defaultPreset: withDefaults(AppOptions{
		Source:        filepath.Join("animations", "my-animation"),
		SquareStretch: true,
	}),
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns the options used when nothing overrides them.
func Defaults() AppOptions {
	return AppOptions{
		Corner:     defaultCorner,
		PadX:       defaultPadX,
		PadY:       defaultPadY,
		FPS:        defaultFPS,
		Foreground: defaultFG,
		Background: defaultBG,
	}
}

// withDefaults fills the zero-valued layout and style fields of o.
func withDefaults(o AppOptions) AppOptions {
	d := Defaults()
	if o.Corner == "" {
		o.Corner = d.Corner
	}
	if o.PadX == 0 {
		o.PadX = d.PadX
	}
	if o.PadY == 0 {
		o.PadY = d.PadY
	}
	if o.FPS == 0 {
		o.FPS = d.FPS
	}
	if o.Foreground == "" {
		o.Foreground = d.Foreground
	}
	if o.Background == "" {
		o.Background = d.Background
	}
	return o
}

// RunFunc receives the fully resolved options.
type RunFunc func(cmd *cobra.Command, opts *AppOptions) error

// flagSet holds raw flag values before they are merged over profiles.
type flagSet struct {
	AppOptions
	fit   float64
	scale float64
}

// NewCommand builds the root command. Options are resolved in layers:
// defaults, preset, JSON profile, then flags that were set explicitly, then
// the positional source.
func NewCommand(version string, run RunFunc) *cobra.Command {
	fv := &flagSet{}
	cmd := &cobra.Command{
		Use:   appName + " [source]",
		Short: "Play ASCII-art animations in a corner of the terminal",
		Long: `Play a sequence of ASCII-art frames in a fixed region of the terminal.

source may be a directory (one frame per file), a glob pattern, or a single
file whose frames are separated by blank lines. Run without arguments to use
the "default" preset.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolve(cmd, fv, args)
			if err != nil {
				return err
			}
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&fv.Corner, "corner", defaultCorner, "anchor corner: top-left, top-right, bottom-left, bottom-right")
	f.IntVar(&fv.PadX, "pad-x", defaultPadX, "columns kept free between the animation and the terminal edge")
	f.IntVar(&fv.PadY, "pad-y", defaultPadY, "rows kept free between the animation and the terminal edge")
	f.Float64Var(&fv.FPS, "fps", defaultFPS, "frames per second")
	f.IntVar(&fv.FrameWidth, "width", 0, "frame width in columns; height follows the aspect ratio")
	f.IntVar(&fv.TargetWidth, "target-width", 0, "target width in columns")
	f.IntVar(&fv.TargetHeight, "target-height", 0, "target height in rows")
	f.Float64Var(&fv.fit, "fit", 1, "fill this fraction of the terminal (0.05-1)")
	f.Float64Var(&fv.scale, "scale", 0.5, "uniform scale of the original size (0.02-1)")
	f.BoolVar(&fv.Square, "square", false, "force a square target by cropping to the smaller side")
	f.BoolVar(&fv.SquareStretch, "square-stretch", false, "stretch rows so width matches the frame height")
	f.StringVar(&fv.Foreground, "fg", defaultFG, "foreground color name or SGR code; empty disables it")
	f.StringVar(&fv.Background, "bg", defaultBG, "background color name or SGR code; empty disables it")
	f.BoolVar(&fv.Bold, "bold", false, "bold text")
	f.IntVar(&fv.Cols, "cols", 0, "terminal width hint, skips size detection")
	f.IntVar(&fv.Rows, "rows", 0, "terminal height hint, skips size detection")
	f.IntVar(&fv.FrameHeight, "frame-height", 0, "split a single-file source every N lines")
	f.BoolVar(&fv.DetectHeight, "detect-height", false, "infer the frame height of a single-file source")
	f.StringVar(&fv.ConfigPath, "config", "", "JSON profile path or profile name")
	f.StringVar(&fv.Preset, "preset", "", "named preset: "+strings.Join(PresetNames(), ", "))
	f.BoolVarP(&fv.Verbose, "verbose", "v", false, "verbose logging")
	return cmd
}

func resolve(cmd *cobra.Command, fv *flagSet, args []string) (*AppOptions, error) {
	f := cmd.Flags()
	opts := Defaults()

	preset := strings.TrimSpace(fv.Preset)
	if preset == "" && f.NFlag() == 0 && len(args) == 0 {
		preset = defaultPreset
	}
	if preset != "" {
		p, ok := Presets[strings.ToLower(preset)]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(PresetNames(), ", "))
		}
		opts = p
		opts.Preset = strings.ToLower(preset)
	}

	cfgPath, err := resolveConfigPath(fv.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("config path error: %w", err)
	}
	opts.ConfigPath = cfgPath
	if err := loadProfile(cfgPath, &opts); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || f.Changed("config") {
			return nil, err
		}
	}

	applyChangedFlags(cmd, fv, &opts)
	if len(args) == 1 {
		opts.Source = args[0]
	}
	opts.normalize()
	if strings.TrimSpace(opts.Source) == "" {
		return nil, fmt.Errorf("no frame source given")
	}

	Verbose = opts.Verbose
	return &opts, nil
}

func applyChangedFlags(cmd *cobra.Command, fv *flagSet, opts *AppOptions) {
	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
		}
	}
	set("corner", func() { opts.Corner = fv.Corner })
	set("pad-x", func() { opts.PadX = fv.PadX })
	set("pad-y", func() { opts.PadY = fv.PadY })
	set("fps", func() { opts.FPS = fv.FPS })
	set("width", func() { opts.FrameWidth = fv.FrameWidth })
	set("target-width", func() { opts.TargetWidth = fv.TargetWidth })
	set("target-height", func() { opts.TargetHeight = fv.TargetHeight })
	set("fit", func() { v := fv.fit; opts.Fit = &v })
	set("scale", func() { v := fv.scale; opts.Scale = &v })
	set("square", func() { opts.Square = fv.Square })
	set("square-stretch", func() { opts.SquareStretch = fv.SquareStretch })
	set("fg", func() { opts.Foreground = fv.Foreground })
	set("bg", func() { opts.Background = fv.Background })
	set("bold", func() { opts.Bold = fv.Bold })
	set("cols", func() { opts.Cols = fv.Cols })
	set("rows", func() { opts.Rows = fv.Rows })
	set("frame-height", func() { opts.FrameHeight = fv.FrameHeight })
	set("detect-height", func() { opts.DetectHeight = fv.DetectHeight })
	set("verbose", func() { opts.Verbose = fv.Verbose })
}

// normalize clamps values that cannot be meaningful. Range checks for fit and
// scale live with the planner.
func (opts *AppOptions) normalize() {
	opts.Source = strings.TrimSpace(opts.Source)
	if strings.TrimSpace(opts.Corner) == "" {
		opts.Corner = defaultCorner
	}
	opts.PadX = max(opts.PadX, 0)
	opts.PadY = max(opts.PadY, 0)
	opts.Cols = max(opts.Cols, 0)
	opts.Rows = max(opts.Rows, 0)
	opts.FrameWidth = max(opts.FrameWidth, 0)
	opts.TargetWidth = max(opts.TargetWidth, 0)
	opts.TargetHeight = max(opts.TargetHeight, 0)
	opts.FrameHeight = max(opts.FrameHeight, 0)
}

// loadProfile overlays the JSON profile at path onto opts. Fields missing
// from the file keep their current values.
func loadProfile(path string, opts *AppOptions) error {
	if path == "" {
		return fs.ErrNotExist
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, opts); err != nil {
		return fmt.Errorf("profile %s: %w", path, err)
	}
	return nil
}

// resolveConfigPath normalizes the profile path, expanding "~" and converting
// it to an absolute path. When cfg is empty, it defaults to
// $XDG_CONFIG_HOME/frameplay/config.json or ~/.config/frameplay/config.json.
// A bare name without an extension (e.g. "corner") is treated as a profile
// inside the default config directory ("corner.json").
func resolveConfigPath(cfg string) (string, error) {
	raw := strings.TrimSpace(cfg)

	switch {
	case raw == "":
		if dir, err := defaultConfigDir(); err == nil {
			raw = filepath.Join(dir, "config"+defaultConfigExt)
		} else {
			raw = "config" + defaultConfigExt
		}
	case filepath.Base(raw) == raw && filepath.Ext(raw) == "":
		if dir, err := defaultConfigDir(); err == nil {
			raw = filepath.Join(dir, raw+defaultConfigExt)
		} else {
			raw = raw + defaultConfigExt
		}
	}

	if strings.HasPrefix(raw, "~/") {
		h, err := os.UserHomeDir()
		if err == nil {
			raw = filepath.Join(h, raw[2:])
		}
	}
	return filepath.Abs(raw)
}

func defaultConfigDir() (string, error) {
	d, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, appName), nil
}
