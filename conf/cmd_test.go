package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func execute(t *testing.T, args ...string) (*AppOptions, error) {
	t.Helper()
	var got *AppOptions
	cmd := NewCommand("test", func(_ *cobra.Command, opts *AppOptions) error {
		got = opts
		return nil
	})
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(&strings.Builder{})
	cmd.SetErr(&strings.Builder{})
	err := cmd.Execute()
	return got, err
}

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return filepath.Join(dir, appName)
}

func TestNoArgumentsUsesDefaultPreset(t *testing.T) {
	isolateConfig(t)
	opts, err := execute(t)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if opts.Preset != "default" {
		t.Errorf("Preset = %q, want default", opts.Preset)
	}
	if opts.Source != filepath.Join("animations", "my-animation") {
		t.Errorf("Source = %q", opts.Source)
	}
	if !opts.SquareStretch || opts.FPS != 20 {
		t.Errorf("preset not applied: square-stretch=%v fps=%v", opts.SquareStretch, opts.FPS)
	}
	if opts.PadX != 2 || opts.PadY != 1 || opts.Foreground != "green" || opts.Background != "black" {
		t.Errorf("preset lost the default layout or style: %+v", opts)
	}
}

func TestFlagsOverrideDefaults(t *testing.T) {
	isolateConfig(t)
	opts, err := execute(t, "frames.txt",
		"--corner", "bottom-right", "--pad-x", "2", "--pad-y=1", "--fps", "12.5",
		"--fit", "0", "--fg", "green", "--bg", "40", "--bold", "--cols", "100", "--rows", "30",
		"--frame-height", "97", "-v")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if opts.Preset != "" {
		t.Errorf("Preset = %q, want none", opts.Preset)
	}
	if opts.Source != "frames.txt" || opts.Corner != "bottom-right" || opts.PadX != 2 || opts.PadY != 1 {
		t.Errorf("unexpected layout options: %+v", opts)
	}
	if opts.FPS != 12.5 {
		t.Errorf("FPS = %v", opts.FPS)
	}
	if opts.Fit == nil || *opts.Fit != 0 {
		t.Errorf("Fit = %v, want explicit 0", opts.Fit)
	}
	if opts.Scale != nil {
		t.Errorf("Scale = %v, want unset", *opts.Scale)
	}
	if opts.Foreground != "green" || opts.Background != "40" || !opts.Bold {
		t.Errorf("style options = %q %q %v", opts.Foreground, opts.Background, opts.Bold)
	}
	if opts.Cols != 100 || opts.Rows != 30 || opts.FrameHeight != 97 {
		t.Errorf("geometry options = %d %d %d", opts.Cols, opts.Rows, opts.FrameHeight)
	}
	if !opts.Verbose || !Verbose {
		t.Errorf("verbose not set")
	}
	Verbose = false
}

func TestDefaultsWithSourceOnly(t *testing.T) {
	isolateConfig(t)
	opts, err := execute(t, "anim")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"fps", opts.FPS, 20.0},
		{"corner", opts.Corner, "top-left"},
		{"pad-x", opts.PadX, 2},
		{"pad-y", opts.PadY, 1},
		{"fg", opts.Foreground, "green"},
		{"bg", opts.Background, "black"},
		{"bold", opts.Bold, false},
		{"square-stretch", opts.SquareStretch, false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("default %s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if opts.Fit != nil || opts.Scale != nil {
		t.Errorf("fit/scale should be unset")
	}
}

func TestEmptyColorFlagsDisableStyle(t *testing.T) {
	isolateConfig(t)
	opts, err := execute(t, "anim", "--fg", "", "--bg=", "--pad-x", "0", "--pad-y", "0")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if opts.Foreground != "" || opts.Background != "" {
		t.Errorf("colors = %q %q, want both empty", opts.Foreground, opts.Background)
	}
	if opts.PadX != 0 || opts.PadY != 0 {
		t.Errorf("explicit zero padding lost: %d %d", opts.PadX, opts.PadY)
	}
}

func TestNegativeValuesClamped(t *testing.T) {
	isolateConfig(t)
	opts, err := execute(t, "anim", "--pad-x", "-3", "--cols", "-1", "--width", "-10")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if opts.PadX != 0 || opts.Cols != 0 || opts.FrameWidth != 0 {
		t.Errorf("negative values not clamped: %+v", opts)
	}
}

func TestProfileLayering(t *testing.T) {
	dir := isolateConfig(t)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	profile := `{"source": "from-profile", "fps": 5, "corner": "top-right", "scale": 0.25, "bold": true}`
	if err := os.WriteFile(filepath.Join(dir, "corner.json"), []byte(profile), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := execute(t, "--config", "corner", "--fps", "30")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if opts.Source != "from-profile" || opts.Corner != "top-right" || !opts.Bold {
		t.Errorf("profile not applied: %+v", opts)
	}
	if opts.Scale == nil || *opts.Scale != 0.25 {
		t.Errorf("Scale = %v, want 0.25", opts.Scale)
	}
	if opts.FPS != 30 {
		t.Errorf("FPS = %v, flag should override profile", opts.FPS)
	}
	if opts.ConfigPath != filepath.Join(dir, "corner.json") {
		t.Errorf("ConfigPath = %q", opts.ConfigPath)
	}
}

func TestDefaultProfileAppliedWhenPresent(t *testing.T) {
	dir := isolateConfig(t)
	os.MkdirAll(dir, 0o755)
	os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"fg": "cyan"}`), 0o644)

	opts, err := execute(t, "anim")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if opts.Foreground != "cyan" {
		t.Errorf("Foreground = %q, want cyan from config.json", opts.Foreground)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing explicit profile", []string{"anim", "--config", "nope"}},
		{"unknown preset", []string{"--preset", "gina"}},
		{"no source", []string{"--fps", "5"}},
		{"too many args", []string{"a", "b"}},
		{"unknown flag", []string{"anim", "--sparkle"}},
		{"bad number", []string{"anim", "--fps", "fast"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)
			if _, err := execute(t, tt.args...); err == nil {
				t.Errorf("Execute(%v) succeeded, want error", tt.args)
			}
		})
	}
}

func TestBrokenProfile(t *testing.T) {
	dir := isolateConfig(t)
	os.MkdirAll(dir, 0o755)
	os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"fps": "fast"`), 0o644)
	if _, err := execute(t, "anim"); err == nil {
		t.Errorf("broken config.json should fail")
	}
}

func TestResolveConfigPath(t *testing.T) {
	dir := isolateConfig(t)
	tests := []struct {
		in   string
		want string
	}{
		{"", filepath.Join(dir, "config.json")},
		{"work", filepath.Join(dir, "work.json")},
		{"~/p.json", filepath.Join(filepath.Dir(dir), "p.json")},
	}
	for _, tt := range tests {
		got, err := resolveConfigPath(tt.in)
		if err != nil {
			t.Fatalf("resolveConfigPath(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("resolveConfigPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
