package frames

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadSingleFileBlankSeparated(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "anim.txt", "AAAA\nBBBB\nCCCC\n\n\n  \nDDDD\nEEEE\nFFFF\n\n")

	seq, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Sequence{
		{"AAAA", "BBBB", "CCCC"},
		{"DDDD", "EEEE", "FFFF"},
	}
	if !reflect.DeepEqual(seq, want) {
		t.Errorf("Load = %q, want %q", seq, want)
	}
}

func TestLoadDirectorySortedByName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "frame_002.txt", "two\n")
	writeFile(t, dir, "frame_001.txt", "one\n")
	writeFile(t, dir, "frame_003.txt", "   \n")
	writeFile(t, dir, ".hidden", "nope\n")

	seq, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Sequence{{"one"}, {"two"}}
	if !reflect.DeepEqual(seq, want) {
		t.Errorf("Load = %q, want %q", seq, want)
	}
}

func TestLoadGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "B\r\nB\r\n")
	writeFile(t, dir, "a.txt", "A\n")
	writeFile(t, dir, "c.dat", "C\n")

	seq, err := Load(filepath.Join(dir, "*.txt"), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Sequence{{"A"}, {"B", "B"}}
	if !reflect.DeepEqual(seq, want) {
		t.Errorf("Load = %q, want %q", seq, want)
	}
}

func TestLoadExistingPathBeatsGlob(t *testing.T) {
	dir := t.TempDir()
	literal := writeFile(t, dir, "frame[1].txt", "X\n\nY\n")
	writeFile(t, dir, "frame1.txt", "glob\n")
	bracketDir := filepath.Join(dir, "set[a]")
	if err := os.Mkdir(bracketDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, bracketDir, "01.txt", "D\n")
	writeFile(t, dir, "seta", "not a dir\n")

	tests := []struct {
		name string
		src  string
		want Sequence
	}{
		{"file with brackets", literal, Sequence{{"X"}, {"Y"}}},
		{"directory with brackets", bracketDir, Sequence{{"D"}}},
		{"missing path still globs", filepath.Join(dir, "frame[0-9].txt"), Sequence{{"glob"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Load(tt.src, Options{})
			if err != nil {
				t.Fatalf("Load(%q): %v", tt.src, err)
			}
			if !reflect.DeepEqual(seq, tt.want) {
				t.Errorf("Load(%q) = %q, want %q", tt.src, seq, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.txt", "\n\n  \n")

	tests := []struct {
		name string
		src  string
	}{
		{"empty source", ""},
		{"missing file", filepath.Join(dir, "missing.txt")},
		{"glob without matches", filepath.Join(dir, "*.none")},
		{"no frames", empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.src, Options{}); err == nil {
				t.Fatalf("Load(%q) succeeded, want error", tt.src)
			}
		})
	}

	if _, err := Load(empty, Options{}); !errors.Is(err, ErrNoFrames) {
		t.Errorf("Load(empty) err = %v, want ErrNoFrames", err)
	}
}

func TestLoadZstd(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	payload := enc.EncodeAll([]byte("xx\nyy\n\nzz\n"), nil)
	enc.Close()

	dir := t.TempDir()
	path := writeFile(t, dir, "anim.txt.zst", string(payload))

	seq, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Sequence{{"xx", "yy"}, {"zz"}}
	if !reflect.DeepEqual(seq, want) {
		t.Errorf("Load = %q, want %q", seq, want)
	}
}

func TestLoadFixedHeight(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tall.txt", "top\n\nbot\ntop\n\nbot\n")

	seq, err := Load(path, Options{FrameHeight: 3})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Sequence{{"top", "", "bot"}, {"top", "", "bot"}}
	if !reflect.DeepEqual(seq, want) {
		t.Errorf("Load = %q, want %q", seq, want)
	}

	seq, err = Load(path, Options{DetectHeight: true})
	if err != nil {
		t.Fatalf("Load detect: %v", err)
	}
	if !reflect.DeepEqual(seq, want) {
		t.Errorf("Load detect = %q, want %q", seq, want)
	}
}

func TestLoadGoSource(t *testing.T) {
	dir := t.TempDir()
	src := "package frames\n\nvar Frames = []string{\n\t`\n/\\\n\\/\n`,\n\t`\n--\n--\n`,\n}\n"
	path := writeFile(t, dir, "anim.go", src)

	seq, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Sequence{{"/\\", "\\/"}, {"--", "--"}}
	if !reflect.DeepEqual(seq, want) {
		t.Errorf("Load = %q, want %q", seq, want)
	}
}
