package frames

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/svanichkin/frameplay/logs"
)

// ErrNoFrames is returned when a source yields nothing playable.
var ErrNoFrames = errors.New("no frames found")

// Options controls how a single-file source is split into frames.
type Options struct {
	// FrameHeight splits the file every N lines instead of at blank lines.
	FrameHeight int
	// DetectHeight infers FrameHeight from the repeat period of the first line.
	DetectHeight bool
}

// Load reads a frame sequence from src. src may be a directory (one frame per
// file, sorted by name), a glob pattern (one frame per match, sorted) or a
// single file holding several frames. An existing path always wins over glob
// expansion, so names containing '[' or '*' load as plain files. Files ending in .zst are decompressed
// and .go files yield one frame per raw string literal.
func Load(src string, opts Options) (Sequence, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("frame source is empty")
	}
	if strings.HasPrefix(src, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			src = filepath.Join(h, src[2:])
		}
	}

	var (
		seq Sequence
		err error
	)
	info, statErr := os.Stat(src)
	switch {
	case statErr == nil && info.IsDir():
		seq, err = loadDir(src)
	case statErr == nil:
		seq, err = loadFile(src, opts)
	case errors.Is(statErr, fs.ErrNotExist) && isGlob(src):
		seq, err = loadGlob(src)
	default:
		return nil, fmt.Errorf("frame source: %w", statErr)
	}
	if err != nil {
		return nil, err
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("%s: %w", src, ErrNoFrames)
	}
	logs.LogV("[frames] loaded %d frames from %s", len(seq), src)
	return seq, nil
}

func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

func loadGlob(pattern string) (Sequence, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %q", pattern)
	}
	sort.Strings(matches)
	files := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, fmt.Errorf("frame source: %w", err)
		}
		if info.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	return loadPerFile(files)
}

func loadDir(dir string) (Sequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("frame source: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return loadPerFile(files)
}

func loadPerFile(files []string) (Sequence, error) {
	seq := make(Sequence, 0, len(files))
	for _, path := range files {
		text, err := readText(path)
		if err != nil {
			return nil, err
		}
		text = strings.TrimRight(text, "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		seq = append(seq, Frame(strings.Split(text, "\n")))
	}
	return seq, nil
}

func loadFile(path string, opts Options) (Sequence, error) {
	text, err := readText(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(strings.TrimSuffix(path, ".zst")) == ".go" {
		return SplitRawLiterals(text), nil
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	height := opts.FrameHeight
	if height <= 0 && opts.DetectHeight {
		if h, ok := DetectFrameHeight(lines); ok {
			logs.LogV("[frames] detected frame height %d in %s", h, path)
			height = h
		} else {
			logs.LogV("[frames] no repeating first line in %s, splitting on blank lines", path)
		}
	}
	if height > 0 {
		return SplitEvery(lines, height), nil
	}
	return SplitBlank(lines), nil
}

// readText returns the file contents with CRLF line endings normalized.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read frame file: %w", err)
	}
	if strings.HasSuffix(path, ".zst") {
		data, err = decompressZstd(data)
		if err != nil {
			return "", fmt.Errorf("decompress %s: %w", path, err)
		}
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
