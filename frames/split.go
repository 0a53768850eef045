package frames

import (
	"strings"

	"github.com/svanichkin/frameplay/logs"
)

// SplitBlank splits lines into frames separated by one or more blank lines.
// Whitespace-only lines count as blank. Empty chunks are dropped.
func SplitBlank(lines []string) Sequence {
	var (
		seq Sequence
		cur Frame
	)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(cur) > 0 {
				seq = append(seq, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		seq = append(seq, cur)
	}
	return seq
}

// SplitEvery cuts lines into frames of exactly height rows. A short trailing
// chunk becomes the last frame. Frames made only of blank lines are dropped.
func SplitEvery(lines []string, height int) Sequence {
	if height <= 0 {
		return SplitBlank(lines)
	}
	var seq Sequence
	for start := 0; start < len(lines); start += height {
		end := start + height
		if end > len(lines) {
			logs.LogV("[frames] %d lines left over after splitting every %d", len(lines)-start, height)
			end = len(lines)
		}
		chunk := Frame(lines[start:end]).Clone()
		if blankFrame(chunk) {
			continue
		}
		seq = append(seq, chunk)
	}
	return seq
}

// SplitRawLiterals extracts every backtick-quoted literal from Go source and
// returns each one as a frame. Surrounding newlines are trimmed.
func SplitRawLiterals(src string) Sequence {
	parts := strings.Split(src, "`")
	var seq Sequence
	for i := 1; i < len(parts); i += 2 {
		body := strings.Trim(parts[i], "\n")
		if strings.TrimSpace(body) == "" {
			continue
		}
		seq = append(seq, Frame(strings.Split(body, "\n")))
	}
	return seq
}

// DetectFrameHeight looks for the positions where the first line repeats and
// returns the most common gap between them. Ties go to the smaller gap.
func DetectFrameHeight(lines []string) (int, bool) {
	if len(lines) < 2 {
		return 0, false
	}
	first := lines[0]
	if strings.TrimSpace(first) == "" {
		return 0, false
	}
	prev := 0
	counts := make(map[int]int)
	for i := 1; i < len(lines); i++ {
		if lines[i] != first {
			continue
		}
		counts[i-prev]++
		prev = i
	}
	best, bestCount := 0, 0
	for gap, n := range counts {
		if n > bestCount || (n == bestCount && gap < best) {
			best, bestCount = gap, n
		}
	}
	return best, best > 0
}

func blankFrame(f Frame) bool {
	for _, row := range f {
		if strings.TrimSpace(row) != "" {
			return false
		}
	}
	return true
}
