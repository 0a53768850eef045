// Package resample resizes ASCII-art frames with nearest-neighbor index
// mapping. Glyphs are never blended.
//
// Two families live here and are not interchangeable: StretchX and ResampleY
// remap indices proportionally, while Decimate shrinks by plain stride
// sampling.
package resample

import "strings"

// StretchX remaps every row to exactly newW runes. Output column j takes the
// source rune at floor(j*srcW/newW). An empty row becomes newW spaces.
// newW <= 0 returns lines unchanged.
func StretchX(lines []string, newW int) []string {
	if newW <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, row := range lines {
		src := []rune(row)
		if len(src) == 0 {
			out[i] = strings.Repeat(" ", newW)
			continue
		}
		dst := make([]rune, newW)
		for j := range dst {
			dst[j] = src[clampIndex(j*len(src)/newW, len(src))]
		}
		out[i] = string(dst)
	}
	return out
}

// ResampleY shrinks lines to newH rows, taking row floor(r*srcH/newH) for
// output row r. It never grows: newH <= 0 or newH >= len(lines) returns lines
// unchanged.
func ResampleY(lines []string, newH int) []string {
	if newH <= 0 || newH >= len(lines) {
		return lines
	}
	out := make([]string, newH)
	for r := range out {
		out[r] = lines[clampIndex(r*len(lines)/newH, len(lines))]
	}
	return out
}

// Steps returns the integer decimation strides for shrinking orig down to
// target, each at least 1.
func Steps(origW, origH, targetW, targetH int) (stepX, stepY int) {
	return stride(origW, targetW), stride(origH, targetH)
}

// Decimate keeps every stepY-th row and, inside it, every stepX-th rune.
// Strides below 1 are treated as 1 and a 1x1 stride returns lines unchanged.
// A result with no rows is replaced by a single empty row.
func Decimate(lines []string, stepX, stepY int) []string {
	if stepX < 1 {
		stepX = 1
	}
	if stepY < 1 {
		stepY = 1
	}
	if stepX == 1 && stepY == 1 {
		if len(lines) == 0 {
			return []string{""}
		}
		return lines
	}
	out := make([]string, 0, len(lines)/stepY+1)
	for r := 0; r < len(lines); r += stepY {
		out = append(out, strideRow(lines[r], stepX))
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

func strideRow(row string, step int) string {
	if step == 1 || row == "" {
		return row
	}
	src := []rune(row)
	dst := make([]rune, 0, len(src)/step+1)
	for c := 0; c < len(src); c += step {
		dst = append(dst, src[c])
	}
	return string(dst)
}

func stride(orig, target int) int {
	if target <= 0 {
		return 1
	}
	s := orig / target
	if s < 1 {
		return 1
	}
	return s
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
