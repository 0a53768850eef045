package ui

import (
	"strconv"
	"strings"
)

const (
	sgrBold  = "\x1b[1m"
	sgrReset = "\x1b[0m"
)

// basicColors maps the eight standard color names to their foreground SGR
// code. Background codes are the same plus 10.
var basicColors = map[string]int{
	"black":   30,
	"red":     31,
	"green":   32,
	"yellow":  33,
	"blue":    34,
	"magenta": 35,
	"cyan":    36,
	"white":   37,
}

// fallbackColor is used for names missing from basicColors.
const fallbackColor = 32

// Style is the constant SGR prefix written before every frame row.
type Style struct {
	prefix string
}

// NewStyle resolves color names or raw numeric codes into an SGR prefix.
// Numeric values such as "91" or "38;5;208" are passed through untouched.
// Unknown names fall back to green. An empty value sets no color.
func NewStyle(fg, bg string, bold bool) Style {
	var sb strings.Builder
	if bold {
		sb.WriteString(sgrBold)
	}
	if code, ok := colorCode(fg, 0); ok {
		sb.WriteString("\x1b[" + code + "m")
	}
	if code, ok := colorCode(bg, 10); ok {
		sb.WriteString("\x1b[" + code + "m")
	}
	return Style{prefix: sb.String()}
}

// Prefix returns the escape sequence that turns the style on.
func (s Style) Prefix() string {
	return s.prefix
}

// Reset returns the sequence that turns every attribute off.
func (s Style) Reset() string {
	return sgrReset
}

func colorCode(v string, offset int) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "", false
	}
	if isRawCode(v) {
		return v, true
	}
	base, ok := basicColors[v]
	if !ok {
		base = fallbackColor
	}
	return strconv.Itoa(base + offset), true
}

func isRawCode(v string) bool {
	digits := false
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == ';':
		default:
			return false
		}
	}
	return digits
}

