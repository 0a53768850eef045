//go:build windows

package device

import (
	"os"

	"golang.org/x/sys/windows"
)

const utf8CodePage = 65001

// supportsSyncOutput indicates whether the terminal backend supports the ANSI
// synchronized output sequence. Windows consoles do not,
// so this is always false on this platform.
const supportsSyncOutput = false

// PrepareDisplay enables virtual terminal processing and the UTF-8 code page
// so escape sequences and box-drawing glyphs render. The returned func puts
// the previous console modes and code pages back.
func PrepareDisplay() (restore func(), err error) {
	undoModes := enableVirtualTerminalProcessing()
	undoCP := forceUTF8ConsoleEncoding()
	return func() {
		undoCP()
		undoModes()
	}, nil
}

// enableVirtualTerminalProcessing configures stdout and stderr to use
// Virtual Terminal (VT) mode, enabling ANSI escape sequence support in
// PowerShell, Windows Terminal, and legacy console hosts that support it.
func enableVirtualTerminalProcessing() func() {
	handles := []windows.Handle{
		windows.Handle(os.Stdout.Fd()),
		windows.Handle(os.Stderr.Fd()),
	}

	type saved struct {
		h    windows.Handle
		mode uint32
	}
	var prev []saved
	for _, h := range handles {
		if h == windows.InvalidHandle {
			continue
		}

		// skip handles that are not consoles
		var mode uint32
		if err := windows.GetConsoleMode(h, &mode); err != nil {
			continue
		}
		prev = append(prev, saved{h: h, mode: mode})

		mode |= windows.ENABLE_PROCESSED_OUTPUT | windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
		mode &^= windows.DISABLE_NEWLINE_AUTO_RETURN

		_ = windows.SetConsoleMode(h, mode)
	}
	return func() {
		for _, s := range prev {
			_ = windows.SetConsoleMode(s.h, s.mode)
		}
	}
}

// forceUTF8ConsoleEncoding switches the active console input/output code pages
// to UTF-8 so Unicode glyphs render correctly without requiring users to run
// "chcp 65001" manually.
func forceUTF8ConsoleEncoding() func() {
	outCP, outErr := windows.GetConsoleOutputCP()
	inCP, inErr := windows.GetConsoleCP()
	_ = windows.SetConsoleOutputCP(utf8CodePage)
	_ = windows.SetConsoleCP(utf8CodePage)
	return func() {
		if outErr == nil {
			_ = windows.SetConsoleOutputCP(outCP)
		}
		if inErr == nil {
			_ = windows.SetConsoleCP(inCP)
		}
	}
}
