//go:build !windows

package device

// supportsSyncOutput indicates whether the terminal backend supports the ANSI
// synchronized output sequence (mode 2026). Most non-Windows terminals support it,
// so this is enabled on all platforms except Windows.
const supportsSyncOutput = true

// PrepareDisplay readies the console for ANSI output. Unix terminals need
// nothing, so the returned restore func is a no-op.
func PrepareDisplay() (restore func(), err error) {
	return func() {}, nil
}
