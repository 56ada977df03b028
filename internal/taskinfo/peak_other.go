//go:build !linux && !darwin

package taskinfo

// rusagePeak is unavailable on this platform. The kernel-reported
// high-water mark (when present) stands in for it.
func rusagePeak() uint64 {
	return 0
}
