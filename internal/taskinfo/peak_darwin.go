package taskinfo

import "golang.org/x/sys/unix"

// rusagePeak returns the peak resident set size reported by getrusage.
// Darwin reports ru_maxrss in bytes.
func rusagePeak() uint64 {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil || ru.Maxrss < 0 {
		return 0
	}
	return uint64(ru.Maxrss)
}
