package format

import (
	"fmt"
	"time"
)

// FormatUptime formats an elapsed duration for display in headers and status
// lines. Sub-second precision is dropped; the largest nonzero unit leads.
//
// Parameters:
//   - d: The elapsed duration; negative values render as zero.
//
// Returns:
//   - string: A formatted string such as "42s", "3m07s" or "1h02m03s".
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
