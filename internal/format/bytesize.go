// Package format provides human-readable rendering helpers for byte counts,
// fractions, and durations used across the CLI, TUI, and HTTP surfaces.
package format

import "fmt"

// ByteSize is a count of bytes with a human-readable rendering. It behaves
// like time.Duration: construct it by converting a raw integer count, pass it
// by value, and call String for display.
type ByteSize uint64

// Binary unit boundaries.
const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
	tib = 1 << 40
	pib = 1 << 50
)

// Bytes returns the raw byte count.
func (b ByteSize) Bytes() uint64 { return uint64(b) }

// String renders the byte count in binary units (B, KiB, MiB, GiB, TiB, PiB)
// with one decimal place for scaled units.
//
// Returns:
//   - string: A formatted string such as "512 B" or "50.0 MiB".
func (b ByteSize) String() string {
	v := uint64(b)
	switch {
	case v >= pib:
		return fmt.Sprintf("%.1f PiB", float64(v)/float64(pib))
	case v >= tib:
		return fmt.Sprintf("%.1f TiB", float64(v)/float64(tib))
	case v >= gib:
		return fmt.Sprintf("%.1f GiB", float64(v)/float64(gib))
	case v >= mib:
		return fmt.Sprintf("%.1f MiB", float64(v)/float64(mib))
	case v >= kib:
		return fmt.Sprintf("%.1f KiB", float64(v)/float64(kib))
	default:
		return fmt.Sprintf("%d B", v)
	}
}

// FormatPercent renders a fraction in [0, 1] as a percentage with one decimal
// place. Values outside the range are rendered as-is; callers own validation.
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}
