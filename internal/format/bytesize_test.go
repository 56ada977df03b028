package format

import (
	"strings"
	"testing"
)

func TestByteSize_String(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    ByteSize
		expected string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"kilobytes", 1024 * 5, "5.0 KiB"},
		{"megabytes", 1024 * 1024 * 50, "50.0 MiB"},
		{"gigabytes", 1024 * 1024 * 1024 * 2, "2.0 GiB"},
		{"terabytes", 1 << 41, "2.0 TiB"},
		{"petabytes", 1 << 51, "2.0 PiB"},
		{"fractional megabytes", 1536 * 1024, "1.5 MiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.input.String(); got != tt.expected {
				t.Errorf("ByteSize(%d).String() = %q, want %q", uint64(tt.input), got, tt.expected)
			}
		})
	}
}

func TestByteSize_String_Boundaries(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    ByteSize
		contains string
	}{
		{"exact_1KiB", 1 << 10, "1.0 KiB"},
		{"exact_1MiB", 1 << 20, "1.0 MiB"},
		{"exact_1GiB", 1 << 30, "1.0 GiB"},
		{"just_below_KiB", 1023, "1023 B"},
		{"just_below_MiB", 1<<20 - 1, "KiB"},
		{"just_below_GiB", 1<<30 - 1, "MiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.input.String()
			if !strings.Contains(got, tt.contains) {
				t.Errorf("ByteSize(%d).String() = %q, want to contain %q", uint64(tt.input), got, tt.contains)
			}
		})
	}
}

func TestByteSize_Bytes(t *testing.T) {
	t.Parallel()
	const raw = uint64(123456789)
	if got := ByteSize(raw).Bytes(); got != raw {
		t.Errorf("Bytes() = %d, want %d", got, raw)
	}
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		fraction float64
		expected string
	}{
		{"zero", 0, "0.0%"},
		{"five percent", 0.05, "5.0%"},
		{"half", 0.5, "50.0%"},
		{"full", 1.0, "100.0%"},
		{"sub-percent", 0.004, "0.4%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatPercent(tt.fraction); got != tt.expected {
				t.Errorf("FormatPercent(%f) = %q, want %q", tt.fraction, got, tt.expected)
			}
		})
	}
}
