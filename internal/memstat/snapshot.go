// Package memstat assembles point-in-time memory snapshots of the
// current process from the OS accounting records.
package memstat

import (
	"encoding/json"
	"time"

	"github.com/adya/memwatch/internal/format"
)

// Snapshot is an immutable picture of process memory at one instant.
// All sizes are in bytes.
type Snapshot struct {
	// Resident is the current resident set size.
	Resident format.ByteSize
	// PeakResident is the lifetime high-water mark of the resident set.
	PeakResident format.ByteSize
	// Virtual is the virtual address space size.
	Virtual format.ByteSize
	// Used is the process footprint: internal plus compressed memory.
	Used format.ByteSize
	// Total is the host's physical memory.
	Total format.ByteSize
	// Taken records when the snapshot was assembled.
	Taken time.Time
}

// UsedFraction returns Used as a fraction of Total, in [0, 1] for any
// snapshot whose footprint fits in physical memory. It returns 0 when
// Total is unknown rather than dividing by zero.
func (s Snapshot) UsedFraction() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Used) / float64(s.Total)
}

// MarshalJSON renders the snapshot for wire consumers: raw byte counts,
// the derived fraction, and the capture time in RFC 3339 form.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Resident     uint64    `json:"resident_bytes"`
		PeakResident uint64    `json:"peak_resident_bytes"`
		Virtual      uint64    `json:"virtual_bytes"`
		Used         uint64    `json:"used_bytes"`
		Total        uint64    `json:"total_bytes"`
		UsedFraction float64   `json:"used_fraction"`
		Taken        time.Time `json:"taken"`
	}{
		Resident:     s.Resident.Bytes(),
		PeakResident: s.PeakResident.Bytes(),
		Virtual:      s.Virtual.Bytes(),
		Used:         s.Used.Bytes(),
		Total:        s.Total.Bytes(),
		UsedFraction: s.UsedFraction(),
		Taken:        s.Taken,
	})
}
