//go:generate mockgen -source=taskinfo.go -destination=mocks/mock_querier.go -package=mocks

// Package taskinfo queries the operating system for memory accounting
// records describing the current process and the host it runs on.
package taskinfo

import "context"

// Query kinds, used to label failures so callers can tell which of the
// underlying OS requests went wrong.
const (
	// KindTaskBasic identifies the query for the basic task record
	// (resident, peak resident and virtual sizes).
	KindTaskBasic = "task_basic_info"
	// KindTaskVM identifies the query for the VM task record
	// (internal and compressed sizes).
	KindTaskVM = "task_vm_info"
	// KindPhysicalMemory identifies the query for the host's total
	// physical memory.
	KindPhysicalMemory = "physical_memory"
)

// BasicRecord holds the basic memory accounting of the current process.
// All sizes are in bytes.
type BasicRecord struct {
	// Resident is the current resident set size.
	Resident uint64
	// PeakResident is the high-water mark of the resident set size
	// over the lifetime of the process.
	PeakResident uint64
	// Virtual is the virtual address space size.
	Virtual uint64
}

// VMRecord holds the footprint-oriented memory accounting of the current
// process. All sizes are in bytes.
type VMRecord struct {
	// Internal is the memory privately held in RAM by the process.
	Internal uint64
	// Compressed is the memory the OS has moved out of RAM on the
	// process's behalf (compressor or swap, depending on platform).
	Compressed uint64
}

// Querier is the interface to the OS memory accounting facilities.
// Each method issues an independent query: one failing says nothing
// about the others.
//
// Implementations must be safe for concurrent use.
type Querier interface {
	// TaskBasic returns the basic task record for the current process.
	//
	// Parameters:
	//   - ctx: Context for cancellation.
	//
	// Returns:
	//   - BasicRecord: The resident, peak resident and virtual sizes.
	//   - error: An apperrors.QueryError if the OS query failed.
	TaskBasic(ctx context.Context) (BasicRecord, error)

	// TaskVM returns the VM task record for the current process.
	//
	// Parameters:
	//   - ctx: Context for cancellation.
	//
	// Returns:
	//   - VMRecord: The internal and compressed sizes.
	//   - error: An apperrors.QueryError if the OS query failed.
	TaskVM(ctx context.Context) (VMRecord, error)

	// PhysicalMemory returns the host's total physical memory in bytes.
	//
	// Parameters:
	//   - ctx: Context for cancellation.
	//
	// Returns:
	//   - uint64: Total installed RAM in bytes.
	//   - error: An apperrors.QueryError if the OS query failed.
	PhysicalMemory(ctx context.Context) (uint64, error)
}
