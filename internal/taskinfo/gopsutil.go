package taskinfo

import (
	"context"
	"os"
	"sync"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	apperrors "github.com/adya/memwatch/internal/errors"
)

// SystemQuerier answers memory queries for the current process using the
// host OS accounting (procfs, Mach, or the Windows API, via gopsutil)
// plus getrusage for the resident high-water mark.
type SystemQuerier struct {
	mu   sync.Mutex // gopsutil process handles are not safe for concurrent use
	proc *process.Process
}

// Interface compliance check.
var _ Querier = (*SystemQuerier)(nil)

// NewSystemQuerier creates a querier bound to the current process.
//
// Returns:
//   - *SystemQuerier: The querier.
//   - error: An error if the process handle could not be opened.
func NewSystemQuerier() (*SystemQuerier, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, apperrors.WrapError(err, "opening handle for pid %d", os.Getpid())
	}
	return &SystemQuerier{proc: proc}, nil
}

// TaskBasic reports the resident, peak resident and virtual sizes of the
// current process. The peak is the largest of the getrusage high-water
// mark and the kernel-reported values, since not every platform fills
// every source.
func (q *SystemQuerier) TaskBasic(ctx context.Context) (BasicRecord, error) {
	q.mu.Lock()
	info, err := q.proc.MemoryInfoWithContext(ctx)
	q.mu.Unlock()
	if err != nil {
		return BasicRecord{}, apperrors.NewQueryError(KindTaskBasic, err)
	}
	return BasicRecord{
		Resident:     info.RSS,
		PeakResident: max(rusagePeak(), info.HWM, info.RSS),
		Virtual:      info.VMS,
	}, nil
}

// TaskVM reports the footprint components of the current process.
// Internal maps to the resident set and Compressed to memory the OS
// keeps outside RAM for the process (swap, or the macOS compressor).
func (q *SystemQuerier) TaskVM(ctx context.Context) (VMRecord, error) {
	q.mu.Lock()
	info, err := q.proc.MemoryInfoWithContext(ctx)
	q.mu.Unlock()
	if err != nil {
		return VMRecord{}, apperrors.NewQueryError(KindTaskVM, err)
	}
	return VMRecord{
		Internal:   info.RSS,
		Compressed: info.Swap,
	}, nil
}

// PhysicalMemory reports the host's total installed RAM in bytes.
func (q *SystemQuerier) PhysicalMemory(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, apperrors.NewQueryError(KindPhysicalMemory, err)
	}
	return vm.Total, nil
}
