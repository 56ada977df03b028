package memstat

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adya/memwatch/internal/format"
	"github.com/adya/memwatch/internal/taskinfo"
)

// tracerName identifies this package's spans.
const tracerName = "github.com/adya/memwatch/internal/memstat"

// Builder assembles Snapshots from a Querier. It caches the host's
// total physical memory after the first successful read, since the
// installed RAM does not change while the process runs.
//
// Builder is safe for concurrent use.
type Builder struct {
	querier taskinfo.Querier
	tracer  trace.Tracer

	mu    sync.Mutex
	total format.ByteSize
}

// NewBuilder creates a Builder on top of the given querier.
//
// Parameters:
//   - querier: The source of OS memory accounting records.
//
// Returns:
//   - *Builder: The builder.
func NewBuilder(querier taskinfo.Querier) *Builder {
	return &Builder{
		querier: querier,
		tracer:  otel.Tracer(tracerName),
	}
}

// Build queries the OS and assembles a snapshot. The basic task record
// is read first, then the VM record, then the cached host total. If any
// query fails, Build returns the error and a zero snapshot; it never
// returns partial data.
//
// Parameters:
//   - ctx: Context for cancellation.
//
// Returns:
//   - Snapshot: The assembled snapshot.
//   - error: The first query error encountered.
func (b *Builder) Build(ctx context.Context) (Snapshot, error) {
	ctx, span := b.tracer.Start(ctx, "memstat.Build")
	defer span.End()

	basic, err := b.querier.TaskBasic(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "basic task query failed")
		return Snapshot{}, err
	}

	vm, err := b.querier.TaskVM(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "vm task query failed")
		return Snapshot{}, err
	}

	total, err := b.totalMemory(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "physical memory query failed")
		return Snapshot{}, err
	}

	snap := Snapshot{
		Resident:     format.ByteSize(basic.Resident),
		PeakResident: format.ByteSize(basic.PeakResident),
		Virtual:      format.ByteSize(basic.Virtual),
		Used:         format.ByteSize(vm.Internal + vm.Compressed),
		Total:        total,
		Taken:        time.Now(),
	}
	span.SetAttributes(
		attribute.Int64("mem.resident_bytes", int64(snap.Resident)),
		attribute.Int64("mem.used_bytes", int64(snap.Used)),
		attribute.Float64("mem.used_fraction", snap.UsedFraction()),
	)
	return snap, nil
}

// totalMemory returns the host total, querying the OS only until the
// first success. Failures are not cached, so a later build retries.
func (b *Builder) totalMemory(ctx context.Context) (format.ByteSize, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.total != 0 {
		return b.total, nil
	}
	total, err := b.querier.PhysicalMemory(ctx)
	if err != nil {
		return 0, err
	}
	b.total = format.ByteSize(total)
	return b.total, nil
}
