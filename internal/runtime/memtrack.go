package runtime

import "sync/atomic"

// MemoryTracker is a process-wide counter registry of live environments and
// live functions. It exists purely so tests can assert deterministic
// teardown — the evaluator never consults it for behavior.
type MemoryTracker struct {
	envCount int64
	fnCount  int64
}

// DefaultTracker is the tracker new environments/functions register with
// unless a caller builds its own for isolation between concurrent tests.
var DefaultTracker = NewMemoryTracker()

// NewMemoryTracker creates a fresh, zeroed tracker.
func NewMemoryTracker() *MemoryTracker { return &MemoryTracker{} }

func (t *MemoryTracker) envCreated()   { atomic.AddInt64(&t.envCount, 1) }
func (t *MemoryTracker) envDestroyed() { atomic.AddInt64(&t.envCount, -1) }
func (t *MemoryTracker) fnCreated()    { atomic.AddInt64(&t.fnCount, 1) }
func (t *MemoryTracker) fnDestroyed()  { atomic.AddInt64(&t.fnCount, -1) }

// Snapshot is the (env_count, fn_count) pair tests assert against.
type Snapshot struct {
	EnvCount int
	FnCount  int
}

// Snapshot returns the current live counts.
func (t *MemoryTracker) Snapshot() Snapshot {
	return Snapshot{
		EnvCount: int(atomic.LoadInt64(&t.envCount)),
		FnCount:  int(atomic.LoadInt64(&t.fnCount)),
	}
}

// Reset zeroes both counters; used between independent test runs that
// share DefaultTracker.
func (t *MemoryTracker) Reset() {
	atomic.StoreInt64(&t.envCount, 0)
	atomic.StoreInt64(&t.fnCount, 0)
}
