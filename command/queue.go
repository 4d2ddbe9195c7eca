package command

import (
	"fmt"
	"sync"

	"github.com/yllada/expense-tray/common"
)

// Queue is a bounded FIFO of commands. Push may be called from any goroutine
// and never waits for the consumer; when the queue is full the oldest command
// is discarded. Drain is meant for the GUI thread's poll tick.
type Queue struct {
	mu     sync.Mutex
	buf    []Command
	head   int
	size   int
	closed bool

	dropped         uint64
	droppedReported uint64
}

// NewQueue creates a queue holding at most capacity commands.
// A capacity below one uses common.DefaultQueueCapacity.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = common.DefaultQueueCapacity
	}
	return &Queue{buf: make([]Command, capacity)}
}

// Push appends cmd. If the queue was full the oldest entry is dropped and an
// error wrapping common.ErrQueueFull is returned; cmd itself is still queued.
// Pushing to a closed queue returns common.ErrQueueClosed.
func (q *Queue) Push(cmd Command) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return common.ErrQueueClosed
	}

	var err error
	if q.size == len(q.buf) {
		evicted := q.buf[q.head]
		q.head = (q.head + 1) % len(q.buf)
		q.size--
		q.dropped++
		err = fmt.Errorf("dropped %s: %w", evicted, common.ErrQueueFull)
	}

	q.buf[(q.head+q.size)%len(q.buf)] = cmd
	q.size++
	return err
}

// Drain removes and returns every queued command in FIFO order.
// Drops that happened since the previous drain are logged here, on the
// consumer side, so the producer never pays for logging.
func (q *Queue) Drain() []Command {
	q.mu.Lock()
	if q.size == 0 && q.dropped == q.droppedReported {
		q.mu.Unlock()
		return nil
	}

	out := make([]Command, q.size)
	for i := range out {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
		q.buf[(q.head+i)%len(q.buf)] = Command{}
	}
	q.head = 0
	q.size = 0

	newDrops := q.dropped - q.droppedReported
	total := q.dropped
	q.droppedReported = q.dropped
	q.mu.Unlock()

	if newDrops > 0 {
		common.LogWarn("Command queue full: dropped %d command(s) (%d total)", newDrops, total)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Dropped returns the number of commands discarded since creation.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Close discards anything still queued and rejects further pushes.
// Calling Close more than once is harmless.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	pending := q.size
	q.size = 0
	q.head = 0
	q.mu.Unlock()

	common.LogInfo("Command queue dropped (%d pending discarded)", pending)
}
