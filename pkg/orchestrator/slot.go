package orchestrator

import (
	"sync"
	"time"

	"github.com/limaJavier/vertexcover/pkg/graph"
)

// exactSlot hands the exact worker's outcome over to the orchestrator. Delivery and collection are linearized
// by the mutex: either the orchestrator collects a delivered result, or it abandons the slot first and the
// worker, finding it abandoned, drops its result on its own
type exactSlot struct {
	mutex     sync.Mutex
	done      chan struct{}
	delivered bool
	abandoned bool

	cover   graph.Cover
	err     error
	elapsed time.Duration
}

func newExactSlot() *exactSlot {
	return &exactSlot{done: make(chan struct{})}
}

// deliver stores the worker's outcome. It returns false if the orchestrator has already moved on
func (slot *exactSlot) deliver(cover graph.Cover, err error, elapsed time.Duration) bool {
	slot.mutex.Lock()
	defer slot.mutex.Unlock()

	if slot.abandoned {
		return false
	}
	slot.cover, slot.err, slot.elapsed = cover, err, elapsed
	slot.delivered = true
	close(slot.done)
	return true
}

// collect returns the delivered outcome, or abandons the slot if nothing was delivered yet
func (slot *exactSlot) collect() (cover graph.Cover, err error, elapsed time.Duration, ok bool) {
	slot.mutex.Lock()
	defer slot.mutex.Unlock()

	if !slot.delivered {
		slot.abandoned = true
		return nil, nil, 0, false
	}
	return slot.cover, slot.err, slot.elapsed, true
}
