// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll

import (
	"sync"
	"time"

	"code.hybscloud.com/atomix"
)

// Collection is a bounded blocking FIFO collection with history lookups.
//
// Every element receives an absolute arrival index on insertion, starting
// at 0 and never reused. Take removes elements in index order; At reads
// the element at a given index without removing it, as long as the index
// lies in the sliding window [BaseIndex, BaseIndex+Cap).
//
// All state transitions run under one mutex. Goroutines that must wait
// (for room, an element, or a specific index) park on per-kind waiter
// lists and release the mutex while parked.
//
// Memory: capacity slots of T plus one small record per parked goroutine.
type Collection[T any] struct {
	mu        sync.Mutex
	buffer    []T
	capacity  uint64
	base      uint64 // Index of the oldest resident element (total removed)
	arrivals  uint64 // Total elements ever inserted
	completed bool
	producers int

	notFull  waitList // Inserters waiting for room
	notEmpty waitList // Removers waiting for an element
	peekers  waitList // At callers waiting for their index

	spinRounds int

	// Published copies of the guarded counters for lock-free readers.
	// Written only while holding mu.
	live    atomix.Uint64
	history atomix.Uint64
	removed atomix.Uint64
	done    atomix.Bool

	stats counters
}

// NewCollection creates a collection holding at most capacity elements.
//
// Panics if capacity < 1.
func NewCollection[T any](capacity int) *Collection[T] {
	if capacity < 1 {
		panic("bcoll: capacity must be >= 1")
	}
	return &Collection[T]{
		buffer:   make([]T, capacity),
		capacity: uint64(capacity),
	}
}

// Add inserts elem, transferring it to the collection.
//
// Returns Completed if adding has been completed (whatever the mode),
// TimedOut if the collection stayed full for the whole wait budget,
// Ok otherwise.
func (c *Collection[T]) Add(elem T, m Mode) Status {
	if st := c.reserve(m, m.deadline()); st != Ok {
		return st
	}
	c.commit(elem)
	c.mu.Unlock()
	return Ok
}

// AddCopy inserts a copy of *elem. The caller keeps elem; *elem is read
// once, after room has been reserved.
func (c *Collection[T]) AddCopy(elem *T, m Mode) Status {
	if st := c.reserve(m, m.deadline()); st != Ok {
		return st
	}
	c.commit(*elem)
	c.mu.Unlock()
	return Ok
}

// Emplace inserts the value returned by ctor.
//
// ctor is called exactly once if and only if the status is Ok, after room
// has been reserved and while the collection lock is held. ctor must not
// call back into the collection.
func (c *Collection[T]) Emplace(ctor func() T, m Mode) Status {
	if st := c.reserve(m, m.deadline()); st != Ok {
		return st
	}
	defer c.mu.Unlock()
	c.commit(ctor())
	return Ok
}

// reserve waits for room per m. On Ok, c.mu is held and the caller must
// commit exactly one element and unlock. On any other status the lock
// has been released.
func (c *Collection[T]) reserve(m Mode, deadline time.Time) Status {
	c.mu.Lock()
	if !c.await(waitRoom, 0, m, deadline) {
		c.mu.Unlock()
		c.stats.addTimeouts.Add(1)
		return TimedOut
	}
	if c.completed {
		c.mu.Unlock()
		c.stats.addRejected.Add(1)
		return Completed
	}
	return Ok
}

// store places elem at the next arrival index. Caller holds c.mu and has
// checked there is room.
func (c *Collection[T]) store(elem T) {
	c.buffer[c.arrivals%c.capacity] = elem
	c.arrivals++
}

// published announces n stores: it refreshes the mirrors and wakes the
// goroutines that can now make progress. Caller holds c.mu.
func (c *Collection[T]) published(n int) {
	c.history.StoreRelease(c.arrivals)
	c.live.StoreRelease(c.arrivals - c.base)
	c.stats.adds.Add(int64(n))
	c.notEmpty.signal(n)
	if c.peekers.l.Len() > 0 {
		c.peekers.signalBelow(c.arrivals)
	}
}

func (c *Collection[T]) commit(elem T) {
	c.store(elem)
	c.published(1)
}

// Take removes and returns the oldest resident element.
//
// Returns Completed once adding has been completed and nothing is left,
// TimedOut if the collection stayed empty for the whole wait budget,
// Ok otherwise.
func (c *Collection[T]) Take(m Mode) (T, Status) {
	var zero T
	deadline := m.deadline()
	c.mu.Lock()
	if !c.await(waitItem, 0, m, deadline) {
		c.mu.Unlock()
		c.stats.takeTimeouts.Add(1)
		return zero, TimedOut
	}
	if c.arrivals == c.base {
		c.mu.Unlock()
		c.stats.takeCompleted.Add(1)
		return zero, Completed
	}
	elem := c.pop()
	c.taken(1)
	c.mu.Unlock()
	return elem, Ok
}

// pop removes the oldest element. Caller holds c.mu and has checked the
// collection is not empty.
func (c *Collection[T]) pop() T {
	var zero T
	slot := c.base % c.capacity
	elem := c.buffer[slot]
	c.buffer[slot] = zero
	c.base++
	return elem
}

// taken announces n removals. Caller holds c.mu.
func (c *Collection[T]) taken(n int) {
	c.removed.StoreRelease(c.base)
	c.live.StoreRelease(c.arrivals - c.base)
	c.stats.takes.Add(int64(n))
	c.notFull.signal(n)
}

// At returns the element with absolute arrival index, without removing it.
//
// Returns AtExceedCapacity at once if index is outside
// [BaseIndex, BaseIndex+Cap), or if the element was removed while the
// call waited. Returns Completed if adding completed before the index was
// populated, TimedOut if it was not populated within the wait budget.
func (c *Collection[T]) At(index uint64, m Mode) (T, Status) {
	var zero T
	deadline := m.deadline()
	c.mu.Lock()
	if index < c.base || index-c.base >= c.capacity {
		c.mu.Unlock()
		c.stats.peekExceeded.Add(1)
		return zero, AtExceedCapacity
	}
	if !c.await(waitIndex, index, m, deadline) {
		c.mu.Unlock()
		c.stats.peekTimeouts.Add(1)
		return zero, TimedOut
	}
	switch {
	case index < c.base:
		c.mu.Unlock()
		c.stats.peekExceeded.Add(1)
		return zero, AtExceedCapacity
	case index >= c.arrivals:
		c.mu.Unlock()
		c.stats.peekCompleted.Add(1)
		return zero, Completed
	}
	elem := c.buffer[index%c.capacity]
	c.mu.Unlock()
	c.stats.peeks.Add(1)
	return elem, Ok
}

// CompleteAdding marks the collection as not accepting any more elements
// and wakes every waiting goroutine. Idempotent.
//
// Blocked inserters return Completed. Blocked removers keep draining
// resident elements and return Completed once none are left. Peekers
// waiting for an index that was never populated return Completed.
func (c *Collection[T]) CompleteAdding() {
	c.mu.Lock()
	c.complete()
	c.mu.Unlock()
}

// complete is CompleteAdding with c.mu held.
func (c *Collection[T]) complete() {
	if c.completed {
		return
	}
	c.completed = true
	c.done.StoreRelease(true)
	c.notFull.broadcast()
	c.notEmpty.broadcast()
	c.peekers.broadcast()
}

// IsAddingCompleted reports whether CompleteAdding has been called.
func (c *Collection[T]) IsAddingCompleted() bool {
	return c.done.LoadAcquire()
}

// IsCompleted reports whether adding has been completed and every element
// has been taken. No more elements will ever be returned by Take.
func (c *Collection[T]) IsCompleted() bool {
	// done before live: no insertion publishes after done is set, so a
	// zero live observed afterwards is final.
	return c.done.LoadAcquire() && c.live.LoadAcquire() == 0
}

// Size returns the number of resident elements.
func (c *Collection[T]) Size() int {
	return int(c.live.LoadAcquire())
}

// IsEmpty reports whether no element is resident.
func (c *Collection[T]) IsEmpty() bool {
	return c.live.LoadAcquire() == 0
}

// Cap returns the bounded capacity.
func (c *Collection[T]) Cap() int {
	return int(c.capacity)
}

// HistorySize returns the number of elements ever inserted.
// It never decreases and is not affected by Take.
func (c *Collection[T]) HistorySize() uint64 {
	return c.history.LoadAcquire()
}

// BaseIndex returns the arrival index of the oldest resident element,
// which equals the number of elements taken so far.
func (c *Collection[T]) BaseIndex() uint64 {
	return c.removed.LoadAcquire()
}
