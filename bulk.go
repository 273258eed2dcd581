// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll

import "iter"

// AddBulk inserts elems in order and returns how many were committed.
//
// As many elements as fit are committed under each lock acquisition;
// other producers may interleave between batches. One deadline, computed
// at entry, bounds all waits of a timed mode.
//
// Returns (len(elems), Ok) when everything was inserted. A blocking call
// returns short only with Completed, when adding is completed by another
// goroutine mid-sequence. Immediate and timed calls return the partial
// count with TimedOut when room ran out.
func (c *Collection[T]) AddBulk(elems []T, m Mode) (int, Status) {
	deadline := m.deadline()
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(elems) == 0 {
		if c.completed {
			c.stats.addRejected.Add(1)
			return 0, Completed
		}
		return 0, Ok
	}

	added := 0
	for added < len(elems) {
		if !c.await(waitRoom, 0, m, deadline) {
			c.stats.addTimeouts.Add(1)
			return added, TimedOut
		}
		if c.completed {
			c.stats.addRejected.Add(1)
			return added, Completed
		}
		n := min(int(c.capacity-(c.arrivals-c.base)), len(elems)-added)
		for _, elem := range elems[added : added+n] {
			c.store(elem)
		}
		c.published(n)
		added += n
	}
	return added, Ok
}

// AddSeq inserts the elements yielded by seq, one at a time, and returns
// how many were committed. Statuses follow AddBulk, including (0, Completed)
// for an empty seq once adding is completed. The element that could not be
// inserted, if any, has already been drawn from seq.
func (c *Collection[T]) AddSeq(seq iter.Seq[T], m Mode) (int, Status) {
	deadline := m.deadline()
	added := 0
	for elem := range seq {
		if st := c.reserve(m, deadline); st != Ok {
			return added, st
		}
		c.commit(elem)
		c.mu.Unlock()
		added++
	}
	if added == 0 {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.completed {
			c.stats.addRejected.Add(1)
			return 0, Completed
		}
	}
	return added, Ok
}

// TakeBulk removes up to len(dst) elements in FIFO order into dst and
// returns how many were taken.
//
// It waits per m for at least one element, then takes whatever is
// resident under a single lock acquisition. Returns (0, Ok) for an empty
// dst, (0, Completed) when adding is completed and nothing is left.
func (c *Collection[T]) TakeBulk(dst []T, m Mode) (int, Status) {
	if len(dst) == 0 {
		return 0, Ok
	}
	deadline := m.deadline()
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.await(waitItem, 0, m, deadline) {
		c.stats.takeTimeouts.Add(1)
		return 0, TimedOut
	}
	n := min(int(c.arrivals-c.base), len(dst))
	if n == 0 {
		c.stats.takeCompleted.Add(1)
		return 0, Completed
	}
	for i := range n {
		dst[i] = c.pop()
	}
	c.taken(n)
	return n, Ok
}
