// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll

import (
	"container/list"
	"time"

	"code.hybscloud.com/spin"
)

// waitKind names the predicate a suspended goroutine waits for.
type waitKind uint8

const (
	waitRoom  waitKind = iota // live < capacity (inserters)
	waitItem                  // live > 0 (removers)
	waitIndex                 // arrivals > index (peekers)
)

// waiter is a parked goroutine. ready is closed exactly once, by the
// goroutine that removes the waiter from its list while holding the lock.
type waiter struct {
	ready chan struct{}
	index uint64
}

// waitList is a FIFO of parked goroutines. Guarded by Collection.mu.
type waitList struct {
	l list.List
}

func (w *waitList) push(index uint64) (*list.Element, *waiter) {
	wt := &waiter{ready: make(chan struct{}), index: index}
	return w.l.PushBack(wt), wt
}

// drop removes e if it is still queued. No-op after a signal.
func (w *waitList) drop(e *list.Element) {
	w.l.Remove(e)
}

// signal wakes up to n waiters in arrival order.
func (w *waitList) signal(n int) {
	for ; n > 0; n-- {
		e := w.l.Front()
		if e == nil {
			return
		}
		close(w.l.Remove(e).(*waiter).ready)
	}
}

// signalBelow wakes every waiter whose index is below arrivals.
func (w *waitList) signalBelow(arrivals uint64) {
	for e := w.l.Front(); e != nil; {
		next := e.Next()
		if wt := e.Value.(*waiter); wt.index < arrivals {
			w.l.Remove(e)
			close(wt.ready)
		}
		e = next
	}
}

// broadcast wakes every waiter.
func (w *waitList) broadcast() {
	w.signal(w.l.Len())
}

// satisfied evaluates the wait predicate. Caller holds c.mu.
// Completion satisfies every predicate: the caller re-examines the state
// to tell progress from termination.
func (c *Collection[T]) satisfied(kind waitKind, index uint64) bool {
	if c.completed {
		return true
	}
	switch kind {
	case waitRoom:
		return c.arrivals-c.base < c.capacity
	case waitItem:
		return c.arrivals > c.base
	default:
		return c.arrivals > index
	}
}

// observed is the lock-free approximation of satisfied used while
// spinning. A true result is only a hint to re-check under the lock.
func (c *Collection[T]) observed(kind waitKind, index uint64) bool {
	if c.done.LoadAcquire() {
		return true
	}
	switch kind {
	case waitRoom:
		return c.live.LoadAcquire() < c.capacity
	case waitItem:
		return c.live.LoadAcquire() > 0
	default:
		return c.history.LoadAcquire() > index
	}
}

func (c *Collection[T]) waiters(kind waitKind) *waitList {
	switch kind {
	case waitRoom:
		return &c.notFull
	case waitItem:
		return &c.notEmpty
	default:
		return &c.peekers
	}
}

// await blocks until the predicate for kind holds, or the mode's budget
// runs out. c.mu is held on entry and on return; it is released while
// spinning or parked. Reports whether the predicate holds.
//
// The predicate is always re-evaluated under the lock after a wakeup,
// including one caused by the deadline, so a signal that races with a
// timeout is consumed rather than lost.
func (c *Collection[T]) await(kind waitKind, index uint64, m Mode, deadline time.Time) bool {
	spinning := c.spinRounds > 0
	for !c.satisfied(kind, index) {
		if m == Immediate {
			return false
		}
		var remaining time.Duration
		if m > 0 {
			remaining = time.Until(deadline)
			if remaining <= 0 {
				return false
			}
		}

		if spinning {
			spinning = false
			c.mu.Unlock()
			sw := spin.Wait{}
			for i := 0; i < c.spinRounds && !c.observed(kind, index); i++ {
				if m > 0 && i&63 == 63 && !time.Now().Before(deadline) {
					break
				}
				sw.Once()
			}
			c.mu.Lock()
			continue
		}

		c.stats.parks.Add(1)
		q := c.waiters(kind)
		e, wt := q.push(index)
		c.mu.Unlock()
		if m < 0 {
			<-wt.ready
		} else {
			timer := time.NewTimer(remaining)
			select {
			case <-wt.ready:
			case <-timer.C:
			}
			timer.Stop()
		}
		c.mu.Lock()
		q.drop(e)
	}
	return true
}
