// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bcoll provides a bounded blocking collection with history
// lookups, for hand-off between pipeline stages.
//
// A [Collection] holds at most Cap elements. Any number of goroutines
// insert and remove concurrently; removal is FIFO. Every inserted element
// gets an absolute arrival index (0, 1, 2, ...) that is never reused, and
// any goroutine may read an element by that index without removing it.
// A producer-side [Collection.CompleteAdding] call shuts the collection
// down cooperatively: insertion stops, consumers drain what is left.
//
// # Quick Start
//
//	c := bcoll.NewCollection[Event](1024)
//
//	// Builder API for extra configuration
//	c := bcoll.Build[Event](bcoll.New(1024).Spin(64).Producers(4))
//
// # Basic Usage
//
// Every operation takes a [Mode] and reports a [Status]:
//
//	c := bcoll.NewCollection[int](8)
//
//	st := c.Add(42, bcoll.Blocking)          // waits for room
//	st = c.Add(43, bcoll.Immediate)          // TimedOut if full
//	st = c.Add(44, bcoll.Within(time.Second))
//
//	v, st := c.Take(bcoll.Blocking)          // waits for an element
//	v, st = c.At(1, bcoll.Immediate)         // peek at arrival index 1
//
// Status values:
//
//	Ok               the operation took effect
//	TimedOut         the wait budget ran out (transient, retry later)
//	Completed        adding is completed (terminal)
//	AtExceedCapacity index outside the window (caller logic error)
//
// # Common Patterns
//
// Pipeline Stage:
//
//	in := bcoll.NewCollection[Data](1024)
//
//	go func() { // Producer
//	    defer in.CompleteAdding()
//	    for data := range input {
//	        if in.Add(data, bcoll.Blocking) != bcoll.Ok {
//	            return
//	        }
//	    }
//	}()
//
//	go func() { // Consumer
//	    for data := range in.Consume() {
//	        process(data)
//	    }
//	}()
//
// Consumer loop without the iterator:
//
//	for !c.IsCompleted() {
//	    v, st := c.Take(bcoll.Blocking)
//	    if st == bcoll.Ok {
//	        process(v)
//	    }
//	    // Completed may be returned if another goroutine completes
//	    // adding between IsCompleted and Take; the loop exits next round.
//	}
//
// Producer group (completes by itself when the last producer leaves):
//
//	c := bcoll.NewCollection[Job](256)
//	for range workers {
//	    c.AttachProducer()
//	    go func() {
//	        defer c.DetachProducer()
//	        submitJobs(c)
//	    }()
//	}
//
// Backpressure with polling:
//
//	backoff := iox.Backoff{}
//	for c.Add(item, bcoll.Immediate) == bcoll.TimedOut {
//	    backoff.Wait()
//	}
//
// # Insertion Variants
//
//	Add(v, m)        value handed over to the collection
//	AddCopy(&v, m)   the collection copies *v; the caller keeps v
//	Emplace(f, m)    f() builds the value once room is reserved
//	AddBulk(vs, m)   ordered batch, returns the committed count
//	AddSeq(seq, m)   ordered iter.Seq, returns the committed count
//
// Blocking bulk insertion returns short only with Completed. Immediate
// and timed bulk insertion return the partial count with TimedOut.
//
// # History and Indexed Access
//
// The collection tracks:
//
//	BaseIndex()   arrival index of the oldest resident element
//	HistorySize() elements ever inserted (never decreases)
//	Size()        HistorySize() - BaseIndex()
//
// At(i, m) can be satisfied only inside the sliding window
// [BaseIndex, BaseIndex+Cap). Outside it, At returns AtExceedCapacity at
// once, whatever the mode. Inside it, At returns the resident element, or
// waits per mode for index i to be inserted. A value returned by At is a
// copy; a later Take of the same element is unaffected.
//
// # Completion
//
//	CompleteAdding()    stop insertion, wake every waiter (idempotent)
//	IsAddingCompleted() CompleteAdding has been called
//	IsCompleted()       IsAddingCompleted() and Size() == 0
//
// After completion every insertion returns Completed. Take keeps
// returning resident elements and then Completed. At for an index that
// will never be populated returns Completed.
//
// # Thread Safety
//
// All methods are safe for concurrent use. State transitions run under a
// single mutex held only for bookkeeping and the value transfer; waiting
// goroutines release it while parked. Size, IsEmpty, HistorySize,
// BaseIndex and the completion predicates read atomically published
// counters and never take the lock.
//
// A collection needs no closing. Elements still resident when the
// collection becomes unreachable are released with it.
//
// # Observability
//
// [Collection.Stats] returns always-on operation counters. [NewCollector]
// exposes them, with size and capacity gauges, as a Prometheus collector.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic counters with explicit
// memory ordering, [code.hybscloud.com/spin] for the optional spin phase
// before parking, and [github.com/prometheus/client_golang] for metrics
// export.
package bcoll
