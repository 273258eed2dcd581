// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll

import "iter"

// Queue is the combined interface of a bounded blocking collection.
//
// *Collection[T] implements Queue[T]. Pipeline stages should accept the
// narrowest role they need: a stage that only feeds the next one takes a
// Producer[T], a stage that only drains takes a Consumer[T].
//
// Example:
//
//	func stage(in bcoll.Consumer[int], out bcoll.Producer[int]) {
//	    defer out.CompleteAdding()
//	    for v := range in.Consume() {
//	        if out.Add(v*2, bcoll.Blocking) != bcoll.Ok {
//	            return
//	        }
//	    }
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Peeker[T]
	Size() int
	IsEmpty() bool
	Cap() int
}

// Producer is the interface for inserting elements.
type Producer[T any] interface {
	// Add inserts elem (ownership transfer).
	// Returns Ok, TimedOut (no room within the wait budget) or Completed.
	Add(elem T, m Mode) Status

	// AddCopy inserts a copy of *elem; the caller keeps elem.
	AddCopy(elem *T, m Mode) Status

	// Emplace inserts the value built by ctor once room is reserved.
	// ctor is not called unless the status is Ok.
	Emplace(ctor func() T, m Mode) Status

	// AddBulk inserts elems in order, reporting how many were committed.
	AddBulk(elems []T, m Mode) (int, Status)

	// AddSeq inserts the elements of seq in order, reporting how many
	// were committed.
	AddSeq(seq iter.Seq[T], m Mode) (int, Status)

	// CompleteAdding declares that no more elements will be inserted.
	CompleteAdding()

	// IsAddingCompleted reports whether CompleteAdding has been called.
	IsAddingCompleted() bool
}

// Consumer is the interface for removing elements in FIFO order.
type Consumer[T any] interface {
	// Take removes the oldest element.
	// Returns Ok, TimedOut (empty within the wait budget) or Completed
	// (adding completed and nothing left).
	Take(m Mode) (T, Status)

	// TakeBulk removes up to len(dst) elements into dst.
	TakeBulk(dst []T, m Mode) (int, Status)

	// Consume yields elements until the collection is completed.
	Consume() iter.Seq[T]

	// IsCompleted reports whether adding is completed and nothing is left.
	IsCompleted() bool
}

// Peeker is the interface for reading elements by absolute arrival index.
type Peeker[T any] interface {
	// At returns a copy of the element with the given arrival index
	// without removing it.
	At(index uint64, m Mode) (T, Status)

	// BaseIndex returns the arrival index of the oldest resident element.
	BaseIndex() uint64

	// HistorySize returns the number of elements ever inserted.
	HistorySize() uint64
}

// ProducerGroup is implemented by collections that complete adding by
// themselves once every attached producer has detached.
//
// Example:
//
//	for range workers {
//	    c.AttachProducer()
//	    go func() {
//	        defer c.DetachProducer()
//	        produce(c)
//	    }()
//	}
type ProducerGroup interface {
	AttachProducer()
	DetachProducer()
}
