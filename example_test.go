// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll_test

import (
	"fmt"
	"slices"
	"time"

	"code.hybscloud.com/bcoll"
)

// ExampleNewCollection demonstrates FIFO insertion and removal.
func ExampleNewCollection() {
	c := bcoll.NewCollection[int](4)

	for i := 1; i <= 3; i++ {
		c.Add(i*10, bcoll.Blocking)
	}

	for range 3 {
		v, _ := c.Take(bcoll.Immediate)
		fmt.Println(v)
	}

	// Output:
	// 10
	// 20
	// 30
}

// ExampleBuild demonstrates the builder API.
func ExampleBuild() {
	plain := bcoll.Build[int](bcoll.New(100))
	spinning := bcoll.Build[string](bcoll.New(64).Spin(128))

	fmt.Println("plain capacity:", plain.Cap())
	fmt.Println("spinning capacity:", spinning.Cap())

	// Output:
	// plain capacity: 100
	// spinning capacity: 64
}

// ExampleMode demonstrates the three wait modes on a full collection.
func ExampleMode() {
	c := bcoll.NewCollection[string](1)
	c.Add("first", bcoll.Immediate)

	fmt.Println(c.Add("second", bcoll.Immediate))
	fmt.Println(c.Add("second", bcoll.Within(5*time.Millisecond)))

	c.Take(bcoll.Immediate)
	fmt.Println(c.Add("second", bcoll.Blocking))

	// Output:
	// TimedOut
	// TimedOut
	// Ok
}

// ExampleCollection_At demonstrates indexed peek over the sliding window.
func ExampleCollection_At() {
	c := bcoll.NewCollection[string](3)
	for _, s := range []string{"a", "b", "c"} {
		c.Add(s, bcoll.Blocking)
	}
	c.Take(bcoll.Immediate) // window is now [1, 4)

	for idx := range uint64(5) {
		v, st := c.At(idx, bcoll.Immediate)
		fmt.Printf("At(%d): %q %v\n", idx, v, st)
	}

	// Output:
	// At(0): "" AtExceedCapacity
	// At(1): "b" Ok
	// At(2): "c" Ok
	// At(3): "" TimedOut
	// At(4): "" AtExceedCapacity
}

// ExampleCollection_CompleteAdding demonstrates the completion protocol:
// inserts are refused while resident elements can still be taken.
func ExampleCollection_CompleteAdding() {
	c := bcoll.NewCollection[int](4)
	c.Add(1, bcoll.Blocking)
	c.Add(2, bcoll.Blocking)
	c.CompleteAdding()

	fmt.Println("add:", c.Add(3, bcoll.Blocking))
	fmt.Println("completed:", c.IsCompleted())

	for v := range c.Consume() {
		fmt.Println("took", v)
	}
	fmt.Println("completed:", c.IsCompleted())
	fmt.Println("history:", c.HistorySize())

	// Output:
	// add: Completed
	// completed: false
	// took 1
	// took 2
	// completed: true
	// history: 2
}

// ExampleCollection_AddBulk demonstrates partial bulk insertion.
func ExampleCollection_AddBulk() {
	c := bcoll.NewCollection[int](3)

	n, st := c.AddBulk([]int{1, 2, 3, 4, 5}, bcoll.Immediate)
	fmt.Println(n, st)

	dst := make([]int, 8)
	n, st = c.TakeBulk(dst, bcoll.Immediate)
	fmt.Println(dst[:n], st)

	// Output:
	// 3 TimedOut
	// [1 2 3] Ok
}

// ExampleCollection_Emplace demonstrates deferred construction.
func ExampleCollection_Emplace() {
	c := bcoll.NewCollection[[]byte](1)
	alloc := func() []byte { return make([]byte, 4096) }

	fmt.Println(c.Emplace(alloc, bcoll.Immediate))
	fmt.Println(c.Emplace(alloc, bcoll.Immediate)) // full: alloc is not called

	// Output:
	// Ok
	// TimedOut
}

// ExampleStatus_Err demonstrates propagating statuses as errors.
func ExampleStatus_Err() {
	c := bcoll.NewCollection[int](1)
	c.CompleteAdding()

	err := c.Add(1, bcoll.Blocking).Err()
	fmt.Println(bcoll.IsCompleted(err), bcoll.IsWouldBlock(err))

	_, st := bcoll.NewCollection[int](1).Take(bcoll.Immediate)
	fmt.Println(bcoll.IsWouldBlock(st.Err()), bcoll.IsNonFailure(st.Err()))

	// Output:
	// true false
	// true true
}

// ExampleCollection_AddSeq demonstrates inserting from an iterator.
func ExampleCollection_AddSeq() {
	c := bcoll.NewCollection[string](8)
	n, st := c.AddSeq(slices.Values([]string{"x", "y", "z"}), bcoll.Blocking)
	fmt.Println(n, st, c.Size())

	// Output:
	// 3 Ok 3
}
