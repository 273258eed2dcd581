// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll

import "iter"

// Consume returns an iterator that takes elements with blocking Take
// until the collection is completed.
//
// Several goroutines may range over Consume at the same time; every
// element is yielded to exactly one of them. Breaking out of the loop
// stops taking: the element last yielded is the caller's, nothing else
// is removed.
//
//	for v := range c.Consume() {
//	    process(v)
//	}
//	// c.IsCompleted() == true unless the loop broke early
func (c *Collection[T]) Consume() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			elem, st := c.Take(Blocking)
			if st != Ok {
				return
			}
			if !yield(elem) {
				return
			}
		}
	}
}
