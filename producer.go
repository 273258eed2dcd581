// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll

// AttachProducer registers one more producer.
//
// Attaching after adding has been completed is allowed; the producer's
// insertions fail with Completed.
func (c *Collection[T]) AttachProducer() {
	c.mu.Lock()
	c.producers++
	c.mu.Unlock()
}

// DetachProducer unregisters a producer. When the last attached producer
// detaches, adding is completed as if by CompleteAdding.
//
// Panics if no producer is attached.
func (c *Collection[T]) DetachProducer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.producers == 0 {
		panic("bcoll: DetachProducer without attached producer")
	}
	c.producers--
	if c.producers == 0 {
		c.complete()
	}
}

// Producers returns the number of attached producers.
func (c *Collection[T]) Producers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.producers
}
