// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll

// Options configures collection creation.
type Options struct {
	// Capacity (exact, no rounding)
	capacity int

	// Spin rounds before parking (0 = park at once)
	spinRounds int

	// Producers attached at construction
	producers int
}

// Builder creates collections with fluent configuration.
//
// Example:
//
//	// Plain collection
//	c := bcoll.Build[Event](bcoll.New(1024))
//
//	// Waiters spin briefly before parking
//	c := bcoll.Build[*Request](bcoll.New(4096).Spin(64))
//
//	// Completes by itself when both producers call DetachProducer
//	c := bcoll.Build[Job](bcoll.New(256).Producers(2))
type Builder struct {
	opts Options
}

// New creates a collection builder with the given capacity.
//
// Capacity is used as is; it need not be a power of 2.
//
// Panics if capacity < 1.
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("bcoll: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Spin makes waiting calls spin up to rounds times, watching the
// collection's published counters, before they park.
//
// Spinning trades CPU for latency when hand-offs are expected within
// microseconds. Decisions are always re-made under the lock, so the
// setting never changes results.
//
// Panics if rounds < 0.
func (b *Builder) Spin(rounds int) *Builder {
	if rounds < 0 {
		panic("bcoll: spin rounds must be >= 0")
	}
	b.opts.spinRounds = rounds
	return b
}

// Producers pre-attaches n producers, as if AttachProducer had been
// called n times. The collection completes adding when all of them have
// called DetachProducer.
//
// Panics if n < 0.
func (b *Builder) Producers(n int) *Builder {
	if n < 0 {
		panic("bcoll: producer count must be >= 0")
	}
	b.opts.producers = n
	return b
}

// Build creates a Collection[T] from the builder's configuration.
func Build[T any](b *Builder) *Collection[T] {
	c := NewCollection[T](b.opts.capacity)
	c.spinRounds = b.opts.spinRounds
	c.producers = b.opts.producers
	return c
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
