// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll

import "code.hybscloud.com/atomix"

// counters are the always-on operation counters of a Collection.
type counters struct {
	_            pad
	adds         atomix.Int64
	addTimeouts  atomix.Int64
	addRejected  atomix.Int64
	_            pad
	takes         atomix.Int64
	takeTimeouts  atomix.Int64
	takeCompleted atomix.Int64
	_             pad
	peeks         atomix.Int64
	peekTimeouts  atomix.Int64
	peekExceeded  atomix.Int64
	peekCompleted atomix.Int64
	_            pad
	parks        atomix.Int64
}

// Stats is a snapshot of a collection's operation counters.
//
// Counters are read one by one without stopping concurrent operations,
// so a snapshot taken under load is not a single point in time.
type Stats struct {
	Adds        uint64 // Elements inserted (Ok)
	AddTimeouts uint64 // Insertions that returned TimedOut
	AddRejected uint64 // Insertions that returned Completed

	Takes         uint64 // Elements removed (Ok)
	TakeTimeouts  uint64 // Removals that returned TimedOut
	TakeCompleted uint64 // Removals that returned Completed

	Peeks         uint64 // At calls that returned Ok
	PeekTimeouts  uint64 // At calls that returned TimedOut
	PeekExceeded  uint64 // At calls that returned AtExceedCapacity
	PeekCompleted uint64 // At calls that returned Completed

	Parks uint64 // Times a goroutine suspended waiting for progress
}

// Stats returns a snapshot of the operation counters.
func (c *Collection[T]) Stats() Stats {
	s := &c.stats
	return Stats{
		Adds:          uint64(s.adds.Load()),
		AddTimeouts:   uint64(s.addTimeouts.Load()),
		AddRejected:   uint64(s.addRejected.Load()),
		Takes:         uint64(s.takes.Load()),
		TakeTimeouts:  uint64(s.takeTimeouts.Load()),
		TakeCompleted: uint64(s.takeCompleted.Load()),
		Peeks:         uint64(s.peeks.Load()),
		PeekTimeouts:  uint64(s.peekTimeouts.Load()),
		PeekExceeded:  uint64(s.peekExceeded.Load()),
		PeekCompleted: uint64(s.peekCompleted.Load()),
		Parks:         uint64(s.parks.Load()),
	}
}
