// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll

import "time"

// Mode selects how long an operation may wait for the collection state
// it needs (room, an element, or a specific index).
//
//	c.Add(v, bcoll.Blocking)                      // wait as long as needed
//	c.Add(v, bcoll.Immediate)                     // never wait
//	c.Add(v, bcoll.Within(50*time.Millisecond))   // wait at most 50ms
type Mode time.Duration

const (
	// Blocking waits until the operation can proceed or adding completes.
	Blocking Mode = -1

	// Immediate fails with TimedOut instead of waiting.
	Immediate Mode = 0
)

// Within returns a Mode that waits at most d.
// Non-positive d is equivalent to Immediate.
func Within(d time.Duration) Mode {
	if d <= 0 {
		return Immediate
	}
	return Mode(d)
}

// deadline returns the absolute expiry of a timed mode.
// The zero Time is returned for Blocking and Immediate.
func (m Mode) deadline() time.Time {
	if m <= 0 {
		return time.Time{}
	}
	return time.Now().Add(time.Duration(m))
}

// String returns a readable form of the mode.
func (m Mode) String() string {
	switch {
	case m < 0:
		return "Blocking"
	case m == 0:
		return "Immediate"
	default:
		return "Within(" + time.Duration(m).String() + ")"
	}
}
