// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll

// Status is the outcome of a collection operation.
//
// Status is a closed enumeration. Operations report every expected
// outcome through it instead of returning errors, so callers branch
// without unwinding:
//
//	switch st := c.Add(v, bcoll.Immediate); st {
//	case bcoll.Ok:
//	case bcoll.TimedOut:
//	    // full: retry later
//	case bcoll.Completed:
//	    // shutting down: stop producing
//	}
type Status uint8

const (
	// Ok means the operation took effect.
	Ok Status = iota

	// TimedOut means the wait budget of the [Mode] ran out. Transient.
	TimedOut

	// Completed means adding has been completed: an insertion was
	// refused, or nothing is left to take or will ever arrive.
	Completed

	// AtExceedCapacity means the index passed to At lies outside the
	// sliding window [BaseIndex, BaseIndex+Cap). Caller logic error.
	AtExceedCapacity
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Ok:
		return "Ok"
	case TimedOut:
		return "TimedOut"
	case Completed:
		return "Completed"
	case AtExceedCapacity:
		return "AtExceedCapacity"
	default:
		return "Status(?)"
	}
}

// Err maps the status onto the package error vocabulary.
//
//	Ok               → nil
//	TimedOut         → ErrWouldBlock
//	Completed        → ErrCompleted
//	AtExceedCapacity → ErrAtExceedCapacity
func (s Status) Err() error {
	switch s {
	case Ok:
		return nil
	case TimedOut:
		return ErrWouldBlock
	case Completed:
		return ErrCompleted
	default:
		return ErrAtExceedCapacity
	}
}
