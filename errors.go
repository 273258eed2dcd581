// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bcoll

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation could not proceed within the
// caller's wait budget.
//
// For Add: the collection stayed full
// For Take: the collection stayed empty
// For At: the requested index was not populated in time
//
// ErrWouldBlock is what [TimedOut] maps to through [Status.Err]. It is a
// control flow signal, not a failure: the caller may retry.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrCompleted reports that adding has been completed. No further
// elements will be accepted; consumers should drain and stop.
var ErrCompleted = errors.New("bcoll: adding completed")

// ErrAtExceedCapacity reports an index outside the window the collection
// can ever hold relative to what has already been removed. Waiting cannot
// satisfy it.
var ErrAtExceedCapacity = errors.New("bcoll: index outside capacity window")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// IsCompleted reports whether err (or anything it wraps) is [ErrCompleted].
func IsCompleted(err error) bool {
	return errors.Is(err, ErrCompleted)
}

// IsAtExceedCapacity reports whether err (or anything it wraps) is
// [ErrAtExceedCapacity].
func IsAtExceedCapacity(err error) bool {
	return errors.Is(err, ErrAtExceedCapacity)
}
