// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package bcoll

// RaceEnabled is true when the race detector is active.
// Used by stress tests and the bcstress driver to scale down operation
// counts, since every lock hand-off is instrumented.
const RaceEnabled = true
