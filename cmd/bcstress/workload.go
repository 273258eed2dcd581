// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/bcoll"
	"code.hybscloud.com/iox"
	"github.com/valyala/fastrand"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxBatch = 4

// errChecksum is returned when consumers did not see every element
// exactly once.
var errChecksum = errors.New("checksum mismatch")

// report summarizes a finished workload.
type report struct {
	Elements uint64
	Consumed uint64
	Sum      uint64
	Want     uint64
	Peeks    uint64
	Elapsed  time.Duration
	Stats    bcoll.Stats
}

// workload moves 0..Elements-1 from Producers goroutines through one
// collection to Consumers goroutines, while Peekers follow the newest
// index with At.
type workload struct {
	cfg  *CLIConfig
	mode bcoll.Mode
	coll *bcoll.Collection[uint64]
	log  *zap.Logger

	sum      atomix.Uint64
	consumed atomix.Uint64
	peeks    atomix.Uint64
}

func newWorkload(cfg *CLIConfig, log *zap.Logger) (*workload, error) {
	mode, err := parseMode(cfg.Mode, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	b := bcoll.New(cfg.Capacity).Spin(cfg.Spin).Producers(cfg.Producers)
	return &workload{
		cfg:  cfg,
		mode: mode,
		coll: bcoll.Build[uint64](b),
		log:  log,
	}, nil
}

// run blocks until every element has been consumed, or ctx is cancelled
// and the collection has drained.
func (w *workload) run(ctx context.Context) (report, error) {
	start := time.Now()
	n := uint64(w.cfg.Elements)

	done := make(chan struct{})
	defer close(done)
	if w.cfg.ReportInterval > 0 {
		go w.progress(done)
	}

	producers, pctx := errgroup.WithContext(ctx)
	for p := range w.cfg.Producers {
		producers.Go(func() error {
			defer w.coll.DetachProducer()
			return w.produce(pctx, uint64(p), n)
		})
	}

	var readers errgroup.Group
	for range w.cfg.Consumers {
		readers.Go(w.consume)
	}
	for range w.cfg.Peekers {
		readers.Go(w.peek)
	}

	perr := producers.Wait()
	rerr := readers.Wait()

	r := report{
		Elements: n,
		Consumed: w.consumed.LoadAcquire(),
		Sum:      w.sum.LoadAcquire(),
		Want:     n * (n - 1) / 2,
		Peeks:    w.peeks.LoadAcquire(),
		Elapsed:  time.Since(start),
		Stats:    w.coll.Stats(),
	}
	if n == 0 {
		r.Want = 0
	}

	if err := errors.Join(perr, rerr); err != nil {
		return r, err
	}
	if r.Consumed != n || r.Sum != r.Want || w.coll.HistorySize() != n {
		return r, fmt.Errorf("%w: consumed %d of %d, sum %d want %d",
			errChecksum, r.Consumed, n, r.Sum, r.Want)
	}
	return r, nil
}

// produce inserts p, p+P, p+2P, ... below n, choosing an insertion
// variant at random for each step. TimedOut backs off before retrying.
func (w *workload) produce(ctx context.Context, p, n uint64) error {
	stride := uint64(w.cfg.Producers)
	batch := make([]uint64, 0, maxBatch)
	backoff := iox.Backoff{}
	for v := p; v < n; {
		if err := ctx.Err(); err != nil {
			return err
		}

		var st bcoll.Status
		if int(fastrand.Uint32n(100)) < w.cfg.BulkPct {
			batch = batch[:0]
			for x := v; x < n && len(batch) < maxBatch; x += stride {
				batch = append(batch, x)
			}
			var added int
			added, st = w.coll.AddBulk(batch, w.mode)
			v += uint64(added) * stride
		} else {
			switch fastrand.Uint32n(3) {
			case 0:
				st = w.coll.Add(v, w.mode)
			case 1:
				st = w.coll.AddCopy(&v, w.mode)
			default:
				val := v
				st = w.coll.Emplace(func() uint64 { return val }, w.mode)
			}
			if st == bcoll.Ok {
				v += stride
			}
		}

		switch st {
		case bcoll.Ok:
			backoff.Reset()
		case bcoll.TimedOut:
			backoff.Wait()
		default:
			return fmt.Errorf("insert: %w", st.Err())
		}
	}
	return nil
}

// consume takes elements until the collection is completed.
func (w *workload) consume() error {
	buf := make([]uint64, maxBatch)
	var sum, count uint64
	defer func() {
		w.sum.AddAcqRel(sum)
		w.consumed.AddAcqRel(count)
	}()

	backoff := iox.Backoff{}
	for {
		var st bcoll.Status
		if int(fastrand.Uint32n(100)) < w.cfg.BulkPct {
			var n int
			n, st = w.coll.TakeBulk(buf, w.mode)
			for _, v := range buf[:n] {
				sum += v
			}
			count += uint64(n)
		} else {
			var v uint64
			v, st = w.coll.Take(w.mode)
			if st == bcoll.Ok {
				sum += v
				count++
			}
		}

		switch st {
		case bcoll.Ok:
			backoff.Reset()
		case bcoll.TimedOut:
			backoff.Wait()
		case bcoll.Completed:
			return nil
		default:
			return fmt.Errorf("take: %w", st.Err())
		}
	}
}

// peek follows the newest index. It falls back to the oldest resident
// element whenever the index leaves the window, and backs off while it is
// ahead of the window or the index is not yet populated.
func (w *workload) peek() error {
	var peeks uint64
	defer func() { w.peeks.AddAcqRel(peeks) }()

	backoff := iox.Backoff{}
	idx := w.coll.HistorySize()
	for {
		_, st := w.coll.At(idx, w.mode)
		switch st {
		case bcoll.Ok:
			peeks++
			idx++
			backoff.Reset()
		case bcoll.AtExceedCapacity:
			if base := w.coll.BaseIndex(); idx < base {
				idx = base
				backoff.Reset()
			} else {
				backoff.Wait()
			}
		case bcoll.TimedOut:
			backoff.Wait()
		case bcoll.Completed:
			return nil
		default:
			return fmt.Errorf("at %d: %w", idx, st.Err())
		}
	}
}

// progress logs the collection's counters every ReportInterval.
func (w *workload) progress(done <-chan struct{}) {
	ticker := time.NewTicker(w.cfg.ReportInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s := w.coll.Stats()
			w.log.Info("progress",
				zap.Uint64("history", w.coll.HistorySize()),
				zap.Uint64("base", w.coll.BaseIndex()),
				zap.Int("size", w.coll.Size()),
				zap.Uint64("adds", s.Adds),
				zap.Uint64("takes", s.Takes),
				zap.Uint64("peeks", s.Peeks),
				zap.Uint64("parks", s.Parks),
			)
		}
	}
}
