// {{{ Copyright (c) Paul R. Tagliamonte <paul@k3xec.com>, 2020-2024
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE. }}}

package flow

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// blockState tracks per-block scheduling and statistics state.
type blockState struct {
	block   Block
	done    bool  // true once Work has returned StatusEOF
	err     error // fatal error from the last Work call, if any
	calls   uint64
	samples uint64
	busy    time.Duration
}

// Graph owns a heterogeneous collection of Blocks and repeatedly drives them
// to quiescence: every block has returned StatusEOF and every Stream it
// knows about is empty.
type Graph struct {
	blocks []*blockState
	cancel *CancelToken
}

// NewGraph returns an empty Graph with a fresh CancelToken.
func NewGraph() *Graph {
	return &Graph{cancel: NewCancelToken()}
}

// Add registers a Block with the Graph. The Graph does not validate wiring
// between blocks; the caller assembling the graph is responsible for giving
// every Stream exactly one producer and one consumer.
func (g *Graph) Add(b Block) {
	g.blocks = append(g.blocks, &blockState{block: b})
}

// CancelToken returns the Graph's CancelToken, so external code (a signal
// handler, a timeout goroutine) can request termination.
func (g *Graph) CancelToken() *CancelToken {
	return g.cancel
}

// drained reports whether every registered block has returned StatusEOF and
// every Stream reachable from an Inspectable block is empty.
func (g *Graph) drained() bool {
	for _, st := range g.blocks {
		if !st.done {
			return false
		}
		if insp, ok := st.block.(Inspectable); ok {
			for _, h := range insp.Outputs() {
				if h.Readable() > 0 {
					return false
				}
			}
		}
	}
	return true
}

// Run drives every Block's Work method, round-robin, until either every
// block has returned StatusEOF and all streams have drained, the
// CancelToken is set, or a Work call returns a fatal error. Run also
// returns nil after any round in which no block made progress, even if
// some blocks have not returned StatusEOF; it does not wait for a source
// that is idle but not finished.
func (g *Graph) Run() error {
	if len(g.blocks) == 0 {
		return nil
	}
	for {
		if g.cancel.Cancelled() {
			return nil
		}
		progressed := false
		for _, st := range g.blocks {
			if st.done {
				continue
			}
			if st.work() {
				progressed = true
			}
			if st.err != nil {
				return st.err
			}
		}
		if g.drained() {
			return nil
		}
		if !progressed {
			// No block moved a single sample and none declared EOF;
			// without this check a graph whose sole source went quiet
			// (but not EOF) would spin forever. Yielding back to the
			// caller is the only sane behavior for a single-threaded run.
			return nil
		}
	}
}

// work invokes the block once, updating its statistics, and reports whether
// the call made observable progress: any sample count on the block's input
// or output streams changed, or the block declared EOF. A fatal error is
// left in st.err for the scheduler to surface.
func (st *blockState) work() bool {
	inBefore, outBefore := streamLevels(st.block)
	start := time.Now()
	status, err := st.block.Work()
	st.busy += time.Since(start)
	st.calls++
	if err != nil {
		st.err = fmt.Errorf("flow: block %q: %w", st.block.BlockName(), err)
		return true
	}
	inAfter, outAfter := streamLevels(st.block)
	if outAfter > outBefore {
		st.samples += uint64(outAfter - outBefore)
	}
	progressed := inAfter != inBefore || outAfter != outBefore
	if status == StatusEOF {
		st.done = true
		progressed = true
	}
	return progressed
}

// RunParallel runs the same round-based loop as Run, overlapping the
// wall-clock cost of independent blocks' Work bodies. Each round is split
// into waves of blocks that share no Stream with each other; a wave's
// blocks run concurrently on an errgroup.Group, bounded to n at a time by a
// semaphore.Weighted, and each wave completes before the next starts. A
// Stream's producer and consumer therefore never run at the same moment,
// which is what keeps Buffer's plain (un-atomic) cursor updates safe, and
// the observable per-stream ordering is identical to Run's.
//
// Blocks that don't implement Inspectable have no visible wiring, so they
// are conservatively run in waves of their own.
func (g *Graph) RunParallel(ctx context.Context, n int) error {
	if len(g.blocks) == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	sem := semaphore.NewWeighted(int64(n))

	for {
		if g.cancel.Cancelled() {
			return nil
		}
		var progressed atomic.Bool
		for _, wave := range g.waves() {
			eg, egCtx := errgroup.WithContext(ctx)
			for _, st := range wave {
				st := st
				if err := sem.Acquire(egCtx, 1); err != nil {
					return err
				}
				eg.Go(func() error {
					defer sem.Release(1)
					if st.work() {
						progressed.Store(true)
					}
					return st.err
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}
		}

		if g.drained() {
			return nil
		}
		if !progressed.Load() {
			return nil
		}
	}
}

// waves partitions the not-yet-done blocks into groups that are safe to run
// concurrently: two blocks land in the same wave only if both expose their
// wiring via Inspectable and their Stream handle sets are disjoint.
// Blocks are placed in registration order, each into the first wave it
// does not overlap, so a block can land in an earlier wave than a block
// registered before it: in a source -> map -> sink chain the sink shares
// the source's wave and the map runs in the next one. Disjoint chains fan
// out fully.
func (g *Graph) waves() [][]*blockState {
	var (
		waves   [][]*blockState
		handles []map[Handle]struct{}
	)
	for _, st := range g.blocks {
		if st.done {
			continue
		}
		insp, ok := st.block.(Inspectable)
		if !ok {
			waves = append(waves, []*blockState{st})
			handles = append(handles, nil)
			continue
		}
		own := make(map[Handle]struct{})
		for _, h := range insp.Inputs() {
			own[h] = struct{}{}
		}
		for _, h := range insp.Outputs() {
			own[h] = struct{}{}
		}
		placed := false
		for i := range waves {
			if handles[i] == nil {
				continue // a wave holding an uninspectable block stays solo
			}
			if !overlaps(handles[i], own) {
				waves[i] = append(waves[i], st)
				for h := range own {
					handles[i][h] = struct{}{}
				}
				placed = true
				break
			}
		}
		if !placed {
			waves = append(waves, []*blockState{st})
			handles = append(handles, own)
		}
	}
	return waves
}

func overlaps(a, b map[Handle]struct{}) bool {
	for h := range b {
		if _, ok := a[h]; ok {
			return true
		}
	}
	return false
}

// streamLevels sums the readable sample counts across an Inspectable
// block's input and output streams; the scheduler compares levels before
// and after a Work call to decide whether the block made progress.
func streamLevels(b Block) (in, out int) {
	insp, ok := b.(Inspectable)
	if !ok {
		return 0, 0
	}
	for _, h := range insp.Inputs() {
		in += h.Readable()
	}
	for _, h := range insp.Outputs() {
		out += h.Readable()
	}
	return in, out
}

// vim: foldmethod=marker
