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
	"fmt"
	"strings"
	"time"
)

// BlockStats is a point-in-time snapshot of a single block's scheduling
// history within a Graph run.
type BlockStats struct {
	Name    string
	Calls   uint64
	Samples uint64
	Busy    time.Duration
}

// Stats returns a snapshot of every registered block's scheduling
// statistics, in registration order.
func (g *Graph) Stats() []BlockStats {
	out := make([]BlockStats, len(g.blocks))
	for i, st := range g.blocks {
		out[i] = BlockStats{
			Name:    st.block.BlockName(),
			Calls:   st.calls,
			Samples: st.samples,
			Busy:    st.busy,
		}
	}
	return out
}

// GenerateStats renders a human-readable summary of a completed run, given
// the wall-clock duration of the run; callers typically log it once after
// Run returns.
func (g *Graph) GenerateStats(elapsed time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "graph ran for %s across %d block(s)\n", elapsed, len(g.blocks))
	for _, st := range g.Stats() {
		fmt.Fprintf(&b, "  %-24s calls=%-8d samples=%-12d busy=%s\n",
			st.Name, st.Calls, st.Samples, st.Busy)
	}
	return b.String()
}

// vim: foldmethod=marker
