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

package blocks

import (
	"fmt"
	"io"

	"hz.tools/flow"
)

// DebugSink prints every sample it consumes to an io.Writer, for eyeballing
// a stream mid-chain. It takes an io.Writer rather than hardcoding stdout
// so tests can capture the output.
type DebugSink[T any] struct {
	w  io.Writer
	in *flow.Stream[T]
}

// NewDebugSink builds a DebugSink printing in's samples to w, one per line,
// each prefixed with "debug: ".
func NewDebugSink[T any](w io.Writer, in *flow.Stream[T]) *DebugSink[T] {
	return &DebugSink[T]{w: w, in: in}
}

// BlockName implements flow.Block.
func (d *DebugSink[T]) BlockName() string {
	return "DebugSink"
}

// Inputs implements flow.Inspectable.
func (d *DebugSink[T]) Inputs() []flow.Handle {
	return []flow.Handle{d.in}
}

// Outputs implements flow.Inspectable.
func (d *DebugSink[T]) Outputs() []flow.Handle { return nil }

// Work implements flow.Block.
func (d *DebugSink[T]) Work() (flow.Status, error) {
	for _, s := range d.in.Slice() {
		fmt.Fprintf(d.w, "debug: %v\n", s)
	}
	d.in.Clear()
	if d.in.Readable() == 0 && d.in.Done() {
		return flow.StatusEOF, nil
	}
	return flow.StatusOK, nil
}

// vim: foldmethod=marker
