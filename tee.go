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

import "fmt"

// Tee duplicates one input stream to one or more output streams, so a
// mid-chain signal can feed a debug tap or a recording sink alongside the
// main processing path.
//
// Because a stream is SPSC, Tee can only advance its read cursor by the
// minimum writable space across all of its outputs - a slow consumer on
// one leg holds back every other leg, same as a single-output block would
// be held back by its one consumer.
type Tee[T any] struct {
	name string
	in   *Stream[T]
	outs []*Stream[T]
}

// NewTee builds a Tee block named name copying in to every stream in outs.
// It returns an error if outs is empty, since a Tee with no outputs can
// never drain its input.
func NewTee[T any](name string, in *Stream[T], outs ...*Stream[T]) (*Tee[T], error) {
	if len(outs) == 0 {
		return nil, fmt.Errorf("flow: Tee %q needs at least one output", name)
	}
	return &Tee[T]{name: name, in: in, outs: outs}, nil
}

// BlockName implements Block.
func (t *Tee[T]) BlockName() string {
	return t.name
}

// Inputs implements Inspectable.
func (t *Tee[T]) Inputs() []Handle {
	return []Handle{t.in}
}

// Outputs implements Inspectable.
func (t *Tee[T]) Outputs() []Handle {
	hs := make([]Handle, len(t.outs))
	for i, o := range t.outs {
		hs[i] = o
	}
	return hs
}

// Work implements Block.
func (t *Tee[T]) Work() (Status, error) {
	n := t.in.Readable()
	for _, o := range t.outs {
		if w := o.Writable(); w < n {
			n = w
		}
	}
	if n == 0 {
		if t.in.Readable() == 0 && t.in.Done() {
			for _, o := range t.outs {
				o.CloseWrite()
			}
			return StatusEOF, nil
		}
		return StatusOK, nil
	}
	src := t.in.Slice()[:n]
	for _, o := range t.outs {
		copy(o.WritableSlice()[:n], src)
		o.Produce(n)
	}
	t.in.Consume(n)
	return StatusOK, nil
}

// vim: foldmethod=marker
