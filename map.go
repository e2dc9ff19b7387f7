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

// Map is the one-in/one-out convenience block: it applies fn to each input
// sample, writing exactly as many samples as it read. Most simple stateless
// (or per-sample stateful, via a closure) blocks are a Map rather than a
// hand-written Work loop.
type Map[T any] struct {
	name string
	in   *Stream[T]
	out  *Stream[T]
	fn   func(T) T
}

// NewMap builds a Map block named name, reading from in, applying fn, and
// writing to out.
func NewMap[T any](name string, in, out *Stream[T], fn func(T) T) *Map[T] {
	return &Map[T]{name: name, in: in, out: out, fn: fn}
}

// In returns the Map's input Stream.
func (m *Map[T]) In() *Stream[T] {
	return m.in
}

// Out returns the Map's output Stream, so a caller can wire it into the
// next block's constructor.
func (m *Map[T]) Out() *Stream[T] {
	return m.out
}

// BlockName implements Block.
func (m *Map[T]) BlockName() string {
	return m.name
}

// Inputs implements Inspectable.
func (m *Map[T]) Inputs() []Handle {
	return []Handle{m.in}
}

// Outputs implements Inspectable.
func (m *Map[T]) Outputs() []Handle {
	return []Handle{m.out}
}

// Work implements Block. It processes the largest batch that both the
// input's readable count and the output's writable count permit, applying
// fn elementwise.
func (m *Map[T]) Work() (Status, error) {
	n := m.in.Readable()
	if w := m.out.Writable(); w < n {
		n = w
	}
	if n == 0 {
		if m.in.Readable() == 0 && m.in.Done() {
			m.out.CloseWrite()
			return StatusEOF, nil
		}
		return StatusOK, nil
	}
	src := m.in.Slice()[:n]
	dst := m.out.WritableSlice()[:n]
	for i := 0; i < n; i++ {
		dst[i] = m.fn(src[i])
	}
	m.in.Consume(n)
	m.out.Produce(n)
	return StatusOK, nil
}

// MapConvert is the type-converting counterpart of Map: it reads In samples
// and writes Out samples, one for one.
type MapConvert[In, Out any] struct {
	name string
	in   *Stream[In]
	out  *Stream[Out]
	fn   func(In) Out
}

// NewMapConvert builds a MapConvert block named name, reading In samples
// from in, converting with fn, and writing Out samples to out.
func NewMapConvert[In, Out any](name string, in *Stream[In], out *Stream[Out], fn func(In) Out) *MapConvert[In, Out] {
	return &MapConvert[In, Out]{name: name, in: in, out: out, fn: fn}
}

// In returns the MapConvert's input Stream.
func (m *MapConvert[In, Out]) In() *Stream[In] {
	return m.in
}

// Out returns the MapConvert's output Stream.
func (m *MapConvert[In, Out]) Out() *Stream[Out] {
	return m.out
}

// BlockName implements Block.
func (m *MapConvert[In, Out]) BlockName() string {
	return m.name
}

// Inputs implements Inspectable.
func (m *MapConvert[In, Out]) Inputs() []Handle {
	return []Handle{m.in}
}

// Outputs implements Inspectable.
func (m *MapConvert[In, Out]) Outputs() []Handle {
	return []Handle{m.out}
}

// Work implements Block.
func (m *MapConvert[In, Out]) Work() (Status, error) {
	n := m.in.Readable()
	if w := m.out.Writable(); w < n {
		n = w
	}
	if n == 0 {
		if m.in.Readable() == 0 && m.in.Done() {
			m.out.CloseWrite()
			return StatusEOF, nil
		}
		return StatusOK, nil
	}
	src := m.in.Slice()[:n]
	dst := m.out.WritableSlice()[:n]
	for i := 0; i < n; i++ {
		dst[i] = m.fn(src[i])
	}
	m.in.Consume(n)
	m.out.Produce(n)
	return StatusOK, nil
}

// vim: foldmethod=marker
