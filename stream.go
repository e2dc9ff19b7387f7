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
	"reflect"
)

// DefaultStreamBytes is the Circ size new Streams use unless a caller asks
// for a specific capacity: one page on hosts with 4 KiB pages. On hosts
// with larger pages NewCirc rejects this size, so NewStream fails there.
const DefaultStreamBytes = 4096

// ErrStreamTypeMismatch identifies the panic AssertHandle raises when a
// Handle is asserted to a Stream[T] whose type tag doesn't match: on a tag
// mismatch the panic value is a string beginning with this error's text;
// for a matching tag on a non-*Stream[T] Handle it is this error itself.
var ErrStreamTypeMismatch = fmt.Errorf("flow: stream type tag mismatch")

// Handle is the type-erased view of a Stream[T] that Blocks and Graph use
// to do dynamic wiring checks and drain bookkeeping without needing to know
// T. Every *Stream[T] implements Handle.
type Handle interface {
	// ElemType returns the reflect.Type of the stream's element, its
	// runtime type tag.
	ElemType() reflect.Type

	// Readable returns the number of samples currently available to read.
	Readable() int

	// Writable returns the number of samples of free space available to
	// write.
	Writable() int

	// ClearAll consumes every currently readable sample, for draining a
	// stream whose values no consumer cares about.
	ClearAll()
}

// Stream is a typed, shared SPSC handle over a Buffer[T]: exactly one Block
// produces into it (via Write/WriteSeq/Produce) and exactly one Block
// consumes from it (via Slice/Consume/Clear).
type Stream[T any] struct {
	buf  *Buffer[T]
	done bool
}

// NewStream creates a Stream[T] backed by a freshly allocated Buffer[T] of
// DefaultStreamBytes capacity.
func NewStream[T any]() (*Stream[T], error) {
	return NewStreamSize[T](DefaultStreamBytes)
}

// NewStreamSize creates a Stream[T] backed by a Buffer[T] of the given
// capacity, in bytes.
func NewStreamSize[T any](sizeBytes int) (*Stream[T], error) {
	buf, err := NewBuffer[T](sizeBytes)
	if err != nil {
		return nil, err
	}
	return &Stream[T]{buf: buf}, nil
}

// ElemType implements Handle.
func (s *Stream[T]) ElemType() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// Readable implements Handle.
func (s *Stream[T]) Readable() int {
	return s.buf.Used()
}

// Writable implements Handle.
func (s *Stream[T]) Writable() int {
	return s.buf.Free()
}

// ClearAll implements Handle.
func (s *Stream[T]) ClearAll() {
	s.Clear()
}

// Slice returns the currently readable samples. The returned slice aliases
// the Stream's backing memory and is invalidated by the next Consume/Clear
// or Write/Produce call.
func (s *Stream[T]) Slice() []T {
	return s.buf.ReadSlice()
}

// Consume advances the read cursor by n samples. Callers MUST consume
// exactly as many samples as they have processed from Slice(); failing to
// do so means the same data is read again on the next call.
func (s *Stream[T]) Consume(n int) {
	s.buf.Consume(n)
}

// Clear consumes every currently readable sample.
func (s *Stream[T]) Clear() {
	start, end := s.buf.ReadRange()
	s.buf.Consume(end - start)
}

// WritableSlice returns the currently writable region as a contiguous
// slice, for callers (such as blocks.FileSource) that want to read or
// compute directly into the stream's backing memory instead of writing
// through a temporary buffer. The returned slice aliases the Stream's
// backing memory and is invalidated by the next Produce/Write/WriteSeq
// call; callers MUST follow a partial fill with Produce(n) for exactly the
// number of samples they filled in.
func (s *Stream[T]) WritableSlice() []T {
	return s.buf.WriteSlice()
}

// Produce commits n samples written directly into the slice returned by
// WritableSlice, making them visible to the consumer. See Stream.Write for
// the common-case entry point that combines writing and producing.
func (s *Stream[T]) Produce(n int) {
	s.buf.Produce(n)
}

// Write appends as many of samples as fit in the stream's free space and
// produces them, returning the count written. Callers whose source has more
// data than fits must call Write again after downstream has drained.
func (s *Stream[T]) Write(samples []T) int {
	free := s.buf.Free()
	n := len(samples)
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}
	copy(s.buf.WriteSlice()[:n], samples[:n])
	s.buf.Produce(n)
	return n
}

// WriteSeq drains a range-over-func iterator into the stream, stopping
// early if the stream's free space fills up before the sequence is
// exhausted.
func (s *Stream[T]) WriteSeq(seq func(yield func(T) bool)) int {
	n := 0
	free := s.buf.Free()
	out := s.buf.WriteSlice()
	seq(func(v T) bool {
		if n >= free {
			return false
		}
		out[n] = v
		n++
		return true
	})
	s.buf.Produce(n)
	return n
}

// Cap returns the stream's total sample capacity.
func (s *Stream[T]) Cap() int {
	return s.buf.Cap()
}

// CloseWrite marks the stream as having no further writes coming from its
// producer. It does not affect already-readable samples; a consumer should
// keep draining Slice/Consume until Readable is 0, then treat Done as true
// to mean end of stream.
func (s *Stream[T]) CloseWrite() {
	s.done = true
}

// Done reports whether the producer has called CloseWrite. Combined with
// Readable() == 0, this is how a downstream Block recognizes end of stream.
func (s *Stream[T]) Done() bool {
	return s.done
}

// Close releases the stream's backing buffer. Only safe once neither the
// producer nor the consumer Block will touch the stream again.
func (s *Stream[T]) Close() error {
	return s.buf.Close()
}

// AssertHandle retrieves a typed Stream[T] from a type-erased Handle,
// checking the runtime type tag. A tag mismatch is a programming error and
// panics rather than returning an error - callers wiring a graph by hand
// are expected to get static types right; this exists for dynamic wiring,
// where block construction happens behind a type-erased registry.
func AssertHandle[T any](h Handle) *Stream[T] {
	var zero T
	want := reflect.TypeOf(zero)
	if h.ElemType() != want {
		panic(fmt.Sprintf("%v: want %v, got %v", ErrStreamTypeMismatch, want, h.ElemType()))
	}
	s, ok := h.(*Stream[T])
	if !ok {
		panic(ErrStreamTypeMismatch)
	}
	return s
}

// vim: foldmethod=marker
