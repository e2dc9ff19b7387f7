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
	"unsafe"
)

// Buffer is a Circ with sample-granularity accounting layered on top: rpos,
// wpos and used are all measured in samples of T, not bytes.
//
// Buffer is not safe for concurrent use by more than one producer and one
// consumer: it assumes a single producer and a single consumer, and its
// cursors are plain, non-atomic fields.
type Buffer[T any] struct {
	circ *Circ
	rpos int
	wpos int
	used int
	cap  int // capacity, in samples
}

// NewBuffer allocates a Buffer able to hold sizeBytes worth of samples of T.
// sizeBytes must be a page-size multiple and must be a multiple of
// sizeof(T); a non-multiple is a programming error, not a recoverable
// condition.
func NewBuffer[T any](sizeBytes int) (*Buffer[T], error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return nil, fmt.Errorf("flow: zero-size sample type")
	}
	if sizeBytes%elemSize != 0 {
		panic(fmt.Sprintf("flow: buffer size %d is not a multiple of sample size %d", sizeBytes, elemSize))
	}

	circ, err := NewCirc(sizeBytes)
	if err != nil {
		return nil, err
	}
	return &Buffer[T]{
		circ: circ,
		cap:  sizeBytes / elemSize,
	}, nil
}

// Close releases the Buffer's backing Circ.
func (b *Buffer[T]) Close() error {
	return b.circ.Close()
}

// Cap returns the buffer's capacity in samples.
func (b *Buffer[T]) Cap() int {
	return b.cap
}

// Used returns the number of samples currently readable.
func (b *Buffer[T]) Used() int {
	return b.used
}

// Free returns the number of samples currently writable.
func (b *Buffer[T]) Free() int {
	return b.cap - b.used
}

// ReadRange returns the [start, end) sample-index range that is currently
// readable; end-start == Used(), and end <= start+cap, so the corresponding
// byte range is always a single contiguous slice.
func (b *Buffer[T]) ReadRange() (int, int) {
	return b.rpos, b.rpos + b.used
}

// WriteRange returns the [start, end) sample-index range that is currently
// writable.
func (b *Buffer[T]) WriteRange() (int, int) {
	return b.wpos, b.wpos + b.Free()
}

// ReadSlice returns the currently readable samples as a contiguous slice.
// The slice aliases the buffer's backing memory and is only valid until the
// next Consume/Produce call.
func (b *Buffer[T]) ReadSlice() []T {
	start, end := b.ReadRange()
	return b.typedSlice(start, end-start)
}

// WriteSlice returns the currently writable region as a contiguous slice.
// The slice aliases the buffer's backing memory and is only valid until the
// next Consume/Produce call.
func (b *Buffer[T]) WriteSlice() []T {
	start, end := b.WriteRange()
	return b.typedSlice(start, end-start)
}

// Consume advances the read cursor by n samples, releasing them back to the
// pool of writable space. Consuming more than Used() is a programming error
// and panics.
func (b *Buffer[T]) Consume(n int) {
	if n < 0 || n > b.used {
		panic(fmt.Sprintf("flow: consume(%d) exceeds used(%d)", n, b.used))
	}
	b.rpos = (b.rpos + n) % b.cap
	b.used -= n
}

// Produce advances the write cursor by n samples, committing them as
// readable. Producing more than Free() is a programming error and panics.
func (b *Buffer[T]) Produce(n int) {
	if n < 0 || n > b.Free() {
		panic(fmt.Sprintf("flow: produce(%d) exceeds free(%d)", n, b.Free()))
	}
	b.wpos = (b.wpos + n) % b.cap
	b.used += n
}

// typedSlice reinterprets the double-mapped byte range [start*elemSize,
// (start+n)*elemSize) as a []T. start is always below cap, and because the
// Circ's backing storage is mapped twice, start+n may run up to 2*cap
// without ever crossing into unmapped memory.
func (b *Buffer[T]) typedSlice(start, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	raw := b.circ.slice(start*elemSize, n*elemSize)
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)
}

// vim: foldmethod=marker
