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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1: a single byte written then read comes back unchanged.
func TestBufferSingleByteEcho(t *testing.T) {
	b, err := NewBuffer[byte](os.Getpagesize())
	require.NoError(t, err)
	defer b.Close()

	b.WriteSlice()[0] = 0x42
	b.Produce(1)
	assert.Equal(t, 1, b.Used())

	got := b.ReadSlice()[0]
	assert.Equal(t, byte(0x42), got)
	b.Consume(1)
	assert.Equal(t, 0, b.Used())
}

// S2: filling most of the ring, draining, and refilling must cross the wrap
// boundary without the reader or writer ever seeing a discontinuity.
func TestBufferWrapBoundary(t *testing.T) {
	size := os.Getpagesize()
	b, err := NewBuffer[byte](size)
	require.NoError(t, err)
	defer b.Close()

	// Fill most of the ring, drain it all, then write a batch that runs
	// past where the cursor wraps back to index 0.
	first := b.Cap() - 96
	w := b.WriteSlice()
	for i := 0; i < first; i++ {
		w[i] = byte(i)
	}
	b.Produce(first)

	r := b.ReadSlice()
	require.Len(t, r, first)
	for i := 0; i < first; i++ {
		if r[i] != byte(i) {
			t.Fatalf("sample %d read back as %d", i, r[i])
		}
	}
	b.Consume(first)
	assert.Equal(t, 0, b.Used())

	w = b.WriteSlice()
	require.Len(t, w, b.Cap())
	for i := 0; i < 100; i++ {
		w[i] = byte(100 - i)
	}
	b.Produce(100)

	r = b.ReadSlice()
	require.Len(t, r, 100)
	for i := 0; i < 100; i++ {
		assert.Equal(t, byte(100-i), r[i])
	}
	assert.Equal(t, b.Cap()-100, len(b.WriteSlice()))
	b.Consume(100)
	assert.Equal(t, 0, b.Used())
}

// S3: writing exactly Cap() samples fills the buffer with zero space left,
// and a subsequent write is refused until a read makes room.
func TestBufferExactFill(t *testing.T) {
	b, err := NewBuffer[byte](os.Getpagesize())
	require.NoError(t, err)
	defer b.Close()

	n := b.Cap()
	w := b.WriteSlice()
	require.Len(t, w, n)
	for i := range w {
		w[i] = byte(i)
	}
	b.Produce(n)

	assert.Equal(t, n, b.Used())
	assert.Equal(t, 0, b.Free())
	assert.Panics(t, func() { b.Produce(1) })

	r := b.ReadSlice()
	require.Len(t, r, n)
	for i := range r {
		assert.Equal(t, byte(i), r[i])
	}
}

// S4: Buffer works identically over a non-byte sample type.
func TestBufferTypedFloat(t *testing.T) {
	b, err := NewBuffer[float32](os.Getpagesize())
	require.NoError(t, err)
	defer b.Close()

	vals := []float32{0.1, 0.2, 0.3, -1.5}
	w := b.WriteSlice()
	copy(w, vals)
	b.Produce(len(vals))

	assert.Equal(t, vals, b.ReadSlice()[:len(vals)])
	b.Consume(len(vals))
	assert.Equal(t, 0, b.Used())
}

// S5: repeated produce/consume cycles across many wraps never corrupt data
// or desynchronize Used()/Free() accounting, for an arbitrarily long stream
// of samples pushed through a small buffer.
func TestBufferLongRunningStream(t *testing.T) {
	b, err := NewBuffer[uint32](os.Getpagesize())
	require.NoError(t, err)
	defer b.Close()

	const total = 1_000_000
	var written, read uint32
	for read < total {
		if written < total {
			w := b.WriteSlice()
			n := len(w)
			if remaining := total - written; uint32(n) > remaining {
				n = int(remaining)
			}
			for i := 0; i < n; i++ {
				w[i] = written
				written++
			}
			b.Produce(n)
		}
		r := b.ReadSlice()
		for _, v := range r {
			if v != read {
				t.Fatalf("sample %d read back as %d", read, v)
			}
			read++
		}
		b.Consume(len(r))
	}
	assert.Equal(t, uint32(total), written)
	assert.Equal(t, uint32(total), read)
	assert.Equal(t, 0, b.Used())
}

func TestBufferConsumeProduceOverrunPanics(t *testing.T) {
	b, err := NewBuffer[byte](os.Getpagesize())
	require.NoError(t, err)
	defer b.Close()

	assert.Panics(t, func() { b.Consume(1) })
	assert.Panics(t, func() { b.Produce(b.Cap() + 1) })
}

// vim: foldmethod=marker
