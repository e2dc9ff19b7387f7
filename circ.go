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
	"os"
	"syscall"
)

// ErrCircSize will be returned when a Circ is constructed with a size that
// is not a positive multiple of the system page size.
var ErrCircSize = fmt.Errorf("flow: circular buffer size must be a positive page-size multiple")

// Circ is a fixed-capacity byte ring whose backing pages are mapped twice
// into adjacent virtual memory, so that any readable or writable region of
// length <= the buffer's capacity is always exposed as a single contiguous
// slice, without ever copying across the wrap point.
//
// Circ deals purely in bytes; Buffer[T] layers sample-granularity accounting
// on top of it. Circ is not safe for concurrent use by more than one
// producer and one consumer.
type Circ struct {
	file *os.File
	mem  []byte // len(mem) == 2*size; mem[i] and mem[i+size] alias the same page.
	size int
}

// NewCirc creates a Circ with the given capacity in bytes. size must be a
// positive multiple of the host's page size.
func NewCirc(size int) (*Circ, error) {
	pageSize := os.Getpagesize()
	if size <= 0 || size%pageSize != 0 {
		return nil, ErrCircSize
	}

	f, err := os.CreateTemp("", "flow-circ-")
	if err != nil {
		return nil, fmt.Errorf("flow: creating backing file: %w", err)
	}
	// Unlinking immediately means the inode is reclaimed the moment every
	// mapping and fd referencing it goes away; nothing on disk to clean up.
	if err := os.Remove(f.Name()); err != nil {
		f.Close()
		return nil, fmt.Errorf("flow: unlinking backing file: %w", err)
	}
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, fmt.Errorf("flow: sizing backing file: %w", err)
	}

	reservation, err := syscall.Mmap(-1, 0, 2*size, syscall.PROT_NONE, syscall.MAP_ANON|syscall.MAP_PRIVATE)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("flow: reserving address space: %w", err)
	}
	base := &reservation[0]

	one, err := mmapFixed(f, base, size, 0)
	if err != nil {
		syscall.Munmap(reservation)
		f.Close()
		return nil, fmt.Errorf("flow: mapping first half: %w", err)
	}
	if &one[0] != base {
		syscall.Munmap(reservation)
		f.Close()
		return nil, fmt.Errorf("flow: mmap did not honor MAP_FIXED for first half")
	}

	secondBase := (*byte)(addPointer(base, uintptr(size)))
	two, err := mmapFixed(f, secondBase, size, 0)
	if err != nil {
		syscall.Munmap(reservation)
		f.Close()
		return nil, fmt.Errorf("flow: mapping mirror half: %w", err)
	}
	if &two[0] != secondBase {
		syscall.Munmap(reservation)
		f.Close()
		return nil, fmt.Errorf("flow: mmap did not honor MAP_FIXED for mirror half")
	}

	mem := unsafeBytesFromPointer(base, 2*size)

	return &Circ{
		file: f,
		mem:  mem,
		size: size,
	}, nil
}

// Len returns the buffer's capacity in bytes.
func (c *Circ) Len() int {
	return c.size
}

// Close releases both mappings, the anonymous reservation, and the backing
// file. It is idempotent; calling it more than once is a no-op after the
// first successful call.
func (c *Circ) Close() error {
	if c.mem == nil {
		return nil
	}
	err := syscall.Munmap(c.mem)
	c.mem = nil
	if cerr := c.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// slice returns the byte range [start, start+n), where start and start+n
// may each exceed c.size; the double mapping guarantees this is always a
// valid contiguous view into the same underlying pages.
func (c *Circ) slice(start, n int) []byte {
	return c.mem[start : start+n]
}

// vim: foldmethod=marker
