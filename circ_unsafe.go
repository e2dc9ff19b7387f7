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

//go:build linux || darwin

package flow

import (
	"os"
	"syscall"
	"unsafe"
)

// mmapFixed re-maps the backing file at the exact virtual address "at",
// which must already be inside a reservation made by an earlier anonymous
// mmap (so the kernel is never asked to pick the address itself).
//
// The stdlib syscall.Mmap does not expose MAP_FIXED's address argument, so
// this goes straight to the mmap(2) syscall, the same way
// pault.ag/go/go-diskring's ring.go does for its own double-mapped ring.
func mmapFixed(f *os.File, at *byte, length int, offset int64) ([]byte, error) {
	addr, _, errno := syscall.Syscall6(
		syscall.SYS_MMAP,
		uintptr(unsafe.Pointer(at)),
		uintptr(length),
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_FIXED|syscall.MAP_SHARED,
		f.Fd(),
		uintptr(offset),
	)
	if errno != 0 {
		return nil, errno
	}
	return unsafeBytesFromPointer((*byte)(unsafe.Pointer(addr)), length), nil
}

func addPointer(p *byte, off uintptr) unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(p)) + off)
}

func unsafeBytesFromPointer(p *byte, length int) []byte {
	return unsafe.Slice(p, length)
}

// vim: foldmethod=marker
