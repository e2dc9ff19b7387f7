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

// Package blocks implements concrete, illustrative signal-processing Blocks
// on top of hz.tools/flow's core runtime: file and WAV sources/sinks, a
// single-pole IIR filter, a gain stage, a SigMF metadata sidecar writer, a
// synthetic mock receiver source and a debug sink. These are external
// collaborators of the core package: real, working code, but their DSP
// correctness is not a core invariant the way Buffer/Stream/Graph's are.
package blocks

import (
	"fmt"
	"io"
	"os"
	"unsafe"

	"hz.tools/flow"
)

// ErrShortWrite is returned by FileSink when the underlying file accepts
// fewer bytes than a fully-formed batch of samples.
var ErrShortWrite = fmt.Errorf("blocks: short write")

// FileSource is a pure-source Block that reads raw packed samples of type T
// from a file, one batch at a time, directly into its output Stream's
// writable window.
type FileSource[T any] struct {
	f   *os.File
	out *flow.Stream[T]
	eof bool
}

// NewFileSource opens path and returns a FileSource reading T samples from
// it into a freshly allocated output Stream.
func NewFileSource[T any](path string) (*FileSource[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blocks: opening %s: %w", path, err)
	}
	out, err := flow.NewStream[T]()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &FileSource[T]{f: f, out: out}, nil
}

// Out returns the Stream this source writes into.
func (s *FileSource[T]) Out() *flow.Stream[T] {
	return s.out
}

// BlockName implements flow.Block.
func (s *FileSource[T]) BlockName() string {
	return "FileSource"
}

// Inputs implements flow.Inspectable.
func (s *FileSource[T]) Inputs() []flow.Handle { return nil }

// Outputs implements flow.Inspectable.
func (s *FileSource[T]) Outputs() []flow.Handle {
	return []flow.Handle{s.out}
}

// Work implements flow.Block.
func (s *FileSource[T]) Work() (flow.Status, error) {
	if s.eof {
		return flow.StatusEOF, nil
	}
	dst := s.out.WritableSlice()
	if len(dst) == 0 {
		return flow.StatusOK, nil
	}
	n, err := io.ReadFull(s.f, byteViewOf(dst))
	nSamples := n / sampleSize[T]()
	if nSamples > 0 {
		s.out.Produce(nSamples)
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		s.eof = true
		s.out.CloseWrite()
		return flow.StatusEOF, nil
	}
	if err != nil {
		return flow.StatusOK, fmt.Errorf("blocks: FileSource read: %w", err)
	}
	return flow.StatusOK, nil
}

// Close closes the backing file.
func (s *FileSource[T]) Close() error {
	return s.f.Close()
}

// FileSink is a pure-sink Block writing raw packed samples of type T to a
// file, the output-side counterpart of FileSource.
type FileSink[T any] struct {
	f  *os.File
	in *flow.Stream[T]
}

// NewFileSink creates (truncating) path and returns a FileSink draining in
// into it.
func NewFileSink[T any](path string, in *flow.Stream[T]) (*FileSink[T], error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("blocks: creating %s: %w", path, err)
	}
	return &FileSink[T]{f: f, in: in}, nil
}

// BlockName implements flow.Block.
func (s *FileSink[T]) BlockName() string {
	return "FileSink"
}

// Inputs implements flow.Inspectable.
func (s *FileSink[T]) Inputs() []flow.Handle {
	return []flow.Handle{s.in}
}

// Outputs implements flow.Inspectable.
func (s *FileSink[T]) Outputs() []flow.Handle { return nil }

// Work implements flow.Block.
func (s *FileSink[T]) Work() (flow.Status, error) {
	src := s.in.Slice()
	if len(src) == 0 {
		if s.in.Done() {
			return flow.StatusEOF, nil
		}
		return flow.StatusOK, nil
	}
	raw := byteViewOf(src)
	n, err := s.f.Write(raw)
	if err != nil {
		return flow.StatusOK, fmt.Errorf("blocks: FileSink write: %w", err)
	}
	if n != len(raw) {
		return flow.StatusOK, ErrShortWrite
	}
	s.in.Consume(len(src))
	if s.in.Done() && s.in.Readable() == 0 {
		return flow.StatusEOF, nil
	}
	return flow.StatusOK, nil
}

// Close closes the backing file.
func (s *FileSink[T]) Close() error {
	return s.f.Close()
}

// sampleSize returns sizeof(T) via unsafe.Sizeof on the zero value; kept
// as a tiny helper rather than threading unsafe.Sizeof calls through every
// call site.
func sampleSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// byteViewOf reinterprets a []T as a []byte of the same backing array,
// assuming the host's native byte order matches the little-endian on-disk
// convention; on a big-endian host this would need an explicit
// binary.Write loop instead, which NewFileSource/NewFileSink do not
// currently special-case.
func byteViewOf[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*sampleSize[T]())
}

// vim: foldmethod=marker
