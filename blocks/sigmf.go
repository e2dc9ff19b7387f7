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
	"encoding/json"
	"fmt"
	"os"

	"hz.tools/flow"
	"hz.tools/rf"
)

// sigMFVersion is the "core:version" field this package writes.
const sigMFVersion = "1.1.0"

// Capture is a SigMF capture segment. Optional fields are pointers so
// omitempty distinguishes "absent" from a legitimate zero.
type Capture struct {
	SampleStart uint64   `json:"core:sample_start"`
	GlobalIndex *uint64  `json:"core:global_index,omitempty"`
	HeaderBytes *uint64  `json:"core:header_bytes,omitempty"`
	Frequency   *float64 `json:"core:frequency,omitempty"`
	DateTime    *string  `json:"core:datetime,omitempty"`
}

// Global is the SigMF "global" object.
type Global struct {
	Datatype    string   `json:"core:datatype"`
	SampleRate  *float64 `json:"core:sample_rate,omitempty"`
	Version     string   `json:"core:version"`
	NumChannels *uint64  `json:"core:num_channels,omitempty"`
	Description *string  `json:"core:description,omitempty"`
	Author      *string  `json:"core:author,omitempty"`
	Recorder    *string  `json:"core:recorder,omitempty"`
}

// Meta is the top-level SigMF metadata document.
type Meta struct {
	Global     Global    `json:"global"`
	Captures   []Capture `json:"captures,omitempty"`
	Annotations []struct {
		SampleStart uint64 `json:"core:sample_start"`
	} `json:"annotations,omitempty"`
}

// datatypeFor maps the sample types this package writes (complex64 as
// interleaved I/Q float32 pairs, plain float32, uint8, uint32) onto SigMF's
// "core:datatype" strings.
func datatypeFor[T any]() string {
	var zero T
	switch any(zero).(type) {
	case complex64:
		return "cf32_le"
	case float32:
		return "rf32_le"
	case uint8:
		return "ru8"
	case uint32:
		return "ru32_le"
	default:
		return "unknown"
	}
}

// WriteSigMF writes the SigMF metadata sidecar file at path, describing a
// recording of element type T at sampleRate, centered on freq. It is a
// one-shot helper (not a Block), callable after a FileSink[T] finishes, or
// wrapped by SigMFWriter to run once a Graph drains.
func WriteSigMF[T any](path string, sampleRate float64, freq rf.Hz) error {
	f := float64(freq)
	meta := Meta{
		Global: Global{
			Datatype:   datatypeFor[T](),
			Version:    sigMFVersion,
			SampleRate: &sampleRate,
		},
		Captures: []Capture{{SampleStart: 0, Frequency: &f}},
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("blocks: marshaling SigMF metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("blocks: writing SigMF metadata %s: %w", path, err)
	}
	return nil
}

// SigMFWriter is a sink-adjacent Block: it passes T samples through
// unmodified (so it can be wired inline in a chain ahead of a FileSink) and,
// once its input reaches EOF, writes the SigMF sidecar once. This lets a
// caller Add it to a Graph and have the metadata appear automatically when
// the run completes, rather than calling WriteSigMF by hand after g.Run().
type SigMFWriter[T any] struct {
	path       string
	sampleRate float64
	freq       rf.Hz
	in         *flow.Stream[T]
	out        *flow.Stream[T]
	written    bool
}

// NewSigMFWriter builds a SigMFWriter that relays in to a freshly allocated
// output Stream, writing the sidecar at path once in reaches EOF.
func NewSigMFWriter[T any](path string, sampleRate float64, freq rf.Hz, in *flow.Stream[T]) (*SigMFWriter[T], error) {
	out, err := flow.NewStream[T]()
	if err != nil {
		return nil, err
	}
	return &SigMFWriter[T]{path: path, sampleRate: sampleRate, freq: freq, in: in, out: out}, nil
}

// Out returns the passthrough output Stream.
func (w *SigMFWriter[T]) Out() *flow.Stream[T] {
	return w.out
}

// BlockName implements flow.Block.
func (w *SigMFWriter[T]) BlockName() string {
	return "SigMFWriter"
}

// Inputs implements flow.Inspectable.
func (w *SigMFWriter[T]) Inputs() []flow.Handle {
	return []flow.Handle{w.in}
}

// Outputs implements flow.Inspectable.
func (w *SigMFWriter[T]) Outputs() []flow.Handle {
	return []flow.Handle{w.out}
}

// Work implements flow.Block.
func (w *SigMFWriter[T]) Work() (flow.Status, error) {
	n := w.in.Readable()
	if out := w.out.Writable(); out < n {
		n = out
	}
	if n > 0 {
		w.out.Write(w.in.Slice()[:n])
		w.in.Consume(n)
	}
	if w.in.Readable() == 0 && w.in.Done() {
		if !w.written {
			w.written = true
			if err := WriteSigMF[T](w.path, w.sampleRate, w.freq); err != nil {
				return flow.StatusOK, err
			}
		}
		w.out.CloseWrite()
		return flow.StatusEOF, nil
	}
	return flow.StatusOK, nil
}

// vim: foldmethod=marker
