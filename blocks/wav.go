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
	"os"

	"github.com/go-audio/wav"

	"hz.tools/flow"
)

// WAVSource decodes a mono (or channel-0-only) WAV file into a float32
// sample Stream, normalized to [-1, 1], so a recorded audio clip can feed
// the same demodulator chain a live receiver would. Unlike FileSource[T],
// which streams incrementally, WAVSource decodes the whole file up front:
// WAV's RIFF framing has no fixed-width raw-sample contract to stream
// against.
type WAVSource struct {
	samples    []float32
	sampleRate uint32
	out        *flow.Stream[float32]
	pos        int
}

// NewWAVSource opens and fully decodes the WAV file at path.
func NewWAVSource(path string) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blocks: opening %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("blocks: decoding WAV %s: %w", path, err)
	}
	if len(buf.Data) == 0 {
		return nil, fmt.Errorf("blocks: %s contains no PCM data", path)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	fullScale := float32(int(1) << (bitDepth - 1))

	chans := buf.Format.NumChannels
	if chans < 1 {
		chans = 1
	}
	samples := make([]float32, 0, len(buf.Data)/chans)
	for i := 0; i < len(buf.Data); i += chans {
		samples = append(samples, float32(buf.Data[i])/fullScale)
	}

	out, err := flow.NewStream[float32]()
	if err != nil {
		return nil, err
	}
	return &WAVSource{
		samples:    samples,
		sampleRate: uint32(buf.Format.SampleRate),
		out:        out,
	}, nil
}

// Out returns the Stream this source writes into.
func (w *WAVSource) Out() *flow.Stream[float32] {
	return w.out
}

// SampleRate returns the decoded file's sample rate, in Hz.
func (w *WAVSource) SampleRate() uint32 {
	return w.sampleRate
}

// BlockName implements flow.Block.
func (w *WAVSource) BlockName() string {
	return "WAVSource"
}

// Inputs implements flow.Inspectable.
func (w *WAVSource) Inputs() []flow.Handle { return nil }

// Outputs implements flow.Inspectable.
func (w *WAVSource) Outputs() []flow.Handle {
	return []flow.Handle{w.out}
}

// Work implements flow.Block.
func (w *WAVSource) Work() (flow.Status, error) {
	if w.pos >= len(w.samples) {
		w.out.CloseWrite()
		return flow.StatusEOF, nil
	}
	dst := w.out.WritableSlice()
	n := len(dst)
	if remaining := len(w.samples) - w.pos; n > remaining {
		n = remaining
	}
	if n == 0 {
		return flow.StatusOK, nil
	}
	copy(dst[:n], w.samples[w.pos:w.pos+n])
	w.out.Produce(n)
	w.pos += n
	return flow.StatusOK, nil
}

// vim: foldmethod=marker
