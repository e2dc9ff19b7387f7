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

// Package mock implements a synthetic complex-sample generator standing in
// for a real receiver: a Generator function fills a sample window
// deterministically, so blocks.MockSource (and this module's own tests)
// can exercise a full graph without a captured recording or an attached
// radio.
package mock

import (
	"math"

	"hz.tools/rf"
)

// Config is the set of parameters describing a synthetic source.
type Config struct {
	// CenterFrequency is the nominal tuned frequency this source claims to
	// be observing, in Hz, as reported by Source.CenterFrequency. It does
	// not affect the generated samples.
	CenterFrequency rf.Hz

	// SampleRate is the number of complex samples per second the Generator
	// is assumed to produce.
	SampleRate uint

	// Generator produces len(buf) complex samples starting at sample index
	// startIndex (so a stateless Generator can still produce a
	// phase-continuous signal across repeated calls). If nil, New uses a DC
	// Tone as a default.
	Generator func(buf []complex64, startIndex uint64)

	// NoiseAmplitude, if non-zero, adds pseudo-noise of this peak amplitude
	// on top of whatever Generator produces, the synthetic analog of a
	// receiver's noise floor.
	NoiseAmplitude float32
}

// Source is a stateful synthetic complex-sample generator. It is not itself
// a flow.Block: blocks.MockSource wraps a Source to adapt it to the Block
// contract.
type Source struct {
	cfg   Config
	index uint64
	rng   uint64 // xorshift64 state, used only when NoiseAmplitude != 0
}

// New returns a Source configured per cfg.
func New(cfg Config) *Source {
	if cfg.Generator == nil {
		cfg.Generator = Tone(0, 1)
	}
	return &Source{cfg: cfg, rng: 0x9e3779b97f4a7c15}
}

// CenterFrequency returns the configured center frequency.
func (s *Source) CenterFrequency() rf.Hz {
	return s.cfg.CenterFrequency
}

// SampleRate returns the configured sample rate.
func (s *Source) SampleRate() uint {
	return s.cfg.SampleRate
}

// Fill writes len(buf) synthetic samples into buf and advances the Source's
// internal sample index, so the next Fill call continues the waveform
// phase-continuously.
func (s *Source) Fill(buf []complex64) {
	s.cfg.Generator(buf, s.index)
	s.index += uint64(len(buf))
	if s.cfg.NoiseAmplitude != 0 {
		for i := range buf {
			buf[i] += complex(s.noise(), s.noise())
		}
	}
}

// noise returns the next pseudo-random value in [-NoiseAmplitude,
// NoiseAmplitude], using a xorshift64 generator - deterministic given a
// fixed seed, which is what a reproducible synthetic fixture needs; this is
// not a cryptographic or even statistically rigorous noise source.
func (s *Source) noise() float32 {
	s.rng ^= s.rng << 13
	s.rng ^= s.rng >> 7
	s.rng ^= s.rng << 17
	u := float64(s.rng%1_000_000) / 1_000_000.0 // [0, 1)
	return s.cfg.NoiseAmplitude * float32(2*u-1)
}

// Tone returns a Generator producing a continuous complex tone at freq Hz,
// sampled at sampleRate, with unit amplitude - the synthetic-source analog
// of testutils.CW, shaped as a Config.Generator closure so it can be swapped
// for any other Generator-shaped waveform (Silence, a frequency sweep)
// without changing Source itself.
func Tone(freq rf.Hz, sampleRate int) func([]complex64, uint64) {
	tau := math.Pi * 2
	return func(buf []complex64, startIndex uint64) {
		for i := range buf {
			now := float64(startIndex+uint64(i)) / float64(sampleRate)
			buf[i] = complex(
				float32(math.Cos(tau*float64(freq)*now)),
				float32(math.Sin(tau*float64(freq)*now)),
			)
		}
	}
}

// Silence is a Generator that emits all-zero samples, useful as a baseline
// to add NoiseAmplitude on top of without any carrier.
func Silence(buf []complex64, _ uint64) {
	for i := range buf {
		buf[i] = 0
	}
}

// vim: foldmethod=marker
