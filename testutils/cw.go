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

// Package testutils holds small synthetic signal generators shared by this
// module's own tests; it is not part of the public graph API.
package testutils

import (
	"math"

	"hz.tools/rf"
)

// CW fills buf with a complex carrier wave at freq, sampled at sampleRate,
// starting at the given phase (radians).
func CW(buf []complex64, freq rf.Hz, sampleRate int, phase float64) {
	var (
		carrierFreq = float64(freq)
		tau         = math.Pi * 2
	)
	for i := range buf {
		now := float64(i) / float64(sampleRate)
		buf[i] = complex(
			float32(math.Cos(tau*carrierFreq*now+phase)),
			float32(math.Sin(tau*carrierFreq*now+phase)),
		)
	}
}

// AFSKTone renders bits as a Bell-202-style two-tone AFSK signal: each bit
// holds for samplesPerBit samples of either markFreq or spaceFreq, phase
// continuous across bit boundaries. It is a synthetic fixture for
// exercising a demodulator chain end to end without a captured recording.
func AFSKTone(bits []bool, samplesPerBit int, markFreq, spaceFreq rf.Hz, sampleRate int) []complex64 {
	out := make([]complex64, len(bits)*samplesPerBit)
	tau := math.Pi * 2
	phase := 0.0
	for i, bit := range bits {
		freq := spaceFreq
		if bit {
			freq = markFreq
		}
		step := tau * float64(freq) / float64(sampleRate)
		for j := 0; j < samplesPerBit; j++ {
			out[i*samplesPerBit+j] = complex(float32(math.Cos(phase)), float32(math.Sin(phase)))
			phase += step
		}
	}
	return out
}

// vim: foldmethod=marker
