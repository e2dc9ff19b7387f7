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
	"hz.tools/flow"
	"hz.tools/flow/mock"
)

// MockSource adapts a mock.Source into a pure-source Block. Unlike a real
// receiver it never blocks and never runs out of samples on its own; pair
// it with maxSamples or an external CancelToken to bound a run.
type MockSource struct {
	src        *mock.Source
	out        *flow.Stream[complex64]
	maxSamples uint64 // 0 means unbounded
	emitted    uint64
}

// NewMockSource builds a MockSource driven by src, writing into a freshly
// allocated output Stream. maxSamples, if non-zero, caps the total number
// of samples the source will ever emit before returning StatusEOF; a
// generator with no underlying recording has no natural end of file, so
// something has to impose one.
func NewMockSource(src *mock.Source, maxSamples uint64) (*MockSource, error) {
	out, err := flow.NewStream[complex64]()
	if err != nil {
		return nil, err
	}
	return &MockSource{src: src, out: out, maxSamples: maxSamples}, nil
}

// Out returns the Stream this source writes into.
func (m *MockSource) Out() *flow.Stream[complex64] {
	return m.out
}

// BlockName implements flow.Block.
func (m *MockSource) BlockName() string {
	return "MockSource"
}

// Inputs implements flow.Inspectable.
func (m *MockSource) Inputs() []flow.Handle { return nil }

// Outputs implements flow.Inspectable.
func (m *MockSource) Outputs() []flow.Handle {
	return []flow.Handle{m.out}
}

// Work implements flow.Block.
func (m *MockSource) Work() (flow.Status, error) {
	if m.maxSamples != 0 && m.emitted >= m.maxSamples {
		m.out.CloseWrite()
		return flow.StatusEOF, nil
	}
	dst := m.out.WritableSlice()
	if m.maxSamples != 0 {
		if remaining := m.maxSamples - m.emitted; uint64(len(dst)) > remaining {
			dst = dst[:remaining]
		}
	}
	if len(dst) == 0 {
		return flow.StatusOK, nil
	}
	m.src.Fill(dst)
	m.out.Produce(len(dst))
	m.emitted += uint64(len(dst))
	return flow.StatusOK, nil
}

// vim: foldmethod=marker
