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

package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hz.tools/flow"
	"hz.tools/flow/blocks"
	"hz.tools/flow/mock"
)

func TestMockSourceBoundedByMaxSamples(t *testing.T) {
	gen := mock.New(mock.Config{SampleRate: 8000, Generator: mock.Tone(1000, 8000)})
	src, err := blocks.NewMockSource(gen, 10)
	require.NoError(t, err)

	g := flow.NewGraph()
	g.Add(src)

	var total int
	for i := 0; i < 5; i++ {
		status, err := src.Work()
		require.NoError(t, err)
		total += src.Out().Readable()
		src.Out().Clear()
		if status == flow.StatusEOF {
			break
		}
	}
	assert.LessOrEqual(t, total, 10)
}

// vim: foldmethod=marker
