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

package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hz.tools/flow"
)

func TestMapDoublesValues(t *testing.T) {
	in, err := flow.NewStream[int]()
	require.NoError(t, err)
	defer in.Close()
	out, err := flow.NewStream[int]()
	require.NoError(t, err)
	defer out.Close()

	m := flow.NewMap("double", in, out, func(v int) int { return v * 2 })
	assert.Equal(t, "double", m.BlockName())

	in.Write([]int{1, 2, 3})
	status, err := m.Work()
	require.NoError(t, err)
	assert.Equal(t, flow.StatusOK, status)
	assert.Equal(t, []int{2, 4, 6}, out.Slice()[:3])
}

func TestMapPropagatesEOF(t *testing.T) {
	in, err := flow.NewStream[int]()
	require.NoError(t, err)
	defer in.Close()
	out, err := flow.NewStream[int]()
	require.NoError(t, err)
	defer out.Close()

	m := flow.NewMap("ident", in, out, func(v int) int { return v })

	in.Write([]int{7})
	in.CloseWrite()

	status, err := m.Work()
	require.NoError(t, err)
	assert.Equal(t, flow.StatusOK, status)
	assert.Equal(t, 1, out.Readable())
	out.Consume(1)

	status, err = m.Work()
	require.NoError(t, err)
	assert.Equal(t, flow.StatusEOF, status)
	assert.True(t, out.Done())
}

func TestMapConvertWidensType(t *testing.T) {
	in, err := flow.NewStream[int32]()
	require.NoError(t, err)
	defer in.Close()
	out, err := flow.NewStream[float64]()
	require.NoError(t, err)
	defer out.Close()

	mc := flow.NewMapConvert("widen", in, out, func(v int32) float64 { return float64(v) / 2 })

	in.Write([]int32{1, 2, 3})
	status, err := mc.Work()
	require.NoError(t, err)
	assert.Equal(t, flow.StatusOK, status)
	assert.Equal(t, []float64{0.5, 1, 1.5}, out.Slice()[:3])
}

// vim: foldmethod=marker
