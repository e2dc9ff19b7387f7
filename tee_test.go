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

func TestTeeRequiresAnOutput(t *testing.T) {
	in, err := flow.NewStream[byte]()
	require.NoError(t, err)
	defer in.Close()

	_, err = flow.NewTee("nowhere", in)
	assert.Error(t, err)
}

func TestTeeDuplicatesToAllOutputs(t *testing.T) {
	in, err := flow.NewStream[byte]()
	require.NoError(t, err)
	defer in.Close()
	a, err := flow.NewStream[byte]()
	require.NoError(t, err)
	defer a.Close()
	b, err := flow.NewStream[byte]()
	require.NoError(t, err)
	defer b.Close()

	tee, err := flow.NewTee("split", in, a, b)
	require.NoError(t, err)

	in.Write([]byte{1, 2, 3})
	status, err := tee.Work()
	require.NoError(t, err)
	assert.Equal(t, flow.StatusOK, status)
	assert.Equal(t, []byte{1, 2, 3}, a.Slice()[:3])
	assert.Equal(t, []byte{1, 2, 3}, b.Slice()[:3])
}

func TestTeeHeldBackBySlowestOutput(t *testing.T) {
	in, err := flow.NewStreamSize[byte](4096)
	require.NoError(t, err)
	defer in.Close()
	fast, err := flow.NewStreamSize[byte](4096)
	require.NoError(t, err)
	defer fast.Close()
	slow, err := flow.NewStreamSize[byte](4096)
	require.NoError(t, err)
	defer slow.Close()

	tee, err := flow.NewTee("split", in, fast, slow)
	require.NoError(t, err)

	// Pre-fill slow's capacity so it has no writable room left.
	slow.Write(make([]byte, slow.Cap()))

	in.Write([]byte{9, 9, 9})
	_, err = tee.Work()
	require.NoError(t, err)

	assert.Equal(t, 0, fast.Readable())
	assert.Equal(t, 3, in.Readable())
}

// vim: foldmethod=marker
