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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hz.tools/flow"
	"hz.tools/flow/blocks"
)

func TestDebugSinkPrintsAndDrains(t *testing.T) {
	in, err := flow.NewStream[float32]()
	require.NoError(t, err)

	var buf bytes.Buffer
	sink := blocks.NewDebugSink(&buf, in)

	in.Write([]float32{1, 2})
	in.CloseWrite()

	status, err := sink.Work()
	require.NoError(t, err)
	assert.Equal(t, flow.StatusEOF, status)
	assert.Equal(t, 2, strings.Count(buf.String(), "debug:"))
	assert.Equal(t, 0, in.Readable())
}

// vim: foldmethod=marker
