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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hz.tools/flow"
	"hz.tools/flow/blocks"
	"hz.tools/rf"
)

func TestWriteSigMF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture-meta.json")
	require.NoError(t, blocks.WriteSigMF[complex64](path, 48000, 1090*rf.MHz))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var meta blocks.Meta
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, "cf32_le", meta.Global.Datatype)
	assert.Equal(t, "1.1.0", meta.Global.Version)
	require.NotNil(t, meta.Global.SampleRate)
	assert.Equal(t, 48000.0, *meta.Global.SampleRate)
	require.Len(t, meta.Captures, 1)
	require.NotNil(t, meta.Captures[0].Frequency)
	assert.Equal(t, float64(1090*rf.MHz), *meta.Captures[0].Frequency)
}

func TestSigMFWriterPassthrough(t *testing.T) {
	in, err := flow.NewStream[complex64]()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "run-meta.json")
	w, err := blocks.NewSigMFWriter[complex64](path, 8000, 915*rf.MHz, in)
	require.NoError(t, err)

	in.Write([]complex64{1, 2, 3})
	in.CloseWrite()

	status, err := w.Work()
	require.NoError(t, err)
	assert.Equal(t, flow.StatusEOF, status)
	assert.Equal(t, []complex64{1, 2, 3}, w.Out().Slice())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

// vim: foldmethod=marker
