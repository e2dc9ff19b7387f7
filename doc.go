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

// Package flow implements a small signal-processing graph runtime: typed
// sample Streams backed by a mirror-mapped circular Buffer, Blocks that
// consume and produce them, and a Graph that drives a collection of Blocks
// to completion.
//
// A typical graph is built by hand, source to sink (error handling
// elided):
//
//	src, _ := blocks.NewFileSource[complex64]("capture.c64")
//	flt, _ := blocks.NewSinglePoleIIR("lowpass", src.Out(), 0.2)
//	sink := blocks.NewDebugSink(os.Stdout, flt.Out())
//
//	g := flow.NewGraph()
//	g.Add(src)
//	g.Add(flt)
//	g.Add(sink)
//
//	if err := g.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// Concrete DSP blocks (filters, demodulators, file/audio codecs) live in
// hz.tools/flow/blocks; this package only implements the runtime they plug
// into. Logging, configuration and CLI argument parsing are left to callers
// (see cmd/flowctl for a worked example).
package flow

// vim: foldmethod=marker
