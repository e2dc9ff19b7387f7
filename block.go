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

package flow

// Status is the return value of a Block's Work call, telling the Graph
// whether to schedule the block again.
type Status int

const (
	// StatusOK means the block may produce more output in the future and
	// should be scheduled again.
	StatusOK Status = iota

	// StatusEOF means this block will never produce more output and
	// should never be scheduled again. Downstream blocks are still run
	// until their input streams drain.
	StatusEOF
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Block is a signal-processing node: it reads some prefix of each input
// Stream's readable samples, writes zero or more samples to each output
// Stream, consumes exactly what it read, and reports whether it may produce
// more output in the future.
//
// Work MUST NOT block indefinitely. If no progress is currently possible it
// should return (StatusOK, nil) and let the Graph call it again once
// upstream has produced or downstream has drained.
type Block interface {
	// BlockName returns a static, human-readable name for diagnostics; it
	// names the block's kind, not a particular instance.
	BlockName() string

	// Work processes one bounded batch of work. See the type doc for the
	// contract.
	Work() (Status, error)
}

// Inspectable is an optional interface a Block may implement to expose the
// Streams it reads from and writes to, letting Graph auto-discover wiring
// for drain/EOF bookkeeping instead of requiring every block to register
// its streams by hand.
type Inspectable interface {
	// Inputs returns the Handles this block reads from.
	Inputs() []Handle

	// Outputs returns the Handles this block writes to.
	Outputs() []Handle
}

// vim: foldmethod=marker
