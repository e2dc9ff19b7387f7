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
	"fmt"

	"hz.tools/flow"
)

// ErrAlphaRange is returned when a SinglePoleIIR is constructed with alpha
// outside [0, 1].
var ErrAlphaRange = fmt.Errorf("blocks: IIR alpha must be in [0, 1]")

// Filterable is the set of sample element types the single-pole IIR filter
// supports. Go generics have no "multiply by a real scalar" constraint, so
// this package closes the set explicitly and dispatches with a type switch
// in scaleByAlpha.
type Filterable interface {
	float32 | complex64
}

// scaleByAlpha multiplies v by the real scalar a, for either of
// Filterable's two concrete instantiations.
func scaleByAlpha[T Filterable](v T, a float32) T {
	switch x := any(v).(type) {
	case float32:
		return any(x * a).(T)
	case complex64:
		return any(x * complex(a, 0)).(T)
	default:
		panic("blocks: unreachable Filterable case")
	}
}

// iirState holds the coefficients and feedback sample of a single-pole IIR.
type iirState[T Filterable] struct {
	alpha      float32
	oneMinusA  float32
	prevOutput T
}

func newIIRState[T Filterable](alpha float32) (*iirState[T], error) {
	if alpha < 0 || alpha > 1 {
		return nil, ErrAlphaRange
	}
	return &iirState[T]{alpha: alpha, oneMinusA: 1 - alpha}, nil
}

func (s *iirState[T]) filter(sample T) T {
	o := addT(scaleByAlpha(sample, s.alpha), scaleByAlpha(s.prevOutput, s.oneMinusA))
	s.prevOutput = o
	return o
}

// addT adds two Filterable values; like scaleByAlpha, implemented with a
// type switch in place of an arithmetic generic constraint Go doesn't have.
func addT[T Filterable](a, b T) T {
	switch x := any(a).(type) {
	case float32:
		return any(x + any(b).(float32)).(T)
	case complex64:
		return any(x + any(b).(complex64)).(T)
	default:
		panic("blocks: unreachable Filterable case")
	}
}

// NewSinglePoleIIR builds a single-pole IIR low-pass filter Block reading
// from in and writing a same-type, same-cardinality stream: y[n] = alpha *
// x[n] + (1-alpha) * y[n-1]. alpha must be in [0, 1]. The per-sample state
// lives in a closure over flow.Map, so the filter needs no Work of its own.
func NewSinglePoleIIR[T Filterable](name string, in *flow.Stream[T], alpha float32) (*flow.Map[T], error) {
	st, err := newIIRState[T](alpha)
	if err != nil {
		return nil, err
	}
	out, err := flow.NewStream[T]()
	if err != nil {
		return nil, err
	}
	return flow.NewMap(name, in, out, st.filter), nil
}

// vim: foldmethod=marker
