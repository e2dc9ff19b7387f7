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

// Command flowctl assembles a small Bell-202-style receive chain - a
// complex sample source, a single-pole IIR low-pass, a gain stage, and a
// sink - end to end using only hz.tools/flow's public API.
//
// It deliberately stops short of HDLC deframing and AX.25 parsing: those
// protocol blocks live outside this module, so flowctl demonstrates wiring
// a graph together, not decoding APRS packets.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hz.tools/flow"
	"hz.tools/flow/blocks"
	"hz.tools/flow/mock"
	"hz.tools/rf"
)

type options struct {
	input      string
	wav        bool
	output     string
	sigmf      string
	alpha      float32
	gain       float32
	sampleRate uint
	centerFreq float64
	mockTone   float64
	mockSecs   float64
	verbose    bool
	parallel   int
}

func main() {
	var opt options

	root := &cobra.Command{
		Use:   "flowctl",
		Short: "assemble and run a small hz.tools/flow signal-processing graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opt)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opt.input, "in", "", "path to a raw little-endian complex64 capture file; if empty, a synthetic tone source is used")
	flags.BoolVar(&opt.wav, "wav", false, "treat --in as a WAV file instead of a raw complex64 capture")
	flags.StringVar(&opt.output, "out", "", "path to write the processed raw complex64 stream (required)")
	flags.StringVar(&opt.sigmf, "sigmf", "", "if set, write a SigMF metadata sidecar alongside --out")
	flags.Float32Var(&opt.alpha, "alpha", 0.2, "single-pole IIR low-pass alpha, in [0, 1]")
	flags.Float32Var(&opt.gain, "gain", 1.0, "linear gain applied after filtering")
	flags.UintVar(&opt.sampleRate, "rate", 48000, "sample rate, in Hz, of the input source")
	flags.Float64Var(&opt.centerFreq, "freq", 0, "nominal center frequency, in Hz, recorded in the SigMF sidecar")
	flags.Float64Var(&opt.mockTone, "mock-tone", 1000, "tone frequency, in Hz, for the synthetic source used when --in is empty")
	flags.Float64Var(&opt.mockSecs, "mock-seconds", 1, "duration, in seconds, of the synthetic source used when --in is empty")
	flags.BoolVar(&opt.verbose, "verbose", false, "enable debug-level logging")
	flags.IntVar(&opt.parallel, "parallel", 0, "if > 0, run the graph with Graph.RunParallel at this width instead of Graph.Run")
	root.MarkFlagRequired("out")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "flowctl:", err)
		os.Exit(1)
	}
}

func run(opt options) error {
	log, err := newLogger(opt.verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	g := flow.NewGraph()

	complexIn, err := buildSource(g, opt, log)
	if err != nil {
		return err
	}

	iir, err := blocks.NewSinglePoleIIR("iir", complexIn, opt.alpha)
	if err != nil {
		return fmt.Errorf("building IIR filter: %w", err)
	}
	g.Add(iir)
	log.Debugw("registered block", "name", iir.BlockName(), "alpha", opt.alpha)

	gainBlock, err := blocks.NewGain("gain", iir.Out(), opt.gain)
	if err != nil {
		return fmt.Errorf("building gain stage: %w", err)
	}
	g.Add(gainBlock)
	log.Debugw("registered block", "name", gainBlock.BlockName(), "gain", opt.gain)

	finalOut := gainBlock.Out()
	if opt.sigmf != "" {
		sigmfBlock, err := blocks.NewSigMFWriter[complex64](opt.sigmf, float64(opt.sampleRate), rf.Hz(opt.centerFreq), finalOut)
		if err != nil {
			return fmt.Errorf("building SigMF writer: %w", err)
		}
		g.Add(sigmfBlock)
		finalOut = sigmfBlock.Out()
		log.Debugw("registered block", "name", sigmfBlock.BlockName(), "path", opt.sigmf)
	}

	sink, err := blocks.NewFileSink[complex64](opt.output, finalOut)
	if err != nil {
		return fmt.Errorf("building file sink: %w", err)
	}
	defer sink.Close()
	g.Add(sink)
	log.Debugw("registered block", "name", sink.BlockName(), "path", opt.output)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("received interrupt, cancelling graph")
		g.CancelToken().Cancel()
	}()

	start := time.Now()
	if opt.parallel > 0 {
		err = g.RunParallel(ctx, opt.parallel)
	} else {
		err = g.Run()
	}
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("graph run failed: %w", err)
	}

	log.Info(g.GenerateStats(elapsed))
	return nil
}

// buildSource wires the chosen input mode (raw capture, WAV, or synthetic
// mock) and registers it with g, returning the complex64 Stream the rest of
// the chain reads from. WAV input is float32-only (mono audio), so it is
// widened to complex64 with a zero imaginary component to keep the rest of
// the chain uniform.
func buildSource(g *flow.Graph, opt options, log *zap.SugaredLogger) (*flow.Stream[complex64], error) {
	switch {
	case opt.input != "" && opt.wav:
		wavSrc, err := blocks.NewWAVSource(opt.input)
		if err != nil {
			return nil, fmt.Errorf("building WAV source: %w", err)
		}
		g.Add(wavSrc)
		log.Debugw("registered block", "name", wavSrc.BlockName(), "path", opt.input, "rate", wavSrc.SampleRate())

		widen, err := flow.NewStream[complex64]()
		if err != nil {
			return nil, err
		}
		toComplex := flow.NewMapConvert("wav-to-complex", wavSrc.Out(), widen, func(s float32) complex64 {
			return complex(s, 0)
		})
		g.Add(toComplex)
		return toComplex.Out(), nil

	case opt.input != "":
		fileSrc, err := blocks.NewFileSource[complex64](opt.input)
		if err != nil {
			return nil, fmt.Errorf("building file source: %w", err)
		}
		g.Add(fileSrc)
		log.Debugw("registered block", "name", fileSrc.BlockName(), "path", opt.input)
		return fileSrc.Out(), nil

	default:
		gen := mock.New(mock.Config{
			CenterFrequency: rf.Hz(opt.centerFreq),
			SampleRate:      opt.sampleRate,
			Generator:       mock.Tone(rf.Hz(opt.mockTone), int(opt.sampleRate)),
		})
		maxSamples := uint64(opt.mockSecs * float64(opt.sampleRate))
		mockSrc, err := blocks.NewMockSource(gen, maxSamples)
		if err != nil {
			return nil, fmt.Errorf("building mock source: %w", err)
		}
		g.Add(mockSrc)
		log.Debugw("registered block", "name", mockSrc.BlockName(), "tone", opt.mockTone, "seconds", opt.mockSecs)
		return mockSrc.Out(), nil
	}
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger.Sugar(), nil
}

// vim: foldmethod=marker
