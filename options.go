package main

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/mistlab/bigforth/internal/flushio"
)

// Option configures an Interp at construction time, the way gothird's
// VM is built from VMOption values.
type Option interface{ apply(in *Interp) }

var defaultOptions = Options(
	WithInput(bytes.NewReader(nil)),
	WithOutput(ioutil.Discard),
)

// Options folds a slice of Option into one, flattening nested Options
// the way the teacher's VMOptions does.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*Interp) {}

type options []Option

func (opts options) apply(in *Interp) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(in)
		}
	}
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type logfOption func(mess string, args ...interface{})
type traceOption bool

// WithInput sets the reader the REPL driver feeds to the outer
// interpreter; embedders (and tests) use this in place of stdin.
func WithInput(r io.Reader) Option { return inputOption{r} }

// WithOutput sets where DOT, DOT_QUOTE, CR, DOT_S, WORDS and error
// messages are written.
func WithOutput(w io.Writer) Option { return outputOption{w} }

// WithLogf installs a printf-style hook that receives a trace line per
// executed instruction when tracing is on (WithTrace). Tracing is off
// by default: the CLI installs a logger but takes no flags and never
// turns tracing on.
func WithLogf(logf func(mess string, args ...interface{})) Option { return logfOption(logf) }

// WithTrace turns instruction/token tracing on or off; meaningless
// without WithLogf also set.
func WithTrace(on bool) Option { return traceOption(on) }

func (o inputOption) apply(in *Interp) { in.input = o.Reader }

func (o outputOption) apply(in *Interp) {
	if in.out != nil {
		in.out.Flush()
	}
	in.out = flushio.NewWriteFlusher(o.Writer)
}

func (o logfOption) apply(in *Interp) { in.logf = o }

func (o traceOption) apply(in *Interp) { in.trace = bool(o) }
