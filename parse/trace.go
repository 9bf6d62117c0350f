package parse

import (
	"sync/atomic"

	"github.com/tliron/commonlog"
)

var (
	log     = commonlog.GetLogger("kipaco.parse")
	tracing atomic.Bool
)

// SetTracing turns the output of Trace parsers on or off.
func SetTracing(on bool) {
	tracing.Store(on)
}

// Trace logs each attempt of p and its outcome at debug level while tracing is on.
// It does not change what p returns.
func Trace[T any](name string, p Parser[T]) Parser[T] {
	return New(func(in Input) Result[T] {
		if !tracing.Load() {
			return p.Parse(in)
		}
		start := in.Position()
		log.Debugf("%s: try at %s", name, start)
		res := p.Parse(in)
		switch r := res.(type) {
		case Success[T]:
			log.Debugf("%s: matched %s-%s", name, start, r.Remaining.Position())
		case Failure[T]:
			log.Debugf("%s: failed at %s: %s", name, r.Err.Position.Position(), r.Err.Message)
		}
		return res
	})
}
