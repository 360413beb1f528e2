// Package signalctx adapts os/signal notification to a context.Context so
// long-running work (parsing, linting) can be cancelled the same way it
// would be cancelled by an explicit CancelFunc.
package signalctx

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

// New returns a context that is cancelled either by calling the returned
// CancelFunc or by the process receiving one of sigs. ctx.Err() reports
// the signal that arrived (its String method plus " signal", e.g.
// "hangup signal") rather than context.Canceled when a signal triggered
// the cancellation.
func New(sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sigs...)
	sctx := &signalContext{Context: ctx}
	go func() {
		select {
		case sig := <-sigCh:
			sctx.setErr(sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return sctx, cancel
}

// signalContext wraps a context.Context to report the delivered signal
// (rather than context.Canceled) from Err once a signal has fired.
type signalContext struct {
	context.Context
	mu  sync.Mutex
	err error
}

func (s *signalContext) setErr(sig os.Signal) {
	s.mu.Lock()
	s.err = signalError{sig}
	s.mu.Unlock()
}

func (s *signalContext) Err() error {
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Context.Err()
}

type signalError struct {
	sig os.Signal
}

func (e signalError) Error() string {
	return e.sig.String() + " signal"
}
