package chain

import (
	"context"

	"github.com/chaincall/chain-go/pkg/history"
	"github.com/chaincall/chain-go/pkg/monitoring"
	"github.com/chaincall/chain-go/pkg/utils"
)

// Fallbacks wraps a primary runnable with alternates that are tried in
// order when the primary fails. There is no retry of a failed chain, no
// backoff and no circuit breaking: each alternate is invoked once with
// the original input.
type Fallbacks struct {
	name      string
	primary   Runnable
	fallbacks []Runnable
	logger    *utils.Logger
	monitor   *monitoring.Monitor
	store     *history.Store
}

// WithFallbacks wraps the primary runnable with alternate runnables
func WithFallbacks(name string, primary Runnable, fallbacks ...Runnable) *Fallbacks {
	return &Fallbacks{
		name:      name,
		primary:   primary,
		fallbacks: fallbacks,
		logger:    utils.NewLogger(false).WithPrefix("chain " + name),
	}
}

// Name returns the wrapper's name
func (f *Fallbacks) Name() string {
	return f.name
}

// WithLogger sets the logger used for fallback logging
func (f *Fallbacks) WithLogger(logger *utils.Logger) *Fallbacks {
	f.logger = logger
	return f
}

// WithMonitor enables fallback activation metrics
func (f *Fallbacks) WithMonitor(monitor *monitoring.Monitor) *Fallbacks {
	f.monitor = monitor
	return f
}

// WithHistory enables invocation recording for this wrapper. Records
// carry FallbackUsed when the primary failed and an alternate ran.
func (f *Fallbacks) WithHistory(store *history.Store) *Fallbacks {
	f.store = store
	return f
}

// Invoke runs the primary runnable, substituting alternates on failure.
// Every attempt receives a copy of the original input, never partial
// output from a failed attempt. The first success wins; if everything
// fails, the primary's error is returned wrapped in a *FallbackError.
func (f *Fallbacks) Invoke(ctx context.Context, input Values) (Values, error) {
	output, primaryErr := f.primary.Invoke(ctx, input.Clone())
	if primaryErr == nil {
		f.record(ctx, input, output, nil, false)
		return output, nil
	}
	if len(f.fallbacks) == 0 {
		f.record(ctx, input, nil, primaryErr, false)
		return nil, primaryErr
	}

	f.logger.Warning("primary failed, trying %d fallbacks: %v", len(f.fallbacks), primaryErr)

	for i, fallback := range f.fallbacks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if f.monitor != nil {
			f.monitor.RecordFallback(f.name, i+1)
		}

		output, err := fallback.Invoke(ctx, input.Clone())
		if err == nil {
			f.logger.Info("fallback %d succeeded", i+1)
			f.record(ctx, input, output, nil, true)
			return output, nil
		}
		f.logger.Warning("fallback %d failed: %v", i+1, err)
	}

	failure := &FallbackError{
		Primary:  primaryErr,
		Attempts: len(f.fallbacks) + 1,
	}
	f.record(ctx, input, nil, failure, true)
	return nil, failure
}

// record persists the wrapper's run if a history store is configured
func (f *Fallbacks) record(ctx context.Context, input, output Values, invokeErr error, fallbackUsed bool) {
	if f.store == nil {
		return
	}

	record := &history.Record{
		Chain:        f.name,
		Input:        encodeValues(input),
		FallbackUsed: fallbackUsed,
	}
	if invokeErr != nil {
		record.Error = invokeErr.Error()
	} else {
		record.Output = encodeValues(output)
	}

	if err := f.store.Save(ctx, record); err != nil {
		f.logger.Error("failed to record invocation: %v", err)
	}
}
