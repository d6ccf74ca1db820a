// Package chain composes model calls, tool-call parsing and tool
// execution into runnable sequences with fallback support.
package chain

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/chaincall/chain-go/pkg/history"
	"github.com/chaincall/chain-go/pkg/monitoring"
	"github.com/chaincall/chain-go/pkg/schema"
	"github.com/chaincall/chain-go/pkg/utils"
)

// Well-known value keys passed between steps
const (
	KeyInput        = "input"
	KeyMessages     = "messages"
	KeyMessage      = "message"
	KeyArguments    = "arguments"
	KeyRawArguments = "raw_arguments"
	KeyOutput       = "output"
)

// Values carries data between the steps of a chain
type Values map[string]any

// Clone returns a shallow copy of the values
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Runnable is a unit of work that can be invoked with input values
type Runnable interface {
	Invoke(ctx context.Context, input Values) (Values, error)
}

// Lambda adapts a function to the Runnable interface
type Lambda func(ctx context.Context, input Values) (Values, error)

// Invoke runs the wrapped function
func (f Lambda) Invoke(ctx context.Context, input Values) (Values, error) {
	return f(ctx, input)
}

// Sequence runs steps in order, feeding each step's output to the next
type Sequence struct {
	name    string
	steps   []Runnable
	logger  *utils.Logger
	monitor *monitoring.Monitor
	store   *history.Store
}

// NewSequence creates a named linear sequence of steps
func NewSequence(name string, steps ...Runnable) *Sequence {
	return &Sequence{
		name:   name,
		steps:  steps,
		logger: utils.NewLogger(false).WithPrefix("chain " + name),
	}
}

// Name returns the sequence name
func (s *Sequence) Name() string {
	return s.name
}

// WithLogger sets the logger used for step-level logging
func (s *Sequence) WithLogger(logger *utils.Logger) *Sequence {
	s.logger = logger
	return s
}

// WithMonitor enables metric collection for this sequence
func (s *Sequence) WithMonitor(monitor *monitoring.Monitor) *Sequence {
	s.monitor = monitor
	return s
}

// WithHistory enables invocation recording for this sequence
func (s *Sequence) WithHistory(store *history.Store) *Sequence {
	s.store = store
	return s
}

// Invoke runs all steps in order. The input values are not modified.
func (s *Sequence) Invoke(ctx context.Context, input Values) (Values, error) {
	start := time.Now()

	current := input.Clone()
	var err error

	for i, step := range s.steps {
		if ctx.Err() != nil {
			err = ctx.Err()
			break
		}

		current, err = step.Invoke(ctx, current)
		if err != nil {
			s.logger.Error("step %d failed: %v", i, err)
			break
		}
	}

	latency := time.Since(start)
	if s.monitor != nil {
		s.monitor.RecordInvocation(s.name, latency, err)
	}
	s.record(ctx, input, current, err)

	if err != nil {
		return nil, err
	}

	s.logger.Debug("completed in %v", latency)
	return current, nil
}

// record persists the invocation if a history store is configured
func (s *Sequence) record(ctx context.Context, input, output Values, invokeErr error) {
	if s.store == nil {
		return
	}

	record := &history.Record{
		Chain: s.name,
		Input: encodeValues(input),
	}
	if invokeErr != nil {
		record.Error = invokeErr.Error()

		var vErr *schema.ValidationError
		if errors.As(invokeErr, &vErr) {
			record.Output = vErr.Raw
		}
	} else {
		record.Output = encodeValues(output)
	}

	if err := s.store.Save(ctx, record); err != nil {
		s.logger.Error("failed to record invocation: %v", err)
	}
}

func encodeValues(values Values) string {
	encoded, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(encoded)
}
