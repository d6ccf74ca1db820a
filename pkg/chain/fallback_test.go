package chain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaincall/chain-go/pkg/history"
	"github.com/chaincall/chain-go/pkg/monitoring"
	"github.com/chaincall/chain-go/pkg/schema"
	"github.com/chaincall/chain-go/pkg/tools"
	"github.com/chaincall/chain-go/pkg/types"
)

const invalidCalcArgs = `{"operation": "multiply", "number1": 5, "number2": 2.1, "options": "potato"}`

func newCalcChain(t *testing.T, response *types.Message) *Sequence {
	t.Helper()

	provider := &stubProvider{responses: []*types.Message{response}}
	seq, err := ToolChain("calc", provider, &tools.Calculator{})
	require.NoError(t, err)
	return seq
}

func TestFallbackRecoversFromValidationFailure(t *testing.T) {
	// The primary model answers with a string where the schema requires
	// an object, the fallback model answers correctly.
	primary := newCalcChain(t, toolCallMessage("calculator", invalidCalcArgs))
	fallback := newCalcChain(t, toolCallMessage("calculator", validCalcArgs))

	monitor := monitoring.NewMonitor()
	wrapped := WithFallbacks("calc", primary, fallback).WithMonitor(monitor)

	output, err := wrapped.Invoke(context.Background(), Values{KeyInput: "what is 5 times 2.1?"})
	require.NoError(t, err)
	assert.Equal(t, "10.5", output[KeyOutput])

	stats := monitor.Stats("calc")
	assert.Equal(t, 1, stats.FallbackActivations)
}

func TestFallbackRecordsRecoveredRun(t *testing.T) {
	primary := newCalcChain(t, toolCallMessage("calculator", invalidCalcArgs))
	fallback := newCalcChain(t, toolCallMessage("calculator", validCalcArgs))

	store, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	wrapped := WithFallbacks("calc", primary, fallback).WithHistory(store)

	_, err = wrapped.Invoke(context.Background(), Values{KeyInput: "what is 5 times 2.1?"})
	require.NoError(t, err)

	records, err := store.Recent(context.Background(), "calc", 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].FallbackUsed)
	assert.Contains(t, records[0].Output, "10.5")
	assert.Empty(t, records[0].Error)
}

func TestFallbackRecordsPrimarySuccess(t *testing.T) {
	primary := newCalcChain(t, toolCallMessage("calculator", validCalcArgs))

	store, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	wrapped := WithFallbacks("calc", primary).WithHistory(store)

	_, err = wrapped.Invoke(context.Background(), Values{KeyInput: "what is 5 times 2.1?"})
	require.NoError(t, err)

	records, err := store.Recent(context.Background(), "calc", 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].FallbackUsed)
}

func TestFallbackPrimarySuccessSkipsFallbacks(t *testing.T) {
	primary := newCalcChain(t, toolCallMessage("calculator", validCalcArgs))
	fallback := Lambda(func(ctx context.Context, input Values) (Values, error) {
		t.Fatal("fallback must not run when primary succeeds")
		return nil, nil
	})

	output, err := WithFallbacks("calc", primary, fallback).Invoke(context.Background(), Values{KeyInput: "5 times 2.1"})
	require.NoError(t, err)
	assert.Equal(t, "10.5", output[KeyOutput])
}

func TestFallbackAllFail(t *testing.T) {
	primary := newCalcChain(t, toolCallMessage("calculator", invalidCalcArgs))
	fallback := newCalcChain(t, toolCallMessage("calculator", invalidCalcArgs))

	_, err := WithFallbacks("calc", primary, fallback).Invoke(context.Background(), Values{KeyInput: "5 times 2.1"})
	require.Error(t, err)

	var fErr *FallbackError
	require.True(t, errors.As(err, &fErr))
	assert.Equal(t, 2, fErr.Attempts)

	// The primary's validation error is preserved
	var vErr *schema.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, invalidCalcArgs, vErr.Raw)
}

func TestFallbackWithoutAlternates(t *testing.T) {
	boom := fmt.Errorf("primary exploded")
	primary := Lambda(func(ctx context.Context, input Values) (Values, error) {
		return nil, boom
	})

	// With no alternates the wrapper behaves exactly like the primary
	_, err := WithFallbacks("lonely", primary).Invoke(context.Background(), Values{})
	assert.ErrorIs(t, err, boom)

	var fErr *FallbackError
	assert.False(t, errors.As(err, &fErr))
}

func TestFallbackOriginalInputPassedToAlternates(t *testing.T) {
	primary := Lambda(func(ctx context.Context, input Values) (Values, error) {
		input["poisoned"] = true
		return nil, fmt.Errorf("primary failed")
	})

	var seen Values
	fallback := Lambda(func(ctx context.Context, input Values) (Values, error) {
		seen = input
		return input, nil
	})

	_, err := WithFallbacks("isolation", primary, fallback).Invoke(context.Background(), Values{KeyInput: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "hello", seen[KeyInput])
	assert.NotContains(t, seen, "poisoned")
}

func TestFallbackContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	primary := Lambda(func(ctx context.Context, input Values) (Values, error) {
		cancel()
		return nil, fmt.Errorf("primary failed")
	})
	fallback := Lambda(func(ctx context.Context, input Values) (Values, error) {
		t.Fatal("fallback must not run after cancellation")
		return nil, nil
	})

	_, err := WithFallbacks("cancelled", primary, fallback).Invoke(ctx, Values{})
	assert.ErrorIs(t, err, context.Canceled)
}
