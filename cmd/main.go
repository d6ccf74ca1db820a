package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/chaincall/chain-go/pkg/chain"
	"github.com/chaincall/chain-go/pkg/core"
	"github.com/chaincall/chain-go/pkg/history"
	"github.com/chaincall/chain-go/pkg/llm"
	"github.com/chaincall/chain-go/pkg/monitoring"
	"github.com/chaincall/chain-go/pkg/tools"
)

func main() {
	ctx := context.Background()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting application")

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Error("OPENAI_API_KEY environment variable is not set")
		os.Exit(1)
	}
	logger.Debug("API key loaded")

	calc := &tools.Calculator{}

	// Primary: a fast model at high temperature, which tends to mangle
	// the nested options object in the tool arguments
	primaryConfig := core.NewLLMConfig()
	primaryConfig.Model = "gpt-3.5-turbo"
	primaryConfig.Temperature = 1.0
	primaryConfig.APIKey = apiKey

	primaryProvider, err := llm.NewProvider(ctx, primaryConfig)
	if err != nil {
		logger.Error("Failed to create primary provider", "error", err)
		os.Exit(1)
	}

	// Fallback: a stronger model at temperature zero
	fallbackConfig := core.NewLLMConfig()
	fallbackConfig.Model = "gpt-4"
	fallbackConfig.Temperature = 0.0
	fallbackConfig.APIKey = apiKey

	fallbackProvider, err := llm.NewProvider(ctx, fallbackConfig)
	if err != nil {
		logger.Error("Failed to create fallback provider", "error", err)
		os.Exit(1)
	}
	logger.Info("LLM providers initialized")

	monitor := monitoring.NewMonitor()
	store, err := history.NewStore("invocations.db")
	if err != nil {
		logger.Error("Failed to open history store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	primaryChain, err := chain.ToolChain("calc-primary", primaryProvider, calc)
	if err != nil {
		logger.Error("Failed to build primary chain", "error", err)
		os.Exit(1)
	}
	primaryChain.WithMonitor(monitor).WithHistory(store)

	fallbackChain, err := chain.ToolChain("calc-fallback", fallbackProvider, calc)
	if err != nil {
		logger.Error("Failed to build fallback chain", "error", err)
		os.Exit(1)
	}
	fallbackChain.WithMonitor(monitor).WithHistory(store)

	runnable := chain.WithFallbacks("calc", primaryChain, fallbackChain).
		WithMonitor(monitor).
		WithHistory(store)

	logger.Info("Invoking chain")
	output, err := runnable.Invoke(ctx, chain.Values{
		chain.KeyInput: "What is 5 times 2.1? Use the calculator.",
	})
	if err != nil {
		logger.Error("Chain failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Chain completed", "output", output[chain.KeyOutput])

	stats := monitor.Stats("calc")
	logger.Info("Run stats",
		"fallback_activations", stats.FallbackActivations,
	)
}
