// cmd/cli/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"middlemind/internal/ai"
	"middlemind/internal/config"
	"middlemind/internal/logging"
	"middlemind/internal/mind"
	"middlemind/internal/storage"
	v "middlemind/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(cfg)
	log.Info().Str("version", v.AppVersion).Msgf("Starting %v...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer store.Close()

	seed := cfg.MockSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	provider := ai.New(cfg, rng)
	rawProvider := ai.New(cfg, rng)
	if !provider.HealthCheck(ctx) {
		log.Warn().Str("provider", cfg.AIProvider).Msg("backend health check failed, replies may fall back")
	}

	moodEngine := mind.NewMoodEngine()
	behaviorEngine := mind.NewBehaviorEngine(mind.DefaultBehavioralParams(), rng)
	runner := mind.NewRunner(store, moodEngine, behaviorEngine, provider, rawProvider, log)

	if err := runner.InitializeContext(); err != nil {
		log.Fatal().Err(err).Msg("initialize session")
	}
	log.Info().
		Str("session", runner.SessionID()).
		Str("provider", cfg.AIProvider).
		Str("storage", cfg.StoragePath).
		Msg("session ready")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	fmt.Println("Type a message, or 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" || line == "q" {
			break
		}

		resp, err := runner.ProcessTurn(ctx, line)
		if err != nil {
			log.Error().Err(err).Msg("process turn")
			continue
		}
		fmt.Println("AI:", resp.ResponseText)

		select {
		case <-ctx.Done():
			fmt.Println()
			log.Info().Msg("shutting down")
			return
		default:
		}
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read input")
	}
}
