package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/logger"
	"github.com/oukeidos/lorakit/internal/prompt"
)

// newConfirmer is replaced in tests.
var newConfirmer = prompt.DefaultConfirmer

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("Cancellation requested")
			cancel()
		case <-ctx.Done():
		}
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.Newf(apperrors.KindValidation, err, "Index must be a number, got %q.", s)
	}
	return i, nil
}
