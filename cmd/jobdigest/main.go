package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amishk599/jobdigest/internal/model"
)

// Exit codes.
const (
	exitFailure    = 1
	exitMissingEnv = 2
)

const missingEnvMessage = "Missing env vars. Set RECIPIENT_EMAIL, GMAIL_USER, GMAIL_APP_PASSWORD."

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	flushTracing()

	if err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode reports err on stderr and maps it to the process exit status.
func exitCode(err error) int {
	var missing *model.MissingEnvError
	if errors.As(err, &missing) {
		fmt.Fprintln(os.Stderr, missingEnvMessage)
		return exitMissingEnv
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return exitFailure
}

func flushTracing() {
	if otelShutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := otelShutdown(ctx); err != nil && logger != nil {
		logger.Warn("otel shutdown failed", "error", err)
	}
}
