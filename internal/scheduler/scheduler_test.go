package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewScheduler_Validation(t *testing.T) {
	noop := func(context.Context) error { return nil }

	tests := []struct {
		name     string
		spec     string
		timezone string
		wantErr  bool
	}{
		{"daily at nine", "0 9 * * *", "Asia/Kolkata", false},
		{"descriptor", "@daily", "", false},
		{"empty spec", "", "", true},
		{"malformed spec", "61 * * *", "", true},
		{"unknown timezone", "0 9 * * *", "Mars/Olympus", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewScheduler(tc.spec, tc.timezone, noop, discardLogger())
			if (err != nil) != tc.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestScheduler_NextHonoursTimezone(t *testing.T) {
	s, err := NewScheduler("0 9 * * *", "Asia/Kolkata", func(context.Context) error { return nil }, discardLogger())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	// 02:00 UTC is 07:30 IST, so the next 09:00 IST is 03:30 UTC the same day.
	from := time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)
	got := s.Next(from).UTC()
	want := time.Date(2026, 3, 2, 3, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Next = %v, want %v", got, want)
	}
}

func TestScheduler_ImmediateRunThenShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	job := func(context.Context) error {
		calls.Add(1)
		cancel()
		return nil
	}

	s, err := NewScheduler("@daily", "", job, discardLogger(), WithImmediateRun())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not shut down")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("job calls = %d, want 1", got)
	}
}

func TestScheduler_JobErrorDoesNotStopSchedule(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	job := func(context.Context) error {
		if calls.Add(1) >= 2 {
			cancel()
		}
		return errors.New("smtp down")
	}

	s, err := NewScheduler("@every 1s", "", job, discardLogger(), WithImmediateRun())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("scheduler did not fire a second run")
	}
	if got := calls.Load(); got < 2 {
		t.Errorf("job calls = %d, want >= 2", got)
	}
}

func TestScheduler_NoRunWithoutImmediate(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var calls atomic.Int32
	s, err := NewScheduler("@daily", "", func(context.Context) error {
		calls.Add(1)
		return nil
	}, discardLogger())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("job calls = %d, want 0", got)
	}
}
