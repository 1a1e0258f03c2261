package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestWaitFor(t *testing.T) {
	if err := WaitFor(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := WaitFor(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := WaitFor(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled for zero wait on a done context, got %v", err)
	}
}

func TestRetry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		retries   int
		failUntil int
		permanent bool
		wantCalls int
		wantErr   bool
	}{
		{name: "succeeds first time", retries: 2, failUntil: 0, wantCalls: 1},
		{name: "succeeds after retries", retries: 2, failUntil: 2, wantCalls: 3},
		{name: "gives up", retries: 2, failUntil: 10, wantCalls: 3, wantErr: true},
		{name: "permanent error stops", retries: 5, failUntil: 10, permanent: true, wantCalls: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			err := Retry(context.Background(), tt.retries, time.Microsecond, func(context.Context) error {
				calls++
				if calls <= tt.failUntil {
					if tt.permanent {
						return fmt.Errorf("bad request: %w", ErrPermanent)
					}
					return errors.New("transient")
				}
				return nil
			})

			if calls != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, calls)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
		})
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := Retry(ctx, 3, time.Hour, func(context.Context) error {
		calls++
		cancel()
		return errors.New("transient")
	})

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if err == nil {
		t.Fatal("expected error")
	}
}
