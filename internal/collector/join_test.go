package collector

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestJoin_AllSucceed(t *testing.T) {
	tasks := []Task[int]{
		func(context.Context) (int, error) { time.Sleep(20 * time.Millisecond); return 1, nil },
		func(context.Context) (int, error) { return 2, nil },
		func(context.Context) (int, error) { time.Sleep(5 * time.Millisecond); return 3, nil },
	}
	values, err := Join(context.Background(), tasks...).Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 3 || values[0] != 1 || values[1] != 2 || values[2] != 3 {
		t.Errorf("expected values in task order, got %v", values)
	}
}

func TestJoin_OneFailureWaitsForAll(t *testing.T) {
	boom := errors.New("boom")
	var finished atomic.Int32
	slow := func(context.Context) (string, error) {
		time.Sleep(30 * time.Millisecond)
		finished.Add(1)
		return "ok", nil
	}
	tasks := []Task[string]{
		slow,
		func(context.Context) (string, error) { finished.Add(1); return "", boom },
		slow,
		slow,
	}

	j := Join(context.Background(), tasks...)
	if !errors.Is(j.Err, boom) {
		t.Fatalf("expected boom, got %v", j.Err)
	}
	if j.Values != nil {
		t.Errorf("expected no values on failure, got %v", j.Values)
	}
	if finished.Load() != 4 {
		t.Errorf("expected all 4 tasks to settle before returning, got %d", finished.Load())
	}
}

func TestJoin_Empty(t *testing.T) {
	values, err := Join[int](context.Background()).Result()
	if err != nil || len(values) != 0 {
		t.Errorf("expected empty success, got %v, %v", values, err)
	}
}
