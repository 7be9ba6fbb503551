package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllow_BurstThenReject(t *testing.T) {
	l := New(3, 0.001) // effectively no refill during the test

	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("Allow() call %d rejected within burst capacity", i+1)
		}
	}
	if l.Allow() {
		t.Error("Allow() succeeded with an empty bucket")
	}
}

func TestAllow_Refills(t *testing.T) {
	l := New(1, 100) // 1 token every 10ms

	if !l.Allow() {
		t.Fatal("First Allow() rejected")
	}
	if l.Allow() {
		t.Fatal("Second Allow() succeeded before refill")
	}

	time.Sleep(25 * time.Millisecond)
	if !l.Allow() {
		t.Error("Allow() rejected after refill interval")
	}
}

func TestWait_AcquiresToken(t *testing.T) {
	l := New(1, 100)
	l.Allow() // drain

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Wait() took %v, expected roughly one refill interval", elapsed)
	}
}

func TestWait_ContextCanceled(t *testing.T) {
	l := New(1, 0.001)
	l.Allow() // drain; refill is far away

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("Wait() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestReset(t *testing.T) {
	l := New(2, 0.001)
	l.Allow()
	l.Allow()
	if l.Allow() {
		t.Fatal("Allow() succeeded with drained bucket")
	}

	l.Reset()
	if !l.Allow() {
		t.Error("Allow() rejected after Reset()")
	}
	if got := l.Available(); got < 0.9 || got > 1.1 {
		t.Errorf("Available() = %v, want about 1", got)
	}
}
