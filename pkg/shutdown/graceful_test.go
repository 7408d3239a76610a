package shutdown_test

import (
	"context"
	"testing"
	"time"

	"shopauth/pkg/shutdown"
)

func TestWaitExecutesHooksOnContextCancel(t *testing.T) {
	hook1Called := make(chan struct{})
	hook2Called := make(chan struct{})

	hook1 := func(ctx context.Context) error {
		close(hook1Called)
		return nil
	}

	hook2 := func(ctx context.Context) error {
		close(hook2Called)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	waitDone := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, time.Second, hook1, hook2)
		close(waitDone)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-hook1Called:
	case <-time.After(2 * time.Second):
		t.Error("Hook 1 was not called")
	}

	select {
	case <-hook2Called:
	case <-time.After(2 * time.Second):
		t.Error("Hook 2 was not called")
	}

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Error("Wait did not return")
	}
}

func TestWaitRespectsTimeout(t *testing.T) {
	slowHookStopped := make(chan struct{})

	slowHook := func(ctx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
			return nil
		case <-ctx.Done():
			close(slowHookStopped)
			return ctx.Err()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	waitDone := make(chan struct{})
	start := time.Now()
	go func() {
		shutdown.Wait(ctx, 200*time.Millisecond, slowHook)
		close(waitDone)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-waitDone:
	case <-time.After(3 * time.Second):
		t.Fatal("Wait did not return")
	}

	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Wait took too long: %v", elapsed)
	}

	select {
	case <-slowHookStopped:
	case <-time.After(time.Second):
		t.Error("Slow hook was not canceled by the shutdown timeout")
	}
}
