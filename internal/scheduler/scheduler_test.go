package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDriver_RejectsBadInterval(t *testing.T) {
	d := New(context.Background(), zap.NewNop())
	if err := d.AddCycle(0, func(context.Context) error { return nil }); err == nil {
		t.Error("expected error for zero interval")
	}
}

func TestDriver_DropsOverlappingTick(t *testing.T) {
	d := New(context.Background(), zap.NewNop())

	var invocations atomic.Int32
	block := make(chan struct{})
	err := d.AddCycle(time.Second, func(context.Context) error {
		invocations.Add(1)
		<-block
		return nil
	})
	if err != nil {
		t.Fatalf("AddCycle: %v", err)
	}

	d.Start()
	// first tick at ~1s starts a cycle that blocks; the tick at ~2s lands
	// while it is still running and must be dropped, not queued
	time.Sleep(2500 * time.Millisecond)
	if got := invocations.Load(); got != 1 {
		t.Errorf("engine invoked %d times, want 1 (overlap dropped)", got)
	}
	close(block)
	d.Stop()

	if got := invocations.Load(); got != 1 {
		t.Errorf("engine invoked %d times after stop, want 1 (dropped tick not replayed)", got)
	}
}

func TestDriver_SurvivesPanickingCycle(t *testing.T) {
	d := New(context.Background(), zap.NewNop())

	var invocations atomic.Int32
	err := d.AddCycle(time.Second, func(context.Context) error {
		if invocations.Add(1) == 1 {
			panic("bad cycle")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("AddCycle: %v", err)
	}

	d.Start()
	time.Sleep(2500 * time.Millisecond)
	d.Stop()

	if got := invocations.Load(); got < 2 {
		t.Errorf("engine invoked %d times, want at least 2 (scheduling survives panic)", got)
	}
}

func TestDriver_CycleErrorKeepsScheduling(t *testing.T) {
	d := New(context.Background(), zap.NewNop())

	var invocations atomic.Int32
	err := d.AddCycle(time.Second, func(context.Context) error {
		invocations.Add(1)
		return context.DeadlineExceeded
	})
	if err != nil {
		t.Fatalf("AddCycle: %v", err)
	}

	d.Start()
	time.Sleep(2500 * time.Millisecond)
	d.Stop()

	if got := invocations.Load(); got < 2 {
		t.Errorf("engine invoked %d times, want at least 2 (failed cycle is completed cycle)", got)
	}
}
