package store_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/kavitarao/studyhall/internal/store"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	var saves atomic.Int32
	d := store.NewDebouncer(50*time.Millisecond, func() { saves.Add(1) })

	// A burst of triggers inside the window produces exactly one save.
	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}
	if got := saves.Load(); got != 0 {
		t.Fatalf("save fired during the burst: %d", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for saves.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := saves.Load(); got != 1 {
		t.Fatalf("saves = %d, want 1", got)
	}

	// Quiet period after the save: nothing else fires.
	time.Sleep(100 * time.Millisecond)
	if got := saves.Load(); got != 1 {
		t.Fatalf("spurious save after quiet period: %d", got)
	}
}

func TestDebouncerFlushRunsPendingSaveImmediately(t *testing.T) {
	var saves atomic.Int32
	d := store.NewDebouncer(time.Hour, func() { saves.Add(1) })

	d.Trigger()
	d.Flush()
	if got := saves.Load(); got != 1 {
		t.Fatalf("saves after flush = %d, want 1", got)
	}

	// Flush without a pending save is a no-op.
	d.Flush()
	if got := saves.Load(); got != 1 {
		t.Fatalf("idle flush ran the save: %d", got)
	}
}

func TestDebouncerStopCancelsPendingSave(t *testing.T) {
	var saves atomic.Int32
	d := store.NewDebouncer(30*time.Millisecond, func() { saves.Add(1) })

	d.Trigger()
	d.Stop()
	time.Sleep(100 * time.Millisecond)
	if got := saves.Load(); got != 0 {
		t.Fatalf("save fired after Stop: %d", got)
	}

	// Stop also clears the pending flag, so a later Flush stays quiet.
	d.Flush()
	if got := saves.Load(); got != 0 {
		t.Fatalf("flush after Stop ran the save: %d", got)
	}
}
