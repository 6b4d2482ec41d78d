package dossier

import (
	"context"
	"testing"
	"time"
)

func TestTimerBaseDivisor(t *testing.T) {
	tm := NewTimer(0, nil, nil, nil)
	if tm.Rate() != DefaultTickRate {
		t.Errorf("rate = %d", tm.Rate())
	}
	if tm.BaseDivisor() != 1193182/560 {
		t.Errorf("divisor = %d, want %d", tm.BaseDivisor(), 1193182/560)
	}
}

func TestTimerBaseCallback(t *testing.T) {
	calls := 0
	tm := NewTimer(DefaultTickRate, nil, nil, func() { calls++ })
	for i := 0; i < DefaultTickRate; i++ {
		tm.Tick()
	}
	// One second at 560 Hz chains to the 18.2 Hz base rate 18 times.
	if calls != 18 {
		t.Errorf("base calls = %d, want 18", calls)
	}
	if tm.Ticks() != DefaultTickRate {
		t.Errorf("ticks = %d", tm.Ticks())
	}
}

func TestTimerGameClock(t *testing.T) {
	tm := NewTimer(DefaultTickRate, nil, nil, nil)
	var clock FrameClock

	for i := 0; i < DefaultTickRate/2-1; i++ {
		tm.Tick()
	}
	clock.Update(tm)
	if tm.GameTime() != 0 || clock.HalfSecondPassed {
		t.Fatal("clock advanced early")
	}
	tm.Tick()
	clock.Update(tm)
	if tm.GameTime() != 1 || !clock.HalfSecondPassed {
		t.Fatal("clock should advance after half a second")
	}
	clock.Update(tm)
	if clock.HalfSecondPassed {
		t.Error("flag should last one frame")
	}
}

func TestTimerDelaySelfTicks(t *testing.T) {
	tm := NewTimer(DefaultTickRate, nil, nil, nil)
	tm.Delay(2)
	if tm.Waiting() {
		t.Error("delay returned with the countdown running")
	}
	if want := uint64(DefaultTickRate / 20 * 2); tm.Ticks() != want {
		t.Errorf("ticks = %d, want %d", tm.Ticks(), want)
	}
}

func TestTimerRun(t *testing.T) {
	tm := NewTimer(1000, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tm.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for tm.Ticks() < 20 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	tm.Delay(1)
	cancel()
	<-done

	if tm.Ticks() < 20 {
		t.Errorf("only %d ticks in 2s", tm.Ticks())
	}
	if tm.Waiting() {
		t.Error("wait should have expired")
	}
}
