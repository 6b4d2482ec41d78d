package dossier

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"
)

const (
	// DefaultTickRate is the rate of the game's periodic tick in Hz.
	DefaultTickRate = 560

	// timerBase is the input clock of the programmable interval timer the
	// base-rate callback is paced against.
	timerBase = 1193182
)

// Timer is the periodic tick that drives sound effect holds, the music
// sequencer, the UI wait countdown and the half-second game clock, and
// chains to a base-rate callback at the classic 18.2 Hz PC timer cadence.
//
// The counters are the only state shared between the tick and the game
// loop; all of them are atomics.
type Timer struct {
	rate     int
	baseStep uint32

	wait     atomic.Int32
	clockDiv atomic.Int32
	gameTime atomic.Int32
	baseAcc  atomic.Uint32
	ticks    atomic.Uint64
	running  atomic.Bool

	sound  *Sound
	seq    *Sequencer
	onBase func()
}

// NewTimer creates a timer ticking at rate Hz (DefaultTickRate when zero).
// sound and seq may be nil. onBase, when non-nil, is called whenever the
// base accumulator rolls over 16 bits.
func NewTimer(rate int, sound *Sound, seq *Sequencer, onBase func()) *Timer {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	t := &Timer{
		rate:     rate,
		baseStep: uint32(timerBase / rate),
		sound:    sound,
		seq:      seq,
		onBase:   onBase,
	}
	t.clockDiv.Store(int32(rate / 2))
	return t
}

// Rate returns the tick rate in Hz.
func (t *Timer) Rate() int { return t.rate }

// BaseDivisor returns the interval timer divisor matching the tick rate.
func (t *Timer) BaseDivisor() uint32 { return t.baseStep }

// Tick runs one timer tick. It never blocks on the game loop.
func (t *Timer) Tick() {
	if t.sound != nil {
		t.sound.tick()
	}
	if t.seq != nil {
		t.seq.Tick()
	}
	if t.wait.Load() > 0 {
		t.wait.Add(-1)
	}
	if t.clockDiv.Add(-1) <= 0 {
		t.clockDiv.Store(int32(t.rate / 2))
		t.gameTime.Add(1)
	}
	acc := t.baseAcc.Load() + t.baseStep
	if acc > 0xFFFF {
		acc &= 0xFFFF
		if t.onBase != nil {
			t.onBase()
		}
	}
	t.baseAcc.Store(acc)
	t.ticks.Add(1)
}

// Ticks returns the number of ticks run so far.
func (t *Timer) Ticks() uint64 { return t.ticks.Load() }

// Run drives Tick at the configured rate until ctx is done. Ticks missed
// because of scheduler latency are caught up on the next wakeup.
func (t *Timer) Run(ctx context.Context) {
	t.running.Store(true)
	defer t.running.Store(false)

	period := time.Second / time.Duration(t.rate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	start := time.Now()
	var done int64
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			due := int64(now.Sub(start) / period)
			for ; done < due; done++ {
				t.Tick()
			}
		}
	}
}

// StartWait arms the UI countdown for hdsec twentieths of a second.
func (t *Timer) StartWait(hdsec int) {
	t.wait.Store(int32(t.rate / 20 * hdsec))
}

// Waiting reports whether the countdown is still running.
func (t *Timer) Waiting() bool { return t.wait.Load() > 0 }

// Wait blocks until the countdown expires. When no Run loop is driving the
// timer the caller ticks it directly, which keeps headless runs and tests
// deterministic.
func (t *Timer) Wait() {
	for t.wait.Load() > 0 {
		if !t.running.Load() {
			t.Tick()
			continue
		}
		runtime.Gosched()
		time.Sleep(time.Millisecond)
	}
}

// Delay waits hdsec twentieths of a second.
func (t *Timer) Delay(hdsec int) {
	t.StartWait(hdsec)
	t.Wait()
}

// GameTime returns the half-second clock.
func (t *Timer) GameTime() int { return int(t.gameTime.Load()) }

// FrameClock turns game clock changes into a per-frame flag that throttles
// animation to at most twice a second.
type FrameClock struct {
	prev int
	// HalfSecondPassed is true on the first frame after the game clock
	// advanced.
	HalfSecondPassed bool
}

// Update samples the timer once per frame.
func (c *FrameClock) Update(t *Timer) {
	now := t.GameTime()
	c.HalfSecondPassed = now != c.prev
	c.prev = now
}
