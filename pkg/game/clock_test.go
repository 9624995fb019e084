package game

import (
	"math"
	"testing"
)

func TestClockTick(t *testing.T) {
	c := NewClock()
	if c.Elapsed() != 0 {
		t.Fatalf("new clock elapsed = %v, want 0", c.Elapsed())
	}

	c.Tick(0.5)
	c.Tick(0.25)
	if got := c.Elapsed(); got != 0.75 {
		t.Errorf("Elapsed() = %v, want 0.75", got)
	}

	// 非法 dt 被忽略
	for _, dt := range []float64{-1, 0, math.NaN(), math.Inf(1)} {
		c.Tick(dt)
	}
	if got := c.Elapsed(); got != 0.75 {
		t.Errorf("Elapsed() after invalid ticks = %v, want 0.75", got)
	}
}

func TestClockPause(t *testing.T) {
	c := NewClock()
	c.Tick(1)
	c.SetPaused(true)
	c.Tick(1)
	if !c.IsPaused() || c.Elapsed() != 1 {
		t.Errorf("paused clock advanced: elapsed=%v", c.Elapsed())
	}
	c.SetPaused(false)
	c.Tick(1)
	if c.Elapsed() != 2 {
		t.Errorf("Elapsed() = %v, want 2", c.Elapsed())
	}
}
