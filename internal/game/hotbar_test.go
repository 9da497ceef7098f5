package game

import (
	"testing"
	"time"

	"blockworld/internal/registry"

	"github.com/stretchr/testify/assert"
)

func TestHotbarSelect(t *testing.T) {
	h := NewHotbar()
	assert.Equal(t, registry.BlockTypeDirt, h.Held())

	h.Select(2)
	assert.Equal(t, registry.BlockTypeStone, h.Held())
	h.Select(HotbarSize)
	h.Select(-1)
	assert.Equal(t, 2, h.Selected)
}

func TestHotbarScrollWraps(t *testing.T) {
	h := NewHotbar()
	h.Scroll(-1)
	assert.Equal(t, HotbarSize-1, h.Selected)
	h.Scroll(2)
	assert.Equal(t, 1, h.Selected)
	h.Scroll(-3 * HotbarSize)
	assert.Equal(t, 1, h.Selected)
}

type fakeClock struct {
	now   time.Time
	slept time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

// Sleep overshoots slightly like a real scheduler.
func (c *fakeClock) Sleep(d time.Duration) {
	c.slept += d
	c.now = c.now.Add(d + 300*time.Microsecond)
}

func newFakeLimiter(limit int) (*FPSLimiter, *fakeClock) {
	c := &fakeClock{now: time.Unix(0, 0)}
	f := NewFPSLimiter(limit)
	f.now = c.Now
	f.sleep = c.Sleep
	return f, c
}

func TestFPSLimiterPacesFrames(t *testing.T) {
	f, c := newFakeLimiter(100)
	start := c.now
	for range 10 {
		f.Wait()
	}
	elapsed := c.now.Sub(start)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.Less(t, elapsed, 110*time.Millisecond)
}

func TestFPSLimiterDisabled(t *testing.T) {
	f, c := newFakeLimiter(0)
	f.Wait()
	assert.Zero(t, c.slept)
}

func TestFPSLimiterResyncsAfterHitch(t *testing.T) {
	f, c := newFakeLimiter(100)
	f.Wait()
	c.now = c.now.Add(time.Second)
	f.Wait()
	assert.True(t, f.next.After(c.now))
	assert.LessOrEqual(t, f.next.Sub(c.now), 10*time.Millisecond)
}
