package clock_test

import (
	"sync"
	"testing"
	"time"

	"multicleaner/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestFakeClock_AdvanceAndSet(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := clock.Fake(start)

	assert.Equal(t, start, c.Now())

	c.Advance(48 * time.Hour)
	assert.Equal(t, start.Add(48*time.Hour), c.Now())

	later := start.Add(30 * 24 * time.Hour)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}

func TestFakeClock_ConcurrentAdvance(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := clock.Fake(start)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(time.Minute)
			_ = c.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, start.Add(50*time.Minute), c.Now())
}

func TestRealClock_ReturnsUTC(t *testing.T) {
	now := clock.Real().Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}
