package web

import (
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_window(t *testing.T) {
	c := clock.NewMock()
	l := NewRateLimiter(c, 3, time.Minute)

	for i := range 3 {
		ok, _ := l.Allow("pudge")
		assert.True(t, ok, "request %d", i)
	}

	ok, retry := l.Allow("pudge")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)

	// Other clients have their own count.
	ok, _ = l.Allow("smalls")
	assert.True(t, ok)

	c.Add(40 * time.Second)
	ok, retry = l.Allow("pudge")
	assert.False(t, ok)
	assert.Equal(t, 20*time.Second, retry)

	c.Add(20 * time.Second)
	ok, _ = l.Allow("pudge")
	assert.True(t, ok)
}

func TestRateLimiter_sweep(t *testing.T) {
	c := clock.NewMock()
	l := NewRateLimiter(c, 5, time.Minute)

	l.Allow("pudge")
	l.Allow("smalls")
	l.Allow("yeah-yeah")
	assert.Equal(t, 3, l.size())

	c.Add(30 * time.Second)
	l.Allow("squints")
	assert.Equal(t, 4, l.size(), "nothing has expired yet")

	c.Add(31 * time.Second)
	l.Allow("benny")
	// The first three expired; squints has 29s left.
	assert.Equal(t, 2, l.size())

	c.Add(time.Hour)
	l.Allow("ham")
	assert.Equal(t, 1, l.size())
}

func TestRateLimiter_minimumLimit(t *testing.T) {
	l := NewRateLimiter(clock.NewMock(), 0, time.Minute)

	ok, _ := l.Allow("pudge")
	assert.True(t, ok)
	ok, _ = l.Allow("pudge")
	assert.False(t, ok)
}
