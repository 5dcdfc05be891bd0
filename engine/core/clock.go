package core

import "time"

// Clock measures how long a load or an engine run takes.
type Clock struct {
	started time.Time
	elapsed time.Duration
	now     func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Update refreshes the elapsed time. Has no effect on a stopped clock.
func (c *Clock) Update() {
	if !c.started.IsZero() {
		c.elapsed = c.now().Sub(c.started)
	}
}

// Start resets the elapsed time.
func (c *Clock) Start() {
	c.started = c.now()
	c.elapsed = 0
}

// Stop keeps the elapsed time of the last Update.
func (c *Clock) Stop() {
	c.started = time.Time{}
}

func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

func (c *Clock) ElapsedMS() float64 {
	return float64(c.elapsed) / float64(time.Millisecond)
}
