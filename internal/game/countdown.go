package game

// Countdown is a cooperative timer advanced by the tick loop. It reports each
// whole second k in [threshold..1] once, when the remaining time drops below
// k plus its lead, and reports expiry once.
type Countdown struct {
	duration  float64
	remaining float64
	next      int
	lead      float64
	expired   bool
}

// NewCountdown clamps threshold to [0, duration]. Second k is reported once
// the remaining time drops below k, which is when the display turns to k.
func NewCountdown(seconds float64, threshold int) *Countdown {
	threshold = min(threshold, int(seconds))
	threshold = max(threshold, 0)
	return &Countdown{duration: seconds, remaining: seconds, next: threshold}
}

// NewSessionTimer reports second k while the truncated remaining time reads
// k, i.e. once it drops below k+1.
func NewSessionTimer(seconds float64, threshold int) *Countdown {
	c := NewCountdown(seconds, threshold)
	c.lead = 1
	return c
}

// Advance moves the timer forward by dt seconds.
func (c *Countdown) Advance(dt float64) (ticks []int, expired bool) {
	if c.expired {
		return nil, false
	}
	c.remaining -= dt
	for c.next > 0 && c.remaining < float64(c.next)+c.lead {
		ticks = append(ticks, c.next)
		c.next--
	}
	if c.remaining <= 0 {
		c.expired = true
		return ticks, true
	}
	return ticks, false
}

// Remaining may be negative after expiry.
func (c *Countdown) Remaining() float64 {
	return c.remaining
}

// Elapsed is duration minus the non-negative remaining time.
func (c *Countdown) Elapsed() float64 {
	return c.duration - max(0, c.remaining)
}

// Display is the whole-second counter shown during the pre-game countdown.
func (c *Countdown) Display() int {
	return int(max(0, c.remaining)) + 1
}
