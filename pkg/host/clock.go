package host

import "time"

// Clock is the time source of a Runner.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// cadence counts how many events of a fixed rate are due. It is rebased
// every second so the arithmetic stays small, and drops any backlog larger
// than one second of events.
type cadence struct {
	hz    int
	start time.Time
	done  int64
}

func (c *cadence) reset(now time.Time, hz int) {
	c.hz = hz
	c.start = now
	c.done = 0
}

func (c *cadence) interval() time.Duration {
	return time.Second / time.Duration(c.hz)
}

func (c *cadence) due(now time.Time) int {
	elapsed := now.Sub(c.start)
	if elapsed < 0 {
		return 0
	}
	hz := int64(c.hz)
	target := int64(elapsed) * hz / int64(time.Second)
	n := target - c.done
	if n > hz {
		n = hz
		c.done = target - hz
	}
	c.done += n
	if secs := elapsed / time.Second; secs > 0 {
		c.start = c.start.Add(secs * time.Second)
		c.done -= int64(secs) * hz
	}
	return int(n)
}
