package command

import (
	"sync/atomic"
	"time"
)

// Statistic counts the calls of a command and the time spent
type Statistic struct {
	Calls        int64
	Microseconds int64
}

func (s *Statistic) record(cost time.Duration) {
	atomic.AddInt64(&s.Calls, 1)
	atomic.AddInt64(&s.Microseconds, cost.Nanoseconds()/int64(1000))
}

func (s *Statistic) load() (int64, int64) {
	return atomic.LoadInt64(&s.Calls), atomic.LoadInt64(&s.Microseconds)
}
