package verify

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// CheckObserver receives the wall-clock cost of each verification check.
type CheckObserver interface {
	ObserveCheckLatency(check string, duration time.Duration)
}

// CheckLatencyLogger writes one log line per observed check.
type CheckLatencyLogger struct {
	logger *log.Logger
}

func NewCheckLatencyLogger(logger *log.Logger) *CheckLatencyLogger {
	return &CheckLatencyLogger{logger: logger}
}

func (l *CheckLatencyLogger) ObserveCheckLatency(check string, duration time.Duration) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Printf("verify_check_latency check=%s duration_ms=%.3f", check, float64(duration.Microseconds())/1000.0)
}

// AsyncCheckObserver decouples observation from the verification hot
// path through a bounded buffer. Events that would block are dropped
// and counted.
type AsyncCheckObserver struct {
	next    CheckObserver
	events  chan checkLatencyEvent
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

type checkLatencyEvent struct {
	check    string
	duration time.Duration
}

func NewAsyncCheckObserver(next CheckObserver, buffer int) *AsyncCheckObserver {
	if buffer <= 0 {
		buffer = 1
	}

	o := &AsyncCheckObserver{
		next:   next,
		events: make(chan checkLatencyEvent, buffer),
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for ev := range o.events {
			if o.next == nil {
				continue
			}
			o.next.ObserveCheckLatency(ev.check, ev.duration)
		}
	}()

	return o
}

func (o *AsyncCheckObserver) ObserveCheckLatency(check string, duration time.Duration) {
	if o == nil {
		return
	}
	o.mu.RLock()
	if o.closed {
		o.mu.RUnlock()
		o.dropped.Add(1)
		return
	}
	select {
	case o.events <- checkLatencyEvent{check: check, duration: duration}:
	default:
		o.dropped.Add(1)
	}
	o.mu.RUnlock()
}

func (o *AsyncCheckObserver) Dropped() uint64 {
	if o == nil {
		return 0
	}
	return o.dropped.Load()
}

func (o *AsyncCheckObserver) Close() {
	if o == nil {
		return
	}
	o.once.Do(func() {
		o.mu.Lock()
		o.closed = true
		close(o.events)
		o.mu.Unlock()
		o.wg.Wait()
	})
}
