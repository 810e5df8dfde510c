package service

import (
	"sync"
	"time"
)

// TickFunc receives the elapsed time of the active event.
type TickFunc func(elapsed time.Duration)

// elapsedTicker calls fn every interval until stop is called. After stop
// returns no further call to fn happens.
type elapsedTicker struct {
	stopCh chan struct{}
	done   chan struct{}
	once   sync.Once
}

func startElapsedTicker(interval time.Duration, clock Clock, startedAt time.Time, fn TickFunc) *elapsedTicker {
	t := &elapsedTicker{
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.stopCh:
				return
			case <-ticker.C:
				// stop may have raced with this tick.
				select {
				case <-t.stopCh:
					return
				default:
				}
				elapsed := clock.Now().Sub(startedAt)
				if elapsed < 0 {
					elapsed = 0
				}
				fn(elapsed)
			}
		}
	}()
	return t
}

// stop is safe to call more than once and on a nil ticker.
func (t *elapsedTicker) stop() {
	if t == nil {
		return
	}
	t.once.Do(func() { close(t.stopCh) })
	<-t.done
}
