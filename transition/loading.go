package transition

import (
	"sync"
	"time"
)

// Scheduler runs fn every interval on its own schedule until fn returns false
// or the returned stop func is called. stop is safe to call more than once.
type Scheduler interface {
	Every(interval time.Duration, fn func() bool) (stop func())
}

// TickerScheduler runs each periodic callback on a goroutine driven by a
// time.Ticker, independent of the render loop.
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func() bool) func() {
	if interval <= 0 {
		interval = time.Millisecond
	}
	quit := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(quit) }) }

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				if !fn() {
					return
				}
			}
		}
	}()
	return stop
}

const (
	loadingStep = 0.1
	// loadingTicks is the number of steps until loading reads full.
	loadingTicks = 10
)

// loadingInterval paces the simulated section loading: ten steps spread over
// the transition duration (2s -> every 200ms).
func loadingInterval(d time.Duration) time.Duration {
	return d / loadingTicks
}
