package game

import (
	"context"
	"log"
	"sync"
	"time"
)

// Loop is the single goroutine that owns the state manager. Other goroutines
// hand work to it with Post, Go or Call.
type Loop struct {
	interval time.Duration
	tick     func(dt float64)

	mu    sync.Mutex
	queue []func()

	inflight sync.WaitGroup
}

// NewLoop ticks at hz (60 when hz is not positive) and calls tick with the
// elapsed seconds on every frame.
func NewLoop(hz int, tick func(dt float64)) *Loop {
	if hz <= 0 {
		hz = 60
	}
	return &Loop{
		interval: time.Second / time.Duration(hz),
		tick:     tick,
	}
}

// Interval is the target frame time.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Post queues fn to run on the loop after the next tick.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

// Go runs work on its own goroutine and posts done back to the loop.
func (l *Loop) Go(work func(), done func()) {
	l.inflight.Add(1)
	go func() {
		defer l.inflight.Done()
		work()
		l.Post(done)
	}()
}

// Wait blocks until every Go started so far has posted its completion.
func (l *Loop) Wait() {
	l.inflight.Wait()
}

// Call runs fn on the loop and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		fn()
		close(done)
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) drain() int {
	l.mu.Lock()
	pending := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Step runs one frame synchronously: tick first, then everything posted.
func (l *Loop) Step(dt float64) {
	if l.tick != nil {
		l.tick(dt)
	}
	l.drain()
}

// Run ticks until ctx is cancelled. Work still queued at shutdown is dropped.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	log.Printf("[LOOP] Tick loop started at %v per frame", l.interval)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Println("[LOOP] Tick loop stopping")
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			l.Step(dt)
		}
	}
}
