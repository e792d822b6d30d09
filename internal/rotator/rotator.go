// Package rotator cycles an index over a fixed number of slides on a timer.
package rotator

import (
	"context"
	"sync"
	"time"
)

// Direction of the last transition: +1 forward, -1 backward.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Ticker abstracts time.Ticker for tests.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// Option customises a Rotator.
type Option func(*Rotator)

// WithTicker replaces the wall-clock ticker.
func WithTicker(factory func(time.Duration) Ticker) Option {
	return func(r *Rotator) { r.newTicker = factory }
}

// WithIndex starts the rotator on slide i, wrapped into range.
func WithIndex(i int) Option {
	return func(r *Rotator) { r.index = r.wrap(i) }
}

// Rotator holds the active index. Index is always in [0, length).
type Rotator struct {
	length    int
	interval  time.Duration
	newTicker func(time.Duration) Ticker

	mu        sync.Mutex
	index     int
	direction Direction
	hovered   bool

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	stopped   chan struct{}
}

// New builds a rotator over length slides. A length below one is treated as one.
func New(length int, interval time.Duration, opts ...Option) *Rotator {
	if length < 1 {
		length = 1
	}
	r := &Rotator{
		length:    length,
		interval:  interval,
		direction: Forward,
		newTicker: func(d time.Duration) Ticker { return realTicker{t: time.NewTicker(d)} },
		stop:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start runs the timer loop until ctx is done or Close is called. It returns immediately.
func (r *Rotator) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		if r.interval <= 0 || r.length < 2 {
			close(r.stopped)
			return
		}
		ticker := r.newTicker(r.interval)
		go func() {
			defer close(r.stopped)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-r.stop:
					return
				case <-ticker.C():
					r.Tick()
				}
			}
		}()
	})
}

// Close stops the loop and waits for it to exit.
func (r *Rotator) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
	r.startOnce.Do(func() { close(r.stopped) })
	<-r.stopped
}

// Tick is one timer step: forward one slide unless hover holds the current one.
func (r *Rotator) Tick() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hovered {
		return r.index
	}
	return r.moveLocked(r.index+1, Forward)
}

// Next moves forward one slide.
func (r *Rotator) Next() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moveLocked(r.index+1, Forward)
}

// Prev moves back one slide.
func (r *Rotator) Prev() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moveLocked(r.index-1, Backward)
}

// GoTo jumps to target; the direction is forward when target is after the current index.
func (r *Rotator) GoTo(target int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	target = r.wrap(target)
	dir := Backward
	if target > r.index {
		dir = Forward
	}
	return r.moveLocked(target, dir)
}

// Hover pauses the timer while true.
func (r *Rotator) Hover(on bool) {
	r.mu.Lock()
	r.hovered = on
	r.mu.Unlock()
}

// Paused reports whether hover is holding the current slide.
func (r *Rotator) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hovered
}

// Index is the active slide.
func (r *Rotator) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

// Direction is the direction of the last transition.
func (r *Rotator) Direction() Direction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.direction
}

// Len is the number of slides.
func (r *Rotator) Len() int {
	return r.length
}

func (r *Rotator) moveLocked(target int, dir Direction) int {
	r.index = r.wrap(target)
	r.direction = dir
	return r.index
}

func (r *Rotator) wrap(i int) int {
	i %= r.length
	if i < 0 {
		i += r.length
	}
	return i
}
