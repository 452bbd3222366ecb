// Package scheduler fires stock polls at wall-clock instants aligned
// to the shop's restock boundary: every 5 minutes, 10 seconds past, in
// the user's local timezone.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gardenstock/stockwatch/internal/logger"
)

// TickFunc runs on every scheduled fire. next is the freshly computed
// aligned instant of the following fire, for display.
type TickFunc func(ctx context.Context, next time.Time)

// AlignedScheduler arms a one-shot timer for the next aligned instant,
// then repeats on a fixed period. If alignment can not be computed it
// degrades to a plain fixed-period ticker; the schedule never silently
// stops.
type AlignedScheduler struct {
	interval time.Duration
	offset   time.Duration
	logger   logger.Logger

	mu      sync.Mutex
	timer   *time.Timer
	ticker  *time.Ticker
	stopCh  chan struct{}
	stopped bool

	now func() time.Time
	loc func() *time.Location
}

// NewAlignedScheduler builds a scheduler firing every interval at
// offset seconds past the aligned minute.
func NewAlignedScheduler(interval, offset time.Duration, log logger.Logger) *AlignedScheduler {
	return &AlignedScheduler{
		interval: interval,
		offset:   offset,
		logger:   log,
		stopCh:   make(chan struct{}),
		now:      time.Now,
		loc:      LocalLocation,
	}
}

// Start computes the next aligned instant and arms the timers. fire
// runs once per aligned instant until Stop or ctx cancellation.
func (s *AlignedScheduler) Start(ctx context.Context, fire TickFunc) {
	next, err := s.nextAligned()
	if err != nil {
		s.logger.Warn("alignment computation failed, falling back to fixed-interval polling",
			logger.Error(err))
		s.startFallback(ctx, fire)
		return
	}

	s.logger.Info("stock poll scheduled",
		logger.String("timezone", ResolveLocalTimezone()),
		logger.Time("next_poll", next))

	delay := next.Sub(s.now())

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.timer = time.AfterFunc(delay, func() {
		s.fireOnce(ctx, fire)
		s.startTicker(ctx, fire)
	})
	s.mu.Unlock()
}

// fireOnce invokes fire with a freshly recomputed next instant. The
// recomputation uses current time so the displayed schedule stays
// correct across daylight-saving transitions.
func (s *AlignedScheduler) fireOnce(ctx context.Context, fire TickFunc) {
	select {
	case <-s.stopCh:
		return
	case <-ctx.Done():
		return
	default:
	}

	next, err := s.nextAligned()
	if err != nil {
		next = s.now().Add(s.interval)
	}
	fire(ctx, next)
}

// startTicker arms the recurring fixed-period timer after the first
// aligned fire.
func (s *AlignedScheduler) startTicker(ctx context.Context, fire TickFunc) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.ticker = time.NewTicker(s.interval)
	ticker := s.ticker
	s.mu.Unlock()

	go func() {
		for {
			select {
			case <-ticker.C:
				s.fireOnce(ctx, fire)
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// startFallback polls on the plain interval starting immediately.
func (s *AlignedScheduler) startFallback(ctx context.Context, fire TickFunc) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.ticker = time.NewTicker(s.interval)
	ticker := s.ticker
	s.mu.Unlock()

	go func() {
		for {
			select {
			case <-ticker.C:
				fire(ctx, s.now().Add(s.interval))
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// nextAligned computes the next aligned instant, converting a panic in
// the clock/timezone machinery into an error.
func (s *AlignedScheduler) nextAligned() (next time.Time, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("alignment panicked: %v", r)
		}
	}()

	now := s.now().In(s.loc())
	return NextAlignedInstant(now, s.interval, s.offset), nil
}

// Stop clears both the one-shot and recurring timers. Safe to call
// multiple times; post-Stop fires are suppressed.
func (s *AlignedScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	close(s.stopCh)

	if s.timer != nil {
		s.timer.Stop()
	}
	if s.ticker != nil {
		s.ticker.Stop()
	}
}
