package scheduler

import (
	"context"
	"time"

	"github.com/gardenstock/stockwatch/internal/logger"
	"github.com/gardenstock/stockwatch/internal/stock"
)

// StockPoller drives the stock store from the aligned scheduler and
// supports manual refresh triggers between scheduled polls.
type StockPoller struct {
	sched         *AlignedScheduler
	store         *stock.Store
	logger        logger.Logger
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewStockPoller wires the scheduler to the stock store. manualTrigger
// may be nil when no manual refresh surface exists.
func NewStockPoller(
	sched *AlignedScheduler,
	store *stock.Store,
	log logger.Logger,
	manualTrigger chan struct{},
) *StockPoller {
	return &StockPoller{
		sched:         sched,
		store:         store,
		logger:        log,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start polls once immediately, then hands timing over to the aligned
// scheduler. The initial poll is synchronous so callers observe a
// populated store once Start returns.
func (p *StockPoller) Start(ctx context.Context) {
	p.store.Refetch(ctx)

	p.sched.Start(ctx, func(ctx context.Context, next time.Time) {
		p.store.SetNextUpdate(next)
		p.store.Refetch(ctx)
	})

	if p.manualTrigger != nil {
		go func() {
			for {
				select {
				case <-p.manualTrigger:
					p.logger.Info("manual stock refresh triggered")
					p.store.Refetch(ctx)
				case <-p.stopCh:
					return
				case <-ctx.Done():
					return
				}
			}
		}()
	}
}

// Stop tears down the scheduler and the manual trigger loop.
func (p *StockPoller) Stop() {
	close(p.stopCh)
	p.sched.Stop()
}
