package deps

import (
	"time"

	"github.com/gardenstock/stockwatch/internal/catalog"
	"github.com/gardenstock/stockwatch/internal/logger"
	"github.com/gardenstock/stockwatch/internal/stock"
	"github.com/gardenstock/stockwatch/internal/wishlist"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	StockStore *stock.Store      // normalized snapshot state
	Wishlist   *wishlist.Store   // tracked items + notification settings
	Catalog    *catalog.Database // item database backing manual adds

	RefreshTrigger chan struct{} // channel to trigger a manual stock refresh
}
