package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/gardenstock/stockwatch/internal/catalog"
	"github.com/gardenstock/stockwatch/internal/config"
	"github.com/gardenstock/stockwatch/internal/domain"
	"github.com/gardenstock/stockwatch/internal/feed"
	"github.com/gardenstock/stockwatch/internal/httpserver"
	"github.com/gardenstock/stockwatch/internal/httpserver/deps"
	"github.com/gardenstock/stockwatch/internal/logger"
	"github.com/gardenstock/stockwatch/internal/notify"
	"github.com/gardenstock/stockwatch/internal/pubsub"
	"github.com/gardenstock/stockwatch/internal/redis"
	"github.com/gardenstock/stockwatch/internal/scheduler"
	"github.com/gardenstock/stockwatch/internal/stock"
	"github.com/gardenstock/stockwatch/internal/storage"
	"github.com/gardenstock/stockwatch/internal/version"
	"github.com/gardenstock/stockwatch/internal/wishlist"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	wishlist    *wishlist.Store
	detector    *notify.Detector
	poller      *scheduler.StockPoller
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Durable storage: Redis when configured, local files otherwise
	var store storage.Store
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Using Redis storage at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		store = storage.NewRedisStore(client)
	} else {
		fileStore, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			loggerClient.Errorf("Failed to initialize file storage: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("file storage initialized",
			logger.String("dir", cfg.DataDir))
		store = fileStore
	}

	ctx := context.Background()

	// Cross-instance wishlist sync channel, one per process
	broadcaster := pubsub.NewBroadcaster()

	desktop := notify.NewDesktopNotifier(loggerClient)
	sound := notify.NewSoundPlayer(loggerClient)

	wishlistStore := wishlist.NewStore(ctx, store, broadcaster, desktop, loggerClient)
	catalogDB := catalog.NewDatabase(ctx, store, loggerClient)

	detector := notify.NewDetector(
		wishlistStore,
		desktop,
		sound,
		loggerClient,
		cfg.InitialNotifyWindow,
		cfg.NotifyWindow,
	)

	// Feed client; no URL means the deterministic offline snapshot
	var fetcher feed.Fetcher
	if cfg.FeedURL != "" {
		var adapter feed.Adapter
		if cfg.FeedFormat == "grouped" {
			adapter = feed.GroupedAdapter{}
		}
		fetcher = feed.NewClient(cfg.FeedURL, cfg.FeedTimeout, adapter)
		loggerClient.Info("stock feed configured",
			logger.String("url", cfg.FeedURL),
			logger.String("format", cfg.FeedFormat))
	} else {
		loggerClient.Info("no feed URL configured, serving built-in demo snapshot")
	}

	stockStore := stock.NewStore(fetcher, loggerClient)
	stockStore.OnCommit(func(current, previous *domain.Snapshot) {
		detector.Check(current)
	})

	sched := scheduler.NewAlignedScheduler(cfg.PollInterval, cfg.PollOffset, loggerClient)

	refreshTrigger := make(chan struct{}, 1)
	poller := scheduler.NewStockPoller(sched, stockStore, loggerClient, refreshTrigger)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		StockStore:     stockStore,
		Wishlist:       wishlistStore,
		Catalog:        catalogDB,
		RefreshTrigger: refreshTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		wishlist:    wishlistStore,
		detector:    detector,
		poller:      poller,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting stockwatch v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("stockwatch %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start polling (initial fetch + aligned schedule)
	a.poller.Start(ctx)
	a.logger.Info("stock poller started",
		logger.Duration("interval", a.cfg.PollInterval),
		logger.String("timezone", scheduler.ResolveLocalTimezone()))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Teardown clears every armed timer before stores go away
	a.poller.Stop()
	a.detector.Close()
	a.wishlist.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ stockwatch stopped cleanly")
	return nil
}
