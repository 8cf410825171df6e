package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-ledger/internal/api/handlers"
	apimw "auction-ledger/internal/api/middleware"
	"auction-ledger/internal/config"
	"auction-ledger/internal/domain"
	"auction-ledger/internal/infrastructure/leader"
	"auction-ledger/internal/infrastructure/memory"
	"auction-ledger/internal/infrastructure/mysql"
	"auction-ledger/internal/infrastructure/pebble"
	redislock "auction-ledger/internal/infrastructure/redis"
	"auction-ledger/internal/infrastructure/sqlite"
	"auction-ledger/internal/services"
	"auction-ledger/pkg/logger"
	"auction-ledger/pkg/utils"

	redisClient "github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// stores bundles the two store interfaces with whatever must be closed on shutdown.
type stores struct {
	listings domain.ListingStore
	bids     domain.BidStore
	close    func() error
}

func openStores(ctx context.Context, cfg *config.Config, log logger.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case "memory":
		s := memory.NewStore()
		return &stores{listings: s, bids: s, close: func() error { return nil }}, nil

	case "mysql":
		db, err := utils.InitializeMysql(ctx, cfg.MySQL, log)
		if err != nil {
			return nil, err
		}
		if cfg.MySQL.Migrate {
			if err := mysql.Migrate(ctx, db); err != nil {
				db.Close()
				return nil, err
			}
			log.Info("MySQL schema migrated")
		}
		return &stores{
			listings: mysql.NewMySQLListingRepository(db),
			bids:     mysql.NewMySQLBidRepository(db),
			close:    db.Close,
		}, nil

	case "sqlite":
		s, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		log.Info("Opened SQLite store", "path", cfg.SQLite.Path)
		return &stores{listings: s, bids: s, close: s.Close}, nil

	case "pebble":
		s, err := pebble.Open(cfg.Pebble.Dir)
		if err != nil {
			return nil, err
		}
		log.Info("Opened Pebble store", "dir", cfg.Pebble.Dir)
		return &stores{listings: s, bids: s, close: s.Close}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.NewWithConfig(logger.Options{
		Level:      cfg.Log.Level,
		Encoding:   cfg.Log.Encoding,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}).With("instance_id", cfg.Instance.ID)

	log.Info("Starting auction ledger service", "store", cfg.Store.Driver, "lock", cfg.Lock.Driver)
	log.Debug("Loaded configuration", "config", cfg.GetConfigString())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Error("Failed to close store", "error", err)
		}
	}()

	var rdb *redisClient.Client
	if cfg.Redis.Enabled {
		rdb = redisClient.NewClient(&redisClient.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		log.Info("Connected to Redis", "address", cfg.Redis.Address)
	}

	var locker domain.ListingLocker = memory.NewKeyedLocker()
	if cfg.Lock.Driver == "redis" {
		locker = redislock.NewRedisListingLocker(rdb, cfg.Lock.TTL, cfg.Lock.RetryDelay, log)
	}

	var election domain.LeaderElection = leader.NewLocalLeaderElection()
	if rdb != nil {
		election = leader.NewRedisLeaderElection(rdb, cfg.Leader.Key, cfg.Leader.TTL, log)
	}

	clock := utils.RealClock{}
	ledger := services.NewAuctionLedger(st.listings, st.bids, services.NewRuleBidValidator(),
		services.NewWinnerResolver(), locker, clock, log)
	listingService := services.NewListingService(st.listings, st.bids, locker, clock, log)

	var closer *services.AuctionCloser
	if cfg.Closer.Enabled {
		closer = services.NewAuctionCloser(cfg.Closer.Spec, st.listings, ledger, election, cfg.Instance.ID, clock, log)
		if err := closer.Start(context.Background()); err != nil {
			log.Error("Failed to start auction closer", "error", err)
			os.Exit(1)
		}
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(apimw.CORS())
	e.Use(apimw.RequestLogger(log))

	handlers.NewHandler(listingService, ledger, clock, log).RegisterRoutes(e)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting HTTP server", "address", serverAddr)

	go func() {
		if err := e.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down auction ledger service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if closer != nil {
		if err := closer.Stop(shutdownCtx); err != nil {
			log.Error("Failed to stop auction closer", "error", err)
		}
	}

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Auction ledger service stopped")
}
