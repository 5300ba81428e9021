package commands

import (
	"fmt"

	"github.com/wonny/tickerpulse/internal/pipeline"
	"github.com/wonny/tickerpulse/internal/store"
	"github.com/wonny/tickerpulse/internal/timeseries"
	"github.com/wonny/tickerpulse/pkg/config"
	"github.com/wonny/tickerpulse/pkg/database"
	"github.com/wonny/tickerpulse/pkg/logger"
	"github.com/wonny/tickerpulse/pkg/redis"
)

// deps bundles the wiring every command shares: config, logger,
// database, cache, store and the pipeline computer.
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB
	redis    *redis.Client
	cache    *redis.Cache
	store    *store.Store
	computer *pipeline.Computer
	builder  *timeseries.Builder
}

// initDeps loads config and connects the shared infrastructure
func initDeps() (*deps, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// 4. Connect to Redis (no-ops when REDIS_ENABLED=false)
	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "tickerpulse")

	// 5. Create store and pipeline
	st := store.New(db)
	computer := pipeline.NewComputer(st, cfg.Pipeline, cache, log)
	builder := timeseries.NewBuilder(st.Metrics(), cache, log)

	return &deps{
		cfg:      cfg,
		log:      log,
		db:       db,
		redis:    redisClient,
		cache:    cache,
		store:    st,
		computer: computer,
		builder:  builder,
	}, nil
}

// Close releases database and Redis connections
func (d *deps) Close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
	if d.db != nil {
		d.db.Close()
	}
}
