package app

import (
	"context"
	"fmt"
	"net"

	"github.com/2beens/bedgemon/internal/auth"
	"github.com/2beens/bedgemon/internal/config"
	"github.com/2beens/bedgemon/internal/db"
	"github.com/2beens/bedgemon/internal/draft"
	"github.com/2beens/bedgemon/internal/kvstore"
	"github.com/2beens/bedgemon/internal/localcache"
	"github.com/2beens/bedgemon/internal/middleware"
	"github.com/2beens/bedgemon/internal/remote"
	"github.com/2beens/bedgemon/internal/syncer"
	"github.com/2beens/bedgemon/internal/telemetry/metrics"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

type Params struct {
	Config           *config.Config
	RedisPassword    string
	PostgresPassword string
	TracingEnabled   bool
	// metrics namespace and subsystem
	MetricsNamespace string
	MetricsSubsystem string
}

// App holds the whole sync layer built from config. Without a redis host the
// local store lives in process memory, and without a postgres host so does
// the remote store.
type App struct {
	KV          kvstore.Store
	RemoteStore remote.RecordStore
	Cache       *localcache.Cache
	Resolver    *auth.Resolver
	Syncer      *syncer.Syncer
	Drafts      *draft.Service
	// nil without redis
	RateLimiter middleware.RequestRateLimiter

	MetricsManager *metrics.Manager
	PromRegistry   *prometheus.Registry

	redisClient *redis.Client
	dbPool      *pgxpool.Pool
}

func New(ctx context.Context, params Params) (*App, error) {
	cfg := params.Config
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a := &App{}

	var extraCollectors []prometheus.Collector
	if cfg.PostgresHost != "" {
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.TracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		a.dbPool = dbPool

		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		} else if err := remote.Migrate(ctx, dbPool); err != nil {
			log.Errorf("migrate remote store schema: %s", err)
		}

		extraCollectors = append(extraCollectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	namespace, subsystem := params.MetricsNamespace, params.MetricsSubsystem
	if namespace == "" {
		namespace = "bedgemon"
	}
	if subsystem == "" {
		subsystem = "sync"
	}
	a.PromRegistry, err = metrics.SetupPrometheus(extraCollectors...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.MetricsManager = metrics.NewManager(namespace, subsystem, a.PromRegistry)

	onSkip := func(kind string) {
		a.MetricsManager.CounterDecodeSkipped.WithLabelValues(kind).Inc()
	}
	if a.dbPool != nil {
		a.RemoteStore = remote.NewPsqlStore(a.dbPool, cfg.RemotePageSize, onSkip)
		log.Debugf("remote store: postgres [%s]", net.JoinHostPort(cfg.PostgresHost, cfg.PostgresPort))
	} else {
		a.RemoteStore = remote.NewMemoryRecordStore(cfg.RemotePageSize, onSkip)
		log.Warnln("postgres host not set, remote store is in process memory")
	}

	if cfg.RedisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		if params.TracingEnabled {
			rdb.AddHook(redisotel.NewTracingHook())
		}

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}

		a.redisClient = rdb
		a.KV = kvstore.NewRedisStore(rdb)
		a.RateLimiter = redis_rate.NewLimiter(rdb)
	} else {
		a.KV = kvstore.NewMemoryStore(cfg.LocalCacheSizeMB * megabyte)
		log.Warnln("redis host not set, local store is in process memory and sign-in is not rate limited")
	}

	var checker auth.CredentialChecker
	if cfg.CredentialCheckURL != "" {
		checker = auth.NewHTTPCredentialChecker(cfg.CredentialCheckURL, cfg.CredentialCheckTimeout())
	} else {
		log.Warnln("credential check url not set, every stored identity is treated as authorized")
		checker = auth.NewStaticCredentialChecker()
	}

	a.Cache = localcache.New(a.KV)
	a.Resolver = auth.NewResolver(a.KV, checker, cfg.DesignatedEmail)
	a.Syncer = syncer.New(a.RemoteStore, a.Cache, loc, a.MetricsManager)
	a.Drafts = draft.NewService(a.Cache, a.Syncer, a.MetricsManager)

	return a, nil
}

func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if a.dbPool != nil {
		log.Debugln("closing db pool ...")
		a.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
}
