package di

import (
	"context"
	"fmt"
	"time"

	domrepo "CoinPulse/internal/domain/repository"
	"CoinPulse/internal/handler/api"
	internalrepo "CoinPulse/internal/repository"
	"CoinPulse/internal/service/bitquery"
	"CoinPulse/internal/service/chainscan"
	"CoinPulse/internal/service/coingecko"
	"CoinPulse/internal/service/cryptopanic"
	"CoinPulse/internal/service/defillama"
	"CoinPulse/internal/service/dexscreener"
	"CoinPulse/internal/service/edgar"
	"CoinPulse/internal/service/etherscan"
	"CoinPulse/internal/service/feargreed"
	"CoinPulse/internal/service/fred"
	"CoinPulse/internal/service/lunarcrush"
	"CoinPulse/internal/service/ratelimit"
	"CoinPulse/internal/service/scoring"
	"CoinPulse/internal/service/upstream"
	"CoinPulse/internal/service/whalealert"
	"CoinPulse/internal/usecase"
	"CoinPulse/pkg/cache"
	pkgch "CoinPulse/pkg/clickhouse"
	"CoinPulse/pkg/config"
	xhttp "CoinPulse/pkg/http"
	pkgkafka "CoinPulse/pkg/kafka"
	xlogger "CoinPulse/pkg/logger"
	"CoinPulse/pkg/metrics"
	"CoinPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	return xlogger.New(&xlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideLimiter creates the shared per-provider rate limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideCacheService builds the configured cache store.
func ProvideCacheService(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Store {
	case "", "memory":
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize)), nil
	case "redis":
		return cache.NewRedisCache(redisOptions(cfg)...)
	case "layered":
		redisCache, err := cache.NewRedisCache(redisOptions(cfg)...)
		if err != nil {
			return nil, err
		}
		return cache.NewLayeredCache(redisCache,
			cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize)), nil
	default:
		return nil, fmt.Errorf("unknown cache store %q", cfg.Cache.Store)
	}
}

func redisOptions(cfg *config.Config) []cache.RedisOption {
	return []cache.RedisOption{
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	}
}

// ProvideClickHouseClient creates the ClickHouse pool, or nil when no host
// is configured: the whale archive is optional infrastructure.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.ClickHouse.Host == "" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates the Kafka producer, or nil without brokers.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideWhaleArchive creates the ClickHouse-backed archive when ClickHouse
// is configured.
func ProvideWhaleArchive(client *pkgch.Client) (domrepo.WhaleArchive, error) {
	if client == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	archive, err := internalrepo.NewWhaleArchive(ctx, client)
	if err != nil {
		return nil, err
	}
	return archive, nil
}

// ProvideAlertPublisher creates the Kafka-backed alert publisher when Kafka
// is configured.
func ProvideAlertPublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.AlertPublisher {
	if producer == nil || cfg.Kafka.AlertTopic == "" {
		return nil
	}
	return internalrepo.NewAlertPublisher(producer, cfg.Kafka.AlertTopic)
}

// ProvideFailureCollector aggregates provider soft-failures, publishing them
// to the failure topic when Kafka is configured. Without Kafka the collector
// still feeds the health endpoint.
func ProvideFailureCollector(cfg *config.Config, producer *pkgkafka.Producer, logger *xlogger.Logger) *xlogger.FailureCollector {
	collectorCfg := &xlogger.CollectorConfig{
		FlushInterval:  30 * time.Second,
		CountThreshold: 200,
		Topic:          cfg.Kafka.FailureTopic,
	}
	if producer != nil && cfg.Kafka.FailureTopic != "" {
		collectorCfg.Publisher = producerPublisher{producer}
	}
	collector := xlogger.NewFailureCollector(collectorCfg)
	logger.AttachCollector(collector)
	return collector
}

type producerPublisher struct {
	producer *pkgkafka.Producer
}

func (p producerPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

// ProvideAggregator assembles every provider adapter and the orchestrator on
// top of them.
func ProvideAggregator(
	cfg *config.Config,
	logger *xlogger.Logger,
	rec domrepo.Metrics,
	limiter *ratelimit.Limiter,
	store cache.Service,
	archive domrepo.WhaleArchive,
	alerts domrepo.AlertPublisher,
) *usecase.Aggregator {
	timeout := cfg.Providers.Timeout
	base := func(name string, capacity, refill float64) *upstream.Base {
		opts := []upstream.Option{upstream.WithRateLimit(limiter, capacity, refill)}
		if timeout > 0 {
			opts = append(opts, upstream.WithTimeout(timeout))
		}
		return upstream.New(name, logger, rec, opts...)
	}

	fredClient := fred.New(base("fred", 20, 2), cfg.Providers.FRED.APIKey)
	fearGreed := feargreed.New(base("feargreed", 10, 1))
	lunar := lunarcrush.New(base("lunarcrush", 10, 1), cfg.Providers.LunarCrush.APIKey)
	gecko := coingecko.New(base("coingecko", 30, 0.5))
	llama := defillama.New(base("defillama", 30, 5))
	whaleAPI := whalealert.New(base("whalealert", 10, 0.2),
		cfg.Providers.WhaleAlert.APIKey, cfg.Providers.WhaleAlert.MinValueUSD)
	etherscanClient := etherscan.New(base("etherscan", 5, 0.2), cfg.Providers.Etherscan.APIKey)
	scanner := chainscan.New(base("chainscan", 10, 0.5))
	pairs := dexscreener.New(base("dexscreener", 30, 5))
	newsFeed := cryptopanic.New(base("cryptopanic", 10, 0.5), cfg.Providers.CryptoPanic.APIKey)
	edgarClient := edgar.New(base("edgar", 10, 2), cfg.Providers.EdgarUserAgent)
	trades := bitquery.New(base("bitquery", 5, 0.1), cfg.Providers.Bitquery.APIKey)

	scoringOpts := []upstream.Option{upstream.WithRateLimit(limiter, 50, 10)}
	if cfg.Scoring.Timeout > 0 {
		scoringOpts = append(scoringOpts, upstream.WithTimeout(cfg.Scoring.Timeout))
	}
	scorer := scoring.New(upstream.New("scoring", logger, rec, scoringOpts...), cfg.Scoring.URL)

	return usecase.NewAggregator(usecase.Deps{
		Store:   store,
		Logger:  logger,
		Metrics: rec,

		Macro:   fredClient,
		Global:  fearGreed,
		Social:  lunar,
		Market:  gecko,
		TVL:     llama,
		Unlocks: llama,
		Pairs:   pairs,
		Trades:  trades,
		Filings: edgarClient,
		Scorer:  scorer,

		WhaleFeeds: []usecase.NamedWhaleSource{
			{Name: "whalealert", Source: whaleAPI},
			{Name: "etherscan", Source: etherscanClient},
			{Name: "chainscan", Source: scanner},
		},
		NewsFeeds: []usecase.NamedNewsSource{
			{Name: "cryptopanic", Source: newsFeed},
			{Name: "coingecko", Source: gecko},
		},

		Archive:   archive,
		Alerts:    alerts,
		Companies: cfg.Filings.Companies,

		SingleFlight: cfg.Cache.SingleFlight,
	})
}

// ProvideWhaleStream creates the push-feed side pipeline.
func ProvideWhaleStream(cfg *config.Config, archive domrepo.WhaleArchive, alerts domrepo.AlertPublisher, logger *xlogger.Logger) *whalealert.Stream {
	var opts []whalealert.StreamOption
	if cfg.Providers.WhaleAlert.WebSocketURL != "" {
		opts = append(opts, whalealert.WithStreamURL(cfg.Providers.WhaleAlert.WebSocketURL))
	}
	return whalealert.NewStream(
		cfg.Providers.WhaleAlert.APIKey,
		cfg.Providers.WhaleAlert.MinValueUSD,
		usecase.SupportedChains,
		archive,
		alerts,
		logger,
		opts...,
	)
}

// ProvideHTTPHandler assembles the route groups.
func ProvideHTTPHandler(agg *usecase.Aggregator, collector *xlogger.FailureCollector) xhttp.Handler {
	return api.NewRouter(
		api.NewQueryHandler(agg),
		api.NewHealthHandler(collector),
	)
}

// ProvideApp builds the application.
func ProvideApp(
	cfg *config.Config,
	logger *xlogger.Logger,
	handler xhttp.Handler,
	store cache.Service,
	stream *whalealert.Stream,
	collector *xlogger.FailureCollector,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
) *server.App {
	return server.New(cfg, logger, handler, store, stream, collector, chClient, producer)
}
