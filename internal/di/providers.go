package di

import (
	"context"
	"fmt"
	"net"
	"time"

	"MarketSim/internal/domain/repository"
	"MarketSim/internal/handler/api"
	internalrepo "MarketSim/internal/repository"
	"MarketSim/internal/usecase"
	"MarketSim/pkg/cache"
	pkgch "MarketSim/pkg/clickhouse"
	"MarketSim/pkg/config"
	xhttp "MarketSim/pkg/http"
	pkgkafka "MarketSim/pkg/kafka"
	applogger "MarketSim/pkg/logger"
	"MarketSim/pkg/metrics"
	"MarketSim/pkg/server"
	"MarketSim/pkg/util"
)

// ProvideLogger creates the application logger. Console output in
// development, JSON elsewhere.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the
// bar schema. Returns nil when the warehouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.Warehouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + db,
		"CREATE TABLE IF NOT EXISTS " + db + ".daily_bars (" +
			"symbol String, day Date, open Float64, high Float64, low Float64, close Float64, volume Int64" +
			") ENGINE=ReplacingMergeTree ORDER BY (symbol, day)",
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideBarStore creates the warehouse-backed bar store, or nil when
// the warehouse is disabled.
func ProvideBarStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.BarStore {
	if chClient == nil {
		return nil
	}
	store := internalrepo.NewClickHouseBarStore(chClient.DB(), cfg.ClickHouse.Database+".daily_bars")
	store.SetLogger(l)
	return store
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideBarPublisher creates the Kafka-backed bar publisher, or nil
// when Kafka is disabled.
func ProvideBarPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.BarPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaBarPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a consumer for the ingest topic, or nil
// when ingestion is not configured.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || cfg.Kafka.IngestTopic == "" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaBarsHandler creates the ingest-topic handler.
func ProvideKafkaBarsHandler(store repository.BarStore, m repository.Metrics, l *applogger.Logger, cfg *config.Config) *usecase.KafkaBarsHandler {
	return usecase.NewKafkaBarsHandler(cfg.Kafka.IngestTopic, store, m, l)
}

// ProvideCache creates the response cache: layered (memory + Redis)
// when Redis is enabled, in-process only otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(1000)), nil
	}

	host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis addr %q: %w", cfg.Redis.Addr, err)
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(util.ParseIntDefault(portStr, 6379)),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc), nil
}

// ProvideMarketData creates the market data service.
func ProvideMarketData(c cache.Service, pub repository.BarPublisher, m repository.Metrics, l *applogger.Logger, cfg *config.Config) *usecase.MarketData {
	return usecase.NewMarketData(c, pub, m, l, usecase.MarketDataOptions{
		MaxRangeDays: cfg.Generator.MaxRangeDays,
		MaxSymbols:   cfg.Generator.MaxSymbols,
		CacheTTL:     cfg.Generator.CacheTTL,
	})
}

// ProvideSeeder creates the bulk seed use case.
func ProvideSeeder(store repository.BarStore, pub repository.BarPublisher, m repository.Metrics, l *applogger.Logger, cfg *config.Config) *usecase.Seeder {
	return usecase.NewSeeder(store, pub, m, l, cfg.Warehouse.BatchSize)
}

// ProvideLiveFeed creates the simulated live feed, or nil when
// disabled.
func ProvideLiveFeed(cfg *config.Config, m repository.Metrics, l *applogger.Logger) *usecase.LiveFeed {
	if !cfg.LiveFeed.Enabled {
		return nil
	}
	return usecase.NewLiveFeed(cfg.LiveFeed.TickInterval, m, l)
}

// ProvideHTTPHandler creates the Echo API handler.
func ProvideHTTPHandler(l *applogger.Logger, md *usecase.MarketData, seeder *usecase.Seeder, feed *usecase.LiveFeed) xhttp.Handler {
	return api.NewMarketHandler(l, md, seeder, feed)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	feed *usecase.LiveFeed,
	consumer *pkgkafka.Consumer,
	barsHandler *usecase.KafkaBarsHandler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	// A nil *LiveFeed must stay a nil interface inside the app.
	var runner server.FeedRunner
	if feed != nil {
		runner = feed
	}
	return server.New(cfg, l, handler, runner, consumer, barsHandler, chClient, producer)
}
