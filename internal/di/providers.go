package di

import (
	"context"
	"fmt"
	"time"

	"FinLens/internal/domain/repository"
	"FinLens/internal/handler/api"
	internalrepo "FinLens/internal/repository"
	icache "FinLens/internal/service/cache"
	svcmetrics "FinLens/internal/service/metrics"
	"FinLens/internal/services/peers"
	"FinLens/internal/usecase"
	pkgch "FinLens/pkg/clickhouse"
	"FinLens/pkg/config"
	pkgkafka "FinLens/pkg/kafka"
	applogger "FinLens/pkg/logger"
	"FinLens/pkg/metrics"
	"FinLens/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer. Returns nil when the
// ingest backend writes straight to ClickHouse.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Ingest.Backend != "kafka" {
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

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideObservationStorage creates ClickHouse observation storage and
// ensures the schema exists.
func ProvideObservationStorage(chClient *pkgch.Client, l *applogger.Logger) (repository.Storage, error) {
	storage := internalrepo.NewClickHouseStorage(chClient)
	storage.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := storage.Init(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return storage, nil
}

// ProvideObservationPublisher creates the Kafka publisher repository.
func ProvideObservationPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideSeriesStore creates the ClickHouse series reader.
func ProvideSeriesStore(chClient *pkgch.Client, l *applogger.Logger) repository.SeriesStore {
	store := internalrepo.NewCHSeriesStore(chClient)
	store.SetLogger(l)
	return store
}

// ProvideDistributionProvider creates the peer statistics client.
// Returns nil when no peer service is configured; benchmark requests
// then require an inline distribution.
func ProvideDistributionProvider(cfg *config.Config, l *applogger.Logger) repository.DistributionProvider {
	if cfg.Peers.BaseURL == "" {
		return nil
	}
	p := peers.NewProvider(cfg)
	p.SetLogger(l)
	return p
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
// Returns nil when ingest bypasses Kafka.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Ingest.Backend != "kafka" {
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

// ProvideObservationProcessor creates the ingest use case.
func ProvideObservationProcessor(
	cfg *config.Config,
	pub repository.Publisher,
	store repository.Storage,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.ObservationProcessor {
	proc := usecase.NewObservationProcessor(cfg, pub, store, m)
	proc.SetLogger(l)
	return proc
}

// ProvideKafkaObservationsHandler registers the consumer-side handler
// for the observations topic.
func ProvideKafkaObservationsHandler(proc *usecase.ObservationProcessor, cfg *config.Config, l *applogger.Logger) *usecase.KafkaObservationsHandler {
	return usecase.NewKafkaObservationsHandler(cfg.Kafka.Topic, proc, l)
}

// ProvideSeriesAnalytics creates the analytics use case.
func ProvideSeriesAnalytics(
	store repository.SeriesStore,
	dist repository.DistributionProvider,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.SeriesAnalytics {
	svc := usecase.NewSeriesAnalytics(store, dist, cfg)
	svc.SetLogger(l)
	return svc
}

// ProvideSeriesQuery creates the series read use case.
func ProvideSeriesQuery(store repository.SeriesStore) *usecase.SeriesQuery {
	return usecase.NewSeriesQuery(store)
}

// ProvideResponseCache picks Redis when configured, in-process TTL
// otherwise.
func ProvideResponseCache(cfg *config.Config, l *applogger.Logger) icache.BytesCache {
	if cfg.Analytics.Redis.Enabled {
		rc, err := icache.NewRedisCache(
			cfg.Analytics.Redis.Addr,
			cfg.Analytics.Redis.Password,
			cfg.Analytics.Redis.DB,
			"finlens:",
		)
		if err == nil {
			rc.SetLogger(l)
			return rc
		}
		l.Warn("redis cache unavailable, using in-process cache", applogger.Error(err))
	}
	return icache.NewTTLCache(time.Minute)
}

// ProvideAnalyticsHandler creates the HTTP handler with cache and
// metrics attached.
func ProvideAnalyticsHandler(
	cfg *config.Config,
	l *applogger.Logger,
	svc *usecase.SeriesAnalytics,
	series *usecase.SeriesQuery,
	proc *usecase.ObservationProcessor,
) *api.AnalyticsHandler {
	h := api.NewAnalyticsHandler(cfg, l, svc, series, proc)
	h.SetCache(ProvideResponseCache(cfg, l))
	h.SetMetrics(svcmetrics.NewAnalyticsMetrics())
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaObservationsHandler,
	chClient *pkgch.Client,
	handler *api.AnalyticsHandler,
	proc *usecase.ObservationProcessor,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	app := server.New(cfg, consumer, kh, chClient)
	app.SetHTTPHandler(handler)
	app.Processor = proc
	return app
}
