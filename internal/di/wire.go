//go:build wireinject
// +build wireinject

package di

import (
	"FinLens/pkg/config"
	"FinLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideObservationStorage,
		ProvideObservationPublisher,
		ProvideSeriesStore,
		ProvideDistributionProvider,

		// Use cases
		ProvideObservationProcessor,
		ProvideKafkaObservationsHandler,
		ProvideSeriesAnalytics,
		ProvideSeriesQuery,

		// HTTP
		ProvideAnalyticsHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
