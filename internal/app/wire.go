//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/samratjha96/bakbak-sub001/internal/app/export"
	"github.com/samratjha96/bakbak-sub001/internal/app/ingest"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository/migrate"
)

// InitializeApplication builds the serve graph: configuration, loggers,
// database, object store, vendor clients, job processor, and HTTP server.
// The returned cleanup closes the database and cache connections and
// flushes logs.
func InitializeApplication(configPath string) (*Application, func(), error) {
	wire.Build(
		provideAppConfig,
		provideLogger,
		provideHTTPLogger,
		provideAPIKeys,
		provideRepositories,
		provideObjectStore,
		provideResultCache,
		provideOpenAIClient,
		provideTranslator,
		provideRomanizer,
		provideSpeechSource,
		provideSpeechEngine,
		provideMetricsRegistry,
		provideJobMetrics,
		provideRegistry,
		provideProcessor,
		provideServiceContainer,
		provideServerConfig,
		provideServer,
		provideApplication,
	)
	return nil, nil, nil
}

// InitializeImporter builds the bulk-import graph for the ingest command.
func InitializeImporter(configPath string) (*ingest.Importer, func(), error) {
	wire.Build(
		provideAppConfig,
		provideLogger,
		provideRepositories,
		provideObjectStore,
		provideRegistry,
		provideImporter,
	)
	return nil, nil, nil
}

// InitializeExporter builds the xlsx export graph.
func InitializeExporter(configPath string) (*export.Exporter, func(), error) {
	wire.Build(
		provideAppConfig,
		provideLogger,
		provideRepositories,
		provideExporter,
	)
	return nil, nil, nil
}

// InitializeMigrator builds the sqlite to postgres migration graph.
func InitializeMigrator(configPath string) (*migrate.Migrator, func(), error) {
	wire.Build(
		provideAppConfig,
		provideLogger,
		provideMigrator,
	)
	return nil, nil, nil
}
