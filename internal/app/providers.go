// Package app assembles the application object graph. Construction lives in
// provider functions so the serve, ingest, export, and migrate commands can
// share one wiring (see wire.go) while tests build the pieces directly.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/samratjha96/bakbak-sub001/internal/api/server"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/routes"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/services"
	"github.com/samratjha96/bakbak-sub001/internal/app/cache"
	appconfig "github.com/samratjha96/bakbak-sub001/internal/app/config"
	"github.com/samratjha96/bakbak-sub001/internal/app/export"
	"github.com/samratjha96/bakbak-sub001/internal/app/ingest"
	"github.com/samratjha96/bakbak-sub001/internal/app/jobs"
	"github.com/samratjha96/bakbak-sub001/internal/app/language"
	"github.com/samratjha96/bakbak-sub001/internal/app/logging"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository/migrate"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository/pg"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository/sqlite"
	"github.com/samratjha96/bakbak-sub001/internal/app/speech"
	"github.com/samratjha96/bakbak-sub001/internal/app/speech/whisper"
	"github.com/samratjha96/bakbak-sub001/internal/app/storage"
	envconfig "github.com/samratjha96/bakbak-sub001/internal/config"
)

// Application bundles everything the serve command runs: the HTTP server and
// the background job processor, plus the handles shutdown needs.
type Application struct {
	Config    *appconfig.AppConfig
	Logger    *zap.Logger
	Server    *server.Server
	Processor *jobs.Processor
}

// Repositories groups the persistence interfaces backed by one database
// connection.
type Repositories struct {
	Recordings repository.RecordingRepository
	Jobs       repository.JobRepository
	Notes      repository.NoteRepository
	Vocabulary repository.VocabularyRepository
}

// provideAppConfig loads the YAML configuration. A missing file yields the
// built-in defaults.
func provideAppConfig(configPath string) (*appconfig.AppConfig, error) {
	return appconfig.LoadAppConfig(configPath)
}

// provideLogger builds the zap logger used by everything below the HTTP
// layer. The cleanup flushes buffered entries.
func provideLogger(cfg *appconfig.AppConfig) (*zap.Logger, func(), error) {
	logger, err := logging.NewLogger(cfg.Environment != "production")
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// provideHTTPLogger builds the slog logger the request middleware writes to.
func provideHTTPLogger(cfg *appconfig.AppConfig) *slog.Logger {
	if cfg.Environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// provideAPIKeys loads vendor credentials from the environment, reading a
// .env file when one is present.
func provideAPIKeys() (*envconfig.APIKeys, error) {
	return envconfig.InitializeConfig()
}

// provideRepositories opens the configured database and exposes it through
// the repository interfaces. The cleanup closes the connection.
func provideRepositories(cfg *appconfig.AppConfig, logger *zap.Logger) (Repositories, func(), error) {
	if cfg.Database.Driver == "postgres" {
		pdb, err := pg.NewPostgresDB(pg.ConnectionString(
			cfg.Database.Postgres.Host,
			cfg.Database.Postgres.Port,
			cfg.Database.Postgres.User,
			cfg.Database.Postgres.Password,
			cfg.Database.Postgres.DBName,
			cfg.Database.Postgres.SSLMode,
		))
		if err != nil {
			return Repositories{}, nil, err
		}
		if err := pdb.InitSchema(); err != nil {
			pdb.Close()
			return Repositories{}, nil, err
		}
		logger.Info("connected to postgres",
			zap.String("host", cfg.Database.Postgres.Host),
			zap.String("database", cfg.Database.Postgres.DBName))
		return Repositories{Recordings: pdb, Jobs: pdb, Notes: pdb, Vocabulary: pdb},
			func() { _ = pdb.Close() }, nil
	}

	sdb, err := sqlite.Open(cfg.Database.SQLite.Path)
	if err != nil {
		return Repositories{}, nil, err
	}
	logger.Info("opened sqlite database", zap.String("path", cfg.Database.SQLite.Path))
	return Repositories{Recordings: sdb, Jobs: sdb, Notes: sdb, Vocabulary: sdb},
		func() { _ = sdb.Close() }, nil
}

// provideObjectStore builds the audio blob store for the configured backend.
func provideObjectStore(cfg *appconfig.AppConfig, logger *zap.Logger) (storage.ObjectStore, error) {
	if cfg.Storage.Backend == "minio" {
		store, err := storage.NewMinioStore(context.Background(), storage.MinioConfig{
			Endpoint:  cfg.Storage.Minio.Endpoint,
			AccessKey: cfg.Storage.Minio.AccessKey,
			SecretKey: cfg.Storage.Minio.SecretKey,
			Bucket:    cfg.Storage.Minio.Bucket,
			UseSSL:    cfg.Storage.Minio.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("using minio object store",
			zap.String("endpoint", cfg.Storage.Minio.Endpoint),
			zap.String("bucket", cfg.Storage.Minio.Bucket))
		return store, nil
	}

	store, err := storage.NewFileStore(cfg.Storage.Root)
	if err != nil {
		return nil, err
	}
	logger.Info("using filesystem object store", zap.String("root", cfg.Storage.Root))
	return store, nil
}

// provideResultCache connects to Redis when caching is enabled. An
// unreachable Redis degrades to no cache instead of failing startup.
func provideResultCache(cfg *appconfig.AppConfig, logger *zap.Logger) (language.ResultCache, func()) {
	if !cfg.Cache.Enabled {
		return nil, func() {}
	}
	c, err := cache.New(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB, logger)
	if err != nil {
		logger.Warn("redis unavailable, continuing without result cache", zap.Error(err))
		return nil, func() {}
	}
	return c, func() { _ = c.Close() }
}

// provideOpenAIClient builds the client shared by transcription and
// translation, must set environment variable OPENAI_API_KEY.
func provideOpenAIClient(apiKeys *envconfig.APIKeys) (*openai.Client, error) {
	if err := envconfig.RequireOpenAIKey(apiKeys); err != nil {
		return nil, err
	}
	return openai.NewClient(apiKeys.OpenAI), nil
}

// provideTranslator builds the OpenAI chat translator.
func provideTranslator(client *openai.Client, results language.ResultCache, cfg *appconfig.AppConfig, logger *zap.Logger) *language.Translator {
	return language.NewTranslator(client, results, logger, language.TranslatorConfig{
		Model:    cfg.Language.ChatModel,
		CacheTTL: cfg.Cache.TTL(),
	})
}

// provideRomanizer builds the Gemini romanizer when GEMINI_API_KEY is set.
// Without it the language service reports romanization as unavailable.
func provideRomanizer(apiKeys *envconfig.APIKeys, results language.ResultCache, cfg *appconfig.AppConfig, logger *zap.Logger) (*language.Romanizer, error) {
	if apiKeys.Gemini == "" {
		logger.Info("GEMINI_API_KEY not set, romanization disabled")
		return nil, nil
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKeys.Gemini,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return language.NewRomanizer(client, results, logger, language.RomanizerConfig{
		Model:    cfg.Language.RomanizerModel,
		CacheTTL: cfg.Cache.TTL(),
	}), nil
}

// provideSpeechSource resolves job audio against the same backend the API
// stores uploads in.
func provideSpeechSource(cfg *appconfig.AppConfig, store storage.ObjectStore) speech.Source {
	if cfg.Storage.Backend == "minio" {
		return speech.NewStoreSource(store, "")
	}
	return speech.NewFileSource(cfg.Storage.Root)
}

// provideSpeechEngine builds the Whisper-backed transcription engine.
func provideSpeechEngine(client *openai.Client, source speech.Source, cfg *appconfig.AppConfig, logger *zap.Logger) speech.Engine {
	return whisper.NewEngine(client, source, logger, whisper.Config{
		Model:       cfg.Speech.Model,
		Prompt:      cfg.Speech.Prompt,
		Temperature: cfg.Speech.Temperature,
	})
}

// provideMetricsRegistry builds the Prometheus registry exposed at /metrics.
func provideMetricsRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// provideJobMetrics registers the processor metrics.
func provideJobMetrics(registry *prometheus.Registry) *jobs.Metrics {
	return jobs.NewMetrics(registry)
}

// provideRegistry builds the transcription job registry.
func provideRegistry(repos Repositories) *jobs.Registry {
	return jobs.NewRegistry(repos.Jobs)
}

// provideProcessor builds the background job processor. It is constructed
// stopped; the serve command starts it.
func provideProcessor(
	registry *jobs.Registry,
	engine speech.Engine,
	repos Repositories,
	metrics *jobs.Metrics,
	cfg *appconfig.AppConfig,
	logger *zap.Logger,
) *jobs.Processor {
	return jobs.NewProcessor(registry, engine, repos.Recordings, metrics, logger, jobs.Config{
		PollInterval:       cfg.Processor.PollInterval(),
		Concurrency:        cfg.Processor.Concurrency,
		StatusPollInterval: cfg.Processor.StatusPollInterval(),
	})
}

// provideServiceContainer builds the five API services on top of the domain
// layer.
func provideServiceContainer(
	repos Repositories,
	store storage.ObjectStore,
	registry *jobs.Registry,
	processor *jobs.Processor,
	translator *language.Translator,
	romanizer *language.Romanizer,
) *routes.ServiceContainer {
	// A nil *Romanizer must become a nil interface so the language service
	// can detect the disabled feature.
	var textRomanizer services.TextRomanizer
	if romanizer != nil {
		textRomanizer = romanizer
	}

	return &routes.ServiceContainer{
		RecordingService: services.NewRecordingService(repos.Recordings, store, translator),
		JobService:       services.NewJobService(registry, repos.Recordings),
		ProcessorService: services.NewProcessorService(processor),
		LanguageService:  services.NewLanguageService(translator, textRomanizer),
		NoteService:      services.NewNoteService(repos.Notes, repos.Vocabulary, repos.Recordings),
	}
}

// provideServerConfig maps the YAML server section onto the HTTP server
// config.
func provideServerConfig(cfg *appconfig.AppConfig) server.Config {
	return server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  cfg.Server.IdleTimeout(),
		Environment:  cfg.Environment,
	}
}

// provideServer builds the HTTP server.
func provideServer(
	serverConfig server.Config,
	container *routes.ServiceContainer,
	metricsRegistry *prometheus.Registry,
	httpLogger *slog.Logger,
) *server.Server {
	return server.NewServer(serverConfig, container, metricsRegistry, httpLogger)
}

// provideApplication bundles the serve command's moving parts.
func provideApplication(cfg *appconfig.AppConfig, logger *zap.Logger, srv *server.Server, processor *jobs.Processor) *Application {
	return &Application{Config: cfg, Logger: logger, Server: srv, Processor: processor}
}

// provideImporter builds the bulk importer used by the ingest command.
func provideImporter(repos Repositories, registry *jobs.Registry, store storage.ObjectStore, logger *zap.Logger) *ingest.Importer {
	return ingest.NewImporter(repos.Recordings, registry, store, logger)
}

// provideExporter builds the xlsx exporter.
func provideExporter(repos Repositories, logger *zap.Logger) *export.Exporter {
	return export.NewExporter(repos.Recordings, repos.Vocabulary, logger)
}

// provideMigrator opens both sides of a sqlite to postgres move: the source
// is the configured SQLite file, the destination the configured PostgreSQL
// database. The migrate command uses this regardless of which driver the
// server currently runs on.
func provideMigrator(cfg *appconfig.AppConfig, logger *zap.Logger) (*migrate.Migrator, func(), error) {
	if cfg.Database.Postgres.Host == "" || cfg.Database.Postgres.DBName == "" {
		return nil, nil, fmt.Errorf("migration requires database.postgres host and dbname in the config")
	}

	sdb, err := sqlite.Open(cfg.Database.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open migration source: %w", err)
	}
	pdb, err := pg.NewPostgresDB(pg.ConnectionString(
		cfg.Database.Postgres.Host,
		cfg.Database.Postgres.Port,
		cfg.Database.Postgres.User,
		cfg.Database.Postgres.Password,
		cfg.Database.Postgres.DBName,
		cfg.Database.Postgres.SSLMode,
	))
	if err != nil {
		sdb.Close()
		return nil, nil, fmt.Errorf("failed to open migration destination: %w", err)
	}
	if err := pdb.InitSchema(); err != nil {
		pdb.Close()
		sdb.Close()
		return nil, nil, err
	}

	src := migrate.Store{Recordings: sdb, Notes: sdb, Vocabulary: sdb, Jobs: sdb}
	dst := migrate.Store{Recordings: pdb, Notes: pdb, Vocabulary: pdb, Jobs: pdb}
	cleanup := func() {
		_ = pdb.Close()
		_ = sdb.Close()
	}
	return migrate.New(src, dst, logger), cleanup, nil
}
