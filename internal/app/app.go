package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/catalog-editor/internal/cfg"
	v1Http "github.com/DRSN-tech/catalog-editor/internal/delivery/v1/http"
	"github.com/DRSN-tech/catalog-editor/internal/infrastructure/catalogapi"
	"github.com/DRSN-tech/catalog-editor/internal/infrastructure/kafka"
	"github.com/DRSN-tech/catalog-editor/internal/repository/redis"
	"github.com/DRSN-tech/catalog-editor/internal/usecase"
	"github.com/DRSN-tech/catalog-editor/pkg/clients"
	"github.com/DRSN-tech/catalog-editor/pkg/closer"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout    = 10 * time.Second
	ensureTopicTimeout = 10 * time.Second
	redisPingTimeout   = 5 * time.Second
)

// App собирает шлюз редактора каталога со всеми зависимостями.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server
	outbox  *kafka.OutboxWorker
}

// NewApp собирает зависимости. Redis и Kafka подключаются только если заданы в конфигурации.
func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(logger, 0),
	}

	api, err := NewCatalogAPI(cfg.CatalogAPI, logger)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cacheRepo, err := a.initCache()
	if err != nil {
		a.closeOnError()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	publisher, err := a.initPublisher()
	if err != nil {
		a.closeOnError()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	refresh := usecase.NewRefreshNotifier(cacheRepo, publisher, logger)
	sessions := usecase.NewEditSessions(api, refresh, logger, cfg.Http.SessionTTL)
	sessions.Start(sessionSweepInterval(cfg.Http.SessionTTL))
	a.closer.Add("edit sessions", func(context.Context) error {
		sessions.Stop()
		return nil
	})

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(sessions, cfg.Http.MaxImageSize)

	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.closer.Add("http server", func(ctx context.Context) error {
		return a.httpSrv.Stop(ctx)
	})

	return a, nil
}

// sessionSweepInterval проверяет сессии вдвое чаще их времени жизни, но не реже раза в минуту.
func sessionSweepInterval(ttl time.Duration) time.Duration {
	return min(ttl/2, time.Minute)
}

// NewCatalogAPI создаёт клиент удалённого каталога. Таймаут 0 означает отсутствие таймаута.
func NewCatalogAPI(cfg *config.CatalogAPICfg, logger logger.Logger) (*catalogapi.Client, error) {
	return catalogapi.NewClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}, logger)
}

// initCache возвращает nil-интерфейс, если Redis не настроен.
func (a *App) initCache() (usecase.CacheRepository, error) {
	if a.cfg.Redis == nil {
		a.logger.Infof("REDIS_ADDR is not set, product cache invalidation disabled")
		return nil, nil
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.Add("redis client", func(context.Context) error {
		return redisClient.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return nil, err
	}

	return redis.NewCacheRepo(redisClient, a.logger), nil
}

// initPublisher возвращает nil-интерфейс, если Kafka не настроена.
func (a *App) initPublisher() (usecase.ProductChangePublisher, error) {
	if a.cfg.Kafka == nil {
		a.logger.Infof("KAFKA_BROKERS is not set, product change events disabled")
		return nil, nil
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.Add("kafka producer", func(context.Context) error {
		return producer.Close()
	})

	if err := producer.EnsureTopic(ensureTopicTimeout); err != nil {
		a.logger.Errorf(err, "failed to ensure kafka topic")
		return nil, err
	}

	a.outbox = kafka.NewOutboxWorker(producer, a.logger, a.cfg.Kafka.OutboxSize)
	a.closer.Add("outbox worker", func(context.Context) error {
		a.outbox.Stop()
		return nil
	})

	return a.outbox, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	if a.outbox != nil {
		a.outbox.Start(context.Background())
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	}

	a.logger.Infof("Application shutdown complete")

	return appErr
}

func (a *App) closeOnError() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("cleanup after failed start: %v", err)
	}
}
