package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/velum-tech/pricing-backend/internal/cfg"
	v1Http "github.com/velum-tech/pricing-backend/internal/delivery/v1/http"
	"github.com/velum-tech/pricing-backend/internal/domain"
	"github.com/velum-tech/pricing-backend/internal/infrastructure/kafka"
	"github.com/velum-tech/pricing-backend/internal/repository/pgdb"
	pgdbConv "github.com/velum-tech/pricing-backend/internal/repository/pgdb/converter"
	"github.com/velum-tech/pricing-backend/internal/repository/redis"
	redisConv "github.com/velum-tech/pricing-backend/internal/repository/redis/converter"
	"github.com/velum-tech/pricing-backend/internal/usecase"
	"github.com/velum-tech/pricing-backend/pkg/clients"
	"github.com/velum-tech/pricing-backend/pkg/closer"
	"github.com/velum-tech/pricing-backend/pkg/e"
	"github.com/velum-tech/pricing-backend/pkg/logger"
	"github.com/velum-tech/pricing-backend/pkg/postgres"
)

// App собирает зависимости приложения и управляет их жизненным циклом.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	httpSrv *v1Http.Server
	worker  *kafka.OutboxWorker
	closer  *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.New()

	db, err := initPGDB(log, cfg)
	if err != nil {
		log.Errorf(err, "failed to initialize database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add("postgres", func(_ context.Context) error {
		db.Close()
		return nil
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add("redis", func(_ context.Context) error {
		return redisClient.Client.Close()
	})

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add("kafka producer", func(_ context.Context) error {
		return producer.Close()
	})

	prConv := pgdbConv.NewProductConverter()
	priceConv := pgdbConv.NewPriceConverter()
	outboxConv := pgdbConv.NewOutboxEventConverter()
	cacheConv := redisConv.NewPriceConverter()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	priceRepo := pgdb.NewPriceRepo(db.Pool, priceConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)
	cacheRepo := redis.NewCacheRepo(redisClient, cacheConv, cfg.Redis, log)

	worker := kafka.NewOutboxWorker(outboxRepo, producer, log, db.Dsn)
	cl.Add("outbox worker", func(_ context.Context) error {
		worker.Stop()
		return nil
	})

	productUC := usecase.NewProductUC(productRepo, outboxRepo, db.Pool, log)
	priceUC := usecase.NewPriceUC(
		productRepo,
		priceRepo,
		outboxRepo,
		domain.NewPriceOverlapValidator(),
		db.Pool,
		cacheRepo,
		log,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(productUC, priceUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	return &App{
		cfg:     cfg,
		logger:  log,
		httpSrv: httpSrv,
		worker:  worker,
		closer:  cl,
	}, nil
}

// Run запускает outbox-воркер и HTTP-сервер, после чего блокируется до
// сигнала завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	a.worker.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	workerCancel()
	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "resource shutdown error")
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
