package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm-service/internal/config"
	api "crm-service/internal/controllers/http"
	mmysql "crm-service/internal/infra/mysql"
	"crm-service/internal/infra/rabbitmq"
	"crm-service/internal/metrics"
	"crm-service/internal/repository"
	"crm-service/internal/repository/memory"
	mysqlrepo "crm-service/internal/repository/mysql"
	"crm-service/internal/repository/search"
	"crm-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func setupLogger(level string) {
	log.SetFormatter(&log.JSONFormatter{})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithError(err).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func main() {
	cfg, err := config.NewConfig(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("config")
	}
	setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("crm-service stopped with error")
	}
	log.Info("crm-service stopped")
}

type stores struct {
	orders    repository.ProductOrderRepository
	customers repository.CustomerRepository
	search    search.ProductOrderSearchRepository
	closers   []func() error
}

func (s *stores) close() {
	for _, c := range s.closers {
		if err := c(); err != nil {
			log.WithError(err).Warn("close")
		}
	}
}

func openStores(cfg *config.Config) (*stores, error) {
	s := &stores{}

	if cfg.MySQLHost == "" {
		log.Warn("MYSQL_HOST is empty, using in-memory repositories")
		s.orders = memory.NewProductOrderRepository()
		s.customers = memory.NewCustomerRepository()
	} else {
		db, err := mmysql.Open(cfg.MySQLDSN())
		if err != nil {
			return nil, fmt.Errorf("db: connect: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("db: handle: %w", err)
		}
		s.closers = append(s.closers, sqlDB.Close)
		s.orders = mysqlrepo.NewProductOrderRepository(db)
		s.customers = mysqlrepo.NewCustomerRepository(db)
	}

	if cfg.RedisHost == "" {
		log.Warn("REDIS_HOST is empty, using in-memory search index")
		s.search = search.NewMemoryProductOrderSearchRepository()
	} else {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr(),
			DB:           cfg.RedisDB,
			PoolSize:     50,
			MinIdleConns: 5,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		s.closers = append(s.closers, redisClient.Close)
		s.search = search.NewRedisProductOrderSearchRepository(redisClient, cfg.SearchIndexKey)
	}
	return s, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	var publisher rabbitmq.PublisherInterface
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			return fmt.Errorf("failed to init publisher: %w", err)
		}
		defer p.Close()
		publisher = p
	}

	m := metrics.New()
	orders := services.NewProductOrderService(st.orders, st.customers, st.search, publisher)
	orders.SetMetrics(m)
	customers := services.NewCustomerService(st.customers)

	if cfg.ReindexOnStart {
		if _, err := orders.Reindex(ctx); err != nil {
			return fmt.Errorf("reindex: %w", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	handler := api.NewHandler(orders, customers, cfg.AppName)
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      api.NewRouter(handler, m, prometheus.DefaultGatherer),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("starting crm-service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
