package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/maggiehq/ledger/internal/cache"
	"github.com/maggiehq/ledger/internal/config"
	"github.com/maggiehq/ledger/internal/handlers"
	"github.com/maggiehq/ledger/internal/repository"
	"github.com/maggiehq/ledger/internal/services"
	"github.com/maggiehq/ledger/internal/storage"
	xhttp "github.com/maggiehq/ledger/pkg/http"
	"github.com/maggiehq/ledger/pkg/logger"
	"github.com/maggiehq/ledger/pkg/pg"
	"github.com/maggiehq/ledger/pkg/prom"
	"github.com/maggiehq/ledger/pkg/redis"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(prom.DurationMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	media, err := storage.NewMediaStore(context.Background(), storage.MediaConfig{
		Endpoint:  config.Get().MinioEndpoint,
		AccessKey: config.Get().MinioAccessKey,
		SecretKey: config.Get().MinioSecretKey,
		Bucket:    config.Get().MinioBucket,
		UseSSL:    config.Get().MinioUseSSL,
	})
	if err != nil {
		logger.Error("failed connecting to the media store", "error", err)
		return
	}

	if config.Get().AppDebugMetricsAddr != "" {
		host, _ := os.Hostname()
		if err := prom.Create(host, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed registering metrics", "error", err)
			return
		}
		go prom.ListenAndServe(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
	}

	transactionRepo := repository.NewTransactionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	productRepo := repository.NewProductRepository(db)
	vaultRepo := repository.NewVaultRepository(db)
	paymentWayRepo := repository.NewPaymentWayRepository(db)
	currencyRepo := repository.NewCurrencyRepository(db)

	currencyCache := cache.NewCurrencyCache(currencyRepo, redisAdap)

	// services
	ledgerService := services.NewLedgerService(transactionRepo, paymentRepo, entityRepo, productRepo, vaultRepo, paymentWayRepo)
	healthService := services.NewHealthService()

	// v1 handlers
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	currencyHandler := handlers.NewCurrencyHandler(currencyCache)
	mediaHandler := handlers.NewMediaHandler(media)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(g, transactionHandler)
	handlers.RegisterCurrencyRoutes(g, currencyHandler)
	handlers.RegisterMediaRoutes(g, mediaHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
