package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/maggiehq/ledger/internal/admin"
	"github.com/maggiehq/ledger/internal/cache"
	"github.com/maggiehq/ledger/internal/config"
	"github.com/maggiehq/ledger/internal/repository"
	"github.com/maggiehq/ledger/pkg/logger"
	"github.com/maggiehq/ledger/pkg/pg"
	"github.com/maggiehq/ledger/pkg/redis"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	secret := config.Get().AdminJWTSecret
	if secret == "" {
		logger.Error("ADMIN_JWT_SECRET is not set")
		return
	}

	// --issue-token=<subject> prints a bearer token and exits
	if subject := argValue("--issue-token="); subject != "" {
		token, err := admin.IssueToken(secret, subject)
		if err != nil {
			logger.Error("failed to issue token", "error", err)
			return
		}
		fmt.Println(token)
		return
	}

	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}
	db, err := pg.CreateReadWrite(writeConf, writeConf, config.Get().AppEnv == "dev")
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	// The read API caches currencies; admin writes must evict the cached
	// copy or it keeps serving the old row for up to an hour.
	redisAdap, err := redis.NewRedisAdapter("admin", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "admin",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	currencyRepo := repository.NewCurrencyRepository(db)
	registry := admin.NewRegistry(admin.Repos{
		Currencies:   currencyRepo,
		Addresses:    repository.NewAddressRepository(db),
		Chains:       repository.NewChainRepository(db),
		Entities:     repository.NewEntityRepository(db),
		Banks:        repository.NewBankRepository(db),
		Issuers:      repository.NewCardIssuerRepository(db),
		Processors:   repository.NewPaymentProcessorRepository(db),
		Cards:        repository.NewCardRepository(db),
		PaymentWays:  repository.NewPaymentWayRepository(db),
		Vaults:       repository.NewVaultRepository(db),
		Products:     repository.NewProductRepository(db),
		Transactions: repository.NewTransactionRepository(db),
		Payments:     repository.NewPaymentRepository(db),

		CurrencyCache: cache.NewCurrencyCache(currencyRepo, redisAdap),
	})

	engine := admin.NewEngine(registry, secret)
	logger.Info("admin server is listening", "addr", config.Get().AdminListenAddr)
	if err := engine.Run(config.Get().AdminListenAddr); err != nil {
		logger.Error("error in running admin server", "error", err)
	}
}

func argValue(prefix string) string {
	for _, v := range os.Args {
		if strings.HasPrefix(v, prefix) {
			return strings.TrimPrefix(v, prefix)
		}
	}
	return ""
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
