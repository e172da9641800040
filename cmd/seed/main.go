package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/maggiehq/ledger/internal/config"
	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/internal/repository"
	"github.com/maggiehq/ledger/pkg/pg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Seeds a fresh database with enough reference data to use the ledger:
// a few currencies, an address, two entities and a basic instrument set.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := config.Load(argContainsEnvPath()); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}
	db, err := pg.CreateReadWrite(writeConf, writeConf, false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed connecting to pg")
	}

	ctx := context.Background()

	currencies := repository.NewCurrencyRepository(db)
	for _, c := range []model.Currency{
		{Name: "US Dollar", MinorUnits: 2, ISOCode: "USD", Symbol: "$", SymbolPrecedesAmount: true},
		{Name: "Euro", MinorUnits: 2, ISOCode: "EUR", Symbol: "€", SymbolPrecedesAmount: true},
		{Name: "Polish Zloty", MinorUnits: 2, ISOCode: "PLN", Symbol: "zł"},
		{Name: "Japanese Yen", MinorUnits: 0, ISOCode: "JPY", Symbol: "¥", SymbolPrecedesAmount: true},
		{Name: "Bitcoin", MinorUnits: 8, ISOCode: "BTC", Symbol: "₿", SymbolPrecedesAmount: true},
	} {
		created, err := currencies.Create(ctx, &c)
		if err != nil {
			log.Fatal().Err(err).Str("iso", c.ISOCode).Msg("currency seed failed")
		}
		log.Info().Int64("id", created.ID).Str("iso", created.ISOCode).Msg("currency seeded")
	}

	addresses := repository.NewAddressRepository(db)
	home, err := addresses.Create(ctx, &model.Address{
		Type:           model.AddressStreet,
		Name:           "Main Street",
		BuildingNumber: "1",
		PostalCode:     "00-001",
		City:           "Springfield",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("address seed failed")
	}

	entities := repository.NewEntityRepository(db)
	me, err := entities.Create(ctx, &model.Entity{Name: "Me", AddressID: home.ID})
	if err != nil {
		log.Fatal().Err(err).Msg("entity seed failed")
	}
	grocer, err := entities.Create(ctx, &model.Entity{Name: "Corner Grocery", AddressID: home.ID})
	if err != nil {
		log.Fatal().Err(err).Msg("entity seed failed")
	}
	log.Info().Int64("me", me.ID).Int64("grocer", grocer.ID).Msg("entities seeded")

	banks := repository.NewBankRepository(db)
	bank, err := banks.Create(ctx, &model.Bank{Name: "First National"})
	if err != nil {
		log.Fatal().Err(err).Msg("bank seed failed")
	}

	vaults := repository.NewVaultRepository(db)
	vault, err := vaults.Create(ctx, &model.Vault{
		Name:       "Checking",
		Balance:    100_000, // $1000.00
		Type:       model.VaultCurrent,
		CurrencyID: 1,
		BankID:     &bank.ID,
	}, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("vault seed failed")
	}
	log.Info().Int64("id", vault.ID).Msg("vault seeded")

	ways := repository.NewPaymentWayRepository(db)
	if _, err := ways.Create(ctx, &model.PaymentWay{Name: "bank transfer"}); err != nil {
		log.Fatal().Err(err).Msg("payment way seed failed")
	}

	products := repository.NewProductRepository(db)
	if _, err := products.Create(ctx, &model.Product{
		Name:       "Groceries",
		Amount:     decimal.NewFromInt(1),
		AmountType: model.AmountPieces,
		Category:   model.CategoryFood,
	}); err != nil {
		log.Fatal().Err(err).Msg("product seed failed")
	}

	log.Info().Time("at", time.Now()).Msg("seed complete")
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				log.Error().Err(err).Msg("failed to open the passed env file")
				return ""
			}
			return s[1]
		}
	}
	return ""
}
