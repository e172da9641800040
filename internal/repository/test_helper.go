package repository

import (
	"testing"

	"github.com/maggiehq/ledger/pkg/pg"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testDB struct {
	*pg.DB
	rawDB *gorm.DB
}

func setupTestDB(t *testing.T) *testDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&CurrencyEntity{},
		&AddressEntity{},
		&EntityChainEntity{},
		&EntityEntity{},
		&BankEntity{},
		&CardIssuerEntity{},
		&PaymentProcessorEntity{},
		&CardEntity{},
		&PaymentWayEntity{},
		&VaultEntity{},
		&ProductEntity{},
		&TransactionEntity{},
		&PaymentEntity{},
	)
	require.NoError(t, err)

	return &testDB{
		DB:    pg.NewFromGorm(db),
		rawDB: db,
	}
}
