package logic

import (
	"context"
	"testing"

	"github.com/nothingdao/solana-support/internal/database"
	"github.com/nothingdao/solana-support/internal/solana"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Well-formed base58 public keys used across tests.
const (
	testProjectWallet = "So11111111111111111111111111111111111111112"
	testDonorWallet   = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
	testOtherWallet   = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// stubLedger returns a fixed verdict, standing in for the chain.
type stubLedger struct {
	status solana.TxStatus
	err    error
}

func (s stubLedger) LookupTransaction(_ context.Context, _ string) (solana.TxStatus, error) {
	return s.status, s.err
}
