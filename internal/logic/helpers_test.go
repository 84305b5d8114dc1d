package logic

import (
	"fmt"
	"testing"
	"time"

	"github.com/paraxels/eon-miniapp/internal/database"
	"github.com/paraxels/eon-miniapp/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

var txSeq int

func seedTransaction(t *testing.T, db *gorm.DB, from string, value int64, status string, createdAt time.Time) model.TransactionRecord {
	t.Helper()

	txSeq++
	record := model.TransactionRecord{
		TxHash:    fmt.Sprintf("0xtx%04d", txSeq),
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Donation: model.Donation{
			From:      from,
			To:        MainnetTargetAddress,
			UsdcValue: value,
		},
	}
	require.NoError(t, db.Create(&record).Error)
	return record
}

func floatPtr(v float64) *float64 {
	return &v
}
