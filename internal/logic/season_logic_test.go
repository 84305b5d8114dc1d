package logic

import (
	"testing"

	"github.com/paraxels/eon-miniapp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWallet = "0xAbC0000000000000000000000000000000000001"

func TestCreateSeason(t *testing.T) {
	db := newTestDB(t)
	l := NewSeasonLogic(db, true)

	record, err := l.CreateSeason(&CreateSeasonInput{
		WalletAddress:   testWallet,
		TransactionHash: "0xhash1",
		DollarAmount:    floatPtr(10),
		PercentAmount:   floatPtr(5),
	})
	require.NoError(t, err)

	assert.True(t, record.Active)
	assert.False(t, record.Completed)
	assert.Equal(t, TestnetTargetAddress, record.Target)
	assert.Equal(t, "base-sepolia", record.Network)
	assert.Equal(t, "unknown", record.Fid)
	assert.Equal(t, DefaultSpender, record.Authorized)
	assert.Equal(t, "0xabc0000000000000000000000000000000000001", record.WalletAddress)
	assert.False(t, record.Timestamp.IsZero())
}

func TestCreateSeasonMainnetTarget(t *testing.T) {
	db := newTestDB(t)
	l := NewSeasonLogic(db, false)

	record, err := l.CreateSeason(&CreateSeasonInput{
		Fid:             "1234",
		WalletAddress:   testWallet,
		TransactionHash: "0xhash1",
		DollarAmount:    floatPtr(25),
		PercentAmount:   floatPtr(10),
	})
	require.NoError(t, err)

	assert.Equal(t, MainnetTargetAddress, record.Target)
	assert.Equal(t, "base-mainnet", record.Network)
	assert.Equal(t, "1234", record.Fid)
}

func TestCreateSeasonMissingFields(t *testing.T) {
	db := newTestDB(t)
	l := NewSeasonLogic(db, true)

	_, err := l.CreateSeason(&CreateSeasonInput{
		WalletAddress:   testWallet,
		TransactionHash: "0xhash1",
		PercentAmount:   floatPtr(5),
	})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateSeasonDuplicateHash(t *testing.T) {
	db := newTestDB(t)
	l := NewSeasonLogic(db, true)

	_, err := l.CreateSeason(&CreateSeasonInput{
		WalletAddress:   testWallet,
		TransactionHash: "0xhash1",
		DollarAmount:    floatPtr(10),
		PercentAmount:   floatPtr(5),
	})
	require.NoError(t, err)

	_, err = l.CreateSeason(&CreateSeasonInput{
		WalletAddress:   "0xAbC0000000000000000000000000000000000002",
		TransactionHash: "0xhash1",
		DollarAmount:    floatPtr(20),
		PercentAmount:   floatPtr(5),
	})
	assert.ErrorIs(t, err, ErrDuplicateTransaction)

	var count int64
	require.NoError(t, db.Model(&model.SeasonRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateSeasonActiveConflict(t *testing.T) {
	db := newTestDB(t)
	l := NewSeasonLogic(db, true)

	_, err := l.CreateSeason(&CreateSeasonInput{
		WalletAddress:   testWallet,
		TransactionHash: "0xhash1",
		DollarAmount:    floatPtr(10),
		PercentAmount:   floatPtr(5),
	})
	require.NoError(t, err)

	_, err = l.CreateSeason(&CreateSeasonInput{
		WalletAddress:   testWallet,
		TransactionHash: "0xhash2",
		DollarAmount:    floatPtr(20),
		PercentAmount:   floatPtr(5),
	})
	assert.ErrorIs(t, err, ErrActiveSeasonExists)
}

func TestCancelSeason(t *testing.T) {
	db := newTestDB(t)
	l := NewSeasonLogic(db, true)

	record, err := l.CreateSeason(&CreateSeasonInput{
		WalletAddress:   testWallet,
		TransactionHash: "0xhash1",
		DollarAmount:    floatPtr(10),
		PercentAmount:   floatPtr(5),
	})
	require.NoError(t, err)

	// 钱包不匹配时不区分"不存在"和"无权"
	err = l.CancelSeason(record.ID, "0xAbC0000000000000000000000000000000000099")
	assert.ErrorIs(t, err, ErrSeasonNotFound)

	var unchanged model.SeasonRecord
	require.NoError(t, db.First(&unchanged, record.ID).Error)
	assert.True(t, unchanged.Active)

	require.NoError(t, l.CancelSeason(record.ID, testWallet))

	var cancelled model.SeasonRecord
	require.NoError(t, db.First(&cancelled, record.ID).Error)
	assert.False(t, cancelled.Active)
	assert.False(t, cancelled.Completed)
	require.NotNil(t, cancelled.CancelledAt)

	active, err := l.ActiveSeason(testWallet)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestCancelSeasonMissingFields(t *testing.T) {
	db := newTestDB(t)
	l := NewSeasonLogic(db, true)

	err := l.CancelSeason(0, testWallet)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestActiveSeasonNone(t *testing.T) {
	db := newTestDB(t)
	l := NewSeasonLogic(db, true)

	record, err := l.ActiveSeason(testWallet)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestCompletedSeason(t *testing.T) {
	db := newTestDB(t)
	l := NewSeasonLogic(db, true)

	record, err := l.CreateSeason(&CreateSeasonInput{
		WalletAddress:   testWallet,
		TransactionHash: "0xhash1",
		DollarAmount:    floatPtr(10),
		PercentAmount:   floatPtr(5),
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(record).Updates(map[string]interface{}{
		"active":    false,
		"completed": true,
	}).Error)

	completed, err := l.CompletedSeason(testWallet)
	require.NoError(t, err)
	require.NotNil(t, completed)
	assert.Equal(t, record.ID, completed.ID)

	active, err := l.ActiveSeason(testWallet)
	require.NoError(t, err)
	assert.Nil(t, active)
}
