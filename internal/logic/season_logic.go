package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paraxels/eon-miniapp/internal/model"
	"gorm.io/gorm"
)

const (
	// DefaultSpender 默认授权支出地址
	DefaultSpender = "0x66B5700036D7E397F721192fA06E17f9c0515F7f"
	// TestnetTargetAddress 测试网捐赠目标地址
	TestnetTargetAddress = "0xa65d8A8Cf67795B375FAFb97C3627d59A4d73efB"
	// MainnetTargetAddress 主网捐赠目标地址
	MainnetTargetAddress = "0x8d2a84300d6ce230ed3fffc23dbcdf1e6c781ff0"
)

// SeasonLogic 赛季业务逻辑
type SeasonLogic struct {
	db      *gorm.DB
	testnet bool
}

// NewSeasonLogic 创建赛季业务逻辑
func NewSeasonLogic(db *gorm.DB, testnet bool) *SeasonLogic {
	return &SeasonLogic{db: db, testnet: testnet}
}

// CreateSeasonInput 创建赛季请求
// 金额字段用指针区分"未提供"与0
type CreateSeasonInput struct {
	Fid             string
	WalletAddress   string
	TransactionHash string
	DollarAmount    *float64
	PercentAmount   *float64
	Authorized      string
}

// CreateSeason 创建赛季记录
// 目标地址和网络名由服务端按环境决定，钱包地址写入时统一小写
func (s *SeasonLogic) CreateSeason(input *CreateSeasonInput) (*model.SeasonRecord, error) {
	if input.WalletAddress == "" || input.TransactionHash == "" ||
		input.DollarAmount == nil || input.PercentAmount == nil {
		return nil, fmt.Errorf("%w: wallet address, transaction hash, dollar amount or percent amount", ErrMissingFields)
	}

	fid := input.Fid
	if fid == "" {
		fid = "unknown"
	}
	authorized := input.Authorized
	if authorized == "" {
		authorized = DefaultSpender
	}
	wallet := strings.ToLower(input.WalletAddress)

	// 预检重复交易哈希
	var count int64
	if err := s.db.Model(&model.SeasonRecord{}).
		Where("transaction_hash = ?", input.TransactionHash).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check transaction hash: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateTransaction
	}

	// 预检活跃赛季
	if err := s.db.Model(&model.SeasonRecord{}).
		Where("wallet_address = ? AND active = ?", wallet, true).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check active season: %w", err)
	}
	if count > 0 {
		return nil, ErrActiveSeasonExists
	}

	network, target := "base-mainnet", MainnetTargetAddress
	if s.testnet {
		network, target = "base-sepolia", TestnetTargetAddress
	}

	record := &model.SeasonRecord{
		Fid:             fid,
		WalletAddress:   wallet,
		TransactionHash: input.TransactionHash,
		DollarAmount:    *input.DollarAmount,
		PercentAmount:   *input.PercentAmount,
		Authorized:      authorized,
		Active:          true,
		Target:          target,
		Timestamp:       time.Now(),
		Network:         network,
	}

	if err := s.db.Create(record).Error; err != nil {
		// 唯一索引兜底：并发请求可能绕过预检
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing int64
			s.db.Model(&model.SeasonRecord{}).
				Where("transaction_hash = ?", input.TransactionHash).
				Count(&existing)
			if existing > 0 {
				return nil, ErrDuplicateTransaction
			}
			return nil, ErrActiveSeasonExists
		}
		return nil, fmt.Errorf("failed to insert season record: %w", err)
	}

	return record, nil
}

// CancelSeason 取消赛季
// 按id+钱包查找做归属校验，查不到与无权统一按未找到处理
func (s *SeasonLogic) CancelSeason(recordID uint, walletAddress string) error {
	if recordID == 0 || walletAddress == "" {
		return fmt.Errorf("%w: recordId or walletAddress", ErrMissingFields)
	}

	var record model.SeasonRecord
	err := s.db.Where("id = ? AND wallet_address = ?", recordID, strings.ToLower(walletAddress)).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeasonNotFound
		}
		return fmt.Errorf("failed to look up season record: %w", err)
	}

	now := time.Now()
	if err := s.db.Model(&record).Updates(map[string]interface{}{
		"active":       false,
		"cancelled_at": now,
	}).Error; err != nil {
		return fmt.Errorf("failed to cancel season: %w", err)
	}

	return nil
}

// ActiveSeason 查询钱包最近的活跃赛季，没有则返回nil
func (s *SeasonLogic) ActiveSeason(walletAddress string) (*model.SeasonRecord, error) {
	var record model.SeasonRecord
	err := s.db.Where("wallet_address = ? AND active = ?", strings.ToLower(walletAddress), true).
		Order("timestamp DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query active season: %w", err)
	}
	return &record, nil
}

// CompletedSeason 查询钱包最近的已完成赛季，没有则返回nil
func (s *SeasonLogic) CompletedSeason(walletAddress string) (*model.SeasonRecord, error) {
	var record model.SeasonRecord
	err := s.db.Where("wallet_address = ? AND completed = ? AND active = ?",
		strings.ToLower(walletAddress), true, false).
		Order("timestamp DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query completed season: %w", err)
	}
	return &record, nil
}
