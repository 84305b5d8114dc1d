package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paraxels/eon-miniapp/internal/logger"
	"github.com/paraxels/eon-miniapp/internal/metrics"
	"github.com/paraxels/eon-miniapp/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// usdcBaseUnits USDC最小单位换算，1000000 = $1.00
const usdcBaseUnits = 1_000_000

// recentTransactionLimit 最近交易列表条数上限
const recentTransactionLimit = 100

// ProgressLogic 捐赠进度业务逻辑
type ProgressLogic struct {
	db *gorm.DB
}

// NewProgressLogic 创建捐赠进度业务逻辑
func NewProgressLogic(db *gorm.DB) *ProgressLogic {
	return &ProgressLogic{db: db}
}

// ProgressTransaction 进度明细中的单笔交易
type ProgressTransaction struct {
	TxHash         string    `json:"txHash"`
	DonationTxHash string    `json:"donationTxHash,omitempty"`
	Amount         int64     `json:"amount"`
	Timestamp      time.Time `json:"timestamp"`
}

// Progress 钱包在当前赛季窗口内的捐赠进度
type Progress struct {
	TotalDonated     int64                 `json:"totalDonated"` // USDC最小单位
	TransactionCount int                   `json:"transactionCount"`
	Transactions     []ProgressTransaction `json:"transactions"`
	SeasonCompleted  bool                  `json:"seasonCompleted"`
}

// Progress 统计钱包的赛季捐赠进度
// 有活跃赛季时只统计赛季开始之后的成功交易，并在达标时落库完成状态；
// 完成状态只在这里和后台对账任务写入，客户端不参与
func (p *ProgressLogic) Progress(walletAddress string) (*Progress, error) {
	wallet := strings.ToLower(walletAddress)

	// 活跃赛季决定统计窗口
	var season *model.SeasonRecord
	var active model.SeasonRecord
	err := p.db.Where("wallet_address = ? AND active = ?", wallet, true).
		Order("timestamp DESC").
		First(&active).Error
	switch {
	case err == nil:
		season = &active
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to query active season: %w", err)
	}

	// 地址写入时已小写，这里用LOWER兜底外部写入的记录
	var records []model.TransactionRecord
	if err := p.db.Where("LOWER(donation_from) = ? AND status = ?", wallet, model.TransactionStatusSuccess).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query transaction records: %w", err)
	}

	// 按赛季开始时间过滤
	filtered := records
	if season != nil {
		filtered = make([]model.TransactionRecord, 0, len(records))
		for _, tx := range records {
			ts := tx.EffectiveTimestamp()
			if !ts.IsZero() && !ts.Before(season.Timestamp) {
				filtered = append(filtered, tx)
			}
		}
	}

	var total int64
	transactions := make([]ProgressTransaction, 0, len(filtered))
	for _, tx := range filtered {
		total += tx.Donation.UsdcValue
		// 明细时间优先链上出块时间，缺失时退回createdAt
		ts := tx.CreatedAt
		if tx.Donation.BlockTimestamp > 0 {
			ts = time.Unix(tx.Donation.BlockTimestamp, 0)
		}
		transactions = append(transactions, ProgressTransaction{
			TxHash:         tx.TxHash,
			DonationTxHash: tx.Donation.DonationTxHash,
			Amount:         tx.Donation.UsdcValue,
			Timestamp:      ts,
		})
	}

	progress := &Progress{
		TotalDonated:     total,
		TransactionCount: len(transactions),
		Transactions:     transactions,
	}

	if season != nil {
		completed, err := p.reconcileSeason(season, filtered)
		if err != nil {
			return nil, err
		}
		progress.SeasonCompleted = completed
	}

	return progress, nil
}

// reconcileSeason 赛季完成判定
// 按记录顺序累加，累计达到目标即停；达标后将赛季置为完成且不再活跃。
// WHERE active=true保证状态翻转只发生一次
func (p *ProgressLogic) reconcileSeason(season *model.SeasonRecord, txs []model.TransactionRecord) (bool, error) {
	if season.DollarAmount <= 0 {
		return false, nil
	}

	goal := decimal.NewFromFloat(season.DollarAmount).
		Mul(decimal.NewFromInt(usdcBaseUnits)).
		IntPart()

	var running int64
	for _, tx := range txs {
		if running >= goal {
			break
		}
		running += tx.Donation.UsdcValue
	}
	if running < goal {
		return false, nil
	}

	now := time.Now()
	result := p.db.Model(&model.SeasonRecord{}).
		Where("id = ? AND active = ?", season.ID, true).
		Updates(map[string]interface{}{
			"active":       false,
			"completed":    true,
			"completed_at": now,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark season completed: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		metrics.Business.SeasonsCompletedTotal.Inc()
		logger.Info("Season %d completed for wallet %s: %d of %d base units donated",
			season.ID, season.WalletAddress, running, goal)
	}

	return true, nil
}

// TotalDonations 全站捐赠总额
type TotalDonations struct {
	TotalDonated     int64 `json:"totalDonated"`
	TransactionCount int64 `json:"transactionCount"`
}

// TotalDonations 统计成功且有捐赠金额的交易总额和笔数
func (p *ProgressLogic) TotalDonations() (*TotalDonations, error) {
	var result TotalDonations
	if err := p.db.Model(&model.TransactionRecord{}).
		Where("status = ? AND donation_usdc_value > 0", model.TransactionStatusSuccess).
		Select("COALESCE(SUM(donation_usdc_value), 0) AS total_donated, COUNT(*) AS transaction_count").
		Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to calculate total donations: %w", err)
	}
	return &result, nil
}

// TransactionCount 统计交易记录总数
func (p *ProgressLogic) TransactionCount() (int64, error) {
	var count int64
	if err := p.db.Model(&model.TransactionRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transaction records: %w", err)
	}
	return count, nil
}

// RecentTransactions 最近的交易记录，新的在前
func (p *ProgressLogic) RecentTransactions() ([]model.TransactionRecord, error) {
	var records []model.TransactionRecord
	if err := p.db.Order("created_at DESC").
		Limit(recentTransactionLimit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query recent transactions: %w", err)
	}
	return records, nil
}
