package model

import "time"

// Donation 捐赠转账明细（嵌入 TransactionRecord）
type Donation struct {
	From           string `json:"from" gorm:"index"`
	To             string `json:"to"`
	UsdcValue      int64  `json:"usdcValue"` // USDC 最小单位，1000000 = $1.00
	BlockTimestamp int64  `json:"blockTimestamp"`
	ProcessedAt    int64  `json:"processedAt"`
	DonationTxHash string `json:"donationTxHash"`
}

// TransactionRecord 原始捐赠交易记录
// 由外部结算流程写入，本服务只读（追加型数据）
type TransactionRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TxHash   string   `json:"txHash" gorm:"not null;uniqueIndex"`
	Status   string   `json:"status" gorm:"index"`
	Donation Donation `json:"donation" gorm:"embedded;embeddedPrefix:donation_"`
}

func (TransactionRecord) TableName() string {
	return "transaction_records"
}

// TransactionStatusSuccess 结算成功状态
const TransactionStatusSuccess = "success"

// EffectiveTimestamp 取交易的有效时间
// 按 createdAt、updatedAt、blockTimestamp、processedAt 的顺序取第一个存在的字段
func (t *TransactionRecord) EffectiveTimestamp() time.Time {
	if !t.CreatedAt.IsZero() {
		return t.CreatedAt
	}
	if !t.UpdatedAt.IsZero() {
		return t.UpdatedAt
	}
	if t.Donation.BlockTimestamp > 0 {
		return time.Unix(t.Donation.BlockTimestamp, 0)
	}
	if t.Donation.ProcessedAt > 0 {
		return time.Unix(t.Donation.ProcessedAt, 0)
	}
	return time.Time{}
}
