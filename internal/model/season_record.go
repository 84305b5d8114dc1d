package model

import "time"

// SeasonRecord 捐赠承诺记录（一个赛季）
// 链上授权交易确认后创建，取消或完成时置为非活跃
type SeasonRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 承诺信息
	Fid             string  `json:"fid" gorm:"index"`
	WalletAddress   string  `json:"walletAddress" gorm:"not null;index"`
	TransactionHash string  `json:"transactionHash" gorm:"not null;uniqueIndex"`
	DollarAmount    float64 `json:"dollarAmount" gorm:"not null"`
	PercentAmount   float64 `json:"percentAmount" gorm:"not null"`
	Authorized      string  `json:"authorized" gorm:"not null"`

	// 生命周期
	Active      bool       `json:"active" gorm:"default:true"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	// 网络信息
	Target    string    `json:"target" gorm:"not null"`
	Timestamp time.Time `json:"timestamp"`
	Network   string    `json:"network" gorm:"not null"`
}

func (SeasonRecord) TableName() string {
	return "season_records"
}
