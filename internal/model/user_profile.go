package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserProfile 用户档案，按 Farcaster FID 唯一
type UserProfile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Fid      string `json:"fid" gorm:"not null;uniqueIndex"`
	Username string `json:"username,omitempty"`

	// 钱包地址集合（去重，写入时统一小写）
	Wallets datatypes.JSONSlice[string] `json:"wallets"`

	FirstVisitAt          time.Time `json:"firstVisitAt"`
	LastVisitAt           time.Time `json:"lastVisitAt"`
	ShownAddMiniappPrompt bool      `json:"shownAddMiniappPrompt" gorm:"default:false"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
