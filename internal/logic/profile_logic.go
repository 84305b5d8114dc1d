package logic

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/paraxels/eon-miniapp/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileLogic 用户档案业务逻辑
type ProfileLogic struct {
	db *gorm.DB
}

// NewProfileLogic 创建用户档案业务逻辑
func NewProfileLogic(db *gorm.DB) *ProfileLogic {
	return &ProfileLogic{db: db}
}

// UpsertProfileInput 档案更新请求
type UpsertProfileInput struct {
	Fid      string
	Username *string
	Wallet   string
}

// UpsertProfile 按fid原子化创建或更新档案
// lastVisitAt每次都更新；firstVisitAt只在首次创建时写入；
// 钱包地址按集合语义去重追加。返回值第二项表示是否新建
func (p *ProfileLogic) UpsertProfile(input *UpsertProfileInput) (*model.UserProfile, bool, error) {
	if input.Fid == "" {
		return nil, false, fmt.Errorf("%w: fid", ErrMissingFields)
	}

	now := time.Now()
	isNew := false
	var profile model.UserProfile

	err := p.db.Transaction(func(tx *gorm.DB) error {
		// 冲突即放弃的插入，避免并发请求产生重复档案
		fresh := model.UserProfile{
			Fid:          input.Fid,
			FirstVisitAt: now,
			LastVisitAt:  now,
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fid"}},
			DoNothing: true,
		}).Create(&fresh)
		if result.Error != nil {
			return result.Error
		}
		isNew = result.RowsAffected > 0

		// 行级锁串行化同一fid的并发更新，钱包集合的追加不会互相覆盖
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("fid = ?", input.Fid).First(&profile).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"last_visit_at": now}
		if input.Username != nil {
			updates["username"] = *input.Username
		}
		if input.Wallet != "" {
			wallet := strings.ToLower(input.Wallet)
			if !slices.Contains(profile.Wallets, wallet) {
				updates["wallets"] = datatypes.NewJSONSlice(append([]string(profile.Wallets), wallet))
			}
		}
		if err := tx.Model(&profile).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Where("fid = ?", input.Fid).First(&profile).Error
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert user profile: %w", err)
	}

	return &profile, isNew, nil
}

// GetProfile 按fid查询档案
func (p *ProfileLogic) GetProfile(fid string) (*model.UserProfile, error) {
	if fid == "" {
		return nil, fmt.Errorf("%w: fid", ErrMissingFields)
	}

	var profile model.UserProfile
	if err := p.db.Where("fid = ?", fid).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to query user profile: %w", err)
	}
	return &profile, nil
}

// PatchProfile 局部更新档案，顺带刷新lastVisitAt
func (p *ProfileLogic) PatchProfile(fid string, shownAddMiniappPrompt *bool) error {
	if fid == "" {
		return fmt.Errorf("%w: fid", ErrMissingFields)
	}

	updates := map[string]interface{}{"last_visit_at": time.Now()}
	if shownAddMiniappPrompt != nil {
		updates["shown_add_miniapp_prompt"] = *shownAddMiniappPrompt
	}

	result := p.db.Model(&model.UserProfile{}).Where("fid = ?", fid).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update user profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// ProfileStats 档案汇总统计
type ProfileStats struct {
	TotalProfiles   int64 `json:"totalProfiles"`
	ActiveInLast24h int64 `json:"activeInLast24h"`
	WithWallets     int64 `json:"withWallets"`
}

// 允许的排序字段，防止排序参数注入
var profileSortColumns = map[string]string{
	"lastVisitAt":  "last_visit_at",
	"firstVisitAt": "first_visit_at",
	"createdAt":    "created_at",
	"fid":          "fid",
}

// ListProfiles 分页列出档案并返回汇总统计
func (p *ProfileLogic) ListProfiles(limit, skip int, sort string, ascending bool) ([]model.UserProfile, int64, *ProfileStats, error) {
	column, ok := profileSortColumns[sort]
	if !ok {
		column = "last_visit_at"
	}
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	var total int64
	if err := p.db.Model(&model.UserProfile{}).Count(&total).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to count user profiles: %w", err)
	}

	var profiles []model.UserProfile
	if err := p.db.Order(column + " " + direction).
		Offset(skip).
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to list user profiles: %w", err)
	}

	stats := &ProfileStats{TotalProfiles: total}
	if err := p.db.Model(&model.UserProfile{}).
		Where("last_visit_at >= ?", time.Now().Add(-24*time.Hour)).
		Count(&stats.ActiveInLast24h).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to count active profiles: %w", err)
	}
	if err := p.db.Model(&model.UserProfile{}).
		Where("wallets IS NOT NULL AND CAST(wallets AS TEXT) NOT IN ('[]', 'null')").
		Count(&stats.WithWallets).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to count profiles with wallets: %w", err)
	}

	return profiles, total, stats, nil
}
