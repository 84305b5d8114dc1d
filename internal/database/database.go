package database

import (
	"fmt"

	"github.com/paraxels/eon-miniapp/internal/config"
	"github.com/paraxels/eon-miniapp/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 自动迁移并创建约束索引
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.SeasonRecord{},
		&model.TransactionRecord{},
		&model.UserProfile{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// 每个钱包最多一条活跃赛季记录，由存储层强制
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_season_per_wallet
		 ON season_records (wallet_address) WHERE active`,
	).Error; err != nil {
		return fmt.Errorf("failed to create active season index: %w", err)
	}

	return nil
}
