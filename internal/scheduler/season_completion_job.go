package scheduler

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/paraxels/eon-miniapp/internal/config"
	"github.com/paraxels/eon-miniapp/internal/logger"
	"github.com/paraxels/eon-miniapp/internal/logic"
	"github.com/paraxels/eon-miniapp/internal/metrics"
	"github.com/paraxels/eon-miniapp/internal/model"
	"gorm.io/gorm"
)

// maxReconcileWorkers 对账协程池上限
const maxReconcileWorkers = 8

// SeasonCompletionJob 赛季完成对账任务
// 周期性扫描所有活跃赛季并走进度逻辑，达标的赛季即便没人在轮询也会被置为完成
type SeasonCompletionJob struct {
	db            *gorm.DB
	progressLogic *logic.ProgressLogic
	config        *config.Config
}

// NewSeasonCompletionJob 创建赛季完成对账任务
func NewSeasonCompletionJob(db *gorm.DB, cfg *config.Config) *SeasonCompletionJob {
	return &SeasonCompletionJob{
		db:            db,
		progressLogic: logic.NewProgressLogic(db),
		config:        cfg,
	}
}

// GetName 获取任务名称
func (j *SeasonCompletionJob) GetName() string {
	return "season_completion_reconciler"
}

// GetSchedule 获取调度配置
func (j *SeasonCompletionJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *SeasonCompletionJob) Execute() {
	start := time.Now()

	var seasons []model.SeasonRecord
	if err := j.db.Where("active = ?", true).Find(&seasons).Error; err != nil {
		logger.Error("Failed to fetch active seasons: %v", err)
		return
	}
	if len(seasons) == 0 {
		return
	}

	poolSize := len(seasons)
	if poolSize > maxReconcileWorkers {
		poolSize = maxReconcileWorkers
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		logger.Error("Failed to create reconcile pool: %v", err)
		return
	}
	defer pool.Release()

	// 并发按钱包对账，进度逻辑内部保证完成状态只翻转一次
	var wg sync.WaitGroup
	for _, season := range seasons {
		s := season
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if _, err := j.progressLogic.Progress(s.WalletAddress); err != nil {
				logger.Error("Failed to reconcile season %d for wallet %s: %v", s.ID, s.WalletAddress, err)
			}
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit reconcile task: %v", err)
		}
	}
	wg.Wait()

	metrics.Business.ReconcileSweepDuration.Observe(time.Since(start).Seconds())
	logger.Debug("Season completion sweep finished: %d active seasons checked in %s",
		len(seasons), time.Since(start))
}
