package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paraxels/eon-miniapp/internal/logger"
	"github.com/paraxels/eon-miniapp/internal/logic"
	"gorm.io/gorm"
)

type ProgressHandler struct {
	progressLogic *logic.ProgressLogic
}

func NewProgressHandler(db *gorm.DB) *ProgressHandler {
	return &ProgressHandler{
		progressLogic: logic.NewProgressLogic(db),
	}
}

// GetDonationProgress 查询钱包在当前赛季窗口的捐赠进度
func (h *ProgressHandler) GetDonationProgress(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		ErrorResponse(c, http.StatusBadRequest, "Wallet address is required")
		return
	}

	progress, err := h.progressLogic.Progress(address)
	if err != nil {
		logger.Error("Failed to retrieve donation progress for %s: %v", address, err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve donation progress")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"totalDonated":     progress.TotalDonated,
		"transactionCount": progress.TransactionCount,
		"transactions":     progress.Transactions,
		"seasonCompleted":  progress.SeasonCompleted,
	})
}

// GetTotalDonations 全站捐赠总额
// 存储故障时降级为零值成功响应，不阻塞前端展示
func (h *ProgressHandler) GetTotalDonations(c *gin.Context) {
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate, max-age=0, s-maxage=0")

	totals, err := h.progressLogic.TotalDonations()
	if err != nil {
		logger.Error("Failed to calculate total donations: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"totalDonated":     0,
			"transactionCount": 0,
			"error":            "Database temporarily unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"totalDonated":     totals.TotalDonated,
		"transactionCount": totals.TransactionCount,
	})
}

// GetTransactionCount 交易记录总数
func (h *ProgressHandler) GetTransactionCount(c *gin.Context) {
	count, err := h.progressLogic.TransactionCount()
	if err != nil {
		logger.Error("Failed to count transaction records: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
	})
}

// GetRecentTransactions 最近的交易记录列表
func (h *ProgressHandler) GetRecentTransactions(c *gin.Context) {
	records, err := h.progressLogic.RecentTransactions()
	if err != nil {
		logger.Error("Failed to retrieve transaction records: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve transaction records")
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}
