package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paraxels/eon-miniapp/internal/logger"
	"github.com/paraxels/eon-miniapp/internal/logic"
	"github.com/paraxels/eon-miniapp/internal/metrics"
	"gorm.io/gorm"
)

type SeasonHandler struct {
	seasonLogic *logic.SeasonLogic
}

func NewSeasonHandler(db *gorm.DB, testnet bool) *SeasonHandler {
	return &SeasonHandler{
		seasonLogic: logic.NewSeasonLogic(db, testnet),
	}
}

// CreateCommitment 创建赛季承诺
func (h *SeasonHandler) CreateCommitment(c *gin.Context) {
	var req CreateCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.seasonLogic.CreateSeason(&logic.CreateSeasonInput{
		Fid:             req.Fid,
		WalletAddress:   req.WalletAddress,
		TransactionHash: req.TransactionHash,
		DollarAmount:    req.DollarAmount,
		PercentAmount:   req.PercentAmount,
		Authorized:      req.Authorized,
	})
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create season record: %v", err)
		}
		ErrorResponse(c, status, err.Error())
		return
	}

	metrics.Business.CommitmentsCreatedTotal.Inc()
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"insertedId": record.ID,
		"record":     record,
	})
}

// CancelCommitment 取消赛季承诺
func (h *SeasonHandler) CancelCommitment(c *gin.Context) {
	var req CancelCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.seasonLogic.CancelSeason(req.RecordID, req.WalletAddress); err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to cancel season %d: %v", req.RecordID, err)
		}
		ErrorResponse(c, status, err.Error())
		return
	}

	metrics.Business.CommitmentsCancelledTotal.Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Season cancelled successfully",
	})
}

// GetActiveCommitment 查询钱包最近的活跃赛季
func (h *SeasonHandler) GetActiveCommitment(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		ErrorResponse(c, http.StatusBadRequest, "Wallet address is required")
		return
	}

	record, err := h.seasonLogic.ActiveSeason(address)
	if err != nil {
		logger.Error("Failed to retrieve active season for %s: %v", address, err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve wallet records")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"hasActiveRecord": record != nil,
		"record":          record,
	})
}

// GetCompletedCommitment 查询钱包最近的已完成赛季
func (h *SeasonHandler) GetCompletedCommitment(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		ErrorResponse(c, http.StatusBadRequest, "Wallet address is required")
		return
	}

	record, err := h.seasonLogic.CompletedSeason(address)
	if err != nil {
		logger.Error("Failed to retrieve completed season for %s: %v", address, err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve wallet records")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"hasCompletedRecord": record != nil,
		"record":             record,
	})
}
