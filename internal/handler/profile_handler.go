package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paraxels/eon-miniapp/internal/logger"
	"github.com/paraxels/eon-miniapp/internal/logic"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	profileLogic *logic.ProfileLogic
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{
		profileLogic: logic.NewProfileLogic(db),
	}
}

// GetProfile 按fid查询用户档案
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	fid := c.Query("fid")
	if fid == "" {
		ErrorResponse(c, http.StatusBadRequest, "FID is required")
		return
	}

	profile, err := h.profileLogic.GetProfile(fid)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to retrieve user profile %s: %v", fid, err)
			ErrorResponse(c, status, "Internal server error")
			return
		}
		ErrorResponse(c, status, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": profile,
	})
}

// UpsertProfile 创建或更新用户档案
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Fid == "" {
		ErrorResponse(c, http.StatusBadRequest, "FID is required")
		return
	}

	profile, isNew, err := h.profileLogic.UpsertProfile(&logic.UpsertProfileInput{
		Fid:      req.Fid,
		Username: req.Username,
		Wallet:   req.Wallet,
	})
	if err != nil {
		logger.Error("Failed to upsert user profile %s: %v", req.Fid, err)
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"profile":      profile,
		"isNewProfile": isNew,
	})
}

// PatchProfile 局部更新用户档案
func (h *ProfileHandler) PatchProfile(c *gin.Context) {
	var req PatchProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Fid == "" {
		ErrorResponse(c, http.StatusBadRequest, "FID is required")
		return
	}

	if err := h.profileLogic.PatchProfile(req.Fid, req.ShownAddMiniappPrompt); err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to update user profile %s: %v", req.Fid, err)
			ErrorResponse(c, status, "Internal server error")
			return
		}
		ErrorResponse(c, status, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"updated": true,
	})
}

// ListProfiles 分页列出用户档案
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	sort := c.DefaultQuery("sort", "lastVisitAt")
	ascending := c.Query("order") == "asc"

	profiles, total, stats, err := h.profileLogic.ListProfiles(limit, skip, sort, ascending)
	if err != nil {
		logger.Error("Failed to list user profiles: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"profiles": profiles,
		"pagination": gin.H{
			"total":   total,
			"limit":   limit,
			"skip":    skip,
			"hasMore": int64(skip+len(profiles)) < total,
		},
		"stats": stats,
	})
}
