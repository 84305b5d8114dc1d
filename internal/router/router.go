package router

import (
	"github.com/gin-gonic/gin"
	"github.com/paraxels/eon-miniapp/internal/config"
	"github.com/paraxels/eon-miniapp/internal/ethereum"
	"github.com/paraxels/eon-miniapp/internal/handler"
	"github.com/paraxels/eon-miniapp/internal/search"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, ethClient *ethereum.Client, searchClient *search.Client, cfg *config.Config) *gin.Engine {
	// gin.Default已带Logger和Recovery
	r := gin.Default()
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "eon-miniapp",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 赛季承诺
	seasonHandler := handler.NewSeasonHandler(db, cfg.Chain.Testnet)
	commitments := r.Group("/commitments")
	{
		commitments.POST("", seasonHandler.CreateCommitment)
		commitments.POST("/cancel", seasonHandler.CancelCommitment)
		commitments.GET("/active", seasonHandler.GetActiveCommitment)
		commitments.GET("/completed", seasonHandler.GetCompletedCommitment)
	}

	// 捐赠进度与统计
	progressHandler := handler.NewProgressHandler(db)
	r.GET("/donation-progress", progressHandler.GetDonationProgress)
	r.GET("/total-donations", progressHandler.GetTotalDonations)
	r.GET("/transaction-count", progressHandler.GetTransactionCount)
	r.GET("/transactions", progressHandler.GetRecentTransactions)

	// 用户档案
	profileHandler := handler.NewProfileHandler(db)
	profile := r.Group("/user-profile")
	{
		profile.GET("", profileHandler.GetProfile)
		profile.POST("", profileHandler.UpsertProfile)
		profile.PATCH("", profileHandler.PatchProfile)
		profile.GET("/list", profileHandler.ListProfiles)
	}

	// 第三方代理
	balanceHandler := handler.NewBalanceHandler(ethClient)
	r.GET("/token-balance", balanceHandler.GetTokenBalance)

	searchHandler := handler.NewSearchHandler(searchClient)
	r.GET("/search", searchHandler.Search)

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
