package handler

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/paraxels/eon-miniapp/internal/ethereum"
	"github.com/paraxels/eon-miniapp/internal/logger"
)

type BalanceHandler struct {
	ethClient *ethereum.Client
}

func NewBalanceHandler(ethClient *ethereum.Client) *BalanceHandler {
	return &BalanceHandler{ethClient: ethClient}
}

// GetTokenBalance 代理查询ERC20代币余额
func (h *BalanceHandler) GetTokenBalance(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		ErrorResponse(c, http.StatusBadRequest, "Missing address parameter")
		return
	}
	token := c.Query("token")
	if token == "" {
		ErrorResponse(c, http.StatusBadRequest, "Missing token parameter")
		return
	}
	if !common.IsHexAddress(address) || !common.IsHexAddress(token) {
		ErrorResponse(c, http.StatusBadRequest, "Invalid address or token parameter")
		return
	}

	balance, err := h.ethClient.TokenBalance(c.Request.Context(),
		common.HexToAddress(token), common.HexToAddress(address))
	if err != nil {
		logger.Error("Failed to fetch token balance for %s: %v", address, err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch token balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"balance": balance.String(),
	})
}
