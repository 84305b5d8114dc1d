package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paraxels/eon-miniapp/internal/logger"
	"github.com/paraxels/eon-miniapp/internal/search"
)

type SearchHandler struct {
	client *search.Client
}

func NewSearchHandler(client *search.Client) *SearchHandler {
	return &SearchHandler{client: client}
}

// Search 代理慈善机构搜索
func (h *SearchHandler) Search(c *gin.Context) {
	searchTerm := c.Query("searchTerm")
	if searchTerm == "" {
		ErrorResponse(c, http.StatusBadRequest, "Search term is required")
		return
	}

	result, err := h.client.Search(c.Request.Context(), searchTerm)
	if err != nil {
		logger.Error("Failed to proxy search request for %q: %v", searchTerm, err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch search results")
		return
	}

	c.Data(http.StatusOK, "application/json", result)
}
