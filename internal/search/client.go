package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paraxels/eon-miniapp/internal/config"
	"github.com/paraxels/eon-miniapp/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Client 慈善机构搜索代理客户端
// 结果按搜索词在Redis里做旁路缓存，cache为nil时直连上游
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
	ttl        time.Duration
}

// NewClient 创建搜索客户端
func NewClient(cfg config.SearchConfig, cache *redis.Client) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		ttl:        time.Duration(cfg.CacheTTL) * time.Second,
	}
}

// Search 按关键词搜索慈善机构，透传上游的JSON响应
func (c *Client) Search(ctx context.Context, searchTerm string) (json.RawMessage, error) {
	key := "search:" + strings.ToLower(searchTerm)
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, key).Bytes(); err == nil {
			return cached, nil
		}
	}

	endpoint := fmt.Sprintf("%s?searchTerm=%s", c.baseURL, url.QueryEscape(searchTerm))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach search API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API responded with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, c.ttl).Err(); err != nil {
			logger.Warn("Failed to cache search result for %q: %v", searchTerm, err)
		}
	}

	return body, nil
}
