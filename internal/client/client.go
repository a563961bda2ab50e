package client

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/feral-file/ff-marketplace-v2/internal/adapter"
	"github.com/feral-file/ff-marketplace-v2/internal/api/rest/dto"
	"github.com/feral-file/ff-marketplace-v2/internal/domain"
	"github.com/feral-file/ff-marketplace-v2/internal/uploads"
)

const (
	DEFAULT_CACHE_TTL          = 30 * time.Second
	DEFAULT_CACHE_STALE_WINDOW = 5 * time.Minute
)

// Config holds configuration for the marketplace API client
type Config struct {
	// BaseURL is the API server root, e.g. "https://market.example.com"
	BaseURL string

	// CacheTTL is how long query responses are served from cache
	CacheTTL time.Duration

	// CacheStaleWindow is how long an expired cache entry may still be served
	// when the upstream fetch fails. Entries older than this are never used.
	CacheStaleWindow time.Duration
}

// Client is a typed client for the marketplace API. Query responses are cached
// for a configurable TTL; the cache is advisory only and is dropped whenever
// the authenticated account switches.
//
//go:generate mockgen -source=client.go -destination=../mocks/market_client.go -package=mocks -mock_names=Client=MockMarketClient
type Client interface {
	// SetAccount switches the bearer token used for authenticated calls and
	// drops the response cache
	SetAccount(token string)
	// SetAPIKey sets the API key used for operator calls
	SetAPIKey(key string)

	// GetListingFee fetches the fee charged on new listings
	GetListingFee(ctx context.Context) (string, error)
	// UpdateListingFee sets the fee charged on new listings (API key)
	UpdateListingFee(ctx context.Context, fee string) (string, error)

	// CreateItem lists a token for sale as the authenticated account
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (*domain.MarketItem, error)
	// ExecuteSale settles a sale with the authenticated account as buyer
	ExecuteSale(ctx context.Context, itemID uint64, req dto.ExecuteSaleRequest) (*domain.MarketItem, error)
	// CancelItem delists an item as the authenticated account
	CancelItem(ctx context.Context, itemID uint64, req dto.CancelItemRequest) (*domain.MarketItem, error)

	// GetItem retrieves a market item by its ID
	GetItem(ctx context.Context, itemID uint64) (*domain.MarketItem, error)
	// GetAvailableItems retrieves all items currently listed for sale
	GetAvailableItems(ctx context.Context) ([]*domain.MarketItem, error)
	// GetLatestItemByToken retrieves the most recent listing of a token.
	// The boolean is false when the token was never listed.
	GetLatestItemByToken(ctx context.Context, tokenID string) (*domain.MarketItem, bool, error)
	// GetItemsByRole retrieves items where the authenticated account is the
	// seller or the owner
	GetItemsByRole(ctx context.Context, role domain.Role) ([]*domain.MarketItem, error)
	// GetStats retrieves the lifetime market counters
	GetStats(ctx context.Context) (*domain.MarketStats, error)

	// UploadJSON stores a JSON document and returns its URL
	UploadJSON(ctx context.Context, document map[string]interface{}) (*uploads.StoredObject, error)
	// CreateWebhookClient registers a webhook client (API key)
	CreateWebhookClient(ctx context.Context, req dto.CreateWebhookClientRequest) (*dto.CreateWebhookClientResponse, error)
}

// cacheEntry is one cached query response
type cacheEntry struct {
	value     interface{}
	fetchedAt time.Time
}

type client struct {
	config Config
	http   adapter.HTTPClient
	json   adapter.JSON
	clock  adapter.Clock

	mu     sync.RWMutex
	token  string
	apiKey string
	cache  map[string]*cacheEntry
}

// NewClient creates a marketplace API client
func NewClient(config Config, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON, clock adapter.Clock) Client {
	if config.CacheTTL <= 0 {
		config.CacheTTL = DEFAULT_CACHE_TTL
	}
	if config.CacheStaleWindow <= 0 {
		config.CacheStaleWindow = DEFAULT_CACHE_STALE_WINDOW
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	return &client{
		config: config,
		http:   httpClient,
		json:   jsonAdapter,
		clock:  clock,
		cache:  map[string]*cacheEntry{},
	}
}

// SetAccount switches the bearer token and drops the response cache
func (c *client) SetAccount(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.cache = map[string]*cacheEntry{}
}

// SetAPIKey sets the API key used for operator calls
func (c *client) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = key
}

func (c *client) url(path string) string {
	return c.config.BaseURL + path
}

func (c *client) bearerHeaders() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return map[string]string{
		"Authorization": "Bearer " + c.token,
		"Content-Type":  "application/json",
	}
}

func (c *client) apiKeyHeaders() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return map[string]string{
		"Authorization": "apikey " + c.apiKey,
		"Content-Type":  "application/json",
	}
}

// invalidate drops the response cache. Mutations call it so the next query
// observes the new ledger state instead of a cached snapshot.
func (c *client) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = map[string]*cacheEntry{}
}

// cached serves key from cache within the TTL, otherwise fetches. When the
// fetch fails an expired entry is still served as long as it is within the
// stale window.
func (c *client) cached(key string, fetch func() (interface{}, error)) (interface{}, error) {
	c.mu.RLock()
	entry := c.cache[key]
	c.mu.RUnlock()

	now := c.clock.Now()

	if entry != nil && now.Sub(entry.fetchedAt) < c.config.CacheTTL {
		return entry.value, nil
	}

	value, err := fetch()
	if err != nil {
		if entry != nil && now.Sub(entry.fetchedAt) < c.config.CacheStaleWindow {
			return entry.value, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = &cacheEntry{value: value, fetchedAt: now}
	c.mu.Unlock()

	return value, nil
}

// GetListingFee fetches the fee charged on new listings
func (c *client) GetListingFee(ctx context.Context) (string, error) {
	value, err := c.cached("fee", func() (interface{}, error) {
		var resp dto.ListingFeeResponse
		if err := c.http.Get(ctx, c.url("/api/v1/market/fee"), &resp); err != nil {
			return nil, fmt.Errorf("failed to get listing fee: %w", err)
		}
		return resp.ListingFee, nil
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// UpdateListingFee sets the fee charged on new listings
func (c *client) UpdateListingFee(ctx context.Context, fee string) (string, error) {
	body, err := c.json.Marshal(dto.UpdateListingFeeRequest{ListingFee: fee})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	respBody, err := c.http.PutWithHeaders(ctx, c.url("/api/v1/market/fee"), c.apiKeyHeaders(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to update listing fee: %w", err)
	}

	var resp dto.ListingFeeResponse
	if err := c.json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	c.invalidate()
	return resp.ListingFee, nil
}

// CreateItem lists a token for sale as the authenticated account
func (c *client) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*domain.MarketItem, error) {
	return c.mutateItem(ctx, "/api/v1/market/items", req)
}

// ExecuteSale settles a sale with the authenticated account as buyer
func (c *client) ExecuteSale(ctx context.Context, itemID uint64, req dto.ExecuteSaleRequest) (*domain.MarketItem, error) {
	return c.mutateItem(ctx, fmt.Sprintf("/api/v1/market/items/%d/sale", itemID), req)
}

// CancelItem delists an item as the authenticated account
func (c *client) CancelItem(ctx context.Context, itemID uint64, req dto.CancelItemRequest) (*domain.MarketItem, error) {
	return c.mutateItem(ctx, fmt.Sprintf("/api/v1/market/items/%d/cancel", itemID), req)
}

// mutateItem posts a ledger mutation and decodes the resulting item snapshot
func (c *client) mutateItem(ctx context.Context, path string, req interface{}) (*domain.MarketItem, error) {
	body, err := c.json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	respBody, err := c.http.PostWithHeaders(ctx, c.url(path), c.bearerHeaders(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var item domain.MarketItem
	if err := c.json.Unmarshal(respBody, &item); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.invalidate()
	return &item, nil
}

// GetItem retrieves a market item by its ID
func (c *client) GetItem(ctx context.Context, itemID uint64) (*domain.MarketItem, error) {
	value, err := c.cached(fmt.Sprintf("item:%d", itemID), func() (interface{}, error) {
		var item domain.MarketItem
		if err := c.http.Get(ctx, c.url(fmt.Sprintf("/api/v1/market/items/%d", itemID)), &item); err != nil {
			return nil, fmt.Errorf("failed to get item %d: %w", itemID, err)
		}
		return &item, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.MarketItem), nil
}

// GetAvailableItems retrieves all items currently listed for sale
func (c *client) GetAvailableItems(ctx context.Context) ([]*domain.MarketItem, error) {
	value, err := c.cached("items:available", func() (interface{}, error) {
		var resp dto.ItemsResponse
		if err := c.http.Get(ctx, c.url("/api/v1/market/items/available"), &resp); err != nil {
			return nil, fmt.Errorf("failed to get available items: %w", err)
		}
		return resp.Items, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]*domain.MarketItem), nil
}

// GetLatestItemByToken retrieves the most recent listing of a token
func (c *client) GetLatestItemByToken(ctx context.Context, tokenID string) (*domain.MarketItem, bool, error) {
	value, err := c.cached("items:latest:"+tokenID, func() (interface{}, error) {
		var resp dto.LatestItemResponse
		url := c.url("/api/v1/market/items/latest?token_id=" + tokenID)
		if err := c.http.Get(ctx, url, &resp); err != nil {
			return nil, fmt.Errorf("failed to get latest item: %w", err)
		}
		return &resp, nil
	})
	if err != nil {
		return nil, false, err
	}
	resp := value.(*dto.LatestItemResponse)
	return resp.Item, resp.Listed, nil
}

// GetItemsByRole retrieves items for the authenticated account by role
func (c *client) GetItemsByRole(ctx context.Context, role domain.Role) ([]*domain.MarketItem, error) {
	value, err := c.cached("items:role:"+string(role), func() (interface{}, error) {
		var resp dto.ItemsResponse
		url := c.url("/api/v1/market/items?role=" + string(role))
		if err := c.http.GetWithHeaders(ctx, url, c.bearerHeaders(), &resp); err != nil {
			return nil, fmt.Errorf("failed to get items by role: %w", err)
		}
		return resp.Items, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]*domain.MarketItem), nil
}

// GetStats retrieves the lifetime market counters
func (c *client) GetStats(ctx context.Context) (*domain.MarketStats, error) {
	value, err := c.cached("stats", func() (interface{}, error) {
		var stats domain.MarketStats
		if err := c.http.Get(ctx, c.url("/api/v1/market/stats"), &stats); err != nil {
			return nil, fmt.Errorf("failed to get market stats: %w", err)
		}
		return &stats, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.MarketStats), nil
}

// UploadJSON stores a JSON document and returns its URL
func (c *client) UploadJSON(ctx context.Context, document map[string]interface{}) (*uploads.StoredObject, error) {
	body, err := c.json.Marshal(dto.UploadJSONRequest{Document: document})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	respBody, err := c.http.PostWithHeaders(ctx, c.url("/api/v1/uploads/json"), c.bearerHeaders(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var obj uploads.StoredObject
	if err := c.json.Unmarshal(respBody, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &obj, nil
}

// CreateWebhookClient registers a webhook client
func (c *client) CreateWebhookClient(ctx context.Context, req dto.CreateWebhookClientRequest) (*dto.CreateWebhookClientResponse, error) {
	body, err := c.json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	respBody, err := c.http.PostWithHeaders(ctx, c.url("/api/v1/webhooks/clients"), c.apiKeyHeaders(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var resp dto.CreateWebhookClientResponse
	if err := c.json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &resp, nil
}
