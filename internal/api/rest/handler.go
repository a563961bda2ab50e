package rest

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feral-file/ff-marketplace-v2/internal/api/middleware"
	"github.com/feral-file/ff-marketplace-v2/internal/api/rest/dto"
	"github.com/feral-file/ff-marketplace-v2/internal/domain"
	"github.com/feral-file/ff-marketplace-v2/internal/ledger"
	"github.com/feral-file/ff-marketplace-v2/internal/store"
	"github.com/feral-file/ff-marketplace-v2/internal/uploads"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetListingFee returns the fee charged on new listings
	// GET /api/v1/market/fee
	GetListingFee(c *gin.Context)

	// UpdateListingFee changes the fee charged on subsequent listings
	// (requires API key authentication)
	// PUT /api/v1/market/fee
	UpdateListingFee(c *gin.Context)

	// CreateItem lists a token for sale (requires JWT authentication; the
	// token subject is the seller)
	// POST /api/v1/market/items
	CreateItem(c *gin.Context)

	// ExecuteSale settles a sale for an available item (requires JWT
	// authentication; the token subject is the buyer)
	// POST /api/v1/market/items/:id/sale
	ExecuteSale(c *gin.Context)

	// CancelItem delists an available item (requires JWT authentication; the
	// token subject must be the seller)
	// POST /api/v1/market/items/:id/cancel
	CancelItem(c *gin.Context)

	// GetItem retrieves a market item by its ID
	// GET /api/v1/market/items/:id
	GetItem(c *gin.Context)

	// GetAvailableItems retrieves every unsold, uncanceled listing
	// GET /api/v1/market/items/available
	GetAvailableItems(c *gin.Context)

	// GetLatestItemByToken retrieves the most recent listing of a token
	// GET /api/v1/market/items/latest?token_id=<id>
	GetLatestItemByToken(c *gin.Context)

	// GetItemsByRole retrieves the caller's items by role (requires JWT
	// authentication; the token subject is the queried account)
	// GET /api/v1/market/items?role=seller|owner
	GetItemsByRole(c *gin.Context)

	// GetStats retrieves the lifetime market counters
	// GET /api/v1/market/stats
	GetStats(c *gin.Context)

	// UploadFile stores a multipart file and returns its URL (requires JWT
	// authentication)
	// POST /api/v1/uploads
	UploadFile(c *gin.Context)

	// UploadJSON stores a JSON document and returns its URL (requires JWT
	// authentication)
	// POST /api/v1/uploads/json
	UploadJSON(c *gin.Context)

	// CreateWebhookClient creates a new webhook client (requires API key
	// authentication)
	// POST /api/v1/webhooks/clients
	CreateWebhookClient(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /healthz
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug   bool
	ledger  ledger.Ledger
	uploads uploads.Service
	store   store.Store
}

// NewHandler creates a new REST API handler around the marketplace engine
func NewHandler(debug bool, engine ledger.Ledger, uploadSvc uploads.Service, st store.Store) Handler {
	return &handler{
		debug:   debug,
		ledger:  engine,
		uploads: uploadSvc,
		store:   st,
	}
}

// GetListingFee returns the fee charged on new listings
func (h *handler) GetListingFee(c *gin.Context) {
	fee, err := h.ledger.GetListingFee(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get listing fee")
		return
	}

	c.JSON(http.StatusOK, dto.ListingFeeResponse{ListingFee: fee})
}

// UpdateListingFee changes the fee charged on subsequent listings
func (h *handler) UpdateListingFee(c *gin.Context) {
	var req dto.UpdateListingFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.ledger.UpdateListingFee(c.Request.Context(), req.ListingFee); err != nil {
		respondLedgerError(c, err, "Failed to update listing fee")
		return
	}

	fee, err := h.ledger.GetListingFee(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get listing fee")
		return
	}

	c.JSON(http.StatusOK, dto.ListingFeeResponse{ListingFee: fee})
}

// CreateItem lists a token for sale on behalf of the authenticated caller
func (h *handler) CreateItem(c *gin.Context) {
	seller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	item, err := h.ledger.CreateItem(c.Request.Context(), ledger.CreateItemParams{
		CollectionContract: req.CollectionContract,
		TokenID:            req.TokenID,
		Seller:             seller,
		Price:              req.Price,
		Payment:            req.Payment,
		Creator:            req.Creator,
	})
	if err != nil {
		respondLedgerError(c, err, "Failed to create market item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ExecuteSale settles a sale with the authenticated caller as buyer
func (h *handler) ExecuteSale(c *gin.Context) {
	buyer, ok := callerAddress(c)
	if !ok {
		return
	}

	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	var req dto.ExecuteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	item, err := h.ledger.ExecuteSale(c.Request.Context(), ledger.ExecuteSaleParams{
		CollectionContract: req.CollectionContract,
		ItemID:             itemID,
		Buyer:              buyer,
		Payment:            req.Payment,
	})
	if err != nil {
		respondLedgerError(c, err, "Failed to execute sale")
		return
	}

	c.JSON(http.StatusOK, item)
}

// CancelItem delists an item on behalf of the authenticated caller
func (h *handler) CancelItem(c *gin.Context) {
	seller, ok := callerAddress(c)
	if !ok {
		return
	}

	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	var req dto.CancelItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	item, err := h.ledger.CancelItem(c.Request.Context(), ledger.CancelItemParams{
		CollectionContract: req.CollectionContract,
		ItemID:             itemID,
		Seller:             seller,
	})
	if err != nil {
		respondLedgerError(c, err, "Failed to cancel market item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetItem retrieves a market item by its ID
func (h *handler) GetItem(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	item, err := h.ledger.GetItem(c.Request.Context(), itemID)
	if err != nil {
		respondLedgerError(c, err, "Failed to get market item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetAvailableItems retrieves every unsold, uncanceled listing
func (h *handler) GetAvailableItems(c *gin.Context) {
	items, err := h.ledger.GetAvailableItems(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get available items")
		return
	}

	c.JSON(http.StatusOK, dto.ItemsResponse{Items: items, Total: len(items)})
}

// GetLatestItemByToken retrieves the most recent listing of a token
func (h *handler) GetLatestItemByToken(c *gin.Context) {
	tokenID := c.Query("token_id")
	if tokenID == "" {
		respondBadRequest(c, "token_id is required")
		return
	}

	item, listed, err := h.ledger.GetLatestItemByTokenID(c.Request.Context(), tokenID)
	if err != nil {
		respondLedgerError(c, err, "Failed to get latest item")
		return
	}

	c.JSON(http.StatusOK, dto.LatestItemResponse{Listed: listed, Item: item})
}

// GetItemsByRole retrieves the authenticated caller's items by role
func (h *handler) GetItemsByRole(c *gin.Context) {
	account, ok := callerAddress(c)
	if !ok {
		return
	}

	role, err := domain.ParseRole(c.Query("role"))
	if err != nil {
		respondBadRequest(c, "role must be one of: seller, owner")
		return
	}

	items, err := h.ledger.GetItemsByRole(c.Request.Context(), account, role)
	if err != nil {
		respondLedgerError(c, err, "Failed to get items by role")
		return
	}

	c.JSON(http.StatusOK, dto.ItemsResponse{Items: items, Total: len(items)})
}

// GetStats retrieves the lifetime market counters
func (h *handler) GetStats(c *gin.Context) {
	stats, err := h.ledger.GetStats(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get market stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UploadFile stores a multipart file and returns its URL
func (h *handler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondValidationError(c, "file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondInternalError(c, err, "Failed to open uploaded file")
		return
	}
	defer func() { _ = f.Close() }()

	obj, err := h.uploads.StoreFile(c.Request.Context(), f)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, obj)
}

// UploadJSON stores a JSON document and returns its URL
func (h *handler) UploadJSON(c *gin.Context) {
	var req dto.UploadJSONRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	obj, err := h.uploads.StoreJSON(c.Request.Context(), req.Document)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, obj)
}

// CreateWebhookClient creates a new webhook client
func (h *handler) CreateWebhookClient(c *gin.Context) {
	var req dto.CreateWebhookClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(h.debug); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Set default retry_max_attempts if not provided
	retryMaxAttempts := dto.DEFAULT_RETRY_MAX_ATTEMPTS
	if req.RetryMaxAttempts != nil {
		retryMaxAttempts = *req.RetryMaxAttempts
	}

	secret, err := generateWebhookSecret()
	if err != nil {
		respondInternalError(c, err, "Failed to create webhook client")
		return
	}

	client, err := h.store.CreateWebhookClient(c.Request.Context(), store.CreateWebhookClientInput{
		ClientID:         uuid.New().String(),
		Name:             req.Name,
		WebhookURL:       req.WebhookURL,
		WebhookSecret:    secret,
		EventFilters:     req.EventFilters,
		IsActive:         true,
		RetryMaxAttempts: retryMaxAttempts,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to create webhook client")
		return
	}

	c.JSON(http.StatusCreated, dto.CreateWebhookClientResponse{
		ClientID:         client.ClientID,
		Name:             client.Name,
		WebhookURL:       client.WebhookURL,
		WebhookSecret:    client.WebhookSecret,
		EventFilters:     req.EventFilters,
		IsActive:         client.IsActive,
		RetryMaxAttempts: client.RetryMaxAttempts,
		CreatedAt:        client.CreatedAt,
		UpdatedAt:        client.UpdatedAt,
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "marketplace-api",
	})
}

// callerAddress extracts and normalizes the authenticated caller's account
// address. Responds with an error and returns false when the subject is
// missing or malformed.
func callerAddress(c *gin.Context) (string, bool) {
	subject := middleware.CallerAddress(c)
	if subject == "" {
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "Authenticated subject is missing")
		return "", false
	}

	address, err := domain.NormalizeAddress(subject)
	if err != nil {
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "Authenticated subject is not a valid account address")
		return "", false
	}

	return address, true
}

// itemIDParam parses the :id path parameter. Responds with an error and
// returns false when the parameter is not a positive integer.
func itemIDParam(c *gin.Context) (uint64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// generateWebhookSecret produces a hex-encoded 256-bit signing secret
func generateWebhookSecret() (string, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("failed to generate webhook secret: %w", err)
	}
	return hex.EncodeToString(secret), nil
}
