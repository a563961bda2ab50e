package dto

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/feral-file/ff-marketplace-v2/internal/domain"
	"github.com/feral-file/ff-marketplace-v2/internal/webhook"
)

const (
	DEFAULT_RETRY_MAX_ATTEMPTS = 3
	MAX_RETRY_MAX_ATTEMPTS     = 10
)

// CreateItemRequest represents the request body for creating a listing
type CreateItemRequest struct {
	CollectionContract string `json:"collection_contract"`
	TokenID            string `json:"token_id"`
	Price              string `json:"price"`
	// Payment must equal the current listing fee exactly
	Payment string `json:"payment"`
	// Creator is an optional fallback when the collection does not expose a
	// creator lookup
	Creator string `json:"creator,omitempty"`
}

// Validate validates the request body
func (r *CreateItemRequest) Validate() error {
	if r.CollectionContract == "" {
		return errors.New("collection_contract is required")
	}
	if _, err := domain.NormalizeAddress(r.CollectionContract); err != nil {
		return fmt.Errorf("invalid collection_contract: %s", r.CollectionContract)
	}
	if r.TokenID == "" {
		return errors.New("token_id is required")
	}
	if r.Price == "" {
		return errors.New("price is required")
	}
	if _, err := domain.ParseAmount(r.Price); err != nil {
		return fmt.Errorf("invalid price: %s", r.Price)
	}
	if r.Payment == "" {
		return errors.New("payment is required")
	}
	if _, err := domain.ParseAmount(r.Payment); err != nil {
		return fmt.Errorf("invalid payment: %s", r.Payment)
	}
	if r.Creator != "" {
		if _, err := domain.NormalizeAddress(r.Creator); err != nil {
			return fmt.Errorf("invalid creator: %s", r.Creator)
		}
	}
	return nil
}

// ExecuteSaleRequest represents the request body for settling a sale
type ExecuteSaleRequest struct {
	CollectionContract string `json:"collection_contract"`
	// Payment must equal the asking price exactly
	Payment string `json:"payment"`
}

// Validate validates the request body
func (r *ExecuteSaleRequest) Validate() error {
	if r.CollectionContract == "" {
		return errors.New("collection_contract is required")
	}
	if _, err := domain.NormalizeAddress(r.CollectionContract); err != nil {
		return fmt.Errorf("invalid collection_contract: %s", r.CollectionContract)
	}
	if r.Payment == "" {
		return errors.New("payment is required")
	}
	if _, err := domain.ParseAmount(r.Payment); err != nil {
		return fmt.Errorf("invalid payment: %s", r.Payment)
	}
	return nil
}

// CancelItemRequest represents the request body for canceling a listing
type CancelItemRequest struct {
	CollectionContract string `json:"collection_contract"`
}

// Validate validates the request body
func (r *CancelItemRequest) Validate() error {
	if r.CollectionContract == "" {
		return errors.New("collection_contract is required")
	}
	if _, err := domain.NormalizeAddress(r.CollectionContract); err != nil {
		return fmt.Errorf("invalid collection_contract: %s", r.CollectionContract)
	}
	return nil
}

// UpdateListingFeeRequest represents the request body for changing the listing fee
type UpdateListingFeeRequest struct {
	ListingFee string `json:"listing_fee"`
}

// Validate validates the request body
func (r *UpdateListingFeeRequest) Validate() error {
	if r.ListingFee == "" {
		return errors.New("listing_fee is required")
	}
	if _, err := domain.ParseAmount(r.ListingFee); err != nil {
		return fmt.Errorf("invalid listing_fee: %s", r.ListingFee)
	}
	return nil
}

// CreateWebhookClientRequest represents the request body for creating a webhook client
type CreateWebhookClientRequest struct {
	Name             string   `json:"name"`
	WebhookURL       string   `json:"webhook_url"`
	EventFilters     []string `json:"event_filters"`
	RetryMaxAttempts *int     `json:"retry_max_attempts,omitempty"`
}

// Validate validates the request body. Outside debug mode webhook URLs must
// be HTTPS.
func (r *CreateWebhookClientRequest) Validate(debug bool) error {
	// Validate: webhook URL must be provided
	if r.WebhookURL == "" {
		return errors.New("webhook_url is required")
	}

	// Validate: webhook URL must be valid
	u, err := url.Parse(r.WebhookURL)
	if err != nil || u.Host == "" {
		return errors.New("webhook_url must be a valid URL")
	}
	if debug {
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.New("webhook_url must be a valid URL")
		}
	} else if u.Scheme != "https" {
		return errors.New("webhook_url must be a valid HTTPS URL")
	}

	// Validate: event filters must be provided
	if len(r.EventFilters) == 0 {
		return errors.New("event_filters is required and must not be empty")
	}

	// Validate: each event filter must be supported
	for _, eventType := range r.EventFilters {
		if !webhook.IsValidEventType(eventType) {
			return fmt.Errorf("unsupported event type: %s. Supported types: %v", eventType, webhook.SupportedEventTypes)
		}
	}

	// Validate: retry_max_attempts must be valid if provided
	if r.RetryMaxAttempts != nil {
		if *r.RetryMaxAttempts < 0 || *r.RetryMaxAttempts > MAX_RETRY_MAX_ATTEMPTS {
			return fmt.Errorf("retry_max_attempts must be between 0 and %d", MAX_RETRY_MAX_ATTEMPTS)
		}
	}

	return nil
}

// UploadJSONRequest represents the request body for storing a JSON document
type UploadJSONRequest struct {
	Document map[string]interface{} `json:"document"`
}

// Validate validates the request body
func (r *UploadJSONRequest) Validate() error {
	if len(r.Document) == 0 {
		return errors.New("document is required and must not be empty")
	}
	return nil
}

// ItemsResponse wraps a list of market items
type ItemsResponse struct {
	Items []*domain.MarketItem `json:"items"`
	Total int                  `json:"total"`
}

// LatestItemResponse reports the most recent listing of a token. Listed is
// false when the token was never listed, and Item is omitted.
type LatestItemResponse struct {
	Listed bool               `json:"listed"`
	Item   *domain.MarketItem `json:"item,omitempty"`
}

// ListingFeeResponse carries the fee charged on new listings
type ListingFeeResponse struct {
	ListingFee string `json:"listing_fee"`
}

// CreateWebhookClientResponse represents the response for creating a webhook client
type CreateWebhookClientResponse struct {
	ClientID         string    `json:"client_id"`
	Name             string    `json:"name,omitempty"`
	WebhookURL       string    `json:"webhook_url"`
	WebhookSecret    string    `json:"webhook_secret"`
	EventFilters     []string  `json:"event_filters"`
	IsActive         bool      `json:"is_active"`
	RetryMaxAttempts int       `json:"retry_max_attempts"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
