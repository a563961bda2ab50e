package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-marketplace-v2/internal/domain"
	"github.com/feral-file/ff-marketplace-v2/internal/store/schema"
)

// CreateMarketItemInput carries everything needed to record a new listing.
// The item ID is allocated inside the transaction from the total-created
// counter, so callers must not supply one. Event is journaled atomically with
// the row writes; its ItemID field is filled in once the ID is known.
type CreateMarketItemInput struct {
	CollectionContract string
	TokenID            string
	Creator            string
	Seller             string
	Price              string
	ListingFee         string
	EscrowAccount      string
	Event              domain.MarketEvent
}

// MarkItemSoldInput carries the parameters for settling a sale. The proceeds
// and fee transfers are derived inside the transaction from the stored item
// and the listing-fee transfer recorded at creation time.
type MarkItemSoldInput struct {
	ItemID         uint64
	Buyer          string
	EscrowAccount  string
	FeeBeneficiary string
	Event          domain.MarketEvent
}

// MarkItemCanceledInput carries the parameters for delisting an item. Seller
// is the caller's account and must match the stored seller.
type MarkItemCanceledInput struct {
	ItemID uint64
	Seller string
	Event  domain.MarketEvent
}

// CreateWebhookClientInput contains the input for creating a webhook client
type CreateWebhookClientInput struct {
	ClientID         string
	Name             string
	WebhookURL       string
	WebhookSecret    string
	EventFilters     []string
	IsActive         bool
	RetryMaxAttempts int
}

// UpsertCustodyCheckInput records the outcome of a single custody probe
type UpsertCustodyCheckInput struct {
	MarketItemID  uint64
	Status        schema.CustodyStatus
	HolderAddress string
	ErrorMessage  string
	CheckedAt     time.Time
}

// MarketCounts holds the lifetime counters backing the market statistics
type MarketCounts struct {
	TotalCreated  uint64
	TotalSold     uint64
	TotalCanceled uint64
}

// Store defines the interface for database operations
type Store interface {
	// CreateMarketItem allocates the next dense item ID and records the
	// listing, the listing-fee transfer and the creation event in one
	// transaction
	CreateMarketItem(ctx context.Context, input CreateMarketItemInput) (*schema.MarketItem, error)
	// MarkItemSold settles a sale: custody to the buyer, proceeds to the
	// seller, fee to the beneficiary, counters and journal updated in one
	// transaction
	MarkItemSold(ctx context.Context, input MarkItemSoldInput) (*schema.MarketItem, error)
	// MarkItemCanceled delists an item back to its seller in one transaction
	MarkItemCanceled(ctx context.Context, input MarkItemCanceledInput) (*schema.MarketItem, error)
	// GetMarketItemByID retrieves a market item by its ID, nil if absent
	GetMarketItemByID(ctx context.Context, id uint64) (*schema.MarketItem, error)
	// GetLatestItemByTokenID retrieves the highest-ID item for a token, nil if
	// the token was never listed
	GetLatestItemByTokenID(ctx context.Context, tokenID string) (*schema.MarketItem, error)
	// GetAvailableItems retrieves all unsold, uncanceled items in ascending ID
	// order
	GetAvailableItems(ctx context.Context) ([]*schema.MarketItem, error)
	// GetItemsBySeller retrieves all items ever listed by the given account
	GetItemsBySeller(ctx context.Context, seller string) ([]*schema.MarketItem, error)
	// GetItemsByOwner retrieves all items currently owned by the given account
	GetItemsByOwner(ctx context.Context, owner string) ([]*schema.MarketItem, error)
	// GetMarketCounts retrieves the lifetime created/sold/canceled counters
	GetMarketCounts(ctx context.Context) (*MarketCounts, error)
	// EnsureMarketCounters seeds the counter rows so later mutations can lock
	// them; existing values are left untouched
	EnsureMarketCounters(ctx context.Context) error

	// GetListingFee retrieves the current listing fee, empty string if unset
	GetListingFee(ctx context.Context) (string, error)
	// SetListingFee stores the listing fee charged on new listings
	SetListingFee(ctx context.Context, fee string) error
	// EnsureListingFee stores the fee only when no fee has been set yet
	EnsureListingFee(ctx context.Context, fee string) error

	// GetFundBalance computes an account balance as credits minus debits over
	// the fund transfer book
	GetFundBalance(ctx context.Context, account string) (string, error)
	// GetFundTransfersByItemID retrieves the transfers recorded for an item in
	// insertion order
	GetFundTransfersByItemID(ctx context.Context, itemID uint64) ([]*schema.FundTransfer, error)

	// GetJournalEvents retrieves journaled events after the given cursor in
	// ascending cursor order
	GetJournalEvents(ctx context.Context, afterCursor int64, limit int) ([]*schema.EventJournal, error)
	// GetJournalEventByEventID retrieves a journaled event by its ULID, nil if
	// absent
	GetJournalEventByEventID(ctx context.Context, eventID string) (*schema.EventJournal, error)

	// SetKeyValue stores a key-value pair
	SetKeyValue(ctx context.Context, key string, value string) error
	// GetKeyValue retrieves a value by key, empty string if absent
	GetKeyValue(ctx context.Context, key string) (string, error)

	// CreateWebhookClient creates a new webhook client
	CreateWebhookClient(ctx context.Context, input CreateWebhookClientInput) (*schema.WebhookClient, error)
	// GetWebhookClientByID retrieves a webhook client by client ID, nil if
	// absent
	GetWebhookClientByID(ctx context.Context, clientID string) (*schema.WebhookClient, error)
	// GetActiveWebhookClientsByEventType retrieves active clients whose
	// filters match the event type
	GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error)
	// DeactivateWebhookClient marks a webhook client inactive
	DeactivateWebhookClient(ctx context.Context, clientID string) error
	// CreateWebhookDelivery creates a new webhook delivery record
	CreateWebhookDelivery(ctx context.Context, delivery *schema.WebhookDelivery) error
	// UpdateWebhookDeliveryStatus updates the status and result of a webhook
	// delivery
	UpdateWebhookDeliveryStatus(ctx context.Context, deliveryID uint64, status schema.WebhookDeliveryStatus, attempts int, responseStatus *int, responseBody, errorMessage string) error

	// GetItemsForCustodyCheck retrieves available items whose custody has not
	// been verified within recheckAfter, least recently checked first
	GetItemsForCustodyCheck(ctx context.Context, recheckAfter time.Duration, limit int) ([]*schema.MarketItem, error)
	// UpsertCustodyCheck records the outcome of a custody probe for an item
	UpsertCustodyCheck(ctx context.Context, input UpsertCustodyCheckInput) error
	// GetCustodyCheckByItemID retrieves the latest custody check for an item,
	// nil if the item was never probed
	GetCustodyCheckByItemID(ctx context.Context, itemID uint64) (*schema.CustodyCheck, error)
}
