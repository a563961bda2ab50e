package webhook

import (
	"time"

	"github.com/feral-file/ff-marketplace-v2/internal/domain"
)

// EventTypeWildcard is a special filter that matches all event types
const EventTypeWildcard = "*"

// EventTypeCustodyDiverged is the alert emitted when a custody sweep finds a
// listed token held by an account other than escrow. It is webhook-only and
// never appears in the event journal.
const EventTypeCustodyDiverged = "market.custody.diverged"

// SupportedEventTypes lists every event type a client may subscribe to
var SupportedEventTypes = []string{
	string(domain.MarketEventTypeCreated),
	string(domain.MarketEventTypeSold),
	string(domain.MarketEventTypeCanceled),
	EventTypeCustodyDiverged,
	EventTypeWildcard,
}

// IsValidEventType checks whether clients may subscribe to the event type
func IsValidEventType(eventType string) bool {
	for _, t := range SupportedEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// WebhookEvent represents a webhook event to be delivered to clients
type WebhookEvent struct {
	// EventID is a unique identifier for this event (ULID for time-sortable uniqueness)
	EventID string `json:"event_id"`
	// EventType is the type of event (e.g., "market.item.created")
	EventType string `json:"event_type"`
	// Timestamp is when the event was generated
	Timestamp time.Time `json:"timestamp"`
	// Data contains the event-specific payload
	Data EventData `json:"data"`
}

// EventData contains the webhook event payload: a snapshot of the market item
// the event is about
type EventData struct {
	// ItemID is the dense market item identifier
	ItemID uint64 `json:"item_id"`
	// CollectionContract is the token collection the listing references
	CollectionContract string `json:"collection_contract"`
	// TokenID is the token identifier within the collection
	TokenID string `json:"token_id"`
	// Seller is the address that created the listing
	Seller string `json:"seller"`
	// Owner is the ledger-tracked holder after the event
	Owner string `json:"owner"`
	// Buyer is the purchasing address, set on sale events
	Buyer string `json:"buyer,omitempty"`
	// Price is the asking amount in the smallest currency unit
	Price string `json:"price,omitempty"`
	// EscrowAccount is the account expected to hold the token, set on custody alerts
	EscrowAccount string `json:"escrow_account,omitempty"`
	// Holder is the holder the collection actually reported, set on custody alerts
	Holder string `json:"holder,omitempty"`
}

// DeliveryResult represents the result of a webhook delivery attempt
type DeliveryResult struct {
	// Success indicates whether the delivery was successful
	Success bool
	// StatusCode is the HTTP status code returned by the webhook endpoint
	StatusCode int
	// Body is the response body (limited to 4KB)
	Body string
	// Error contains error details if delivery failed
	Error string
}
