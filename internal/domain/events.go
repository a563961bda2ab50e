package domain

import (
	"strings"
	"time"
)

// MarketEventType identifies a ledger lifecycle event.
type MarketEventType string

const (
	MarketEventTypeCreated  MarketEventType = "market.item.created"
	MarketEventTypeSold     MarketEventType = "market.item.sold"
	MarketEventTypeCanceled MarketEventType = "market.item.canceled"
)

// IsValidMarketEventType checks if an event type is one the ledger emits
func IsValidMarketEventType(t MarketEventType) bool {
	return t == MarketEventTypeCreated ||
		t == MarketEventTypeSold ||
		t == MarketEventTypeCanceled
}

// Action returns the lifecycle verb of the event type, e.g. "created".
// Broker subjects are built from it.
func (t MarketEventType) Action() string {
	s := string(t)
	return s[strings.LastIndex(s, ".")+1:]
}

// MarketEvent is the normalized ledger event.
// This is the standard format written to the event journal and published to NATS.
// Creation events carry the full item record; sale events additionally carry the
// buyer; cancellation events carry the identity fields only.
type MarketEvent struct {
	EventID            string          `json:"event_id"`   // ULID, time-sortable
	EventType          MarketEventType `json:"event_type"` // market.item.created, market.item.sold, market.item.canceled
	ItemID             uint64          `json:"item_id"`
	CollectionContract string          `json:"collection_contract"`
	TokenID            string          `json:"token_id"`
	Creator            string          `json:"creator,omitempty"` // set on created
	Seller             string          `json:"seller"`
	Owner              string          `json:"owner"`           // zero address on created, buyer on sold, seller on canceled
	Buyer              string          `json:"buyer,omitempty"` // set on sold
	Price              string          `json:"price,omitempty"` // set on created and sold
	Sold               bool            `json:"sold"`
	Canceled           bool            `json:"canceled"`
	Timestamp          time.Time       `json:"timestamp"`
}
