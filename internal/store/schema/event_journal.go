package schema

import (
	"time"

	"gorm.io/datatypes"
)

// EventJournal represents the event_journal table - the durable record of every
// ledger lifecycle event. Rows are appended in the same transaction as the
// mutation that produced them; the NATS publish after commit reads from here,
// so a failed publish never loses the event.
type EventJournal struct {
	// Cursor is an auto-incrementing sequence number for ordering and pagination
	Cursor int64 `gorm:"column:cursor;primaryKey;autoIncrement"`
	// EventID is a unique identifier for this event (ULID for time-sortable uniqueness)
	EventID string `gorm:"column:event_id;not null;unique;type:varchar(26)"`
	// EventType is the lifecycle event type (market.item.created, market.item.sold, market.item.canceled)
	EventType string `gorm:"column:event_type;not null;type:varchar(50)"`
	// MarketItemID references the listing the event concerns
	MarketItemID uint64 `gorm:"column:market_item_id;not null;index:idx_event_journal_item"`
	// Payload is the full normalized event as JSON
	Payload datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`
	// ContentHash is the hex SHA-256 of the JCS-canonicalized payload, used for deduplication
	ContentHash string `gorm:"column:content_hash;not null;type:varchar(64)"`
	// CreatedAt is the timestamp when the event was journaled
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	MarketItem MarketItem `gorm:"foreignKey:MarketItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the EventJournal model
func (EventJournal) TableName() string {
	return "event_journal"
}
