package schema

import (
	"time"
)

// MarketItem represents the market_items table - the authoritative listing ledger.
// IDs are allocated by the ledger engine from the total-created counter inside the
// mutation transaction, so they stay dense and sequential from 1 even across
// rejected operations. Rows are never deleted; sold and canceled are terminal.
type MarketItem struct {
	// ID is the dense, 1-based market item identifier (assigned, not a sequence)
	ID uint64 `gorm:"column:id;primaryKey"`
	// CollectionContract is the token collection this listing references
	CollectionContract string `gorm:"column:collection_contract;not null;type:text"`
	// TokenID is the token identifier within the collection (decimal string, up to 78 digits)
	TokenID string `gorm:"column:token_id;not null;type:text;index:idx_market_items_token_id"`
	// Creator is the original minter of the token, captured at listing time
	Creator string `gorm:"column:creator;not null;type:text"`
	// Seller is the address that created the listing
	Seller string `gorm:"column:seller;not null;type:text;index:idx_market_items_seller"`
	// Owner is the holder tracked by the ledger: the zero address while listed,
	// the buyer after a sale, the seller after a cancellation
	Owner string `gorm:"column:owner;not null;type:text;index:idx_market_items_owner"`
	// Price is the asking amount in the smallest currency unit (stored as string to support up to 78 digits)
	Price string `gorm:"column:price;not null;type:numeric(78,0)"`
	// Sold is set exactly once, when a sale settles
	Sold bool `gorm:"column:sold;not null;default:false"`
	// Canceled is set exactly once, when the seller cancels
	Canceled bool `gorm:"column:canceled;not null;default:false"`
	// CreatedAt is the timestamp when the listing was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the MarketItem model
func (MarketItem) TableName() string {
	return "market_items"
}
