package schema

import (
	"time"
)

// CustodyStatus is the outcome of a custody verification
type CustodyStatus string

const (
	// CustodyStatusHeld means the collection reports the escrow account as the token holder
	CustodyStatusHeld CustodyStatus = "held"
	// CustodyStatusDiverged means the collection reports a holder other than the escrow account
	CustodyStatusDiverged CustodyStatus = "diverged"
)

// CustodyCheck represents the custody_checks table - the latest custody
// verification per active listing, maintained by the custody sweeper. A listing
// is expected to be held by the escrow account for as long as it is available.
type CustodyCheck struct {
	// MarketItemID is the listing this check verified (one row per item)
	MarketItemID uint64 `gorm:"column:market_item_id;primaryKey"`
	// Status is the verification outcome
	Status CustodyStatus `gorm:"column:status;not null;type:text"`
	// HolderAddress is the holder the collection reported at check time
	HolderAddress string `gorm:"column:holder_address;not null;type:text"`
	// ErrorMessage contains transient error details when the check could not complete
	ErrorMessage string `gorm:"column:error_message;type:text"`
	// CheckedAt is the timestamp of the most recent verification
	CheckedAt time.Time `gorm:"column:checked_at;not null;type:timestamptz;index:idx_custody_checks_checked_at"`
	// CreatedAt is the timestamp when this row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	MarketItem MarketItem `gorm:"foreignKey:MarketItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CustodyCheck model
func (CustodyCheck) TableName() string {
	return "custody_checks"
}
