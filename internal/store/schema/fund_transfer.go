package schema

import (
	"time"
)

// FundTransferKind classifies a value movement in the fund book
type FundTransferKind string

const (
	// FundTransferKindListingFee is the fee a seller attaches when creating a listing (seller -> escrow)
	FundTransferKindListingFee FundTransferKind = "listing_fee"
	// FundTransferKindSalePayment is the price a buyer attaches when executing a sale (buyer -> escrow)
	FundTransferKindSalePayment FundTransferKind = "sale_payment"
	// FundTransferKindSellerProceeds is the full price forwarded to the seller on sale (escrow -> seller)
	FundTransferKindSellerProceeds FundTransferKind = "seller_proceeds"
	// FundTransferKindFeePayout is the listing fee forwarded to the fee beneficiary on sale (escrow -> beneficiary)
	FundTransferKindFeePayout FundTransferKind = "fee_payout"
)

// FundTransfer represents the fund_transfers table - the append-only fund book.
// Every value movement around a listing is one row; an account's balance is
// the sum of amounts received minus the sum of amounts sent. Rows are written
// in the same transaction as the ledger mutation they settle.
type FundTransfer struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// MarketItemID references the listing this movement settles
	MarketItemID uint64 `gorm:"column:market_item_id;not null;index:idx_fund_transfers_item"`
	// FromAccount is the debited address
	FromAccount string `gorm:"column:from_account;not null;type:text;index:idx_fund_transfers_from"`
	// ToAccount is the credited address
	ToAccount string `gorm:"column:to_account;not null;type:text;index:idx_fund_transfers_to"`
	// Amount is the transferred value in the smallest currency unit (stored as string to support up to 78 digits)
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
	// Kind classifies the movement
	Kind FundTransferKind `gorm:"column:kind;not null;type:text"`
	// CreatedAt is the timestamp when this movement was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	MarketItem MarketItem `gorm:"foreignKey:MarketItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the FundTransfer model
func (FundTransfer) TableName() string {
	return "fund_transfers"
}
