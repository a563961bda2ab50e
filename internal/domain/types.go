package domain

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ZeroAddress is the sentinel holder address of an item that is listed and unsold.
// The ledger keeps custody of the underlying token while an item's owner is the
// zero address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// Role selects which side of a listing an items-by-role query matches.
type Role string

const (
	// RoleSeller matches items the address created as listings
	RoleSeller Role = "seller"
	// RoleOwner matches items the address currently holds (bought or reclaimed)
	RoleOwner Role = "owner"
)

// ParseRole converts an external role tag into a Role.
// Only the two supported variants are accepted.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(s)) {
	case RoleSeller:
		return RoleSeller, nil
	case RoleOwner:
		return RoleOwner, nil
	default:
		return "", ErrInvalidRole
	}
}

// MarketItem is the authoritative listing record.
// IDs are dense, sequential and 1-based; rows are never deleted, so a token
// re-listed after a sale or cancellation gets a fresh row with a higher ID.
type MarketItem struct {
	ID                 uint64    `json:"id"`
	CollectionContract string    `json:"collection_contract"`
	TokenID            string    `json:"token_id"`
	Creator            string    `json:"creator"`
	Seller             string    `json:"seller"`
	Owner              string    `json:"owner"`
	Price              string    `json:"price"`
	Sold               bool      `json:"sold"`
	Canceled           bool      `json:"canceled"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Available reports whether the item is still listed for sale.
// The zero-address owner is the sole signal of availability.
func (m *MarketItem) Available() bool {
	return m.Owner == ZeroAddress
}

// Terminal reports whether the item reached a terminal state (sold or canceled).
// At most one of the two flags may ever be set.
func (m *MarketItem) Terminal() bool {
	return m.Sold || m.Canceled
}

// MarketStats summarizes the ledger counters.
// Available always equals TotalCreated - TotalSold - TotalCanceled.
type MarketStats struct {
	TotalCreated  uint64 `json:"total_created"`
	TotalSold     uint64 `json:"total_sold"`
	TotalCanceled uint64 `json:"total_canceled"`
	Available     uint64 `json:"available"`
}

// NormalizeAddress validates a hex account address and returns its canonical
// lowercase form. All addresses are stored and compared in this form.
func NormalizeAddress(addr string) (string, error) {
	if !common.IsHexAddress(addr) {
		return "", ErrInvalidAddress
	}
	return strings.ToLower(common.HexToAddress(addr).Hex()), nil
}

// IsZeroAddress reports whether addr is the zero address in any casing.
func IsZeroAddress(addr string) bool {
	return strings.EqualFold(addr, ZeroAddress)
}

// ParseAmount parses a base-10 currency amount in the smallest unit.
// Amounts travel as strings to survive 256-bit values; this is the single
// place they are converted for arithmetic. Negative amounts are rejected.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || v.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	return v, nil
}

// CanonicalAmount parses and re-formats an amount so that equal values have
// equal string forms (strips leading zeros and whitespace).
func CanonicalAmount(s string) (string, error) {
	v, err := ParseAmount(s)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
