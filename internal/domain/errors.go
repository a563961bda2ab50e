package domain

import "errors"

var (
	// ErrZeroPrice is returned when a listing is created with a zero price
	ErrZeroPrice = errors.New("price must be greater than zero")

	// ErrWrongPayment is returned when the attached payment does not exactly
	// equal the required amount (listing fee on create, item price on sale)
	ErrWrongPayment = errors.New("attached payment does not equal required amount")

	// ErrItemNotFound is returned when a market item does not exist
	ErrItemNotFound = errors.New("market item not found")

	// ErrNotSeller is returned when a caller other than the stored seller
	// attempts to cancel a listing
	ErrNotSeller = errors.New("caller is not the item seller")

	// ErrItemTerminal is returned when a sale or cancellation targets an item
	// that is already sold or canceled
	ErrItemTerminal = errors.New("market item is already sold or canceled")

	// ErrCollectionMismatch is returned when the collection contract supplied
	// with a mutation does not match the one stored on the listing
	ErrCollectionMismatch = errors.New("collection contract does not match listing")

	// ErrCollectionNotAllowed is returned when a listing references a
	// collection that is not present in the configured allowlist
	ErrCollectionNotAllowed = errors.New("collection contract is not allowed")

	// ErrEscrowNotApproved is returned when the seller has not approved the
	// escrow account as an operator for the collection contract
	ErrEscrowNotApproved = errors.New("escrow account is not approved for collection")

	// ErrInvalidRole is returned when a role tag is neither seller nor owner
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidAddress is returned when an account address is not a valid hex address
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount is returned when an amount string is not a non-negative base-10 integer
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrWebhookClientNotFound is returned when a webhook client ID is unknown
	ErrWebhookClientNotFound = errors.New("webhook client not found")

	// ErrUploadTooLarge is returned when an upload exceeds the configured size limit
	ErrUploadTooLarge = errors.New("upload exceeds maximum allowed size")

	// ErrEmptyUpload is returned when an upload carries no content
	ErrEmptyUpload = errors.New("upload is empty")

	// ErrUnsupportedUploadType is returned when an upload's sniffed content type
	// is outside the allowed set
	ErrUnsupportedUploadType = errors.New("unsupported upload content type")
)
