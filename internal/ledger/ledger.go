package ledger

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-v2/internal/adapter"
	"github.com/feral-file/ff-marketplace-v2/internal/domain"
	"github.com/feral-file/ff-marketplace-v2/internal/logger"
	"github.com/feral-file/ff-marketplace-v2/internal/messaging"
	"github.com/feral-file/ff-marketplace-v2/internal/providers/collection"
	"github.com/feral-file/ff-marketplace-v2/internal/registry"
	"github.com/feral-file/ff-marketplace-v2/internal/store"
	"github.com/feral-file/ff-marketplace-v2/internal/store/schema"
)

// Config holds the configuration for the ledger engine
type Config struct {
	// FeeBeneficiary is the account credited with the listing fee when a sale settles
	FeeBeneficiary string
	// DefaultListingFee seeds the fee charged on new listings; later changes go
	// through UpdateListingFee
	DefaultListingFee string
}

// CreateItemParams carries a create-listing request. Payment must equal the
// current listing fee exactly.
type CreateItemParams struct {
	CollectionContract string
	TokenID            string
	Seller             string
	Price              string
	Payment            string
	// Creator overrides the seller as fallback when the collection does not
	// expose a creator lookup
	Creator string
}

// ExecuteSaleParams carries a sale request. Payment must equal the asking
// price exactly.
type ExecuteSaleParams struct {
	CollectionContract string
	ItemID             uint64
	Buyer              string
	Payment            string
}

// CancelItemParams carries a cancellation request. Seller is the caller's
// account and must match the stored seller.
type CancelItemParams struct {
	CollectionContract string
	ItemID             uint64
	Seller             string
}

// Ledger defines the interface for the marketplace engine
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// Bootstrap seeds the market counters and the default listing fee. Safe to
	// call on every startup.
	Bootstrap(ctx context.Context) error

	// CreateItem lists a token for sale and moves it into escrow custody
	CreateItem(ctx context.Context, params CreateItemParams) (*domain.MarketItem, error)
	// ExecuteSale settles a sale for an available item
	ExecuteSale(ctx context.Context, params ExecuteSaleParams) (*domain.MarketItem, error)
	// CancelItem delists an available item back to its seller
	CancelItem(ctx context.Context, params CancelItemParams) (*domain.MarketItem, error)

	// GetItem retrieves a market item by its ID
	GetItem(ctx context.Context, id uint64) (*domain.MarketItem, error)
	// GetLatestItemByTokenID retrieves the most recent listing of a token. The
	// boolean reports whether the token was ever listed.
	GetLatestItemByTokenID(ctx context.Context, tokenID string) (*domain.MarketItem, bool, error)
	// GetAvailableItems retrieves every unsold, uncanceled listing in
	// ascending ID order
	GetAvailableItems(ctx context.Context) ([]*domain.MarketItem, error)
	// GetItemsByRole retrieves items by the account's relationship to them:
	// listings it created or items it currently holds
	GetItemsByRole(ctx context.Context, account string, role domain.Role) ([]*domain.MarketItem, error)
	// GetStats retrieves the lifetime market counters
	GetStats(ctx context.Context) (*domain.MarketStats, error)

	// GetListingFee retrieves the fee charged on new listings
	GetListingFee(ctx context.Context) (string, error)
	// UpdateListingFee changes the fee charged on subsequent listings.
	// Existing listings keep the fee recorded at creation time.
	UpdateListingFee(ctx context.Context, fee string) error

	// GetFundBalance computes an account balance over the fund transfer book
	GetFundBalance(ctx context.Context, account string) (string, error)
}

// ledger applies marketplace mutations in a single total order and keeps the
// journal, token custody and the event stream consistent with each other
type ledger struct {
	store      store.Store
	collection collection.CollectionGateway
	publisher  messaging.Publisher
	registry   registry.CollectionRegistry
	clock      adapter.Clock
	config     Config

	// mu serializes mutations, custody transfers included; journal order is
	// execution order
	mu sync.Mutex
}

// NewLedger creates a new marketplace ledger engine
func NewLedger(
	st store.Store,
	gateway collection.CollectionGateway,
	pub messaging.Publisher,
	reg registry.CollectionRegistry,
	cfg Config,
	clock adapter.Clock,
) (Ledger, error) {
	beneficiary, err := domain.NormalizeAddress(cfg.FeeBeneficiary)
	if err != nil {
		return nil, fmt.Errorf("invalid fee beneficiary address %q: %w", cfg.FeeBeneficiary, err)
	}
	cfg.FeeBeneficiary = beneficiary

	defaultFee, err := domain.CanonicalAmount(cfg.DefaultListingFee)
	if err != nil {
		return nil, fmt.Errorf("invalid default listing fee %q: %w", cfg.DefaultListingFee, err)
	}
	cfg.DefaultListingFee = defaultFee

	if reg == nil {
		reg = registry.AllowAll()
	}

	return &ledger{
		store:      st,
		collection: gateway,
		publisher:  pub,
		registry:   reg,
		clock:      clock,
		config:     cfg,
	}, nil
}

// Bootstrap seeds the counter rows and the default listing fee
func (l *ledger) Bootstrap(ctx context.Context) error {
	if err := l.store.EnsureMarketCounters(ctx); err != nil {
		return fmt.Errorf("failed to ensure market counters: %w", err)
	}

	if err := l.store.EnsureListingFee(ctx, l.config.DefaultListingFee); err != nil {
		return fmt.Errorf("failed to ensure listing fee: %w", err)
	}

	return nil
}

// CreateItem validates a new listing, moves the token into escrow and records
// the listing, the fee transfer and the creation event in one transaction.
// Custody goes first so the journal never claims tokens the escrow does not
// hold; a failed commit transfers the token back.
func (l *ledger) CreateItem(ctx context.Context, params CreateItemParams) (*domain.MarketItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	seller, err := domain.NormalizeAddress(params.Seller)
	if err != nil {
		return nil, fmt.Errorf("invalid seller address %q: %w", params.Seller, err)
	}

	contract, err := domain.NormalizeAddress(params.CollectionContract)
	if err != nil {
		return nil, fmt.Errorf("invalid collection contract %q: %w", params.CollectionContract, err)
	}

	tokenID, err := canonicalTokenID(params.TokenID)
	if err != nil {
		return nil, err
	}

	price, err := domain.ParseAmount(params.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", params.Price, err)
	}
	if price.Sign() == 0 {
		return nil, domain.ErrZeroPrice
	}

	payment, err := domain.ParseAmount(params.Payment)
	if err != nil {
		return nil, fmt.Errorf("invalid payment %q: %w", params.Payment, err)
	}

	fee, err := l.currentListingFee(ctx)
	if err != nil {
		return nil, err
	}
	if payment.Cmp(fee) != 0 {
		return nil, domain.ErrWrongPayment
	}

	if !l.registry.IsAllowed(contract) {
		return nil, domain.ErrCollectionNotAllowed
	}

	fallbackCreator := seller
	if params.Creator != "" {
		fallbackCreator, err = domain.NormalizeAddress(params.Creator)
		if err != nil {
			return nil, fmt.Errorf("invalid creator address %q: %w", params.Creator, err)
		}
	}

	escrow := l.collection.EscrowAddress()

	approved, err := l.collection.IsApprovedForAll(ctx, contract, seller, escrow)
	if err != nil {
		return nil, fmt.Errorf("failed to check escrow approval: %w", err)
	}
	if !approved {
		return nil, domain.ErrEscrowNotApproved
	}

	creator := l.resolveCreator(ctx, contract, tokenID, fallbackCreator)

	txHash, err := l.collection.TransferFrom(ctx, contract, seller, escrow, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to transfer token into escrow: %w", err)
	}
	if err := l.collection.WaitMined(ctx, txHash); err != nil {
		return nil, fmt.Errorf("failed to confirm escrow transfer %s: %w", txHash, err)
	}

	now := l.clock.Now()
	event := domain.MarketEvent{
		EventID:            ulid.MustNewDefault(now).String(),
		EventType:          domain.MarketEventTypeCreated,
		CollectionContract: contract,
		TokenID:            tokenID,
		Creator:            creator,
		Seller:             seller,
		Owner:              domain.ZeroAddress,
		Price:              price.String(),
		Timestamp:          now,
	}

	item, err := l.store.CreateMarketItem(ctx, store.CreateMarketItemInput{
		CollectionContract: contract,
		TokenID:            tokenID,
		Creator:            creator,
		Seller:             seller,
		Price:              price.String(),
		ListingFee:         fee.String(),
		EscrowAccount:      escrow,
		Event:              event,
	})
	if err != nil {
		l.returnCustody(ctx, contract, seller, tokenID)
		return nil, fmt.Errorf("failed to record listing: %w", err)
	}

	// The journaled copy got its item ID inside the transaction; mirror it on
	// the published copy.
	event.ItemID = item.ID
	l.publish(ctx, &event)

	return toDomainItem(item), nil
}

// ExecuteSale settles a sale: the payment must equal the asking price exactly.
// Proceeds, fee and counters settle in one transaction; the token leaves
// escrow after the journal commits.
func (l *ledger) ExecuteSale(ctx context.Context, params ExecuteSaleParams) (*domain.MarketItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	buyer, err := domain.NormalizeAddress(params.Buyer)
	if err != nil {
		return nil, fmt.Errorf("invalid buyer address %q: %w", params.Buyer, err)
	}

	contract, err := domain.NormalizeAddress(params.CollectionContract)
	if err != nil {
		return nil, fmt.Errorf("invalid collection contract %q: %w", params.CollectionContract, err)
	}

	payment, err := domain.ParseAmount(params.Payment)
	if err != nil {
		return nil, fmt.Errorf("invalid payment %q: %w", params.Payment, err)
	}

	current, err := l.store.GetMarketItemByID(ctx, params.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get market item %d: %w", params.ItemID, err)
	}
	if current == nil {
		return nil, domain.ErrItemNotFound
	}
	if current.CollectionContract != contract {
		return nil, domain.ErrCollectionMismatch
	}
	if current.Sold || current.Canceled {
		return nil, domain.ErrItemTerminal
	}

	price, err := domain.ParseAmount(current.Price)
	if err != nil {
		return nil, fmt.Errorf("corrupt stored price %q: %w", current.Price, err)
	}
	if payment.Cmp(price) != 0 {
		return nil, domain.ErrWrongPayment
	}

	now := l.clock.Now()
	event := domain.MarketEvent{
		EventID:            ulid.MustNewDefault(now).String(),
		EventType:          domain.MarketEventTypeSold,
		ItemID:             current.ID,
		CollectionContract: current.CollectionContract,
		TokenID:            current.TokenID,
		Seller:             current.Seller,
		Owner:              buyer,
		Buyer:              buyer,
		Price:              current.Price,
		Sold:               true,
		Timestamp:          now,
	}

	item, err := l.store.MarkItemSold(ctx, store.MarkItemSoldInput{
		ItemID:         current.ID,
		Buyer:          buyer,
		EscrowAccount:  l.collection.EscrowAddress(),
		FeeBeneficiary: l.config.FeeBeneficiary,
		Event:          event,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to settle sale for item %d: %w", current.ID, err)
	}

	l.releaseCustody(ctx, item, buyer)
	l.publish(ctx, &event)

	return toDomainItem(item), nil
}

// CancelItem delists an available item. Only the original seller may cancel;
// the listing fee is retained.
func (l *ledger) CancelItem(ctx context.Context, params CancelItemParams) (*domain.MarketItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	seller, err := domain.NormalizeAddress(params.Seller)
	if err != nil {
		return nil, fmt.Errorf("invalid seller address %q: %w", params.Seller, err)
	}

	contract, err := domain.NormalizeAddress(params.CollectionContract)
	if err != nil {
		return nil, fmt.Errorf("invalid collection contract %q: %w", params.CollectionContract, err)
	}

	current, err := l.store.GetMarketItemByID(ctx, params.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get market item %d: %w", params.ItemID, err)
	}
	if current == nil {
		return nil, domain.ErrItemNotFound
	}
	if current.CollectionContract != contract {
		return nil, domain.ErrCollectionMismatch
	}
	if current.Sold || current.Canceled {
		return nil, domain.ErrItemTerminal
	}
	if current.Seller != seller {
		return nil, domain.ErrNotSeller
	}

	now := l.clock.Now()
	event := domain.MarketEvent{
		EventID:            ulid.MustNewDefault(now).String(),
		EventType:          domain.MarketEventTypeCanceled,
		ItemID:             current.ID,
		CollectionContract: current.CollectionContract,
		TokenID:            current.TokenID,
		Seller:             current.Seller,
		Owner:              current.Seller,
		Canceled:           true,
		Timestamp:          now,
	}

	item, err := l.store.MarkItemCanceled(ctx, store.MarkItemCanceledInput{
		ItemID: current.ID,
		Seller: seller,
		Event:  event,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel item %d: %w", current.ID, err)
	}

	l.releaseCustody(ctx, item, seller)
	l.publish(ctx, &event)

	return toDomainItem(item), nil
}

// GetItem retrieves a market item by its ID
func (l *ledger) GetItem(ctx context.Context, id uint64) (*domain.MarketItem, error) {
	item, err := l.store.GetMarketItemByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get market item %d: %w", id, err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return toDomainItem(item), nil
}

// GetLatestItemByTokenID retrieves the highest-ID listing of a token. The
// boolean reports whether the token was ever listed.
func (l *ledger) GetLatestItemByTokenID(ctx context.Context, tokenID string) (*domain.MarketItem, bool, error) {
	canonical, err := canonicalTokenID(tokenID)
	if err != nil {
		return nil, false, err
	}

	item, err := l.store.GetLatestItemByTokenID(ctx, canonical)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get latest item for token %s: %w", canonical, err)
	}
	if item == nil {
		return nil, false, nil
	}
	return toDomainItem(item), true, nil
}

// GetAvailableItems retrieves every unsold, uncanceled listing in ascending ID order
func (l *ledger) GetAvailableItems(ctx context.Context) ([]*domain.MarketItem, error) {
	items, err := l.store.GetAvailableItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get available items: %w", err)
	}
	return toDomainItems(items), nil
}

// GetItemsByRole retrieves items by the account's relationship to them
func (l *ledger) GetItemsByRole(ctx context.Context, account string, role domain.Role) ([]*domain.MarketItem, error) {
	normalized, err := domain.NormalizeAddress(account)
	if err != nil {
		return nil, fmt.Errorf("invalid account address %q: %w", account, err)
	}

	var items []*schema.MarketItem
	switch role {
	case domain.RoleSeller:
		items, err = l.store.GetItemsBySeller(ctx, normalized)
	case domain.RoleOwner:
		items, err = l.store.GetItemsByOwner(ctx, normalized)
	default:
		return nil, domain.ErrInvalidRole
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get items by %s: %w", role, err)
	}
	return toDomainItems(items), nil
}

// GetStats retrieves the lifetime market counters
func (l *ledger) GetStats(ctx context.Context) (*domain.MarketStats, error) {
	counts, err := l.store.GetMarketCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get market counts: %w", err)
	}
	return &domain.MarketStats{
		TotalCreated:  counts.TotalCreated,
		TotalSold:     counts.TotalSold,
		TotalCanceled: counts.TotalCanceled,
		Available:     counts.TotalCreated - counts.TotalSold - counts.TotalCanceled,
	}, nil
}

// GetListingFee retrieves the fee charged on new listings
func (l *ledger) GetListingFee(ctx context.Context) (string, error) {
	fee, err := l.currentListingFee(ctx)
	if err != nil {
		return "", err
	}
	return fee.String(), nil
}

// UpdateListingFee changes the fee charged on subsequent listings
func (l *ledger) UpdateListingFee(ctx context.Context, fee string) error {
	canonical, err := domain.CanonicalAmount(fee)
	if err != nil {
		return fmt.Errorf("invalid listing fee %q: %w", fee, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.SetListingFee(ctx, canonical); err != nil {
		return fmt.Errorf("failed to update listing fee: %w", err)
	}

	logger.InfoCtx(ctx, "listing fee updated", zap.String("fee", canonical))
	return nil
}

// GetFundBalance computes an account balance over the fund transfer book
func (l *ledger) GetFundBalance(ctx context.Context, account string) (string, error) {
	normalized, err := domain.NormalizeAddress(account)
	if err != nil {
		return "", fmt.Errorf("invalid account address %q: %w", account, err)
	}

	balance, err := l.store.GetFundBalance(ctx, normalized)
	if err != nil {
		return "", fmt.Errorf("failed to get fund balance: %w", err)
	}
	return balance, nil
}

// currentListingFee reads the stored fee, falling back to the configured
// default when the store has not been seeded yet
func (l *ledger) currentListingFee(ctx context.Context) (*big.Int, error) {
	stored, err := l.store.GetListingFee(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing fee: %w", err)
	}
	if stored == "" {
		stored = l.config.DefaultListingFee
	}

	fee, err := domain.ParseAmount(stored)
	if err != nil {
		return nil, fmt.Errorf("corrupt stored listing fee %q: %w", stored, err)
	}
	return fee, nil
}

// resolveCreator asks the collection for the token creator. Collections
// without a creator lookup fall back to the supplied address.
func (l *ledger) resolveCreator(ctx context.Context, contract, tokenID, fallback string) string {
	creator, err := l.collection.CreatorOf(ctx, contract, tokenID)
	if err != nil {
		logger.WarnCtx(ctx, "creator lookup failed, using fallback",
			zap.String("contract", contract),
			zap.String("tokenID", tokenID),
			zap.Error(err))
		return fallback
	}

	normalized, err := domain.NormalizeAddress(creator)
	if err != nil || domain.IsZeroAddress(normalized) {
		return fallback
	}
	return normalized
}

// returnCustody transfers a token back to its seller after a failed commit.
// Failures are logged for the custody sweeper to reconcile.
func (l *ledger) returnCustody(ctx context.Context, contract, seller, tokenID string) {
	txHash, err := l.collection.TransferFrom(ctx, contract, l.collection.EscrowAddress(), seller, tokenID)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to return token to seller: %w", err),
			zap.String("contract", contract),
			zap.String("tokenID", tokenID),
			zap.String("seller", seller))
		return
	}
	if err := l.collection.WaitMined(ctx, txHash); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to confirm custody return %s: %w", txHash, err),
			zap.String("contract", contract),
			zap.String("tokenID", tokenID),
			zap.String("seller", seller))
	}
}

// releaseCustody hands the token from escrow to its new holder. The journal
// already committed; failures are logged for the custody sweeper to reconcile.
func (l *ledger) releaseCustody(ctx context.Context, item *schema.MarketItem, to string) {
	txHash, err := l.collection.TransferFrom(ctx, item.CollectionContract, l.collection.EscrowAddress(), to, item.TokenID)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to transfer token out of escrow: %w", err),
			zap.Uint64("itemID", item.ID),
			zap.String("to", to))
		return
	}
	if err := l.collection.WaitMined(ctx, txHash); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to confirm escrow release %s: %w", txHash, err),
			zap.Uint64("itemID", item.ID),
			zap.String("to", to))
	}
}

// publish sends the event to the broker. The journal is the source of truth;
// a publish failure is logged and the mutation stands.
func (l *ledger) publish(ctx context.Context, event *domain.MarketEvent) {
	if err := l.publisher.PublishEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to publish event %s: %w", event.EventID, err),
			zap.String("eventType", string(event.EventType)),
			zap.Uint64("itemID", event.ItemID))
	}
}

// canonicalTokenID normalizes a decimal token identifier so stored and
// queried forms compare equal
func canonicalTokenID(tokenID string) (string, error) {
	v, err := domain.ParseAmount(tokenID)
	if err != nil {
		return "", fmt.Errorf("invalid token id %q: %w", tokenID, err)
	}
	return v.String(), nil
}

// toDomainItem converts a stored row into the API-facing item
func toDomainItem(item *schema.MarketItem) *domain.MarketItem {
	return &domain.MarketItem{
		ID:                 item.ID,
		CollectionContract: item.CollectionContract,
		TokenID:            item.TokenID,
		Creator:            item.Creator,
		Seller:             item.Seller,
		Owner:              item.Owner,
		Price:              item.Price,
		Sold:               item.Sold,
		Canceled:           item.Canceled,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}
}

func toDomainItems(items []*schema.MarketItem) []*domain.MarketItem {
	out := make([]*domain.MarketItem, 0, len(items))
	for _, item := range items {
		out = append(out, toDomainItem(item))
	}
	return out
}
