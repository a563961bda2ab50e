package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gowebpki/jcs"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-marketplace-v2/internal/domain"
	"github.com/feral-file/ff-marketplace-v2/internal/store/schema"
)

// Counter and fee rows live in the key_value_store table. The counters are
// locked FOR UPDATE inside mutation transactions so item IDs stay dense under
// concurrent writers.
const (
	counterKeyPrefix = "market:total_"

	keyTotalCreated  = "market:total_created"
	keyTotalSold     = "market:total_sold"
	keyTotalCanceled = "market:total_canceled"
	keyListingFee    = "market:listing_fee"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// getCounterForUpdate reads a counter row under a FOR UPDATE lock so the
// read-bump-write sequence is serialized across concurrent transactions.
// A missing row counts as zero; EnsureMarketCounters seeds the rows at
// startup so the lock has something to grab.
func getCounterForUpdate(tx *gorm.DB, key string) (uint64, error) {
	var kv schema.KeyValueStore
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("key = ?", key).
		First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to lock counter %s: %w", key, err)
	}

	value, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse counter %s: %w", key, err)
	}

	return value, nil
}

func setCounter(tx *gorm.DB, key string, value uint64) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: strconv.FormatUint(value, 10),
	}

	err := tx.Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set counter %s: %w", key, err)
	}

	return nil
}

// createFundTransfer appends one movement to the fund book. Zero amounts are
// skipped; a zero movement carries no information and would only pad balance
// queries.
func createFundTransfer(tx *gorm.DB, itemID uint64, from, to, amount string, kind schema.FundTransferKind) error {
	if amount == "" || amount == "0" {
		return nil
	}

	transfer := schema.FundTransfer{
		MarketItemID: itemID,
		FromAccount:  from,
		ToAccount:    to,
		Amount:       amount,
		Kind:         kind,
		CreatedAt:    time.Now(),
	}

	if err := tx.Create(&transfer).Error; err != nil {
		return fmt.Errorf("failed to record %s transfer: %w", kind, err)
	}

	return nil
}

// journalEvent appends the event to the journal inside the mutation
// transaction. The content hash is the SHA-256 of the JCS-canonicalized
// payload, so the same logical event always hashes identically regardless of
// field ordering.
func journalEvent(tx *gorm.DB, event domain.MarketEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	canonical, err := jcs.Transform(payload)
	if err != nil {
		return fmt.Errorf("failed to canonicalize event payload: %w", err)
	}
	digest := sha256.Sum256(canonical)

	entry := schema.EventJournal{
		EventID:      event.EventID,
		EventType:    string(event.EventType),
		MarketItemID: event.ItemID,
		Payload:      datatypes.JSON(payload),
		ContentHash:  hex.EncodeToString(digest[:]),
		CreatedAt:    time.Now(),
	}

	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to journal event: %w", err)
	}

	return nil
}

// getListingFeePaid returns the fee recorded when the item was listed. Items
// listed while the fee was zero have no listing-fee row, which reads back as
// zero.
func getListingFeePaid(tx *gorm.DB, itemID uint64) (string, error) {
	var transfer schema.FundTransfer
	err := tx.Where("market_item_id = ? AND kind = ?", itemID, schema.FundTransferKindListingFee).
		First(&transfer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "0", nil
		}
		return "", fmt.Errorf("failed to get listing fee transfer: %w", err)
	}

	return transfer.Amount, nil
}

// CreateMarketItem allocates the next dense item ID under the locked
// total-created counter and writes the listing row, the counter bump, the
// listing-fee transfer and the creation event in a single transaction. Either
// everything commits or nothing does, so rejected listings never consume IDs.
func (s *pgStore) CreateMarketItem(ctx context.Context, input CreateMarketItemInput) (*schema.MarketItem, error) {
	var created *schema.MarketItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		totalCreated, err := getCounterForUpdate(tx, keyTotalCreated)
		if err != nil {
			return err
		}
		itemID := totalCreated + 1

		now := time.Now()
		item := schema.MarketItem{
			ID:                 itemID,
			CollectionContract: input.CollectionContract,
			TokenID:            input.TokenID,
			Creator:            input.Creator,
			Seller:             input.Seller,
			Owner:              domain.ZeroAddress,
			Price:              input.Price,
			Sold:               false,
			Canceled:           false,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create market item: %w", err)
		}

		if err := setCounter(tx, keyTotalCreated, itemID); err != nil {
			return err
		}

		if err := createFundTransfer(tx, itemID, input.Seller, input.EscrowAccount, input.ListingFee, schema.FundTransferKindListingFee); err != nil {
			return err
		}

		event := input.Event
		event.ItemID = itemID
		if err := journalEvent(tx, event); err != nil {
			return err
		}

		created = &item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// MarkItemSold settles a sale in a single transaction: the item row is locked
// FOR UPDATE, terminal states are rejected, custody moves to the buyer, the
// sold counter is bumped and the three fund movements (payment in, proceeds
// out, fee payout) are appended together with the sale event. The fee
// forwarded to the beneficiary is the fee the seller actually paid at listing
// time, so the escrow account nets to zero per sold item even if the fee
// changed in between.
func (s *pgStore) MarkItemSold(ctx context.Context, input MarkItemSoldInput) (*schema.MarketItem, error) {
	var updated *schema.MarketItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item schema.MarketItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.ItemID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrItemNotFound
			}
			return fmt.Errorf("failed to load market item: %w", err)
		}

		if item.Sold || item.Canceled {
			return domain.ErrItemTerminal
		}

		now := time.Now()
		err = tx.Model(&schema.MarketItem{}).
			Where("id = ?", input.ItemID).
			Updates(map[string]interface{}{
				"owner":      input.Buyer,
				"sold":       true,
				"updated_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to mark item sold: %w", err)
		}

		totalSold, err := getCounterForUpdate(tx, keyTotalSold)
		if err != nil {
			return err
		}
		if err := setCounter(tx, keyTotalSold, totalSold+1); err != nil {
			return err
		}

		listingFee, err := getListingFeePaid(tx, input.ItemID)
		if err != nil {
			return err
		}

		if err := createFundTransfer(tx, input.ItemID, input.Buyer, input.EscrowAccount, item.Price, schema.FundTransferKindSalePayment); err != nil {
			return err
		}
		if err := createFundTransfer(tx, input.ItemID, input.EscrowAccount, item.Seller, item.Price, schema.FundTransferKindSellerProceeds); err != nil {
			return err
		}
		if err := createFundTransfer(tx, input.ItemID, input.EscrowAccount, input.FeeBeneficiary, listingFee, schema.FundTransferKindFeePayout); err != nil {
			return err
		}

		event := input.Event
		event.ItemID = input.ItemID
		if err := journalEvent(tx, event); err != nil {
			return err
		}

		item.Owner = input.Buyer
		item.Sold = true
		item.UpdatedAt = now
		updated = &item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// MarkItemCanceled delists an item in a single transaction: the row is locked
// FOR UPDATE, terminal states and non-seller callers are rejected, custody
// moves back to the seller and the canceled counter is bumped together with
// the cancellation event. No fund movement is recorded; the listing fee stays
// with the escrow account.
func (s *pgStore) MarkItemCanceled(ctx context.Context, input MarkItemCanceledInput) (*schema.MarketItem, error) {
	var updated *schema.MarketItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item schema.MarketItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.ItemID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrItemNotFound
			}
			return fmt.Errorf("failed to load market item: %w", err)
		}

		if item.Sold || item.Canceled {
			return domain.ErrItemTerminal
		}
		if item.Seller != input.Seller {
			return domain.ErrNotSeller
		}

		now := time.Now()
		err = tx.Model(&schema.MarketItem{}).
			Where("id = ?", input.ItemID).
			Updates(map[string]interface{}{
				"owner":      item.Seller,
				"canceled":   true,
				"updated_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to mark item canceled: %w", err)
		}

		totalCanceled, err := getCounterForUpdate(tx, keyTotalCanceled)
		if err != nil {
			return err
		}
		if err := setCounter(tx, keyTotalCanceled, totalCanceled+1); err != nil {
			return err
		}

		event := input.Event
		event.ItemID = input.ItemID
		if err := journalEvent(tx, event); err != nil {
			return err
		}

		item.Owner = item.Seller
		item.Canceled = true
		item.UpdatedAt = now
		updated = &item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// GetMarketItemByID retrieves a market item by its ID
func (s *pgStore) GetMarketItemByID(ctx context.Context, id uint64) (*schema.MarketItem, error) {
	var item schema.MarketItem
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get market item: %w", err)
	}
	return &item, nil
}

// GetLatestItemByTokenID retrieves the most recent listing for a token.
// Listings are never deleted and IDs are monotonic, so the highest ID is the
// latest.
func (s *pgStore) GetLatestItemByTokenID(ctx context.Context, tokenID string) (*schema.MarketItem, error) {
	var item schema.MarketItem
	err := s.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Order("id DESC").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest item for token: %w", err)
	}
	return &item, nil
}

// GetAvailableItems retrieves all items still held in escrow, oldest first
func (s *pgStore) GetAvailableItems(ctx context.Context) ([]*schema.MarketItem, error) {
	var items []*schema.MarketItem
	err := s.db.WithContext(ctx).
		Where("owner = ?", domain.ZeroAddress).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get available items: %w", err)
	}
	return items, nil
}

// GetItemsBySeller retrieves all items ever listed by the given account
func (s *pgStore) GetItemsBySeller(ctx context.Context, seller string) ([]*schema.MarketItem, error) {
	var items []*schema.MarketItem
	err := s.db.WithContext(ctx).
		Where("seller = ?", seller).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get items by seller: %w", err)
	}
	return items, nil
}

// GetItemsByOwner retrieves all items currently owned by the given account
func (s *pgStore) GetItemsByOwner(ctx context.Context, owner string) ([]*schema.MarketItem, error) {
	var items []*schema.MarketItem
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get items by owner: %w", err)
	}
	return items, nil
}

// GetMarketCounts retrieves the lifetime created/sold/canceled counters.
// Missing counter rows read as zero.
func (s *pgStore) GetMarketCounts(ctx context.Context) (*MarketCounts, error) {
	var kvs []schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key LIKE ?", counterKeyPrefix+"%").Find(&kvs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get market counters: %w", err)
	}

	counts := &MarketCounts{}
	for _, kv := range kvs {
		value, err := strconv.ParseUint(kv.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse counter %s: %w", kv.Key, err)
		}
		switch kv.Key {
		case keyTotalCreated:
			counts.TotalCreated = value
		case keyTotalSold:
			counts.TotalSold = value
		case keyTotalCanceled:
			counts.TotalCanceled = value
		}
	}

	return counts, nil
}

// EnsureMarketCounters seeds the counter rows with zero so mutation
// transactions always have a row to lock. Existing values are untouched.
func (s *pgStore) EnsureMarketCounters(ctx context.Context) error {
	rows := []schema.KeyValueStore{
		{Key: keyTotalCreated, Value: "0"},
		{Key: keyTotalSold, Value: "0"},
		{Key: keyTotalCanceled, Value: "0"},
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to seed market counters: %w", err)
	}

	return nil
}

// GetListingFee retrieves the current listing fee, empty string if unset
func (s *pgStore) GetListingFee(ctx context.Context) (string, error) {
	return s.GetKeyValue(ctx, keyListingFee)
}

// SetListingFee stores the listing fee charged on new listings
func (s *pgStore) SetListingFee(ctx context.Context, fee string) error {
	kv := schema.KeyValueStore{
		Key:   keyListingFee,
		Value: fee,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set listing fee: %w", err)
	}

	return nil
}

// EnsureListingFee stores the fee only when no fee has been set yet
func (s *pgStore) EnsureListingFee(ctx context.Context, fee string) error {
	kv := schema.KeyValueStore{
		Key:   keyListingFee,
		Value: fee,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).
		Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to seed listing fee: %w", err)
	}

	return nil
}

// GetFundBalance computes an account balance as credits minus debits over the
// fund book. External accounts can go negative; the book only tracks value
// that moved through the market.
func (s *pgStore) GetFundBalance(ctx context.Context, account string) (string, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN to_account = ? THEN amount ELSE 0 END), 0)
		     - COALESCE(SUM(CASE WHEN from_account = ? THEN amount ELSE 0 END), 0)
		FROM fund_transfers
		WHERE to_account = ? OR from_account = ?
	`

	var balance string
	err := s.db.WithContext(ctx).
		Raw(query, account, account, account, account).
		Scan(&balance).Error
	if err != nil {
		return "", fmt.Errorf("failed to compute fund balance: %w", err)
	}

	return balance, nil
}

// GetFundTransfersByItemID retrieves the transfers recorded for an item in
// insertion order
func (s *pgStore) GetFundTransfersByItemID(ctx context.Context, itemID uint64) ([]*schema.FundTransfer, error) {
	var transfers []*schema.FundTransfer
	err := s.db.WithContext(ctx).
		Where("market_item_id = ?", itemID).
		Order("id ASC").
		Find(&transfers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get fund transfers: %w", err)
	}
	return transfers, nil
}

// GetJournalEvents retrieves journaled events after the given cursor in
// ascending cursor order
func (s *pgStore) GetJournalEvents(ctx context.Context, afterCursor int64, limit int) ([]*schema.EventJournal, error) {
	query := s.db.WithContext(ctx).
		Where(`"cursor" > ?`, afterCursor).
		Order(`"cursor" ASC`)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var events []*schema.EventJournal
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get journal events: %w", err)
	}

	return events, nil
}

// GetJournalEventByEventID retrieves a journaled event by its ULID
func (s *pgStore) GetJournalEventByEventID(ctx context.Context, eventID string) (*schema.EventJournal, error) {
	var event schema.EventJournal
	err := s.db.WithContext(ctx).Where("event_id = ?", eventID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get journal event: %w", err)
	}
	return &event, nil
}

// SetKeyValue stores a key-value pair
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}

// GetKeyValue retrieves a value by key from the key-value store
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key-value: %w", err)
	}

	return kv.Value, nil
}

// CreateWebhookClient creates a new webhook client
func (s *pgStore) CreateWebhookClient(ctx context.Context, input CreateWebhookClientInput) (*schema.WebhookClient, error) {
	filters, err := json.Marshal(input.EventFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event filters: %w", err)
	}

	now := time.Now()
	client := &schema.WebhookClient{
		ClientID:         input.ClientID,
		Name:             input.Name,
		WebhookURL:       input.WebhookURL,
		WebhookSecret:    input.WebhookSecret,
		EventFilters:     datatypes.JSON(filters),
		IsActive:         input.IsActive,
		RetryMaxAttempts: input.RetryMaxAttempts,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create webhook client: %w", err)
	}
	return client, nil
}

// GetWebhookClientByID retrieves a webhook client by client ID
func (s *pgStore) GetWebhookClientByID(ctx context.Context, clientID string) (*schema.WebhookClient, error) {
	var client schema.WebhookClient
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get webhook client: %w", err)
	}
	return &client, nil
}

// GetActiveWebhookClientsByEventType retrieves active webhook clients that match the given event type
func (s *pgStore) GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error) {
	var clients []*schema.WebhookClient

	// Query for active clients where event_filters contains the event type or wildcard "*"
	// Using JSONB containment operator @> to check if the array contains the value
	err := s.db.WithContext(ctx).
		Where("is_active").
		Where("event_filters @> ?::jsonb OR event_filters @> ?::jsonb",
			fmt.Sprintf(`["%s"]`, eventType),
			`["*"]`).
		Find(&clients).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get webhook clients by event type: %w", err)
	}

	return clients, nil
}

// DeactivateWebhookClient marks a webhook client inactive
func (s *pgStore) DeactivateWebhookClient(ctx context.Context, clientID string) error {
	result := s.db.WithContext(ctx).
		Model(&schema.WebhookClient{}).
		Where("client_id = ?", clientID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate webhook client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrWebhookClientNotFound
	}

	return nil
}

// CreateWebhookDelivery creates a new webhook delivery record
func (s *pgStore) CreateWebhookDelivery(ctx context.Context, delivery *schema.WebhookDelivery) error {
	// Payload is already JSON bytes from the executor
	err := s.db.WithContext(ctx).Create(delivery).Error
	if err != nil {
		return fmt.Errorf("failed to create webhook delivery: %w", err)
	}
	return nil
}

// UpdateWebhookDeliveryStatus updates the status and result of a webhook delivery
func (s *pgStore) UpdateWebhookDeliveryStatus(ctx context.Context, deliveryID uint64, status schema.WebhookDeliveryStatus, attempts int, responseStatus *int, responseBody, errorMessage string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"delivery_status": status,
		"attempts":        attempts,
		"response_body":   responseBody,
		"last_attempt_at": now,
		"updated_at":      now,
	}

	if responseStatus != nil {
		updates["response_status"] = *responseStatus
	}
	if errorMessage != "" {
		// Limit error message
		if len(errorMessage) > 1024 {
			errorMessage = errorMessage[:1024]
		}
		updates["error_message"] = errorMessage
	}

	err := s.db.WithContext(ctx).
		Model(&schema.WebhookDelivery{}).
		Where("id = ?", deliveryID).
		Updates(updates).Error

	if err != nil {
		return fmt.Errorf("failed to update webhook delivery status: %w", err)
	}

	return nil
}

// GetItemsForCustodyCheck retrieves available items whose custody has not been
// verified within recheckAfter, least recently checked first. Items never
// probed sort before everything else.
func (s *pgStore) GetItemsForCustodyCheck(ctx context.Context, recheckAfter time.Duration, limit int) ([]*schema.MarketItem, error) {
	cutoffTime := time.Now().Add(-recheckAfter)

	var items []*schema.MarketItem
	err := s.db.WithContext(ctx).
		Model(&schema.MarketItem{}).
		Joins("LEFT JOIN custody_checks ON custody_checks.market_item_id = market_items.id").
		Where("market_items.owner = ?", domain.ZeroAddress).
		Where("custody_checks.checked_at IS NULL OR custody_checks.checked_at < ?", cutoffTime).
		Order("custody_checks.checked_at ASC NULLS FIRST").
		Limit(limit).
		Find(&items).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get items for custody check: %w", err)
	}

	return items, nil
}

// UpsertCustodyCheck records the outcome of a custody probe for an item
func (s *pgStore) UpsertCustodyCheck(ctx context.Context, input UpsertCustodyCheckInput) error {
	now := time.Now()
	check := schema.CustodyCheck{
		MarketItemID:  input.MarketItemID,
		Status:        input.Status,
		HolderAddress: input.HolderAddress,
		ErrorMessage:  input.ErrorMessage,
		CheckedAt:     input.CheckedAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "market_item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "holder_address", "error_message", "checked_at", "updated_at"}),
		}).
		Create(&check).Error
	if err != nil {
		return fmt.Errorf("failed to upsert custody check: %w", err)
	}

	return nil
}

// GetCustodyCheckByItemID retrieves the latest custody check for an item
func (s *pgStore) GetCustodyCheckByItemID(ctx context.Context, itemID uint64) (*schema.CustodyCheck, error) {
	var check schema.CustodyCheck
	err := s.db.WithContext(ctx).Where("market_item_id = ?", itemID).First(&check).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get custody check: %w", err)
	}
	return &check, nil
}
