package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gowebpki/jcs"

	"github.com/feral-file/ff-marketplace-v2/internal/domain"
	"github.com/feral-file/ff-marketplace-v2/internal/store/schema"
)

const (
	testCollection     = "0x1111111111111111111111111111111111111111"
	testEscrowAccount  = "0xe5c5055005500550055005500550055005500550"
	testFeeBeneficiary = "0xfee0fee0fee0fee0fee0fee0fee0fee0fee0fee0"
	testSeller         = "0x5e11e25e11e25e11e25e11e25e11e25e11e25e11"
	testBuyer          = "0xb0ye2b0ye2b0ye2b0ye2b0ye2b0ye2b0ye2b0ye2"
	testCreator        = "0xc2ea02c2ea02c2ea02c2ea02c2ea02c2ea02c2ea"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestEvent creates a ledger event with a fresh ULID. ItemID is left
// zero for creation events; the store fills it in once the ID is allocated.
func buildTestEvent(eventType domain.MarketEventType, itemID uint64, tokenID, seller, owner, buyer, price string) domain.MarketEvent {
	return domain.MarketEvent{
		EventID:            ulid.Make().String(),
		EventType:          eventType,
		ItemID:             itemID,
		CollectionContract: testCollection,
		TokenID:            tokenID,
		Creator:            testCreator,
		Seller:             seller,
		Owner:              owner,
		Buyer:              buyer,
		Price:              price,
		Sold:               eventType == domain.MarketEventTypeSold,
		Canceled:           eventType == domain.MarketEventTypeCanceled,
		Timestamp:          time.Now().UTC(),
	}
}

// buildTestCreateInput creates a listing input for the given token
func buildTestCreateInput(tokenID, seller, price, listingFee string) CreateMarketItemInput {
	return CreateMarketItemInput{
		CollectionContract: testCollection,
		TokenID:            tokenID,
		Creator:            testCreator,
		Seller:             seller,
		Price:              price,
		ListingFee:         listingFee,
		EscrowAccount:      testEscrowAccount,
		Event:              buildTestEvent(domain.MarketEventTypeCreated, 0, tokenID, seller, domain.ZeroAddress, "", price),
	}
}

// buildTestSoldInput creates a sale settlement input for an existing item
func buildTestSoldInput(item *schema.MarketItem, buyer string) MarkItemSoldInput {
	return MarkItemSoldInput{
		ItemID:         item.ID,
		Buyer:          buyer,
		EscrowAccount:  testEscrowAccount,
		FeeBeneficiary: testFeeBeneficiary,
		Event:          buildTestEvent(domain.MarketEventTypeSold, item.ID, item.TokenID, item.Seller, buyer, buyer, item.Price),
	}
}

// buildTestCanceledInput creates a cancellation input for an existing item
func buildTestCanceledInput(item *schema.MarketItem, seller string) MarkItemCanceledInput {
	return MarkItemCanceledInput{
		ItemID: item.ID,
		Seller: seller,
		Event:  buildTestEvent(domain.MarketEventTypeCanceled, item.ID, item.TokenID, item.Seller, item.Seller, "", ""),
	}
}

// mustCreateItem lists a token and fails the test on any error
func mustCreateItem(t *testing.T, store Store, tokenID, seller, price, listingFee string) *schema.MarketItem {
	t.Helper()
	item, err := store.CreateMarketItem(context.Background(), buildTestCreateInput(tokenID, seller, price, listingFee))
	require.NoError(t, err)
	require.NotNil(t, item)
	return item
}

// =============================================================================
// Test: CreateMarketItem
// =============================================================================

func testCreateMarketItem(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("successful listing creates item, fee transfer, journal entry, and counter", func(t *testing.T) {
		input := buildTestCreateInput("7", testSeller, "100", "5")

		item, err := store.CreateMarketItem(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, item)

		assert.Equal(t, uint64(1), item.ID, "first item gets ID 1")
		assert.Equal(t, testCollection, item.CollectionContract)
		assert.Equal(t, "7", item.TokenID)
		assert.Equal(t, testCreator, item.Creator)
		assert.Equal(t, testSeller, item.Seller)
		assert.Equal(t, domain.ZeroAddress, item.Owner, "listed item is held in escrow")
		assert.Equal(t, "100", item.Price)
		assert.False(t, item.Sold)
		assert.False(t, item.Canceled)

		// Verify the listing fee was booked seller -> escrow
		transfers, err := store.GetFundTransfersByItemID(ctx, item.ID)
		require.NoError(t, err)
		require.Len(t, transfers, 1)
		assert.Equal(t, schema.FundTransferKindListingFee, transfers[0].Kind)
		assert.Equal(t, testSeller, transfers[0].FromAccount)
		assert.Equal(t, testEscrowAccount, transfers[0].ToAccount)
		assert.Equal(t, "5", transfers[0].Amount)

		// Verify the creation event was journaled with the allocated item ID
		journaled, err := store.GetJournalEventByEventID(ctx, input.Event.EventID)
		require.NoError(t, err)
		require.NotNil(t, journaled)
		assert.Equal(t, string(domain.MarketEventTypeCreated), journaled.EventType)
		assert.Equal(t, item.ID, journaled.MarketItemID)

		var payload domain.MarketEvent
		require.NoError(t, json.Unmarshal(journaled.Payload, &payload))
		assert.Equal(t, item.ID, payload.ItemID, "journaled payload carries the allocated ID")
		assert.Equal(t, domain.ZeroAddress, payload.Owner)

		// Verify the counter advanced
		counts, err := store.GetMarketCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), counts.TotalCreated)
	})

	t.Run("item IDs are dense and sequential", func(t *testing.T) {
		first := mustCreateItem(t, store, "10", testSeller, "50", "5")
		second := mustCreateItem(t, store, "11", testSeller, "60", "5")
		third := mustCreateItem(t, store, "12", testSeller, "70", "5")

		assert.Equal(t, first.ID+1, second.ID)
		assert.Equal(t, second.ID+1, third.ID)
	})

	t.Run("zero listing fee books no transfer", func(t *testing.T) {
		item := mustCreateItem(t, store, "20", testSeller, "100", "0")

		transfers, err := store.GetFundTransfersByItemID(ctx, item.ID)
		require.NoError(t, err)
		assert.Len(t, transfers, 0)
	})

	t.Run("relisting the same token creates a new item", func(t *testing.T) {
		first := mustCreateItem(t, store, "30", testSeller, "100", "5")
		second := mustCreateItem(t, store, "30", testSeller, "200", "5")

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, "30", second.TokenID)
	})
}

// =============================================================================
// Test: MarkItemSold
// =============================================================================

func testMarkItemSold(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("successful sale moves custody, books funds, and journals the event", func(t *testing.T) {
		item := mustCreateItem(t, store, "7", testSeller, "100", "5")

		input := buildTestSoldInput(item, testBuyer)
		sold, err := store.MarkItemSold(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, sold)

		assert.Equal(t, testBuyer, sold.Owner)
		assert.True(t, sold.Sold)
		assert.False(t, sold.Canceled)

		// Re-read to confirm persistence
		reloaded, err := store.GetMarketItemByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded)
		assert.Equal(t, testBuyer, reloaded.Owner)
		assert.True(t, reloaded.Sold)

		// Fund book: listing fee, payment in, proceeds out, fee payout
		transfers, err := store.GetFundTransfersByItemID(ctx, item.ID)
		require.NoError(t, err)
		require.Len(t, transfers, 4)

		byKind := make(map[schema.FundTransferKind]*schema.FundTransfer)
		for _, tr := range transfers {
			byKind[tr.Kind] = tr
		}

		payment := byKind[schema.FundTransferKindSalePayment]
		require.NotNil(t, payment)
		assert.Equal(t, testBuyer, payment.FromAccount)
		assert.Equal(t, testEscrowAccount, payment.ToAccount)
		assert.Equal(t, "100", payment.Amount)

		proceeds := byKind[schema.FundTransferKindSellerProceeds]
		require.NotNil(t, proceeds)
		assert.Equal(t, testEscrowAccount, proceeds.FromAccount)
		assert.Equal(t, testSeller, proceeds.ToAccount)
		assert.Equal(t, "100", proceeds.Amount)

		payout := byKind[schema.FundTransferKindFeePayout]
		require.NotNil(t, payout)
		assert.Equal(t, testEscrowAccount, payout.FromAccount)
		assert.Equal(t, testFeeBeneficiary, payout.ToAccount)
		assert.Equal(t, "5", payout.Amount)

		// Counter advanced
		counts, err := store.GetMarketCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), counts.TotalSold)

		// Sale event journaled
		journaled, err := store.GetJournalEventByEventID(ctx, input.Event.EventID)
		require.NoError(t, err)
		require.NotNil(t, journaled)
		assert.Equal(t, string(domain.MarketEventTypeSold), journaled.EventType)
	})

	t.Run("fee forwarded is the fee paid at listing, not the current fee", func(t *testing.T) {
		item := mustCreateItem(t, store, "40", testSeller, "100", "5")

		// The operator raises the fee after the item was listed
		require.NoError(t, store.SetListingFee(ctx, "9"))

		_, err := store.MarkItemSold(ctx, buildTestSoldInput(item, testBuyer))
		require.NoError(t, err)

		transfers, err := store.GetFundTransfersByItemID(ctx, item.ID)
		require.NoError(t, err)

		var payout *schema.FundTransfer
		for _, tr := range transfers {
			if tr.Kind == schema.FundTransferKindFeePayout {
				payout = tr
			}
		}
		require.NotNil(t, payout)
		assert.Equal(t, "5", payout.Amount, "escrow pays out what it took in")
	})

	t.Run("selling a sold item is rejected", func(t *testing.T) {
		item := mustCreateItem(t, store, "41", testSeller, "100", "5")

		_, err := store.MarkItemSold(ctx, buildTestSoldInput(item, testBuyer))
		require.NoError(t, err)

		_, err = store.MarkItemSold(ctx, buildTestSoldInput(item, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
		assert.ErrorIs(t, err, domain.ErrItemTerminal)
	})

	t.Run("selling a canceled item is rejected", func(t *testing.T) {
		item := mustCreateItem(t, store, "42", testSeller, "100", "5")

		_, err := store.MarkItemCanceled(ctx, buildTestCanceledInput(item, testSeller))
		require.NoError(t, err)

		_, err = store.MarkItemSold(ctx, buildTestSoldInput(item, testBuyer))
		assert.ErrorIs(t, err, domain.ErrItemTerminal)
	})

	t.Run("selling a non-existent item is rejected", func(t *testing.T) {
		input := MarkItemSoldInput{
			ItemID:         99999,
			Buyer:          testBuyer,
			EscrowAccount:  testEscrowAccount,
			FeeBeneficiary: testFeeBeneficiary,
			Event:          buildTestEvent(domain.MarketEventTypeSold, 99999, "7", testSeller, testBuyer, testBuyer, "100"),
		}
		_, err := store.MarkItemSold(ctx, input)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("rejected sale leaves no partial writes", func(t *testing.T) {
		item := mustCreateItem(t, store, "43", testSeller, "100", "5")
		_, err := store.MarkItemSold(ctx, buildTestSoldInput(item, testBuyer))
		require.NoError(t, err)

		countsBefore, err := store.GetMarketCounts(ctx)
		require.NoError(t, err)
		transfersBefore, err := store.GetFundTransfersByItemID(ctx, item.ID)
		require.NoError(t, err)

		_, err = store.MarkItemSold(ctx, buildTestSoldInput(item, testBuyer))
		require.ErrorIs(t, err, domain.ErrItemTerminal)

		countsAfter, err := store.GetMarketCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, countsBefore.TotalSold, countsAfter.TotalSold)

		transfersAfter, err := store.GetFundTransfersByItemID(ctx, item.ID)
		require.NoError(t, err)
		assert.Len(t, transfersAfter, len(transfersBefore))
	})
}

// =============================================================================
// Test: MarkItemCanceled
// =============================================================================

func testMarkItemCanceled(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("successful cancellation returns custody to the seller", func(t *testing.T) {
		item := mustCreateItem(t, store, "7", testSeller, "100", "5")

		input := buildTestCanceledInput(item, testSeller)
		canceled, err := store.MarkItemCanceled(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, canceled)

		assert.Equal(t, testSeller, canceled.Owner)
		assert.True(t, canceled.Canceled)
		assert.False(t, canceled.Sold)

		counts, err := store.GetMarketCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), counts.TotalCanceled)

		journaled, err := store.GetJournalEventByEventID(ctx, input.Event.EventID)
		require.NoError(t, err)
		require.NotNil(t, journaled)
		assert.Equal(t, string(domain.MarketEventTypeCanceled), journaled.EventType)
	})

	t.Run("listing fee stays with escrow on cancellation", func(t *testing.T) {
		escrowBefore, err := store.GetFundBalance(ctx, testEscrowAccount)
		require.NoError(t, err)
		before, err := strconv.Atoi(escrowBefore)
		require.NoError(t, err)

		item := mustCreateItem(t, store, "50", testSeller, "100", "5")

		_, err = store.MarkItemCanceled(ctx, buildTestCanceledInput(item, testSeller))
		require.NoError(t, err)

		// Only the original listing-fee transfer exists; nothing flows back
		transfers, err := store.GetFundTransfersByItemID(ctx, item.ID)
		require.NoError(t, err)
		require.Len(t, transfers, 1)
		assert.Equal(t, schema.FundTransferKindListingFee, transfers[0].Kind)

		escrowAfter, err := store.GetFundBalance(ctx, testEscrowAccount)
		require.NoError(t, err)
		after, err := strconv.Atoi(escrowAfter)
		require.NoError(t, err)
		assert.Equal(t, before+5, after, "escrow keeps the fee")
	})

	t.Run("only the seller can cancel", func(t *testing.T) {
		item := mustCreateItem(t, store, "51", testSeller, "100", "5")

		_, err := store.MarkItemCanceled(ctx, buildTestCanceledInput(item, testBuyer))
		assert.ErrorIs(t, err, domain.ErrNotSeller)

		// The item must be untouched
		reloaded, err := store.GetMarketItemByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ZeroAddress, reloaded.Owner)
		assert.False(t, reloaded.Canceled)
	})

	t.Run("canceling a sold item is rejected", func(t *testing.T) {
		item := mustCreateItem(t, store, "52", testSeller, "100", "5")

		_, err := store.MarkItemSold(ctx, buildTestSoldInput(item, testBuyer))
		require.NoError(t, err)

		_, err = store.MarkItemCanceled(ctx, buildTestCanceledInput(item, testSeller))
		assert.ErrorIs(t, err, domain.ErrItemTerminal)
	})

	t.Run("canceling twice is rejected", func(t *testing.T) {
		item := mustCreateItem(t, store, "53", testSeller, "100", "5")

		_, err := store.MarkItemCanceled(ctx, buildTestCanceledInput(item, testSeller))
		require.NoError(t, err)

		_, err = store.MarkItemCanceled(ctx, buildTestCanceledInput(item, testSeller))
		assert.ErrorIs(t, err, domain.ErrItemTerminal)
	})

	t.Run("canceling a non-existent item is rejected", func(t *testing.T) {
		input := MarkItemCanceledInput{
			ItemID: 99999,
			Seller: testSeller,
			Event:  buildTestEvent(domain.MarketEventTypeCanceled, 99999, "7", testSeller, testSeller, "", ""),
		}
		_, err := store.MarkItemCanceled(ctx, input)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

// =============================================================================
// Test: Market Queries
// =============================================================================

func testMarketQueries(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("GetMarketItemByID returns nil for unknown IDs", func(t *testing.T) {
		item, err := store.GetMarketItemByID(ctx, 424242)
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("GetLatestItemByTokenID returns the highest ID for a relisted token", func(t *testing.T) {
		first := mustCreateItem(t, store, "7", testSeller, "100", "5")
		_, err := store.MarkItemCanceled(ctx, buildTestCanceledInput(first, testSeller))
		require.NoError(t, err)

		second := mustCreateItem(t, store, "7", testSeller, "250", "5")

		latest, err := store.GetLatestItemByTokenID(ctx, "7")
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, second.ID, latest.ID)
		assert.Equal(t, "250", latest.Price)
	})

	t.Run("GetLatestItemByTokenID returns nil for a never-listed token", func(t *testing.T) {
		latest, err := store.GetLatestItemByTokenID(ctx, "404")
		require.NoError(t, err)
		assert.Nil(t, latest)
	})

	t.Run("GetAvailableItems excludes sold and canceled items and orders by ID", func(t *testing.T) {
		a := mustCreateItem(t, store, "60", testSeller, "10", "1")
		b := mustCreateItem(t, store, "61", testSeller, "20", "1")
		c := mustCreateItem(t, store, "62", testSeller, "30", "1")
		d := mustCreateItem(t, store, "63", testSeller, "40", "1")

		_, err := store.MarkItemSold(ctx, buildTestSoldInput(b, testBuyer))
		require.NoError(t, err)
		_, err = store.MarkItemCanceled(ctx, buildTestCanceledInput(c, testSeller))
		require.NoError(t, err)

		available, err := store.GetAvailableItems(ctx)
		require.NoError(t, err)

		ids := make([]uint64, 0, len(available))
		for _, item := range available {
			assert.Equal(t, domain.ZeroAddress, item.Owner)
			ids = append(ids, item.ID)
		}
		assert.Contains(t, ids, a.ID)
		assert.Contains(t, ids, d.ID)
		assert.NotContains(t, ids, b.ID)
		assert.NotContains(t, ids, c.ID)
		assert.IsIncreasing(t, ids)
	})

	t.Run("GetItemsBySeller includes terminal items", func(t *testing.T) {
		otherSeller := "0x0123456789012345678901234567890123456789"
		a := mustCreateItem(t, store, "70", otherSeller, "10", "1")
		b := mustCreateItem(t, store, "71", otherSeller, "20", "1")
		_, err := store.MarkItemSold(ctx, buildTestSoldInput(b, testBuyer))
		require.NoError(t, err)

		items, err := store.GetItemsBySeller(ctx, otherSeller)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, a.ID, items[0].ID)
		assert.Equal(t, b.ID, items[1].ID)
	})

	t.Run("GetItemsByOwner returns purchased items", func(t *testing.T) {
		collector := "0x9876543210987654321098765432109876543210"
		a := mustCreateItem(t, store, "80", testSeller, "10", "1")
		b := mustCreateItem(t, store, "81", testSeller, "20", "1")
		_, err := store.MarkItemSold(ctx, buildTestSoldInput(a, collector))
		require.NoError(t, err)
		_, err = store.MarkItemSold(ctx, buildTestSoldInput(b, collector))
		require.NoError(t, err)

		items, err := store.GetItemsByOwner(ctx, collector)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, a.ID, items[0].ID)
		assert.Equal(t, b.ID, items[1].ID)
	})

	t.Run("market counts reconcile with availability", func(t *testing.T) {
		counts, err := store.GetMarketCounts(ctx)
		require.NoError(t, err)

		available, err := store.GetAvailableItems(ctx)
		require.NoError(t, err)

		assert.Equal(t, counts.TotalCreated-counts.TotalSold-counts.TotalCanceled, uint64(len(available)))
	})
}

// =============================================================================
// Test: Fund Book
// =============================================================================

func testFundBook(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("full listing and sale settles every account", func(t *testing.T) {
		item := mustCreateItem(t, store, "7", testSeller, "100", "5")

		_, err := store.MarkItemSold(ctx, buildTestSoldInput(item, testBuyer))
		require.NoError(t, err)

		// Seller: -5 fee at listing, +100 proceeds at sale
		sellerBalance, err := store.GetFundBalance(ctx, testSeller)
		require.NoError(t, err)
		assert.Equal(t, "95", sellerBalance)

		// Buyer paid the price
		buyerBalance, err := store.GetFundBalance(ctx, testBuyer)
		require.NoError(t, err)
		assert.Equal(t, "-100", buyerBalance)

		// Beneficiary collected the fee
		beneficiaryBalance, err := store.GetFundBalance(ctx, testFeeBeneficiary)
		require.NoError(t, err)
		assert.Equal(t, "5", beneficiaryBalance)

		// Escrow nets to zero once the item is sold
		escrowBalance, err := store.GetFundBalance(ctx, testEscrowAccount)
		require.NoError(t, err)
		assert.Equal(t, "0", escrowBalance)
	})

	t.Run("balance of an account with no transfers is zero", func(t *testing.T) {
		balance, err := store.GetFundBalance(ctx, "0x0000000000000000000000000000000000001234")
		require.NoError(t, err)
		assert.Equal(t, "0", balance)
	})

	t.Run("handles 256-bit amounts", func(t *testing.T) {
		// Larger than uint64: forces numeric(78,0) arithmetic end to end
		bigPrice := "115792089237316195423570985008687907853269984665640564039457584007913129639935"
		whale := "0x3333333333333333333333333333333333333333"
		artist := "0x4444444444444444444444444444444444444444"
		item := mustCreateItem(t, store, "90", artist, bigPrice, "0")

		_, err := store.MarkItemSold(ctx, buildTestSoldInput(item, whale))
		require.NoError(t, err)

		buyerBalance, err := store.GetFundBalance(ctx, whale)
		require.NoError(t, err)
		assert.Equal(t, "-"+bigPrice, buyerBalance)

		sellerBalance, err := store.GetFundBalance(ctx, artist)
		require.NoError(t, err)
		assert.Equal(t, bigPrice, sellerBalance)
	})
}

// =============================================================================
// Test: Listing Fee
// =============================================================================

func testListingFee(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("fee is empty until set", func(t *testing.T) {
		fee, err := store.GetListingFee(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", fee)
	})

	t.Run("set and get round-trip", func(t *testing.T) {
		require.NoError(t, store.SetListingFee(ctx, "25"))

		fee, err := store.GetListingFee(ctx)
		require.NoError(t, err)
		assert.Equal(t, "25", fee)

		require.NoError(t, store.SetListingFee(ctx, "30"))

		fee, err = store.GetListingFee(ctx)
		require.NoError(t, err)
		assert.Equal(t, "30", fee)
	})

	t.Run("EnsureListingFee seeds only when unset", func(t *testing.T) {
		require.NoError(t, store.SetListingFee(ctx, "30"))
		require.NoError(t, store.EnsureListingFee(ctx, "99"))

		fee, err := store.GetListingFee(ctx)
		require.NoError(t, err)
		assert.Equal(t, "30", fee, "existing fee must not be overwritten")
	})
}

// =============================================================================
// Test: Market Counters
// =============================================================================

func testMarketCounters(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("EnsureMarketCounters is idempotent", func(t *testing.T) {
		require.NoError(t, store.EnsureMarketCounters(ctx))

		mustCreateItem(t, store, "7", testSeller, "100", "5")

		// Re-seeding must not reset counters that already advanced
		require.NoError(t, store.EnsureMarketCounters(ctx))

		counts, err := store.GetMarketCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), counts.TotalCreated)
	})

	t.Run("counters track every lifecycle transition", func(t *testing.T) {
		a := mustCreateItem(t, store, "100", testSeller, "10", "1")
		b := mustCreateItem(t, store, "101", testSeller, "20", "1")
		mustCreateItem(t, store, "102", testSeller, "30", "1")

		_, err := store.MarkItemSold(ctx, buildTestSoldInput(a, testBuyer))
		require.NoError(t, err)
		_, err = store.MarkItemCanceled(ctx, buildTestCanceledInput(b, testSeller))
		require.NoError(t, err)

		counts, err := store.GetMarketCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), counts.TotalSold)
		assert.Equal(t, uint64(1), counts.TotalCanceled)
		assert.GreaterOrEqual(t, counts.TotalCreated, uint64(3))
	})
}

// =============================================================================
// Test: Event Journal
// =============================================================================

func testEventJournal(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("events are journaled in mutation order with ascending cursors", func(t *testing.T) {
		a := mustCreateItem(t, store, "7", testSeller, "100", "5")
		_, err := store.MarkItemSold(ctx, buildTestSoldInput(a, testBuyer))
		require.NoError(t, err)
		b := mustCreateItem(t, store, "8", testSeller, "200", "5")
		_, err = store.MarkItemCanceled(ctx, buildTestCanceledInput(b, testSeller))
		require.NoError(t, err)

		events, err := store.GetJournalEvents(ctx, 0, 100)
		require.NoError(t, err)
		require.Len(t, events, 4)

		types := make([]string, len(events))
		cursors := make([]int64, len(events))
		for i, ev := range events {
			types[i] = ev.EventType
			cursors[i] = ev.Cursor
		}
		assert.Equal(t, []string{
			string(domain.MarketEventTypeCreated),
			string(domain.MarketEventTypeSold),
			string(domain.MarketEventTypeCreated),
			string(domain.MarketEventTypeCanceled),
		}, types)
		assert.IsIncreasing(t, cursors)
	})

	t.Run("cursor pagination resumes after the last seen event", func(t *testing.T) {
		mustCreateItem(t, store, "110", testSeller, "10", "1")
		mustCreateItem(t, store, "111", testSeller, "10", "1")
		mustCreateItem(t, store, "112", testSeller, "10", "1")

		firstPage, err := store.GetJournalEvents(ctx, 0, 2)
		require.NoError(t, err)
		require.Len(t, firstPage, 2)

		secondPage, err := store.GetJournalEvents(ctx, firstPage[1].Cursor, 2)
		require.NoError(t, err)
		require.NotEmpty(t, secondPage)
		assert.Greater(t, secondPage[0].Cursor, firstPage[1].Cursor)
	})

	t.Run("content hash is the SHA-256 of the canonicalized payload", func(t *testing.T) {
		input := buildTestCreateInput("120", testSeller, "100", "5")
		_, err := store.CreateMarketItem(ctx, input)
		require.NoError(t, err)

		journaled, err := store.GetJournalEventByEventID(ctx, input.Event.EventID)
		require.NoError(t, err)
		require.NotNil(t, journaled)

		canonical, err := jcs.Transform(journaled.Payload)
		require.NoError(t, err)
		digest := sha256.Sum256(canonical)
		assert.Equal(t, hex.EncodeToString(digest[:]), journaled.ContentHash)
	})

	t.Run("unknown event ID returns nil", func(t *testing.T) {
		event, err := store.GetJournalEventByEventID(ctx, ulid.Make().String())
		require.NoError(t, err)
		assert.Nil(t, event)
	})
}

// =============================================================================
// Test: Key-Value Store
// =============================================================================

func testKeyValueStore(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("set and get a key", func(t *testing.T) {
		err := store.SetKeyValue(ctx, "test:key", "value1")
		require.NoError(t, err)

		value, err := store.GetKeyValue(ctx, "test:key")
		require.NoError(t, err)
		assert.Equal(t, "value1", value)
	})

	t.Run("overwrite an existing key", func(t *testing.T) {
		require.NoError(t, store.SetKeyValue(ctx, "test:key2", "old"))
		require.NoError(t, store.SetKeyValue(ctx, "test:key2", "new"))

		value, err := store.GetKeyValue(ctx, "test:key2")
		require.NoError(t, err)
		assert.Equal(t, "new", value)
	})

	t.Run("missing key returns empty string", func(t *testing.T) {
		value, err := store.GetKeyValue(ctx, "test:missing")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})
}

// =============================================================================
// Test: Webhook Clients
// =============================================================================

func testWebhookClients(t *testing.T, store Store) {
	ctx := context.Background()

	buildClient := func(clientID string, filters []string) CreateWebhookClientInput {
		return CreateWebhookClientInput{
			ClientID:         clientID,
			Name:             "test client " + clientID,
			WebhookURL:       "https://example.com/hooks/" + clientID,
			WebhookSecret:    "secret-" + clientID,
			EventFilters:     filters,
			IsActive:         true,
			RetryMaxAttempts: 5,
		}
	}

	t.Run("create and retrieve a client", func(t *testing.T) {
		input := buildClient("client-1", []string{string(domain.MarketEventTypeSold)})

		created, err := store.CreateWebhookClient(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotZero(t, created.ID)

		client, err := store.GetWebhookClientByID(ctx, "client-1")
		require.NoError(t, err)
		require.NotNil(t, client)
		assert.Equal(t, input.WebhookURL, client.WebhookURL)
		assert.Equal(t, input.WebhookSecret, client.WebhookSecret)
		assert.True(t, client.IsActive)

		var filters []string
		require.NoError(t, json.Unmarshal(client.EventFilters, &filters))
		assert.Equal(t, input.EventFilters, filters)
	})

	t.Run("unknown client returns nil", func(t *testing.T) {
		client, err := store.GetWebhookClientByID(ctx, "client-unknown")
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("event type filtering honors exact matches and wildcard", func(t *testing.T) {
		_, err := store.CreateWebhookClient(ctx, buildClient("client-sold", []string{string(domain.MarketEventTypeSold)}))
		require.NoError(t, err)
		_, err = store.CreateWebhookClient(ctx, buildClient("client-all", []string{"*"}))
		require.NoError(t, err)
		_, err = store.CreateWebhookClient(ctx, buildClient("client-canceled", []string{string(domain.MarketEventTypeCanceled)}))
		require.NoError(t, err)

		clients, err := store.GetActiveWebhookClientsByEventType(ctx, string(domain.MarketEventTypeSold))
		require.NoError(t, err)

		ids := make([]string, 0, len(clients))
		for _, c := range clients {
			ids = append(ids, c.ClientID)
		}
		assert.Contains(t, ids, "client-sold")
		assert.Contains(t, ids, "client-all")
		assert.NotContains(t, ids, "client-canceled")
	})

	t.Run("deactivated clients stop matching", func(t *testing.T) {
		_, err := store.CreateWebhookClient(ctx, buildClient("client-off", []string{"*"}))
		require.NoError(t, err)

		require.NoError(t, store.DeactivateWebhookClient(ctx, "client-off"))

		clients, err := store.GetActiveWebhookClientsByEventType(ctx, string(domain.MarketEventTypeCreated))
		require.NoError(t, err)
		for _, c := range clients {
			assert.NotEqual(t, "client-off", c.ClientID)
		}

		client, err := store.GetWebhookClientByID(ctx, "client-off")
		require.NoError(t, err)
		require.NotNil(t, client)
		assert.False(t, client.IsActive)
	})

	t.Run("deactivating an unknown client fails", func(t *testing.T) {
		err := store.DeactivateWebhookClient(ctx, "client-ghost")
		assert.ErrorIs(t, err, domain.ErrWebhookClientNotFound)
	})
}

// =============================================================================
// Test: Webhook Deliveries
// =============================================================================

func testWebhookDeliveries(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create and update a delivery record", func(t *testing.T) {
		delivery := &schema.WebhookDelivery{
			ClientID:       "client-1",
			EventID:        ulid.Make().String(),
			EventType:      string(domain.MarketEventTypeSold),
			Payload:        []byte(`{"item_id":1}`),
			WorkflowID:     "deliver-webhook-test",
			DeliveryStatus: schema.WebhookDeliveryStatusPending,
		}

		err := store.CreateWebhookDelivery(ctx, delivery)
		require.NoError(t, err)
		require.NotZero(t, delivery.ID)

		status := 200
		err = store.UpdateWebhookDeliveryStatus(ctx, delivery.ID, schema.WebhookDeliveryStatusSuccess, 1, &status, `{"ok":true}`, "")
		require.NoError(t, err)
	})

	t.Run("long error messages are truncated", func(t *testing.T) {
		delivery := &schema.WebhookDelivery{
			ClientID:       "client-1",
			EventID:        ulid.Make().String(),
			EventType:      string(domain.MarketEventTypeSold),
			Payload:        []byte(`{"item_id":2}`),
			WorkflowID:     "deliver-webhook-test-2",
			DeliveryStatus: schema.WebhookDeliveryStatusPending,
		}
		require.NoError(t, store.CreateWebhookDelivery(ctx, delivery))

		longError := make([]byte, 2048)
		for i := range longError {
			longError[i] = 'x'
		}

		err := store.UpdateWebhookDeliveryStatus(ctx, delivery.ID, schema.WebhookDeliveryStatusFailed, 3, nil, "", string(longError))
		require.NoError(t, err)
	})
}

// =============================================================================
// Test: Custody Checks
// =============================================================================

func testCustodyChecks(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("never-checked available items are due first", func(t *testing.T) {
		a := mustCreateItem(t, store, "7", testSeller, "100", "5")
		b := mustCreateItem(t, store, "8", testSeller, "100", "5")

		due, err := store.GetItemsForCustodyCheck(ctx, time.Hour, 10)
		require.NoError(t, err)

		ids := make([]uint64, 0, len(due))
		for _, item := range due {
			ids = append(ids, item.ID)
		}
		assert.Contains(t, ids, a.ID)
		assert.Contains(t, ids, b.ID)
	})

	t.Run("recently checked items are skipped until the recheck window passes", func(t *testing.T) {
		item := mustCreateItem(t, store, "130", testSeller, "100", "5")

		err := store.UpsertCustodyCheck(ctx, UpsertCustodyCheckInput{
			MarketItemID:  item.ID,
			Status:        schema.CustodyStatusHeld,
			HolderAddress: testEscrowAccount,
			CheckedAt:     time.Now(),
		})
		require.NoError(t, err)

		due, err := store.GetItemsForCustodyCheck(ctx, time.Hour, 100)
		require.NoError(t, err)
		for _, d := range due {
			assert.NotEqual(t, item.ID, d.ID, "freshly checked item must not be due")
		}

		// A zero window makes everything due again
		due, err = store.GetItemsForCustodyCheck(ctx, 0, 100)
		require.NoError(t, err)
		ids := make([]uint64, 0, len(due))
		for _, d := range due {
			ids = append(ids, d.ID)
		}
		assert.Contains(t, ids, item.ID)
	})

	t.Run("terminal items are never due", func(t *testing.T) {
		item := mustCreateItem(t, store, "131", testSeller, "100", "5")
		_, err := store.MarkItemSold(ctx, buildTestSoldInput(item, testBuyer))
		require.NoError(t, err)

		due, err := store.GetItemsForCustodyCheck(ctx, 0, 100)
		require.NoError(t, err)
		for _, d := range due {
			assert.NotEqual(t, item.ID, d.ID)
		}
	})

	t.Run("upsert replaces the previous check for an item", func(t *testing.T) {
		item := mustCreateItem(t, store, "132", testSeller, "100", "5")

		require.NoError(t, store.UpsertCustodyCheck(ctx, UpsertCustodyCheckInput{
			MarketItemID:  item.ID,
			Status:        schema.CustodyStatusHeld,
			HolderAddress: testEscrowAccount,
			CheckedAt:     time.Now().Add(-time.Hour),
		}))
		require.NoError(t, store.UpsertCustodyCheck(ctx, UpsertCustodyCheckInput{
			MarketItemID:  item.ID,
			Status:        schema.CustodyStatusDiverged,
			HolderAddress: "0x4e11114e11114e11114e11114e11114e11114e11",
			ErrorMessage:  "",
			CheckedAt:     time.Now(),
		}))

		check, err := store.GetCustodyCheckByItemID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, check)
		assert.Equal(t, schema.CustodyStatusDiverged, check.Status)
		assert.Equal(t, "0x4e11114e11114e11114e11114e11114e11114e11", check.HolderAddress)
	})

	t.Run("unknown item returns nil check", func(t *testing.T) {
		check, err := store.GetCustodyCheckByItemID(ctx, 987654)
		require.NoError(t, err)
		assert.Nil(t, check)
	})
}

// =============================================================================
// Test: End-to-End Ledger Sequence
// =============================================================================

// testLedgerEndToEnd walks the canonical lifecycle: list a token with a fee,
// sell it, verify every account and counter, then confirm the terminal state
// rejects further mutations.
func testLedgerEndToEnd(t *testing.T, store Store) {
	ctx := context.Background()

	item := mustCreateItem(t, store, "7", testSeller, "100", "5")
	assert.Equal(t, uint64(1), item.ID)

	available, err := store.GetAvailableItems(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)

	_, err = store.MarkItemSold(ctx, buildTestSoldInput(item, testBuyer))
	require.NoError(t, err)

	sellerBalance, err := store.GetFundBalance(ctx, testSeller)
	require.NoError(t, err)
	assert.Equal(t, "95", sellerBalance, "seller paid 5 fee and received 100")

	beneficiaryBalance, err := store.GetFundBalance(ctx, testFeeBeneficiary)
	require.NoError(t, err)
	assert.Equal(t, "5", beneficiaryBalance)

	available, err = store.GetAvailableItems(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 0)

	_, err = store.MarkItemCanceled(ctx, buildTestCanceledInput(item, testSeller))
	assert.ErrorIs(t, err, domain.ErrItemTerminal)

	counts, err := store.GetMarketCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), counts.TotalCreated)
	assert.Equal(t, uint64(1), counts.TotalSold)
	assert.Equal(t, uint64(0), counts.TotalCanceled)
}

// =============================================================================
// Suite Driver
// =============================================================================

// RunStoreTests runs all store tests against the given store factory
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"CreateMarketItem", testCreateMarketItem},
		{"MarkItemSold", testMarkItemSold},
		{"MarkItemCanceled", testMarkItemCanceled},
		{"MarketQueries", testMarketQueries},
		{"FundBook", testFundBook},
		{"ListingFee", testListingFee},
		{"MarketCounters", testMarketCounters},
		{"EventJournal", testEventJournal},
		{"KeyValueStore", testKeyValueStore},
		{"WebhookClients", testWebhookClients},
		{"WebhookDeliveries", testWebhookDeliveries},
		{"CustodyChecks", testCustodyChecks},
		{"LedgerEndToEnd", testLedgerEndToEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

