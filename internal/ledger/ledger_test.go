package ledger_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace-v2/internal/domain"
	"github.com/feral-file/ff-marketplace-v2/internal/ledger"
	"github.com/feral-file/ff-marketplace-v2/internal/logger"
	"github.com/feral-file/ff-marketplace-v2/internal/mocks"
	"github.com/feral-file/ff-marketplace-v2/internal/store"
	"github.com/feral-file/ff-marketplace-v2/internal/store/schema"
)

const (
	testContract    = "0x5b38da6a701c568545dcfcb03fcb875f56beddc4"
	testSeller      = "0xab8483f64d9c6d1ecf9b849ae677dd3315835cb2"
	testBuyer       = "0x4b20993bc481177ec7e8f571cecae8a9e22c02db"
	testCreator     = "0x17f6ad8ef982297579c203069c1dbffe4348c372"
	testBeneficiary = "0x78731d3ca6b7e34ac0f824c42a7cc18a495cabab"
	testEscrow      = "0x617f2e2fd72fd9d5503197092ac168c91465e7f2"

	testTxHash        = "0x6c5edbfbeb55b20b2b84e02a45381171cf25a1bbf1f07d5f2ba04ee932b61fab"
	testReleaseTxHash = "0x9c8b1e37b6393837312f5a1c4a10be9dd25de46d94c45dcca0c834dee397886e"
)

var testNow = time.Date(2024, 11, 5, 8, 30, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testLedgerMocks contains all the mocks needed for testing the ledger engine
type testLedgerMocks struct {
	ctrl       *gomock.Controller
	store      *mocks.MockStore
	collection *mocks.MockCollectionGateway
	publisher  *mocks.MockPublisher
	registry   *mocks.MockCollectionRegistry
	clock      *mocks.MockClock
	ledger     ledger.Ledger
}

// setupTestLedger creates all the mocks and the engine for testing
func setupTestLedger(t *testing.T) *testLedgerMocks {
	ctrl := gomock.NewController(t)

	tm := &testLedgerMocks{
		ctrl:       ctrl,
		store:      mocks.NewMockStore(ctrl),
		collection: mocks.NewMockCollectionGateway(ctrl),
		publisher:  mocks.NewMockPublisher(ctrl),
		registry:   mocks.NewMockCollectionRegistry(ctrl),
		clock:      mocks.NewMockClock(ctrl),
	}

	lg, err := ledger.NewLedger(
		tm.store,
		tm.collection,
		tm.publisher,
		tm.registry,
		ledger.Config{
			FeeBeneficiary:    testBeneficiary,
			DefaultListingFee: "5",
		},
		tm.clock,
	)
	require.NoError(t, err)
	tm.ledger = lg

	return tm
}

// tearDownTestLedger cleans up the test mocks
func tearDownTestLedger(mocks *testLedgerMocks) {
	mocks.ctrl.Finish()
}

// availableItem is the stored row of a freshly created listing
func availableItem() *schema.MarketItem {
	return &schema.MarketItem{
		ID:                 1,
		CollectionContract: testContract,
		TokenID:            "7",
		Creator:            testCreator,
		Seller:             testSeller,
		Owner:              domain.ZeroAddress,
		Price:              "100",
		CreatedAt:          testNow,
		UpdatedAt:          testNow,
	}
}

// soldItem is the stored row after a settled sale
func soldItem() *schema.MarketItem {
	item := availableItem()
	item.Owner = testBuyer
	item.Sold = true
	return item
}

// canceledItem is the stored row after a cancellation
func canceledItem() *schema.MarketItem {
	item := availableItem()
	item.Owner = testSeller
	item.Canceled = true
	return item
}

func validCreateParams() ledger.CreateItemParams {
	return ledger.CreateItemParams{
		CollectionContract: testContract,
		TokenID:            "7",
		Seller:             testSeller,
		Price:              "100",
		Payment:            "5",
	}
}

// expectCreateValidation wires the checks shared by every listing that passes
// validation: fee lookup, allowlist and escrow approval
func expectCreateValidation(tm *testLedgerMocks) {
	tm.clock.EXPECT().Now().Return(testNow).AnyTimes()
	tm.collection.EXPECT().EscrowAddress().Return(testEscrow).AnyTimes()
	tm.store.EXPECT().GetListingFee(gomock.Any()).Return("5", nil)
	tm.registry.EXPECT().IsAllowed(testContract).Return(true)
	tm.collection.EXPECT().IsApprovedForAll(gomock.Any(), testContract, testSeller, testEscrow).Return(true, nil)
}

func TestNewLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	gateway := mocks.NewMockCollectionGateway(ctrl)
	pub := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)

	t.Run("rejects an invalid fee beneficiary", func(t *testing.T) {
		_, err := ledger.NewLedger(st, gateway, pub, nil, ledger.Config{
			FeeBeneficiary:    "not-an-address",
			DefaultListingFee: "5",
		}, clock)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid fee beneficiary address")
	})

	t.Run("rejects an invalid default listing fee", func(t *testing.T) {
		_, err := ledger.NewLedger(st, gateway, pub, nil, ledger.Config{
			FeeBeneficiary:    testBeneficiary,
			DefaultListingFee: "-5",
		}, clock)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid default listing fee")
	})

	t.Run("runs without an allowlist", func(t *testing.T) {
		lg, err := ledger.NewLedger(st, gateway, pub, nil, ledger.Config{
			FeeBeneficiary:    testBeneficiary,
			DefaultListingFee: "5",
		}, clock)
		assert.NoError(t, err)
		assert.NotNil(t, lg)
	})
}

func TestLedger_Bootstrap(t *testing.T) {
	testCases := []struct {
		name        string
		setupMocks  func(tm *testLedgerMocks)
		errContains string
	}{
		{
			name: "seeds counters and default fee",
			setupMocks: func(tm *testLedgerMocks) {
				tm.store.EXPECT().EnsureMarketCounters(gomock.Any()).Return(nil)
				tm.store.EXPECT().EnsureListingFee(gomock.Any(), "5").Return(nil)
			},
		},
		{
			name: "counter seeding failure",
			setupMocks: func(tm *testLedgerMocks) {
				tm.store.EXPECT().EnsureMarketCounters(gomock.Any()).Return(errors.New("connection refused"))
			},
			errContains: "failed to ensure market counters",
		},
		{
			name: "fee seeding failure",
			setupMocks: func(tm *testLedgerMocks) {
				tm.store.EXPECT().EnsureMarketCounters(gomock.Any()).Return(nil)
				tm.store.EXPECT().EnsureListingFee(gomock.Any(), "5").Return(errors.New("connection refused"))
			},
			errContains: "failed to ensure listing fee",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tm := setupTestLedger(t)
			defer tearDownTestLedger(tm)

			tc.setupMocks(tm)

			err := tm.ledger.Bootstrap(context.Background())

			if tc.errContains != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLedger_CreateItem(t *testing.T) {
	testCases := []struct {
		name        string
		params      ledger.CreateItemParams
		setupMocks  func(t *testing.T, tm *testLedgerMocks)
		expectedErr error
		errContains string
	}{
		{
			name:   "creates a listing and takes custody",
			params: validCreateParams(),
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				expectCreateValidation(tm)
				tm.collection.EXPECT().CreatorOf(gomock.Any(), testContract, "7").Return(testCreator, nil)
				tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testSeller, testEscrow, "7").Return(testTxHash, nil)
				tm.collection.EXPECT().WaitMined(gomock.Any(), testTxHash).Return(nil)
				tm.store.EXPECT().CreateMarketItem(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, input store.CreateMarketItemInput) (*schema.MarketItem, error) {
						assert.Equal(t, testContract, input.CollectionContract)
						assert.Equal(t, "7", input.TokenID)
						assert.Equal(t, testCreator, input.Creator)
						assert.Equal(t, testSeller, input.Seller)
						assert.Equal(t, "100", input.Price)
						assert.Equal(t, "5", input.ListingFee)
						assert.Equal(t, testEscrow, input.EscrowAccount)
						assert.Equal(t, domain.MarketEventTypeCreated, input.Event.EventType)
						assert.Equal(t, domain.ZeroAddress, input.Event.Owner)
						assert.Len(t, input.Event.EventID, 26)
						return availableItem(), nil
					})
				tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, event *domain.MarketEvent) error {
						assert.Equal(t, domain.MarketEventTypeCreated, event.EventType)
						assert.Equal(t, uint64(1), event.ItemID)
						assert.Equal(t, "100", event.Price)
						return nil
					})
			},
		},
		{
			name: "normalizes addresses and token id",
			params: ledger.CreateItemParams{
				CollectionContract: "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4",
				TokenID:            "007",
				Seller:             "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2",
				Price:              "0100",
				Payment:            "05",
			},
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				expectCreateValidation(tm)
				tm.collection.EXPECT().CreatorOf(gomock.Any(), testContract, "7").Return(testCreator, nil)
				tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testSeller, testEscrow, "7").Return(testTxHash, nil)
				tm.collection.EXPECT().WaitMined(gomock.Any(), testTxHash).Return(nil)
				tm.store.EXPECT().CreateMarketItem(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, input store.CreateMarketItemInput) (*schema.MarketItem, error) {
						assert.Equal(t, testContract, input.CollectionContract)
						assert.Equal(t, "7", input.TokenID)
						assert.Equal(t, testSeller, input.Seller)
						assert.Equal(t, "100", input.Price)
						return availableItem(), nil
					})
				tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "falls back to the seller as creator",
			params: ledger.CreateItemParams{
				CollectionContract: testContract,
				TokenID:            "7",
				Seller:             testSeller,
				Price:              "100",
				Payment:            "5",
			},
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				expectCreateValidation(tm)
				tm.collection.EXPECT().CreatorOf(gomock.Any(), testContract, "7").
					Return("", errors.New("execution reverted"))
				tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testSeller, testEscrow, "7").Return(testTxHash, nil)
				tm.collection.EXPECT().WaitMined(gomock.Any(), testTxHash).Return(nil)
				tm.store.EXPECT().CreateMarketItem(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, input store.CreateMarketItemInput) (*schema.MarketItem, error) {
						assert.Equal(t, testSeller, input.Creator)
						return availableItem(), nil
					})
				tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "prefers the supplied creator over the seller",
			params: ledger.CreateItemParams{
				CollectionContract: testContract,
				TokenID:            "7",
				Seller:             testSeller,
				Price:              "100",
				Payment:            "5",
				Creator:            testCreator,
			},
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				expectCreateValidation(tm)
				tm.collection.EXPECT().CreatorOf(gomock.Any(), testContract, "7").
					Return("", errors.New("execution reverted"))
				tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testSeller, testEscrow, "7").Return(testTxHash, nil)
				tm.collection.EXPECT().WaitMined(gomock.Any(), testTxHash).Return(nil)
				tm.store.EXPECT().CreateMarketItem(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, input store.CreateMarketItemInput) (*schema.MarketItem, error) {
						assert.Equal(t, testCreator, input.Creator)
						return availableItem(), nil
					})
				tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "rejects a zero price",
			params: ledger.CreateItemParams{
				CollectionContract: testContract,
				TokenID:            "7",
				Seller:             testSeller,
				Price:              "0",
				Payment:            "5",
			},
			expectedErr: domain.ErrZeroPrice,
		},
		{
			name: "rejects a malformed price",
			params: ledger.CreateItemParams{
				CollectionContract: testContract,
				TokenID:            "7",
				Seller:             testSeller,
				Price:              "1.5",
				Payment:            "5",
			},
			expectedErr: domain.ErrInvalidAmount,
			errContains: "invalid price",
		},
		{
			name: "rejects an invalid seller address",
			params: ledger.CreateItemParams{
				CollectionContract: testContract,
				TokenID:            "7",
				Seller:             "mallory",
				Price:              "100",
				Payment:            "5",
			},
			expectedErr: domain.ErrInvalidAddress,
			errContains: "invalid seller address",
		},
		{
			name: "rejects payment that does not equal the listing fee",
			params: ledger.CreateItemParams{
				CollectionContract: testContract,
				TokenID:            "7",
				Seller:             testSeller,
				Price:              "100",
				Payment:            "4",
			},
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetListingFee(gomock.Any()).Return("5", nil)
			},
			expectedErr: domain.ErrWrongPayment,
		},
		{
			name: "rejects overpayment of the listing fee",
			params: ledger.CreateItemParams{
				CollectionContract: testContract,
				TokenID:            "7",
				Seller:             testSeller,
				Price:              "100",
				Payment:            "6",
			},
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetListingFee(gomock.Any()).Return("5", nil)
			},
			expectedErr: domain.ErrWrongPayment,
		},
		{
			name:   "rejects a collection outside the allowlist",
			params: validCreateParams(),
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetListingFee(gomock.Any()).Return("5", nil)
				tm.registry.EXPECT().IsAllowed(testContract).Return(false)
			},
			expectedErr: domain.ErrCollectionNotAllowed,
		},
		{
			name:   "rejects a seller that has not approved the escrow",
			params: validCreateParams(),
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.collection.EXPECT().EscrowAddress().Return(testEscrow).AnyTimes()
				tm.store.EXPECT().GetListingFee(gomock.Any()).Return("5", nil)
				tm.registry.EXPECT().IsAllowed(testContract).Return(true)
				tm.collection.EXPECT().IsApprovedForAll(gomock.Any(), testContract, testSeller, testEscrow).Return(false, nil)
			},
			expectedErr: domain.ErrEscrowNotApproved,
		},
		{
			name:   "fails when the escrow transfer cannot be sent",
			params: validCreateParams(),
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				expectCreateValidation(tm)
				tm.collection.EXPECT().CreatorOf(gomock.Any(), testContract, "7").Return(testCreator, nil)
				tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testSeller, testEscrow, "7").
					Return("", errors.New("insufficient funds for gas"))
			},
			errContains: "failed to transfer token into escrow",
		},
		{
			name:   "fails when the escrow transfer reverts",
			params: validCreateParams(),
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				expectCreateValidation(tm)
				tm.collection.EXPECT().CreatorOf(gomock.Any(), testContract, "7").Return(testCreator, nil)
				tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testSeller, testEscrow, "7").Return(testTxHash, nil)
				tm.collection.EXPECT().WaitMined(gomock.Any(), testTxHash).
					Return(errors.New("transaction " + testTxHash + " reverted"))
			},
			errContains: "failed to confirm escrow transfer",
		},
		{
			name:   "returns custody when the commit fails",
			params: validCreateParams(),
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				expectCreateValidation(tm)
				tm.collection.EXPECT().CreatorOf(gomock.Any(), testContract, "7").Return(testCreator, nil)
				tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testSeller, testEscrow, "7").Return(testTxHash, nil)
				tm.collection.EXPECT().WaitMined(gomock.Any(), testTxHash).Return(nil)
				tm.store.EXPECT().CreateMarketItem(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("deadlock detected"))
				tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testEscrow, testSeller, "7").Return(testReleaseTxHash, nil)
				tm.collection.EXPECT().WaitMined(gomock.Any(), testReleaseTxHash).Return(nil)
			},
			errContains: "failed to record listing",
		},
		{
			name:   "tolerates a publish failure after the commit",
			params: validCreateParams(),
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				expectCreateValidation(tm)
				tm.collection.EXPECT().CreatorOf(gomock.Any(), testContract, "7").Return(testCreator, nil)
				tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testSeller, testEscrow, "7").Return(testTxHash, nil)
				tm.collection.EXPECT().WaitMined(gomock.Any(), testTxHash).Return(nil)
				tm.store.EXPECT().CreateMarketItem(gomock.Any(), gomock.Any()).Return(availableItem(), nil)
				tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
					Return(errors.New("nats: connection closed"))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tm := setupTestLedger(t)
			defer tearDownTestLedger(tm)

			if tc.setupMocks != nil {
				tc.setupMocks(t, tm)
			}

			item, err := tm.ledger.CreateItem(context.Background(), tc.params)

			if tc.expectedErr != nil || tc.errContains != "" {
				assert.Error(t, err)
				if tc.expectedErr != nil {
					assert.ErrorIs(t, err, tc.expectedErr)
				}
				if tc.errContains != "" {
					assert.Contains(t, err.Error(), tc.errContains)
				}
				assert.Nil(t, item)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, item)
				assert.Equal(t, uint64(1), item.ID)
				assert.True(t, item.Available())
				assert.False(t, item.Terminal())
			}
		})
	}
}

func TestLedger_ExecuteSale(t *testing.T) {
	validParams := ledger.ExecuteSaleParams{
		CollectionContract: testContract,
		ItemID:             1,
		Buyer:              testBuyer,
		Payment:            "100",
	}

	testCases := []struct {
		name        string
		params      ledger.ExecuteSaleParams
		setupMocks  func(t *testing.T, tm *testLedgerMocks)
		expectedErr error
		errContains string
	}{
		{
			name:   "settles a sale at the asking price",
			params: validParams,
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.clock.EXPECT().Now().Return(testNow).AnyTimes()
				tm.collection.EXPECT().EscrowAddress().Return(testEscrow).AnyTimes()
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(availableItem(), nil)
				tm.store.EXPECT().MarkItemSold(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, input store.MarkItemSoldInput) (*schema.MarketItem, error) {
						assert.Equal(t, uint64(1), input.ItemID)
						assert.Equal(t, testBuyer, input.Buyer)
						assert.Equal(t, testEscrow, input.EscrowAccount)
						assert.Equal(t, testBeneficiary, input.FeeBeneficiary)
						assert.Equal(t, domain.MarketEventTypeSold, input.Event.EventType)
						assert.Equal(t, testBuyer, input.Event.Owner)
						assert.Equal(t, "100", input.Event.Price)
						assert.True(t, input.Event.Sold)
						return soldItem(), nil
					})
				tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testEscrow, testBuyer, "7").Return(testReleaseTxHash, nil)
				tm.collection.EXPECT().WaitMined(gomock.Any(), testReleaseTxHash).Return(nil)
				tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, event *domain.MarketEvent) error {
						assert.Equal(t, domain.MarketEventTypeSold, event.EventType)
						assert.Equal(t, uint64(1), event.ItemID)
						assert.Equal(t, testBuyer, event.Buyer)
						return nil
					})
			},
		},
		{
			name:   "rejects an unknown item",
			params: validParams,
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(nil, nil)
			},
			expectedErr: domain.ErrItemNotFound,
		},
		{
			name: "rejects a mismatched collection",
			params: ledger.ExecuteSaleParams{
				CollectionContract: "0x2222222222222222222222222222222222222222",
				ItemID:             1,
				Buyer:              testBuyer,
				Payment:            "100",
			},
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(availableItem(), nil)
			},
			expectedErr: domain.ErrCollectionMismatch,
		},
		{
			name:   "rejects an item that is already sold",
			params: validParams,
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(soldItem(), nil)
			},
			expectedErr: domain.ErrItemTerminal,
		},
		{
			name:   "rejects an item that is already canceled",
			params: validParams,
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(canceledItem(), nil)
			},
			expectedErr: domain.ErrItemTerminal,
		},
		{
			name: "rejects payment below the asking price",
			params: ledger.ExecuteSaleParams{
				CollectionContract: testContract,
				ItemID:             1,
				Buyer:              testBuyer,
				Payment:            "99",
			},
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(availableItem(), nil)
			},
			expectedErr: domain.ErrWrongPayment,
		},
		{
			name: "rejects payment above the asking price",
			params: ledger.ExecuteSaleParams{
				CollectionContract: testContract,
				ItemID:             1,
				Buyer:              testBuyer,
				Payment:            "101",
			},
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(availableItem(), nil)
			},
			expectedErr: domain.ErrWrongPayment,
		},
		{
			name:   "fails when the settlement cannot be committed",
			params: validParams,
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.clock.EXPECT().Now().Return(testNow).AnyTimes()
				tm.collection.EXPECT().EscrowAddress().Return(testEscrow).AnyTimes()
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(availableItem(), nil)
				tm.store.EXPECT().MarkItemSold(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("deadlock detected"))
			},
			errContains: "failed to settle sale",
		},
		{
			name:   "tolerates a custody release failure",
			params: validParams,
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.clock.EXPECT().Now().Return(testNow).AnyTimes()
				tm.collection.EXPECT().EscrowAddress().Return(testEscrow).AnyTimes()
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(availableItem(), nil)
				tm.store.EXPECT().MarkItemSold(gomock.Any(), gomock.Any()).Return(soldItem(), nil)
				tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testEscrow, testBuyer, "7").
					Return("", errors.New("nonce too low"))
				tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tm := setupTestLedger(t)
			defer tearDownTestLedger(tm)

			if tc.setupMocks != nil {
				tc.setupMocks(t, tm)
			}

			item, err := tm.ledger.ExecuteSale(context.Background(), tc.params)

			if tc.expectedErr != nil || tc.errContains != "" {
				assert.Error(t, err)
				if tc.expectedErr != nil {
					assert.ErrorIs(t, err, tc.expectedErr)
				}
				if tc.errContains != "" {
					assert.Contains(t, err.Error(), tc.errContains)
				}
				assert.Nil(t, item)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, item)
				assert.True(t, item.Sold)
				assert.Equal(t, testBuyer, item.Owner)
				assert.False(t, item.Available())
			}
		})
	}
}

func TestLedger_CancelItem(t *testing.T) {
	validParams := ledger.CancelItemParams{
		CollectionContract: testContract,
		ItemID:             1,
		Seller:             testSeller,
	}

	testCases := []struct {
		name        string
		params      ledger.CancelItemParams
		setupMocks  func(t *testing.T, tm *testLedgerMocks)
		expectedErr error
		errContains string
	}{
		{
			name:   "cancels an available listing",
			params: validParams,
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.clock.EXPECT().Now().Return(testNow).AnyTimes()
				tm.collection.EXPECT().EscrowAddress().Return(testEscrow).AnyTimes()
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(availableItem(), nil)
				tm.store.EXPECT().MarkItemCanceled(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, input store.MarkItemCanceledInput) (*schema.MarketItem, error) {
						assert.Equal(t, uint64(1), input.ItemID)
						assert.Equal(t, testSeller, input.Seller)
						assert.Equal(t, domain.MarketEventTypeCanceled, input.Event.EventType)
						assert.Equal(t, testSeller, input.Event.Owner)
						assert.True(t, input.Event.Canceled)
						assert.Empty(t, input.Event.Price)
						return canceledItem(), nil
					})
				tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testEscrow, testSeller, "7").Return(testReleaseTxHash, nil)
				tm.collection.EXPECT().WaitMined(gomock.Any(), testReleaseTxHash).Return(nil)
				tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, event *domain.MarketEvent) error {
						assert.Equal(t, domain.MarketEventTypeCanceled, event.EventType)
						assert.Equal(t, uint64(1), event.ItemID)
						return nil
					})
			},
		},
		{
			name: "rejects a caller other than the seller",
			params: ledger.CancelItemParams{
				CollectionContract: testContract,
				ItemID:             1,
				Seller:             testBuyer,
			},
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(availableItem(), nil)
			},
			expectedErr: domain.ErrNotSeller,
		},
		{
			name:   "rejects an unknown item",
			params: validParams,
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(nil, nil)
			},
			expectedErr: domain.ErrItemNotFound,
		},
		{
			name: "rejects a mismatched collection",
			params: ledger.CancelItemParams{
				CollectionContract: "0x2222222222222222222222222222222222222222",
				ItemID:             1,
				Seller:             testSeller,
			},
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(availableItem(), nil)
			},
			expectedErr: domain.ErrCollectionMismatch,
		},
		{
			name:   "rejects an item that is already canceled",
			params: validParams,
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(canceledItem(), nil)
			},
			expectedErr: domain.ErrItemTerminal,
		},
		{
			name:   "rejects an item that is already sold",
			params: validParams,
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(soldItem(), nil)
			},
			expectedErr: domain.ErrItemTerminal,
		},
		{
			name:   "fails when the cancellation cannot be committed",
			params: validParams,
			setupMocks: func(t *testing.T, tm *testLedgerMocks) {
				tm.clock.EXPECT().Now().Return(testNow).AnyTimes()
				tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(availableItem(), nil)
				tm.store.EXPECT().MarkItemCanceled(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("deadlock detected"))
			},
			errContains: "failed to cancel item",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tm := setupTestLedger(t)
			defer tearDownTestLedger(tm)

			if tc.setupMocks != nil {
				tc.setupMocks(t, tm)
			}

			item, err := tm.ledger.CancelItem(context.Background(), tc.params)

			if tc.expectedErr != nil || tc.errContains != "" {
				assert.Error(t, err)
				if tc.expectedErr != nil {
					assert.ErrorIs(t, err, tc.expectedErr)
				}
				if tc.errContains != "" {
					assert.Contains(t, err.Error(), tc.errContains)
				}
				assert.Nil(t, item)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, item)
				assert.True(t, item.Canceled)
				assert.Equal(t, testSeller, item.Owner)
				assert.False(t, item.Available())
			}
		})
	}
}

// TestLedger_Lifecycle walks one listing through its full life: created,
// sold, and then refused further mutations.
func TestLedger_Lifecycle(t *testing.T) {
	tm := setupTestLedger(t)
	defer tearDownTestLedger(tm)

	ctx := context.Background()

	tm.clock.EXPECT().Now().Return(testNow).AnyTimes()
	tm.collection.EXPECT().EscrowAddress().Return(testEscrow).AnyTimes()

	// Token 7 listed for 100 with the 5 listing fee attached.
	tm.store.EXPECT().GetListingFee(gomock.Any()).Return("5", nil)
	tm.registry.EXPECT().IsAllowed(testContract).Return(true)
	tm.collection.EXPECT().IsApprovedForAll(gomock.Any(), testContract, testSeller, testEscrow).Return(true, nil)
	tm.collection.EXPECT().CreatorOf(gomock.Any(), testContract, "7").Return(testCreator, nil)
	tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testSeller, testEscrow, "7").Return(testTxHash, nil)
	tm.collection.EXPECT().WaitMined(gomock.Any(), testTxHash).Return(nil)
	tm.store.EXPECT().CreateMarketItem(gomock.Any(), gomock.Any()).Return(availableItem(), nil)
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	created, err := tm.ledger.CreateItem(ctx, validCreateParams())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.ID)
	assert.True(t, created.Available())

	// The buyer pays the asking price; proceeds go to the seller net of the
	// fee and the beneficiary is credited inside the settlement transaction.
	tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(availableItem(), nil)
	tm.store.EXPECT().MarkItemSold(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input store.MarkItemSoldInput) (*schema.MarketItem, error) {
			assert.Equal(t, testBeneficiary, input.FeeBeneficiary)
			assert.Equal(t, testEscrow, input.EscrowAccount)
			return soldItem(), nil
		})
	tm.collection.EXPECT().TransferFrom(gomock.Any(), testContract, testEscrow, testBuyer, "7").Return(testReleaseTxHash, nil)
	tm.collection.EXPECT().WaitMined(gomock.Any(), testReleaseTxHash).Return(nil)
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	bought, err := tm.ledger.ExecuteSale(ctx, ledger.ExecuteSaleParams{
		CollectionContract: testContract,
		ItemID:             1,
		Buyer:              testBuyer,
		Payment:            "100",
	})
	require.NoError(t, err)
	assert.True(t, bought.Sold)
	assert.Equal(t, testBuyer, bought.Owner)

	// Terminal items stay terminal.
	tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(soldItem(), nil)

	_, err = tm.ledger.CancelItem(ctx, ledger.CancelItemParams{
		CollectionContract: testContract,
		ItemID:             1,
		Seller:             testSeller,
	})
	assert.ErrorIs(t, err, domain.ErrItemTerminal)
}

func TestLedger_GetItem(t *testing.T) {
	t.Run("returns the item", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(1)).Return(availableItem(), nil)

		item, err := tm.ledger.GetItem(context.Background(), 1)
		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, uint64(1), item.ID)
		assert.Equal(t, "7", item.TokenID)
		assert.True(t, item.Available())
	})

	t.Run("unknown item", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetMarketItemByID(gomock.Any(), uint64(42)).Return(nil, nil)

		item, err := tm.ledger.GetItem(context.Background(), 42)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
		assert.Nil(t, item)
	})
}

func TestLedger_GetLatestItemByTokenID(t *testing.T) {
	t.Run("returns the latest listing", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetLatestItemByTokenID(gomock.Any(), "7").Return(soldItem(), nil)

		item, found, err := tm.ledger.GetLatestItemByTokenID(context.Background(), "7")
		assert.NoError(t, err)
		assert.True(t, found)
		require.NotNil(t, item)
		assert.True(t, item.Sold)
	})

	t.Run("canonicalizes the token id", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetLatestItemByTokenID(gomock.Any(), "7").Return(availableItem(), nil)

		_, found, err := tm.ledger.GetLatestItemByTokenID(context.Background(), "007")
		assert.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("token never listed", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetLatestItemByTokenID(gomock.Any(), "9").Return(nil, nil)

		item, found, err := tm.ledger.GetLatestItemByTokenID(context.Background(), "9")
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, item)
	})

	t.Run("rejects a malformed token id", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		_, _, err := tm.ledger.GetLatestItemByTokenID(context.Background(), "seven")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.Contains(t, err.Error(), "invalid token id")
	})
}

func TestLedger_GetAvailableItems(t *testing.T) {
	tm := setupTestLedger(t)
	defer tearDownTestLedger(tm)

	second := availableItem()
	second.ID = 2
	second.TokenID = "8"

	tm.store.EXPECT().GetAvailableItems(gomock.Any()).
		Return([]*schema.MarketItem{availableItem(), second}, nil)

	items, err := tm.ledger.GetAvailableItems(context.Background())
	assert.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(1), items[0].ID)
	assert.Equal(t, uint64(2), items[1].ID)
	assert.True(t, items[0].Available())
	assert.True(t, items[1].Available())
}

func TestLedger_GetItemsByRole(t *testing.T) {
	t.Run("by seller", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetItemsBySeller(gomock.Any(), testSeller).
			Return([]*schema.MarketItem{availableItem()}, nil)

		items, err := tm.ledger.GetItemsByRole(context.Background(), testSeller, domain.RoleSeller)
		assert.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("by owner", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetItemsByOwner(gomock.Any(), testBuyer).
			Return([]*schema.MarketItem{soldItem()}, nil)

		items, err := tm.ledger.GetItemsByRole(context.Background(), testBuyer, domain.RoleOwner)
		assert.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, testBuyer, items[0].Owner)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		_, err := tm.ledger.GetItemsByRole(context.Background(), testSeller, domain.Role("curator"))
		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})

	t.Run("rejects an invalid account", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		_, err := tm.ledger.GetItemsByRole(context.Background(), "nobody", domain.RoleSeller)
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})
}

func TestLedger_GetStats(t *testing.T) {
	tm := setupTestLedger(t)
	defer tearDownTestLedger(tm)

	tm.store.EXPECT().GetMarketCounts(gomock.Any()).Return(&store.MarketCounts{
		TotalCreated:  10,
		TotalSold:     4,
		TotalCanceled: 3,
	}, nil)

	stats, err := tm.ledger.GetStats(context.Background())
	assert.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, uint64(10), stats.TotalCreated)
	assert.Equal(t, uint64(4), stats.TotalSold)
	assert.Equal(t, uint64(3), stats.TotalCanceled)
	assert.Equal(t, uint64(3), stats.Available)
}

func TestLedger_ListingFee(t *testing.T) {
	t.Run("returns the stored fee", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetListingFee(gomock.Any()).Return("25", nil)

		fee, err := tm.ledger.GetListingFee(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "25", fee)
	})

	t.Run("falls back to the configured default", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetListingFee(gomock.Any()).Return("", nil)

		fee, err := tm.ledger.GetListingFee(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "5", fee)
	})

	t.Run("updates the fee in canonical form", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().SetListingFee(gomock.Any(), "30").Return(nil)

		err := tm.ledger.UpdateListingFee(context.Background(), "0030")
		assert.NoError(t, err)
	})

	t.Run("rejects a malformed fee", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		err := tm.ledger.UpdateListingFee(context.Background(), "-1")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

func TestLedger_GetFundBalance(t *testing.T) {
	t.Run("returns the balance", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetFundBalance(gomock.Any(), testSeller).Return("95", nil)

		balance, err := tm.ledger.GetFundBalance(context.Background(), testSeller)
		assert.NoError(t, err)
		assert.Equal(t, "95", balance)
	})

	t.Run("rejects an invalid account", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		_, err := tm.ledger.GetFundBalance(context.Background(), "nobody")
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})
}
