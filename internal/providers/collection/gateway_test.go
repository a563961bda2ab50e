package collection_test

import (
	"context"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace-v2/internal/mocks"
	"github.com/feral-file/ff-marketplace-v2/internal/providers/collection"
)

// Well-known development key, never used on a real network.
const testEscrowKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const testContract = "0x1111111111111111111111111111111111111111"

func newTestGateway(t *testing.T, client *mocks.MockEthClient, clock *mocks.MockClock) collection.CollectionGateway {
	t.Helper()

	gateway, err := collection.NewGateway(client, clock, testEscrowKeyHex)
	require.NoError(t, err)
	return gateway
}

func encodeAddress(addr string) []byte {
	return common.LeftPadBytes(common.HexToAddress(addr).Bytes(), 32)
}

func encodeBool(v bool) []byte {
	word := make([]byte, 32)
	if v {
		word[31] = 1
	}
	return word
}

func TestNewGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("derives escrow address from key", func(t *testing.T) {
		gateway, err := collection.NewGateway(mocks.NewMockEthClient(ctrl), mocks.NewMockClock(ctrl), testEscrowKeyHex)
		require.NoError(t, err)

		key, err := crypto.HexToECDSA(testEscrowKeyHex)
		require.NoError(t, err)
		expected := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())
		assert.Equal(t, expected, gateway.EscrowAddress())
	})

	t.Run("accepts 0x prefixed key", func(t *testing.T) {
		gateway, err := collection.NewGateway(mocks.NewMockEthClient(ctrl), mocks.NewMockClock(ctrl), "0x"+testEscrowKeyHex)
		require.NoError(t, err)
		assert.NotEmpty(t, gateway.EscrowAddress())
	})

	t.Run("rejects malformed key", func(t *testing.T) {
		_, err := collection.NewGateway(mocks.NewMockEthClient(ctrl), mocks.NewMockClock(ctrl), "not-a-key")
		assert.ErrorContains(t, err, "invalid escrow private key")
	})
}

func TestGateway_OwnerOf(t *testing.T) {
	holder := "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

	tests := []struct {
		name        string
		tokenNumber string
		setupMocks  func(*mocks.MockEthClient)
		expected    string
		expectedErr string
	}{
		{
			name:        "returns current holder",
			tokenNumber: "7",
			setupMocks: func(client *mocks.MockEthClient) {
				client.
					EXPECT().
					CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(encodeAddress(holder), nil)
			},
			expected: common.HexToAddress(holder).Hex(),
		},
		{
			name:        "rejects non numeric token",
			tokenNumber: "seven",
			expectedErr: "invalid token number: seven",
		},
		{
			name:        "propagates call failure",
			tokenNumber: "7",
			setupMocks: func(client *mocks.MockEthClient) {
				client.
					EXPECT().
					CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(nil, assert.AnError)
			},
			expectedErr: "failed to call contract",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mocks.NewMockEthClient(ctrl)
			if tt.setupMocks != nil {
				tt.setupMocks(client)
			}

			gateway := newTestGateway(t, client, mocks.NewMockClock(ctrl))
			owner, err := gateway.OwnerOf(context.Background(), testContract, tt.tokenNumber)

			if tt.expectedErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.Empty(t, owner)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, owner)
			}
		})
	}
}

func TestGateway_CreatorOf(t *testing.T) {
	creator := "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"

	t.Run("returns creator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockEthClient(ctrl)
		client.
			EXPECT().
			CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
			Return(encodeAddress(creator), nil)

		gateway := newTestGateway(t, client, mocks.NewMockClock(ctrl))
		got, err := gateway.CreatorOf(context.Background(), testContract, "42")
		assert.NoError(t, err)
		assert.Equal(t, common.HexToAddress(creator).Hex(), got)
	})

	t.Run("propagates call failure for contracts without the extension", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockEthClient(ctrl)
		client.
			EXPECT().
			CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
			Return(nil, assert.AnError)

		gateway := newTestGateway(t, client, mocks.NewMockClock(ctrl))
		_, err := gateway.CreatorOf(context.Background(), testContract, "42")
		assert.ErrorContains(t, err, "failed to call contract")
	})
}

func TestGateway_IsApprovedForAll(t *testing.T) {
	owner := "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	operator := "0x90F79bf6EB2c4f870365E785982E1f101E93b906"

	tests := []struct {
		name     string
		encoded  []byte
		expected bool
	}{
		{name: "approved", encoded: encodeBool(true), expected: true},
		{name: "not approved", encoded: encodeBool(false), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mocks.NewMockEthClient(ctrl)
			client.
				EXPECT().
				CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
				Return(tt.encoded, nil)

			gateway := newTestGateway(t, client, mocks.NewMockClock(ctrl))
			approved, err := gateway.IsApprovedForAll(context.Background(), testContract, owner, operator)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, approved)
		})
	}
}

func TestGateway_TransferFrom(t *testing.T) {
	from := "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	to := "0x90F79bf6EB2c4f870365E785982E1f101E93b906"

	t.Run("signs and submits a transfer from the escrow account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		chainID := big.NewInt(1337)
		client := mocks.NewMockEthClient(ctrl)
		client.EXPECT().PendingNonceAt(gomock.Any(), gomock.Any()).Return(uint64(7), nil)
		client.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(2_000_000_000), nil)
		client.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(90_000), nil)
		client.EXPECT().ChainID(gomock.Any()).Return(chainID, nil)

		var sent *types.Transaction
		client.
			EXPECT().
			SendTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
				sent = tx
				return nil
			})

		gateway := newTestGateway(t, client, mocks.NewMockClock(ctrl))
		txHash, err := gateway.TransferFrom(context.Background(), testContract, from, to, "7")
		require.NoError(t, err)
		require.NotNil(t, sent)

		assert.Equal(t, sent.Hash().Hex(), txHash)
		assert.Equal(t, uint64(7), sent.Nonce())
		assert.Equal(t, uint64(90_000), sent.Gas())
		assert.Equal(t, big.NewInt(2_000_000_000), sent.GasPrice())
		assert.Equal(t, common.HexToAddress(testContract), *sent.To())
		assert.Zero(t, sent.Value().Sign())

		sender, err := types.Sender(types.LatestSignerForChainID(chainID), sent)
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(sender.Hex()), gateway.EscrowAddress())
	})

	t.Run("caches the chain id across transfers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockEthClient(ctrl)
		client.EXPECT().PendingNonceAt(gomock.Any(), gomock.Any()).Return(uint64(0), nil).Times(2)
		client.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1), nil).Times(2)
		client.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(21_000), nil).Times(2)
		client.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(1337), nil).Times(1)
		client.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		gateway := newTestGateway(t, client, mocks.NewMockClock(ctrl))

		_, err := gateway.TransferFrom(context.Background(), testContract, from, to, "1")
		require.NoError(t, err)
		_, err = gateway.TransferFrom(context.Background(), testContract, from, to, "2")
		require.NoError(t, err)
	})

	t.Run("propagates estimate failure without sending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockEthClient(ctrl)
		client.EXPECT().PendingNonceAt(gomock.Any(), gomock.Any()).Return(uint64(0), nil)
		client.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1), nil)
		client.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(0), assert.AnError)

		gateway := newTestGateway(t, client, mocks.NewMockClock(ctrl))
		_, err := gateway.TransferFrom(context.Background(), testContract, from, to, "1")
		assert.ErrorContains(t, err, "failed to estimate gas")
	})
}

func TestGateway_WaitMined(t *testing.T) {
	txHash := common.HexToHash("0xabc123").Hex()
	base := time.Unix(1_700_000_000, 0)

	t.Run("returns once the receipt is successful", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockEthClient(ctrl)
		clock := mocks.NewMockClock(ctrl)
		clock.EXPECT().Now().Return(base)
		client.
			EXPECT().
			TransactionReceipt(gomock.Any(), gomock.Any()).
			Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil)

		gateway := newTestGateway(t, client, clock)
		assert.NoError(t, gateway.WaitMined(context.Background(), txHash))
	})

	t.Run("reports reverted transactions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockEthClient(ctrl)
		clock := mocks.NewMockClock(ctrl)
		clock.EXPECT().Now().Return(base)
		client.
			EXPECT().
			TransactionReceipt(gomock.Any(), gomock.Any()).
			Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil)

		gateway := newTestGateway(t, client, clock)
		assert.ErrorContains(t, gateway.WaitMined(context.Background(), txHash), "reverted")
	})

	t.Run("polls until mined", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		fired := make(chan time.Time, 1)
		fired <- base
		var afterCh <-chan time.Time = fired

		client := mocks.NewMockEthClient(ctrl)
		clock := mocks.NewMockClock(ctrl)
		clock.EXPECT().Now().Return(base).Times(2)
		clock.EXPECT().After(gomock.Any()).Return(afterCh)

		gomock.InOrder(
			client.EXPECT().
				TransactionReceipt(gomock.Any(), gomock.Any()).
				Return(nil, ethereum.NotFound),
			client.EXPECT().
				TransactionReceipt(gomock.Any(), gomock.Any()).
				Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil),
		)

		gateway := newTestGateway(t, client, clock)
		assert.NoError(t, gateway.WaitMined(context.Background(), txHash))
	})

	t.Run("times out when never mined", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockEthClient(ctrl)
		clock := mocks.NewMockClock(ctrl)
		gomock.InOrder(
			clock.EXPECT().Now().Return(base),
			clock.EXPECT().Now().Return(base.Add(3*time.Minute)),
		)
		client.
			EXPECT().
			TransactionReceipt(gomock.Any(), gomock.Any()).
			Return(nil, ethereum.NotFound)

		gateway := newTestGateway(t, client, clock)
		assert.ErrorContains(t, gateway.WaitMined(context.Background(), txHash), "timed out")
	})

	t.Run("propagates receipt lookup failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mocks.NewMockEthClient(ctrl)
		clock := mocks.NewMockClock(ctrl)
		clock.EXPECT().Now().Return(base)
		client.
			EXPECT().
			TransactionReceipt(gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)

		gateway := newTestGateway(t, client, clock)
		assert.ErrorContains(t, gateway.WaitMined(context.Background(), txHash), "failed to get transaction receipt")
	})
}
