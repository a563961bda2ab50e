package collection

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/ff-marketplace-v2/internal/adapter"
)

const (
	receiptPollInterval = 3 * time.Second
	receiptWaitTimeout  = 2 * time.Minute
)

//go:generate mockgen -source=gateway.go -destination=../../mocks/collection_gateway.go -package=mocks -mock_names=CollectionGateway=MockCollectionGateway
type CollectionGateway interface {
	// OwnerOf fetches the current holder of a token from the collection contract
	OwnerOf(ctx context.Context, contractAddress, tokenNumber string) (string, error)

	// CreatorOf fetches the creator of a token via the collection's getCreator extension
	CreatorOf(ctx context.Context, contractAddress, tokenNumber string) (string, error)

	// IsApprovedForAll reports whether operator may move all of owner's tokens
	IsApprovedForAll(ctx context.Context, contractAddress, ownerAddress, operatorAddress string) (bool, error)

	// TransferFrom moves a token between accounts with a transaction signed by
	// the escrow key and returns the transaction hash
	TransferFrom(ctx context.Context, contractAddress, fromAddress, toAddress, tokenNumber string) (string, error)

	// WaitMined blocks until the transaction is mined, returning an error if it
	// reverted or was not mined before the wait timeout
	WaitMined(ctx context.Context, txHash string) error

	// EscrowAddress returns the address derived from the escrow signing key
	EscrowAddress() string

	// Close closes the connection
	Close()
}

type collectionGateway struct {
	client adapter.EthClient
	clock  adapter.Clock

	escrowKey     *ecdsa.PrivateKey
	escrowAddress common.Address

	mu      sync.Mutex
	chainID *big.Int
}

// NewGateway creates a gateway bound to the escrow account derived from
// escrowKeyHex. The chain ID used for transaction signing is fetched from the
// node on first use and cached.
func NewGateway(client adapter.EthClient, clock adapter.Clock, escrowKeyHex string) (CollectionGateway, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(escrowKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid escrow private key: %w", err)
	}

	return &collectionGateway{
		client:        client,
		clock:         clock,
		escrowKey:     key,
		escrowAddress: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// OwnerOf fetches the current holder of a token from the collection contract
func (g *collectionGateway) OwnerOf(ctx context.Context, contractAddress, tokenNumber string) (string, error) {
	// ERC721 ownerOf function signature: ownerOf(uint256) returns (address)
	ownerOfABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	tokenID, ok := new(big.Int).SetString(tokenNumber, 10)
	if !ok {
		return "", fmt.Errorf("invalid token number: %s", tokenNumber)
	}

	data, err := ownerOfABI.Pack("ownerOf", tokenID)
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contractAddress)
	result, err := g.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to call contract: %w", err)
	}

	var owner common.Address
	if err := ownerOfABI.UnpackIntoInterface(&owner, "ownerOf", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}

	return owner.Hex(), nil
}

// CreatorOf fetches the creator of a token via the collection's getCreator extension
func (g *collectionGateway) CreatorOf(ctx context.Context, contractAddress, tokenNumber string) (string, error) {
	// getCreator is the collection's extension, not part of ERC721:
	// getCreator(uint256) returns (address)
	getCreatorABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"getCreator","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	tokenID, ok := new(big.Int).SetString(tokenNumber, 10)
	if !ok {
		return "", fmt.Errorf("invalid token number: %s", tokenNumber)
	}

	data, err := getCreatorABI.Pack("getCreator", tokenID)
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contractAddress)
	result, err := g.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to call contract: %w", err)
	}

	var creator common.Address
	if err := getCreatorABI.UnpackIntoInterface(&creator, "getCreator", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}

	return creator.Hex(), nil
}

// IsApprovedForAll reports whether operator may move all of owner's tokens
func (g *collectionGateway) IsApprovedForAll(ctx context.Context, contractAddress, ownerAddress, operatorAddress string) (bool, error) {
	// ERC721 isApprovedForAll function signature: isApprovedForAll(address,address) returns (bool)
	approvedABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"operator","type":"address"}],"name":"isApprovedForAll","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return false, fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := approvedABI.Pack("isApprovedForAll", common.HexToAddress(ownerAddress), common.HexToAddress(operatorAddress))
	if err != nil {
		return false, fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contractAddress)
	result, err := g.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return false, fmt.Errorf("failed to call contract: %w", err)
	}

	var approved bool
	if err := approvedABI.UnpackIntoInterface(&approved, "isApprovedForAll", result); err != nil {
		return false, fmt.Errorf("failed to unpack result: %w", err)
	}

	return approved, nil
}

// TransferFrom moves a token between accounts with a transaction signed by the
// escrow key and returns the transaction hash
func (g *collectionGateway) TransferFrom(ctx context.Context, contractAddress, fromAddress, toAddress, tokenNumber string) (string, error) {
	// ERC721 transferFrom function signature: transferFrom(address,address,uint256)
	transferABI, err := abi.JSON(strings.NewReader(`[{"constant":false,"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"name":"transferFrom","outputs":[],"payable":false,"stateMutability":"nonpayable","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	tokenID, ok := new(big.Int).SetString(tokenNumber, 10)
	if !ok {
		return "", fmt.Errorf("invalid token number: %s", tokenNumber)
	}

	data, err := transferABI.Pack("transferFrom", common.HexToAddress(fromAddress), common.HexToAddress(toAddress), tokenID)
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contractAddress)

	nonce, err := g.client.PendingNonceAt(ctx, g.escrowAddress)
	if err != nil {
		return "", fmt.Errorf("failed to get pending nonce: %w", err)
	}

	gasPrice, err := g.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := g.client.EstimateGas(ctx, ethereum.CallMsg{
		From: g.escrowAddress,
		To:   &contractAddr,
		Data: data,
	})
	if err != nil {
		return "", fmt.Errorf("failed to estimate gas: %w", err)
	}

	chainID, err := g.networkID(ctx)
	if err != nil {
		return "", err
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &contractAddr,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), g.escrowKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := g.client.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx.Hash().Hex(), nil
}

// WaitMined blocks until the transaction is mined, returning an error if it
// reverted or was not mined before the wait timeout
func (g *collectionGateway) WaitMined(ctx context.Context, txHash string) error {
	hash := common.HexToHash(txHash)
	deadline := g.clock.Now().Add(receiptWaitTimeout)

	for {
		receipt, err := g.client.TransactionReceipt(ctx, hash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return fmt.Errorf("transaction %s reverted", txHash)
			}
			return nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return fmt.Errorf("failed to get transaction receipt: %w", err)
		}

		if g.clock.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for transaction %s", txHash)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.clock.After(receiptPollInterval):
		}
	}
}

// EscrowAddress returns the address derived from the escrow signing key
func (g *collectionGateway) EscrowAddress() string {
	return strings.ToLower(g.escrowAddress.Hex())
}

// Close closes the connection
func (g *collectionGateway) Close() {
	g.client.Close()
}

func (g *collectionGateway) networkID(ctx context.Context) (*big.Int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.chainID != nil {
		return g.chainID, nil
	}

	id, err := g.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	g.chainID = id

	return id, nil
}
