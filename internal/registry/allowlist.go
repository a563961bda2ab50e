package registry

import (
	"fmt"
	"strings"

	"github.com/feral-file/ff-marketplace-v2/internal/adapter"
)

// CollectionRegistry defines the interface for collection allowlist checks
//
//go:generate mockgen -source=allowlist.go -destination=../mocks/collection_registry.go -package=mocks -mock_names=CollectionRegistry=MockCollectionRegistry
type CollectionRegistry interface {
	// IsAllowed checks if a collection contract may be listed on the market
	IsAllowed(contractAddress string) bool
}

// AllowlistData represents the structure of the allowlist.json file
type AllowlistData struct {
	Collections []string `json:"collections"`
}

// allowlistRegistry is the internal implementation of CollectionRegistry
type allowlistRegistry struct {
	allowAll bool
	// Fast lookup map: lowercase contract address -> true
	contracts map[string]bool
}

// AllowlistRegistryLoader loads a CollectionRegistry from a JSON file
type AllowlistRegistryLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewAllowlistRegistryLoader creates a loader backed by the given file system
// and JSON adapters
func NewAllowlistRegistryLoader(fs adapter.FileSystem, jsonAdapter adapter.JSON) *AllowlistRegistryLoader {
	return &AllowlistRegistryLoader{fs: fs, json: jsonAdapter}
}

// Load loads the collection allowlist from a JSON file
func (l *AllowlistRegistryLoader) Load(filePath string) (CollectionRegistry, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read allowlist file: %w", err)
	}

	var allowlistData AllowlistData
	if err := l.json.Unmarshal(data, &allowlistData); err != nil {
		return nil, fmt.Errorf("failed to parse allowlist JSON: %w", err)
	}

	// Build lookup map
	reg := &allowlistRegistry{
		contracts: make(map[string]bool),
	}

	for _, addr := range allowlistData.Collections {
		reg.contracts[strings.ToLower(addr)] = true
	}

	return reg, nil
}

// AllowAll returns a registry that accepts every collection contract.
// Markets that do not configure an allowlist file run with it.
func AllowAll() CollectionRegistry {
	return &allowlistRegistry{allowAll: true}
}

// IsAllowed checks if a collection contract may be listed on the market
func (r *allowlistRegistry) IsAllowed(contractAddress string) bool {
	if r == nil || r.allowAll {
		return true
	}
	return r.contracts[strings.ToLower(contractAddress)]
}
