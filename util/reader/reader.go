// Package reader reads ERC20 metadata from chain rpc nodes.
package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	hcommon "github.com/tranvictor/humanizer/common"
	"github.com/tranvictor/humanizer/humanizer"
	"github.com/tranvictor/humanizer/networks"
)

// ErrNoRPC is returned for chains without a configured rpc node.
var ErrNoRPC = errors.New("no rpc node configured")

// TokenReader resolves token symbol and decimals with eth_call. Nodes come
// from the explicit rpc map first, then from the network's default nodes.
type TokenReader struct {
	rpcs  map[uint64]string
	mu    sync.Mutex
	nodes map[uint64]*OneNodeReader
}

func NewTokenReader(rpcs map[uint64]string) *TokenReader {
	copied := make(map[uint64]string, len(rpcs))
	for id, url := range rpcs {
		copied[id] = url
	}
	return &TokenReader{
		rpcs:  copied,
		nodes: map[uint64]*OneNodeReader{},
	}
}

func (tr *TokenReader) node(chainID uint64) (*OneNodeReader, error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if n, found := tr.nodes[chainID]; found {
		return n, nil
	}
	name, url := fmt.Sprintf("chain-%d", chainID), tr.rpcs[chainID]
	if url == "" {
		network, err := networks.GetNetworkByID(chainID)
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", chainID, ErrNoRPC)
		}
		for nodeName, nodeURL := range network.GetDefaultNodes() {
			name, url = nodeName, nodeURL
			break
		}
		if url == "" {
			return nil, fmt.Errorf("chain %d: %w", chainID, ErrNoRPC)
		}
	}
	n := NewOneNodeReader(name, url)
	tr.nodes[chainID] = n
	return n, nil
}

// LookupToken reads symbol() and decimals() of addr in parallel.
func (tr *TokenReader) LookupToken(ctx context.Context, chainID uint64, addr common.Address) (humanizer.TokenInfo, error) {
	n, err := tr.node(chainID)
	if err != nil {
		return humanizer.TokenInfo{}, err
	}
	erc20 := hcommon.GetERC20ABI()

	var symbol string
	var decimals uint8
	err = hcommon.RunParallel(
		func() error {
			raw, err := n.ReadContractToBytes(ctx, addr, erc20, "symbol")
			if err != nil {
				return fmt.Errorf("symbol: %w", err)
			}
			symbol, err = decodeSymbol(raw)
			return err
		},
		func() error {
			raw, err := n.ReadContractToBytes(ctx, addr, erc20, "decimals")
			if err != nil {
				return fmt.Errorf("decimals: %w", err)
			}
			if len(raw) == 0 {
				return fmt.Errorf("decimals: %w", humanizer.ErrNotFound)
			}
			return erc20.UnpackIntoInterface(&decimals, "decimals", raw)
		},
	)
	if err != nil {
		return humanizer.TokenInfo{}, fmt.Errorf("reading token %s on chain %d: %w", addr.Hex(), chainID, err)
	}
	return humanizer.TokenInfo{Symbol: symbol, Decimals: uint64(decimals)}, nil
}

// decodeSymbol accepts both string and bytes32 encoded symbols.
func decodeSymbol(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", humanizer.ErrNotFound
	}
	if len(raw) == 32 {
		return string(bytes.TrimRight(raw, "\x00")), nil
	}
	var symbol string
	if err := hcommon.GetERC20ABI().UnpackIntoInterface(&symbol, "symbol", raw); err != nil {
		return "", err
	}
	return symbol, nil
}

func (tr *TokenReader) Close() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	for _, n := range tr.nodes {
		n.Close()
	}
}
