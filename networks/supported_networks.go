package networks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

var (
	EthereumMainnet = NewGenericNetwork(GenericNetworkConfig{
		Name:               "mainnet",
		AlternativeNames:   []string{"ethereum", "eth"},
		ChainID:            1,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		NodeVariableName:   "ETHEREUM_MAINNET_NODE",
		DefaultNodes:       map[string]string{"publicnode": "https://ethereum-rpc.publicnode.com"},
	})
	OptimismMainnet = NewGenericNetwork(GenericNetworkConfig{
		Name:               "optimism",
		AlternativeNames:   []string{"op"},
		ChainID:            10,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		NodeVariableName:   "OPTIMISM_MAINNET_NODE",
		DefaultNodes:       map[string]string{"optimism": "https://mainnet.optimism.io"},
	})
	BSCMainnet = NewGenericNetwork(GenericNetworkConfig{
		Name:               "bsc",
		AlternativeNames:   []string{"bnb"},
		ChainID:            56,
		NativeTokenSymbol:  "BNB",
		NativeTokenDecimal: 18,
		NodeVariableName:   "BSC_MAINNET_NODE",
		DefaultNodes:       map[string]string{"binance": "https://bsc-dataseed.binance.org"},
	})
	Polygon = NewGenericNetwork(GenericNetworkConfig{
		Name:               "polygon",
		AlternativeNames:   []string{"matic"},
		ChainID:            137,
		NativeTokenSymbol:  "POL",
		NativeTokenDecimal: 18,
		NodeVariableName:   "POLYGON_MAINNET_NODE",
		DefaultNodes:       map[string]string{"polygon": "https://polygon-rpc.com"},
	})
	Fantom = NewGenericNetwork(GenericNetworkConfig{
		Name:               "fantom",
		ChainID:            250,
		NativeTokenSymbol:  "FTM",
		NativeTokenDecimal: 18,
		NodeVariableName:   "FANTOM_MAINNET_NODE",
		DefaultNodes:       map[string]string{"fantom": "https://rpcapi.fantom.network"},
	})
	PolygonZkevmMainnet = NewGenericNetwork(GenericNetworkConfig{
		Name:               "polygon-zkevm",
		ChainID:            1101,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		NodeVariableName:   "POLYGON_ZKEVM_MAINNET_NODE",
		DefaultNodes:       map[string]string{"polygon": "https://zkevm-rpc.com"},
	})
	BaseMainnet = NewGenericNetwork(GenericNetworkConfig{
		Name:               "base",
		ChainID:            8453,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		NodeVariableName:   "BASE_MAINNET_NODE",
		DefaultNodes:       map[string]string{"base": "https://mainnet.base.org"},
	})
	ArbitrumMainnet = NewGenericNetwork(GenericNetworkConfig{
		Name:               "arbitrum",
		AlternativeNames:   []string{"arb"},
		ChainID:            42161,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		NodeVariableName:   "ARBITRUM_MAINNET_NODE",
		DefaultNodes:       map[string]string{"arbitrum": "https://arb1.arbitrum.io/rpc"},
	})
	Avalanche = NewGenericNetwork(GenericNetworkConfig{
		Name:               "avalanche",
		AlternativeNames:   []string{"avax"},
		ChainID:            43114,
		NativeTokenSymbol:  "AVAX",
		NativeTokenDecimal: 18,
		NodeVariableName:   "AVALANCHE_MAINNET_NODE",
		DefaultNodes:       map[string]string{"avax": "https://api.avax.network/ext/bc/C/rpc"},
	})
	LineaMainnet = NewGenericNetwork(GenericNetworkConfig{
		Name:               "linea",
		ChainID:            59144,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		NodeVariableName:   "LINEA_MAINNET_NODE",
		DefaultNodes:       map[string]string{"linea": "https://rpc.linea.build"},
	})
	ScrollMainnet = NewGenericNetwork(GenericNetworkConfig{
		Name:               "scroll",
		ChainID:            534352,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		NodeVariableName:   "SCROLL_MAINNET_NODE",
		DefaultNodes:       map[string]string{"scroll": "https://rpc.scroll.io"},
	})
	Sepolia = NewGenericNetwork(GenericNetworkConfig{
		Name:               "sepolia",
		ChainID:            11155111,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		NodeVariableName:   "SEPOLIA_TESTNET_NODE",
		DefaultNodes:       map[string]string{"publicnode": "https://ethereum-sepolia-rpc.publicnode.com"},
	})
)

// Insert more Network implementation here to support
// more chains
var supportedNetworks = []Network{
	EthereumMainnet,
	OptimismMainnet,
	BSCMainnet,
	Polygon,
	Fantom,
	PolygonZkevmMainnet,
	BaseMainnet,
	ArbitrumMainnet,
	Avalanche,
	LineaMainnet,
	ScrollMainnet,
	Sepolia,
}

var (
	globalSupportedNetworks = newSupportedNetworks()
	ErrNetworkNotFound      = errors.New("network not found")
)

type networks struct {
	mu           sync.RWMutex
	networks     map[string]Network
	networksByID map[uint64]Network
}

func newSupportedNetworks() *networks {
	result := &networks{
		networks:     map[string]Network{},
		networksByID: map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if err := result.add(n); err != nil {
			panic(err)
		}
	}
	return result
}

func (n *networks) add(network Network) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, name := range append([]string{network.GetName()}, network.GetAlternativeNames()...) {
		if existing, found := n.networks[name]; found && existing.GetChainID() != network.GetChainID() {
			return fmt.Errorf("network with name or alternative name of '%s' already exists", name)
		}
	}
	if prev, found := n.networksByID[network.GetChainID()]; found {
		delete(n.networks, prev.GetName())
		for _, an := range prev.GetAlternativeNames() {
			delete(n.networks, an)
		}
	}
	n.networksByID[network.GetChainID()] = network
	n.networks[network.GetName()] = network
	for _, an := range network.GetAlternativeNames() {
		n.networks[an] = network
	}
	return nil
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) getNetwork(name string) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networks[name]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

// GetSupportedNetworks returns every known network ordered by chain id.
func GetSupportedNetworks() []Network {
	globalSupportedNetworks.mu.RLock()
	defer globalSupportedNetworks.mu.RUnlock()
	res := make([]Network, 0, len(globalSupportedNetworks.networksByID))
	for _, n := range globalSupportedNetworks.networksByID {
		res = append(res, n)
	}
	slices.SortFunc(res, func(a, b Network) int {
		switch {
		case a.GetChainID() < b.GetChainID():
			return -1
		case a.GetChainID() > b.GetChainID():
			return 1
		}
		return 0
	})
	return res
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

// AddNetwork registers a network, replacing any network with the same
// chain id.
func AddNetwork(network Network) error {
	return globalSupportedNetworks.add(network)
}

// LoadCustomNetworks registers every *.json network config found in dir.
// A missing dir is not an error. Files that fail to parse are returned as
// skipped so the caller can report them.
func LoadCustomNetworks(dir string) (loaded []Network, skipped map[string]error, err error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to glob json files in %s: %w", dir, err)
	}
	skipped = map[string]error{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			skipped[file] = err
			continue
		}
		network, err := NewNetworkFromJSON(content)
		if err != nil {
			skipped[file] = err
			continue
		}
		if err := AddNetwork(network); err != nil {
			skipped[file] = err
			continue
		}
		loaded = append(loaded, network)
	}
	return loaded, skipped, nil
}
