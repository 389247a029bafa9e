package reader

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// OneNodeReader reads contract state from a single rpc node. The connection
// is opened on first use.
type OneNodeReader struct {
	nodeName  string
	nodeURL   string
	client    *rpc.Client
	ethClient *ethclient.Client
	mu        sync.Mutex
}

func NewOneNodeReader(name, url string) *OneNodeReader {
	return &OneNodeReader{
		nodeName: name,
		nodeURL:  url,
	}
}

func (onr *OneNodeReader) NodeName() string {
	return onr.nodeName
}

func (onr *OneNodeReader) NodeURL() string {
	return onr.nodeURL
}

func (onr *OneNodeReader) EthClient(ctx context.Context) (*ethclient.Client, error) {
	onr.mu.Lock()
	defer onr.mu.Unlock()
	if onr.ethClient != nil {
		return onr.ethClient, nil
	}
	client, err := rpc.DialContext(ctx, onr.NodeURL())
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to %s: %w", onr.nodeName, err)
	}
	onr.client = client
	onr.ethClient = ethclient.NewClient(client)
	return onr.ethClient, nil
}

// ReadContractToBytes calls method on caddr at the latest block and returns
// the raw return data.
func (onr *OneNodeReader) ReadContractToBytes(ctx context.Context, caddr common.Address, abi *abi.ABI, method string, args ...any) ([]byte, error) {
	ethcli, err := onr.EthClient(ctx)
	if err != nil {
		return nil, err
	}
	data, err := abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}
	return ethcli.CallContract(ctx, ethereum.CallMsg{
		To:   &caddr,
		Data: data,
	}, nil)
}

func (onr *OneNodeReader) Close() {
	onr.mu.Lock()
	defer onr.mu.Unlock()
	if onr.client != nil {
		onr.client.Close()
		onr.client = nil
		onr.ethClient = nil
	}
}
