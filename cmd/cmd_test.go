package cmd

import (
	"context"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hcommon "github.com/tranvictor/humanizer/common"
	"github.com/tranvictor/humanizer/config"
	"github.com/tranvictor/humanizer/humanizer"
	"github.com/tranvictor/humanizer/networks"
	"github.com/tranvictor/humanizer/txanalyzer"
	"github.com/tranvictor/humanizer/ui"
	"github.com/tranvictor/humanizer/util/addrbook"
	"github.com/tranvictor/humanizer/util/cache"
	"github.com/tranvictor/humanizer/util/logger"
)

var (
	testAccount  = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	testReceiver = common.HexToAddress("0x000000000000000000000000000000000000cafe")
	testUSDC     = common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
)

type staticSignatures map[string]string

func (s staticSignatures) LookupSelector(_ context.Context, selector string) (string, error) {
	sig, found := s[selector]
	if !found {
		return "", humanizer.ErrNotFound
	}
	return sig, nil
}

func offlineAnalyzer(t *testing.T) *txanalyzer.Analyzer {
	t.Helper()
	lggr := logger.Test(t)
	resolver := txanalyzer.NewResolver(nil, nil, txanalyzer.WithRetryDelay(0), txanalyzer.WithResolverLogger(lggr))
	return txanalyzer.NewAnalyzer(resolver, cache.NewMemoryStorage(), txanalyzer.WithLogger(lggr))
}

func transferData(to common.Address, amount *big.Int) []byte {
	data := common.FromHex(hcommon.SignatureSelector("transfer(address,uint256)"))
	data = append(data, common.LeftPadBytes(to.Bytes(), 32)...)
	return append(data, common.LeftPadBytes(amount.Bytes(), 32)...)
}

func setFlags(t *testing.T, to, value, data string) {
	t.Helper()
	prevTo, prevValue, prevData, prevChain, prevAccount := config.To, config.Value, config.Data, config.ChainID, config.Account
	t.Cleanup(func() {
		config.To, config.Value, config.Data, config.ChainID, config.Account = prevTo, prevValue, prevData, prevChain, prevAccount
	})
	config.To, config.Value, config.Data, config.ChainID, config.Account = to, value, data, 1, testAccount.Hex()
}

func TestOpFromFlags(t *testing.T) {
	setFlags(t, testReceiver.Hex(), "0.5", "")
	op, err := opFromFlags(nil)
	require.NoError(t, err)
	require.Len(t, op.Calls, 1)
	assert.Equal(t, testReceiver, op.Calls[0].To)
	assert.Equal(t, "500000000000000000", op.Calls[0].Value.String())
	assert.Empty(t, op.Calls[0].Data)
	assert.Equal(t, testAccount, op.Account)

	setFlags(t, testUSDC.Hex(), "", "a9059cbb")
	op, err = opFromFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, hexutil.Bytes{0xa9, 0x05, 0x9c, 0xbb}, op.Calls[0].Data)
	assert.Nil(t, op.Calls[0].Value)
}

func TestOpFromFlagsRejectsBadInput(t *testing.T) {
	setFlags(t, "not an address", "", "")
	_, err := opFromFlags(nil)
	require.Error(t, err)

	setFlags(t, testReceiver.Hex(), "1.5.5", "")
	_, err = opFromFlags(nil)
	require.Error(t, err)

	setFlags(t, testReceiver.Hex(), "", "0xzz")
	_, err = opFromFlags(nil)
	require.Error(t, err)

	setFlags(t, testReceiver.Hex(), "", "")
	config.Account = "nobody"
	_, err = opFromFlags(addrbook.Map{strings.ToLower(testReceiver.Hex()): "Treasury"})
	require.Error(t, err)
}

func TestOpFromFlagsResolvesNames(t *testing.T) {
	book := addrbook.Map{
		strings.ToLower(testReceiver.Hex()): "Team Treasury",
		strings.ToLower(testAccount.Hex()):  "Multisig",
	}
	setFlags(t, "Treasury", "", "")
	config.Account = "Multisig"
	op, err := opFromFlags(book)
	require.NoError(t, err)
	assert.Equal(t, testReceiver, op.Calls[0].To)
	assert.Equal(t, testAccount, op.Account)
}

func TestReadOpFile(t *testing.T) {
	op, err := readOpFile(strings.NewReader(`{
		"account": "0x00000000000000000000000000000000000a11ce",
		"chainId": 10,
		"calls": [
			{"to": "0x000000000000000000000000000000000000cafe", "value": "1000"},
			{"to": "0x000000000000000000000000000000000000cafe", "value": "0x10", "data": "0xa9059cbb"}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, uint64(10), op.ChainID)
	assert.Equal(t, testAccount, op.Account)
	require.Len(t, op.Calls, 2)
	assert.Equal(t, "1000", op.Calls[0].Value.String())
	assert.Equal(t, "16", op.Calls[1].Value.String())
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, []byte(op.Calls[1].Data))

	_, err = readOpFile(strings.NewReader(`{"calls": []}`))
	require.Error(t, err)

	_, err = readOpFile(strings.NewReader(`{`))
	require.Error(t, err)
}

func TestHumanizePrintsTable(t *testing.T) {
	u := ui.NewRecordingUI()
	a := offlineAnalyzer(t)
	op := humanizer.AccountOp{
		Account: testAccount,
		ChainID: 1,
		Calls: []humanizer.Call{
			{To: testReceiver, Value: big.NewInt(1_000_000_000_000_000_000)},
			{To: testUSDC, Data: transferData(testReceiver, big.NewInt(1_500_000))},
		},
	}
	require.NoError(t, humanize(context.Background(), u, a, a.LoadMetadata(), op, false))

	assert.Equal(t, []string{"Operation on mainnet"}, u.Messages("Section"))
	assert.True(t, u.HasMessage("Calls:: 2"))
	require.Len(t, u.Tables(), 1)
	groups := u.Tables()[0]
	require.Len(t, groups, 2)
	assert.Equal(t, "Send 1 ETH to "+testReceiver.Hex(), groups[0][0][1])
	assert.Equal(t, "Send 1.5 USDC to "+testReceiver.Hex(), groups[1][0][1])
	assert.NotEmpty(t, u.Messages("Spinner"))
}

func TestHumanizeUnknownSelectorWarns(t *testing.T) {
	u := ui.NewRecordingUI()
	a := offlineAnalyzer(t)
	op := humanizer.AccountOp{
		Account: testAccount,
		ChainID: 1,
		Calls:   []humanizer.Call{{To: testReceiver, Data: common.FromHex("0xdeadbeef")}},
	}
	require.NoError(t, humanize(context.Background(), u, a, a.LoadMetadata(), op, false))
	assert.True(t, u.HasMessage("! | Unknown function selector 0xdeadbeef"))
}

func TestHumanizeJSON(t *testing.T) {
	u := ui.NewRecordingUI()
	a := offlineAnalyzer(t)
	op := humanizer.AccountOp{
		ID:      "op-1",
		Account: testAccount,
		ChainID: 1,
		Calls:   []humanizer.Call{{To: testReceiver, Value: big.NewInt(1_000_000_000_000_000_000)}},
	}
	require.NoError(t, humanize(context.Background(), u, a, a.LoadMetadata(), op, true))
	assert.Empty(t, u.Messages("Spinner"))

	var res jsonResult
	require.NoError(t, json.Unmarshal([]byte(u.Output()), &res))
	assert.Equal(t, "op-1", res.OpID)
	assert.Equal(t, uint64(1), res.ChainID)
	require.Len(t, res.Calls, 1)
	assert.Equal(t, "Send 1 ETH to "+testReceiver.Hex(), res.Calls[0].Text)
	assert.NotEmpty(t, res.Calls[0].FullVisualization)
	assert.Empty(t, res.Calls[0].Warnings)
}

func TestHumanizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := offlineAnalyzer(t)
	op := humanizer.AccountOp{
		Account: testAccount,
		ChainID: 1,
		Calls:   []humanizer.Call{{To: testReceiver, Data: common.FromHex("0xdeadbeef")}},
	}
	err := humanize(ctx, ui.NewRecordingUI(), a, a.LoadMetadata(), op, false)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWithAddressBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"`+testReceiver.Hex()+`": "Treasury"}`), 0o644))

	meta, err := humanizer.BaselineMetadata()
	require.NoError(t, err)
	assert.Equal(t, "Treasury", withAddressBook(meta, loadAddressBook(path)).Name(testReceiver))
	assert.Nil(t, loadAddressBook(filepath.Join(t.TempDir(), "missing.json")))
	assert.Same(t, meta, withAddressBook(meta, loadAddressBook("")))
}

func TestDescribeSelector(t *testing.T) {
	meta, err := humanizer.BaselineMetadata()
	require.NoError(t, err)
	sigs := staticSignatures{"0x12345678": "doSomething(uint256)"}

	u := ui.NewRecordingUI()
	require.NoError(t, describeSelector(context.Background(), u, meta, sigs, "transfer(address,uint256)"))
	assert.Equal(t, []string{
		"Signature:: transfer(address,uint256)",
		"Selector:: 0xa9059cbb",
	}, u.Messages("KeyValue"))

	u = ui.NewRecordingUI()
	require.NoError(t, describeSelector(context.Background(), u, meta, sigs, hcommon.SignatureSelector("multicall(bytes[])")))
	assert.True(t, u.HasMessage("Signature:: multicall(bytes[])"))
	assert.True(t, u.HasMessage("Source:: built-in"))

	u = ui.NewRecordingUI()
	require.NoError(t, describeSelector(context.Background(), u, meta, sigs, "0x12345678"))
	assert.True(t, u.HasMessage("Signature:: doSomething(uint256)"))
	assert.True(t, u.HasMessage("Source:: signature directory"))

	err = describeSelector(context.Background(), ui.NewRecordingUI(), meta, sigs, "0xdeadbeef")
	require.ErrorIs(t, err, humanizer.ErrNotFound)

	err = describeSelector(context.Background(), ui.NewRecordingUI(), meta, sigs, "not a signature")
	require.Error(t, err)
}

func TestAddNetwork(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "networks")
	n, err := readNetworkConfig(`{"name": "testnet-cmd", "chain_id": 777001, "native_token_symbol": "TST", "native_token_decimal": 18}`)
	require.NoError(t, err)

	u := ui.NewRecordingUI()
	require.NoError(t, addNetwork(u, dir, n, false))
	assert.FileExists(t, filepath.Join(dir, "testnet-cmd.json"))

	got, err := networks.GetNetworkByID(777001)
	require.NoError(t, err)
	assert.Equal(t, "TST", got.GetNativeTokenSymbol())

	// the saved file loads back as the same network
	loaded, skipped, err := networks.LoadCustomNetworks(dir)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, loaded, 1)
	assert.Equal(t, "testnet-cmd", loaded[0].GetName())

	require.Error(t, addNetwork(u, dir, n, false))
	require.NoError(t, addNetwork(u, dir, n, true))
	assert.True(t, u.HasMessage("already exists"))
}

func TestReadNetworkConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "filenet", "chain_id": 777002}`), 0o644))
	n, err := readNetworkConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(777002), n.GetChainID())
	assert.Equal(t, "ETH", n.GetNativeTokenSymbol())

	_, err = readNetworkConfig("")
	require.Error(t, err)
	_, err = readNetworkConfig(`{"name": ""}`)
	require.Error(t, err)
}

func TestListNetworks(t *testing.T) {
	u := ui.NewRecordingUI()
	listNetworks(u)
	require.Len(t, u.Tables(), 1)
	assert.Equal(t, "1", u.Tables()[0][0][0][0])
	assert.Equal(t, "mainnet", u.Tables()[0][0][0][1])
}

func TestSearchSignatures(t *testing.T) {
	meta, err := humanizer.BaselineMetadata()
	require.NoError(t, err)

	u := ui.NewRecordingUI()
	require.NoError(t, searchSignatures(u, meta, "transferOwnership", 3))
	assert.True(t, u.HasMessage("0xf2fde38b | transferOwnership(address)"))

	u = ui.NewRecordingUI()
	require.NoError(t, searchSignatures(u, meta, "zzzz", 3))
	assert.Equal(t, []string{`No known signature matches "zzzz".`}, u.Messages("Warn"))
}
