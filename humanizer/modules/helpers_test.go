package modules

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	hcommon "github.com/tranvictor/humanizer/common"
	"github.com/tranvictor/humanizer/humanizer"
	"github.com/tranvictor/humanizer/humanizer/parsers"
)

var (
	now = time.Unix(1_700_000_000, 0)

	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	other = common.HexToAddress("0x000000000000000000000000000000000000cafe")

	weth       = common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
	usdc       = common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	dai        = common.HexToAddress("0x6b175474e89094c44da98b954eedeac495271d0f")
	v2Router   = common.HexToAddress("0x7a250d5630b4cf539739df2c5dacb4c659f2488d")
	v3Router2  = common.HexToAddress("0x68b3465833fb72a70ecdf485e0e4c7bd8665fc45")
	lido       = common.HexToAddress("0xae7ab96520de3a18e5e111b5eaab095312d7fe84")
	wstETH     = common.HexToAddress("0x7f39c581f595b53c5cb19bd0b3f8da6c935e2ca0")
	aavePool   = common.HexToAddress("0x87870bca3f3fd6335c3f4ce8392d69350b4fa4e2")
	spokePool  = common.HexToAddress("0x5c7bcd6e7de5423a257d81b442095a1a6ced35c5")
	permit2    = common.HexToAddress("0x000000000022d473030f116ddee9f6b43ac78ba3")
	gasTank    = common.HexToAddress("0x942f9ce5d9a33a82f88d233aeb3292e680230348")
	ensNft     = common.HexToAddress("0x57f1887a8bf19b14fc0df6fd9b2acc9af147ea85")
	savingsDAI = common.HexToAddress("0x83f20f44975d03b1b09e64809b757c47f942beea")
)

func ether(t *testing.T, amount string) *big.Int {
	t.Helper()
	v, err := hcommon.FloatStringToBig(amount, 18)
	require.NoError(t, err)
	return v
}

func units(n int64, decimals int) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
}

func inMinutes(m int64) *big.Int {
	return big.NewInt(now.Unix() + m*60)
}

func pack(t *testing.T, m abi.Method, args ...any) []byte {
	t.Helper()
	encoded, err := m.Inputs.Pack(args...)
	require.NoError(t, err)
	return append(append([]byte{}, m.ID...), encoded...)
}

func baseline(t *testing.T) *humanizer.Metadata {
	t.Helper()
	meta, err := humanizer.BaselineMetadata()
	require.NoError(t, err)
	return meta
}

func opOf(calls ...humanizer.Call) humanizer.AccountOp {
	return humanizer.AccountOp{ID: "test", Account: alice, ChainID: 1, Calls: calls}
}

// describe runs the modules and parsers over op and renders every call.
func describe(t *testing.T, op humanizer.AccountOp) []string {
	t.Helper()
	meta := baseline(t)
	ir, _ := humanizer.RunModules(Default(), op, humanizer.NewIR(op), meta)
	ir, _ = humanizer.RunParsers(parsers.Default(), op, ir, meta, now)
	return humanizer.RenderIR(ir)
}

func describeOne(t *testing.T, c humanizer.Call) string {
	t.Helper()
	texts := describe(t, opOf(c))
	require.Len(t, texts, 1)
	return texts[0]
}
