package modules

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/tranvictor/humanizer/humanizer"
)

// exactInputSingle params of SwapRouter02
type r2SingleParams struct {
	Name0 common.Address // tokenIn
	Name1 common.Address // tokenOut
	Name2 *big.Int       // fee
	Name3 common.Address // recipient
	Name4 *big.Int       // amountIn or amountOut
	Name5 *big.Int       // amountOutMinimum or amountInMaximum
	Name6 *big.Int       // sqrtPriceLimitX96
}

// exactInput params of SwapRouter
type v3PathParams struct {
	Name0 []byte
	Name1 common.Address
	Name2 *big.Int
	Name3 *big.Int
	Name4 *big.Int
}

func v3Path(tokens ...common.Address) []byte {
	path := []byte{}
	for i, token := range tokens {
		if i > 0 {
			path = append(path, 0x00, 0x01, 0xf4) // 500 fee tier
		}
		path = append(path, token.Bytes()...)
	}
	return path
}

func TestUniswapV2ExactETHForTokens(t *testing.T) {
	data := pack(t, v2Swaps[3].method, units(2000, 6), []common.Address{weth, usdc}, alice, inMinutes(10))
	assert.Equal(t,
		"Swap 1 ETH for at least 2000 USDC expires in 10 minutes",
		describeOne(t, humanizer.Call{To: v2Router, Value: ether(t, "1"), Data: data}),
	)
}

func TestUniswapV2ExactTokensForETHToOtherRecipient(t *testing.T) {
	data := pack(t, v2Swaps[6].method, units(10, 6), ether(t, "0.003"), []common.Address{usdc, weth}, bob, inMinutes(10))
	assert.Equal(t,
		"Swap 10 USDC for at least 0.003 ETH and send it to "+bob.Hex()+" expires in 10 minutes",
		describeOne(t, humanizer.Call{To: v2Router, Data: data}),
	)
}

func TestUniswapV2Deadlines(t *testing.T) {
	far := pack(t, v2Swaps[0].method, units(10, 6), units(9, 18), []common.Address{usdc, dai}, alice, inMinutes(120))
	assert.Equal(t, "Swap 10 USDC for at least 9 DAI", describeOne(t, humanizer.Call{To: v2Router, Data: far}))

	past := pack(t, v2Swaps[0].method, units(10, 6), units(9, 18), []common.Address{usdc, dai}, alice, inMinutes(-1))
	assert.Equal(t, "Swap 10 USDC for at least 9 DAI already expired", describeOne(t, humanizer.Call{To: v2Router, Data: past}))
}

func TestUniswapV2ExactOutput(t *testing.T) {
	data := pack(t, v2Swaps[2].method, units(5, 18), units(6, 6), []common.Address{usdc, weth, dai}, alice, inMinutes(120))
	assert.Equal(t, "Swap up to 6 USDC for 5 DAI", describeOne(t, humanizer.Call{To: v2Router, Data: data}))
}

func TestUniswapV2IgnoresUntaggedRouter(t *testing.T) {
	data := pack(t, v2Swaps[0].method, units(10, 6), units(9, 18), []common.Address{usdc, dai}, alice, inMinutes(10))
	op := opOf(humanizer.Call{To: other, Data: data})
	ir, _ := UniswapV2{}.Humanize(op, humanizer.NewIR(op), baseline(t))
	assert.Nil(t, ir[0].FullVisualization)
}

func TestUniswapV3ExactInput(t *testing.T) {
	data := pack(t, v3ExactInput, v3PathParams{
		Name0: v3Path(usdc, weth, dai),
		Name1: bob,
		Name2: inMinutes(5),
		Name3: units(100, 6),
		Name4: units(99, 18),
	})
	router := common.HexToAddress("0xe592427a0aece92de3edee1f18e0157c05861564")
	assert.Equal(t,
		"Swap 100 USDC for at least 99 DAI and send it to "+bob.Hex()+" expires in 5 minutes",
		describeOne(t, humanizer.Call{To: router, Data: data}),
	)
}

func TestUniswapV3MulticallMergesUnwrap(t *testing.T) {
	swap := pack(t, r2ExactInputSingle, r2SingleParams{
		Name0: usdc,
		Name1: weth,
		Name2: big.NewInt(500),
		Name3: addressThisSentinel,
		Name4: units(10, 6),
		Name5: ether(t, "0.003"),
		Name6: big.NewInt(0),
	})
	unwrap := pack(t, v3UnwrapWETH9, ether(t, "0.003"), bob)
	data := pack(t, v3MulticallDeadline, inMinutes(10), [][]byte{swap, unwrap})

	assert.Equal(t,
		"Swap 10 USDC for at least 0.003 ETH and send it to "+bob.Hex()+" expires in 10 minutes",
		describeOne(t, humanizer.Call{To: v3Router2, Data: data}),
	)
}

func TestUniswapV3MulticallJoinsParts(t *testing.T) {
	swap := pack(t, r2ExactInputSingle, r2SingleParams{
		Name0: weth,
		Name1: usdc,
		Name2: big.NewInt(500),
		Name3: msgSenderSentinel,
		Name4: ether(t, "1"),
		Name5: units(2000, 6),
		Name6: big.NewInt(0),
	})
	refund := pack(t, v3RefundETH)
	sweep := pack(t, v3SweepToken, dai, units(1, 18), bob)
	data := pack(t, v3Multicall, [][]byte{swap, refund, sweep})

	// paying with value turns the wrapped input into the native asset
	assert.Equal(t,
		"Swap 1 ETH for at least 2000 USDC and Sweep at least 1 DAI and send it to "+bob.Hex(),
		describeOne(t, humanizer.Call{To: v3Router2, Value: ether(t, "1"), Data: data}),
	)
}

func TestUniswapV3OpaqueMulticall(t *testing.T) {
	data := pack(t, v3Multicall, [][]byte{common.FromHex("0xdeadbeef"), common.FromHex("0xfeedface")})
	op := opOf(humanizer.Call{To: v3Router2, Data: data})

	ir, reqs := humanizer.RunModules(Default(), op, humanizer.NewIR(op), baseline(t))
	assert.Empty(t, reqs)
	assert.Equal(t, []string{unknownUniswapText}, humanizer.RenderIR(ir))
}

func TestPathEnds(t *testing.T) {
	first, last, ok := pathEnds(v3Path(usdc, weth, dai))
	assert.True(t, ok)
	assert.Equal(t, usdc, first)
	assert.Equal(t, dai, last)

	_, _, ok = pathEnds(usdc.Bytes())
	assert.False(t, ok)
}
