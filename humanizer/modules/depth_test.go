package modules

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/humanizer/humanizer"
)

func wrapMulticall(t *testing.T, data []byte, times int) []byte {
	t.Helper()
	for i := 0; i < times; i++ {
		data = pack(t, v3Multicall, [][]byte{data})
	}
	return data
}

func TestUniswapV3NestedMulticallIsBounded(t *testing.T) {
	swap := pack(t, r2ExactInputSingle, r2SingleParams{
		Name0: weth,
		Name1: usdc,
		Name2: big.NewInt(500),
		Name3: msgSenderSentinel,
		Name4: ether(t, "1"),
		Name5: units(2000, 6),
		Name6: big.NewInt(0),
	})
	plain := describeOne(t, humanizer.Call{To: v3Router2, Data: swap})
	require.NotEqual(t, unknownUniswapText, plain)

	for n := 1; n < MaxDepth; n++ {
		assert.Equal(t, plain, describeOne(t, humanizer.Call{To: v3Router2, Data: wrapMulticall(t, swap, n)}), n)
	}
	for _, n := range []int{MaxDepth, MaxDepth + 1, 16} {
		var text string
		assert.NotPanics(t, func() {
			text = describeOne(t, humanizer.Call{To: v3Router2, Data: wrapMulticall(t, swap, n)})
		})
		assert.Equal(t, unknownUniswapText, text, n)
	}
}

func TestWalletNestedBatchIsBounded(t *testing.T) {
	transfer := humanizer.Call{To: usdc, Data: pack(t, erc20Transfer, bob, big.NewInt(1_500_000))}
	nest := func(times int) humanizer.Call {
		c := transfer
		for i := 0; i < times; i++ {
			c = humanizer.Call{To: alice, Data: pack(t, walletExecuteBySelf, []batchCall{
				{Name0: c.To, Name1: big.NewInt(0), Name2: c.Data},
			})}
		}
		return c
	}

	assert.Equal(t, "Send 1.5 USDC to "+bob.Hex(), describeOne(t, nest(MaxDepth)))

	var texts []string
	assert.NotPanics(t, func() { texts = describe(t, opOf(nest(MaxDepth+2))) })
	require.Len(t, texts, 1)
	assert.NotEqual(t, "Send 1.5 USDC to "+bob.Hex(), texts[0])
	assert.NotEmpty(t, texts[0])
}

func TestArbitraryCalldataAlwaysRenders(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	prefixes := [][]byte{
		nil,
		acrossDepositV3.ID,
		erc20Transfer.ID,
		v3Multicall.ID,
		v3MulticallDeadline.ID,
		r2ExactInputSingle.ID,
		walletExecuteBySelf.ID,
	}
	targets := []common.Address{other, v3Router2, usdc, alice, spokePool}

	for i := 0; i < 300; i++ {
		data := append([]byte{}, prefixes[i%len(prefixes)]...)
		junk := make([]byte, rng.Intn(200))
		rng.Read(junk)
		data = append(data, junk...)

		c := humanizer.Call{To: targets[i%len(targets)], Data: data}
		if rng.Intn(2) == 0 {
			c.Value = big.NewInt(rng.Int63())
		}
		var texts []string
		require.NotPanics(t, func() { texts = describe(t, opOf(c)) }, "%x", data)
		require.NotEmpty(t, texts)
		for _, text := range texts {
			assert.NotEmpty(t, text, "%x", data)
		}
	}
}
