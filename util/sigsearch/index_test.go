package sigsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signatures(hits []Hit) []string {
	res := []string{}
	for _, h := range hits {
		res = append(res, h.Signature)
	}
	return res
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New([]string{
		"transfer(address,uint256)",
		"transferFrom(address,address,uint256)",
		"swapExactTokensForTokens(uint256,uint256,address[],address,uint256)",
		"swapExactETHForTokens(uint256,address[],address,uint256)",
		"approve(address,uint256)",
		"not a signature",
		"transfer(address,uint256)",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestNewSkipsInvalidAndDuplicates(t *testing.T) {
	assert.Equal(t, 5, newTestIndex(t).Len())
}

func TestSearch(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Search("approve", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, Hit{Selector: "0x095ea7b3", Signature: "approve(address,uint256)", Score: hits[0].Score}, hits[0])

	hits, err = idx.Search("swap exact", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"swapExactTokensForTokens(uint256,uint256,address[],address,uint256)",
		"swapExactETHForTokens(uint256,address[],address,uint256)",
	}, signatures(hits))

	hits, err = idx.Search("transfer", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"transfer(address,uint256)", "transferFrom(address,address,uint256)"}, signatures(hits))

	hits, err = idx.Search("swapExact", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = idx.Search("liquidate", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	_, err = idx.Search("  ", 10)
	require.Error(t, err)
}

func TestSplitName(t *testing.T) {
	tests := map[string][]string{
		"safeTransferFrom":      {"safe", "transfer", "from"},
		"getERC20Token":         {"get", "erc20", "token"},
		"WETH":                  {"weth"},
		"exact_input_single":    {"exact", "input", "single"},
		"swapExactETHForTokens": {"swap", "exact", "eth", "for", "tokens"},
		"":                      {},
	}
	for in, want := range tests {
		assert.Equal(t, want, SplitName(in), in)
	}
}
