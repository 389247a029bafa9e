package txanalyzer

import (
	"context"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/humanizer/humanizer"
	"github.com/tranvictor/humanizer/util/reader"
)

func TestResolverDedupsRequests(t *testing.T) {
	sigs := &fakeSignatures{sigs: map[string]string{"0xd96a094a": "buy(uint256)"}}
	r := NewResolver(sigs, nil, WithRetryDelay(0), WithConcurrency(2))

	frags, err := r.Resolve(context.Background(), []humanizer.FragmentRequest{
		humanizer.SelectorRequest("0xd96a094a"),
		humanizer.SelectorRequest("0xD96A094A"),
		humanizer.SelectorRequest("0xd96a094a"),
	})
	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Equal(t, humanizer.Fragment{
		Key:   humanizer.SelectorKey("0xd96a094a"),
		Scope: humanizer.ScopeGlobal,
		Value: humanizer.SignatureText("buy(uint256)"),
	}, frags[0])
	assert.Equal(t, 1, sigs.callCount("0xd96a094a"))
}

func TestResolverMixedKinds(t *testing.T) {
	tokens := fakeTokens{fooToken: {Symbol: "FOO", Decimals: 9}}
	r := NewResolver(&fakeSignatures{}, tokens, WithRetryDelay(0))

	frags, err := r.Resolve(context.Background(), []humanizer.FragmentRequest{
		humanizer.TokenRequest(1, fooToken),
		humanizer.SelectorRequest("0x12345678"),
	})
	require.NoError(t, err)
	require.Len(t, frags, 2)

	assert.Equal(t, humanizer.ScopeGlobal, frags[0].Scope)
	assert.Equal(t, humanizer.TokenInfo{Symbol: "FOO", Decimals: 9}, frags[0].Value)

	assert.Equal(t, humanizer.ScopeLocal, frags[1].Scope)
	assert.IsType(t, humanizer.Unresolved{}, frags[1].Value)
}

func TestResolverWithoutLookups(t *testing.T) {
	r := NewResolver(nil, nil)
	frags, err := r.Resolve(context.Background(), []humanizer.FragmentRequest{
		humanizer.SelectorRequest("0x12345678"),
		humanizer.TokenRequest(1, fooToken),
	})
	require.NoError(t, err)
	for _, f := range frags {
		assert.Equal(t, humanizer.ScopeLocal, f.Scope)
	}
}

type noRPCTokens struct{ calls int }

func (n *noRPCTokens) LookupToken(context.Context, uint64, common.Address) (humanizer.TokenInfo, error) {
	n.calls++
	return humanizer.TokenInfo{}, fmt.Errorf("chain 5: %w", reader.ErrNoRPC)
}

func TestResolverDoesNotRetryMissingRPC(t *testing.T) {
	tokens := &noRPCTokens{}
	r := NewResolver(nil, tokens, WithRetryDelay(0))
	frags, err := r.Resolve(context.Background(), []humanizer.FragmentRequest{humanizer.TokenRequest(5, fooToken)})
	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Equal(t, humanizer.ScopeLocal, frags[0].Scope)
	assert.Equal(t, 1, tokens.calls)
}
