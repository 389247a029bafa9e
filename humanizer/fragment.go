package humanizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrNotFound is returned by lookup collaborators when the service answered
// but knows nothing about the requested item.
var ErrNotFound = errors.New("not found")

// Scope decides whether a fragment outlives the run that resolved it.
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeLocal  Scope = "local"
)

// SignatureText is the resolved text signature of a function selector,
// e.g. "buy(uint256)".
type SignatureText string

// Unresolved records that a lookup was attempted and failed for this run.
type Unresolved struct {
	Reason string
}

// Fragment is one unit of asynchronously discovered knowledge. Value is one
// of SignatureText, TokenInfo or Unresolved.
type Fragment struct {
	Key   string
	Scope Scope
	Value any
}

// FragmentKind names what a FragmentRequest asks for.
type FragmentKind string

const (
	KindSelector FragmentKind = "selector"
	KindToken    FragmentKind = "token"
)

// FragmentRequest is raised by modules and parsers when they need knowledge
// they must not fetch themselves. The orchestrator turns each distinct Key
// into one resolution task.
type FragmentRequest struct {
	Kind     FragmentKind
	Key      string
	Selector string
	ChainID  uint64
	Address  common.Address
}

// SelectorKey is the fragment key of a 0x-prefixed 4 byte selector.
func SelectorKey(selector string) string {
	return "selector:" + strings.ToLower(selector)
}

// TokenKey is the fragment key of a token contract on a chain.
func TokenKey(chainID uint64, addr common.Address) string {
	return fmt.Sprintf("token:%d:%s", chainID, addr.Hex())
}

func SelectorRequest(selector string) FragmentRequest {
	return FragmentRequest{Kind: KindSelector, Key: SelectorKey(selector), Selector: strings.ToLower(selector)}
}

func TokenRequest(chainID uint64, addr common.Address) FragmentRequest {
	return FragmentRequest{Kind: KindToken, Key: TokenKey(chainID, addr), ChainID: chainID, Address: addr}
}

// DedupRequests keeps the first request of every key, preserving order.
func DedupRequests(reqs []FragmentRequest) []FragmentRequest {
	seen := map[string]bool{}
	res := []FragmentRequest{}
	for _, r := range reqs {
		if seen[r.Key] {
			continue
		}
		seen[r.Key] = true
		res = append(res, r)
	}
	return res
}

// SignatureLookup resolves a function selector to its text signature.
// Implementations return ErrNotFound when the selector is unknown.
type SignatureLookup interface {
	LookupSelector(ctx context.Context, selector string) (string, error)
}

// TokenLookup resolves the symbol and decimals of a token contract.
// Implementations return ErrNotFound when the address is not a token.
type TokenLookup interface {
	LookupToken(ctx context.Context, chainID uint64, addr common.Address) (TokenInfo, error)
}
