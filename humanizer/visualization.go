// Package humanizer turns account operations into structured, human
// readable descriptions.
//
// Every call of an operation is decoded into a list of Visualization
// elements by an ordered set of CallModules. Elements are enriched by a
// Parser stage and finally rendered to a sentence by RenderText. The
// convergence loop that drives modules, parsers and asynchronous fragment
// resolution lives in the txanalyzer package.
package humanizer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// VisualizationType tags the variant a Visualization element holds.
type VisualizationType string

const (
	TypeAction   VisualizationType = "action"
	TypeLabel    VisualizationType = "label"
	TypeAddress  VisualizationType = "address"
	TypeToken    VisualizationType = "token"
	TypeNft      VisualizationType = "nft"
	TypeImage    VisualizationType = "image"
	TypeChain    VisualizationType = "chain"
	TypeDeadline VisualizationType = "deadline"
	TypeText     VisualizationType = "text"
)

// UnknownActionText is the content of the provisional marker attached to
// calls that no module recognized yet.
const UnknownActionText = "Unknown action"

// TokenInfo is what we know about a fungible token contract.
type TokenInfo struct {
	Symbol   string `json:"symbol"`
	Decimals uint64 `json:"decimals"`
}

// Visualization is one renderable element of a call description.
//
// Value always holds the raw on-chain integer (token amount, nft id, chain
// id or unix deadline). Enrichment only ever fills Token, Name, AmountText
// and IsHidden.
type Visualization struct {
	Type       VisualizationType `json:"type"`
	Content    string            `json:"content,omitempty"`
	Address    *common.Address   `json:"address,omitempty"`
	Value      *big.Int          `json:"value,omitempty"`
	Token      *TokenInfo        `json:"token,omitempty"`
	Name       string            `json:"name,omitempty"`
	AmountText string            `json:"amountText,omitempty"`
	IsHidden   bool              `json:"isHidden,omitempty"`
	IsUnknown  bool              `json:"isUnknown,omitempty"`
}

func Action(content string) Visualization {
	return Visualization{Type: TypeAction, Content: content}
}

func Label(content string) Visualization {
	return Visualization{Type: TypeLabel, Content: content}
}

func Text(content string) Visualization {
	return Visualization{Type: TypeText, Content: content}
}

func Image(url string) Visualization {
	return Visualization{Type: TypeImage, Content: url}
}

// UnknownAction is the provisional marker for calls not yet understood.
// Modules may replace it, they never replace anything else.
func UnknownAction() Visualization {
	return Visualization{Type: TypeAction, Content: UnknownActionText, IsUnknown: true}
}

func Addr(addr common.Address) Visualization {
	return Visualization{Type: TypeAddress, Address: &addr}
}

// AddrHex normalizes a hex string of any casing into an address element.
func AddrHex(hex string) Visualization {
	return Addr(common.HexToAddress(hex))
}

func Token(addr common.Address, amount *big.Int) Visualization {
	return Visualization{Type: TypeToken, Address: &addr, Value: copyBig(amount)}
}

func Nft(collection common.Address, id *big.Int) Visualization {
	return Visualization{Type: TypeNft, Address: &collection, Value: copyBig(id)}
}

func Chain(chainID *big.Int) Visualization {
	return Visualization{Type: TypeChain, Value: copyBig(chainID)}
}

// Deadline takes a unix timestamp in seconds.
func Deadline(unix *big.Int) Visualization {
	return Visualization{Type: TypeDeadline, Value: copyBig(unix)}
}

// IsUnknownVisualization reports whether vis is absent or only holds the
// provisional marker, i.e. whether a module may still claim the call.
func IsUnknownVisualization(vis []Visualization) bool {
	if len(vis) == 0 {
		return true
	}
	for _, v := range vis {
		if v.IsUnknown {
			return true
		}
	}
	return false
}

func (v Visualization) clone() Visualization {
	if v.Address != nil {
		a := *v.Address
		v.Address = &a
	}
	v.Value = copyBig(v.Value)
	if v.Token != nil {
		t := *v.Token
		v.Token = &t
	}
	return v
}

// CloneVisualizations returns a deep copy of vis. A nil input stays nil.
func CloneVisualizations(vis []Visualization) []Visualization {
	if vis == nil {
		return nil
	}
	res := make([]Visualization, len(vis))
	for i, v := range vis {
		res[i] = v.clone()
	}
	return res
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
