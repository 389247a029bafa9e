package humanizer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Call is a single on-chain message.
type Call struct {
	To    common.Address `json:"to"`
	Value *big.Int       `json:"value"`
	Data  hexutil.Bytes  `json:"data"`
}

// ValueOrZero never returns nil.
func (c Call) ValueOrZero() *big.Int {
	if c.Value == nil {
		return big.NewInt(0)
	}
	return c.Value
}

// AccountOp is the batch of calls an account is asked to approve atomically.
// ID identifies one humanization run; a newer run for the same account
// supersedes older ones.
type AccountOp struct {
	ID      string         `json:"id"`
	Account common.Address `json:"account"`
	ChainID uint64         `json:"chainId"`
	Calls   []Call         `json:"calls"`
}

type WarningLevel string

const (
	WarningCaution WarningLevel = "caution"
	WarningAlert   WarningLevel = "alert"
)

type Warning struct {
	Content string       `json:"content"`
	Level   WarningLevel `json:"level"`
}

// IrCall is a Call plus its decode state. A nil FullVisualization means no
// module has recognized the call yet.
type IrCall struct {
	Call
	FullVisualization []Visualization `json:"fullVisualization"`
	Warnings          []Warning       `json:"warnings"`
}

// NewIR builds one undecoded IrCall per call of op, in order.
func NewIR(op AccountOp) []IrCall {
	res := make([]IrCall, len(op.Calls))
	for i, c := range op.Calls {
		res[i] = IrCall{Call: c}
	}
	return res
}

// WithVisualization returns a copy of c carrying vis. An empty vis leaves
// the call unrecognized.
func (c IrCall) WithVisualization(vis ...Visualization) IrCall {
	if len(vis) == 0 {
		return c
	}
	c.FullVisualization = vis
	return c
}

// WithWarning returns a copy of c with w appended unless an identical
// warning is already present.
func (c IrCall) WithWarning(w Warning) IrCall {
	for _, existing := range c.Warnings {
		if existing == w {
			return c
		}
	}
	ws := make([]Warning, 0, len(c.Warnings)+1)
	ws = append(ws, c.Warnings...)
	c.Warnings = append(ws, w)
	return c
}

// Clone returns a deep copy of the decode state. Call data is shared since
// nothing in the pipeline writes to it.
func (c IrCall) Clone() IrCall {
	c.FullVisualization = CloneVisualizations(c.FullVisualization)
	if c.Warnings != nil {
		c.Warnings = append([]Warning(nil), c.Warnings...)
	}
	return c
}

// CloneIR deep copies every call of ir.
func CloneIR(ir []IrCall) []IrCall {
	res := make([]IrCall, len(ir))
	for i, c := range ir {
		res[i] = c.Clone()
	}
	return res
}
