// Package modules holds the closed set of call modules and the order they
// run in. Every module is a stateless value; the signature tables they
// decode with are parsed once at init.
package modules

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/humanizer/humanizer"
)

// MaxDepth bounds how deep batches and multicalls are unpacked.
const MaxDepth = 4

// Default returns every module in execution order. Fallback is always last.
func Default() []humanizer.CallModule {
	return withFallback(table(0))
}

// table lists the protocol modules for a given nesting depth.
func table(depth int) []humanizer.CallModule {
	return []humanizer.CallModule{
		Wallet{},
		Privileges{},
		GasTank{},
		Wrapping{},
		UniswapV2{},
		UniswapV3{depth: depth},
		Lido{},
		Aave{},
		Vaults{},
		Bridge{},
		Nft{},
		Permit{},
		Token{},
		ASCII{},
	}
}

func withFallback(mods []humanizer.CallModule) []humanizer.CallModule {
	return append(mods, Fallback{})
}

// humanizeSubCalls runs the protocol modules over calls decoded out of an
// outer call. The fallback is left out so an opaque batch never fans out
// into one signature lookup per sub-call.
func humanizeSubCalls(op humanizer.AccountOp, sub []humanizer.IrCall, meta *humanizer.Metadata, depth int) []humanizer.IrCall {
	out, _ := humanizer.RunModules(table(depth), op, sub, meta)
	return out
}

// humanizeEach calls fn for every call a module may still claim and attaches
// what fn returns. A panic inside fn leaves that call alone.
func humanizeEach(calls []humanizer.IrCall, fn func(c humanizer.IrCall) []humanizer.Visualization) []humanizer.IrCall {
	out := make([]humanizer.IrCall, len(calls))
	for i, c := range calls {
		out[i] = c
		if !humanizer.IsUnknownVisualization(c.FullVisualization) {
			continue
		}
		if vis := safely(fn, c); len(vis) > 0 {
			out[i] = c.WithVisualization(vis...)
		}
	}
	return out
}

func safely(fn func(c humanizer.IrCall) []humanizer.Visualization, c humanizer.IrCall) (vis []humanizer.Visualization) {
	defer func() {
		if r := recover(); r != nil {
			vis = nil
		}
	}()
	return fn(c)
}

// recipientClause describes where the output of an action goes, or nothing
// when it goes back to the account itself.
func recipientClause(op humanizer.AccountOp, recipient common.Address) []humanizer.Visualization {
	if recipient == op.Account || recipient == (common.Address{}) {
		return nil
	}
	return []humanizer.Visualization{humanizer.Label("and send it to"), humanizer.Addr(recipient)}
}

// onBehalfClause is recipientClause for lending style actions.
func onBehalfClause(op humanizer.AccountOp, beneficiary common.Address) []humanizer.Visualization {
	if beneficiary == op.Account || beneficiary == (common.Address{}) {
		return nil
	}
	return []humanizer.Visualization{humanizer.Label("on behalf of"), humanizer.Addr(beneficiary)}
}

// nativeIfPaid swaps a wrapped native token for the native asset when the
// call itself pays with value.
func nativeIfPaid(c humanizer.IrCall, meta *humanizer.Metadata, token common.Address) common.Address {
	if c.ValueOrZero().Sign() > 0 && meta.HasTag(token, humanizer.TagWrappedNative) {
		return common.Address{}
	}
	return token
}

func seq(parts ...any) []humanizer.Visualization {
	res := []humanizer.Visualization{}
	for _, p := range parts {
		switch v := p.(type) {
		case humanizer.Visualization:
			res = append(res, v)
		case []humanizer.Visualization:
			res = append(res, v...)
		}
	}
	return res
}
