package modules

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/humanizer/humanizer"
)

// v2Swap describes one router entry point. exactIn swaps a fixed input for
// a minimum output, otherwise a fixed output is bought for a maximum input.
type v2Swap struct {
	method    abi.Method
	exactIn   bool
	nativeIn  bool
	nativeOut bool
}

var v2Swaps = []v2Swap{
	{method: mustMethod("swapExactTokensForTokens(uint256,uint256,address[],address,uint256)"), exactIn: true},
	{method: mustMethod("swapExactTokensForTokensSupportingFeeOnTransferTokens(uint256,uint256,address[],address,uint256)"), exactIn: true},
	{method: mustMethod("swapTokensForExactTokens(uint256,uint256,address[],address,uint256)")},
	{method: mustMethod("swapExactETHForTokens(uint256,address[],address,uint256)"), exactIn: true, nativeIn: true},
	{method: mustMethod("swapExactETHForTokensSupportingFeeOnTransferTokens(uint256,address[],address,uint256)"), exactIn: true, nativeIn: true},
	{method: mustMethod("swapETHForExactTokens(uint256,address[],address,uint256)"), nativeIn: true},
	{method: mustMethod("swapExactTokensForETH(uint256,uint256,address[],address,uint256)"), exactIn: true, nativeOut: true},
	{method: mustMethod("swapExactTokensForETHSupportingFeeOnTransferTokens(uint256,uint256,address[],address,uint256)"), exactIn: true, nativeOut: true},
	{method: mustMethod("swapTokensForExactETH(uint256,uint256,address[],address,uint256)"), nativeOut: true},
}

// UniswapV2 recognizes swaps through V2 style routers.
type UniswapV2 struct{}

func (UniswapV2) Kind() humanizer.ModuleKind { return humanizer.ModuleUniswapV2 }

func (UniswapV2) Humanize(op humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		if !meta.HasTag(c.To, humanizer.TagUniswapV2Router) {
			return nil
		}
		for _, s := range v2Swaps {
			if args, ok := decode(s.method, c.Data); ok {
				return s.humanize(op, c, args)
			}
		}
		return nil
	}), nil
}

func (s v2Swap) humanize(op humanizer.AccountOp, c humanizer.IrCall, args []any) []humanizer.Visualization {
	// Payable variants take the input amount from the call value.
	if s.nativeIn {
		if s.exactIn {
			args = append([]any{c.ValueOrZero()}, args...)
		} else {
			args = append([]any{args[0], c.ValueOrZero()}, args[1:]...)
		}
	}
	first, second := argBig(args[0]), argBig(args[1])
	path := argAddresses(args[2])
	if len(path) < 2 {
		return nil
	}
	recipient := argAddress(args[3])
	deadline := argBig(args[4])

	tokenIn, tokenOut := path[0], path[len(path)-1]
	if s.nativeIn {
		tokenIn = zeroAddress
	}
	if s.nativeOut {
		tokenOut = zeroAddress
	}
	return swapVisualization(op, s.exactIn, tokenIn, first, second, tokenOut, recipient, deadline)
}

// swapVisualization is shared by every router family. For exact input swaps
// first is the input amount and second the minimum output; for exact output
// swaps first is the output amount and second the maximum input.
func swapVisualization(
	op humanizer.AccountOp,
	exactIn bool,
	tokenIn common.Address,
	first, second *big.Int,
	tokenOut common.Address,
	recipient common.Address,
	deadline *big.Int,
) []humanizer.Visualization {
	var res []humanizer.Visualization
	if exactIn {
		res = seq(
			humanizer.Action("Swap"),
			humanizer.Token(tokenIn, first),
			humanizer.Label("for at least"),
			humanizer.Token(tokenOut, second),
		)
	} else {
		res = seq(
			humanizer.Action("Swap up to"),
			humanizer.Token(tokenIn, second),
			humanizer.Label("for"),
			humanizer.Token(tokenOut, first),
		)
	}
	res = append(res, recipientClause(op, recipient)...)
	if deadline != nil {
		res = append(res, humanizer.Deadline(deadline))
	}
	return res
}
