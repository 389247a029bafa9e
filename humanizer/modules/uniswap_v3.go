package modules

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/humanizer/humanizer"
)

const unknownUniswapText = "Unknown Uniswap interaction"

var (
	// SwapRouter
	v3ExactInputSingle  = mustMethod("exactInputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))")
	v3ExactInput        = mustMethod("exactInput((bytes,address,uint256,uint256,uint256))")
	v3ExactOutputSingle = mustMethod("exactOutputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))")
	v3ExactOutput       = mustMethod("exactOutput((bytes,address,uint256,uint256,uint256))")

	// SwapRouter02
	r2ExactInputSingle  = mustMethod("exactInputSingle((address,address,uint24,address,uint256,uint256,uint160))")
	r2ExactInput        = mustMethod("exactInput((bytes,address,uint256,uint256))")
	r2ExactOutputSingle = mustMethod("exactOutputSingle((address,address,uint24,address,uint256,uint256,uint160))")
	r2ExactOutput       = mustMethod("exactOutput((bytes,address,uint256,uint256))")
	r2SwapExactIn       = mustMethod("swapExactTokensForTokens(uint256,uint256,address[],address)")
	r2SwapExactOut      = mustMethod("swapTokensForExactTokens(uint256,uint256,address[],address)")

	v3Multicall         = mustMethod("multicall(bytes[])")
	v3MulticallDeadline = mustMethod("multicall(uint256,bytes[])")
	v3MulticallBlock    = mustMethod("multicall(bytes32,bytes[])")

	v3UnwrapWETH9         = mustMethod("unwrapWETH9(uint256,address)")
	v3UnwrapWETH9ToSender = mustMethod("unwrapWETH9(uint256)")
	v3RefundETH           = mustMethod("refundETH()")
	v3SweepToken          = mustMethod("sweepToken(address,uint256,address)")
	v3SweepTokenToSender  = mustMethod("sweepToken(address,uint256)")
)

// Router02 uses these sentinels for "the caller" and "the router itself".
var (
	msgSenderSentinel   = common.BigToAddress(big.NewInt(1))
	addressThisSentinel = common.BigToAddress(big.NewInt(2))
)

// UniswapV3 recognizes SwapRouter and SwapRouter02 calls including their
// multicalls, which are unpacked recursively up to MaxDepth.
type UniswapV3 struct {
	depth int
}

func (UniswapV3) Kind() humanizer.ModuleKind { return humanizer.ModuleUniswapV3 }

func (u UniswapV3) Humanize(op humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		if !meta.HasTag(c.To, humanizer.TagUniswapV3Router) {
			return nil
		}
		return u.humanizeCall(op, c, meta)
	}), nil
}

func (u UniswapV3) humanizeCall(op humanizer.AccountOp, c humanizer.IrCall, meta *humanizer.Metadata) []humanizer.Visualization {
	if args, ok := decode(v3Multicall, c.Data); ok {
		return u.multicall(op, c, meta, args[0], nil)
	}
	if args, ok := decode(v3MulticallDeadline, c.Data); ok {
		return u.multicall(op, c, meta, args[1], argBig(args[0]))
	}
	if args, ok := decode(v3MulticallBlock, c.Data); ok {
		return u.multicall(op, c, meta, args[1], nil)
	}

	if args, ok := decode(v3ExactInputSingle, c.Data); ok {
		p := args[0]
		return swapVisualization(
			op, true,
			nativeIfPaid(c, meta, argAddress(field(p, 0))), argBig(field(p, 5)), argBig(field(p, 6)),
			argAddress(field(p, 1)), routerRecipient(op, argAddress(field(p, 3))), argBig(field(p, 4)),
		)
	}
	if args, ok := decode(r2ExactInputSingle, c.Data); ok {
		p := args[0]
		return swapVisualization(
			op, true,
			nativeIfPaid(c, meta, argAddress(field(p, 0))), argBig(field(p, 4)), argBig(field(p, 5)),
			argAddress(field(p, 1)), routerRecipient(op, argAddress(field(p, 3))), nil,
		)
	}
	if args, ok := decode(v3ExactOutputSingle, c.Data); ok {
		p := args[0]
		return swapVisualization(
			op, false,
			nativeIfPaid(c, meta, argAddress(field(p, 0))), argBig(field(p, 5)), argBig(field(p, 6)),
			argAddress(field(p, 1)), routerRecipient(op, argAddress(field(p, 3))), argBig(field(p, 4)),
		)
	}
	if args, ok := decode(r2ExactOutputSingle, c.Data); ok {
		p := args[0]
		return swapVisualization(
			op, false,
			nativeIfPaid(c, meta, argAddress(field(p, 0))), argBig(field(p, 4)), argBig(field(p, 5)),
			argAddress(field(p, 1)), routerRecipient(op, argAddress(field(p, 3))), nil,
		)
	}
	if args, ok := decode(v3ExactInput, c.Data); ok {
		p := args[0]
		in, out, ok := pathEnds(argBytes(field(p, 0)))
		if !ok {
			return nil
		}
		return swapVisualization(
			op, true,
			nativeIfPaid(c, meta, in), argBig(field(p, 3)), argBig(field(p, 4)),
			out, routerRecipient(op, argAddress(field(p, 1))), argBig(field(p, 2)),
		)
	}
	if args, ok := decode(r2ExactInput, c.Data); ok {
		p := args[0]
		in, out, ok := pathEnds(argBytes(field(p, 0)))
		if !ok {
			return nil
		}
		return swapVisualization(
			op, true,
			nativeIfPaid(c, meta, in), argBig(field(p, 2)), argBig(field(p, 3)),
			out, routerRecipient(op, argAddress(field(p, 1))), nil,
		)
	}
	// exactOutput paths are encoded from the output token backwards.
	if args, ok := decode(v3ExactOutput, c.Data); ok {
		p := args[0]
		out, in, ok := pathEnds(argBytes(field(p, 0)))
		if !ok {
			return nil
		}
		return swapVisualization(
			op, false,
			nativeIfPaid(c, meta, in), argBig(field(p, 3)), argBig(field(p, 4)),
			out, routerRecipient(op, argAddress(field(p, 1))), argBig(field(p, 2)),
		)
	}
	if args, ok := decode(r2ExactOutput, c.Data); ok {
		p := args[0]
		out, in, ok := pathEnds(argBytes(field(p, 0)))
		if !ok {
			return nil
		}
		return swapVisualization(
			op, false,
			nativeIfPaid(c, meta, in), argBig(field(p, 2)), argBig(field(p, 3)),
			out, routerRecipient(op, argAddress(field(p, 1))), nil,
		)
	}
	for _, m := range []abi.Method{r2SwapExactIn, r2SwapExactOut} {
		args, ok := decode(m, c.Data)
		if !ok {
			continue
		}
		path := argAddresses(args[2])
		if len(path) < 2 {
			return nil
		}
		return swapVisualization(
			op, m.Sig == r2SwapExactIn.Sig,
			path[0], argBig(args[0]), argBig(args[1]),
			path[len(path)-1], routerRecipient(op, argAddress(args[3])), nil,
		)
	}

	if args, ok := decode(v3UnwrapWETH9, c.Data); ok {
		return seq(
			humanizer.Action("Unwrap at least"),
			humanizer.Token(zeroAddress, argBig(args[0])),
			recipientClause(op, routerRecipient(op, argAddress(args[1]))),
		)
	}
	if args, ok := decode(v3UnwrapWETH9ToSender, c.Data); ok {
		return seq(humanizer.Action("Unwrap at least"), humanizer.Token(zeroAddress, argBig(args[0])))
	}
	if _, ok := decode(v3RefundETH, c.Data); ok {
		return seq(humanizer.Action("Refund"), humanizer.Label("leftover native asset"))
	}
	if args, ok := decode(v3SweepToken, c.Data); ok {
		return seq(
			humanizer.Action("Sweep at least"),
			humanizer.Token(argAddress(args[0]), argBig(args[1])),
			recipientClause(op, routerRecipient(op, argAddress(args[2]))),
		)
	}
	if args, ok := decode(v3SweepTokenToSender, c.Data); ok {
		return seq(humanizer.Action("Sweep at least"), humanizer.Token(argAddress(args[0]), argBig(args[1])))
	}
	return nil
}

// multicall humanizes every packed call with the same module table and
// joins the results. Deadlines of the parts collapse into a single trailing
// one; the outer deadline wins when present.
func (u UniswapV3) multicall(op humanizer.AccountOp, c humanizer.IrCall, meta *humanizer.Metadata, packed any, deadline *big.Int) []humanizer.Visualization {
	unknown := seq(humanizer.Action(unknownUniswapText))
	if u.depth+1 >= MaxDepth {
		return unknown
	}
	sub := []humanizer.IrCall{}
	for _, it := range items(packed) {
		sub = append(sub, humanizer.IrCall{Call: humanizer.Call{To: c.To, Value: c.Value, Data: argBytes(it)}})
	}

	groups := [][]humanizer.Visualization{}
	for _, s := range humanizeSubCalls(op, sub, meta, u.depth+1) {
		if humanizer.IsUnknownVisualization(s.FullVisualization) {
			continue
		}
		group := []humanizer.Visualization{}
		for _, v := range s.FullVisualization {
			if v.Type == humanizer.TypeDeadline {
				if deadline == nil {
					deadline = v.Value
				}
				continue
			}
			group = append(group, v)
		}
		groups = append(groups, group)
	}
	groups = mergeSwapSteps(groups)
	if len(groups) == 0 {
		return unknown
	}

	res := []humanizer.Visualization{}
	for i, g := range groups {
		if i > 0 {
			res = append(res, humanizer.Label("and"))
		}
		res = append(res, g...)
	}
	if deadline != nil {
		res = append(res, humanizer.Deadline(deadline))
	}
	return res
}

// mergeSwapSteps folds the unwrap and refund steps routers append after a
// swap into the swap itself.
func mergeSwapSteps(groups [][]humanizer.Visualization) [][]humanizer.Visualization {
	res := [][]humanizer.Visualization{}
	for _, g := range groups {
		if len(res) == 0 || len(g) == 0 {
			res = append(res, g)
			continue
		}
		prev := res[len(res)-1]
		if !isSwap(prev) {
			res = append(res, g)
			continue
		}
		switch g[0].Content {
		case "Unwrap at least":
			// the swap output was WETH held by the router, show it as native
			merged := append([]humanizer.Visualization{}, prev[:3]...)
			merged = append(merged, humanizer.Token(zeroAddress, prev[3].Value))
			merged = append(merged, g[2:]...)
			res[len(res)-1] = merged
		case "Refund":
			// leftovers of a native input return to the account
		default:
			res = append(res, g)
		}
	}
	return res
}

func isSwap(g []humanizer.Visualization) bool {
	return len(g) >= 4 && g[0].Type == humanizer.TypeAction &&
		(g[0].Content == "Swap" || g[0].Content == "Swap up to") &&
		g[3].Type == humanizer.TypeToken
}

// pathEnds returns the first and last token of a packed V3 path.
func pathEnds(path []byte) (first, last common.Address, ok bool) {
	if len(path) < 2*common.AddressLength+3 {
		return common.Address{}, common.Address{}, false
	}
	return common.BytesToAddress(path[:common.AddressLength]),
		common.BytesToAddress(path[len(path)-common.AddressLength:]),
		true
}

func routerRecipient(op humanizer.AccountOp, r common.Address) common.Address {
	if r == msgSenderSentinel || r == addressThisSentinel {
		return op.Account
	}
	return r
}
