package modules

import (
	"github.com/tranvictor/humanizer/humanizer"
)

var (
	lidoSubmit    = mustMethod("submit(address)")
	wstETHWrap    = mustMethod("wrap(uint256)")
	wstETHUnwrap  = mustMethod("unwrap(uint256)")
	lidoWithdraws = mustMethod("requestWithdrawals(uint256[],address)")
)

// Lido recognizes staking with Lido and wrapping of stETH into wstETH.
type Lido struct{}

func (Lido) Kind() humanizer.ModuleKind { return humanizer.ModuleLido }

func (Lido) Humanize(op humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		switch {
		case meta.HasTag(c.To, humanizer.TagLido):
			if len(c.Data) == 0 {
				return seq(humanizer.Action("Stake"), humanizer.Token(zeroAddress, c.ValueOrZero()), humanizer.Label("with Lido"))
			}
			if _, ok := decode(lidoSubmit, c.Data); ok {
				return seq(humanizer.Action("Stake"), humanizer.Token(zeroAddress, c.ValueOrZero()), humanizer.Label("with Lido"))
			}
		case meta.HasTag(c.To, humanizer.TagWstETH):
			stETH, found := meta.TaggedAddress(humanizer.TagLido)
			if !found {
				return nil
			}
			if args, ok := decode(wstETHWrap, c.Data); ok {
				return seq(humanizer.Action("Wrap"), humanizer.Token(stETH, argBig(args[0])))
			}
			if args, ok := decode(wstETHUnwrap, c.Data); ok {
				return seq(humanizer.Action("Unwrap"), humanizer.Token(c.To, argBig(args[0])))
			}
		}
		// the withdrawal queue is not tagged, it only ever takes stETH
		if args, ok := decode(lidoWithdraws, c.Data); ok {
			stETH, found := meta.TaggedAddress(humanizer.TagLido)
			if !found {
				return nil
			}
			res := seq(humanizer.Action("Request withdrawal of"))
			for i, amount := range items(args[0]) {
				if i > 0 {
					res = append(res, humanizer.Label("and"))
				}
				res = append(res, humanizer.Token(stETH, argBig(amount)))
			}
			return append(res, recipientClause(op, argAddress(args[1]))...)
		}
		return nil
	}), nil
}
