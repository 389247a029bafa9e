package modules

import (
	"github.com/tranvictor/humanizer/humanizer"
)

var (
	wrapDeposit  = mustMethod("deposit()")
	wrapWithdraw = mustMethod("withdraw(uint256)")
)

// Wrapping recognizes WETH style wrapping of the native asset.
type Wrapping struct{}

func (Wrapping) Kind() humanizer.ModuleKind { return humanizer.ModuleWrapping }

func (Wrapping) Humanize(_ humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		if !meta.HasTag(c.To, humanizer.TagWrappedNative) {
			return nil
		}
		if len(c.Data) == 0 {
			return seq(humanizer.Action("Wrap"), humanizer.Token(zeroAddress, c.ValueOrZero()))
		}
		if _, ok := decode(wrapDeposit, c.Data); ok {
			return seq(humanizer.Action("Wrap"), humanizer.Token(zeroAddress, c.ValueOrZero()))
		}
		if args, ok := decode(wrapWithdraw, c.Data); ok {
			return seq(humanizer.Action("Unwrap"), humanizer.Token(zeroAddress, argBig(args[0])))
		}
		return nil
	}), nil
}
