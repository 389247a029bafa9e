package modules

import (
	"github.com/tranvictor/humanizer/humanizer"
)

// GasTank recognizes top ups of the fee paying gas tank, paid either in the
// native asset or with a token transfer.
type GasTank struct{}

func (GasTank) Kind() humanizer.ModuleKind { return humanizer.ModuleGasTank }

func (GasTank) Humanize(_ humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		if len(c.Data) == 0 && meta.HasTag(c.To, humanizer.TagGasTank) {
			return seq(humanizer.Action("Fuel gas tank with"), humanizer.Token(zeroAddress, c.ValueOrZero()))
		}
		args, ok := decode(erc20Transfer, c.Data)
		if !ok || !meta.HasTag(argAddress(args[0]), humanizer.TagGasTank) {
			return nil
		}
		return seq(humanizer.Action("Fuel gas tank with"), humanizer.Token(c.To, argBig(args[1])))
	}), nil
}
