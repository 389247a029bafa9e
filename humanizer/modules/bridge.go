package modules

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/humanizer/humanizer"
)

var acrossDepositV3 = mustMethod(
	"depositV3(address,address,address,address,uint256,uint256,uint256,address,uint32,uint32,uint32,bytes)",
)

// Bridge recognizes deposits into the Across spoke pool.
type Bridge struct{}

func (Bridge) Kind() humanizer.ModuleKind { return humanizer.ModuleBridge }

func (Bridge) Humanize(op humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		if !meta.HasTag(c.To, humanizer.TagAcrossSpokePool) {
			return nil
		}
		args, ok := decode(acrossDepositV3, c.Data)
		if !ok {
			return nil
		}
		inputToken := nativeIfPaid(c, meta, argAddress(args[2]))
		return seq(
			humanizer.Action("Bridge"),
			humanizer.Token(inputToken, argBig(args[4])),
			humanizer.Label("to"),
			humanizer.Chain(argBig(args[6])),
			humanizer.Label("and receive at least"),
			humanizer.Token(outputToken(meta, inputToken, argAddress(args[3])), argBig(args[5])),
			recipientClause(op, argAddress(args[1])),
			humanizer.Deadline(argBig(args[9])),
		)
	}), nil
}

// outputToken is the asset received on the destination chain. The zero
// address asks relayers for the equivalent of the input token.
func outputToken(meta *humanizer.Metadata, input, output common.Address) common.Address {
	switch {
	case output == (common.Address{}):
		return input
	case meta.HasTag(output, humanizer.TagWrappedNative):
		return common.Address{}
	}
	return output
}
