package modules

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/humanizer/humanizer"
)

var zeroAddress common.Address

var (
	erc20Transfer          = mustMethod("transfer(address,uint256)")
	erc20TransferFrom      = mustMethod("transferFrom(address,address,uint256)")
	erc20Approve           = mustMethod("approve(address,uint256)")
	erc20IncreaseAllowance = mustMethod("increaseAllowance(address,uint256)")
	erc20DecreaseAllowance = mustMethod("decreaseAllowance(address,uint256)")
)

// Token recognizes plain native transfers and the generic ERC-20 surface of
// any contract.
type Token struct{}

func (Token) Kind() humanizer.ModuleKind { return humanizer.ModuleToken }

func (Token) Humanize(op humanizer.AccountOp, calls []humanizer.IrCall, _ *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		if len(c.Data) == 0 {
			return nativeTransfer(c)
		}
		if args, ok := decode(erc20Transfer, c.Data); ok {
			return seq(humanizer.Action("Send"), humanizer.Token(c.To, argBig(args[1])), humanizer.Label("to"), humanizer.Addr(argAddress(args[0])))
		}
		if args, ok := decode(erc20TransferFrom, c.Data); ok {
			from, to, amount := argAddress(args[0]), argAddress(args[1]), humanizer.Token(c.To, argBig(args[2]))
			switch {
			case from == op.Account:
				return seq(humanizer.Action("Send"), amount, humanizer.Label("to"), humanizer.Addr(to))
			case to == op.Account:
				return seq(humanizer.Action("Take"), amount, humanizer.Label("from"), humanizer.Addr(from))
			}
			return seq(humanizer.Action("Move"), amount, humanizer.Label("from"), humanizer.Addr(from), humanizer.Label("to"), humanizer.Addr(to))
		}
		if args, ok := decode(erc20Approve, c.Data); ok {
			amount := argBig(args[1])
			action := "Grant approval"
			if amount.Sign() == 0 {
				action = "Revoke approval"
			}
			return seq(humanizer.Action(action), humanizer.Token(c.To, amount), humanizer.Label("for"), humanizer.Addr(argAddress(args[0])))
		}
		if args, ok := decode(erc20IncreaseAllowance, c.Data); ok {
			return seq(humanizer.Action("Increase allowance of"), humanizer.Addr(argAddress(args[0])), humanizer.Label("by"), humanizer.Token(c.To, argBig(args[1])))
		}
		if args, ok := decode(erc20DecreaseAllowance, c.Data); ok {
			return seq(humanizer.Action("Decrease allowance of"), humanizer.Addr(argAddress(args[0])), humanizer.Label("by"), humanizer.Token(c.To, argBig(args[1])))
		}
		return nil
	}), nil
}

func nativeTransfer(c humanizer.IrCall) []humanizer.Visualization {
	return seq(humanizer.Action("Send"), humanizer.Token(zeroAddress, c.ValueOrZero()), humanizer.Label("to"), humanizer.Addr(c.To))
}
