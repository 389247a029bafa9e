package modules

import (
	"github.com/tranvictor/humanizer/humanizer"
)

var (
	aaveSupply   = mustMethod("supply(address,uint256,address,uint16)")
	aaveDeposit  = mustMethod("deposit(address,uint256,address,uint16)")
	aaveWithdraw = mustMethod("withdraw(address,uint256,address)")
	aaveBorrow   = mustMethod("borrow(address,uint256,uint256,uint16,address)")
	aaveRepay    = mustMethod("repay(address,uint256,uint256,address)")
)

// Aave recognizes calls to Aave lending pools.
type Aave struct{}

func (Aave) Kind() humanizer.ModuleKind { return humanizer.ModuleAave }

func (Aave) Humanize(op humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		if !meta.HasTag(c.To, humanizer.TagAavePool) {
			return nil
		}
		pool := humanizer.Label("to Aave lending pool")
		if args, ok := decode(aaveSupply, c.Data); ok {
			return seq(humanizer.Action("Deposit"), humanizer.Token(argAddress(args[0]), argBig(args[1])), pool, onBehalfClause(op, argAddress(args[2])))
		}
		if args, ok := decode(aaveDeposit, c.Data); ok {
			return seq(humanizer.Action("Deposit"), humanizer.Token(argAddress(args[0]), argBig(args[1])), pool, onBehalfClause(op, argAddress(args[2])))
		}
		if args, ok := decode(aaveWithdraw, c.Data); ok {
			return seq(
				humanizer.Action("Withdraw"),
				humanizer.Token(argAddress(args[0]), argBig(args[1])),
				humanizer.Label("from Aave lending pool"),
				recipientClause(op, argAddress(args[2])),
			)
		}
		if args, ok := decode(aaveBorrow, c.Data); ok {
			return seq(
				humanizer.Action("Borrow"),
				humanizer.Token(argAddress(args[0]), argBig(args[1])),
				humanizer.Label("from Aave lending pool"),
				onBehalfClause(op, argAddress(args[4])),
			)
		}
		if args, ok := decode(aaveRepay, c.Data); ok {
			return seq(humanizer.Action("Repay"), humanizer.Token(argAddress(args[0]), argBig(args[1])), pool, onBehalfClause(op, argAddress(args[3])))
		}
		return nil
	}), nil
}
