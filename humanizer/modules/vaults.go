package modules

import (
	"github.com/tranvictor/humanizer/humanizer"
)

var (
	vaultDeposit  = mustMethod("deposit(uint256,address)")
	vaultMint     = mustMethod("mint(uint256,address)")
	vaultWithdraw = mustMethod("withdraw(uint256,address,address)")
	vaultRedeem   = mustMethod("redeem(uint256,address,address)")
)

// Vaults recognizes ERC-4626 calls to the vaults listed in the metadata.
type Vaults struct{}

func (Vaults) Kind() humanizer.ModuleKind { return humanizer.ModuleVaults }

func (Vaults) Humanize(op humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		asset, known := meta.VaultAsset(c.To)
		if !known {
			return nil
		}
		vault := humanizer.Addr(c.To)
		if args, ok := decode(vaultDeposit, c.Data); ok {
			return seq(humanizer.Action("Deposit"), humanizer.Token(asset, argBig(args[0])), humanizer.Label("to"), vault, recipientClause(op, argAddress(args[1])))
		}
		if args, ok := decode(vaultMint, c.Data); ok {
			return seq(humanizer.Action("Mint"), humanizer.Token(c.To, argBig(args[0])), humanizer.Label("from"), vault, recipientClause(op, argAddress(args[1])))
		}
		if args, ok := decode(vaultWithdraw, c.Data); ok {
			return seq(humanizer.Action("Withdraw"), humanizer.Token(asset, argBig(args[0])), humanizer.Label("from"), vault, recipientClause(op, argAddress(args[1])))
		}
		if args, ok := decode(vaultRedeem, c.Data); ok {
			return seq(humanizer.Action("Redeem"), humanizer.Token(c.To, argBig(args[0])), humanizer.Label("from"), vault, recipientClause(op, argAddress(args[1])))
		}
		return nil
	}), nil
}
