package modules

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tranvictor/humanizer/humanizer"
)

var setAddrPrivilege = mustMethod("setAddrPrivilege(address,bytes32)")

// Privileges describes changes to who may control the account.
type Privileges struct{}

func (Privileges) Kind() humanizer.ModuleKind { return humanizer.ModulePrivileges }

func (Privileges) Humanize(op humanizer.AccountOp, calls []humanizer.IrCall, _ *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		if c.To != op.Account {
			return nil
		}
		args, ok := decode(setAddrPrivilege, c.Data)
		if !ok {
			return nil
		}
		addr := argAddress(args[0])
		priv := new(big.Int).SetBytes(argFixedBytes(args[1]))
		switch {
		case priv.Sign() == 0:
			return seq(humanizer.Action("Revoke access"), humanizer.Label("of"), humanizer.Addr(addr))
		case priv.Cmp(big.NewInt(1)) == 0:
			return seq(humanizer.Action("Grant access"), humanizer.Label("to"), humanizer.Addr(addr))
		}
		return seq(
			humanizer.Action("Update access status"),
			humanizer.Label("of"),
			humanizer.Addr(addr),
			humanizer.Label("to"),
			humanizer.Text(hexutil.Encode(argFixedBytes(args[1]))),
		)
	}), nil
}
