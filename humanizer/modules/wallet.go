package modules

import (
	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/tranvictor/humanizer/humanizer"
)

var (
	walletExecute         = mustMethod("execute((address,uint256,bytes)[],bytes)")
	walletExecuteBySender = mustMethod("executeBySender((address,uint256,bytes)[])")
	walletExecuteBySelf   = mustMethod("executeBySelf((address,uint256,bytes)[])")
)

// Wallet splits batches the smart account sends to itself into the calls
// they carry so every other module sees them individually.
type Wallet struct{}

func (Wallet) Kind() humanizer.ModuleKind { return humanizer.ModuleWallet }

func (Wallet) Humanize(op humanizer.AccountOp, calls []humanizer.IrCall, _ *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	out := []humanizer.IrCall{}
	for _, c := range calls {
		out = append(out, splitBatch(op, c, 0)...)
	}
	return out, nil
}

func splitBatch(op humanizer.AccountOp, c humanizer.IrCall, depth int) []humanizer.IrCall {
	if depth >= MaxDepth || c.To != op.Account || c.FullVisualization != nil {
		return []humanizer.IrCall{c}
	}
	sub, ok := decodeBatch(c.Data)
	if !ok || len(sub) == 0 {
		return []humanizer.IrCall{c}
	}
	res := []humanizer.IrCall{}
	for _, s := range sub {
		res = append(res, splitBatch(op, humanizer.IrCall{Call: s}, depth+1)...)
	}
	return res
}

func decodeBatch(data []byte) ([]humanizer.Call, bool) {
	for _, m := range []abi.Method{walletExecute, walletExecuteBySender, walletExecuteBySelf} {
		args, ok := decode(m, data)
		if !ok {
			continue
		}
		res := []humanizer.Call{}
		for _, it := range items(args[0]) {
			res = append(res, humanizer.Call{
				To:    argAddress(field(it, 0)),
				Value: argBig(field(it, 1)),
				Data:  argBytes(field(it, 2)),
			})
		}
		return res, true
	}
	return nil, false
}
