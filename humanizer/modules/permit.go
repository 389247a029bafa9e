package modules

import (
	"github.com/tranvictor/humanizer/humanizer"
)

var (
	permit2Approve  = mustMethod("approve(address,address,uint160,uint48)")
	permit2Lockdown = mustMethod("lockdown((address,address)[])")
	eip2612Permit   = mustMethod("permit(address,address,uint256,uint256,uint8,bytes32,bytes32)")
)

// Permit recognizes Permit2 allowance management and on-chain submission of
// EIP-2612 permits.
type Permit struct{}

func (Permit) Kind() humanizer.ModuleKind { return humanizer.ModulePermit }

func (Permit) Humanize(_ humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		if meta.HasTag(c.To, humanizer.TagPermit2) {
			if args, ok := decode(permit2Approve, c.Data); ok {
				token, spender, amount := argAddress(args[0]), argAddress(args[1]), argBig(args[2])
				if amount.Sign() == 0 {
					return seq(humanizer.Action("Revoke approval"), humanizer.Token(token, amount), humanizer.Label("for"), humanizer.Addr(spender))
				}
				return seq(
					humanizer.Action("Approve"),
					humanizer.Addr(spender),
					humanizer.Label("to use"),
					humanizer.Token(token, amount),
					humanizer.Deadline(argBig(args[3])),
				)
			}
			if args, ok := decode(permit2Lockdown, c.Data); ok {
				res := seq(humanizer.Action("Revoke approval"))
				for i, pair := range items(args[0]) {
					if i > 0 {
						res = append(res, humanizer.Label("and"))
					}
					res = append(res,
						humanizer.Label("for"),
						humanizer.Addr(argAddress(field(pair, 0))),
						humanizer.Label("to"),
						humanizer.Addr(argAddress(field(pair, 1))),
					)
				}
				return res
			}
			return nil
		}
		args, ok := decode(eip2612Permit, c.Data)
		if !ok {
			return nil
		}
		action := "Grant approval"
		if argBig(args[2]).Sign() == 0 {
			action = "Revoke approval"
		}
		return seq(
			humanizer.Action(action),
			humanizer.Token(c.To, argBig(args[2])),
			humanizer.Label("for"),
			humanizer.Addr(argAddress(args[1])),
			humanizer.Deadline(argBig(args[3])),
		)
	}), nil
}
