package modules

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/humanizer/humanizer"
)

var (
	erc721SafeTransfer         = mustMethod("safeTransferFrom(address,address,uint256)")
	erc721SafeTransferWithData = mustMethod("safeTransferFrom(address,address,uint256,bytes)")
	erc1155SafeTransfer        = mustMethod("safeTransferFrom(address,address,uint256,uint256,bytes)")
	erc1155SafeBatchTransfer   = mustMethod("safeBatchTransferFrom(address,address,uint256[],uint256[],bytes)")
	nftSetApprovalForAll       = mustMethod("setApprovalForAll(address,bool)")
)

// Nft recognizes ERC-721 and ERC-1155 transfers and approvals. The plain
// transferFrom and approve overlap with ERC-20, so those are only claimed
// for collections tagged in the metadata.
type Nft struct{}

func (Nft) Kind() humanizer.ModuleKind { return humanizer.ModuleNft }

func (Nft) Humanize(op humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		if args, ok := decode(erc721SafeTransfer, c.Data); ok {
			return nftTransfer(op, argAddress(args[0]), argAddress(args[1]), humanizer.Nft(c.To, argBig(args[2])))
		}
		if args, ok := decode(erc721SafeTransferWithData, c.Data); ok {
			return nftTransfer(op, argAddress(args[0]), argAddress(args[1]), humanizer.Nft(c.To, argBig(args[2])))
		}
		if args, ok := decode(erc1155SafeTransfer, c.Data); ok {
			return nftTransfer(
				op, argAddress(args[0]), argAddress(args[1]),
				humanizer.Nft(c.To, argBig(args[2])),
				humanizer.Text(fmt.Sprintf("(x%s)", argBig(args[3]).String())),
			)
		}
		if args, ok := decode(erc1155SafeBatchTransfer, c.Data); ok {
			ids, amounts := items(args[2]), items(args[3])
			if len(ids) == 0 || len(ids) != len(amounts) {
				return nil
			}
			elems := []humanizer.Visualization{}
			for i := range ids {
				if i > 0 {
					elems = append(elems, humanizer.Label("and"))
				}
				elems = append(elems,
					humanizer.Nft(c.To, argBig(ids[i])),
					humanizer.Text(fmt.Sprintf("(x%s)", argBig(amounts[i]).String())),
				)
			}
			return nftTransfer(op, argAddress(args[0]), argAddress(args[1]), elems...)
		}
		if args, ok := decode(nftSetApprovalForAll, c.Data); ok {
			operator := argAddress(args[0])
			if argBool(args[1]) {
				return seq(humanizer.Action("Grant approval"), humanizer.Label("for"), humanizer.Nft(c.To, nil), humanizer.Label("to"), humanizer.Addr(operator))
			}
			return seq(humanizer.Action("Revoke approval"), humanizer.Label("for"), humanizer.Nft(c.To, nil), humanizer.Label("from"), humanizer.Addr(operator))
		}

		if !meta.HasTag(c.To, humanizer.TagNft) {
			return nil
		}
		if args, ok := decode(erc20TransferFrom, c.Data); ok {
			return nftTransfer(op, argAddress(args[0]), argAddress(args[1]), humanizer.Nft(c.To, argBig(args[2])))
		}
		if args, ok := decode(erc20Approve, c.Data); ok {
			spender := argAddress(args[0])
			if spender == (common.Address{}) {
				return seq(humanizer.Action("Revoke approval"), humanizer.Label("for"), humanizer.Nft(c.To, argBig(args[1])))
			}
			return seq(humanizer.Action("Grant approval"), humanizer.Label("for"), humanizer.Nft(c.To, argBig(args[1])), humanizer.Label("to"), humanizer.Addr(spender))
		}
		return nil
	}), nil
}

func nftTransfer(op humanizer.AccountOp, from, to common.Address, nfts ...humanizer.Visualization) []humanizer.Visualization {
	if from == op.Account {
		return seq(humanizer.Action("Send"), nfts, humanizer.Label("to"), humanizer.Addr(to))
	}
	if to == op.Account {
		return seq(humanizer.Action("Take"), nfts, humanizer.Label("from"), humanizer.Addr(from))
	}
	return seq(humanizer.Action("Transfer"), nfts, humanizer.Label("from"), humanizer.Addr(from), humanizer.Label("to"), humanizer.Addr(to))
}
