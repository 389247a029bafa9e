package parsers

import (
	"time"

	"github.com/tranvictor/humanizer/humanizer"
	"github.com/tranvictor/humanizer/networks"
)

// Names attaches known names to address, nft and chain elements.
type Names struct{}

func (Names) Kind() humanizer.ParserKind { return humanizer.ParserNames }

func (Names) Parse(_ humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata, _ time.Time) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return mapElements(calls, func(_ humanizer.IrCall, v *humanizer.Visualization) {
		switch v.Type {
		case humanizer.TypeAddress, humanizer.TypeNft:
			if v.Address == nil || v.Name != "" {
				return
			}
			v.Name = meta.Name(*v.Address)
		case humanizer.TypeChain:
			if v.Value == nil || v.Name != "" || !v.Value.IsUint64() {
				return
			}
			if n, err := networks.GetNetworkByID(v.Value.Uint64()); err == nil {
				v.Name = n.GetName()
			}
		}
	}), nil
}
