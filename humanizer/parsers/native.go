package parsers

import (
	"time"

	hcommon "github.com/tranvictor/humanizer/common"
	"github.com/tranvictor/humanizer/humanizer"
	"github.com/tranvictor/humanizer/networks"
)

const (
	defaultNativeSymbol  = "ETH"
	defaultNativeDecimal = 18
)

// Native gives token elements pointing at the zero address (or the 0xEeee
// placeholder) the symbol and decimals of the chain's native asset.
type Native struct{}

func (Native) Kind() humanizer.ParserKind { return humanizer.ParserNative }

func (Native) Parse(op humanizer.AccountOp, calls []humanizer.IrCall, _ *humanizer.Metadata, _ time.Time) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	native := NativeToken(op.ChainID)
	return mapElements(calls, func(_ humanizer.IrCall, v *humanizer.Visualization) {
		if v.Type != humanizer.TypeToken || v.Address == nil || !hcommon.IsNativeAddress(*v.Address) {
			return
		}
		info := native
		v.Token = &info
	}), nil
}

// NativeToken returns the native asset of a chain, falling back to ETH for
// chains we do not know.
func NativeToken(chainID uint64) humanizer.TokenInfo {
	n, err := networks.GetNetworkByID(chainID)
	if err != nil {
		return humanizer.TokenInfo{Symbol: defaultNativeSymbol, Decimals: defaultNativeDecimal}
	}
	return humanizer.TokenInfo{Symbol: n.GetNativeTokenSymbol(), Decimals: n.GetNativeTokenDecimal()}
}
