package parsers

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	hcommon "github.com/tranvictor/humanizer/common"
	"github.com/tranvictor/humanizer/humanizer"
)

// Tokens fills symbol and decimals of token elements from the metadata and
// requests the ones it does not know yet. Amounts are formatted once the
// decimals are known; the unlimited amount becomes "all".
type Tokens struct{}

func (Tokens) Kind() humanizer.ParserKind { return humanizer.ParserTokens }

func (Tokens) Parse(op humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata, _ time.Time) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	reqs := []humanizer.FragmentRequest{}
	out := mapElements(calls, func(_ humanizer.IrCall, v *humanizer.Visualization) {
		if v.Type != humanizer.TypeToken || v.Address == nil {
			return
		}
		if v.Token == nil {
			if info, found := meta.Token(op.ChainID, *v.Address); found {
				v.Token = &info
			} else if !hcommon.IsNativeAddress(*v.Address) && !meta.TokenFailed(op.ChainID, *v.Address) {
				reqs = append(reqs, humanizer.TokenRequest(op.ChainID, *v.Address))
			}
		}
		switch {
		case hcommon.IsMaxUint256(v.Value):
			v.AmountText = "all"
		case v.Token != nil && v.Token.Symbol != "" && v.Value != nil:
			v.AmountText = hcommon.BigToFloatString(v.Value, v.Token.Decimals)
		}
	})
	for i, c := range out {
		for _, v := range c.FullVisualization {
			if v.Type == humanizer.TypeToken && v.Address != nil && v.Token == nil &&
				!hcommon.IsNativeAddress(*v.Address) && meta.TokenFailed(op.ChainID, *v.Address) {
				out[i] = out[i].WithWarning(TokenFailedWarning(*v.Address))
			}
		}
	}
	return out, humanizer.DedupRequests(reqs)
}

// TokenFailedWarning is attached to calls moving a token whose metadata
// could not be loaded.
func TokenFailedWarning(addr common.Address) humanizer.Warning {
	return humanizer.Warning{
		Content: "Could not load token info for " + addr.Hex(),
		Level:   humanizer.WarningCaution,
	}
}
