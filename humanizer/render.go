package humanizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	hcommon "github.com/tranvictor/humanizer/common"
)

// RenderText turns the visualization of call into one sentence. It never
// returns an empty string: when nothing renders it describes the raw call.
func RenderText(call Call, vis []Visualization) string {
	parts := make([]string, 0, len(vis))
	for _, v := range vis {
		if v.IsHidden {
			continue
		}
		if s := strings.TrimSpace(RenderElement(v)); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return RawCallText(call)
	}
	return strings.Join(parts, " ")
}

// RawCallText is the description of a call nobody could decode.
func RawCallText(call Call) string {
	return fmt.Sprintf(
		"Call to %s with %s value and %s data",
		call.To.Hex(),
		call.ValueOrZero().String(),
		hexutil.Encode(call.Data),
	)
}

// RenderIR renders every call of ir in order.
func RenderIR(ir []IrCall) []string {
	res := make([]string, len(ir))
	for i, c := range ir {
		res[i] = RenderText(c.Call, c.FullVisualization)
	}
	return res
}

// RenderElement renders a single visualization element.
func RenderElement(v Visualization) string {
	switch v.Type {
	case TypeAction, TypeLabel, TypeText:
		return v.Content
	case TypeAddress:
		return renderAddress(v)
	case TypeToken:
		return renderToken(v)
	case TypeNft:
		if v.Value == nil {
			return "all NFTs of " + renderAddress(v)
		}
		return fmt.Sprintf("NFT #%s of %s", v.Value.String(), renderAddress(v))
	case TypeChain:
		if v.Name != "" {
			return v.Name
		}
		if v.Value == nil {
			return ""
		}
		return "chain " + v.Value.String()
	case TypeDeadline:
		if v.Content != "" {
			return v.Content
		}
		if v.Value == nil || !v.Value.IsInt64() {
			return ""
		}
		return "valid until " + time.Unix(v.Value.Int64(), 0).UTC().Format("2006-01-02 15:04 UTC")
	}
	return ""
}

func renderAddress(v Visualization) string {
	if v.Address == nil {
		return ""
	}
	if v.Name != "" {
		return fmt.Sprintf("%s (%s)", v.Address.Hex(), v.Name)
	}
	return v.Address.Hex()
}

func renderToken(v Visualization) string {
	amount := tokenAmount(v)
	if v.Token != nil && v.Token.Symbol != "" {
		return amount + " " + v.Token.Symbol
	}
	if v.Address == nil {
		return amount
	}
	return fmt.Sprintf("%s %s token", amount, v.Address.Hex())
}

func tokenAmount(v Visualization) string {
	switch {
	case v.AmountText != "":
		return v.AmountText
	case v.Value == nil:
		return "0"
	case hcommon.IsMaxUint256(v.Value):
		return "all"
	case v.Token != nil && v.Token.Symbol != "":
		return hcommon.BigToFloatString(v.Value, v.Token.Decimals)
	}
	return v.Value.String()
}
