package modules

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	hcommon "github.com/tranvictor/humanizer/common"
	"github.com/tranvictor/humanizer/humanizer"
)

// Fallback describes whatever the protocol modules left open. Known
// selectors are named, unknown ones get the provisional marker and a
// signature lookup request.
type Fallback struct{}

func (Fallback) Kind() humanizer.ModuleKind { return humanizer.ModuleFallback }

func (Fallback) Humanize(_ humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	reqs := []humanizer.FragmentRequest{}
	out := make([]humanizer.IrCall, len(calls))
	for i, c := range calls {
		out[i] = c
		if !humanizer.IsUnknownVisualization(c.FullVisualization) {
			continue
		}
		res, req, warning := fallbackVisualization(c, meta)
		out[i] = c.WithVisualization(res...)
		if req != nil {
			reqs = append(reqs, *req)
		}
		if warning != nil {
			out[i] = out[i].WithWarning(*warning)
		}
	}
	return out, reqs
}

func fallbackVisualization(c humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.Visualization, *humanizer.FragmentRequest, *humanizer.Warning) {
	switch {
	case len(c.Data) == 0:
		return nativeTransfer(c), nil, nil
	case len(c.Data) < 4:
		return withValue(c, seq(
			humanizer.Action("Call"),
			humanizer.Addr(c.To),
			humanizer.Label("with data"),
			humanizer.Text(hexutil.Encode(c.Data)),
		)), nil, nil
	}

	selector := hexSelector(c.Data)
	if sig, known := meta.Signature(selector); known {
		return withValue(c, seq(humanizer.Action("Call "+sig), humanizer.Label("from"), humanizer.Addr(c.To))), nil, nil
	}
	res := withValue(c, seq(humanizer.UnknownAction(), humanizer.Label("to"), humanizer.Addr(c.To)))
	if meta.SignatureFailed(selector) {
		return res, nil, &humanizer.Warning{
			Content: fmt.Sprintf("Unknown function selector %s", selector),
			Level:   humanizer.WarningCaution,
		}
	}
	req := humanizer.SelectorRequest(selector)
	return res, &req, nil
}

func withValue(c humanizer.IrCall, res []humanizer.Visualization) []humanizer.Visualization {
	if c.ValueOrZero().Sign() == 0 {
		return res
	}
	return append(res, humanizer.Label("and Send"), humanizer.Token(zeroAddress, c.Value))
}

func hexSelector(data []byte) string {
	return hcommon.DataSelector(data)
}
