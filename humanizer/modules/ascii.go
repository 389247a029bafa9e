package modules

import (
	"github.com/tranvictor/humanizer/humanizer"
)

// ASCII recognizes call data that is a readable text message rather than an
// encoded function call.
type ASCII struct{}

func (ASCII) Kind() humanizer.ModuleKind { return humanizer.ModuleASCII }

func (ASCII) Humanize(_ humanizer.AccountOp, calls []humanizer.IrCall, meta *humanizer.Metadata) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return humanizeEach(calls, func(c humanizer.IrCall) []humanizer.Visualization {
		if len(c.Data) < 4 || !isReadable(c.Data) {
			return nil
		}
		if _, known := meta.Signature(hexSelector(c.Data)); known {
			return nil
		}
		return withValue(c, seq(humanizer.Action("Send this message to"), humanizer.Addr(c.To), humanizer.Text(string(c.Data))))
	}), nil
}

func isReadable(data []byte) bool {
	for _, b := range data {
		if b == '\n' || b == '\r' || b == '\t' {
			continue
		}
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}
