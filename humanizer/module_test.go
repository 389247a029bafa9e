package humanizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendModule struct{}

func (sendModule) Kind() ModuleKind { return ModuleToken }

func (sendModule) Humanize(_ AccountOp, calls []IrCall, _ *Metadata) ([]IrCall, []FragmentRequest) {
	out := make([]IrCall, len(calls))
	for i, c := range calls {
		out[i] = c
		if IsUnknownVisualization(c.FullVisualization) {
			out[i] = c.WithVisualization(Action("Send"), Addr(c.To))
		}
	}
	return out, []FragmentRequest{TokenRequest(1, firstCall(calls).To), TokenRequest(1, firstCall(calls).To)}
}

func firstCall(calls []IrCall) Call {
	if len(calls) == 0 {
		return Call{}
	}
	return calls[0].Call
}

type panicModule struct{}

func (panicModule) Kind() ModuleKind { return ModuleASCII }

func (panicModule) Humanize(AccountOp, []IrCall, *Metadata) ([]IrCall, []FragmentRequest) {
	panic("boom")
}

type dropModule struct{}

func (dropModule) Kind() ModuleKind { return ModuleNft }

func (dropModule) Humanize(AccountOp, []IrCall, *Metadata) ([]IrCall, []FragmentRequest) {
	return nil, []FragmentRequest{SelectorRequest("0x12345678")}
}

func TestRunModulesSkipsPanickingModule(t *testing.T) {
	op := AccountOp{Account: weth, ChainID: 1, Calls: []Call{{To: other}}}
	ir, reqs := RunModules([]CallModule{panicModule{}, sendModule{}, dropModule{}}, op, NewIR(op), NewMetadata())

	require.Len(t, ir, 1)
	assert.Equal(t, "Send "+other.Hex(), RenderText(ir[0].Call, ir[0].FullVisualization))
	// requests of the module whose output was dropped are ignored too
	assert.Equal(t, []FragmentRequest{TokenRequest(1, other)}, reqs)
}

type hideParser struct{}

func (hideParser) Kind() ParserKind { return ParserDeadline }

func (hideParser) Parse(_ AccountOp, calls []IrCall, _ *Metadata, _ time.Time) ([]IrCall, []FragmentRequest) {
	out := CloneIR(calls)
	for i := range out {
		for j := range out[i].FullVisualization {
			if out[i].FullVisualization[j].Type == TypeLabel {
				out[i].FullVisualization[j].IsHidden = true
			}
		}
	}
	return out, nil
}

func TestRunParsersDoesNotTouchInput(t *testing.T) {
	in := []IrCall{{Call: Call{To: other}, FullVisualization: []Visualization{Action("Send"), Label("to"), Addr(other)}}}
	out, reqs := RunParsers([]Parser{hideParser{}}, AccountOp{}, in, NewMetadata(), time.Now())
	assert.Empty(t, reqs)
	assert.False(t, in[0].FullVisualization[1].IsHidden)
	assert.True(t, out[0].FullVisualization[1].IsHidden)
}

func TestIrCallWithWarningDeduplicates(t *testing.T) {
	w := Warning{Content: "careful", Level: WarningCaution}
	c := IrCall{}.WithWarning(w).WithWarning(w)
	assert.Equal(t, []Warning{w}, c.Warnings)
}

func TestCloneIRIsDeep(t *testing.T) {
	ir := []IrCall{{Call: Call{To: other}, FullVisualization: []Visualization{Token(other, nil)}}}
	clone := CloneIR(ir)
	clone[0].FullVisualization[0].Name = "changed"
	*clone[0].FullVisualization[0].Address = weth
	assert.Empty(t, ir[0].FullVisualization[0].Name)
	assert.Equal(t, other, *ir[0].FullVisualization[0].Address)
}

func TestIsUnknownVisualization(t *testing.T) {
	assert.True(t, IsUnknownVisualization(nil))
	assert.True(t, IsUnknownVisualization([]Visualization{UnknownAction(), Label("to")}))
	assert.False(t, IsUnknownVisualization([]Visualization{Action("Send")}))
}
