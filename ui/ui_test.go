package ui

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/humanizer/humanizer"
)

var bob = common.HexToAddress("0x000000000000000000000000000000000000b0b0")

func TestStyleVisualization(t *testing.T) {
	assert.Equal(t, SeverityCritical, StyleVisualization(humanizer.Action("Send")).Severity)
	assert.Equal(t, SeverityError, StyleVisualization(humanizer.UnknownAction()).Severity)
	assert.Equal(t, SeverityInfo, StyleVisualization(humanizer.Addr(bob)).Severity)

	named := humanizer.Addr(bob)
	named.Name = "Bob"
	st := StyleVisualization(named)
	assert.Equal(t, SeveritySuccess, st.Severity)
	assert.Equal(t, bob.Hex()+" (Bob)", st.Text)
}

func TestCallLineSkipsHiddenElements(t *testing.T) {
	deadline := humanizer.Deadline(big.NewInt(1))
	deadline.IsHidden = true
	c := humanizer.IrCall{
		Call:              humanizer.Call{To: bob},
		FullVisualization: []humanizer.Visualization{humanizer.Action("Swap"), deadline},
	}
	assert.Equal(t, "Swap", CallLine(NewRecordingUI(), c))
}

func TestCallLineFallsBackToRawCall(t *testing.T) {
	c := humanizer.IrCall{Call: humanizer.Call{To: bob, Data: []byte{0x01, 0x02}}}
	assert.Equal(t, humanizer.RawCallText(c.Call), CallLine(NewRecordingUI(), c))
}

func TestPrintCallsGroupsWarnings(t *testing.T) {
	u := NewRecordingUI()
	calls := []humanizer.IrCall{
		{
			Call:              humanizer.Call{To: bob},
			FullVisualization: []humanizer.Visualization{humanizer.UnknownAction(), humanizer.Label("to"), humanizer.Addr(bob)},
			Warnings:          []humanizer.Warning{{Content: "Unknown function selector 0xd96a094a", Level: humanizer.WarningCaution}},
		},
		{
			Call:              humanizer.Call{To: bob},
			FullVisualization: []humanizer.Visualization{humanizer.Action("Send"), humanizer.Label("to"), humanizer.Addr(bob)},
		},
	}
	PrintCalls(u, calls)

	tables := u.Tables()
	require.Len(t, tables, 1)
	require.Len(t, tables[0], 2)
	assert.Equal(t, [][]string{
		{"1", "Unknown action to " + bob.Hex()},
		{"!", "Unknown function selector 0xd96a094a"},
	}, tables[0][0])
	assert.Equal(t, [][]string{{"2", "Send to " + bob.Hex()}}, tables[0][1])
}

func TestTerminalTableAligns(t *testing.T) {
	buf := &bytes.Buffer{}
	u := NewWriterUI(buf, false)
	u.TableWithGroups([]string{"#", "Action"}, [][][]string{
		{{"1", "Send 1 ETH"}},
		{{"2", "Wrap"}},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	width := len([]rune(ansi.Strip(lines[0])))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(ansi.Strip(l))), l)
	}
	assert.Contains(t, ansi.Strip(buf.String()), "│ Send 1 ETH │")
}

func TestTerminalIndentedWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	u := NewWriterUI(buf, false).Indent()
	_, err := u.Writer().Write([]byte("a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, "  a\n  b\n", buf.String())
}

func TestTerminalKeyValue(t *testing.T) {
	buf := &bytes.Buffer{}
	NewWriterUI(buf, false).KeyValue([][2]string{{"Chain", "mainnet"}, {"Iterations", "2"}})
	assert.Equal(t, "Chain       mainnet\nIterations  2\n", buf.String())
}
