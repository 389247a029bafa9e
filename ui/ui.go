package ui

import (
	"encoding/json"
	"io"
)

// Severity classifies the visual weight of a piece of inline text. The print
// layer maps each value to a terminal style; data consumers (JSON, tests)
// see plain text.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green, resolved data
	SeverityWarn                     // yellow, needs attention
	SeverityError                    // red, unknown
	SeverityCritical                 // bold, the action of a call
)

// StyledText pairs a plain string with a Severity annotation. It marshals as
// the plain Text string.
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI is the output surface of the cli commands.
//
//   - Production code uses TerminalUI (writes to os.Stdout)
//   - Tests use RecordingUI (captures all output)
type UI interface {
	// Style returns the text from t coloured according to its Severity.
	// Without colours the plain text is returned unchanged.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error does NOT exit or return an error; callers decide what to do next.
	Error(format string, args ...any)

	// Section writes a separator centred around title.
	Section(title string)

	// KeyValue renders an aligned 2-column block.
	KeyValue(rows [][2]string)

	// TableWithGroups renders a bordered table where each group of rows is
	// separated from the next by a divider. An empty headers slice renders
	// no header row.
	TableWithGroups(headers []string, groups [][][]string)

	// Spinner starts an animated spinner and returns its stop function. In
	// RecordingUI and non-terminal contexts only msg is written.
	Spinner(msg string) func()

	// Indent returns a child UI one level deeper sharing the same writer.
	Indent() UI

	// Writer returns an io.Writer that prepends the current indentation to
	// every line.
	Writer() io.Writer
}
