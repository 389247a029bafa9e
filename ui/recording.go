package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Entry records a single UI method call for test assertions.
type Entry struct {
	Method string
	Value  string
}

// sharedState is shared by a RecordingUI and every child made by Indent.
type sharedState struct {
	entries []Entry
	tables  [][][][]string
	buf     *bytes.Buffer
}

// RecordingUI implements UI for tests. Output is captured in an entry log
// that can be inspected with [RecordingUI.Entries] and
// [RecordingUI.HasMessage].
type RecordingUI struct {
	shared      *sharedState
	indentLevel int
}

func NewRecordingUI() *RecordingUI {
	return &RecordingUI{
		shared: &sharedState{buf: &bytes.Buffer{}},
	}
}

func (r *RecordingUI) record(method, value string) {
	r.shared.entries = append(r.shared.entries, Entry{Method: method, Value: value})
}

// Style returns the plain text of t.
func (r *RecordingUI) Style(t StyledText) string {
	return t.Text
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) {
	r.record("Section", title)
}

func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+": "+row[1])
	}
}

// TableWithGroups records every row as "cell | cell" and keeps the groups
// for [RecordingUI.Tables].
func (r *RecordingUI) TableWithGroups(headers []string, groups [][][]string) {
	r.shared.tables = append(r.shared.tables, groups)
	for _, g := range groups {
		for _, row := range g {
			r.record("Table", strings.Join(row, " | "))
		}
	}
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

func (r *RecordingUI) Indent() UI {
	return &RecordingUI{
		shared:      r.shared,
		indentLevel: r.indentLevel + 1,
	}
}

// Writer returns a writer that appends to the internal buffer.
func (r *RecordingUI) Writer() io.Writer {
	return r.shared.buf
}

// --- Test helpers ---

func (r *RecordingUI) Entries() []Entry {
	return r.shared.entries
}

// Messages returns the values recorded by method, in order.
func (r *RecordingUI) Messages(method string) []string {
	var out []string
	for _, e := range r.shared.entries {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}

// Tables returns the groups of every table rendered so far.
func (r *RecordingUI) Tables() [][][][]string {
	return r.shared.tables
}

// HasMessage reports whether any recorded value contains substr, ignoring
// case.
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, e := range r.shared.entries {
		if strings.Contains(strings.ToLower(e.Value), lower) {
			return true
		}
	}
	return false
}

// Output returns everything written to Writer().
func (r *RecordingUI) Output() string {
	return r.shared.buf.String()
}
