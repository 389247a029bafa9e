package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit   = "  "
	sectionWidth = 60
)

// TerminalUI writes coloured output to a terminal. Indentation is tracked as
// a level count; each level adds two spaces.
type TerminalUI struct {
	indentLevel int
	out         io.Writer
	isTerminal  bool
	au          aurora.Aurora
}

// NewTerminalUI writes to os.Stdout. Colours and the spinner are enabled
// when stdout is a real terminal.
func NewTerminalUI() *TerminalUI {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	return NewWriterUI(os.Stdout, isTerminal)
}

// NewWriterUI writes to out, with colours only when colors is set.
func NewWriterUI(out io.Writer, colors bool) *TerminalUI {
	return &TerminalUI{
		out:        out,
		isTerminal: colors,
		au:         aurora.NewAurora(colors),
	}
}

func (u *TerminalUI) prefix() string {
	return strings.Repeat(indentUnit, u.indentLevel)
}

func (u *TerminalUI) writeLine(line string) {
	fmt.Fprintf(u.out, "%s%s\n", u.prefix(), line)
}

func (u *TerminalUI) Style(t StyledText) string {
	switch t.Severity {
	case SeveritySuccess:
		return u.au.Green(t.Text).String()
	case SeverityWarn:
		return u.au.Yellow(t.Text).String()
	case SeverityError:
		return u.au.Red(t.Text).String()
	case SeverityCritical:
		return u.au.Bold(t.Text).String()
	default:
		return t.Text
	}
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.writeLine(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.writeLine(u.au.Green(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.writeLine(u.au.Yellow(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.writeLine(u.au.Red(fmt.Sprintf(format, args...)).String())
}

// Section prints a separator line centred around the title.
//
//	===== Operation 1f0c... on mainnet =====
func (u *TerminalUI) Section(title string) {
	titled := " " + title + " "
	bars := sectionWidth - runewidth.StringWidth(titled)
	if bars < 6 {
		bars = 6
	}
	left := bars / 2
	right := bars - left
	line := strings.Repeat("=", left) + titled + strings.Repeat("=", right)
	fmt.Fprintf(u.out, "\n%s%s\n\n", u.prefix(), line)
}

// KeyValue pads the label column to the longest label so values line up.
func (u *TerminalUI) KeyValue(rows [][2]string) {
	if len(rows) == 0 {
		return
	}
	maxLabel := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r[0]); w > maxLabel {
			maxLabel = w
		}
	}
	p := u.prefix()
	for _, r := range rows {
		fmt.Fprintf(u.out, "%s%s  %s\n", p, runewidth.FillRight(r[0], maxLabel), r[1])
	}
}

// TableWithGroups aligns every column across all groups.
func (u *TerminalUI) TableWithGroups(headers []string, groups [][][]string) {
	if len(groups) == 0 {
		return
	}
	for _, line := range newBoxTable(headers, groups).lines(headers, groups) {
		u.writeLine(line)
	}
}

// boxTable draws rows in box-drawing borders. Cell widths ignore ANSI
// codes.
type boxTable struct {
	widths []int
	border lipgloss.Style
}

func newBoxTable(headers []string, groups [][][]string) *boxTable {
	t := &boxTable{border: lipgloss.NewStyle().Foreground(lipgloss.Color("240"))}
	t.fit(headers)
	for _, g := range groups {
		for _, row := range g {
			t.fit(row)
		}
	}
	return t
}

func visibleWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

func (t *boxTable) fit(row []string) {
	for i, cell := range row {
		if i == len(t.widths) {
			t.widths = append(t.widths, 0)
		}
		t.widths[i] = max(t.widths[i], visibleWidth(cell))
	}
}

func (t *boxTable) rule(left, mid, right string) string {
	segs := make([]string, len(t.widths))
	for i, w := range t.widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return t.border.Render(left + strings.Join(segs, mid) + right)
}

func (t *boxTable) row(cells []string) string {
	bar := t.border.Render("│")
	var b strings.Builder
	b.WriteString(bar)
	for i, w := range t.widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(" " + cell + strings.Repeat(" ", w-visibleWidth(cell)) + " ")
		b.WriteString(bar)
	}
	return b.String()
}

func (t *boxTable) lines(headers []string, groups [][][]string) []string {
	res := []string{t.rule("┌", "┬", "┐")}
	if len(headers) > 0 {
		res = append(res, t.row(headers), t.rule("├", "┼", "┤"))
	}
	for i, g := range groups {
		if i > 0 {
			res = append(res, t.rule("├", "┼", "┤"))
		}
		for _, r := range g {
			res = append(res, t.row(r))
		}
	}
	return append(res, t.rule("└", "┴", "┘"))
}

// Spinner clears its line on stop. On non-terminal outputs only msg is
// printed.
func (u *TerminalUI) Spinner(msg string) func() {
	if !u.isTerminal {
		u.writeLine(msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Prefix = u.prefix()
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
	}
}

func (u *TerminalUI) Indent() UI {
	return &TerminalUI{
		indentLevel: u.indentLevel + 1,
		out:         u.out,
		isTerminal:  u.isTerminal,
		au:          u.au,
	}
}

func (u *TerminalUI) Writer() io.Writer {
	if u.indentLevel == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.prefix())
}
