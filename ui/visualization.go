package ui

import (
	"fmt"
	"strings"

	"github.com/tranvictor/humanizer/humanizer"
)

// StyleVisualization picks the style a visualization element is printed
// with: the action stands out, resolved names and tokens are green and
// anything still unknown is red.
func StyleVisualization(v humanizer.Visualization) StyledText {
	text := humanizer.RenderElement(v)
	switch {
	case v.IsUnknown:
		return StyledText{Text: text, Severity: SeverityError}
	case v.Type == humanizer.TypeAction:
		return StyledText{Text: text, Severity: SeverityCritical}
	case v.Type == humanizer.TypeToken && v.Token != nil,
		v.Type == humanizer.TypeAddress && v.Name != "",
		v.Type == humanizer.TypeNft && v.Name != "":
		return StyledText{Text: text, Severity: SeveritySuccess}
	case v.Type == humanizer.TypeDeadline:
		return StyledText{Text: text, Severity: SeverityWarn}
	}
	return StyledText{Text: text, Severity: SeverityInfo}
}

// CallLine renders c with every element styled by u. Like
// humanizer.RenderText it never returns an empty string.
func CallLine(u UI, c humanizer.IrCall) string {
	parts := []string{}
	for _, v := range c.FullVisualization {
		if v.IsHidden {
			continue
		}
		st := StyleVisualization(v)
		if strings.TrimSpace(st.Text) == "" {
			continue
		}
		parts = append(parts, u.Style(st))
	}
	if len(parts) == 0 {
		return humanizer.RawCallText(c.Call)
	}
	return strings.Join(parts, " ")
}

func WarningStyle(w humanizer.Warning) StyledText {
	if w.Level == humanizer.WarningAlert {
		return StyledText{Text: w.Content, Severity: SeverityError}
	}
	return StyledText{Text: w.Content, Severity: SeverityWarn}
}

// PrintCalls renders one table group per call: the call line followed by its
// warnings.
func PrintCalls(u UI, calls []humanizer.IrCall) {
	groups := make([][][]string, 0, len(calls))
	for i, c := range calls {
		group := [][]string{{fmt.Sprintf("%d", i+1), CallLine(u, c)}}
		for _, w := range c.Warnings {
			group = append(group, []string{"!", u.Style(WarningStyle(w))})
		}
		groups = append(groups, group)
	}
	u.TableWithGroups([]string{"#", "Action"}, groups)
}
