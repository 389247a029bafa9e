// Package parsers enriches finished visualizations: native asset symbols,
// address names, token metadata and relative deadlines. Every parser is
// idempotent.
package parsers

import (
	"time"

	"github.com/tranvictor/humanizer/humanizer"
)

// DeadlineHideAfter is how far in the future a deadline may be before it is
// no longer worth mentioning.
const DeadlineHideAfter = time.Hour

// Default returns the parsers in execution order.
func Default() []humanizer.Parser {
	return []humanizer.Parser{
		Native{},
		Names{},
		Tokens{},
		Deadlines{},
	}
}

// mapElements applies fn to a copy of every element of every visualized
// call; fn edits the element in place.
func mapElements(calls []humanizer.IrCall, fn func(c humanizer.IrCall, v *humanizer.Visualization)) []humanizer.IrCall {
	out := make([]humanizer.IrCall, len(calls))
	for i, c := range calls {
		out[i] = c
		if c.FullVisualization == nil {
			continue
		}
		vis := humanizer.CloneVisualizations(c.FullVisualization)
		for j := range vis {
			fn(c, &vis[j])
		}
		out[i].FullVisualization = vis
	}
	return out
}
