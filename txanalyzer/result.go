package txanalyzer

import (
	"github.com/tranvictor/humanizer/humanizer"
)

// Update is emitted after every iteration so a caller can show partial
// results while lookups are in flight. The last update has Final set.
type Update struct {
	OpID      string
	Iteration int
	Calls     []humanizer.IrCall
	Final     bool
}

// Result is the authoritative outcome of one Humanize run.
type Result struct {
	OpID  string
	Calls []humanizer.IrCall
	// Texts holds one rendered sentence per call, in call order.
	Texts      []string
	Iterations int
	// Pending counts fragment requests still unresolved when the run
	// stopped. It is zero for a converged run.
	Pending  int
	Metadata *humanizer.Metadata
}

// Warnings lists the distinct warnings of every call.
func (r *Result) Warnings() []humanizer.Warning {
	res := []humanizer.Warning{}
	seen := map[humanizer.Warning]bool{}
	for _, c := range r.Calls {
		for _, w := range c.Warnings {
			if !seen[w] {
				seen[w] = true
				res = append(res, w)
			}
		}
	}
	return res
}
