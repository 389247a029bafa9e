package parsers

import (
	"fmt"
	"time"

	"github.com/tranvictor/humanizer/humanizer"
)

// Deadlines turns unix deadlines into text relative to now. Deadlines far
// enough away are hidden.
type Deadlines struct{}

func (Deadlines) Kind() humanizer.ParserKind { return humanizer.ParserDeadline }

func (Deadlines) Parse(_ humanizer.AccountOp, calls []humanizer.IrCall, _ *humanizer.Metadata, now time.Time) ([]humanizer.IrCall, []humanizer.FragmentRequest) {
	return mapElements(calls, func(_ humanizer.IrCall, v *humanizer.Visualization) {
		if v.Type != humanizer.TypeDeadline || v.Value == nil {
			return
		}
		if !v.Value.IsInt64() {
			// beyond int64 is "no deadline", e.g. 2^256-1
			v.Content, v.IsHidden = "", true
			return
		}
		v.Content, v.IsHidden = DeadlineText(v.Value.Int64(), now)
	}), nil
}

// DeadlineText describes a unix deadline relative to now. hidden is set when
// the deadline is too far away to matter.
func DeadlineText(deadline int64, now time.Time) (text string, hidden bool) {
	remaining := time.Unix(deadline, 0).Sub(now)
	switch {
	case remaining <= 0:
		return "already expired", false
	case remaining < DeadlineHideAfter:
		minutes := int(remaining / time.Minute)
		if minutes <= 1 {
			return "expires in 1 minute", false
		}
		return fmt.Sprintf("expires in %d minutes", minutes), false
	}
	return "", true
}
