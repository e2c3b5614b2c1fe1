package tasks

import "fmt"

// ProgressUpdate represents a progress event during a conversion.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	ParseLink Phase = iota
	ResolveSource
	MatchTargets
	Done
)

func (p Phase) String() string {
	switch p {
	case ParseLink:
		return "parse_link"
	case ResolveSource:
		return "resolve_source"
	case MatchTargets:
		return "match_targets"
	case Done:
		return "done"
	default:
		return ""
	}
}

func parseLinkUpdate(rawURL string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseLink,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Parsing link: %s", rawURL),
	}
}

func resolveSourceUpdate(name, kind, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving %s %s %s...", name, kind, id),
	}
}

func matchTargetUpdate(name string, step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MatchTargets,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Matching on %s...", step, total, name),
	}
}

func doneUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    total,
		Total:   total,
		Message: "Conversion complete",
	}
}
