package trainer

import (
	"strings"

	"github.com/elliotchance/pie/v2"
)

type State int

const (
	AwaitingTag State = iota
	AwaitingKeywords
	AwaitingResponses
	Done
)

func (s State) String() string {
	switch s {
	case AwaitingTag:
		return "awaiting_tag"
	case AwaitingKeywords:
		return "awaiting_keywords"
	case AwaitingResponses:
		return "awaiting_responses"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

const Banner = "Training wizard 🧠  (Enter to cancel)"

type Result struct {
	Cancelled bool
	Tag       string
	Keywords  []string
	Responses []string
}

// Wizard collects a new intent one answer at a time.
type Wizard struct {
	state  State
	result Result
}

func New() *Wizard {
	return &Wizard{state: AwaitingTag}
}

func (w *Wizard) State() State {
	return w.state
}

func (w *Wizard) Prompt() string {
	switch w.state {
	case AwaitingTag:
		return "New intent tag: "
	case AwaitingKeywords:
		return "Keywords (comma-separated): "
	case AwaitingResponses:
		return "Responses (comma-separated): "
	default:
		return ""
	}
}

// Feed consumes one answer. It reports true once the wizard is finished,
// either cancelled by an empty tag or with all three answers collected.
func (w *Wizard) Feed(line string) (Result, bool) {
	line = strings.TrimSpace(line)

	switch w.state {
	case AwaitingTag:
		if line == "" {
			w.state = Done
			w.result.Cancelled = true
			return w.result, true
		}
		w.result.Tag = line
		w.state = AwaitingKeywords
	case AwaitingKeywords:
		w.result.Keywords = SplitList(line)
		w.state = AwaitingResponses
	case AwaitingResponses:
		w.result.Responses = SplitList(line)
		w.state = Done
		return w.result, true
	case Done:
		return w.result, true
	}

	return Result{}, false
}

// SplitList splits a comma-separated answer, trimming items and dropping empty ones.
func SplitList(line string) []string {
	items := pie.Map(strings.Split(line, ","), strings.TrimSpace)

	result := pie.Filter(items, func(item string) bool {
		return item != ""
	})
	if result == nil {
		return []string{}
	}

	return result
}
