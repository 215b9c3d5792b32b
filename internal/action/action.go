// Package action defines the outcome every user-triggered meshkit operation
// returns. Actions never return errors; failures and refusals become
// outcomes with a short reason suitable for display.
package action

import "fmt"

// Status is the terminal state of an action.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Outcome is the structured result of an action.
type Outcome struct {
	Status Status `json:"status" yaml:"status"`
	// Reason is the user-facing status message.
	Reason string `json:"reason" yaml:"reason"`
	// Items lists what the action produced or touched, such as written
	// files or renamed elements.
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`
}

// Succeeded returns a successful outcome.
func Succeeded(reason string, items ...string) Outcome {
	return Outcome{Status: StatusSucceeded, Reason: reason, Items: items}
}

// Cancelled returns an outcome for an action refused before any mutation.
func Cancelled(reason string) Outcome {
	return Outcome{Status: StatusCancelled, Reason: reason}
}

// Cancelledf is Cancelled with a formatted reason.
func Cancelledf(format string, args ...any) Outcome {
	return Cancelled(fmt.Sprintf(format, args...))
}

// Failed returns an outcome for an action that started and did not finish.
// Items carries whatever completed before the failure.
func Failed(reason string, items ...string) Outcome {
	return Outcome{Status: StatusFailed, Reason: reason, Items: items}
}

// OK reports whether the action succeeded.
func (o Outcome) OK() bool {
	return o.Status == StatusSucceeded
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s: %s", o.Status, o.Reason)
}
