// backend/internal/domain/order/status.go
package order

import (
	"errors"
	"strings"
)

// Status is the order's position in its fulfillment lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var ErrIllegalTransition = errors.New("order: illegal status transition")

// allowedTransitions is the guarded transition table.
// Linear pending → processing → shipped → delivered, plus a side transition to
// cancelled from any non-terminal state. Terminal states admit nothing.
// The source system accepted any jump (delivered → pending included); that gap
// is closed here on purpose.
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// ParseStatus parses a wire/status string into Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusProcessing:
		return StatusProcessing, true
	case StatusShipped:
		return StatusShipped, true
	case StatusDelivered:
		return StatusDelivered, true
	case StatusCancelled:
		return StatusCancelled, true
	}
	return "", false
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether s → next is a legal transition.
func (s Status) CanTransition(next Status) bool {
	for _, t := range allowedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// ========================================
// Display mapping (status tracker)
// ========================================

// Display is what the status tracker renders for a Status.
// Total, side-effect-free mapping; unknown values fall back to a neutral badge.
type Display struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Tone  string `json:"tone"`
}

var statusDisplays = map[Status]Display{
	StatusPending:    {Label: "Pendiente", Icon: "clock", Tone: "yellow"},
	StatusProcessing: {Label: "Procesando", Icon: "package", Tone: "blue"},
	StatusShipped:    {Label: "Enviado", Icon: "truck", Tone: "purple"},
	StatusDelivered:  {Label: "Entregado", Icon: "check-circle", Tone: "green"},
	StatusCancelled:  {Label: "Cancelado", Icon: "x-circle", Tone: "red"},
}

// DisplayFor returns the tracker badge for st.
func DisplayFor(st Status) Display {
	if d, ok := statusDisplays[st]; ok {
		return d
	}
	return Display{Label: string(st), Icon: "help-circle", Tone: "gray"}
}
