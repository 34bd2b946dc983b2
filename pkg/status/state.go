package status

import "fmt"

type State uint8

const (
	StateIdle   = State(0)
	StateActive = State(1)
	StateFailed = State(2)
)

func (this State) String() string {
	switch this {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("illegal-status-state-%d", this)
	}
}
