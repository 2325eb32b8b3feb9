package cpu

import (
	"strings"
)

// State is the run state of the CPU.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_HALTED  = State(0) // halted
	STATE_RUNNING = State(1) // running
)

// Policy selects what the CPU does when it fetches an unknown opcode.
type Policy int

//go:generate go tool stringer -linecomment -type=Policy
const (
	POLICY_HALT = Policy(0) // halt
	POLICY_SKIP = Policy(1) // skip
)

// ParsePolicy returns the Policy named by text.
func ParsePolicy(text string) (policy Policy, err error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, policy = range []Policy{POLICY_HALT, POLICY_SKIP} {
		if policy.String() == text {
			return
		}
	}

	policy = POLICY_HALT
	err = ErrPolicyUnknown
	return
}
