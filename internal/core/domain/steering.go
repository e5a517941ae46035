package domain

import (
	"fmt"
	"math"
	"time"
)

// Steerable parameter labels. The dispatcher matches on these names.
const (
	ParamMoleculeVisible = "Molecule visible?"
	ParamBondsVisible    = "Bonds visible?"
	ParamOrthoslice      = "Orthoslice?"
	ParamCutPlane        = "Cut-plane?"

	// IsoParamPrefix starts every isosurface label, e.g. "Iso 0 value".
	IsoParamPrefix = "Iso"
)

// IsoVisibleParam is the visibility toggle label for isosurface i.
func IsoVisibleParam(i int) string {
	return fmt.Sprintf("%s %d visible?", IsoParamPrefix, i)
}

// IsoValueParam is the isovalue label for isosurface i.
func IsoValueParam(i int) string {
	return fmt.Sprintf("%s %d value", IsoParamPrefix, i)
}

// ParameterKind identifies how a steered value is interpreted.
type ParameterKind string

// Available parameter kinds.
const (
	// ParameterInt is an integer value; the toggles use 0 and 1.
	ParameterInt ParameterKind = "int"

	// ParameterDouble is a floating-point value.
	ParameterDouble ParameterKind = "double"
)

// Parameter is an externally steerable value.
type Parameter struct {
	// Name is the unique label shown to the steering client.
	Name string

	// Kind controls whether Value is treated as an integer.
	Kind ParameterKind

	// Value is the current value.
	Value float64

	// Min and Max bound the accepted values.
	Min float64
	Max float64

	// Changed is set when a poll applied a new value and cleared once consumed.
	Changed bool
}

// InBounds reports whether v is acceptable for this parameter.
func (p Parameter) InBounds(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	return v >= p.Min && v <= p.Max
}

// Bool interprets the value as a toggle.
func (p Parameter) Bool() bool {
	return p.Value == 1
}

// ToggleParameter builds an int parameter bounded to [0, 1].
func ToggleParameter(name string, on bool) Parameter {
	v := 0.0
	if on {
		v = 1
	}
	return Parameter{Name: name, Kind: ParameterInt, Value: v, Min: 0, Max: 1}
}

// ParameterChange is a new value reported by a steering source.
type ParameterChange struct {
	Name  string
	Value float64
}

// Command is an instruction from the steering client.
type Command string

// Supported commands.
const (
	// CommandStop asks the viewer to close its window.
	CommandStop Command = "stop"
)

// PollStatus is the status code returned by a steering source poll.
type PollStatus int

// Poll status codes.
const (
	PollSuccess PollStatus = iota
	PollFailed
)

// PollResult is everything one poll of the steering source reported.
// Changes are in the order the source reported them.
type PollResult struct {
	Status   PollStatus
	Changes  []ParameterChange
	Commands []Command
}

// SessionState is the steering handshake state.
type SessionState int

// Handshake states, in the only order they occur.
const (
	StateRunning SessionState = iota
	StateShutdownRequested
	StateWorkerExited
)

// String returns the state name.
func (s SessionState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateShutdownRequested:
		return "shutdown-requested"
	case StateWorkerExited:
		return "worker-exited"
	default:
		return "unknown"
	}
}

// EventKind classifies a steering journal entry.
type EventKind string

// Journal event kinds.
const (
	EventParameterChanged EventKind = "parameter_changed"
	EventCommand          EventKind = "command"
	EventPollFailed       EventKind = "poll_failed"
	EventIgnored          EventKind = "ignored"
)

// SteeringSession is the journal record of one steered viewer run.
type SteeringSession struct {
	ID        string
	RhoPath   string
	XYZPath   string
	StartedAt time.Time
	EndedAt   time.Time
}

// SteeringEvent is one journalled occurrence within a session.
type SteeringEvent struct {
	SessionID string
	Iteration int
	Kind      EventKind
	Name      string
	Value     float64
	Detail    string
	At        time.Time
}
