package types

import "time"

// ProbeStatus is the typed outcome of a single network probe.
type ProbeStatus string

const (
	StatusOpen       ProbeStatus = "open"
	StatusClosed     ProbeStatus = "closed"
	StatusFiltered   ProbeStatus = "filtered"
	StatusError      ProbeStatus = "error"
	StatusResolved   ProbeStatus = "resolved"
	StatusUnresolved ProbeStatus = "unresolved"
)

// ReasonTimeout is set on ProbeOutcome.Reason when a probe exceeded its
// per-unit deadline.
const ReasonTimeout = "timeout"

// ProbeOutcome is the result of one probe against one unit of work
// (a port number or a candidate name). Produced exactly once per unit.
type ProbeOutcome struct {
	Unit    string        `json:"unit"`
	Status  ProbeStatus   `json:"status"`
	Payload string        `json:"payload,omitempty"`
	Reason  string        `json:"reason,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}
