package domain

import "strings"

// Span attribute keys recorded for instances and stages.
const (
	SpanAttrInstance = "hekit.instance"
	SpanAttrStage    = "hekit.stage"
	SpanAttrStatus   = "hekit.status"
	SpanAttrExitCode = "hekit.exit_code"
)

// StepStatus is the reported state of an instance or one of its stages.
type StepStatus string

const (
	// StepStatusRunning indicates the step is executing.
	StepStatusRunning StepStatus = "running"
	// StepStatusCompleted indicates the step executed successfully.
	StepStatusCompleted StepStatus = "completed"
	// StepStatusFailed indicates the step failed.
	StepStatusFailed StepStatus = "failed"
	// StepStatusSkipped indicates the step did no work, because it already
	// succeeded or the instance is marked skip.
	StepStatusSkipped StepStatus = "skipped"
)

// IsTerminal reports whether the status is final.
func (s StepStatus) IsTerminal() bool {
	switch s {
	case StepStatusCompleted, StepStatusFailed, StepStatusSkipped:
		return true
	default:
		return false
	}
}

// NormalizeStepStatus converts a string to a StepStatus, defaulting to running if unknown.
func NormalizeStepStatus(s string) StepStatus {
	switch StepStatus(strings.ToLower(s)) {
	case StepStatusCompleted:
		return StepStatusCompleted
	case StepStatusFailed:
		return StepStatusFailed
	case StepStatusSkipped:
		return StepStatusSkipped
	default:
		return StepStatusRunning
	}
}
