package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/hekit/internal/core/domain"
)

func TestStepStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.StepStatus
		isTerminal bool
	}{
		{"Running", domain.StepStatusRunning, false},
		{"Completed", domain.StepStatusCompleted, true},
		{"Failed", domain.StepStatusFailed, true},
		{"Skipped", domain.StepStatusSkipped, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
		})
	}
}

func TestNormalizeStepStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.StepStatus
	}{
		{"completed", domain.StepStatusCompleted},
		{"FAILED", domain.StepStatusFailed},
		{"skipped", domain.StepStatusSkipped},
		{"unknown", domain.StepStatusRunning},
		{"", domain.StepStatusRunning},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NormalizeStepStatus(tt.input))
		})
	}
}
