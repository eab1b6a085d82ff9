// Package telemetry reports orchestrator spans as progress messages.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/core/ports"
	"go.trai.ch/hekit/internal/ui/style"
)

// Bridge implements sdktrace.SpanProcessor to turn stage spans into log lines.
type Bridge struct {
	logger ports.Logger
}

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart announces a stage that is about to run.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	attrs := attrMap(s.Attributes())
	stage, instance := attrs[domain.SpanAttrStage], attrs[domain.SpanAttrInstance]
	if stage.Type() == attribute.INVALID || instance.Type() == attribute.INVALID {
		return
	}
	b.logger.Info(fmt.Sprintf("%s %s %s", style.Circle, stage.AsString(), instance.AsString()))
}

// OnEnd reports how an instance or stage finished.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	attrs := attrMap(s.Attributes())
	instance := attrs[domain.SpanAttrInstance]
	if instance.Type() == attribute.INVALID {
		return
	}

	subject := instance.AsString()
	if stage := attrs[domain.SpanAttrStage]; stage.Type() != attribute.INVALID {
		subject = stage.AsString() + " " + subject
	}

	status := domain.NormalizeStepStatus(attrs[domain.SpanAttrStatus].AsString())
	if s.Status().Code == codes.Error {
		status = domain.StepStatusFailed
	}

	switch status {
	case domain.StepStatusSkipped:
		b.logger.Info(fmt.Sprintf("%s %s skipped", style.Skip, subject))
	case domain.StepStatusFailed:
		msg := fmt.Sprintf("%s failed", subject)
		if code := attrs[domain.SpanAttrExitCode]; code.Type() == attribute.INT64 {
			msg += fmt.Sprintf(" (exit code %d)", code.AsInt64())
		}
		b.logger.Warn(msg)
	case domain.StepStatusCompleted:
		if _, isStage := attrs[domain.SpanAttrStage]; isStage {
			b.logger.Info(fmt.Sprintf("%s %s in %s", style.Check, subject, elapsed(s)))
		}
	default:
	}
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func attrMap(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func elapsed(s sdktrace.ReadOnlySpan) time.Duration {
	return s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
}
