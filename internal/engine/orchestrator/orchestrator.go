// Package orchestrator runs the stages of every instance of a plan in
// dependency order.
package orchestrator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/core/ports"
	"go.trai.ch/hekit/internal/engine/builder"
	"go.trai.ch/hekit/internal/engine/recipe"
	"go.trai.ch/zerr"
)

// SetupFunction is the name of the stage function that prepares an instance.
const SetupFunction = "setup"

// StageFunc is one step of an instance chain.
type StageFunc struct {
	Name string
	Run  func(ctx context.Context) (domain.Result, error)
	// Satisfied reports whether the step has nothing left to do. It may be nil.
	Satisfied func() bool
}

// StagesFor returns a function yielding the chain of an instance: setup,
// then every stage up to and including upto. force applies to build and
// install only, the fetch stage is never repeated once it succeeded.
func StagesFor(upto domain.Stage, force bool) func(*builder.ComponentBuilder) []StageFunc {
	return func(b *builder.ComponentBuilder) []StageFunc {
		fns := []StageFunc{{Name: SetupFunction, Run: b.Setup}}
		for _, stage := range domain.Stages {
			if stage > upto {
				break
			}
			stageForce := force && stage != domain.StageFetch
			fns = append(fns, StageFunc{
				Name: stage.String(),
				Run: func(ctx context.Context) (domain.Result, error) {
					return b.RunStage(ctx, stage, stageForce)
				},
				Satisfied: func() bool {
					return !stageForce && b.AlreadySuccessful(stage)
				},
			})
		}
		return fns
	}
}

// ChainRun executes fns in order and stops at the first one that fails.
func ChainRun(ctx context.Context, fns []StageFunc) error {
	for _, fn := range fns {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := fn.Run(ctx)
		if err != nil {
			// Both the sentinel and the cause stay reachable through errors.Is.
			err = zerr.With(fmt.Errorf("%w: %w", domain.ErrBuildFailed, err), "function", fn.Name)
			return zerr.With(err, "exit_code", res.Code)
		}
		if !res.Success {
			err := zerr.With(zerr.Wrap(domain.ErrBuildFailed, "stage function exited unsuccessfully"), "function", fn.Name)
			return zerr.With(err, "exit_code", res.Code)
		}
	}
	return nil
}

// Orchestrator drives a plan through the stages of its instances.
type Orchestrator struct {
	store  ports.InstanceStore
	runner ports.CommandRunner
	logger ports.Logger
	tracer trace.Tracer
}

// New creates a new Orchestrator.
func New(
	store ports.InstanceStore,
	runner ports.CommandRunner,
	logger ports.Logger,
	tracer trace.Tracer,
) *Orchestrator {
	return &Orchestrator{
		store:  store,
		runner: runner,
		logger: logger,
		tracer: tracer,
	}
}

// Run brings every instance of plan up to stage upto. Instances marked skip
// are left untouched. The first failure aborts the rest of the plan.
func (o *Orchestrator) Run(ctx context.Context, plan *recipe.Plan, upto domain.Stage, force bool) error {
	if err := plan.Preflight(ctx); err != nil {
		return err
	}

	stages := StagesFor(upto, force)
	for spec, err := range plan.Specs(ctx) {
		if err != nil {
			return err
		}
		if err := o.runInstance(ctx, spec, stages); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) runInstance(
	ctx context.Context,
	spec *domain.InstanceSpec,
	stages func(*builder.ComponentBuilder) []StageFunc,
) error {
	ctx, span := o.tracer.Start(ctx, spec.String(),
		trace.WithAttributes(attribute.String(domain.SpanAttrInstance, spec.String())))
	defer span.End()

	if spec.Skip() {
		span.SetAttributes(attribute.String(domain.SpanAttrStatus, string(domain.StepStatusSkipped)))
		return nil
	}

	b, err := builder.NewComponentBuilder(spec, o.store, o.runner, o.logger)
	if err != nil {
		return o.fail(span, spec, err)
	}

	fns := stages(b)
	for i := range fns {
		fns[i] = o.traced(spec, fns[i])
	}
	if err := ChainRun(ctx, fns); err != nil {
		return o.fail(span, spec, err)
	}

	span.SetAttributes(attribute.String(domain.SpanAttrStatus, string(domain.StepStatusCompleted)))
	return nil
}

// traced wraps fn so that every call is recorded as a stage span.
func (o *Orchestrator) traced(spec *domain.InstanceSpec, fn StageFunc) StageFunc {
	run := fn.Run
	fn.Run = func(ctx context.Context) (domain.Result, error) {
		skipped := fn.Satisfied != nil && fn.Satisfied()

		ctx, span := o.tracer.Start(ctx, fn.Name,
			trace.WithAttributes(
				attribute.String(domain.SpanAttrInstance, spec.String()),
				attribute.String(domain.SpanAttrStage, fn.Name),
			))
		defer span.End()

		res, err := run(ctx)
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.String(domain.SpanAttrStatus, string(domain.StepStatusFailed)))
		case !res.Success:
			span.SetStatus(codes.Error, "exited unsuccessfully")
			span.SetAttributes(
				attribute.String(domain.SpanAttrStatus, string(domain.StepStatusFailed)),
				attribute.Int(domain.SpanAttrExitCode, res.Code),
			)
		case skipped:
			span.SetAttributes(attribute.String(domain.SpanAttrStatus, string(domain.StepStatusSkipped)))
		default:
			span.SetAttributes(attribute.String(domain.SpanAttrStatus, string(domain.StepStatusCompleted)))
		}
		return res, err
	}
	return fn
}

func (o *Orchestrator) fail(span trace.Span, spec *domain.InstanceSpec, err error) error {
	span.SetAttributes(attribute.String(domain.SpanAttrStatus, string(domain.StepStatusFailed)))
	span.SetStatus(codes.Error, err.Error())
	return zerr.With(err, "instance", spec.String())
}
