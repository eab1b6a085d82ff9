// Package builder drives the stages of a single instance.
package builder

import (
	"context"
	"fmt"

	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/core/ports"
	"go.trai.ch/zerr"
)

// ComponentBuilder pairs an immutable spec with the recorded status of its stages.
type ComponentBuilder struct {
	spec   *domain.InstanceSpec
	status domain.BuildStatus
	store  ports.InstanceStore
	runner ports.CommandRunner
	logger ports.Logger
}

// NewComponentBuilder loads the recorded status of spec and returns a builder for it.
func NewComponentBuilder(
	spec *domain.InstanceSpec,
	store ports.InstanceStore,
	runner ports.CommandRunner,
	logger ports.Logger,
) (*ComponentBuilder, error) {
	status, err := store.ReadStatus(spec.Ref())
	if err != nil {
		return nil, err
	}
	return &ComponentBuilder{
		spec:   spec,
		status: status,
		store:  store,
		runner: runner,
		logger: logger,
	}, nil
}

// Spec returns the instance spec.
func (b *ComponentBuilder) Spec() *domain.InstanceSpec {
	return b.spec
}

// Status returns a copy of the recorded stage status.
func (b *ComponentBuilder) Status() domain.BuildStatus {
	return b.status.Clone()
}

// Skip reports whether the instance is excluded from every stage.
func (b *ComponentBuilder) Skip() bool {
	return b.spec.Skip()
}

// AlreadySuccessful reports whether stage is recorded as successful.
func (b *ComponentBuilder) AlreadySuccessful(stage domain.Stage) bool {
	return b.status.Get(stage) == domain.Success
}

// Setup creates the instance directories, including every init_<stage>_dir,
// and persists the spec and the recorded status. It always runs and is safe
// to repeat.
func (b *ComponentBuilder) Setup(_ context.Context) (domain.Result, error) {
	ref := b.spec.Ref()
	dirs := make([]string, 0, len(domain.Stages))
	for _, st := range domain.Stages {
		dirs = append(dirs, b.spec.InitDir(st))
	}
	if err := b.store.Prepare(ref, dirs...); err != nil {
		return domain.Result{Success: false, Code: -1}, err
	}
	if err := b.store.WriteSpec(b.spec); err != nil {
		return domain.Result{Success: false, Code: -1}, err
	}
	if err := b.store.WriteStatus(ref, b.status); err != nil {
		return domain.Result{Success: false, Code: -1}, err
	}
	return domain.OK, nil
}

// Fetch runs the fetch stage.
func (b *ComponentBuilder) Fetch(ctx context.Context, force bool) (domain.Result, error) {
	return b.RunStage(ctx, domain.StageFetch, force)
}

// Build runs the build stage.
func (b *ComponentBuilder) Build(ctx context.Context, force bool) (domain.Result, error) {
	return b.RunStage(ctx, domain.StageBuild, force)
}

// Install runs the install stage.
func (b *ComponentBuilder) Install(ctx context.Context, force bool) (domain.Result, error) {
	return b.RunStage(ctx, domain.StageInstall, force)
}

// RunStage runs the pre hook in the instance directory, then the main command
// and the post hook in the stage directory. The first failing command marks
// the stage failed. A stage already recorded as successful is not run again
// unless force is set.
func (b *ComponentBuilder) RunStage(ctx context.Context, stage domain.Stage, force bool) (domain.Result, error) {
	if force {
		b.status.Reset(stage)
	}
	if b.AlreadySuccessful(stage) {
		return domain.OK, nil
	}

	res, runErr := b.runChain(ctx, stage)

	outcome := domain.Success
	if runErr != nil || !res.Success {
		outcome = domain.Failure
	}
	b.status.Set(stage, outcome)

	if err := b.store.WriteStatus(b.spec.Ref(), b.status); err != nil {
		if runErr != nil {
			return res, runErr
		}
		return domain.Result{Success: false, Code: -1}, err
	}
	return res, runErr
}

func (b *ComponentBuilder) runChain(ctx context.Context, stage domain.Stage) (domain.Result, error) {
	stageDir := b.spec.InitDir(stage)
	steps := []struct {
		phase domain.Phase
		dir   string
	}{
		{domain.PhasePre, b.spec.Ref().Dir()},
		{domain.PhaseMain, stageDir},
		{domain.PhasePost, stageDir},
	}

	for _, step := range steps {
		line := b.spec.Hook(stage, step.phase)
		if line == "" {
			continue
		}

		key := domain.HookKey(stage, step.phase)
		b.logger.Info(fmt.Sprintf("%s %s: %s", b.spec, key, line))

		res, err := b.runner.Run(ctx, domain.Command{Line: line, Dir: step.dir})
		if err != nil {
			return res, zerr.With(zerr.With(err, "instance", b.spec.String()), "function", key)
		}
		if !res.Success {
			return res, nil
		}
	}
	return domain.OK, nil
}
