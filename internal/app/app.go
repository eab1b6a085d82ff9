// Package app implements the application layer for hekit.
package app

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/hekit/internal/adapters/telemetry"
	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/core/ports"
	"go.trai.ch/hekit/internal/engine/orchestrator"
	"go.trai.ch/hekit/internal/engine/recipe"
	"go.trai.ch/hekit/internal/engine/substitute"
	"go.trai.ch/hekit/internal/ui/style"
	"go.trai.ch/zerr"
)

// TracerName is the instrumentation name of the orchestrator spans.
const TracerName = "hekit"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	recipeLoader ports.RecipeLoader
	store        ports.InstanceStore
	runner       ports.CommandRunner
	prompter     ports.Prompter
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	recipeLoader ports.RecipeLoader,
	store ports.InstanceStore,
	runner ports.CommandRunner,
	prompter ports.Prompter,
	log ports.Logger,
) *App {
	return &App{
		configLoader: configLoader,
		recipeLoader: recipeLoader,
		store:        store,
		runner:       runner,
		prompter:     prompter,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Recipe is the path of the recipe file.
	Recipe string
	// Upto is the last stage to run.
	Upto domain.Stage
	// Force repeats build and install even when they already succeeded.
	Force bool
	// RecipeArgs answers !key! placeholders.
	RecipeArgs map[string]string
	// ConfigPath selects the workspace config file. Empty means the default.
	ConfigPath string
	// PTY runs commands attached to a pseudo-terminal.
	PTY bool
}

// Run brings every instance of a recipe up to the requested stage.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	ws, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	doc, err := a.recipeLoader.Load(opts.Recipe)
	if err != nil {
		return err
	}

	if opts.PTY {
		if r, ok := a.runner.(interface{ SetPTY(bool) }); ok {
			r.SetPTY(true)
		} else {
			a.logger.Warn("pseudo-terminal mode is not supported by this runner")
		}
	}

	args := maps.Clone(opts.RecipeArgs)
	if args == nil {
		args = make(map[string]string)
	}

	engine := substitute.NewEngine(a.store, a.prompter)
	plan, err := recipe.NewParser(engine, a.store).Parse(doc, ws.RepoLocation, args)
	if err != nil {
		return err
	}

	tp := setupOTel(telemetry.NewBridge(a.logger))
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()

	orch := orchestrator.New(a.store, a.runner, a.logger, otel.Tracer(TracerName))
	if err := orch.Run(ctx, plan, opts.Upto, opts.Force); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("%s %s finished for %d instance(s)", style.Check, opts.Upto, plan.Len()))
	return nil
}

// ListOptions configuration for the List method.
type ListOptions struct {
	// Component restricts the listing to one component. Empty lists everything.
	Component string
	// ConfigPath selects the workspace config file. Empty means the default.
	ConfigPath string
}

// List returns the persisted instances and their recorded stage outcomes.
func (a *App) List(_ context.Context, opts ListOptions) ([]domain.InstanceRecord, error) {
	ws, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	records, err := a.store.List(ws.RepoLocation)
	if err != nil {
		return nil, err
	}
	if opts.Component == "" {
		return records, nil
	}

	filtered := make([]domain.InstanceRecord, 0, len(records))
	for _, r := range records {
		if r.Ref.Component == opts.Component {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// RemoveOptions configuration for the Remove method.
type RemoveOptions struct {
	Component string
	// Instance names the instance to delete. It is ignored when All is set.
	Instance string
	// All deletes every instance of Component.
	All bool
	// ConfigPath selects the workspace config file. Empty means the default.
	ConfigPath string
}

// Remove deletes instance trees from the repo.
func (a *App) Remove(ctx context.Context, opts RemoveOptions) error {
	ws, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	var refs []domain.InstanceRef
	if opts.All {
		if !domain.IsPathElement(opts.Component) {
			return zerr.With(zerr.Wrap(domain.ErrInvalidInstanceRef, "cannot remove instances"), "component", opts.Component)
		}
		records, err := a.List(ctx, ListOptions{Component: opts.Component, ConfigPath: opts.ConfigPath})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return zerr.With(zerr.Wrap(domain.ErrInstanceNotFound, "nothing to remove"), "component", opts.Component)
		}
		for _, r := range records {
			refs = append(refs, r.Ref)
		}
	} else {
		ref := domain.InstanceRef{Root: ws.RepoLocation, Component: opts.Component, Name: opts.Instance}
		if err := ref.Validate(); err != nil {
			return err
		}
		refs = append(refs, ref)
	}

	var errs error
	for _, ref := range refs {
		if err := a.store.Remove(ref); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		a.logger.Info(fmt.Sprintf("removed %s", ref))
	}
	return errs
}

// UseJSON switches the logger to JSON output when it supports it.
func (a *App) UseJSON(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// setupOTel configures the OpenTelemetry SDK with the progress bridge.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}
