// Package recipe turns a recipe document into an ordered plan of instance specs.
package recipe

import (
	"context"
	"errors"
	"iter"
	"strings"

	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver expands the placeholders of one instance record.
type Resolver interface {
	Resolve(
		ctx context.Context,
		root, component string,
		attrs domain.Attributes,
		userArgs map[string]string,
	) (domain.Attributes, error)
}

// Parser validates recipe documents and orders their instances.
type Parser struct {
	resolver Resolver
	specs    ports.SpecReader
}

// NewParser creates a Parser.
func NewParser(resolver Resolver, specs ports.SpecReader) *Parser {
	return &Parser{resolver: resolver, specs: specs}
}

type pendingInstance struct {
	component string
	skip      bool
	attrs     domain.Attributes
}

// Plan is a validated recipe with its instances in dependency order.
type Plan struct {
	parser    *Parser
	root      string
	userArgs  map[string]string
	order     []string
	instances []pendingInstance
}

// Parse validates every instance record of doc and sorts the components so
// that dependencies come first. Nothing is substituted yet.
func (p *Parser) Parse(doc *domain.RecipeDocument, root string, userArgs map[string]string) (*Plan, error) {
	if userArgs == nil {
		userArgs = make(map[string]string)
	}

	graph := domain.NewGraph()
	byComponent := make(map[string][]pendingInstance, len(doc.Components))

	for _, c := range doc.Components {
		if !domain.IsPathElement(c.Name) {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidSpec, "component must be a single path element"), "field", "component")
			return nil, zerr.With(err, "component", c.Name)
		}
		var deps []string
		for _, raw := range c.Instances {
			attrs, skip, err := domain.ValidateRecord(c.Name, raw)
			if err != nil {
				return nil, err
			}
			byComponent[c.Name] = append(byComponent[c.Name], pendingInstance{
				component: c.Name,
				skip:      skip,
				attrs:     attrs,
			})
			deps = append(deps, dependencies(c.Name, attrs)...)
		}
		graph.AddComponent(c.Name, deps...)
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}

	plan := &Plan{
		parser:   p,
		root:     root,
		userArgs: userArgs,
		order:    graph.Order(),
	}
	for name := range graph.Walk() {
		plan.instances = append(plan.instances, byComponent[name]...)
	}
	return plan, nil
}

// dependencies returns the components referenced from attrs, other than component itself.
func dependencies(component string, attrs domain.Attributes) []string {
	var deps []string
	scan := func(s string) {
		for _, ref := range domain.DepRefs(s) {
			if ref.Component != component {
				deps = append(deps, ref.Component)
			}
		}
	}
	for _, key := range attrs.Keys() {
		v := attrs[key]
		if v.IsList() {
			for _, item := range v.Items() {
				scan(item)
			}
			continue
		}
		scan(v.Scalar())
	}
	return deps
}

// Components returns the component names in execution order.
func (pl *Plan) Components() []string {
	return append([]string(nil), pl.order...)
}

// Len returns the number of instances in the plan.
func (pl *Plan) Len() int {
	return len(pl.instances)
}

// Specs yields the resolved spec of every instance in execution order.
// Substitution is deferred until an instance is reached, so references to a
// dependency see the spec it persisted earlier in the run. Iteration stops at
// the first error.
func (pl *Plan) Specs(ctx context.Context) iter.Seq2[*domain.InstanceSpec, error] {
	return func(yield func(*domain.InstanceSpec, error) bool) {
		for _, inst := range pl.instances {
			spec, err := pl.expand(ctx, inst)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(spec, nil) {
				return
			}
		}
	}
}

// Preflight expands every instance once so that conflicts with persisted
// specs and substitution faults surface before any stage runs. Instances
// whose dependencies have not been set up yet cannot be checked and are
// left to Specs.
func (pl *Plan) Preflight(ctx context.Context) error {
	for _, inst := range pl.instances {
		_, err := pl.expand(ctx, inst)
		if err == nil ||
			errors.Is(err, domain.ErrDependencyNotFound) ||
			errors.Is(err, domain.ErrDependencyKeyNotFound) {
			continue
		}
		return err
	}
	return nil
}

func (pl *Plan) expand(ctx context.Context, inst pendingInstance) (*domain.InstanceSpec, error) {
	attrs, err := pl.parser.resolver.Resolve(ctx, pl.root, inst.component, inst.attrs, pl.userArgs)
	if err != nil {
		return nil, err
	}
	spec := domain.NewInstanceSpec(pl.root, inst.component, inst.skip, attrs)

	persisted, err := pl.parser.specs.ReadSpec(spec.Ref())
	if err != nil {
		return nil, err
	}
	if persisted == nil {
		return spec, nil
	}

	if diff := persisted.Diff(spec); len(diff) > 0 {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrSpecConflict, "cannot reuse instance"), "instance", spec.String()),
			"fields", strings.Join(diff, ", "),
		)
	}
	return spec, nil
}
