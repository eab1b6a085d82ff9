// Package substitute resolves the placeholders of an instance record.
//
// Three placeholder forms are recognized inside attribute strings:
//
//	%key%                    a sibling attribute of the same instance
//	!key!                    a recipe argument, asked for interactively when absent
//	$component/instance/key$ an attribute of another instance's persisted spec
//
// Attributes named init_* and export_* are additionally prefixed with the
// instance directory <root>/<component>/<name>/.
package substitute

import (
	"context"
	"slices"
	"strings"

	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine resolves instance records against recipe arguments and persisted specs.
type Engine struct {
	specs    ports.SpecReader
	prompter ports.Prompter
}

// NewEngine creates an Engine. prompter may be nil, in which case a missing
// recipe argument is an error.
func NewEngine(specs ports.SpecReader, prompter ports.Prompter) *Engine {
	return &Engine{specs: specs, prompter: prompter}
}

// Resolve returns a copy of attrs with every placeholder replaced. Answers
// obtained from the prompter are stored in userArgs for later instances.
func (e *Engine) Resolve(
	ctx context.Context,
	root, component string,
	attrs domain.Attributes,
	userArgs map[string]string,
) (domain.Attributes, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := &resolver{
		engine:    e,
		root:      root,
		component: component,
		raw:       attrs,
		userArgs:  userArgs,
		done:      make(domain.Attributes, len(attrs)),
		deps:      make(map[domain.InstanceRef]*domain.InstanceSpec),
	}

	// name defines the instance directory, so it goes first.
	keys := attrs.Keys()
	if i := slices.Index(keys, domain.AttrName); i > 0 {
		keys = append([]string{domain.AttrName}, slices.Delete(keys, i, i+1)...)
	}

	for _, key := range keys {
		if _, err := r.resolve(key); err != nil {
			return nil, zerr.With(err, "component", component)
		}
	}
	return r.done, nil
}

// resolver holds the state of one Resolve call.
type resolver struct {
	engine    *Engine
	root      string
	component string
	raw       domain.Attributes
	userArgs  map[string]string
	done      domain.Attributes
	active    []string
	deps      map[domain.InstanceRef]*domain.InstanceSpec
}

func (r *resolver) resolve(key string) (domain.Value, error) {
	if v, ok := r.done[key]; ok {
		return v, nil
	}

	if i := slices.Index(r.active, key); i >= 0 {
		cycle := append(slices.Clone(r.active[i:]), key)
		return domain.Value{}, zerr.With(
			zerr.Wrap(domain.ErrSubstitutionCycle, "cannot resolve self-reference"),
			"cycle", strings.Join(cycle, " -> "),
		)
	}

	raw, ok := r.raw[key]
	if !ok {
		return domain.Value{}, zerr.With(zerr.Wrap(domain.ErrUnknownAttribute, "cannot resolve self-reference"), "key", key)
	}

	r.active = append(r.active, key)
	defer func() { r.active = r.active[:len(r.active)-1] }()

	v, err := r.resolveValue(key, raw)
	if err != nil {
		return domain.Value{}, err
	}
	if key == domain.AttrName && (v.IsList() || !domain.IsPathElement(v.Scalar())) {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidSpec, "name must be a single path element"), "field", domain.AttrName)
		return domain.Value{}, zerr.With(err, "name", v.TOML())
	}
	r.done[key] = v
	return v, nil
}

func (r *resolver) resolveValue(key string, raw domain.Value) (domain.Value, error) {
	if raw.IsList() {
		return raw.Map(func(item string) (string, error) {
			return r.resolveString(key, item)
		})
	}

	// A scalar that is exactly one reference to a list takes the list.
	if !domain.IsPathAttribute(key) {
		if tokens := domain.Tokenize(raw.Scalar()); len(tokens) == 1 && tokens[0].Kind != domain.Literal && tokens[0].Kind != domain.UserRef {
			return r.lookup(tokens[0])
		}
	}

	s, err := r.resolveString(key, raw.Scalar())
	if err != nil {
		return domain.Value{}, err
	}
	return domain.String(s), nil
}

// resolveString resolves one string. The result is not scanned again, so
// substituted text containing delimiters stays as it is.
func (r *resolver) resolveString(key, s string) (string, error) {
	var b strings.Builder

	if domain.IsPathAttribute(key) {
		dir, err := r.instanceDir()
		if err != nil {
			return "", err
		}
		b.WriteString(dir)
		b.WriteByte('/')
	}

	for _, tok := range domain.Tokenize(s) {
		if tok.Kind == domain.Literal {
			b.WriteString(tok.Text)
			continue
		}
		if tok.Kind == domain.UserRef {
			v, err := r.userArg(tok.Key)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
			continue
		}

		v, err := r.lookup(tok)
		if err != nil {
			return "", err
		}
		if v.IsList() {
			return "", zerr.With(
				zerr.With(zerr.Wrap(domain.ErrListEmbedding, "cannot embed list value in a string"), "placeholder", tok.Text),
				"field", key,
			)
		}
		b.WriteString(v.Scalar())
	}
	return b.String(), nil
}

// lookup resolves a self or dependency reference.
func (r *resolver) lookup(tok domain.Token) (domain.Value, error) {
	if tok.Kind == domain.SelfRef {
		return r.resolve(tok.Key)
	}

	ref := domain.InstanceRef{Root: r.root, Component: tok.Component, Name: tok.Instance}
	spec, ok := r.deps[ref]
	if !ok {
		var err error
		spec, err = r.engine.specs.ReadSpec(ref)
		if err != nil {
			return domain.Value{}, err
		}
		if spec == nil {
			return domain.Value{}, zerr.With(
				zerr.Wrap(domain.ErrDependencyNotFound, "cannot resolve dependency reference"),
				"dependency", ref.String(),
			)
		}
		r.deps[ref] = spec
	}

	v, ok := spec.Get(tok.Key)
	if !ok {
		return domain.Value{}, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrDependencyKeyNotFound, "cannot resolve dependency reference"), "dependency", ref.String()),
			"key", tok.Key,
		)
	}
	return v, nil
}

func (r *resolver) userArg(key string) (string, error) {
	if v, ok := r.userArgs[key]; ok {
		return v, nil
	}
	if r.engine.prompter == nil {
		return "", zerr.With(zerr.Wrap(domain.ErrMissingRecipeArg, "no value given"), "key", key)
	}

	v, err := r.engine.prompter.Prompt(key)
	if err != nil {
		return "", err
	}
	if r.userArgs != nil {
		r.userArgs[key] = v
	}
	return v, nil
}

func (r *resolver) instanceDir() (string, error) {
	name, err := r.resolve(domain.AttrName)
	if err != nil {
		return "", err
	}
	ref := domain.InstanceRef{Root: r.root, Component: r.component, Name: name.Scalar()}
	return ref.Dir(), nil
}
