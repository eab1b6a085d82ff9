package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Fixed attribute names.
const (
	AttrName           = "name"
	AttrSkip           = "skip"
	AttrInitFetchDir   = "init_fetch_dir"
	AttrInitBuildDir   = "init_build_dir"
	AttrInitInstallDir = "init_install_dir"
)

// Attribute name prefixes that are rewritten into the instance directory.
const (
	InitPrefix   = "init_"
	ExportPrefix = "export_"
)

// Phase is the position of a command within a stage.
type Phase uint8

const (
	// PhasePre runs before the stage's main command.
	PhasePre Phase = iota
	// PhaseMain is the stage's main command.
	PhaseMain
	// PhasePost runs after the stage's main command.
	PhasePost
)

// HookKey returns the attribute name of a stage command, e.g. pre_build.
func HookKey(s Stage, p Phase) string {
	switch p {
	case PhasePre:
		return "pre_" + s.String()
	case PhasePost:
		return "post_" + s.String()
	default:
		return s.String()
	}
}

// InitDirKey returns the attribute naming a stage's working directory.
func InitDirKey(s Stage) string {
	return InitPrefix + s.String() + "_dir"
}

// fixedDefaults are merged beneath every raw instance record.
var fixedDefaults = func() map[string]string {
	d := map[string]string{
		AttrInitFetchDir:   "fetch",
		AttrInitBuildDir:   "build",
		AttrInitInstallDir: "build",
	}
	for _, s := range Stages {
		for _, p := range []Phase{PhasePre, PhaseMain, PhasePost} {
			d[HookKey(s, p)] = ""
		}
	}
	return d
}()

// IsFixedAttribute reports whether key is one of the attributes every instance carries.
func IsFixedAttribute(key string) bool {
	if key == AttrName || key == AttrSkip {
		return true
	}
	_, ok := fixedDefaults[key]
	return ok
}

// IsPathAttribute reports whether key is rewritten into the instance directory.
func IsPathAttribute(key string) bool {
	return strings.HasPrefix(key, InitPrefix) || strings.HasPrefix(key, ExportPrefix)
}

// Attributes maps attribute names to values. It never contains skip.
type Attributes map[string]Value

// Clone returns an independent copy.
func (a Attributes) Clone() Attributes {
	return maps.Clone(a)
}

// Keys returns the attribute names in sorted order.
func (a Attributes) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// RawInstance is one instance record as decoded from a TOML document.
type RawInstance map[string]any

// ComponentRecipe is the list of instance records declared for one component.
type ComponentRecipe struct {
	Name      string
	Instances []RawInstance
}

// RecipeDocument is a parsed recipe, components in declared order.
type RecipeDocument struct {
	Path       string
	Components []ComponentRecipe
}

// ValidateRecord merges the fixed defaults beneath raw and checks the
// invariants of an instance record: name present and non-empty, skip boolean,
// every other fixed attribute a string. Free-form attributes are normalized
// with ValueFromTOML.
func ValidateRecord(component string, raw RawInstance) (Attributes, bool, error) {
	invalid := func(field, reason string) error {
		err := zerr.Wrap(ErrInvalidSpec, reason)
		err = zerr.With(err, "component", component)
		return zerr.With(err, "field", field)
	}

	rawName, ok := raw[AttrName]
	if !ok {
		return nil, false, invalid(AttrName, "missing required field")
	}
	name, ok := rawName.(string)
	if !ok {
		return nil, false, invalid(AttrName, "field must be a string")
	}
	if name == "" {
		return nil, false, invalid(AttrName, "field must not be empty")
	}

	skip := false
	if rawSkip, ok := raw[AttrSkip]; ok {
		b, ok := rawSkip.(bool)
		if !ok {
			return nil, false, invalid(AttrSkip, "field must be a boolean")
		}
		skip = b
	}

	attrs := make(Attributes, len(raw)+len(fixedDefaults))
	for k, def := range fixedDefaults {
		attrs[k] = String(def)
	}
	attrs[AttrName] = String(name)

	for k, v := range raw {
		if k == AttrName || k == AttrSkip {
			continue
		}
		if _, fixed := fixedDefaults[k]; fixed {
			s, ok := v.(string)
			if !ok {
				return nil, false, invalid(k, "field must be a string")
			}
			attrs[k] = String(s)
			continue
		}
		val, err := ValueFromTOML(v)
		if err != nil {
			return nil, false, invalid(k, "field must be a string or a list of strings")
		}
		attrs[k] = val
	}

	return attrs, skip, nil
}

// InstanceSpec is the fully resolved attribute record for one instance.
type InstanceSpec struct {
	component string
	root      string
	skip      bool
	attrs     Attributes
}

// NewInstanceSpec builds a spec. attrs must contain a non-empty name.
func NewInstanceSpec(root, component string, skip bool, attrs Attributes) *InstanceSpec {
	return &InstanceSpec{
		component: component,
		root:      root,
		skip:      skip,
		attrs:     attrs.Clone(),
	}
}

// Component returns the component name.
func (s *InstanceSpec) Component() string {
	return s.component
}

// RepoRoot returns the repo root that owns the instance tree.
func (s *InstanceSpec) RepoRoot() string {
	return s.root
}

// Name returns the instance name.
func (s *InstanceSpec) Name() string {
	return s.attrs[AttrName].Scalar()
}

// Skip reports whether every stage of the instance is bypassed.
func (s *InstanceSpec) Skip() bool {
	return s.skip
}

// Ref returns the instance reference.
func (s *InstanceSpec) Ref() InstanceRef {
	return InstanceRef{Root: s.root, Component: s.component, Name: s.Name()}
}

// Get returns an attribute.
func (s *InstanceSpec) Get(key string) (Value, bool) {
	v, ok := s.attrs[key]
	return v, ok
}

// Attributes returns a copy of all attributes.
func (s *InstanceSpec) Attributes() Attributes {
	return s.attrs.Clone()
}

// Hook returns the command string of a stage phase. Absent hooks are empty.
func (s *InstanceSpec) Hook(st Stage, p Phase) string {
	return s.attrs[HookKey(st, p)].Scalar()
}

// InitDir returns the working directory of a stage.
func (s *InstanceSpec) InitDir(st Stage) string {
	return s.attrs[InitDirKey(st)].Scalar()
}

// Diff returns the sorted names of attributes that differ between s and o,
// including skip.
func (s *InstanceSpec) Diff(o *InstanceSpec) []string {
	var diff []string
	if s.skip != o.skip {
		diff = append(diff, AttrSkip)
	}
	keys := make(map[string]struct{}, len(s.attrs)+len(o.attrs))
	for k := range s.attrs {
		keys[k] = struct{}{}
	}
	for k := range o.attrs {
		keys[k] = struct{}{}
	}
	for k := range keys {
		a, okA := s.attrs[k]
		b, okB := o.attrs[k]
		if okA != okB || !a.Equal(b) {
			diff = append(diff, k)
		}
	}
	slices.Sort(diff)
	return diff
}

// Record returns the spec as a TOML-ready instance record.
func (s *InstanceSpec) Record() map[string]any {
	rec := make(map[string]any, len(s.attrs)+1)
	for k, v := range s.attrs {
		rec[k] = v.TOML()
	}
	rec[AttrSkip] = s.skip
	return rec
}

// String returns component/name.
func (s *InstanceSpec) String() string {
	return fmt.Sprintf("%s/%s", s.component, s.Name())
}
