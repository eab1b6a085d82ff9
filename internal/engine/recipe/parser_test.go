package recipe_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hekit/internal/adapters/state"
	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/core/ports/mocks"
	"go.trai.ch/hekit/internal/engine/recipe"
	"go.trai.ch/hekit/internal/engine/substitute"
	"go.uber.org/mock/gomock"
)

func newParser(t *testing.T) (*recipe.Parser, *mocks.MockSpecReader) {
	t.Helper()
	ctrl := gomock.NewController(t)
	specs := mocks.NewMockSpecReader(ctrl)
	return recipe.NewParser(substitute.NewEngine(specs, nil), specs), specs
}

func collect(t *testing.T, plan *recipe.Plan) ([]string, error) {
	t.Helper()
	var names []string
	for spec, err := range plan.Specs(context.Background()) {
		if err != nil {
			return names, err
		}
		names = append(names, spec.String())
	}
	return names, nil
}

func TestParse_DependencyOrder(t *testing.T) {
	parser, specs := newParser(t)

	doc := &domain.RecipeDocument{Components: []domain.ComponentRecipe{
		{Name: "app", Instances: []domain.RawInstance{
			{"name": "a1", "build": "cmake -DSEAL=$seal/v1/export_dir$"},
		}},
		{Name: "seal", Instances: []domain.RawInstance{
			{"name": "v1", "export_dir": "install"},
			{"name": "v2"},
		}},
	}}

	seal := domain.NewInstanceSpec("/repo", "seal", false, domain.Attributes{
		"name":       domain.String("v1"),
		"export_dir": domain.String("/repo/seal/v1/install"),
	})
	specs.EXPECT().ReadSpec(domain.InstanceRef{Root: "/repo", Component: "seal", Name: "v1"}).Return(nil, nil)
	specs.EXPECT().ReadSpec(domain.InstanceRef{Root: "/repo", Component: "seal", Name: "v2"}).Return(nil, nil)
	// Referenced by app, then checked for a conflict.
	specs.EXPECT().ReadSpec(domain.InstanceRef{Root: "/repo", Component: "seal", Name: "v1"}).Return(seal, nil)
	specs.EXPECT().ReadSpec(domain.InstanceRef{Root: "/repo", Component: "app", Name: "a1"}).Return(nil, nil)

	plan, err := parser.Parse(doc, "/repo", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"seal", "app"}, plan.Components())
	assert.Equal(t, 3, plan.Len())

	var got []*domain.InstanceSpec
	for spec, err := range plan.Specs(context.Background()) {
		require.NoError(t, err)
		got = append(got, spec)
	}
	require.Len(t, got, 3)
	assert.Equal(t, "seal/v1", got[0].String())
	assert.Equal(t, "seal/v2", got[1].String())
	assert.Equal(t, "app/a1", got[2].String())

	build, _ := got[2].Get("build")
	assert.Equal(t, "cmake -DSEAL=/repo/seal/v1/install", build.Scalar())
}

func TestParse_InvalidSpecBeforeAnySubstitution(t *testing.T) {
	parser, _ := newParser(t)

	doc := &domain.RecipeDocument{Components: []domain.ComponentRecipe{
		{Name: "ok", Instances: []domain.RawInstance{{"name": "fine"}}},
		{Name: "bad", Instances: []domain.RawInstance{{"name": "x", "skip": "yes"}}},
	}}

	plan, err := parser.Parse(doc, "/repo", nil)
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.ErrorContains(t, err, domain.ErrInvalidSpec.Error())
}

func TestParse_ComponentNameMustBeOnePathElement(t *testing.T) {
	for _, name := range []string{"..", ".", "", "a/b"} {
		parser, _ := newParser(t)
		doc := &domain.RecipeDocument{Components: []domain.ComponentRecipe{
			{Name: name, Instances: []domain.RawInstance{{"name": "v1"}}},
		}}

		plan, err := parser.Parse(doc, "/repo", nil)
		require.ErrorIs(t, err, domain.ErrInvalidSpec, "component %q", name)
		assert.Nil(t, plan)
	}
}

func TestParse_Cycle(t *testing.T) {
	parser, _ := newParser(t)

	doc := &domain.RecipeDocument{Components: []domain.ComponentRecipe{
		{Name: "X", Instances: []domain.RawInstance{{"name": "x", "build": "$Y/y/export_dir$"}}},
		{Name: "Y", Instances: []domain.RawInstance{{"name": "y", "build": "$X/x/export_dir$"}}},
	}}

	plan, err := parser.Parse(doc, "/repo", nil)
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.ErrorContains(t, err, domain.ErrCycleDetected.Error())
}

func TestParse_SelfComponentReferenceIsNotADependency(t *testing.T) {
	parser, _ := newParser(t)

	doc := &domain.RecipeDocument{Components: []domain.ComponentRecipe{
		{Name: "seal", Instances: []domain.RawInstance{
			{"name": "base"},
			{"name": "ext", "build": "$seal/base/init_build_dir$"},
		}},
	}}

	plan, err := parser.Parse(doc, "/repo", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"seal"}, plan.Components())
}

func TestSpecs_Conflict(t *testing.T) {
	root := t.TempDir()
	store := state.NewStore()
	parser := recipe.NewParser(substitute.NewEngine(store, nil), store)

	first := &domain.RecipeDocument{Components: []domain.ComponentRecipe{
		{Name: "seal", Instances: []domain.RawInstance{{"name": "v1", "build": "make"}}},
	}}
	plan, err := parser.Parse(first, root, nil)
	require.NoError(t, err)
	for spec, err := range plan.Specs(context.Background()) {
		require.NoError(t, err)
		require.NoError(t, store.WriteSpec(spec))
	}

	t.Run("identical re-declaration", func(t *testing.T) {
		plan, err := parser.Parse(first, root, nil)
		require.NoError(t, err)
		names, err := collect(t, plan)
		require.NoError(t, err)
		assert.Equal(t, []string{"seal/v1"}, names)
	})

	t.Run("changed attribute", func(t *testing.T) {
		changed := &domain.RecipeDocument{Components: []domain.ComponentRecipe{
			{Name: "seal", Instances: []domain.RawInstance{{"name": "v1", "build": "make -j8"}}},
		}}
		plan, err := parser.Parse(changed, root, nil)
		require.NoError(t, err)

		names, err := collect(t, plan)
		require.Error(t, err)
		assert.Empty(t, names)
		assert.True(t, errors.Is(err, domain.ErrInvalidSpec))
		assert.ErrorContains(t, err, "already present, executed with different options")
	})
}

func TestSpecs_StopsOnFirstError(t *testing.T) {
	parser, specs := newParser(t)
	specs.EXPECT().ReadSpec(gomock.Any()).Return(nil, nil).AnyTimes()

	doc := &domain.RecipeDocument{Components: []domain.ComponentRecipe{
		{Name: "a", Instances: []domain.RawInstance{{"name": "a1", "build": "%missing%"}}},
		{Name: "b", Instances: []domain.RawInstance{{"name": "b1"}}},
	}}

	plan, err := parser.Parse(doc, "/repo", nil)
	require.NoError(t, err)

	names, err := collect(t, plan)
	require.Error(t, err)
	assert.Empty(t, names)
	assert.ErrorContains(t, err, domain.ErrUnknownAttribute.Error())
}

func TestPreflight(t *testing.T) {
	root := t.TempDir()
	store := state.NewStore()
	parser := recipe.NewParser(substitute.NewEngine(store, nil), store)

	persisted := domain.NewInstanceSpec(root, "lib", false, domain.Attributes{
		"name":  domain.String("v1"),
		"build": domain.String("make"),
	})
	require.NoError(t, store.WriteSpec(persisted))

	t.Run("reports a late conflict", func(t *testing.T) {
		doc := &domain.RecipeDocument{Components: []domain.ComponentRecipe{
			{Name: "app", Instances: []domain.RawInstance{{"name": "a1"}}},
			{Name: "lib", Instances: []domain.RawInstance{{"name": "v1", "build": "make -j8"}}},
		}}
		plan, err := parser.Parse(doc, root, nil)
		require.NoError(t, err)

		err = plan.Preflight(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrSpecConflict))
	})

	t.Run("tolerates dependencies not set up yet", func(t *testing.T) {
		doc := &domain.RecipeDocument{Components: []domain.ComponentRecipe{
			{Name: "app", Instances: []domain.RawInstance{{"name": "a1", "build": "cc $zlib/1.3/export_dir$"}}},
			{Name: "zlib", Instances: []domain.RawInstance{{"name": "1.3", "export_dir": "out"}}},
		}}
		plan, err := parser.Parse(doc, root, nil)
		require.NoError(t, err)
		require.NoError(t, plan.Preflight(context.Background()))
	})

	t.Run("reports substitution faults", func(t *testing.T) {
		doc := &domain.RecipeDocument{Components: []domain.ComponentRecipe{
			{Name: "app", Instances: []domain.RawInstance{{"name": "a1", "build": "%missing%"}}},
		}}
		plan, err := parser.Parse(doc, root, nil)
		require.NoError(t, err)

		err = plan.Preflight(context.Background())
		assert.ErrorContains(t, err, domain.ErrUnknownAttribute.Error())
	})
}
