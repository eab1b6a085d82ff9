package domain_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestGraph_Validate_DiamondOrder(t *testing.T) {
	// D depends on B and C, both depend on A.
	g := domain.NewGraph()
	g.AddComponent("D", "B", "C")
	g.AddComponent("C", "A")
	g.AddComponent("B", "A")
	g.AddComponent("A")

	require.NoError(t, g.Validate())

	order := g.Order()
	valid := [][]string{
		{"A", "B", "C", "D"},
		{"A", "C", "B", "D"},
	}
	assert.True(t, slices.ContainsFunc(valid, func(v []string) bool {
		return slices.Equal(v, order)
	}), "unexpected order: %v", order)
}

func TestGraph_Validate_DeclaredOrderIsStable(t *testing.T) {
	g := domain.NewGraph()
	g.AddComponent("seal")
	g.AddComponent("palisade")
	g.AddComponent("helib")

	require.NoError(t, g.Validate())
	assert.Equal(t, []string{"seal", "palisade", "helib"}, g.Order())
}

func TestGraph_Validate_AbsentDependencyIsLeaf(t *testing.T) {
	g := domain.NewGraph()
	g.AddComponent("app", "installed-elsewhere")

	require.NoError(t, g.Validate())
	assert.Equal(t, []string{"app"}, g.Order())
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewGraph()
	g.AddComponent("X", "Y")
	g.AddComponent("Y", "X")

	err := g.Validate()
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	require.ErrorContains(t, err, domain.ErrCycleDetected.Error())

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if cycle, ok := meta["cycle"].(string); !ok || cycle != "X -> Y -> X" {
		t.Errorf("expected metadata cycle=X -> Y -> X, got %v", meta["cycle"])
	}
	assert.Empty(t, g.Order())
}

func TestGraph_Validate_LongerCyclePath(t *testing.T) {
	g := domain.NewGraph()
	g.AddComponent("root", "a")
	g.AddComponent("a", "b")
	g.AddComponent("b", "c")
	g.AddComponent("c", "a")

	err := g.Validate()
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "a -> b -> c -> a", zErr.Metadata()["cycle"])
}

func TestGraph_AddComponent_MergesDependencies(t *testing.T) {
	g := domain.NewGraph()
	g.AddComponent("app", "lib")
	g.AddComponent("app", "lib", "tool")

	assert.True(t, g.Has("app"))
	assert.False(t, g.Has("lib"))
	assert.Equal(t, []string{"lib", "tool"}, g.DependsOn("app"))
}

func TestGraph_Walk(t *testing.T) {
	g := domain.NewGraph()
	// A -> B -> C
	// Execution order: C, B, A
	g.AddComponent("A", "B")
	g.AddComponent("B", "C")
	g.AddComponent("C")

	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	executed := make([]string, 0, 3)
	for name := range g.Walk() {
		executed = append(executed, name)
	}

	if executed[0] != "C" || executed[1] != "B" || executed[2] != "A" {
		t.Errorf("unexpected execution order: %v", executed)
	}
}
