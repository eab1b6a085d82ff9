// Package domain contains the core domain models for recipes, instance specs,
// build status and the component dependency graph.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the component dependency graph of one recipe document.
type Graph struct {
	order          []string
	dependsOn      map[string][]string
	executionOrder []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		dependsOn: make(map[string][]string),
	}
}

// AddComponent adds a component declared in the document, with the components
// it references. Adding a component twice merges its dependencies.
func (g *Graph) AddComponent(name string, deps ...string) {
	existing, ok := g.dependsOn[name]
	if !ok {
		g.order = append(g.order, name)
	}
	for _, d := range deps {
		if !slices.Contains(existing, d) {
			existing = append(existing, d)
		}
	}
	g.dependsOn[name] = existing
}

// Has reports whether name is declared in the document.
func (g *Graph) Has(name string) bool {
	_, ok := g.dependsOn[name]
	return ok
}

// DependsOn returns the components referenced by name.
func (g *Graph) DependsOn(name string) []string {
	return slices.Clone(g.dependsOn[name])
}

// Validate sorts the graph depth-first, dependencies before dependents.
// Components are visited in declared order. A referenced component that is not
// declared is treated as a leaf. It returns an error carrying the cycle path
// if a cycle is found, and populates the execution order otherwise.
func (g *Graph) Validate() error {
	g.executionOrder = make([]string, 0, len(g.order))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(u string) error
	visit = func(u string) error {
		visited[u] = 1
		path = append(path, u)

		for _, dep := range g.dependsOn[u] {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		if g.Has(u) {
			g.executionOrder = append(g.executionOrder, u)
		}
		return nil
	}

	for _, name := range g.order {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				g.executionOrder = nil
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []string, dep string) error {
	startIdx := slices.Index(path, dep)
	cycle := append(slices.Clone(path[startIdx:]), dep)
	return zerr.With(zerr.Wrap(ErrCycleDetected, "cannot order components"), "cycle", strings.Join(cycle, " -> "))
}

// Order returns the declared components in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Order() []string {
	return slices.Clone(g.executionOrder)
}

// Walk returns an iterator that yields components in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range g.executionOrder {
			if !yield(name) {
				return
			}
		}
	}
}
