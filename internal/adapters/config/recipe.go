package config

import (
	"maps"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/core/ports"
	"go.trai.ch/zerr"
)

// RecipeLoader implements ports.RecipeLoader for TOML recipe documents.
type RecipeLoader struct{}

var _ ports.RecipeLoader = (*RecipeLoader)(nil)

// NewRecipeLoader creates a new RecipeLoader.
func NewRecipeLoader() *RecipeLoader {
	return &RecipeLoader{}
}

// Load reads the recipe at path. Components keep the order in which they are
// first declared in the document.
func (l *RecipeLoader) Load(path string) (*domain.RecipeDocument, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRecipeReadFailed.Error()), "path", path)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrRecipeIsSymlink, "refusing to read recipe"), "path", path)
	}

	//nolint:gosec // Path is supplied by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRecipeReadFailed.Error()), "path", path)
	}

	return parseRecipe(path, data)
}

func parseRecipe(path string, data []byte) (*domain.RecipeDocument, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRecipeParseFailed.Error()), "path", path)
	}

	order, err := declaredOrder(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRecipeParseFailed.Error()), "path", path)
	}
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		if !slices.Contains(order, name) {
			order = append(order, name)
		}
	}

	doc := &domain.RecipeDocument{Path: path}
	for _, name := range order {
		value, ok := raw[name]
		if !ok {
			continue
		}
		instances, err := instanceList(name, value)
		if err != nil {
			return nil, err
		}
		doc.Components = append(doc.Components, domain.ComponentRecipe{
			Name:      name,
			Instances: instances,
		})
	}
	return doc, nil
}

// declaredOrder returns the top-level keys in the order they first appear.
// Decoding into a map loses this order, so the document is scanned again with
// the expression parser.
func declaredOrder(data []byte) ([]string, error) {
	var (
		order   []string
		inTable bool
		p       unstable.Parser
	)

	record := func(n *unstable.Node) {
		it := n.Key()
		if !it.Next() {
			return
		}
		name := string(it.Node().Data)
		if !slices.Contains(order, name) {
			order = append(order, name)
		}
	}

	p.Reset(data)
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			inTable = true
			record(expr)
		case unstable.KeyValue:
			if !inTable {
				record(expr)
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}
	return order, nil
}

func instanceList(component string, value any) ([]domain.RawInstance, error) {
	notList := zerr.With(
		zerr.With(zerr.Wrap(domain.ErrInvalidSpec, "component must be a list of instance tables"), "component", component),
		"field", component,
	)

	var items []any
	switch x := value.(type) {
	case []any:
		items = x
	case []map[string]any:
		for _, m := range x {
			items = append(items, m)
		}
	default:
		return nil, notList
	}

	instances := make([]domain.RawInstance, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, notList
		}
		instances = append(instances, domain.RawInstance(m))
	}
	return instances, nil
}
