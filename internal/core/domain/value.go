package domain

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"go.trai.ch/zerr"
)

// Value is a recipe attribute value: a scalar string or a list of strings.
type Value struct {
	scalar string
	list   []string
	isList bool
}

// String returns a scalar Value.
func String(s string) Value {
	return Value{scalar: s}
}

// List returns a list Value. The elements are copied.
func List(items ...string) Value {
	return Value{list: slices.Clone(items), isList: true}
}

// IsList reports whether v holds a list.
func (v Value) IsList() bool {
	return v.isList
}

// Scalar returns the scalar string. It is empty for lists.
func (v Value) Scalar() string {
	return v.scalar
}

// Items returns a copy of the list elements. It is nil for scalars.
func (v Value) Items() []string {
	if !v.isList {
		return nil
	}
	if v.list == nil {
		return []string{}
	}
	return slices.Clone(v.list)
}

// Equal reports whether two values hold the same data.
func (v Value) Equal(o Value) bool {
	if v.isList != o.isList {
		return false
	}
	if v.isList {
		return slices.Equal(v.list, o.list)
	}
	return v.scalar == o.scalar
}

// Map applies fn to the scalar, or to every list element.
func (v Value) Map(fn func(string) (string, error)) (Value, error) {
	if !v.isList {
		s, err := fn(v.scalar)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	}
	out := make([]string, len(v.list))
	for i, item := range v.list {
		s, err := fn(item)
		if err != nil {
			return Value{}, err
		}
		out[i] = s
	}
	return Value{list: out, isList: true}, nil
}

// TOML returns the value in the shape written to TOML documents.
func (v Value) TOML() any {
	if v.isList {
		return v.Items()
	}
	return v.scalar
}

// GoString makes values readable in test failure output.
func (v Value) GoString() string {
	if v.isList {
		return fmt.Sprintf("List(%q)", v.list)
	}
	return fmt.Sprintf("String(%q)", v.scalar)
}

// ValueFromTOML converts a decoded TOML value into a Value. Integer, float,
// boolean and datetime scalars are normalized to their string form. Tables
// and arrays of tables are rejected.
func ValueFromTOML(raw any) (Value, error) {
	switch x := raw.(type) {
	case []any:
		items := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := scalarString(item)
			if !ok {
				return Value{}, zerr.With(zerr.New("unsupported list element"), "type", fmt.Sprintf("%T", item))
			}
			items = append(items, s)
		}
		return Value{list: items, isList: true}, nil
	case []string:
		return List(x...), nil
	default:
		s, ok := scalarString(raw)
		if !ok {
			return Value{}, zerr.With(zerr.New("unsupported value"), "type", fmt.Sprintf("%T", raw))
		}
		return String(s), nil
	}
}

func scalarString(raw any) (string, bool) {
	switch x := raw.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case int:
		return strconv.Itoa(x), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case time.Time:
		return x.Format(time.RFC3339Nano), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return "", false
	}
}
