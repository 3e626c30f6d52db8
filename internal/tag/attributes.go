package tag

import (
	"fmt"
	"sort"
	"strings"

	perrors "github.com/conneroisu/pagekit/internal/errors"
)

// dataWildcard in an allow-list admits every data-* attribute.
const dataWildcard = "data-*"

// Attributes is an insertion-ordered set of attribute name/value pairs.
// Setting an existing name keeps its original position.
type Attributes struct {
	names  []string
	values map[string]string
}

// NewAttributes builds an Attributes value from alternating name/value
// pairs. A trailing name without a value is set to the empty string.
func NewAttributes(pairs ...string) Attributes {
	var a Attributes
	for i := 0; i < len(pairs); i += 2 {
		value := ""
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		a.Set(pairs[i], value)
	}
	return a
}

// Set assigns value to name.
func (a *Attributes) Set(name, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Get returns the value for name.
func (a Attributes) Get(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Has reports whether name is present.
func (a Attributes) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Delete removes name. Deleting an absent name is a no-op.
func (a *Attributes) Delete(name string) {
	if _, ok := a.values[name]; !ok {
		return
	}
	delete(a.values, name)
	for i, n := range a.names {
		if n == name {
			a.names = append(a.names[:i], a.names[i+1:]...)
			break
		}
	}
}

// Merge copies every pair of other into a, overwriting existing values.
func (a *Attributes) Merge(other Attributes) {
	other.Each(func(name, value string) {
		a.Set(name, value)
	})
}

// Len returns the number of attributes.
func (a Attributes) Len() int {
	return len(a.names)
}

// Names returns the attribute names in insertion order.
func (a Attributes) Names() []string {
	names := make([]string, len(a.names))
	copy(names, a.names)
	return names
}

// Each calls fn for every pair in insertion order.
func (a Attributes) Each(fn func(name, value string)) {
	for _, name := range a.names {
		fn(name, a.values[name])
	}
}

// Clone returns an independent copy.
func (a Attributes) Clone() Attributes {
	var c Attributes
	c.Merge(a)
	return c
}

// BuildAttributes formats data as ` name="value"` pairs.
//
// data must be an Attributes value, a map[string]string, or a
// map[string]any; Go maps are emitted in sorted key order. When allow is
// non-nil only listed names pass, and data-* names additionally pass when
// the allow-list contains "data-*". Empty values are dropped, except for the
// value attribute. defaults are merged underneath data.
func BuildAttributes(data any, allow []string, defaults Attributes) (string, error) {
	attrs, err := toAttributes(data)
	if err != nil {
		return "", err
	}

	if defaults.Len() > 0 {
		merged := defaults.Clone()
		merged.Merge(attrs)
		attrs = merged
	}

	var allowed map[string]bool
	if allow != nil {
		allowed = make(map[string]bool, len(allow))
		for _, name := range allow {
			allowed[name] = true
		}
	}

	var b strings.Builder
	attrs.Each(func(name, value string) {
		if allowed != nil {
			if strings.HasPrefix(name, "data-") {
				if !allowed[dataWildcard] && !allowed[name] {
					return
				}
			} else if !allowed[name] {
				return
			}
		}
		if value == "" && name != "value" {
			return
		}
		fmt.Fprintf(&b, ` %s="%s"`, name, value)
	})

	return b.String(), nil
}

func toAttributes(data any) (Attributes, error) {
	switch v := data.(type) {
	case Attributes:
		return v, nil
	case *Attributes:
		if v == nil {
			return Attributes{}, nil
		}
		return *v, nil
	case map[string]string:
		var a Attributes
		for _, name := range sortedKeys(v) {
			a.Set(name, v[name])
		}
		return a, nil
	case map[string]any:
		var a Attributes
		for _, name := range sortedKeys(v) {
			a.Set(name, attrToString(v[name]))
		}
		return a, nil
	default:
		return Attributes{}, perrors.NewMalformedInputError(
			fmt.Sprintf("attribute mapping is required, got %T", data)).WithComponent("tag")
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, " ")
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}
