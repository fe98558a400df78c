package content

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Value wraps one node of a parsed content tree: a scalar, an array, or a
// table. The zero Value represents an absent node.
type Value struct {
	raw any
}

// Wrap adapts a decoded TOML value (as produced by BurntSushi/toml into
// interface{}) into a Value.
func Wrap(raw any) Value {
	return Value{raw: raw}
}

// Raw returns the underlying decoded value.
func (v Value) Raw() any {
	return v.raw
}

// IsNil reports whether the value is absent.
func (v Value) IsNil() bool {
	return v.raw == nil
}

// IsTable reports whether the value is a table.
func (v Value) IsTable() bool {
	_, ok := v.raw.(map[string]any)
	return ok
}

// AsTable returns the value as a table of child values.
func (v Value) AsTable() (map[string]Value, bool) {
	m, ok := v.raw.(map[string]any)
	if !ok {
		return nil, false
	}
	children := make(map[string]Value, len(m))
	for key, child := range m {
		children[key] = Value{raw: child}
	}
	return children, true
}

// AsArray returns the value as a slice of element values.
func (v Value) AsArray() ([]Value, bool) {
	switch arr := v.raw.(type) {
	case []any:
		items := make([]Value, len(arr))
		for i, item := range arr {
			items[i] = Value{raw: item}
		}
		return items, true
	case []map[string]any:
		items := make([]Value, len(arr))
		for i, item := range arr {
			items[i] = Value{raw: item}
		}
		return items, true
	}
	return nil, false
}

// AsString returns the value as a string if it is one.
func (v Value) AsString() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Get descends the tree one dotted-path segment at a time.
//
// Only tables are navigable: hitting a scalar or array before the path is
// exhausted, or a missing key, yields false. There is no partial matching.
func (v Value) Get(path string) (Value, bool) {
	current := v
	for _, segment := range strings.Split(path, ".") {
		table, ok := current.raw.(map[string]any)
		if !ok {
			return Value{}, false
		}
		child, ok := table[segment]
		if !ok {
			return Value{}, false
		}
		current = Value{raw: child}
	}
	return current, true
}

// Display renders the value for human-facing output.
//
// Scalars use their canonical textual form. A table carrying a "content" key
// reads as that key's string value, so block tables present like flat
// scalars. Anything else falls back to a JSON dump of the structure; callers
// needing structured data must not round-trip through this form.
func (v Value) Display() string {
	switch raw := v.raw.(type) {
	case string:
		return raw
	case int64:
		return strconv.FormatInt(raw, 10)
	case int:
		return strconv.Itoa(raw)
	case float64:
		return strconv.FormatFloat(raw, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(raw)
	case time.Time:
		return raw.Format(time.RFC3339)
	case map[string]any:
		if content, ok := raw["content"].(string); ok {
			return content
		}
	}
	if dump, err := json.Marshal(v.raw); err == nil {
		return string(dump)
	}
	return fmt.Sprintf("%v", v.raw)
}
