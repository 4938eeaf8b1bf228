package simplex

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// sourceView builds the Record a source is hydrated from.
//
// Supported sources:
//   - Record: used as is
//   - any Go map: string keys in lexical order, then other keys
//   - struct or pointer to struct: every field, unexported ones included, in
//     declaration order under its mapping name
//   - gjson.Result and []byte holding a JSON object: document order
//   - *yaml.Node holding a mapping: document order
func (m *Mapper) sourceView(source any) (Record, error) {
	switch s := source.(type) {
	case nil:
		return nil, ErrNilSource
	case Record:
		return s, nil
	case map[string]any:
		return RecordOf(s), nil
	case gjson.Result:
		return recordFromGJSON(s)
	case []byte:
		return FromJSON(s)
	case *yaml.Node:
		if s == nil {
			return nil, ErrNilSource
		}
		return recordFromYAML(s)
	}

	rv := reflect.ValueOf(source)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, ErrNilSource
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		return recordFromMap(rv), nil
	case reflect.Struct:
		return m.recordFromStruct(rv)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, source)
	}
}

func recordFromMap(rv reflect.Value) Record {
	r := make(Record, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		var key any
		if iter.Key().Kind() == reflect.String {
			key = iter.Key().String()
		} else {
			key = iter.Key().Interface()
		}
		r = append(r, Pair{Key: key, Value: iter.Value().Interface()})
	}
	sortPairs(r)
	return r
}

func (m *Mapper) recordFromStruct(rv reflect.Value) (Record, error) {
	shape, err := m.provider.Shape(rv.Type())
	if err != nil {
		return nil, err
	}

	r := make(Record, 0, len(shape.Fields))
	for _, f := range shape.Fields {
		v, err := m.provider.GetField(rv, f.Name)
		if err != nil {
			return nil, err
		}
		r = append(r, Pair{Key: f.Name, Value: v})
	}
	return r, nil
}

// FromJSON decodes a JSON object into a Record in document order. Nested
// objects become Records, arrays become []any, integral numbers int64 and
// other numbers float64.
func FromJSON(data []byte) (Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return recordFromGJSON(gjson.ParseBytes(data))
}

func recordFromGJSON(res gjson.Result) (Record, error) {
	if !res.IsObject() {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrInvalidJSON, res.Type)
	}
	r, _ := valueFromGJSON(res).(Record)
	return r, nil
}

func valueFromGJSON(res gjson.Result) any {
	switch {
	case res.IsObject():
		r := Record{}
		res.ForEach(func(key, value gjson.Result) bool {
			r = append(r, Pair{Key: key.String(), Value: valueFromGJSON(value)})
			return true
		})
		return r
	case res.IsArray():
		list := []any{}
		res.ForEach(func(_, value gjson.Result) bool {
			list = append(list, valueFromGJSON(value))
			return true
		})
		return list
	}

	switch res.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		if !strings.ContainsAny(res.Raw, ".eE") {
			if i, err := strconv.ParseInt(res.Raw, 10, 64); err == nil {
				return i
			}
		}
		return res.Float()
	default:
		return res.String()
	}
}

// FromYAML decodes a YAML mapping document into a Record in document order.
// Keys keep their decoded type, so a non-string key is reported when the
// Record is hydrated.
func FromYAML(data []byte) (Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}
	return recordFromYAML(&doc)
}

func recordFromYAML(n *yaml.Node) (Record, error) {
	for n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	if n.Kind == yaml.AliasNode {
		if n.Alias == nil {
			return nil, fmt.Errorf("%w: alias without target at line %d", ErrInvalidYAML, n.Line)
		}
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping at line %d", ErrInvalidYAML, n.Line)
	}

	v, err := valueFromYAML(n)
	if err != nil {
		return nil, err
	}
	return v.(Record), nil
}

func valueFromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return valueFromYAML(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("%w: alias without target at line %d", ErrInvalidYAML, n.Line)
		}
		return valueFromYAML(n.Alias)
	case yaml.MappingNode:
		r := make(Record, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := valueFromYAML(n.Content[i])
			if err != nil {
				return nil, err
			}
			value, err := valueFromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			r = append(r, Pair{Key: key, Value: value})
		}
		return r, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := valueFromYAML(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidYAML, n.Line, err)
		}
		return v, nil
	}
}

// parseDefaultLiteral turns the default literal of a field into a raw value.
// String fields take the text as is; anything else is read as a JSON literal
// and falls back to the text when it is not one.
func parseDefaultLiteral(f FieldDescriptor) any {
	if f.Type.Shape == ShapeNamed && isStringType(f.Type.Types[0]) {
		return f.Default
	}
	if !gjson.Valid(f.Default) {
		return f.Default
	}
	return valueFromGJSON(gjson.Parse(f.Default))
}

func isStringType(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.String
}
