package simplex

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

var (
	ErrInvalidTypeTag = errors.New("invalid type expression")
	ErrDuplicateField = errors.New("duplicate field name")
)

// TypeShape is the form of a field's declared type.
type TypeShape uint8

const (
	// ShapeUntyped fields carry no static type; values pass through unchanged.
	ShapeUntyped TypeShape = iota
	// ShapeNamed fields have a single declared type.
	ShapeNamed
	// ShapeUnion fields accept any of an ordered list of types.
	ShapeUnion
	// ShapeIntersection fields must satisfy several types at once. They are
	// recognised but never satisfied.
	ShapeIntersection
)

func (s TypeShape) String() string {
	switch s {
	case ShapeUntyped:
		return "untyped"
	case ShapeNamed:
		return "named"
	case ShapeUnion:
		return "union"
	case ShapeIntersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// DeclaredType is the static type of a field as seen by the coercion engine.
// Types and Names are parallel and keep declaration order.
type DeclaredType struct {
	Shape    TypeShape
	Types    []reflect.Type
	Names    []string
	Nullable bool
}

func (d DeclaredType) String() string {
	switch d.Shape {
	case ShapeUntyped:
		return "untyped"
	case ShapeIntersection:
		return strings.Join(d.Names, IntersectionTypeDelimiter)
	case ShapeUnion:
		names := d.Names
		if d.Nullable {
			names = append(names[:len(names):len(names)], NullTypeName)
		}
		return strings.Join(names, UnionTypeDelimiter)
	default:
		if len(d.Names) == 0 {
			return "unknown"
		}
		return d.Names[0]
	}
}

// FieldDescriptor describes one declared field of a struct type.
type FieldDescriptor struct {
	Name       string       // Mapping name
	GoName     string       // Name of the struct field
	Index      int          // Index of the field in the struct
	GoType     reflect.Type // Go type of the struct field
	Type       DeclaredType // Declared type used for coercion
	Default    string       // Default literal from the tag
	HasDefault bool
	Exported   bool
}

// Shape is the ordered set of a type's declared fields. Shapes returned by
// a ReflectionProvider are shared and must not be modified.
type Shape struct {
	Name   string
	Type   reflect.Type // nil for shapes not backed by a struct type
	Fields []FieldDescriptor
	index  map[string]int
}

// NewShape builds a shape from its fields. Field names must be unique.
func NewShape(name string, t reflect.Type, fields []FieldDescriptor) (*Shape, error) {
	s := &Shape{
		Name:   name,
		Type:   t,
		Fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, exists := s.index[f.Name]; exists {
			return nil, fmt.Errorf("%w '%s' in %s", ErrDuplicateField, f.Name, name)
		}
		s.index[f.Name] = i
	}
	return s, nil
}

// UntypedShape builds a shape whose fields carry no declared type, as used
// for mapping sources.
func UntypedShape(name string, fieldNames ...string) (*Shape, error) {
	fields := make([]FieldDescriptor, len(fieldNames))
	for i, n := range fieldNames {
		fields[i] = FieldDescriptor{
			Name:  n,
			Index: i,
			Type:  DeclaredType{Shape: ShapeUntyped, Nullable: true},
		}
	}
	return NewShape(name, nil, fields)
}

// Field returns the descriptor of the named field.
func (s *Shape) Field(name string) (FieldDescriptor, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldDescriptor{}, false
	}
	return s.Fields[i], true
}

// Has reports whether the shape declares the named field.
func (s *Shape) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns the field names in declaration order.
func (s *Shape) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// declaredTypeOf derives the declared type of a field from its Go type and
// the optional type expression of its tag.
//
// Without an expression, an empty interface is untyped and any other type is
// its own single declared type. Pointer and interface types are nullable.
func declaredTypeOf(goType reflect.Type, expr string, reg *TypeRegistry) (DeclaredType, error) {
	if expr == "" {
		if isEmptyInterface(goType) {
			return DeclaredType{Shape: ShapeUntyped, Nullable: true}, nil
		}
		return DeclaredType{
			Shape:    ShapeNamed,
			Types:    []reflect.Type{goType},
			Names:    []string{goType.String()},
			Nullable: goType.Kind() == reflect.Ptr || goType.Kind() == reflect.Interface,
		}, nil
	}

	if strings.Contains(expr, IntersectionTypeDelimiter) {
		if strings.ContainsAny(expr, UnionTypeDelimiter+NullableTypePrefix) {
			return DeclaredType{}, fmt.Errorf("%w: mixed union and intersection in '%s'", ErrInvalidTypeTag, expr)
		}
		dt := DeclaredType{Shape: ShapeIntersection}
		for _, name := range strings.Split(expr, IntersectionTypeDelimiter) {
			if err := dt.add(strings.TrimSpace(name), goType, reg); err != nil {
				return DeclaredType{}, err
			}
		}
		return dt, nil
	}

	dt := DeclaredType{Nullable: goType.Kind() == reflect.Ptr}
	if strings.HasPrefix(expr, NullableTypePrefix) {
		dt.Nullable = true
		expr = strings.TrimPrefix(expr, NullableTypePrefix)
	}

	for _, name := range strings.Split(expr, UnionTypeDelimiter) {
		name = strings.TrimSpace(name)
		if name == NullTypeName {
			dt.Nullable = true
			continue
		}
		if err := dt.add(name, goType, reg); err != nil {
			return DeclaredType{}, err
		}
	}

	switch len(dt.Types) {
	case 0:
		return DeclaredType{}, fmt.Errorf("%w: no type in '%s'", ErrInvalidTypeTag, expr)
	case 1:
		dt.Shape = ShapeNamed
	default:
		dt.Shape = ShapeUnion
	}
	return dt, nil
}

func (d *DeclaredType) add(name string, goType reflect.Type, reg *TypeRegistry) error {
	if name == "" {
		return fmt.Errorf("%w: empty type name", ErrInvalidTypeTag)
	}
	if strings.HasPrefix(name, NullableTypePrefix) {
		return fmt.Errorf("%w: '%s' must lead the expression", ErrInvalidTypeTag, NullableTypePrefix)
	}
	if slices.Contains(d.Names, name) {
		return fmt.Errorf("%w: '%s' listed twice", ErrInvalidTypeTag, name)
	}

	t, err := reg.Lookup(name)
	if err != nil {
		return err
	}
	if !typeFits(t, goType) {
		return fmt.Errorf("%w: '%s' cannot be stored in a field of type %s", ErrInvalidTypeTag, name, goType)
	}

	d.Types = append(d.Types, t)
	d.Names = append(d.Names, name)
	return nil
}

// typeFits reports whether values of type t can be stored in a field of type
// field, taking a pointer to them if needed.
func typeFits(t, field reflect.Type) bool {
	if t.AssignableTo(field) {
		return true
	}
	return field.Kind() == reflect.Ptr && t.AssignableTo(field.Elem())
}

func isEmptyInterface(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() == 0
}
