package simplex

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

var (
	ErrNotAStruct         = errors.New("type is not a struct")
	ErrUnassignableValue  = errors.New("value cannot be assigned to field")
	ErrInstanceNotPointer = errors.New("instance must be a non-nil pointer to a struct")
)

// ConstructorDefaulter is implemented by types whose constructor gives some
// fields a default value. Map seeds these values after the tag defaults, so
// they win over them. Keys that are not fields of the type are ignored.
//
// The method is called on a zero instance and must not depend on its state.
type ConstructorDefaulter interface {
	ConstructorDefaults() Record
}

// ReflectionProvider is the capability the engines use to inspect and build
// struct types. It must be able to read and write unexported fields.
type ReflectionProvider interface {
	// Shape returns the declared fields of t in declaration order.
	Shape(t reflect.Type) (*Shape, error)
	// ConstructorDefaults returns the constructor parameter defaults of t in
	// parameter order, or nil.
	ConstructorDefaults(t reflect.Type) (Record, error)
	// ConstructBypass returns a pointer to a new instance of t without
	// running any initialization logic.
	ConstructBypass(t reflect.Type) (reflect.Value, error)
	// GetField reads the named field of a struct or pointer to struct.
	GetField(instance reflect.Value, name string) (any, error)
	// SetField writes the named field of a pointer to struct directly. An
	// invalid value stores the zero value.
	SetField(instance reflect.Value, name string, value reflect.Value) error
	// IsInstanceOf reports whether value already satisfies t.
	IsInstanceOf(value any, t reflect.Type) bool
}

var __compTimeCheckImplementsReflectionProvider ReflectionProvider = &ReflectProvider{}

// ReflectProvider implements ReflectionProvider with the reflect package.
// Unexported fields are accessed through their address. Shapes are built
// once per type and cached.
type ReflectProvider struct {
	types  *TypeRegistry
	tagKey string
	shapes *TypeCache[*Shape]
}

type ReflectProviderOpts struct {
	// Types resolves the names of `type` subtags. Builtin names only if nil.
	Types *TypeRegistry
	// TagKey is the struct tag read for field options. DefaultTagKey if empty.
	TagKey string
}

func NewReflectProvider(opts ReflectProviderOpts) *ReflectProvider {
	p := &ReflectProvider{
		types:  opts.Types,
		tagKey: opts.TagKey,
		shapes: NewTypeCache[*Shape](),
	}
	if p.types == nil {
		p.types = newBuiltinTypeRegistry()
	}
	if p.tagKey == "" {
		p.tagKey = DefaultTagKey
	}
	return p
}

func (p *ReflectProvider) Shape(t reflect.Type) (*Shape, error) {
	t, err := structType(t)
	if err != nil {
		return nil, err
	}
	return p.shapes.GetOrCreate(t, func() (*Shape, error) {
		return p.buildShape(t)
	})
}

func (p *ReflectProvider) buildShape(t reflect.Type) (*Shape, error) {
	fields := make([]FieldDescriptor, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}

		ft, err := ParseFieldTag(sf, p.tagKey)
		if err != nil {
			return nil, err
		}
		if ft.Skip {
			continue
		}

		name, ok := ResolveFieldName(sf, ft)
		if !ok {
			continue
		}

		dt, err := declaredTypeOf(sf.Type, ft.Type, p.types)
		if err != nil {
			return nil, fmt.Errorf("error reading type of field %s.%s: %w", t, sf.Name, err)
		}

		fields = append(fields, FieldDescriptor{
			Name:       name,
			GoName:     sf.Name,
			Index:      i,
			GoType:     sf.Type,
			Type:       dt,
			Default:    ft.Default,
			HasDefault: ft.HasDefault,
			Exported:   sf.IsExported(),
		})
	}

	return NewShape(t.String(), t, fields)
}

func (p *ReflectProvider) ConstructorDefaults(t reflect.Type) (Record, error) {
	t, err := structType(t)
	if err != nil {
		return nil, err
	}
	if d, ok := reflect.New(t).Interface().(ConstructorDefaulter); ok {
		return d.ConstructorDefaults(), nil
	}
	return nil, nil
}

func (p *ReflectProvider) ConstructBypass(t reflect.Type) (reflect.Value, error) {
	t, err := structType(t)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.New(t), nil
}

func (p *ReflectProvider) GetField(instance reflect.Value, name string) (any, error) {
	for instance.Kind() == reflect.Ptr || instance.Kind() == reflect.Interface {
		if instance.IsNil() {
			return nil, ErrInstanceNotPointer
		}
		instance = instance.Elem()
	}

	shape, err := p.Shape(instance.Type())
	if err != nil {
		return nil, err
	}
	f, ok := shape.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrFieldNotFound, name, shape.Name)
	}

	if !instance.CanAddr() {
		addressable := reflect.New(instance.Type()).Elem()
		addressable.Set(instance)
		instance = addressable
	}

	return accessible(instance.Field(f.Index)).Interface(), nil
}

func (p *ReflectProvider) SetField(instance reflect.Value, name string, value reflect.Value) error {
	if instance.Kind() != reflect.Ptr || instance.IsNil() || instance.Elem().Kind() != reflect.Struct {
		return ErrInstanceNotPointer
	}

	shape, err := p.Shape(instance.Type())
	if err != nil {
		return err
	}
	f, ok := shape.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrFieldNotFound, name, shape.Name)
	}

	if err := assign(accessible(instance.Elem().Field(f.Index)), value); err != nil {
		return fmt.Errorf("error setting field %s of %s: %w", name, shape.Name, err)
	}
	return nil
}

func (p *ReflectProvider) IsInstanceOf(value any, t reflect.Type) bool {
	if value == nil {
		return false
	}
	vt := reflect.TypeOf(value)
	return vt == t || vt.AssignableTo(t)
}

// accessible returns a view of an addressable field that can be read and
// written even if the field is unexported.
func accessible(field reflect.Value) reflect.Value {
	if field.CanSet() {
		return field
	}
	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
}

// assign stores value in dst. Values of the element type of a pointer field
// are stored through a fresh pointer, and non-nil pointers are dereferenced
// for non-pointer fields.
func assign(dst reflect.Value, value reflect.Value) error {
	if !value.IsValid() {
		dst.SetZero()
		return nil
	}

	vt, dt := value.Type(), dst.Type()
	switch {
	case vt.AssignableTo(dt):
		dst.Set(value)
	case dt.Kind() == reflect.Ptr && vt.AssignableTo(dt.Elem()):
		ptr := reflect.New(dt.Elem())
		ptr.Elem().Set(value)
		dst.Set(ptr)
	case vt.Kind() == reflect.Ptr && !value.IsNil() && vt.Elem().AssignableTo(dt):
		dst.Set(value.Elem())
	case vt.Kind() == dt.Kind() && vt.ConvertibleTo(dt):
		dst.Set(value.Convert(dt))
	default:
		return fmt.Errorf("%w: %s into %s", ErrUnassignableValue, vt, dt)
	}
	return nil
}

// structType accepts a struct type or a pointer to one.
func structType(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil", ErrNotAStruct)
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotAStruct, t)
	}
	return t, nil
}

func newBuiltinTypeRegistry() *TypeRegistry {
	reg := &TypeRegistry{m: BuiltinTypes()}
	return reg
}
