package simplex

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Mapper maps loosely typed sources onto struct types. It holds no state
// between calls other than the shape cache of its ReflectionProvider, and is
// safe for concurrent use as long as callers do not share targets.
type Mapper struct {
	provider ReflectionProvider
	logger   *slog.Logger
}

type MapperOpts struct {
	// Provider inspects and builds target types. If nil, a ReflectProvider
	// is created from Types and TagKey.
	Provider ReflectionProvider
	Types    *TypeRegistry
	TagKey   string
	// Logger receives debug records about skipped fields and rejected
	// union members. Nothing is logged if nil.
	Logger *slog.Logger
}

func NewMapper(opts MapperOpts) *Mapper {
	m := &Mapper{
		provider: opts.Provider,
		logger:   opts.Logger,
	}
	if m.provider == nil {
		m.provider = NewReflectProvider(ReflectProviderOpts{
			Types:  opts.Types,
			TagKey: opts.TagKey,
		})
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	return m
}

// Provider returns the ReflectionProvider the mapper uses.
func (m *Mapper) Provider() ReflectionProvider {
	return m.provider
}

// Hydrate assigns the fields of source onto target, which must be a non-nil
// pointer to a struct. Field names of the source are rewritten through conv
// when it is not nil. Source fields the target does not declare are skipped.
//
// Defaults are not seeded. The first failing field aborts the call and fields
// assigned before it keep their new value.
func (m *Mapper) Hydrate(source any, target any, conv NameConverter) error {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.IsNil() || tv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", ErrInvalidTarget, target)
	}

	view, err := m.sourceView(source)
	if err != nil {
		return err
	}
	return m.hydrate(view, tv, conv)
}

// Map builds a new instance of the struct type t from source and returns a
// pointer to it. The instance is created without running any constructor,
// seeded with tag defaults then constructor defaults, and hydrated.
func (m *Mapper) Map(source any, t reflect.Type, conv NameConverter) (any, error) {
	inst, err := m.mapType(source, t, conv)
	if err != nil {
		return nil, err
	}
	return inst.Interface(), nil
}

// MapTo is the generic form of Mapper.Map.
func MapTo[T any](m *Mapper, source any, conv NameConverter) (*T, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w, got %s", ErrInvalidTarget, t)
	}
	v, err := m.Map(source, t, conv)
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}

func (m *Mapper) mapType(source any, t reflect.Type, conv NameConverter) (reflect.Value, error) {
	inst, err := m.provider.ConstructBypass(t)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	if err := m.seed(inst); err != nil {
		return reflect.Value{}, err
	}

	view, err := m.sourceView(source)
	if err != nil {
		return reflect.Value{}, err
	}
	if err := m.hydrate(view, inst, conv); err != nil {
		return reflect.Value{}, err
	}
	return inst, nil
}

// seed assigns the tag defaults of every field in declaration order, then the
// constructor defaults of the type in their own order.
func (m *Mapper) seed(inst reflect.Value) error {
	shape, err := m.provider.Shape(inst.Type())
	if err != nil {
		return err
	}

	for _, f := range shape.Fields {
		if !f.HasDefault {
			continue
		}
		if err := m.assignField(inst, f, parseDefaultLiteral(f)); err != nil {
			return fmt.Errorf("error seeding default of field %s: %w", f.Name, err)
		}
	}

	defaults, err := m.provider.ConstructorDefaults(inst.Type())
	if err != nil {
		return err
	}
	for _, p := range defaults {
		name, ok := p.Key.(string)
		if !ok {
			return &NonStringKeyError{Key: p.Key}
		}
		f, ok := shape.Field(name)
		if !ok {
			continue
		}
		if err := m.assignField(inst, f, p.Value); err != nil {
			return fmt.Errorf("error seeding constructor default of field %s: %w", f.Name, err)
		}
	}

	m.logger.Debug("seeded defaults", "type", shape.Name)
	return nil
}

func (m *Mapper) hydrate(view Record, target reflect.Value, conv NameConverter) error {
	shape, err := m.provider.Shape(target.Type())
	if err != nil {
		return err
	}

	for _, p := range view {
		name, ok := p.Key.(string)
		if !ok {
			return &NonStringKeyError{Key: p.Key}
		}
		if conv != nil {
			name = conv.Convert(name)
		}

		f, ok := shape.Field(name)
		if !ok {
			m.logger.Debug("skipping field unknown to target", "field", name, "type", shape.Name)
			continue
		}
		if err := m.assignField(target, f, p.Value); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mapper) assignField(target reflect.Value, f FieldDescriptor, value any) error {
	v, err := m.coerce(f, value)
	if err != nil {
		return err
	}
	return m.provider.SetField(target, f.Name, v)
}

var defaultMapper = NewMapper(MapperOpts{})

// Map maps source onto a new T with the default mapper.
func Map[T any](source any, conv NameConverter) (*T, error) {
	return MapTo[T](defaultMapper, source, conv)
}

// Hydrate hydrates target from source with the default mapper.
func Hydrate(source any, target any, conv NameConverter) error {
	return defaultMapper.Hydrate(source, target, conv)
}
