package simplex

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

var (
	ErrTypeAlreadyRegistered = errors.New("a type with this name is already registered")
	ErrUnknownTypeName       = errors.New("no builtin or registered type found for this name")
	ErrNilType               = errors.New("type cannot be nil")
)

// TypeRegistry resolves the names used in `type` subtags to Go types.
//
// It starts with the builtin names (see BuiltinTypes) unless
// TypeRegistryOpts.ExcludeDefaults is set. Custom struct and interface
// types become usable in type expressions once registered:
//
//	reg := simplex.NewTypeRegistry(simplex.TypeRegistryOpts{})
//	simplex.RegisterType[Money](reg, "Money")
//
// A TypeRegistry is safe for concurrent use.
type TypeRegistry struct {
	mu sync.RWMutex
	m  map[string]reflect.Type // type name -> type
}

type TypeRegistryOpts struct {
	Types           map[string]reflect.Type
	ExcludeDefaults bool
}

// BuiltinTypes returns the names every registry knows by default.
func BuiltinTypes() map[string]reflect.Type {
	return map[string]reflect.Type{
		"string":     StringType,
		"bool":       reflect.TypeOf(false),
		"int":        reflect.TypeOf(int(0)),
		"int8":       reflect.TypeOf(int8(0)),
		"int16":      reflect.TypeOf(int16(0)),
		"int32":      reflect.TypeOf(int32(0)),
		"int64":      reflect.TypeOf(int64(0)),
		"uint":       reflect.TypeOf(uint(0)),
		"uint8":      reflect.TypeOf(uint8(0)),
		"uint16":     reflect.TypeOf(uint16(0)),
		"uint32":     reflect.TypeOf(uint32(0)),
		"uint64":     reflect.TypeOf(uint64(0)),
		"float32":    reflect.TypeOf(float32(0)),
		"float64":    reflect.TypeOf(float64(0)),
		"float":      reflect.TypeOf(float64(0)),
		"complex64":  reflect.TypeOf(complex64(0)),
		"complex128": reflect.TypeOf(complex128(0)),
		"bytes":      ByteSliceType,
		"array":      AnySliceType,
		"list":       AnySliceType,
		"map":        StringAnyMapType,
		"record":     RecordType,
		"any":        AnyType,
		"mixed":      AnyType,
		"uuid":       UUIDType,
		"time":       TimeType,
	}
}

func NewTypeRegistry(opts TypeRegistryOpts) (*TypeRegistry, error) {
	reg := &TypeRegistry{
		m: make(map[string]reflect.Type),
	}

	if !opts.ExcludeDefaults {
		for name, t := range BuiltinTypes() {
			reg.m[name] = t
		}
	}

	for name, t := range opts.Types {
		if err := reg.Register(name, t); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// Register makes t available under name.
func (reg *TypeRegistry) Register(name string, t reflect.Type) error {
	if t == nil {
		return fmt.Errorf("%w: %s", ErrNilType, name)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrTypeAlreadyRegistered, name)
	}
	reg.m[name] = t
	return nil
}

// RegisterType registers the type argument under name.
func RegisterType[T any](reg *TypeRegistry, name string) error {
	return reg.Register(name, reflect.TypeFor[T]())
}

// Lookup returns the type registered under name.
func (reg *TypeRegistry) Lookup(name string) (reflect.Type, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	t, exists := reg.m[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTypeName, name)
	}
	return t, nil
}

// Names returns every registered name in lexical order.
func (reg *TypeRegistry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	names := make([]string, 0, len(reg.m))
	for name := range reg.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
