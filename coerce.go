package simplex

import (
	"fmt"
	"reflect"
)

// coerce converts a raw source value to the declared type of field.
//
// An invalid result with a nil error stands for null and stores the zero
// value of the field.
func (m *Mapper) coerce(field FieldDescriptor, value any) (reflect.Value, error) {
	dt := field.Type

	if dt.Shape == ShapeUntyped {
		return reflect.ValueOf(value), nil
	}

	if KindOf(value) == KindNull {
		if !dt.Nullable {
			return reflect.Value{}, &NullNotAllowedError{Field: field.Name, Type: dt.String()}
		}
		return reflect.Value{}, nil
	}

	switch dt.Shape {
	case ShapeIntersection:
		return reflect.Value{}, &UnsupportedTypeShapeError{Field: field.Name, Shape: dt.Shape.String()}

	case ShapeUnion:
		vt := reflect.TypeOf(value)
		for _, t := range dt.Types {
			if vt == t {
				return reflect.ValueOf(value), nil
			}
		}

		attempts := make([]error, 0, len(dt.Types))
		for i, t := range dt.Types {
			out, err := m.coerceTo(value, t)
			if err == nil {
				return out, nil
			}
			m.logger.Debug("union member rejected value",
				"field", field.Name,
				"member", dt.Names[i],
				"from", typeNameOf(value),
				"error", err,
			)
			attempts = append(attempts, err)
		}
		return reflect.Value{}, &UnionCastError{
			Field:      field.Name,
			From:       typeNameOf(value),
			Candidates: dt.Names,
			Attempts:   attempts,
		}

	default:
		out, err := m.coerceTo(value, dt.Types[0])
		if err != nil {
			return reflect.Value{}, &CastError{
				Field: field.Name,
				From:  typeNameOf(value),
				To:    dt.Names[0],
				Cause: err,
			}
		}
		return out, nil
	}
}

// coerceTo converts value to the single type t. Null only converts to
// nillable types. Records build struct types through a nested Map without a
// name converter. Values the provider reports as instances of t pass through;
// everything else goes through the cast table.
func (m *Mapper) coerceTo(value any, t reflect.Type) (reflect.Value, error) {
	if KindOf(value) == KindNull {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: null to %s", ErrUnsupportedConversion, t)
	}

	rv := reflect.ValueOf(value)
	vt := rv.Type()
	if vt == t {
		return rv, nil
	}

	if t.Kind() == reflect.Ptr {
		if isNestedStruct(t.Elem()) && KindOf(value) == KindRecord {
			return m.mapType(value, t.Elem(), nil)
		}
		elem, err := m.coerceTo(value, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		if err := assign(ptr.Elem(), elem); err != nil {
			return reflect.Value{}, err
		}
		return ptr, nil
	}

	if isNestedStruct(t) && KindOf(value) == KindRecord {
		inst, err := m.mapType(value, t, nil)
		if err != nil {
			return reflect.Value{}, err
		}
		return inst.Elem(), nil
	}

	if vt.Kind() == reflect.Ptr && !rv.IsNil() && vt.Elem() == t {
		return rv.Elem(), nil
	}

	if m.provider.IsInstanceOf(value, t) {
		return rv, nil
	}
	if t.Kind() == reflect.Interface && t.NumMethod() > 0 {
		return reflect.Value{}, unsupported(rv, t)
	}

	return m.castTo(value, t)
}

// isNestedStruct reports whether t is a struct type built field by field
// from a record rather than cast from a scalar.
func isNestedStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && !isSpecialStructType(t)
}
