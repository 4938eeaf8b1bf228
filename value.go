package simplex

import (
	"reflect"
)

// Kind is the runtime type tag of a raw source value. The set is closed:
// every value maps to exactly one Kind, so casts can switch over it
// exhaustively.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindComplex
	KindString
	KindBytes
	KindList
	KindRecord
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindComplex:
		return "complex"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// KindOf returns the Kind of v. Nil interfaces and nil pointers are
// KindNull; maps and Records are KindRecord.
func KindOf(v any) Kind {
	if v == nil {
		return KindNull
	}
	if _, ok := v.(Record); ok {
		return KindRecord
	}
	return kindOfValue(reflect.ValueOf(v))
}

func kindOfValue(rv reflect.Value) Kind {
	if !rv.IsValid() {
		return KindNull
	}
	switch rv.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Complex64, reflect.Complex128:
		return KindComplex
	case reflect.String:
		return KindString
	case reflect.Slice:
		if rv.Type() == RecordType {
			return KindRecord
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return KindBytes
		}
		return KindList
	case reflect.Array:
		return KindList
	case reflect.Map:
		return KindRecord
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return KindNull
		}
		return KindObject
	default:
		return KindObject
	}
}

// typeNameOf names the runtime type of v for error messages.
func typeNameOf(v any) string {
	if v == nil {
		return NullTypeName
	}
	return reflect.TypeOf(v).String()
}
