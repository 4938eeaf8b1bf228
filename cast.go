package simplex

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrOverflow              = errors.New("value overflows target type")
)

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	stringerType        = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// TimeLayouts are tried in order when a string is cast to time.Time.
var TimeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// castTo converts a non-null raw value to t. This is the primitive cast table
// of the coercion engine: it knows nothing about declared shapes, and record
// to struct recursion is left to coerceTo.
//
// Currently supports, by target:
//   - string from strings, bools, numbers, bytes, TextMarshaler and Stringer
//   - ints and uints from bools, numbers and numeric strings (with overflow checking)
//   - floats and complex from bools, numbers and numeric strings
//   - bool from common spellings, then truthiness
//   - []byte from strings
//   - slices and arrays element by element, scalars wrap into one element
//   - maps with string keys from records
//   - uuid.UUID from strings and 16 bytes
//   - time.Time from TimeLayouts and unix seconds
//   - TextUnmarshaler support for custom types
//   - Interface{} support for any value
func (m *Mapper) castTo(value any, t reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	kind := kindOfValue(rv)
	if kind == KindNull {
		return reflect.Value{}, fmt.Errorf("%w: null to %s", ErrUnsupportedConversion, t)
	}

	switch {
	case t == UUIDType:
		return castUUID(rv, kind)
	case t == TimeType:
		return castTime(rv, kind)
	case reflect.PointerTo(t).Implements(textUnmarshalerType) && (kind == KindString || kind == KindBytes):
		return castText(rv, kind, t)
	}

	switch t.Kind() {
	case reflect.String:
		return castString(rv, kind, t)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return castInt(rv, kind, t)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return castUint(rv, kind, t)
	case reflect.Float32, reflect.Float64:
		return castFloat(rv, kind, t)
	case reflect.Complex64, reflect.Complex128:
		return castComplex(rv, kind, t)
	case reflect.Bool:
		return castBool(rv, kind, t)
	case reflect.Slice:
		return m.castSlice(rv, kind, t)
	case reflect.Array:
		return m.castArray(rv, kind, t)
	case reflect.Map:
		return m.castMap(rv, kind, t)
	case reflect.Interface:
		return castInterface(rv, t)
	default:
		return reflect.Value{}, unsupported(rv, t)
	}
}

func unsupported(rv reflect.Value, t reflect.Type) error {
	return fmt.Errorf("%w from %s to %s", ErrUnsupportedConversion, rv.Type(), t)
}

// castString renders scalars the way a loosely typed language would: true is
// "1", false is "", floats use the shortest exact form.
func castString(rv reflect.Value, kind Kind, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	switch kind {
	case KindString:
		out.SetString(rv.String())
	case KindBool:
		if rv.Bool() {
			out.SetString("1")
		}
	case KindInt:
		out.SetString(strconv.FormatInt(rv.Int(), 10))
	case KindUint:
		out.SetString(strconv.FormatUint(rv.Uint(), 10))
	case KindFloat:
		out.SetString(strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()))
	case KindBytes:
		out.SetString(string(rv.Bytes()))
	default:
		s, ok, err := textOf(rv)
		if err != nil {
			return reflect.Value{}, err
		}
		if !ok {
			return reflect.Value{}, unsupported(rv, t)
		}
		out.SetString(s)
	}
	return out, nil
}

func textOf(rv reflect.Value) (string, bool, error) {
	if rv.Type().Implements(textMarshalerType) {
		b, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", false, fmt.Errorf("error marshaling %s to text: %w", rv.Type(), err)
		}
		return string(b), true, nil
	}
	if rv.Type().Implements(stringerType) {
		return rv.Interface().(fmt.Stringer).String(), true, nil
	}
	return "", false, nil
}

// castInt converts to a signed integer. Floats are truncated toward zero.
func castInt(rv reflect.Value, kind Kind, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	var i int64
	switch kind {
	case KindBool:
		if rv.Bool() {
			i = 1
		}
	case KindInt:
		i = rv.Int()
	case KindUint:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return reflect.Value{}, fmt.Errorf("%w: %d to %s", ErrOverflow, u, t)
		}
		i = int64(u)
	case KindFloat:
		v, err := truncateFloat(rv.Float(), t)
		if err != nil {
			return reflect.Value{}, err
		}
		i = v
	case KindString:
		v, err := parseInt(rv.String(), t)
		if err != nil {
			return reflect.Value{}, err
		}
		i = v
	default:
		return reflect.Value{}, unsupported(rv, t)
	}

	if out.OverflowInt(i) {
		return reflect.Value{}, fmt.Errorf("%w: %d to %s", ErrOverflow, i, t)
	}
	out.SetInt(i)
	return out, nil
}

func parseInt(s string, t reflect.Type) (int64, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return i, nil
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return 0, fmt.Errorf("error converting value to %s: %w", t, err)
	}
	return truncateFloat(f, t)
}

func truncateFloat(f float64, t reflect.Type) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v to %s", ErrOverflow, f, t)
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v to %s", ErrOverflow, f, t)
	}
	return int64(f), nil
}

// castUint converts to an unsigned integer. Negative values fail.
func castUint(rv reflect.Value, kind Kind, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	var u uint64
	switch kind {
	case KindBool:
		if rv.Bool() {
			u = 1
		}
	case KindUint:
		u = rv.Uint()
	case KindInt:
		i := rv.Int()
		if i < 0 {
			return reflect.Value{}, fmt.Errorf("%w: %d to %s", ErrOverflow, i, t)
		}
		u = uint64(i)
	case KindFloat:
		i, err := truncateFloat(rv.Float(), t)
		if err != nil {
			return reflect.Value{}, err
		}
		if i < 0 {
			return reflect.Value{}, fmt.Errorf("%w: %d to %s", ErrOverflow, i, t)
		}
		u = uint64(i)
	case KindString:
		v, err := parseUint(rv.String(), t)
		if err != nil {
			return reflect.Value{}, err
		}
		u = v
	default:
		return reflect.Value{}, unsupported(rv, t)
	}

	if out.OverflowUint(u) {
		return reflect.Value{}, fmt.Errorf("%w: %d to %s", ErrOverflow, u, t)
	}
	out.SetUint(u)
	return out, nil
}

func parseUint(s string, t reflect.Type) (uint64, error) {
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return u, nil
	}
	i, err := parseInt(s, t)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, fmt.Errorf("%w: %d to %s", ErrOverflow, i, t)
	}
	return uint64(i), nil
}

func castFloat(rv reflect.Value, kind Kind, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	var f float64
	switch kind {
	case KindBool:
		if rv.Bool() {
			f = 1
		}
	case KindInt:
		f = float64(rv.Int())
	case KindUint:
		f = float64(rv.Uint())
	case KindFloat:
		f = rv.Float()
	case KindString:
		v, err := strconv.ParseFloat(rv.String(), t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("error converting value to %s: %w", t, err)
		}
		f = v
	default:
		return reflect.Value{}, unsupported(rv, t)
	}

	if out.OverflowFloat(f) {
		return reflect.Value{}, fmt.Errorf("%w: %v to %s", ErrOverflow, f, t)
	}
	out.SetFloat(f)
	return out, nil
}

func castComplex(rv reflect.Value, kind Kind, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	var c complex128
	switch kind {
	case KindInt:
		c = complex(float64(rv.Int()), 0)
	case KindUint:
		c = complex(float64(rv.Uint()), 0)
	case KindFloat:
		c = complex(rv.Float(), 0)
	case KindComplex:
		c = rv.Complex()
	case KindString:
		v, err := strconv.ParseComplex(rv.String(), t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("error converting value to %s: %w", t, err)
		}
		c = v
	default:
		return reflect.Value{}, unsupported(rv, t)
	}

	if out.OverflowComplex(c) {
		return reflect.Value{}, fmt.Errorf("%w: %v to %s", ErrOverflow, c, t)
	}
	out.SetComplex(c)
	return out, nil
}

// castBool accepts the common boolean spellings first:
//   - "true", "1", "yes", "on" (case insensitive)
//   - "false", "0", "no", "off" (case insensitive)
//
// Any other value is converted by truthiness: empty strings, zero numbers and
// empty lists or records are false, everything else is true.
//
// The spellings make "false", "no" and "off" cast to false, where plain
// truthiness would make every non-empty string other than "0" true. Unions
// with a string member keep such strings as they are, since an exact type
// match wins over member order; the difference shows on bool fields and on
// unions such as bool|int.
func castBool(rv reflect.Value, kind Kind, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	var b bool
	switch kind {
	case KindBool:
		b = rv.Bool()
	case KindString:
		s := rv.String()
		switch strings.ToLower(s) {
		case "true", "1", "yes", "on":
			b = true
		case "false", "0", "no", "off":
			b = false
		default:
			if parsed, err := strconv.ParseBool(s); err == nil {
				b = parsed
			} else {
				b = s != ""
			}
		}
	case KindInt:
		b = rv.Int() != 0
	case KindUint:
		b = rv.Uint() != 0
	case KindFloat:
		b = rv.Float() != 0
	case KindComplex:
		b = rv.Complex() != 0
	case KindBytes, KindList, KindRecord:
		b = rv.Len() > 0
	case KindObject:
		b = true
	default:
		return reflect.Value{}, unsupported(rv, t)
	}

	out.SetBool(b)
	return out, nil
}

func (m *Mapper) castSlice(rv reflect.Value, kind Kind, t reflect.Type) (reflect.Value, error) {
	if t.Elem().Kind() == reflect.Uint8 {
		switch kind {
		case KindString:
			return reflect.ValueOf([]byte(rv.String())).Convert(t), nil
		case KindBytes:
			return rv.Convert(t), nil
		}
	}

	switch kind {
	case KindList:
		out := reflect.MakeSlice(t, rv.Len(), rv.Len())
		if err := m.castElems(rv, out); err != nil {
			return reflect.Value{}, err
		}
		return out, nil
	case KindRecord, KindObject:
		return reflect.Value{}, unsupported(rv, t)
	default:
		elem, err := m.coerceTo(rv.Interface(), t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.MakeSlice(t, 1, 1)
		if err := assign(out.Index(0), elem); err != nil {
			return reflect.Value{}, err
		}
		return out, nil
	}
}

func (m *Mapper) castArray(rv reflect.Value, kind Kind, t reflect.Type) (reflect.Value, error) {
	if kind != KindList && kind != KindBytes {
		return reflect.Value{}, unsupported(rv, t)
	}
	if rv.Len() != t.Len() {
		return reflect.Value{}, fmt.Errorf("%w: %d elements to %s", ErrUnsupportedConversion, rv.Len(), t)
	}
	out := reflect.New(t).Elem()
	if err := m.castElems(rv, out); err != nil {
		return reflect.Value{}, err
	}
	return out, nil
}

// castElems coerces every element of the list src into dst, which has the
// same length.
func (m *Mapper) castElems(src, dst reflect.Value) error {
	elemType := dst.Type().Elem()
	for i := 0; i < src.Len(); i++ {
		elem, err := m.coerceTo(src.Index(i).Interface(), elemType)
		if err != nil {
			return fmt.Errorf("error converting element %d: %w", i, err)
		}
		if err := assign(dst.Index(i), elem); err != nil {
			return fmt.Errorf("error converting element %d: %w", i, err)
		}
	}
	return nil
}

func (m *Mapper) castMap(rv reflect.Value, kind Kind, t reflect.Type) (reflect.Value, error) {
	if kind != KindRecord || t.Key().Kind() != reflect.String {
		return reflect.Value{}, unsupported(rv, t)
	}

	out := reflect.MakeMapWithSize(t, rv.Len())
	put := func(key, value any) error {
		k, ok := key.(string)
		if !ok {
			return &NonStringKeyError{Key: key}
		}
		elem, err := m.coerceTo(value, t.Elem())
		if err != nil {
			return fmt.Errorf("error converting key %s: %w", k, err)
		}
		dst := reflect.New(t.Elem()).Elem()
		if err := assign(dst, elem); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), dst)
		return nil
	}

	if r, ok := rv.Interface().(Record); ok {
		for _, p := range r {
			if err := put(p.Key, p.Value); err != nil {
				return reflect.Value{}, err
			}
		}
		return out, nil
	}

	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key().Interface()
		if iter.Key().Kind() == reflect.String {
			key = iter.Key().String()
		}
		if err := put(key, iter.Value().Interface()); err != nil {
			return reflect.Value{}, err
		}
	}
	return out, nil
}

func castInterface(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, unsupported(rv, t)
	}
	out := reflect.New(t).Elem()
	out.Set(rv)
	return out, nil
}

func castUUID(rv reflect.Value, kind Kind) (reflect.Value, error) {
	var (
		id  uuid.UUID
		err error
	)
	switch kind {
	case KindString:
		id, err = uuid.Parse(rv.String())
	case KindBytes:
		id, err = uuid.FromBytes(rv.Bytes())
	default:
		return reflect.Value{}, unsupported(rv, UUIDType)
	}
	if err != nil {
		return reflect.Value{}, fmt.Errorf("error converting value to UUID: %w", err)
	}
	return reflect.ValueOf(id), nil
}

// castTime parses strings with TimeLayouts and reads numbers as unix seconds
// in UTC.
func castTime(rv reflect.Value, kind Kind) (reflect.Value, error) {
	switch kind {
	case KindString:
		s := rv.String()
		var err error
		for _, layout := range TimeLayouts {
			var tm time.Time
			if tm, err = time.Parse(layout, s); err == nil {
				return reflect.ValueOf(tm), nil
			}
		}
		return reflect.Value{}, fmt.Errorf("error converting value to time.Time: %w", err)
	case KindInt:
		return reflect.ValueOf(time.Unix(rv.Int(), 0).UTC()), nil
	case KindUint:
		if rv.Uint() > math.MaxInt64 {
			return reflect.Value{}, fmt.Errorf("%w: %d to %s", ErrOverflow, rv.Uint(), TimeType)
		}
		return reflect.ValueOf(time.Unix(int64(rv.Uint()), 0).UTC()), nil
	case KindFloat:
		sec, frac := math.Modf(rv.Float())
		return reflect.ValueOf(time.Unix(int64(sec), int64(frac*1e9)).UTC()), nil
	default:
		return reflect.Value{}, unsupported(rv, TimeType)
	}
}

func castText(rv reflect.Value, kind Kind, t reflect.Type) (reflect.Value, error) {
	var text []byte
	if kind == KindString {
		text = []byte(rv.String())
	} else {
		text = rv.Bytes()
	}

	ptr := reflect.New(t)
	if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText(text); err != nil {
		return reflect.Value{}, fmt.Errorf("error unmarshaling text to %s: %w", t, err)
	}
	return ptr.Elem(), nil
}

// isSpecialStructType checks if a struct type should be treated as a primitive
// rather than being built from a record.
func isSpecialStructType(t reflect.Type) bool {
	return t == TimeType || reflect.PointerTo(t).Implements(textUnmarshalerType)
}
