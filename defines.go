package simplex

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// constants for the struct tag and its subtags
const (
	DefaultTagKey               = "simplex"
	JSONTagKey                  = "json"
	NameSubTagPrefix            = "name"
	DefaultValueSubTagPrefix    = "default"
	TypeSubTagPrefix            = "type"
	SkipTagValue                = "-"
	DefaultSubTagScopeDelimiter = byte('\'')
	DefaultKeyValueTagDelimiter = ":"
)

// constants for type expressions in the type subtag
const (
	UnionTypeDelimiter        = "|"
	IntersectionTypeDelimiter = "&"
	NullableTypePrefix        = "?"
	NullTypeName              = "null"
)

// RecordShapeName is the shape name reported for shapes derived from
// mapping sources.
const RecordShapeName = "Record"

// reflect.TypeOf constants for type checks
var (
	UUIDType         = reflect.TypeOf(uuid.UUID{})
	TimeType         = reflect.TypeOf(time.Time{})
	RecordType       = reflect.TypeOf(Record{})
	StringType       = reflect.TypeOf("")
	ByteSliceType    = reflect.TypeOf([]byte{})
	AnySliceType     = reflect.TypeOf([]any{})
	StringAnyMapType = reflect.TypeOf(map[string]any{})
	AnyType          = reflect.TypeOf((*any)(nil)).Elem()
)
