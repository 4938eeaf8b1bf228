// Package simplex is a structural object mapper. It converts loosely-typed
// data (an ordered record of named values, a Go map, a JSON or YAML document,
// or the fields of another struct) into a target struct whose fields have
// declared types, seeding defaults, translating names and coercing values on
// the way.
//
// The package exposes three operations:
//   - Map(): build a new instance of a target type from a source
//   - Hydrate(): apply a source onto an existing instance
//   - Check(): compare the field names of two shapes
//
// Or you may create your own Mapper with a custom TypeRegistry,
// ReflectionProvider or logger.
//
// # Declared types
//
// Each target field has a declared type. By default it is the Go type of the
// field. An empty interface field without further information is untyped and
// accepts any value unchanged. The `simplex` struct tag refines a field:
//
//	type Entity struct {
//		Count  int `json:"count" simplex:"default:'1'"`
//		Value  any `json:"value" simplex:"type:'string|bool|null'"`
//		hidden int `simplex:"-"`
//	}
//
// The tag supports the following subtags:
//   - `name`: the field name used for mapping. Falls back to the json tag name,
//     then to the Go field name.
//   - `default`: a literal seeded into the field by Map before the source is
//     applied.
//   - `type`: a type expression. `a|b` is a union whose members are tried in
//     declaration order, `?a` is a nullable a, `null` marks a union as nullable
//     and `a&b` is an intersection, which is recognised but never satisfied.
//
// Type names in expressions resolve through a TypeRegistry. Builtin names
// cover the Go scalar types, `array`, `record`, `uuid` and `time`; custom types
// are added with RegisterType.
//
// # Sources
//
// A source is turned into a Record, an ordered list of key/value pairs:
//   - Record: used as is
//   - Go maps: keys sorted, non-string keys are rejected when reached
//   - structs and pointers to structs: every field, unexported ones included,
//     in declaration order
//   - JSON ([]byte or gjson.Result) and YAML (*yaml.Node): document order
//
// Nested records assigned to struct typed fields are mapped recursively with
// the same seeding and hydration rules.
package simplex
