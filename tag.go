package simplex

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Base Error types for tag parsing errors
var (
	ErrSubTagNotFound         = errors.New("subtag not found")
	ErrInvalidSubTagFormat    = errors.New("invalid subtag format")
	ErrUnterminatedSubTag     = errors.New("unterminated subtag value")
	ErrUnknownSubTag          = errors.New("unknown subtag")
	ErrDuplicateSubTag        = errors.New("duplicate subtag")
	ErrEmptyFieldNameInSubTag = errors.New("field name cannot be empty")
)

// This file contains the tag parser for the simplex package. It reads the
// `simplex` tag of a struct field and returns the mapping name, the default
// literal and the type expression of the field.
//
// Tag grammar:
//     <field> <type> <tag>
// tag:
//     simplex:"<subtag_list>" | simplex:"-"
// subtag_list:
//     [<subtag>]^* // Space Separated
// subtag:
//     <key>:'<value>' | <key>:<simple_value>
// key:
//     name | default | type
// value:
//     <string> // \' escapes the delimiter, :'...' nests
// simple_value:
//     <string without spaces>

// FieldTag corresponds to the `simplex` tag of a struct field.
// Example: Count int `simplex:"name:'count' default:'5' type:'?int'"`
type FieldTag struct {
	Skip       bool   // The field is invisible to the mapper
	Name       string // Mapping name, empty if not set
	Default    string // Default literal
	HasDefault bool   // Whether a default subtag is present
	Type       string // Type expression, empty if not set
}

// ParseFieldTag reads the tag stored under tagKey on the given field.
// A missing tag yields the zero FieldTag.
func ParseFieldTag(field reflect.StructField, tagKey string) (FieldTag, error) {
	tag, ok := field.Tag.Lookup(tagKey)
	if !ok {
		return FieldTag{}, nil
	}

	tag = strings.TrimSpace(tag)
	if tag == SkipTagValue {
		return FieldTag{Skip: true}, nil
	}

	subtags, err := SubTags(tag)
	if err != nil {
		return FieldTag{}, fmt.Errorf("error parsing %s tag for field %s: %w", tagKey, field.Name, err)
	}

	var ft FieldTag
	for key, value := range subtags {
		switch key {
		case NameSubTagPrefix:
			if value == "" {
				return FieldTag{}, fmt.Errorf("%w: field %s", ErrEmptyFieldNameInSubTag, field.Name)
			}
			ft.Name = value
		case DefaultValueSubTagPrefix:
			ft.Default = value
			ft.HasDefault = true
		case TypeSubTagPrefix:
			ft.Type = strings.TrimSpace(value)
		default:
			return FieldTag{}, fmt.Errorf("%w '%s' in %s tag for field %s", ErrUnknownSubTag, key, tagKey, field.Name)
		}
	}

	return ft, nil
}

// ResolveFieldName applies the naming rule for struct fields:
// name subtag > json tag name > Go field name. The second return value is
// false when the field is hidden by a "-" json tag.
func ResolveFieldName(field reflect.StructField, ft FieldTag) (string, bool) {
	if ft.Name != "" {
		return ft.Name, true
	}
	if jt := field.Tag.Get(JSONTagKey); jt != "" {
		if jt == SkipTagValue {
			return "", false
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return jt, true
		}
	}
	return field.Name, true
}

// SubTags splits a tag body into its key/value subtags using the default
// delimiter.
func SubTags(tag string) (map[string]string, error) {
	return SubTagsByDelimiter(tag, DefaultSubTagScopeDelimiter)
}

// SubTagsByDelimiter splits a tag body into its key/value subtags. Values
// may be delimited by delim, in which case they can contain spaces, escaped
// delimiters and nested subtags.
func SubTagsByDelimiter(tag string, delim byte) (map[string]string, error) {
	result := make(map[string]string)

	i := 0
	for {
		i = skipSpaces(tag, i)
		if i >= len(tag) {
			return result, nil
		}

		colonIdx := strings.Index(tag[i:], DefaultKeyValueTagDelimiter)
		if colonIdx == -1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSubTagFormat, tag[i:])
		}
		colonIdx += i

		key := tag[i:colonIdx]
		if key == "" || strings.ContainsAny(key, " \t") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSubTagFormat, tag[i:])
		}
		if _, exists := result[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSubTag, key)
		}

		value, next, err := scanSubTagValue(tag, colonIdx+1, delim)
		if err != nil {
			return nil, fmt.Errorf("%w for %q", err, key)
		}
		result[key] = value
		i = next
	}
}

// SubTag returns the value of a single subtag using the default delimiter.
func SubTag(tag string, key string) (string, error) {
	return SubTagByDelimiter(tag, key, DefaultSubTagScopeDelimiter)
}

// Example: tag = `default:'5' type:'string|bool'`
//
//	SubTagByDelimiter(tag, "type", '\'') // "string|bool"
//
// Nested example:
//
//	tag = `a:'b:'c:'d'''`
//	SubTagByDelimiter(tag, "a", '\'') // "b:'c:'d''"
func SubTagByDelimiter(tag string, key string, delim byte) (string, error) {
	subtags, err := SubTagsByDelimiter(tag, delim)
	if err != nil {
		return "", err
	}
	value, ok := subtags[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSubTagNotFound, key)
	}
	return value, nil
}

// scanSubTagValue reads the value that starts at tag[start] and returns it
// together with the index just past its end.
func scanSubTagValue(tag string, start int, delim byte) (string, int, error) {
	start = skipSpaces(tag, start)
	if start >= len(tag) {
		return "", start, nil
	}

	// simple value, ends at the next space
	if tag[start] != delim {
		end := start
		for end < len(tag) && tag[end] != ' ' && tag[end] != '\t' {
			end++
		}
		return tag[start:end], end, nil
	}

	var builder strings.Builder
	nestingLevel := 0

	for i := start + 1; i < len(tag); i++ {
		c := tag[i]

		switch {
		case c == '\\' && i+1 < len(tag) && (tag[i+1] == delim || tag[i+1] == '\\'):
			i++
			builder.WriteByte(tag[i])
		case c == ':' && i+1 < len(tag) && tag[i+1] == delim:
			nestingLevel++
			builder.WriteByte(c)
			i++
			builder.WriteByte(delim)
		case c == delim && nestingLevel == 0:
			return builder.String(), i + 1, nil
		case c == delim:
			nestingLevel--
			builder.WriteByte(c)
		default:
			builder.WriteByte(c)
		}
	}

	return "", len(tag), ErrUnterminatedSubTag
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}
