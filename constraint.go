package simplex

import (
	"fmt"
	"reflect"
	"strings"
)

// Verdict is the result of a Constraint: either Satisfied or a non-empty
// Violations list.
type Verdict interface {
	OK() bool
	isVerdict()
}

type satisfied struct{}

func (satisfied) OK() bool       { return true }
func (satisfied) String() string { return "satisfied" }
func (satisfied) isVerdict()     {}

// Satisfied is the Verdict of a constraint that holds.
var Satisfied Verdict = satisfied{}

// Violations lists what breaks a constraint, in the order it was found. It
// is never empty when returned as a Verdict.
type Violations []string

func (Violations) OK() bool   { return false }
func (Violations) isVerdict() {}

func (v Violations) Error() string {
	return strings.Join(v, "; ")
}

// Constraint checks a structural contract between a source and a target.
//
// Source and target may each be a *Shape, a reflect.Type of a struct, a
// struct value or pointer, or a mapping (a Record or Go map) whose keys are
// taken as field names.
type Constraint interface {
	IsSatisfied(source, target any, pair *NameConverterPair) (Verdict, error)
}

var __compTimeCheckImplementsConstraint Constraint = &PropNamesShouldBeEqual{}

// PropNamesShouldBeEqual requires source and target to declare the same
// field names once translated through the converter pair.
type PropNamesShouldBeEqual struct {
	provider ReflectionProvider
}

// NewPropNamesShouldBeEqual uses provider to read shapes; a default
// ReflectProvider if nil.
func NewPropNamesShouldBeEqual(provider ReflectionProvider) *PropNamesShouldBeEqual {
	if provider == nil {
		provider = NewReflectProvider(ReflectProviderOpts{})
	}
	return &PropNamesShouldBeEqual{provider: provider}
}

// IsSatisfied reports every field of source missing from target under
// pair.SourceToTarget, then every field of target missing from source under
// pair.TargetToSource.
func (c *PropNamesShouldBeEqual) IsSatisfied(source, target any, pair *NameConverterPair) (Verdict, error) {
	sourceShape, err := shapeOf(c.provider, source)
	if err != nil {
		return nil, fmt.Errorf("error reading source shape: %w", err)
	}
	targetShape, err := shapeOf(c.provider, target)
	if err != nil {
		return nil, fmt.Errorf("error reading target shape: %w", err)
	}

	var forward, reverse NameConverter
	if pair != nil {
		forward, reverse = pair.SourceToTarget, pair.TargetToSource
	}

	violations := append(
		missingFields(sourceShape, targetShape, forward),
		missingFields(targetShape, sourceShape, reverse)...,
	)
	if len(violations) == 0 {
		return Satisfied, nil
	}
	return violations, nil
}

func missingFields(from, in *Shape, conv NameConverter) Violations {
	var violations Violations
	for _, f := range from.Fields {
		name := f.Name
		if conv != nil {
			name = conv.Convert(name)
		}
		if !in.Has(name) {
			violations = append(violations, fmt.Sprintf("Property '%s' missing in class %s", name, in.Name))
		}
	}
	return violations
}

// shapeOf derives the shape of a constraint operand.
func shapeOf(provider ReflectionProvider, v any) (*Shape, error) {
	switch s := v.(type) {
	case nil:
		return nil, ErrNilSource
	case *Shape:
		return s, nil
	case reflect.Type:
		return provider.Shape(s)
	case Record:
		return recordShape(s)
	}

	rv := reflect.ValueOf(v)
	t := rv.Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		return provider.Shape(t)
	case reflect.Map:
		if rv.Kind() == reflect.Ptr {
			if rv.IsNil() {
				return nil, ErrNilSource
			}
			rv = rv.Elem()
		}
		return recordShape(recordFromMap(rv))
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShapeOf, v)
	}
}

func recordShape(r Record) (*Shape, error) {
	names := make([]string, len(r))
	for i, p := range r {
		name, ok := p.Key.(string)
		if !ok {
			return nil, &NonStringKeyError{Key: p.Key}
		}
		names[i] = name
	}
	return UntypedShape(RecordShapeName, names...)
}

// Check reports whether source and target declare the same field names with
// the default mapper's provider.
func Check(source, target any, pair *NameConverterPair) (Verdict, error) {
	return defaultMapper.Check(source, target, pair)
}

// Check runs PropNamesShouldBeEqual with the mapper's provider.
func (m *Mapper) Check(source, target any, pair *NameConverterPair) (Verdict, error) {
	return NewPropNamesShouldBeEqual(m.provider).IsSatisfied(source, target, pair)
}
