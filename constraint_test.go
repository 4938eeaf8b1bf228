package simplex

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropNamesShouldBeEqual(t *testing.T) {
	c := NewPropNamesShouldBeEqual(nil)

	snakeToCamel := &NameConverterPair{
		SourceToTarget: SnakeToCamel{},
		TargetToSource: CamelToSnake{},
	}

	tests := []struct {
		name   string
		source any
		target any
		pair   *NameConverterPair
		want   Verdict
	}{
		{
			name:   "same names",
			source: UserDTO{},
			target: User{},
			want:   Satisfied,
		},
		{
			name:   "pointers and types",
			source: &UserDTO{},
			target: reflect.TypeOf(User{}),
			want:   Satisfied,
		},
		{
			name:   "different names",
			source: Supplier{},
			target: User{},
			want: Violations{
				"Property 'companyName' missing in class simplex.User",
				"Property 'username' missing in class simplex.Supplier",
				"Property 'emailAddress' missing in class simplex.Supplier",
				"Property 'isEnabled' missing in class simplex.Supplier",
			},
		},
		{
			name:   "snake case without converter",
			source: UserDTOSnakeCase{},
			target: User{},
			want: Violations{
				"Property 'email_address' missing in class simplex.User",
				"Property 'is_enabled' missing in class simplex.User",
				"Property 'emailAddress' missing in class simplex.UserDTOSnakeCase",
				"Property 'isEnabled' missing in class simplex.UserDTOSnakeCase",
			},
		},
		{
			name:   "snake case with converter",
			source: UserDTOSnakeCase{},
			target: User{},
			pair:   snakeToCamel,
			want:   Satisfied,
		},
		{
			name:   "record source",
			source: Record{{"username", "a"}, {"emailAddress", "b"}, {"isEnabled", true}},
			target: User{},
			want:   Satisfied,
		},
		{
			name:   "map missing a field",
			source: map[string]any{"username": "a", "emailAddress": "b"},
			target: User{},
			want: Violations{
				"Property 'isEnabled' missing in class Record",
			},
		},
		{
			name:   "one way converter",
			source: UserDTOSnakeCase{},
			target: User{},
			pair:   &NameConverterPair{SourceToTarget: SnakeToCamel{}},
			want: Violations{
				"Property 'emailAddress' missing in class simplex.UserDTOSnakeCase",
				"Property 'isEnabled' missing in class simplex.UserDTOSnakeCase",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.IsSatisfied(tt.source, tt.target, tt.pair)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.OK(), got.OK())
		})
	}
}

func TestPropNamesShouldBeEqual_Symmetric(t *testing.T) {
	c := NewPropNamesShouldBeEqual(nil)

	forward, err := c.IsSatisfied(Supplier{}, User{}, nil)
	require.NoError(t, err)
	backward, err := c.IsSatisfied(User{}, Supplier{}, nil)
	require.NoError(t, err)

	assert.False(t, forward.OK())
	assert.False(t, backward.OK())
	assert.ElementsMatch(t, forward, backward)
}

func TestPropNamesShouldBeEqual_Shapes(t *testing.T) {
	c := NewPropNamesShouldBeEqual(nil)

	shape, err := UntypedShape("Wanted", "city", "country", "zipCode")
	require.NoError(t, err)

	got, err := c.IsSatisfied(Address{}, shape, nil)
	require.NoError(t, err)
	assert.Equal(t, Satisfied, got)

	shape, err = UntypedShape("Wanted", "city")
	require.NoError(t, err)

	got, err = c.IsSatisfied(shape, Address{}, nil)
	require.NoError(t, err)
	assert.Equal(t, Violations{
		"Property 'country' missing in class Wanted",
		"Property 'zipCode' missing in class Wanted",
	}, got)
}

func TestPropNamesShouldBeEqual_Errors(t *testing.T) {
	c := NewPropNamesShouldBeEqual(nil)

	_, err := c.IsSatisfied(nil, User{}, nil)
	assert.ErrorIs(t, err, ErrNilSource)

	_, err = c.IsSatisfied(User{}, 42, nil)
	assert.ErrorIs(t, err, ErrUnsupportedShapeOf)

	_, err = c.IsSatisfied(Record{{1, "x"}}, User{}, nil)
	assert.ErrorIs(t, err, ErrNonStringKey)

	// Car is not a builtin type name
	_, err = c.IsSatisfied(ClassWithIntersection{}, User{}, nil)
	assert.ErrorIs(t, err, ErrUnknownTypeName)
}

func TestCheck(t *testing.T) {
	got, err := Check(UserDTO{}, User{}, nil)
	require.NoError(t, err)
	assert.True(t, got.OK())

	m := newTestMapper(t)
	got, err = m.Check(ClassWithIntersection{}, map[string]any{"intersectionType": nil}, nil)
	require.NoError(t, err)
	assert.Equal(t, Satisfied, got)
}

func TestViolations_Error(t *testing.T) {
	v := Violations{"first", "second"}
	assert.Equal(t, "first; second", v.Error())
	assert.False(t, v.OK())
	assert.True(t, Satisfied.OK())
}
