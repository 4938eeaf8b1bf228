package simplex

import (
	"reflect"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRegistry(t *testing.T) {
	t.Run("Builtins", func(t *testing.T) {
		reg, err := NewTypeRegistry(TypeRegistryOpts{})
		require.NoError(t, err)

		for name, want := range BuiltinTypes() {
			got, err := reg.Lookup(name)
			require.NoError(t, err, name)
			assert.Equal(t, want, got, name)
		}

		got, err := reg.Lookup("float")
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeOf(float64(0)), got)
	})

	t.Run("ExcludeDefaults", func(t *testing.T) {
		reg, err := NewTypeRegistry(TypeRegistryOpts{ExcludeDefaults: true})
		require.NoError(t, err)

		_, err = reg.Lookup("string")
		assert.ErrorIs(t, err, ErrUnknownTypeName)
		assert.Empty(t, reg.Names())
	})

	t.Run("TypesFromOpts", func(t *testing.T) {
		reg, err := NewTypeRegistry(TypeRegistryOpts{
			Types: map[string]reflect.Type{"Money": reflect.TypeOf(Money{})},
		})
		require.NoError(t, err)

		got, err := reg.Lookup("Money")
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeOf(Money{}), got)
	})

	t.Run("TypesFromOptsClashWithBuiltin", func(t *testing.T) {
		_, err := NewTypeRegistry(TypeRegistryOpts{
			Types: map[string]reflect.Type{"string": reflect.TypeOf(Money{})},
		})
		assert.ErrorIs(t, err, ErrTypeAlreadyRegistered)
	})

	t.Run("Register", func(t *testing.T) {
		reg, err := NewTypeRegistry(TypeRegistryOpts{})
		require.NoError(t, err)

		require.NoError(t, reg.Register("Address", reflect.TypeOf(Address{})))

		err = reg.Register("Address", reflect.TypeOf(Customer{}))
		assert.ErrorIs(t, err, ErrTypeAlreadyRegistered)

		err = reg.Register("Nothing", nil)
		assert.ErrorIs(t, err, ErrNilType)

		got, err := reg.Lookup("Address")
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeOf(Address{}), got, "a failed registration must not replace the first")
	})

	t.Run("RegisterType", func(t *testing.T) {
		reg, err := NewTypeRegistry(TypeRegistryOpts{})
		require.NoError(t, err)

		require.NoError(t, RegisterType[Car](reg, "Car"))

		got, err := reg.Lookup("Car")
		require.NoError(t, err)
		assert.Equal(t, reflect.Interface, got.Kind())
		assert.True(t, reflect.TypeOf(Alfa147{}).Implements(got))
	})

	t.Run("LookupUnknown", func(t *testing.T) {
		reg, err := NewTypeRegistry(TypeRegistryOpts{})
		require.NoError(t, err)

		_, err = reg.Lookup("Unknown")
		assert.ErrorIs(t, err, ErrUnknownTypeName)
		assert.Contains(t, err.Error(), "Unknown")
	})

	t.Run("Names", func(t *testing.T) {
		reg, err := NewTypeRegistry(TypeRegistryOpts{})
		require.NoError(t, err)
		require.NoError(t, RegisterType[Money](reg, "Money"))

		names := reg.Names()
		assert.True(t, sort.StringsAreSorted(names))
		assert.Contains(t, names, "Money")
		assert.Contains(t, names, "uuid")
		assert.Len(t, names, len(BuiltinTypes())+1)
	})
}
