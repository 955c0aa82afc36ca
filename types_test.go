// File: settei/types_test.go
package settei_test

import (
	"testing"

	"github.com/settei-dev/settei"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveTypes(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.True(t, settei.String.Check("x"))
		assert.False(t, settei.String.Check(1))
		assert.False(t, settei.String.Check(nil))
	})

	t.Run("Int Accepts Every Machine Width", func(t *testing.T) {
		assert.True(t, settei.Int.Check(1))
		assert.True(t, settei.Int.Check(int64(1)))
		assert.True(t, settei.Int.Check(uint8(1)))
		assert.False(t, settei.Int.Check(1.5))
	})

	t.Run("Float", func(t *testing.T) {
		assert.True(t, settei.Float.Check(1.5))
		assert.True(t, settei.Float.Check(float32(1.5)))
		assert.False(t, settei.Float.Check(1))
	})

	t.Run("Containers", func(t *testing.T) {
		assert.True(t, settei.Map.Check(map[string]any{}))
		assert.True(t, settei.List.Check([]any{}))
		assert.True(t, settei.List.Check(settei.Tuple{}))
		assert.False(t, settei.List.Check("not a list"))
	})

	t.Run("Any And Nil", func(t *testing.T) {
		assert.True(t, settei.Any.Check(nil))
		assert.True(t, settei.Any.Check("anything"))
		assert.True(t, settei.Nil.Check(nil))
		assert.False(t, settei.Nil.Check(""))
	})
}

func TestEnumType(t *testing.T) {
	fruit := settei.NewEnum("Fruit", "apple", "banana")

	t.Run("Member Construction", func(t *testing.T) {
		m, ok := fruit.Member("apple")
		require.True(t, ok)
		assert.Equal(t, "apple", m.Name())
		assert.Equal(t, "Fruit.apple", m.String())
		assert.True(t, fruit.Check(m))
	})

	t.Run("Unknown Member", func(t *testing.T) {
		_, ok := fruit.Member("cherry")
		assert.False(t, ok)
	})

	t.Run("Members Of A Different Enum Do Not Check", func(t *testing.T) {
		other := settei.NewEnum("Fruit", "apple", "banana")
		m, ok := other.Member("apple")
		require.True(t, ok)
		assert.False(t, fruit.Check(m))
	})

	t.Run("Raw Strings Do Not Check", func(t *testing.T) {
		assert.False(t, fruit.Check("apple"))
	})
}

func TestUnionType(t *testing.T) {
	u := settei.Union(settei.String, settei.Int)
	assert.Equal(t, "string | int", u.Name())
	assert.True(t, u.Check("x"))
	assert.True(t, u.Check(1))
	assert.False(t, u.Check(1.5))
	assert.Len(t, u.Types(), 2)
}

func TestInterfaceOf(t *testing.T) {
	typ := settei.InterfaceOf[Greeter]()
	assert.True(t, typ.Check(&fakeService{}))
	assert.False(t, typ.Check(&plainBox{}))
	assert.False(t, typ.Check(nil))
}

func TestTypeOf(t *testing.T) {
	typ := settei.TypeOf("")
	assert.Equal(t, "string", typ.Name())
	assert.True(t, typ.Check("x"))
	assert.False(t, typ.Check(1))
}
