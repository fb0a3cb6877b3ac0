package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapforge/internal/descriptor"
)

func loadOrders(t *testing.T) *World {
	t.Helper()

	world, err := NewLoader().Load("mapforge/examples/orders")
	require.NoError(t, err)
	require.NotNil(t, world)

	return world
}

func TestLoadPackages(t *testing.T) {
	world := loadOrders(t)

	assert.Greater(t, world.Len(), 0)

	for _, name := range []string{"OrderDTO", "Order", "Tags", "Stock"} {
		assert.NotNil(t, world.Lookup(name), "type %s should be discovered", name)
	}
}

func TestLoadFailsOnUnknownPattern(t *testing.T) {
	_, err := NewLoader().Load("mapforge/examples/no-such-package")
	assert.Error(t, err)
}

func TestLookupQualified(t *testing.T) {
	world := loadOrders(t)

	full := world.Lookup("mapforge/examples/orders.Tags")
	require.NotNil(t, full)
	assert.Equal(t, "Tags", full.Name)
	assert.Equal(t, "mapforge/examples/orders", full.PkgPath)

	// package alias form resolves to the same descriptor
	assert.Same(t, full, world.Lookup("orders.Tags"))
	assert.Same(t, full, world.Lookup("Tags"))
}

func TestLookupMisses(t *testing.T) {
	world := loadOrders(t)

	assert.Nil(t, world.Lookup(""))
	assert.Nil(t, world.Lookup("Nope"))
	assert.Nil(t, world.Lookup("elsewhere.Tags"))
}

func TestNamedSliceDescriptor(t *testing.T) {
	world := loadOrders(t)

	tags := world.Lookup("orders.Tags")
	require.NotNil(t, tags)

	assert.Equal(t, descriptor.ContainerList, tags.Kind)
	require.NotNil(t, tags.Elem())
	assert.Equal(t, "string", tags.Elem().Name)
}

func TestNamedMapDescriptor(t *testing.T) {
	world := loadOrders(t)

	stock := world.Lookup("orders.Stock")
	require.NotNil(t, stock)

	assert.Equal(t, descriptor.ContainerMap, stock.Kind)
	require.NotNil(t, stock.MapKey())
	require.NotNil(t, stock.MapValue())
	assert.Equal(t, "string", stock.MapKey().Name)
	assert.Equal(t, "int64", stock.MapValue().Name)
}

func TestStructDescriptor(t *testing.T) {
	world := loadOrders(t)

	order := world.Lookup("orders.Order")
	require.NotNil(t, order)

	assert.Equal(t, "Order", order.Name)
	assert.Equal(t, descriptor.ContainerNone, order.Kind, "plain struct types carry no container kind")
	assert.Equal(t, "orders.Order", order.GoString())
}

func TestTranslateCachesByIdentity(t *testing.T) {
	world := loadOrders(t)

	// Tags appears both as a top-level type and as the OrderDTO field type;
	// the world ends up with a single descriptor for it.
	tags := world.Lookup("Tags")
	require.NotNil(t, tags)
	assert.Same(t, tags, world.Lookup("mapforge/examples/orders.Tags"))
}
