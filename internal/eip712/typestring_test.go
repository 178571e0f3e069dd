package eip712

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var mailTypes = Types{
	"Person": {
		{Name: "name", Type: "string"},
		{Name: "wallet", Type: "address"},
	},
	"Mail": {
		{Name: "from", Type: "Person"},
		{Name: "to", Type: "Person"},
		{Name: "contents", Type: "string"},
	},
}

func TestEncodeTypeMail(t *testing.T) {
	registry, err := NewRegistry(mailTypes)
	require.NoError(t, err)

	encoded, err := registry.EncodeType("Mail")
	require.NoError(t, err)
	require.Equal(t, "Mail(Person from,Person to,string contents)Person(string name,address wallet)", encoded)

	typeHash, err := registry.TypeHash("Mail")
	require.NoError(t, err)
	require.Equal(t, "0xa0cedeb2dc280ba39b857546d74f5549c3a1d7bdc2dd96bf881f76108e23dac2", typeHash.Hex())

	personHash, err := registry.TypeHash("Person")
	require.NoError(t, err)
	require.Equal(t, "0xb9d8c78acf9b987311de6c7b45bb6a9c8e1bf361fa7fd3467a2163f994c79500", personHash.Hex())
}

func TestEncodeTypeSortsReferencedStructs(t *testing.T) {
	registry, err := NewRegistry(Types{
		"Root": {
			// Declared z-struct first: the rendered order must still be
			// alphabetical after the root.
			{Name: "second", Type: "Zebra"},
			{Name: "first", Type: "Apple"},
		},
		"Zebra": {{Name: "stripes", Type: "uint8"}},
		"Apple": {{Name: "kind", Type: "string"}},
	})
	require.NoError(t, err)

	encoded, err := registry.EncodeType("Root")
	require.NoError(t, err)
	require.Equal(t, "Root(Zebra second,Apple first)Apple(string kind)Zebra(uint8 stripes)", encoded)
}

func TestEncodeTypeReachesThroughArrays(t *testing.T) {
	registry, err := NewRegistry(Types{
		"Batch": {{Name: "items", Type: "Item[]"}},
		"Item":  {{Name: "id", Type: "uint256"}},
	})
	require.NoError(t, err)

	encoded, err := registry.EncodeType("Batch")
	require.NoError(t, err)
	require.Equal(t, "Batch(Item[] items)Item(uint256 id)", encoded)
}

func TestTypeHashFieldOrderSensitivity(t *testing.T) {
	forward, err := NewRegistry(Types{"Pair": {
		{Name: "a", Type: "uint256"},
		{Name: "b", Type: "address"},
	}})
	require.NoError(t, err)

	reversed, err := NewRegistry(Types{"Pair": {
		{Name: "b", Type: "address"},
		{Name: "a", Type: "uint256"},
	}})
	require.NoError(t, err)

	forwardHash, err := forward.TypeHash("Pair")
	require.NoError(t, err)
	reversedHash, err := reversed.TypeHash("Pair")
	require.NoError(t, err)

	require.NotEqual(t, forwardHash, reversedHash)
}

func TestRegistryRejectsCycles(t *testing.T) {
	_, err := NewRegistry(Types{
		"A": {{Name: "b", Type: "B"}},
		"B": {{Name: "a", Type: "A"}},
	})
	require.ErrorIs(t, err, ErrCyclicType)
}

func TestRegistryRejectsSelfReference(t *testing.T) {
	_, err := NewRegistry(Types{
		"Node": {{Name: "next", Type: "Node"}},
	})
	require.ErrorIs(t, err, ErrCyclicType)

	// A cycle hidden behind an array suffix is still a cycle.
	_, err = NewRegistry(Types{
		"Tree": {{Name: "children", Type: "Tree[]"}},
	})
	require.ErrorIs(t, err, ErrCyclicType)
}

func TestRegistryRejectsUnknownTypes(t *testing.T) {
	_, err := NewRegistry(Types{
		"Order": {{Name: "maker", Type: "Trader"}},
	})
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = NewRegistry(Types{
		"Order": {{Name: "amount", Type: "uint257"}},
	})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestRegistryRejectsBadIdentifiers(t *testing.T) {
	_, err := NewRegistry(Types{
		"Order": {{Name: "not valid", Type: "uint256"}},
	})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestRegistryRejectsDuplicateFields(t *testing.T) {
	_, err := NewRegistry(Types{
		"Order": {
			{Name: "amount", Type: "uint256"},
			{Name: "amount", Type: "uint256"},
		},
	})
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestRegistryRejectsMalformedArraySuffix(t *testing.T) {
	for _, typ := range []string{"uint256[0]", "uint256[01]", "uint256[-1]", "uint256[x]"} {
		_, err := NewRegistry(Types{"T": {{Name: "a", Type: typ}}})
		require.ErrorIs(t, err, ErrUnsupportedType, typ)
	}
}

func TestEncodeTypeUnknownRoot(t *testing.T) {
	registry, err := NewRegistry(mailTypes)
	require.NoError(t, err)

	_, err = registry.EncodeType("Missing")
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestTypeHashCacheStable(t *testing.T) {
	registry, err := NewRegistry(mailTypes)
	require.NoError(t, err)

	first, err := registry.TypeHash("Mail")
	require.NoError(t, err)
	second, err := registry.TypeHash("Mail")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
