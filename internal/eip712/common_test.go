package eip712

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/stretchr/testify/require"
)

func TestPermitTypeHash(t *testing.T) {
	registry, err := NewRegistry(Types{"Permit": PermitType})
	require.NoError(t, err)

	// The PERMIT_TYPEHASH constant baked into EIP-2612 token contracts.
	typeHash, err := registry.TypeHash("Permit")
	require.NoError(t, err)
	require.Equal(t, "0x6e71edae12b1b97f4d1f60370fef10105fa2faae0126114a169c64845d6126c9", typeHash.Hex())
}

func TestPermitTypedData(t *testing.T) {
	td := NewPermitTypedData(Domain{
		Name:              "Yearn Vault",
		Version:           "0.3.5",
		ChainID:           math.NewHexOrDecimal256(1),
		VerifyingContract: "0x1596Ff8ED308a83897a731F3C1e814B19E11D68c",
	}, Message{
		"owner":    "0xf5a2f086cCB7eec82d10bc3600932E9f78d0B212",
		"spender":  "0x1CEE82EEd89Bd5Be5bf2507a92a755dcF1D8e8dc",
		"value":    math.NewHexOrDecimal256(100),
		"nonce":    math.NewHexOrDecimal256(0),
		"deadline": math.NewHexOrDecimal256(1619151069),
	})

	digest, _, _, err := td.Digest()
	require.NoError(t, err)

	again, _, _, err := td.Digest()
	require.NoError(t, err)
	require.Equal(t, digest, again)
}

func TestSafeTxTypeVersions(t *testing.T) {
	v1, err := SafeTxType("1.1.1")
	require.NoError(t, err)
	require.Equal(t, SafeTxV1Type, v1)

	v2, err := SafeTxType("1.3.0")
	require.NoError(t, err)
	require.Equal(t, SafeTxV2Type, v2)

	_, err = SafeTxType("2.0.0")
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSafeTxTypedData(t *testing.T) {
	td, err := NewSafeTxTypedData("1.3.0", Domain{
		ChainID:           math.NewHexOrDecimal256(1),
		VerifyingContract: "0x1596Ff8ED308a83897a731F3C1e814B19E11D68c",
	}, Message{
		"to":             "0xf5a2f086cCB7eec82d10bc3600932E9f78d0B212",
		"value":          "0",
		"data":           []byte{},
		"operation":      "0",
		"safeTxGas":      "0",
		"baseGas":        "0",
		"gasPrice":       "0",
		"gasToken":       "0x0000000000000000000000000000000000000000",
		"refundReceiver": "0x0000000000000000000000000000000000000000",
		"nonce":          "0",
	})
	require.NoError(t, err)

	_, _, _, err = td.Digest()
	require.NoError(t, err)
}

func TestWellKnownTypesRegister(t *testing.T) {
	for name, fields := range map[string][]Field{
		"Permit":       PermitType,
		"NFTPermit":    NFTPermitType,
		"SafeTxV1":     SafeTxV1Type,
		"SafeTxV2":     SafeTxV2Type,
		"EIP712Domain": EIP712DomainType,
	} {
		_, err := NewRegistry(Types{name: fields})
		require.NoError(t, err, name)
	}
}
