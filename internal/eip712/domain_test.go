package eip712

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/stretchr/testify/require"
)

func TestEmptyDomainRejected(t *testing.T) {
	domain := Domain{}
	_, err := domain.Separator()
	require.ErrorIs(t, err, ErrEmptyDomain)
}

func TestDomainFieldsPresentOnly(t *testing.T) {
	domain := Domain{
		Name:    "App",
		ChainID: math.NewHexOrDecimal256(1),
	}

	require.Equal(t, []Field{
		{Name: "name", Type: "string"},
		{Name: "chainId", Type: "uint256"},
	}, domain.Fields())

	msg := domain.Map()
	require.Len(t, msg, 2)
	require.Contains(t, msg, "name")
	require.Contains(t, msg, "chainId")
}

func TestDomainShapeChangesSeparator(t *testing.T) {
	nameOnly := Domain{Name: "App"}
	withVersion := Domain{Name: "App", Version: "1"}

	first, err := nameOnly.Separator()
	require.NoError(t, err)
	second, err := withVersion.Separator()
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestSingleFieldDomains(t *testing.T) {
	// Any single field is enough; only the zero-field domain is rejected.
	for name, domain := range map[string]Domain{
		"chainId only": {ChainID: math.NewHexOrDecimal256(1)},
		"salt only":    {Salt: "0x00000000000000000000000000000000000000000000000000000000075bcd15"},
		"name only":    {Name: "App"},
	} {
		_, err := domain.Separator()
		require.NoError(t, err, name)
	}
}

func TestDomainCanonicalFieldOrder(t *testing.T) {
	domain := Domain{
		Salt:              "0x0000000000000000000000000000000000000000000000000000000000000001",
		Name:              "App",
		VerifyingContract: "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC",
	}

	// Construction order of the struct is irrelevant; the synthesized type
	// keeps the canonical name/version/chainId/verifyingContract/salt order.
	fields := domain.Fields()
	require.Equal(t, []Field{
		{Name: "name", Type: "string"},
		{Name: "verifyingContract", Type: "address"},
		{Name: "salt", Type: "bytes32"},
	}, fields)
}

func TestDomainSeparatorVector(t *testing.T) {
	domain := Domain{
		Name:              "Ether Mail",
		Version:           "1",
		ChainID:           math.NewHexOrDecimal256(1),
		VerifyingContract: "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC",
	}

	separator, err := domain.Separator()
	require.NoError(t, err)
	require.Equal(t, "0xf2cee375fa42b42143804025fc449deafd50cc031ca257e0b194a650a912090f", separator.Hex())
}

func TestDomainBadSalt(t *testing.T) {
	domain := Domain{Salt: "0x01"}
	_, err := domain.Separator()
	require.ErrorIs(t, err, ErrRange)
}
