package eip712

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// encodePrimitive encodes a single ABI primitive value into the 32-byte word
// EIP-712 requires. Address, bool and integer values are left-padded; bytesN
// values are right-padded; dynamic bytes and strings occupy their slot as
// the keccak256 hash of their content.
func encodePrimitive(encType string, value interface{}) ([]byte, error) {
	switch encType {
	case "address":
		switch v := value.(type) {
		case ethcommon.Address:
			return ethcommon.LeftPadBytes(v.Bytes(), 32), nil
		case string:
			if !ethcommon.IsHexAddress(v) {
				return nil, mismatchError(encType, value)
			}
			return ethcommon.LeftPadBytes(ethcommon.HexToAddress(v).Bytes(), 32), nil
		}
		return nil, mismatchError(encType, value)

	case "bool":
		boolValue, ok := value.(bool)
		if !ok {
			return nil, mismatchError(encType, value)
		}
		if boolValue {
			return math.PaddedBigBytes(ethcommon.Big1, 32), nil
		}
		return math.PaddedBigBytes(ethcommon.Big0, 32), nil

	case "string":
		strValue, ok := value.(string)
		if !ok {
			return nil, mismatchError(encType, value)
		}
		return crypto.Keccak256([]byte(strValue)), nil

	case "bytes":
		bytesValue, err := parseBytes(value)
		if err != nil {
			return nil, mismatchError(encType, value)
		}
		return crypto.Keccak256(bytesValue), nil
	}

	if rest, ok := strings.CutPrefix(encType, "bytes"); ok && rest != "" {
		length, err := strconv.Atoi(rest)
		if err != nil || length < 1 || length > 32 {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, encType)
		}
		bytesValue, err := parseBytes(value)
		if err != nil {
			return nil, mismatchError(encType, value)
		}
		if len(bytesValue) != length {
			return nil, fmt.Errorf("%w: %s value has %d bytes", ErrRange, encType, len(bytesValue))
		}
		return ethcommon.RightPadBytes(bytesValue, 32), nil
	}

	if strings.HasPrefix(encType, "uint") || strings.HasPrefix(encType, "int") {
		b, err := parseInteger(encType, value)
		if err != nil {
			return nil, err
		}
		// U256Bytes folds signed values into two's complement mod 2^256
		// and mutates its argument, hence the copy.
		return math.U256Bytes(new(big.Int).Set(b)), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, encType)
}

// parseInteger interprets value as an integer and checks it against the
// declared bit width of encType.
func parseInteger(encType string, value interface{}) (*big.Int, error) {
	signed := strings.HasPrefix(encType, "int")
	lengthStr := strings.TrimPrefix(encType, "uint")
	if signed {
		lengthStr = strings.TrimPrefix(encType, "int")
	}

	length, err := strconv.Atoi(lengthStr)
	if err != nil || length < 8 || length > 256 || length%8 != 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, encType)
	}

	var b *big.Int
	switch v := value.(type) {
	case *math.HexOrDecimal256:
		b = (*big.Int)(v)
	case *big.Int:
		b = v
	case *uint256.Int:
		b = v.ToBig()
	case string:
		var parsed math.HexOrDecimal256
		if err := parsed.UnmarshalText([]byte(v)); err != nil {
			return nil, mismatchError(encType, value)
		}
		b = (*big.Int)(&parsed)
	case float64:
		if float64(int64(v)) != v {
			return nil, mismatchError(encType, value)
		}
		b = big.NewInt(int64(v))
	case int:
		b = big.NewInt(int64(v))
	case int64:
		b = big.NewInt(v)
	case uint64:
		b = new(big.Int).SetUint64(v)
	}
	if b == nil {
		return nil, mismatchError(encType, value)
	}

	if signed {
		// Two's complement bounds: [-2^(N-1), 2^(N-1)-1].
		limit := new(big.Int).Lsh(big.NewInt(1), uint(length-1))
		upper := new(big.Int).Sub(limit, big.NewInt(1))
		lower := new(big.Int).Neg(limit)
		if b.Cmp(lower) < 0 || b.Cmp(upper) > 0 {
			return nil, fmt.Errorf("%w: %s does not fit %s", ErrRange, b, encType)
		}
	} else {
		if b.Sign() < 0 {
			return nil, fmt.Errorf("%w: negative value for %s", ErrRange, encType)
		}
		if b.BitLen() > length {
			return nil, fmt.Errorf("%w: %s does not fit %s", ErrRange, b, encType)
		}
	}

	return b, nil
}

// parseBytes accepts the byte-value shapes a JSON-decoded or programmatic
// message may carry.
func parseBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case hexutil.Bytes:
		return v, nil
	case string:
		return hexutil.Decode(v)
	case ethcommon.Hash:
		return v.Bytes(), nil
	}
	return nil, fmt.Errorf("not a byte value: %v", value)
}

func mismatchError(encType string, value interface{}) error {
	return fmt.Errorf("%w: value %v does not match type %q", ErrSchemaMismatch, value, encType)
}
