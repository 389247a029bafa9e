package common

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

// MaxUint256 is 2^256 - 1, the amount contracts treat as "unlimited".
var MaxUint256 = new(big.Int).Set(math.MaxBig256)

// IsMaxUint256 reports whether v equals 2^256 - 1.
func IsMaxUint256(v *big.Int) bool {
	return v != nil && v.Cmp(math.MaxBig256) == 0
}

func HexToBig(hex string) (*big.Int, error) {
	return hexutil.DecodeBig(hex)
}

func StringToBigInt(str string) (*big.Int, error) {
	result, success := big.NewInt(0).SetString(str, 10)
	if !success {
		return nil, fmt.Errorf("parsed %s to big int failed", str)
	}
	return result, nil
}

// FloatStringToBig converts a decimal string to a big int with specific decimal
// without going through float arithmetic.
// Example:
// - FloatStringToBig("1.5", 18) = 1500000000000000000
// - FloatStringToBig("0.000001", 6) = 1
func FloatStringToBig(value string, decimal uint64) (*big.Int, error) {
	value = strings.TrimSpace(value)
	neg := strings.HasPrefix(value, "-")
	if neg {
		value = value[1:]
	}
	whole, frac, _ := strings.Cut(value, ".")
	if whole == "" {
		whole = "0"
	}
	if uint64(len(frac)) > decimal {
		return nil, fmt.Errorf("%s has more than %d decimals", value, decimal)
	}
	frac += strings.Repeat("0", int(decimal)-len(frac))
	res, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("couldn't parse %s to big int", value)
	}
	if neg {
		res.Neg(res)
	}
	return res, nil
}

// BigToFloatString formats value as a decimal string with trailing zeros
// removed. It is exact for any size of value.
// Example:
// - BigToFloatString(1100, 3) = "1.1"
// - BigToFloatString(1100, 2) = "11"
// - BigToFloatString(1100, 5) = "0.011"
func BigToFloatString(value *big.Int, decimal uint64) string {
	if value == nil {
		return "0"
	}
	if decimal == 0 {
		return value.String()
	}
	digits := new(big.Int).Abs(value).String()
	if uint64(len(digits)) <= decimal {
		digits = strings.Repeat("0", int(decimal)-len(digits)+1) + digits
	}
	cut := len(digits) - int(decimal)
	whole, frac := digits[:cut], strings.TrimRight(digits[cut:], "0")
	res := whole
	if frac != "" {
		res += "." + frac
	}
	if value.Sign() < 0 {
		res = "-" + res
	}
	return res
}
