package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const erc20abi = `[
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"}
]`

// NativeAddress is the 0xEeee... placeholder some protocols use for the
// chain's native asset.
var NativeAddress = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

func GetERC20ABI() *abi.ABI {
	result, _ := abi.JSON(strings.NewReader(erc20abi))
	return &result
}

// IsNativeAddress reports whether addr stands for the native asset of a chain.
func IsNativeAddress(addr common.Address) bool {
	return addr == (common.Address{}) || addr == NativeAddress
}

// MethodFromSignature builds an abi.Method from a human readable signature
// such as "transfer(address,uint256)". Tuple arguments are written as
// nested parentheses: "exactInput((bytes,address,uint256,uint256))".
func MethodFromSignature(sig string) (abi.Method, error) {
	sel, err := abi.ParseSelector(sig)
	if err != nil {
		return abi.Method{}, fmt.Errorf("parsing %s: %w", sig, err)
	}
	content, err := json.Marshal([]abi.SelectorMarshaling{sel})
	if err != nil {
		return abi.Method{}, err
	}
	parsed, err := abi.JSON(bytes.NewReader(content))
	if err != nil {
		return abi.Method{}, fmt.Errorf("building abi for %s: %w", sig, err)
	}
	method, found := parsed.Methods[sel.Name]
	if !found {
		return abi.Method{}, fmt.Errorf("method %s missing from parsed abi", sel.Name)
	}
	return method, nil
}

// SignatureSelector returns the 0x-prefixed 4 byte selector of sig.
func SignatureSelector(sig string) string {
	return hexutil.Encode(crypto.Keccak256([]byte(sig))[:4])
}

// DataSelector returns the 0x-prefixed selector of call data, or "" when the
// data is shorter than 4 bytes.
func DataSelector(data []byte) string {
	if len(data) < 4 {
		return ""
	}
	return hexutil.Encode(data[:4])
}

func HexToAddresses(hexes []string) []common.Address {
	result := []common.Address{}
	for _, h := range hexes {
		result = append(result, common.HexToAddress(h))
	}
	return result
}
