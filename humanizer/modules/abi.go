package modules

import (
	"bytes"
	"math/big"
	"reflect"
	"slices"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	hcommon "github.com/tranvictor/humanizer/common"
)

var known []string

// KnownSignatures lists the text signatures the modules decode.
func KnownSignatures() []string {
	return slices.Clone(known)
}

// mustMethod parses a text signature at init time. The signature tables are
// static so a failure is a programming error.
func mustMethod(sig string) abi.Method {
	m, err := hcommon.MethodFromSignature(sig)
	if err != nil {
		panic(err)
	}
	if !slices.Contains(known, m.Sig) {
		known = append(known, m.Sig)
	}
	return m
}

// decode unpacks data when it is a call to m. Malformed arguments are a
// non-match, never an error.
func decode(m abi.Method, data []byte) (args []any, ok bool) {
	if len(data) < 4 || !bytes.Equal(data[:4], m.ID) {
		return nil, false
	}
	defer func() {
		if r := recover(); r != nil {
			args, ok = nil, false
		}
	}()
	args, err := m.Inputs.Unpack(data[4:])
	if err != nil || len(args) != len(m.Inputs) {
		return nil, false
	}
	return args, true
}

func argAddress(v any) common.Address {
	if a, ok := v.(common.Address); ok {
		return a
	}
	return common.Address{}
}

// argBig converts any decoded integer to a big.Int. Unknown input yields 0.
func argBig(v any) *big.Int {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return big.NewInt(0)
		}
		return new(big.Int).Set(n)
	case nil:
		return big.NewInt(0)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int())
	}
	return big.NewInt(0)
}

func argBytes(v any) []byte {
	if b, ok := v.([]byte); ok {
		return b
	}
	return nil
}

func argBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// argFixedBytes returns fixed size byte arrays such as bytes32 as a slice.
func argFixedBytes(v any) []byte {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Array || rv.Type().Elem().Kind() != reflect.Uint8 {
		return nil
	}
	res := make([]byte, rv.Len())
	for i := range res {
		res[i] = byte(rv.Index(i).Uint())
	}
	return res
}

// field returns the i-th component of a decoded tuple.
func field(v any, i int) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct || i >= rv.NumField() {
		return nil
	}
	return rv.Field(i).Interface()
}

// items returns the elements of a decoded array or slice.
func items(v any) []any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	res := make([]any, rv.Len())
	for i := range res {
		res[i] = rv.Index(i).Interface()
	}
	return res
}

func argAddresses(v any) []common.Address {
	res := []common.Address{}
	for _, it := range items(v) {
		res = append(res, argAddress(it))
	}
	return res
}
