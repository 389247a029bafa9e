package addrbook

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Map is an AddressResolver keyed by lower-cased hex address.
//
// Example:
//
//	r := addrbook.Map{
//	    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045": "Vitalik Buterin",
//	}
type Map map[string]string

func (m Map) Resolve(addr common.Address) (string, bool) {
	name, ok := m[strings.ToLower(addr.Hex())]
	return name, ok
}

// Names flattens the book into the form Metadata.WithNames takes. Keys that
// are not addresses are skipped.
func (m Map) Names() map[common.Address]string {
	res := make(map[common.Address]string, len(m))
	for k, name := range m {
		if !common.IsHexAddress(k) || name == "" {
			continue
		}
		res[common.HexToAddress(k)] = name
	}
	return res
}

// LoadFile reads a json object of address to name pairs.
func LoadFile(path string) (Map, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read address book %s: %w", path, err)
	}
	raw := map[string]string{}
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse address book %s: %w", path, err)
	}
	res := make(Map, len(raw))
	for k, name := range raw {
		if !common.IsHexAddress(k) {
			return nil, fmt.Errorf("address book %s: %q is not an address", path, k)
		}
		res[strings.ToLower(common.HexToAddress(k).Hex())] = name
	}
	return res, nil
}
