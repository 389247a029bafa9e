// Package addrbook maps raw Ethereum addresses to human readable names.
//
// The humanizer takes names as part of its metadata: a book is flattened
// with Names and merged into a snapshot with Metadata.WithNames. [Map] is
// the in-memory book; [LoadFile] reads one from a json file of
// address-to-name pairs.
package addrbook

import (
	"github.com/ethereum/go-ethereum/common"
)

// AddressResolver maps an address to a name. found is false for addresses
// the book does not know.
type AddressResolver interface {
	Resolve(addr common.Address) (name string, found bool)
}
