package addrbook

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sahilm/fuzzy"
)

// MaxMatches bounds the result of Search.
const MaxMatches = 10

var addressRe = regexp.MustCompile("0x[0-9a-fA-F]{40}([^0-9a-fA-F]|$)")

// Entry is a named address of the book.
type Entry struct {
	Address common.Address
	Name    string
}

// fuzzySource lets fuzzy match names and addresses at once: every entry is
// seen as "<name_with_underscores>_<address>".
type fuzzySource []Entry

func (s fuzzySource) Len() int {
	return len(s)
}

func (s fuzzySource) String(i int) string {
	return fmt.Sprintf("%s_%s", strings.ReplaceAll(s[i].Name, " ", "_"), strings.ToLower(s[i].Address.Hex()))
}

func (m Map) source() fuzzySource {
	names := m.Names()
	res := make(fuzzySource, 0, len(names))
	for addr, name := range names {
		res = append(res, Entry{Address: addr, Name: name})
	}
	// fuzzy keeps input order between equal scores
	sort.Slice(res, func(i, j int) bool {
		return strings.ToLower(res[i].Address.Hex()) < strings.ToLower(res[j].Address.Hex())
	})
	return res
}

// Search returns up to MaxMatches entries matching input, best first.
func (m Map) Search(input string) []Entry {
	source := m.source()
	matches := fuzzy.FindFrom(strings.ReplaceAll(input, " ", "_"), source)
	res := []Entry{}
	for i := 0; i < len(matches) && i < MaxMatches; i++ {
		res = append(res, source[matches[i].Index])
	}
	return res
}

// Lookup turns user input into an address. Input holding an address is
// taken as is, anything else is matched against the names of the book.
func (m Map) Lookup(input string) (Entry, error) {
	if found := addressRe.FindString(input); found != "" {
		addr := common.HexToAddress(found[:42])
		name, _ := m.Resolve(addr)
		return Entry{Address: addr, Name: name}, nil
	}
	if strings.TrimSpace(input) == "" {
		return Entry{}, fmt.Errorf("empty address")
	}
	matches := m.Search(input)
	if len(matches) == 0 {
		return Entry{}, fmt.Errorf("no address is found with %q", input)
	}
	return matches[0], nil
}
