package humanizer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	hcommon "github.com/tranvictor/humanizer/common"
)

// MetadataStorageKey is the storage key the merged global fragments are
// persisted under.
const MetadataStorageKey = "HumanizerMetaV2"

// Address tags understood by the call modules.
const (
	TagWrappedNative   = "wrappedNative"
	TagUniswapV2Router = "uniswapV2Router"
	TagUniswapV3Router = "uniswapV3Router"
	TagLido            = "lido"
	TagWstETH          = "wstETH"
	TagAavePool        = "aavePool"
	TagAcrossSpokePool = "acrossSpokePool"
	TagPermit2         = "permit2"
	TagGasTank         = "gasTank"
	TagNft             = "nft"
)

//go:embed baseline.json
var baselineBlob []byte

// Storage is the key/value persistence the metadata is loaded from and the
// global fragments are written back to.
type Storage interface {
	Get(key, def string) (string, error)
	Set(key, value string) error
}

// AddressInfo is what the metadata knows about one address.
type AddressInfo struct {
	Name  string     `json:"name,omitempty"`
	Tags  []string   `json:"tags,omitempty"`
	Token *TokenInfo `json:"token,omitempty"`
}

// Blob is the serialized form of the long lived metadata. Vaults maps
// ERC-4626 vault addresses to their underlying asset.
type Blob struct {
	Addresses  map[string]AddressInfo `json:"addresses,omitempty"`
	Signatures []string               `json:"signatures,omitempty"`
	Vaults     map[string]string      `json:"vaults,omitempty"`
	Fragments  []FragmentRecord       `json:"fragments,omitempty"`
}

// FragmentRecord is the persisted form of a global fragment.
type FragmentRecord struct {
	Key       string     `json:"key"`
	Signature string     `json:"signature,omitempty"`
	Token     *TokenInfo `json:"token,omitempty"`
}

// Metadata is an immutable snapshot of everything the pipeline knows. Merge
// and the With* helpers return new snapshots and never touch the receiver.
type Metadata struct {
	addresses map[common.Address]AddressInfo
	selectors map[string]string
	vaults    map[common.Address]common.Address
	fragments map[string]Fragment
}

// NewMetadata returns an empty snapshot.
func NewMetadata() *Metadata {
	return &Metadata{
		addresses: map[common.Address]AddressInfo{},
		selectors: map[string]string{},
		vaults:    map[common.Address]common.Address{},
		fragments: map[string]Fragment{},
	}
}

// MetadataFromBlob builds a snapshot from a decoded blob.
func MetadataFromBlob(b Blob) (*Metadata, error) {
	m := NewMetadata()
	for hex, info := range b.Addresses {
		if !common.IsHexAddress(hex) {
			return nil, fmt.Errorf("invalid address %q in metadata", hex)
		}
		m.addresses[common.HexToAddress(hex)] = info
	}
	for _, sig := range b.Signatures {
		m.selectors[hcommon.SignatureSelector(sig)] = sig
	}
	for vault, asset := range b.Vaults {
		if !common.IsHexAddress(vault) || !common.IsHexAddress(asset) {
			return nil, fmt.Errorf("invalid vault entry %q: %q", vault, asset)
		}
		m.vaults[common.HexToAddress(vault)] = common.HexToAddress(asset)
	}
	for _, rec := range b.Fragments {
		f, ok := rec.fragment()
		if !ok {
			continue
		}
		m.fragments[f.Key] = f
	}
	return m, nil
}

// BaselineMetadata returns the metadata shipped with the binary.
func BaselineMetadata() (*Metadata, error) {
	var b Blob
	if err := json.Unmarshal(baselineBlob, &b); err != nil {
		return nil, fmt.Errorf("decoding baseline metadata: %w", err)
	}
	return MetadataFromBlob(b)
}

// LoadMetadata returns the baseline metadata overlaid with the global
// fragments previously persisted in storage. A corrupt persisted blob is
// ignored so a bad cache never blocks humanization.
func LoadMetadata(storage Storage) (*Metadata, error) {
	base, err := BaselineMetadata()
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return base, nil
	}
	raw, err := storage.Get(MetadataStorageKey, "")
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", MetadataStorageKey, err)
	}
	if raw == "" {
		return base, nil
	}
	var persisted Blob
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		return base, nil
	}
	frags := []Fragment{}
	for _, rec := range persisted.Fragments {
		if f, ok := rec.fragment(); ok {
			frags = append(frags, f)
		}
	}
	return base.Merge(frags...), nil
}

// PersistFragments writes every global fragment of m to storage.
func PersistFragments(storage Storage, m *Metadata) error {
	if storage == nil {
		return nil
	}
	content, err := json.Marshal(Blob{Fragments: m.GlobalRecords()})
	if err != nil {
		return err
	}
	return storage.Set(MetadataStorageKey, string(content))
}

func (r FragmentRecord) fragment() (Fragment, bool) {
	switch {
	case r.Signature != "":
		return Fragment{Key: r.Key, Scope: ScopeGlobal, Value: SignatureText(r.Signature)}, true
	case r.Token != nil:
		return Fragment{Key: r.Key, Scope: ScopeGlobal, Value: *r.Token}, true
	}
	return Fragment{}, false
}

// GlobalRecords lists the persistable fragments of m sorted by key.
func (m *Metadata) GlobalRecords() []FragmentRecord {
	res := []FragmentRecord{}
	for _, key := range slices.Sorted(maps.Keys(m.fragments)) {
		f := m.fragments[key]
		if f.Scope != ScopeGlobal {
			continue
		}
		switch v := f.Value.(type) {
		case SignatureText:
			res = append(res, FragmentRecord{Key: f.Key, Signature: string(v)})
		case TokenInfo:
			t := v
			res = append(res, FragmentRecord{Key: f.Key, Token: &t})
		}
	}
	return res
}

// Merge returns a new snapshot with frags applied on top of m. Later
// fragments win over earlier ones with the same key, except that a failed
// lookup never hides a value resolved before.
func (m *Metadata) Merge(frags ...Fragment) *Metadata {
	res := m.shallowCopy()
	res.fragments = maps.Clone(m.fragments)
	for _, f := range frags {
		if _, failed := f.Value.(Unresolved); failed {
			if prev, found := res.fragments[f.Key]; found {
				if _, prevFailed := prev.Value.(Unresolved); !prevFailed {
					continue
				}
			}
		}
		res.fragments[f.Key] = f
	}
	return res
}

// WithNames returns a snapshot where the given addresses carry the given
// names. Tags and token info already known are kept.
func (m *Metadata) WithNames(names map[common.Address]string) *Metadata {
	res := m.shallowCopy()
	res.addresses = maps.Clone(m.addresses)
	for addr, name := range names {
		info := res.addresses[addr]
		info.Name = name
		res.addresses[addr] = info
	}
	return res
}

// WithAddress returns a snapshot with info registered for addr.
func (m *Metadata) WithAddress(addr common.Address, info AddressInfo) *Metadata {
	res := m.shallowCopy()
	res.addresses = maps.Clone(m.addresses)
	res.addresses[addr] = info
	return res
}

func (m *Metadata) shallowCopy() *Metadata {
	res := *m
	return &res
}

// Address returns what is known about addr.
func (m *Metadata) Address(addr common.Address) (AddressInfo, bool) {
	info, found := m.addresses[addr]
	return info, found
}

// Name returns the known name of addr, or "".
func (m *Metadata) Name(addr common.Address) string {
	return m.addresses[addr].Name
}

// HasTag reports whether addr is tagged with tag.
func (m *Metadata) HasTag(addr common.Address, tag string) bool {
	return slices.Contains(m.addresses[addr].Tags, tag)
}

// TaggedAddress returns the first address, in byte order, carrying tag.
func (m *Metadata) TaggedAddress(tag string) (common.Address, bool) {
	var (
		res   common.Address
		found bool
	)
	for addr := range m.addresses {
		if !m.HasTag(addr, tag) {
			continue
		}
		if !found || bytes.Compare(addr[:], res[:]) < 0 {
			res, found = addr, true
		}
	}
	return res, found
}

// VaultAsset returns the underlying asset of a known ERC-4626 vault.
func (m *Metadata) VaultAsset(vault common.Address) (common.Address, bool) {
	asset, found := m.vaults[vault]
	return asset, found
}

// Signature returns the text signature of a 0x-prefixed selector from the
// baseline table or a resolved fragment.
func (m *Metadata) Signature(selector string) (string, bool) {
	selector = strings.ToLower(selector)
	if sig, found := m.selectors[selector]; found {
		return sig, true
	}
	if f, found := m.fragments[SelectorKey(selector)]; found {
		if sig, ok := f.Value.(SignatureText); ok {
			return string(sig), true
		}
	}
	return "", false
}

// Signatures returns every selector to text signature pair the snapshot
// knows.
func (m *Metadata) Signatures() map[string]string {
	res := maps.Clone(m.selectors)
	for _, f := range m.fragments {
		if sig, ok := f.Value.(SignatureText); ok {
			res[strings.TrimPrefix(f.Key, SelectorKey(""))] = string(sig)
		}
	}
	return res
}

// SignatureFailed reports whether looking up selector already failed.
func (m *Metadata) SignatureFailed(selector string) bool {
	return m.failed(SelectorKey(selector))
}

// Token returns symbol and decimals of a token contract.
func (m *Metadata) Token(chainID uint64, addr common.Address) (TokenInfo, bool) {
	if f, found := m.fragments[TokenKey(chainID, addr)]; found {
		if info, ok := f.Value.(TokenInfo); ok {
			return info, true
		}
	}
	if info, found := m.addresses[addr]; found && info.Token != nil {
		return *info.Token, true
	}
	return TokenInfo{}, false
}

// TokenFailed reports whether looking up the token already failed.
func (m *Metadata) TokenFailed(chainID uint64, addr common.Address) bool {
	return m.failed(TokenKey(chainID, addr))
}

func (m *Metadata) failed(key string) bool {
	f, found := m.fragments[key]
	if !found {
		return false
	}
	_, failed := f.Value.(Unresolved)
	return failed
}

// Fragment returns the fragment stored under key.
func (m *Metadata) Fragment(key string) (Fragment, bool) {
	f, found := m.fragments[key]
	return f, found
}

// FragmentCount is the number of fragments in the snapshot.
func (m *Metadata) FragmentCount() int {
	return len(m.fragments)
}
