package humanizer

import (
	"time"
)

// ModuleKind enumerates the call modules that exist. The set is closed; the
// execution order is declared by the modules package.
type ModuleKind string

const (
	ModuleWallet     ModuleKind = "wallet"
	ModulePrivileges ModuleKind = "privileges"
	ModuleGasTank    ModuleKind = "gasTank"
	ModuleWrapping   ModuleKind = "wrapping"
	ModuleUniswapV2  ModuleKind = "uniswapV2"
	ModuleUniswapV3  ModuleKind = "uniswapV3"
	ModuleLido       ModuleKind = "lido"
	ModuleAave       ModuleKind = "aave"
	ModuleVaults     ModuleKind = "vaults"
	ModuleBridge     ModuleKind = "bridge"
	ModuleNft        ModuleKind = "nft"
	ModulePermit     ModuleKind = "permit"
	ModuleToken      ModuleKind = "token"
	ModuleASCII      ModuleKind = "ascii"
	ModuleFallback   ModuleKind = "fallback"
)

// CallModule recognizes one protocol family.
//
// Humanize must not perform I/O and must not mutate calls. It returns a new
// slice where recognized calls carry a visualization, plus any fragments it
// needs resolved before it can do better. A call whose visualization is set
// and not the unknown marker must be returned untouched.
type CallModule interface {
	Kind() ModuleKind
	Humanize(op AccountOp, calls []IrCall, meta *Metadata) ([]IrCall, []FragmentRequest)
}

// ParserKind enumerates the enrichers of the parser stage.
type ParserKind string

const (
	ParserNative   ParserKind = "native"
	ParserNames    ParserKind = "names"
	ParserTokens   ParserKind = "tokens"
	ParserDeadline ParserKind = "deadline"
)

// Parser enriches finished visualizations. Running a parser twice over its
// own output must change nothing.
type Parser interface {
	Kind() ParserKind
	Parse(op AccountOp, calls []IrCall, meta *Metadata, now time.Time) ([]IrCall, []FragmentRequest)
}

// RunModules applies mods in order. A module that panics is skipped for this
// pass, leaving the calls as the previous module returned them.
func RunModules(mods []CallModule, op AccountOp, calls []IrCall, meta *Metadata) ([]IrCall, []FragmentRequest) {
	reqs := []FragmentRequest{}
	for _, m := range mods {
		out, more, ok := runModule(m, op, calls, meta)
		if !ok || (len(out) == 0 && len(calls) != 0) {
			continue
		}
		calls = out
		reqs = append(reqs, more...)
	}
	return calls, DedupRequests(reqs)
}

func runModule(m CallModule, op AccountOp, calls []IrCall, meta *Metadata) (out []IrCall, reqs []FragmentRequest, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			out, reqs, ok = nil, nil, false
		}
	}()
	out, reqs = m.Humanize(op, calls, meta)
	return out, reqs, true
}

// RunParsers applies parsers in order.
func RunParsers(parsers []Parser, op AccountOp, calls []IrCall, meta *Metadata, now time.Time) ([]IrCall, []FragmentRequest) {
	reqs := []FragmentRequest{}
	for _, p := range parsers {
		var more []FragmentRequest
		calls, more = p.Parse(op, calls, meta, now)
		reqs = append(reqs, more...)
	}
	return calls, DedupRequests(reqs)
}
