// Package txanalyzer drives the humanization of an account operation: it
// runs the call modules, resolves the fragments they ask for and runs them
// again until nothing new can be learnt.
package txanalyzer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tranvictor/humanizer/humanizer"
	"github.com/tranvictor/humanizer/humanizer/modules"
	"github.com/tranvictor/humanizer/humanizer/parsers"
	"github.com/tranvictor/humanizer/util/logger"
)

// DefaultMaxIterations bounds the module loop. Nested unknown selectors
// observed in practice converge in two or three rounds.
const DefaultMaxIterations = 4

const ExhaustedWarning = "Could not fully humanize this call"

// ErrSuperseded is returned by a run whose operation was replaced by a newer
// one for the same account before it finished.
var ErrSuperseded = errors.New("operation superseded")

type Analyzer struct {
	resolver      FragmentResolver
	storage       humanizer.Storage
	modules       []humanizer.CallModule
	parsers       []humanizer.Parser
	maxIterations int
	clock         func() time.Time
	lggr          logger.Logger

	mu     sync.Mutex
	latest map[string]string
}

type Option func(*Analyzer)

func WithModules(mods ...humanizer.CallModule) Option {
	return func(a *Analyzer) { a.modules = mods }
}

func WithParsers(ps ...humanizer.Parser) Option {
	return func(a *Analyzer) { a.parsers = ps }
}

func WithMaxIterations(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxIterations = n
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(a *Analyzer) { a.clock = clock }
}

func WithLogger(lggr logger.Logger) Option {
	return func(a *Analyzer) { a.lggr = lggr }
}

// NewAnalyzer returns an Analyzer with the default modules and parsers.
// storage may be nil, in which case nothing is persisted.
func NewAnalyzer(resolver FragmentResolver, storage humanizer.Storage, opts ...Option) *Analyzer {
	a := &Analyzer{
		resolver:      resolver,
		storage:       storage,
		modules:       modules.Default(),
		parsers:       parsers.Default(),
		maxIterations: DefaultMaxIterations,
		clock:         time.Now,
		lggr:          logger.Nop(),
		latest:        map[string]string{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Supersede marks opID as the current operation of account. Runs of any
// other operation for that account discard what they resolve from now on.
func (a *Analyzer) Supersede(account, opID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.latest[account] = opID
}

func (a *Analyzer) isCurrent(op humanizer.AccountOp) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.latest[op.Account.Hex()] == op.ID
}

// LoadMetadata returns the storage backed metadata snapshot, or the baseline
// when the storage cannot be read.
func (a *Analyzer) LoadMetadata() *humanizer.Metadata {
	meta, err := humanizer.LoadMetadata(a.storage)
	if err == nil {
		return meta
	}
	a.lggr.Warnw("failed to load persisted metadata, using baseline", "err", err)
	meta, err = humanizer.BaselineMetadata()
	if err != nil {
		a.lggr.Errorw("failed to load baseline metadata", "err", err)
		return humanizer.NewMetadata()
	}
	return meta
}

// Humanize describes every call of op. meta is the starting snapshot; nil
// loads it from storage. onUpdate, when set, receives the intermediate IR
// after each iteration and the final one last.
//
// Lookup failures never fail the run: they surface as warnings on the
// affected calls. The only errors are ctx cancellation and ErrSuperseded,
// both returned with the last computed result.
func (a *Analyzer) Humanize(ctx context.Context, op humanizer.AccountOp, meta *humanizer.Metadata, onUpdate func(Update)) (*Result, error) {
	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	if meta == nil {
		meta = a.LoadMetadata()
	}
	a.Supersede(op.Account.Hex(), op.ID)
	lggr := a.lggr.Named("humanize")
	now := a.clock()
	emit := func(iteration int, calls []humanizer.IrCall, final bool) {
		if onUpdate != nil {
			onUpdate(Update{OpID: op.ID, Iteration: iteration, Calls: humanizer.CloneIR(calls), Final: final})
		}
	}

	var (
		ir        []humanizer.IrCall
		reqs      []humanizer.FragmentRequest
		iteration int
	)
	for iteration = 1; ; iteration++ {
		ir, reqs = humanizer.RunModules(a.modules, op, humanizer.NewIR(op), meta)
		lggr.Debugw("modules ran", "op", op.ID, "iteration", iteration, "requests", len(reqs))
		if len(reqs) == 0 || iteration >= a.maxIterations {
			break
		}
		preview, _ := humanizer.RunParsers(a.parsers, op, ir, meta, now)
		emit(iteration, preview, false)

		next, err := a.resolve(ctx, op, meta, reqs)
		if err != nil {
			return a.result(op, ir, iteration, len(reqs), meta), err
		}
		meta = next
	}

	if len(reqs) > 0 {
		lggr.Warnw("iteration bound reached", "op", op.ID, "pending", len(reqs))
		for i, c := range ir {
			if humanizer.IsUnknownVisualization(c.FullVisualization) {
				ir[i] = c.WithWarning(humanizer.Warning{Content: ExhaustedWarning, Level: humanizer.WarningCaution})
			}
		}
	}
	pending := len(reqs)

	parsed, parserReqs := humanizer.RunParsers(a.parsers, op, ir, meta, now)
	if len(parserReqs) > 0 {
		emit(iteration, parsed, false)
		next, err := a.resolve(ctx, op, meta, parserReqs)
		if err != nil {
			return a.result(op, parsed, iteration, pending+len(parserReqs), meta), err
		}
		meta = next
		parsed, parserReqs = humanizer.RunParsers(a.parsers, op, ir, meta, now)
		pending += len(parserReqs)
	}

	emit(iteration, parsed, true)
	return a.result(op, parsed, iteration, pending, meta), nil
}

// resolve fetches reqs and merges them into meta. Fragments of a superseded
// run are dropped.
func (a *Analyzer) resolve(ctx context.Context, op humanizer.AccountOp, meta *humanizer.Metadata, reqs []humanizer.FragmentRequest) (*humanizer.Metadata, error) {
	if !a.isCurrent(op) {
		return nil, ErrSuperseded
	}
	frags, err := a.resolver.Resolve(ctx, reqs)
	if err != nil {
		return nil, err
	}
	if !a.isCurrent(op) {
		a.lggr.Debugw("discarding fragments of superseded operation", "op", op.ID, "fragments", len(frags))
		return nil, ErrSuperseded
	}
	next := meta.Merge(frags...)
	if a.storage != nil && hasGlobal(frags) {
		if err := humanizer.PersistFragments(a.storage, next); err != nil {
			a.lggr.Warnw("failed to persist fragments", "err", err)
		}
	}
	return next, nil
}

func hasGlobal(frags []humanizer.Fragment) bool {
	for _, f := range frags {
		if f.Scope == humanizer.ScopeGlobal {
			return true
		}
	}
	return false
}

func (a *Analyzer) result(op humanizer.AccountOp, ir []humanizer.IrCall, iterations, pending int, meta *humanizer.Metadata) *Result {
	return &Result{
		OpID:       op.ID,
		Calls:      ir,
		Texts:      humanizer.RenderIR(ir),
		Iterations: iterations,
		Pending:    pending,
		Metadata:   meta,
	}
}
