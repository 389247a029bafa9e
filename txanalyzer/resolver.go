package txanalyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/sync/errgroup"

	"github.com/tranvictor/humanizer/humanizer"
	"github.com/tranvictor/humanizer/util/logger"
	"github.com/tranvictor/humanizer/util/reader"
)

const (
	DefaultLookupTimeout = 5 * time.Second
	DefaultConcurrency   = 8
	DefaultAttempts      = 3
	defaultRetryDelay    = 200 * time.Millisecond
)

// FragmentResolver turns fragment requests into fragments. Every request
// yields exactly one fragment; failures become local Unresolved fragments.
// The error is only set when ctx was cancelled.
type FragmentResolver interface {
	Resolve(ctx context.Context, reqs []humanizer.FragmentRequest) ([]humanizer.Fragment, error)
}

// Resolver is the FragmentResolver backed by a signature directory and a
// token reader. Lookups run concurrently; each one is retried with its own
// timeout per attempt.
type Resolver struct {
	signatures  humanizer.SignatureLookup
	tokens      humanizer.TokenLookup
	lggr        logger.Logger
	timeout     time.Duration
	concurrency int
	attempts    uint
	delay       time.Duration
}

type ResolverOption func(*Resolver)

func WithLookupTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithConcurrency(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func WithAttempts(n uint) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.attempts = n
		}
	}
}

func WithRetryDelay(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.delay = d }
}

func WithResolverLogger(lggr logger.Logger) ResolverOption {
	return func(r *Resolver) { r.lggr = lggr }
}

// NewResolver builds a Resolver. Either lookup may be nil, in which case
// requests of that kind resolve to Unresolved.
func NewResolver(signatures humanizer.SignatureLookup, tokens humanizer.TokenLookup, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		signatures:  signatures,
		tokens:      tokens,
		lggr:        logger.Nop(),
		timeout:     DefaultLookupTimeout,
		concurrency: DefaultConcurrency,
		attempts:    DefaultAttempts,
		delay:       defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Resolve(ctx context.Context, reqs []humanizer.FragmentRequest) ([]humanizer.Fragment, error) {
	reqs = humanizer.DedupRequests(reqs)
	frags := make([]humanizer.Fragment, len(reqs))

	g := errgroup.Group{}
	g.SetLimit(r.concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			frags[i] = r.resolveOne(ctx, req)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return frags, nil
}

func (r *Resolver) resolveOne(ctx context.Context, req humanizer.FragmentRequest) humanizer.Fragment {
	var value any
	err := retry.Do(func() error {
		actx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		v, err := r.lookup(actx, req)
		if err != nil {
			if permanent(err) {
				return retry.Unrecoverable(err)
			}
			return err
		}
		value = v
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		r.lggr.Debugw("fragment lookup failed", "key", req.Key, "err", err)
		return humanizer.Fragment{
			Key:   req.Key,
			Scope: humanizer.ScopeLocal,
			Value: humanizer.Unresolved{Reason: err.Error()},
		}
	}
	r.lggr.Debugw("fragment resolved", "key", req.Key)
	return humanizer.Fragment{Key: req.Key, Scope: humanizer.ScopeGlobal, Value: value}
}

func (r *Resolver) lookup(ctx context.Context, req humanizer.FragmentRequest) (any, error) {
	switch req.Kind {
	case humanizer.KindSelector:
		if r.signatures == nil {
			return nil, fmt.Errorf("no signature lookup: %w", humanizer.ErrNotFound)
		}
		sig, err := r.signatures.LookupSelector(ctx, req.Selector)
		if err != nil {
			return nil, err
		}
		return humanizer.SignatureText(sig), nil
	case humanizer.KindToken:
		if r.tokens == nil {
			return nil, fmt.Errorf("no token lookup: %w", humanizer.ErrNotFound)
		}
		info, err := r.tokens.LookupToken(ctx, req.ChainID, req.Address)
		if err != nil {
			return nil, err
		}
		return info, nil
	}
	return nil, fmt.Errorf("unknown fragment kind %q: %w", req.Kind, humanizer.ErrNotFound)
}

// permanent reports errors a retry cannot change.
func permanent(err error) bool {
	return errors.Is(err, humanizer.ErrNotFound) || errors.Is(err, reader.ErrNoRPC)
}
