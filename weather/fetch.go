package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// FetchOptions bounds how long and how often a Fetcher retries.
type FetchOptions struct {
	AttemptTimeout  time.Duration // per-attempt deadline
	MaxTries        uint          // total attempts, including the first
	MaxElapsed      time.Duration // overall budget across attempts
	InitialInterval time.Duration // first backoff delay
}

// DefaultFetchOptions returns conservative retry settings for an on-request
// weather lookup.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		AttemptTimeout:  2 * time.Second,
		MaxTries:        3,
		MaxElapsed:      5 * time.Second,
		InitialInterval: 200 * time.Millisecond,
	}
}

// Fetcher resolves a weather snapshot with bounded exponential backoff.
// Errors from the provider that cannot succeed on retry (missing key, 4xx
// other than 429, malformed payload) stop retrying immediately.
type Fetcher struct {
	provider Provider
	opts     FetchOptions
}

// NewFetcher wraps p. Zero fields of opts fall back to DefaultFetchOptions.
func NewFetcher(p Provider, opts FetchOptions) *Fetcher {
	def := DefaultFetchOptions()
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = def.AttemptTimeout
	}
	if opts.MaxTries == 0 {
		opts.MaxTries = def.MaxTries
	}
	if opts.MaxElapsed <= 0 {
		opts.MaxElapsed = def.MaxElapsed
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = def.InitialInterval
	}

	return &Fetcher{provider: p, opts: opts}
}

// Fetch returns the current snapshot, or an error once retries are exhausted.
func (f *Fetcher) Fetch(ctx context.Context) (*Info, error) {
	if f == nil || f.provider == nil {
		return nil, errors.New("weather: no provider configured")
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.opts.InitialInterval

	op := func() (Info, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, f.opts.AttemptTimeout)
		defer cancel()

		info, err := f.provider.Current(attemptCtx)
		if err != nil && !retryable(err) {
			return Info{}, backoff.Permanent(err)
		}

		return info, err
	}

	info, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(f.opts.MaxTries),
		backoff.WithMaxElapsedTime(f.opts.MaxElapsed),
	)
	if err != nil {
		return nil, fmt.Errorf("weather: fetch failed: %w", err)
	}

	return &info, nil
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}

	return !errors.Is(err, ErrMissingAPIKey) &&
		!errors.Is(err, ErrNoConditions) &&
		!errors.Is(err, ErrMalformedResponse)
}
