package directive

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"ngsel-go/packages/selector/src/config"
	"ngsel-go/packages/selector/src/css"
)

// SkippedDirective is a directive left out of the registry because its selector is malformed
type SkippedDirective struct {
	Directive *Directive
	Err       error
}

// Match is a directive that applies to an element, with the selector alternative that matched
type Match struct {
	Directive *Directive
	Selector  *css.CssSelector
}

// Registry matches elements against a fixed set of directives.
// It is immutable once built and safe for concurrent matching.
type Registry struct {
	matcher    *css.SelectorMatcher[*Directive]
	directives []*Directive
	skipped    []SkippedDirective

	config *config.MatcherConfig
	cache  *css.SelectorCache
	logger *zap.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConfig sets the matcher configuration
func WithConfig(c *config.MatcherConfig) Option {
	return func(r *Registry) {
		if c != nil {
			r.config = c
		}
	}
}

// WithCache shares a selector cache between registries, e.g. across rebuilds
func WithCache(cache *css.SelectorCache) Option {
	return func(r *Registry) {
		r.cache = cache
	}
}

type parseResult struct {
	selectors []*css.CssSelector
	err       error
}

// NewRegistry parses every directive selector and registers the valid ones in declaration order.
// Malformed selectors are skipped and reported through Skipped, unless the configuration is
// strict, in which case the first malformed directive fails the build.
func NewRegistry(ctx context.Context, directives []Directive, opts ...Option) (*Registry, error) {
	r := &Registry{
		matcher: css.NewSelectorMatcher[*Directive](),
		config:  config.NewMatcherConfig(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		cache, err := css.NewSelectorCache(r.config.CacheSize)
		if err != nil {
			return nil, err
		}
		r.cache = cache
	}

	r.directives = make([]*Directive, len(directives))
	for i := range directives {
		d := directives[i]
		r.directives[i] = &d
	}

	results, err := r.parseAll(ctx)
	if err != nil {
		return nil, err
	}

	for i, d := range r.directives {
		result := results[i]
		if result.err != nil {
			if r.config.Strict {
				return nil, fmt.Errorf("directive %q: invalid selector %q: %w", d.Name, d.Selector, result.err)
			}
			r.logger.Warn("Skipping directive with malformed selector",
				zap.String("directive", d.Name),
				zap.String("selector", d.Selector),
				zap.Error(result.err),
			)
			r.skipped = append(r.skipped, SkippedDirective{Directive: d, Err: result.err})
			continue
		}
		r.matcher.AddSelectables(result.selectors, d)
	}

	r.logger.Debug("Built directive registry",
		zap.Int("directives", len(r.directives)),
		zap.Int("registered", r.matcher.Len()),
		zap.Int("skipped", len(r.skipped)),
	)
	return r, nil
}

func (r *Registry) parseAll(ctx context.Context) ([]parseResult, error) {
	results := make([]parseResult, len(r.directives))
	sem := semaphore.NewWeighted(int64(r.config.EffectiveWorkers()))
	g, gCtx := errgroup.WithContext(ctx)

	for i, d := range r.directives {
		i, d := i, d
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if err := sem.Acquire(gCtx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			selectors, err := r.cache.Parse(d.Selector)
			results[i] = parseResult{selectors: selectors, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to parse directive selectors: %w", err)
	}
	return results, nil
}

// Directives returns every directive the registry was built from, including skipped ones
func (r *Registry) Directives() []*Directive {
	return r.directives
}

// Skipped returns the directives whose selectors failed to parse
func (r *Registry) Skipped() []SkippedDirective {
	return r.skipped
}

// Len returns the number of registered directives
func (r *Registry) Len() int {
	return r.matcher.Len()
}

// Match returns the directives that apply to the element, in declaration order
func (r *Registry) Match(element css.ElementDescriptor) []Match {
	var matches []Match
	r.matcher.Match(element, func(selector *css.CssSelector, d *Directive) {
		matches = append(matches, Match{Directive: d, Selector: selector})
	})
	return matches
}

// MatchAll matches every element in parallel; result i belongs to elements[i]
func (r *Registry) MatchAll(ctx context.Context, elements []css.ElementDescriptor) ([][]Match, error) {
	results := make([][]Match, len(elements))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.EffectiveWorkers())

	for i, element := range elements {
		i, element := i, element
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = r.Match(element)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
