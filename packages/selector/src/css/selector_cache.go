package css

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSelectorCacheSize is the number of selector sources kept by NewSelectorCache(0)
const DefaultSelectorCacheSize = 4096

type parsedSelector struct {
	selectors []*CssSelector
	err       error
}

// SelectorCache memoizes ParseCssSelector, including parse failures.
// It is safe for concurrent use. Returned selectors are shared and must not be modified.
type SelectorCache struct {
	cache *lru.Cache[string, parsedSelector]
}

// NewSelectorCache creates a cache holding up to size selector sources
func NewSelectorCache(size int) (*SelectorCache, error) {
	if size <= 0 {
		size = DefaultSelectorCacheSize
	}
	cache, err := lru.New[string, parsedSelector](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create selector cache: %w", err)
	}
	return &SelectorCache{cache: cache}, nil
}

// Parse returns the cached parse result for selector, parsing it on a miss
func (c *SelectorCache) Parse(selector string) ([]*CssSelector, error) {
	if cached, ok := c.cache.Get(selector); ok {
		return cached.selectors, cached.err
	}
	selectors, err := ParseCssSelector(selector)
	c.cache.Add(selector, parsedSelector{selectors: selectors, err: err})
	return selectors, err
}

// Len returns the number of cached selector sources
func (c *SelectorCache) Len() int {
	return c.cache.Len()
}

// Purge drops every cached entry
func (c *SelectorCache) Purge() {
	c.cache.Purge()
}
