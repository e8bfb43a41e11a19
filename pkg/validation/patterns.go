package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultPatternCacheSize bounds the shared compiled-pattern cache.
const DefaultPatternCacheSize = 256

// ErrInvalidPattern is returned when a pattern rule does not compile.
var ErrInvalidPattern = errors.New("validation: invalid pattern")

// Patterns caches compiled regular expressions by source. Safe for
// concurrent use.
type Patterns struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

// NewPatterns builds a cache holding up to size expressions.
func NewPatterns(size int) *Patterns {
	if size < 1 {
		size = DefaultPatternCacheSize
	}
	cache, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		cache, _ = lru.New[string, *regexp.Regexp](DefaultPatternCacheSize)
	}
	return &Patterns{cache: cache}
}

var (
	defaultPatternsOnce sync.Once
	defaultPatterns     *Patterns
)

// DefaultPatterns returns the process-wide cache.
func DefaultPatterns() *Patterns {
	defaultPatternsOnce.Do(func() {
		defaultPatterns = NewPatterns(DefaultPatternCacheSize)
	})
	return defaultPatterns
}

// Compile returns the cached expression or compiles and stores it.
func (p *Patterns) Compile(expr string) (*regexp.Regexp, error) {
	if re, ok := p.cache.Get(expr); ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, expr, err)
	}
	p.cache.Add(expr, re)
	return re, nil
}

// Len reports how many expressions are cached.
func (p *Patterns) Len() int {
	return p.cache.Len()
}
