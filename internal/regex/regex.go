// Package regex is a small pluggable regex-engine registry plus a SQL LIKE
// pattern translator (LikeToRegexp). Engines are registered by name; the
// default engine is used when a caller does not pin a specific one. No
// other package of this module imports it: the expression evaluator
// rejects LIKE/ILIKE comparisons as not supported. Only a "go" engine (stdlib regexp) ships here; the
// registry exists so a future build can register a faster engine (e.g.
// RE2-compatible) without changing kernel call sites.
package regex

import (
	"regexp"
	"sync"

	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrRegexNameEmpty is returned by Register when given an empty name.
var ErrRegexNameEmpty = errors.NewKind("regex engine name must not be empty")

// ErrRegexEngineNotFound is returned by New for an unregistered engine name.
var ErrRegexEngineNotFound = errors.NewKind("regex engine '%s' not registered")

// Matcher tests whether a compiled pattern matches a string.
type Matcher interface {
	Match(s string) bool
}

// Disposer releases resources held by a compiled Matcher. The stdlib "go"
// engine has nothing to release; Dispose is a no-op for it.
type Disposer interface {
	Dispose()
}

// Constructor compiles pattern into a Matcher/Disposer pair for one engine.
type Constructor func(pattern string) (Matcher, Disposer, error)

type goMatcher struct{ re *regexp.Regexp }

func (m *goMatcher) Match(s string) bool { return m.re.MatchString(s) }

type goDisposer struct{}

func (goDisposer) Dispose() {}

func goConstructor(pattern string) (Matcher, Disposer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, nil, err
	}
	return &goMatcher{re: re}, goDisposer{}, nil
}

var (
	mu           sync.RWMutex
	engines      = map[string]Constructor{"go": goConstructor}
	builtinOrder = []string{"go"}
	defaultName  = "go"
)

// Register adds a new engine under name. Registering over an existing name
// replaces it.
func Register(name string, ctor Constructor) error {
	if name == "" {
		return ErrRegexNameEmpty.New()
	}
	mu.Lock()
	defer mu.Unlock()
	if _, exists := engines[name]; !exists {
		builtinOrder = append(builtinOrder, name)
	}
	engines[name] = ctor
	return nil
}

// Engines lists the names of every registered engine.
func Engines() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(builtinOrder))
	copy(out, builtinOrder)
	return out
}

// Default returns the name of the currently selected default engine.
func Default() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultName
}

// SetDefault selects the default engine by name. An empty name resets the
// default to "go".
func SetDefault(name string) {
	mu.Lock()
	defer mu.Unlock()
	if name == "" {
		defaultName = "go"
		return
	}
	defaultName = name
}

// New compiles pattern with the named engine.
func New(name, pattern string) (Matcher, Disposer, error) {
	mu.RLock()
	ctor, ok := engines[name]
	mu.RUnlock()
	if !ok {
		return nil, nil, ErrRegexEngineNotFound.New(name)
	}
	return ctor(pattern)
}

// LikeToRegexp translates a SQL LIKE pattern (% and _ wildcards, with \
// escaping) into an equivalent Go regexp source, anchored at both ends.
func LikeToRegexp(pattern string, caseInsensitive bool) string {
	out := make([]byte, 0, len(pattern)*2+8)
	if caseInsensitive {
		out = append(out, "(?i)"...)
	}
	out = append(out, '^')
	escaped := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case escaped:
			out = append(out, regexp.QuoteMeta(string(c))...)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '%':
			out = append(out, '.', '*')
		case c == '_':
			out = append(out, '.')
		default:
			out = append(out, regexp.QuoteMeta(string(c))...)
		}
	}
	out = append(out, '$')
	return string(out)
}
