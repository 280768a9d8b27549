/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config carries the Environment's resolution knobs: the
// three-directory resource search path, the framework token substituted
// into it, and the recursion guard the Dispatcher Synthesizer's
// default-chain walk uses to bound pathological nesting.
package config

const (
	// DefaultFramework is substituted for "{{.Framework}}" in SearchPaths
	// when none is supplied, naming the config tree this binary reads by
	// default ("META-INF/<framework>/...").
	DefaultFramework = "spi"

	// DefaultMaxChainDepth bounds the number of fallback keys an
	// adaptive method may declare (the nested "key2 != null ? ... :
	// default" resolution chain). Eight fallback keys is well beyond
	// any real extension-point method signature.
	DefaultMaxChainDepth = 8
)

// DefaultSearchPaths is the three-directory precedence order: internal
// overrides first, then the user-supplied tree, then the
// "services"-style fallback shared with other JVM-derived tooling. Each
// entry may contain the literal token "{{.Framework}}", substituted with
// Config.Framework at scan time.
func DefaultSearchPaths() []string {
	return []string{
		"META-INF/{{.Framework}}/internal/",
		"META-INF/{{.Framework}}/",
		"META-INF/services/",
	}
}

// Config carries the read-only knobs that influence the Resource Scanner
// and the Dispatcher Synthesizer. It is passed by value and should be
// treated as immutable once built by NewConfig.
type Config struct {
	// Framework is substituted into each SearchPaths template's
	// "{{.Framework}}" placeholder.
	Framework string

	// SearchPaths are the directory templates scanned in precedence
	// order; first match for a given name wins.
	SearchPaths []string

	// MaxChainDepth bounds how many fallback keys an adaptive method may
	// declare; synth.Generate rejects a point whose key chain is longer
	// than this with a *apis.SynthesisError. Zero or negative disables
	// the check.
	MaxChainDepth int

	// NormalizeNames lower-cases and trims extension names before
	// comparison, matching the scanner's line-grammar tolerance for
	// incidental whitespace.
	NormalizeNames bool
}

// Option is a functional option that mutates a Config during construction.
type Option func(*Config)

// DefaultConfig is the configuration used when NewConfig is called with no
// options.
func DefaultConfig() Config {
	return Config{
		Framework:      DefaultFramework,
		SearchPaths:    DefaultSearchPaths(),
		MaxChainDepth:  DefaultMaxChainDepth,
		NormalizeNames: false,
	}
}

// NewConfig constructs a Config from the given options, starting from
// DefaultConfig and applying options in order (last option for a given
// field wins).
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxChainDepth < 0 {
		cfg.MaxChainDepth = DefaultMaxChainDepth
	}
	if len(cfg.SearchPaths) == 0 {
		cfg.SearchPaths = DefaultSearchPaths()
	}
	return cfg
}

// WithFramework sets the token substituted into SearchPaths templates.
func WithFramework(framework string) Option {
	return func(c *Config) {
		c.Framework = framework
	}
}

// WithSearchPaths replaces the default three-directory precedence list
// entirely. An empty list resets to DefaultSearchPaths.
func WithSearchPaths(paths ...string) Option {
	return func(c *Config) {
		c.SearchPaths = paths
	}
}

// WithMaxChainDepth sets the synthesizer's recursion guard. A negative
// value resets to DefaultMaxChainDepth.
func WithMaxChainDepth(depth int) Option {
	return func(c *Config) {
		if depth < 0 {
			c.MaxChainDepth = DefaultMaxChainDepth
			return
		}
		c.MaxChainDepth = depth
	}
}

// WithNormalizeNames sets whether extension names are normalized before
// comparison.
func WithNormalizeNames(normalize bool) Option {
	return func(c *Config) {
		c.NormalizeNames = normalize
	}
}
