// File: settei/doc.go

// Package settei provides a typed configuration-access layer: a read-only
// configuration document (TOML, YAML, or JSON) overlaid with environment
// variable overrides, declarative property descriptors with type checking
// and defaults, and declarative object construction.
//
// Features:
//   - Dotted key paths resolved against a nested document ("worker.broker_url")
//   - Environment overlay with structured names (A__B__C), including list and
//     positional-argument levels encoded with reserved marker segments
//   - Deep merge of environment-derived trees over document values
//   - Property descriptors with declared types, closed unions, enums,
//     defaults, and default-usage warnings
//   - Object properties that instantiate values from a constructor spec
//     ({class = "pkg.path:Name", "*" = [...], key = value}) through an
//     injected symbol resolver, with optional recursion and per-instance
//     caching
//   - Struct decoding of document subtrees via mapstructure, with validator
//     tag support
//
// Quick Start:
//
//	cfg, err := settei.FromPath("app.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var brokerURL = settei.NewProperty("worker.broker_url", settei.String)
//	url, err := brokerURL.Resolve(cfg)
//
// Lookup order for every property read (highest to lowest):
//  1. Document value (scalar document values win outright)
//  2. Environment variables (WORKER__BROKER_URL), deep-merged over mapping
//     document values with environment precedence on overlapping keys
//  3. Declared default (bypasses coercion and typecheck)
//
// Environment naming contract:
//
//	a.b.c                 -> A__B__C
//	list element i        -> PREFIX__SETTEIENVLIST__<i>
//	positional argument i -> PREFIX__ASTERISK__<i>
//	constructor class     -> PREFIX__CLASS
//
// Markers nest arbitrarily, so PREFIX__ASTERISK__0__SETTEIENVLIST__0 is the
// first element of a list passed as the first positional argument.
//
// Thread Safety:
// A Configuration is read-only after construction and safe for concurrent
// readers. The only mutable state is the per-instance object-property cache,
// which is mutex-guarded; concurrent first reads of a cached property may
// construct the object more than once, with the last write winning.
package settei
