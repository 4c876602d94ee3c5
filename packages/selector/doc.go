// Package selector matches directive and component selectors against template elements.
//
// Selectors are the CSS-like strings found in directive metadata ("input[type=text]",
// ".btn:not([disabled])", "a[routerLink], area[routerLink]"). They are parsed into
// compound predicates and registered in a matcher that reports, for an element's tag,
// classes and attributes, which registered selector groups apply.
//
// Main sub-packages:
//
//   - css: selector parsing (ParseCssSelector), CssSelector, SelectorMatcher, SelectorCache
//   - directive: directive registries built from selector metadata, YAML loading
//   - config: matcher configuration (workers, cache size, strict mode)
//   - util: parse errors with source context
//   - core: character classes used by the selector parser
//   - ml_parser: HTML tag definitions used when rendering matching elements
//
// Supported selector syntax is limited to an element name, classes, attributes, ids and
// single-level :not() clauses. Combinators and other pseudo-classes are rejected.
package selector
