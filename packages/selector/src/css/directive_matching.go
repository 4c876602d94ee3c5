package css

import (
	"cmp"
	"slices"
	"strings"
)

// ElementDescriptor describes the markup element being matched against registered selectors.
// An attribute whose value is unknown is stored with an empty value; it satisfies
// presence-only selectors and fails selectors that require a value.
type ElementDescriptor struct {
	TagName    string
	ClassNames []string
	Attrs      map[string]string
}

// DescriptorFor builds the ElementDescriptor a selector describes, ignoring :not() clauses
func DescriptorFor(cssSelector *CssSelector) ElementDescriptor {
	element := ElementDescriptor{
		ClassNames: append([]string(nil), cssSelector.ClassNames...),
		Attrs:      make(map[string]string, len(cssSelector.Attrs)),
	}
	if cssSelector.HasElementSelector() {
		element.TagName = *cssSelector.Element
	}
	for _, attr := range cssSelector.Attrs {
		element.Attrs[attr.Name] = attr.Value
	}
	return element
}

// MatchCallback is a function type for match callbacks
type MatchCallback[T any] func(c *CssSelector, a T)

// SelectorMatcher matches element descriptors against groups of selectors.
// AddSelectables must not run concurrently with Match; Match itself does not mutate
// the matcher and may be called from many goroutines once registration is done.
type SelectorMatcher[T any] struct {
	groups        []*selectorListContext[T]
	elementMap    map[string][]selectableRef
	classMap      map[string][]selectableRef
	attrMap       map[string][]selectableRef
	unconstrained []selectableRef
}

// selectorListContext is one registered group of alternatives
type selectorListContext[T any] struct {
	selectors []*CssSelector
	cbContext T
}

type selectableRef struct {
	group       int
	alternative int
}

func compareRefs(a, b selectableRef) int {
	if c := cmp.Compare(a.group, b.group); c != 0 {
		return c
	}
	return cmp.Compare(a.alternative, b.alternative)
}

// NewSelectorMatcher creates a new SelectorMatcher
func NewSelectorMatcher[T any]() *SelectorMatcher[T] {
	return &SelectorMatcher[T]{
		elementMap: make(map[string][]selectableRef),
		classMap:   make(map[string][]selectableRef),
		attrMap:    make(map[string][]selectableRef),
	}
}

// Len returns the number of registered groups
func (sm *SelectorMatcher[T]) Len() int {
	return len(sm.groups)
}

// AddSelectables registers a group of alternative selectors under one callback context
func (sm *SelectorMatcher[T]) AddSelectables(cssSelectors []*CssSelector, callbackCtxt T) {
	if len(cssSelectors) == 0 {
		return
	}
	group := len(sm.groups)
	sm.groups = append(sm.groups, &selectorListContext[T]{
		selectors: cssSelectors,
		cbContext: callbackCtxt,
	})
	for i, cssSelector := range cssSelectors {
		sm.addSelectable(selectableRef{group: group, alternative: i}, cssSelector)
	}
}

// addSelectable files the selector under a single key it requires. Any element the
// selector matches carries that key, so looking up the element's own keys finds it.
func (sm *SelectorMatcher[T]) addSelectable(ref selectableRef, cssSelector *CssSelector) {
	switch {
	case cssSelector.HasElementSelector():
		sm.elementMap[*cssSelector.Element] = append(sm.elementMap[*cssSelector.Element], ref)
	case len(cssSelector.ClassNames) > 0:
		className := cssSelector.ClassNames[0]
		sm.classMap[className] = append(sm.classMap[className], ref)
	case len(cssSelector.Attrs) > 0:
		name := cssSelector.Attrs[0].Name
		sm.attrMap[name] = append(sm.attrMap[name], ref)
	default:
		sm.unconstrained = append(sm.unconstrained, ref)
	}
}

// Match reports whether any group matched the element. The callback runs once per
// matching group, in registration order, with the group's first matching alternative.
func (sm *SelectorMatcher[T]) Match(element ElementDescriptor, matchedCallback MatchCallback[T]) bool {
	facts := newElementFacts(element)
	candidates := sm.candidates(facts)
	if len(candidates) == 0 {
		return false
	}
	slices.SortFunc(candidates, compareRefs)

	result := false
	matchedGroup := -1
	for _, ref := range candidates {
		if ref.group == matchedGroup {
			continue
		}
		group := sm.groups[ref.group]
		cssSelector := group.selectors[ref.alternative]
		if !facts.matches(cssSelector) {
			continue
		}
		matchedGroup = ref.group
		result = true
		if matchedCallback != nil {
			matchedCallback(cssSelector, group.cbContext)
		}
	}
	return result
}

func (sm *SelectorMatcher[T]) candidates(facts *elementFacts) []selectableRef {
	var candidates []selectableRef
	candidates = append(candidates, sm.unconstrained...)
	if facts.tagName != "" {
		candidates = append(candidates, sm.elementMap[facts.tagName]...)
	}
	for className := range facts.classNames {
		candidates = append(candidates, sm.classMap[className]...)
	}
	for name := range facts.attrs {
		candidates = append(candidates, sm.attrMap[name]...)
	}
	return candidates
}

type elementFacts struct {
	tagName    string
	classNames map[string]struct{}
	attrs      map[string]string
}

func newElementFacts(element ElementDescriptor) *elementFacts {
	classNames := make(map[string]struct{}, len(element.ClassNames))
	for _, className := range element.ClassNames {
		classNames[strings.ToLower(className)] = struct{}{}
	}
	return &elementFacts{
		tagName:    element.TagName,
		classNames: classNames,
		attrs:      element.Attrs,
	}
}

func (f *elementFacts) matches(cssSelector *CssSelector) bool {
	if !f.matchesCompound(cssSelector) {
		return false
	}
	for _, notSelector := range cssSelector.NotSelectors {
		if f.matchesCompound(notSelector) {
			return false
		}
	}
	return true
}

// matchesCompound checks element, classes and attributes; :not() is handled by matches
func (f *elementFacts) matchesCompound(cssSelector *CssSelector) bool {
	if cssSelector.HasElementSelector() && *cssSelector.Element != f.tagName {
		return false
	}
	for _, className := range cssSelector.ClassNames {
		if _, ok := f.classNames[className]; !ok {
			return false
		}
	}
	for _, attr := range cssSelector.Attrs {
		value, ok := f.attrs[attr.Name]
		if !ok {
			return false
		}
		// selector values are stored lower-cased
		if attr.Value != "" && strings.ToLower(value) != attr.Value {
			return false
		}
	}
	return true
}
