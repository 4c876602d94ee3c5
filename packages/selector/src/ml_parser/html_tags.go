package ml_parser

import (
	"strings"
	"sync"
)

// HtmlTagDefinition describes how an HTML tag is rendered in a template
type HtmlTagDefinition struct {
	isVoid bool
}

// NewHtmlTagDefinition creates a new HtmlTagDefinition
func NewHtmlTagDefinition(isVoid bool) *HtmlTagDefinition {
	return &HtmlTagDefinition{isVoid: isVoid}
}

// IsVoid returns whether this tag is void, i.e. rendered without a closing tag
func (h *HtmlTagDefinition) IsVoid() bool {
	return h.isVoid
}

var (
	tagDefinitionsOnce   sync.Once
	defaultTagDefinition *HtmlTagDefinition
	tagDefinitions       map[string]*HtmlTagDefinition
)

// GetHtmlTagDefinition returns the HTML tag definition for a tag name
func GetHtmlTagDefinition(tagName string) *HtmlTagDefinition {
	tagDefinitionsOnce.Do(initHtmlTagDefinitions)

	// Case-sensitive lookup first
	if def, exists := tagDefinitions[tagName]; exists {
		return def
	}

	if def, exists := tagDefinitions[strings.ToLower(tagName)]; exists {
		return def
	}

	return defaultTagDefinition
}

func initHtmlTagDefinitions() {
	defaultTagDefinition = NewHtmlTagDefinition(false)

	tagDefinitions = make(map[string]*HtmlTagDefinition)

	// Void elements
	voidTags := []string{"base", "meta", "area", "embed", "link", "img", "input", "param", "hr", "br", "source", "track", "wbr", "col"}
	for _, tag := range voidTags {
		tagDefinitions[tag] = NewHtmlTagDefinition(true)
	}
}
