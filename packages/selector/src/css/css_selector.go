package css

import (
	"fmt"
	"strings"

	"ngsel-go/packages/selector/src/ml_parser"
)

// Attribute is a required attribute of a CssSelector.
// An empty Value only requires the attribute to be present.
type Attribute struct {
	Name  string
	Value string
}

// CssSelector represents one compound selector: an optional element name, class names,
// attributes and :not() exclusions. Values produced by ParseCssSelector are immutable and
// may be shared between goroutines.
type CssSelector struct {
	Element      *string
	ClassNames   []string
	Attrs        []Attribute
	NotSelectors []*CssSelector
}

// NewCssSelector creates a new CssSelector
func NewCssSelector() *CssSelector {
	return &CssSelector{
		ClassNames:   []string{},
		Attrs:        []Attribute{},
		NotSelectors: []*CssSelector{},
	}
}

// UnescapeAttribute unescapes \$ sequences from the CSS attribute selector
func UnescapeAttribute(attr string) (string, error) {
	var result strings.Builder
	escaping := false
	for i := 0; i < len(attr); i++ {
		char := attr[i]
		if char == '\\' && !escaping {
			escaping = true
			continue
		}
		if char == '$' && !escaping {
			return "", fmt.Errorf(`error in attribute selector "%s". unescaped "$" is not supported. please escape with "\$"`, attr)
		}
		escaping = false
		result.WriteByte(char)
	}
	return result.String(), nil
}

// EscapeAttribute escapes $ sequences from the CSS attribute selector
func EscapeAttribute(attr string) string {
	result := strings.ReplaceAll(attr, "\\", "\\\\")
	result = strings.ReplaceAll(result, "$", "\\$")
	return result
}

// HasElementSelector checks if this selector constrains the element name
func (cs *CssSelector) HasElementSelector() bool {
	return !isWildcard(cs.Element)
}

// SetElement sets the element name
func (cs *CssSelector) SetElement(element string) {
	cs.Element = &element
}

// AddAttribute adds an attribute; the value is lower-cased
func (cs *CssSelector) AddAttribute(name string, value string) {
	cs.Attrs = append(cs.Attrs, Attribute{Name: name, Value: strings.ToLower(value)})
}

// AddClassName adds a lower-cased class name
func (cs *CssSelector) AddClassName(name string) {
	cs.ClassNames = append(cs.ClassNames, strings.ToLower(name))
}

func (cs *CssSelector) isEmpty() bool {
	return cs.Element == nil &&
		len(cs.ClassNames) == 0 &&
		len(cs.Attrs) == 0 &&
		len(cs.NotSelectors) == 0
}

// String returns the canonical form of the selector
func (cs *CssSelector) String() string {
	var res strings.Builder
	if cs.Element != nil {
		res.WriteString(*cs.Element)
	}

	for _, klass := range cs.ClassNames {
		res.WriteString("." + klass)
	}

	for _, attr := range cs.Attrs {
		name := EscapeAttribute(attr.Name)
		if attr.Value != "" {
			fmt.Fprintf(&res, "[%s=%s]", name, attr.Value)
		} else {
			fmt.Fprintf(&res, "[%s]", name)
		}
	}

	for _, notSelector := range cs.NotSelectors {
		fmt.Fprintf(&res, ":not(%s)", notSelector.String())
	}

	return res.String()
}

// MatchingElementTemplate renders a minimal element that the selector matches,
// ignoring :not() clauses. Selectors without an element name render as a div.
func (cs *CssSelector) MatchingElementTemplate() string {
	tagName := "div"
	if cs.HasElementSelector() {
		tagName = *cs.Element
	}

	classAttr := ""
	if len(cs.ClassNames) > 0 {
		classAttr = fmt.Sprintf(` class="%s"`, strings.Join(cs.ClassNames, " "))
	}

	var attrs strings.Builder
	for _, attr := range cs.Attrs {
		attrs.WriteString(" " + attr.Name)
		if attr.Value != "" {
			fmt.Fprintf(&attrs, `="%s"`, attr.Value)
		}
	}

	if ml_parser.GetHtmlTagDefinition(tagName).IsVoid() {
		return fmt.Sprintf("<%s%s%s/>", tagName, classAttr, attrs.String())
	}
	return fmt.Sprintf("<%s%s%s></%s>", tagName, classAttr, attrs.String(), tagName)
}

func isWildcard(element *string) bool {
	return element == nil || *element == "" || *element == "*"
}
