package directive

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ngsel-go/packages/selector/src/css"
)

// Kind distinguishes components from attribute directives
type Kind string

const (
	KindDirective Kind = "directive"
	KindComponent Kind = "component"
)

// Directive is the selector metadata of one directive or component
type Directive struct {
	Name     string `yaml:"name"`
	Selector string `yaml:"selector"`
	Kind     Kind   `yaml:"kind,omitempty"`
}

// Element is the serialized form of an element descriptor.
// An attribute listed without a value (`attr:` or `attr: ~`) is present with an unknown value.
type Element struct {
	Tag     string            `yaml:"tag"`
	Classes []string          `yaml:"classes,omitempty"`
	Attrs   map[string]string `yaml:"attrs,omitempty"`
}

// Descriptor converts the element into the form the matcher consumes
func (e Element) Descriptor() css.ElementDescriptor {
	return css.ElementDescriptor{
		TagName:    e.Tag,
		ClassNames: e.Classes,
		Attrs:      e.Attrs,
	}
}

// Document is a YAML file holding directives, elements, or both
type Document struct {
	Directives []Directive `yaml:"directives"`
	Elements   []Element   `yaml:"elements"`
}

// LoadDocument reads a Document from a YAML file
func LoadDocument(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open %s: %w", path, err)
	}
	defer file.Close()

	doc := &Document{}
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i, d := range doc.Directives {
		switch d.Kind {
		case "":
			doc.Directives[i].Kind = KindDirective
		case KindDirective, KindComponent:
		default:
			return nil, fmt.Errorf("%s: directive %q has unknown kind %q", path, d.Name, d.Kind)
		}
	}
	return doc, nil
}

// LoadDirectives reads the directives section of a YAML file
func LoadDirectives(path string) ([]Directive, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Directives, nil
}

// LoadElements reads the elements section of a YAML file
func LoadElements(path string) ([]Element, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Elements, nil
}
