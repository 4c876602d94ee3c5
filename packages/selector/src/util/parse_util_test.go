package util_test

import (
	"errors"
	"testing"

	"ngsel-go/packages/selector/src/util"
)

func TestLocationAt(t *testing.T) {
	file := util.NewParseSourceFile("a,\n  b c", "selector")
	loc := util.LocationAt(file, 7)
	if loc.Line != 1 || loc.Col != 4 {
		t.Errorf("LocationAt = %d:%d, want 1:4", loc.Line, loc.Col)
	}
	if got := loc.String(); got != "selector@1:4" {
		t.Errorf("String() = %q", got)
	}
	if got := util.LocationAt(file, 100).Offset; got != len(file.Content) {
		t.Errorf("Offset clamped to %d, want %d", got, len(file.Content))
	}
}

func TestParseError(t *testing.T) {
	related := errors.New("related")
	file := util.NewParseSourceFile("div span", "selector")
	span := util.NewParseSourceSpan(util.LocationAt(file, 4), util.LocationAt(file, 8), nil)
	err := util.NewParseError(span, "bad")
	err.RelatedError = related

	if !errors.Is(err, related) {
		t.Errorf("expected ParseError to unwrap to the related error")
	}
	if got := span.String(); got != "span" {
		t.Errorf("span.String() = %q", got)
	}
	if got := err.Error(); got != `bad ("div [ERROR ->]span"): selector@0:4` {
		t.Errorf("Error() = %q", got)
	}

	details := "in directive Foo"
	span.Details = &details
	if got := err.Error(); got != `bad ("div [ERROR ->]span"): selector@0:4, in directive Foo` {
		t.Errorf("Error() with details = %q", got)
	}

	if got := util.NewParseError(nil, "plain").Error(); got != "plain" {
		t.Errorf("Error() without span = %q", got)
	}
}
