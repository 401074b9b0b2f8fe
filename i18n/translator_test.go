package i18n_test

import (
	"testing"

	"github.com/vireo-go/vireo/i18n"
)

func TestMessageParameters(t *testing.T) {
	got := i18n.T("string.min", map[string]string{"min": "3"})
	if got != "String must be at least 3 characters" {
		t.Fatalf("got %q", got)
	}
}

func TestUnknownKeyFallsBackToKey(t *testing.T) {
	if got := i18n.T("no.such.key", nil); got != "no.such.key" {
		t.Fatalf("got %q", got)
	}
}

func TestSetLanguage(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")

	if got := i18n.T("required", nil); got != "必須フィールドが不足しています" {
		t.Fatalf("got %q", got)
	}
	// Keys without a ja entry fall back to the key itself.
	if got := i18n.T("string.min", map[string]string{"min": "3"}); got != "string.min" {
		t.Fatalf("got %q", got)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(key string, _ map[string]string) string { return "!" + key }

func TestSetTranslator(t *testing.T) {
	i18n.SetTranslator(upperTranslator{})
	defer i18n.SetTranslator(nil)

	if got := i18n.T("required", nil); got != "!required" {
		t.Fatalf("got %q", got)
	}
}
