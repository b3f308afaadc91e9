// Package i18n holds add-on translation tables.
//
// A table maps a locale to (context, message) pairs and their translations.
// Tables are plain data handed to the host's translation registry under the
// add-on's namespace; this package only builds and validates them.
package i18n

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultContext is the context used for messages without one.
const DefaultContext = "*"

// ErrInvalidLocale is returned for locale names that are not language tags.
var ErrInvalidLocale = errors.New("invalid locale")

// Key identifies a translatable message.
type Key struct {
	Context string
	Message string
}

// Table maps a locale to its translated messages.
type Table map[string]map[Key]string

// Add records a translation. An empty context means DefaultContext.
func (t Table) Add(locale, context, message, text string) {
	if context == "" {
		context = DefaultContext
	}
	msgs, ok := t[locale]
	if !ok {
		msgs = make(map[Key]string)
		t[locale] = msgs
	}
	msgs[Key{Context: context, Message: message}] = text
}

// Lookup returns the translation of message in locale.
func (t Table) Lookup(locale, context, message string) (string, bool) {
	if context == "" {
		context = DefaultContext
	}
	text, ok := t[locale][Key{Context: context, Message: message}]
	return text, ok
}

// Locales returns the table's locales, sorted.
func (t Table) Locales() []string {
	locales := make([]string, 0, len(t))
	for l := range t {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}

// Len returns the number of translations across all locales.
func (t Table) Len() int {
	n := 0
	for _, msgs := range t {
		n += len(msgs)
	}
	return n
}

// CanonicalLocale validates a locale and returns it in the host's
// underscore form (e.g. "ja-jp" becomes "ja_JP").
func CanonicalLocale(locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidLocale, locale, err)
	}
	return strings.ReplaceAll(tag.String(), "-", "_"), nil
}

// document is the on-disk layout: locale -> context -> message -> text.
type document map[string]map[string]map[string]string

// ParseYAML decodes a YAML translation document.
func ParseYAML(data []byte) (Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing translations: %w", err)
	}

	t := make(Table, len(doc))
	for locale, contexts := range doc {
		canon, err := CanonicalLocale(locale)
		if err != nil {
			return nil, err
		}
		for ctx, msgs := range contexts {
			for msg, text := range msgs {
				t.Add(canon, ctx, msg, text)
			}
		}
	}
	return t, nil
}

// LoadYAML reads a YAML translation document from path.
func LoadYAML(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading translations %s: %w", path, err)
	}
	t, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
