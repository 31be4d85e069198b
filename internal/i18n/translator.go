// Package i18n provides the translation lookup used when list-view indicator
// labels are rendered. The catalog is loaded from configuration at startup and
// is read-only afterwards.
package i18n

// Translator resolves a source-language message to its localized form.
type Translator interface {
	T(msg string) string
}

// Catalog is a Translator backed by a per-language message map. Messages
// without an entry pass through untranslated.
type Catalog struct {
	lang     string
	messages map[string]string
}

// NewCatalog creates a catalog translator for the given language. The messages
// map is keyed by source message; a nil map yields a passthrough translator.
func NewCatalog(lang string, messages map[string]string) *Catalog {
	return &Catalog{
		lang:     lang,
		messages: messages,
	}
}

// Lang returns the catalog's language code
func (c *Catalog) Lang() string {
	return c.lang
}

// T returns the localized form of msg, or msg itself when no translation exists
func (c *Catalog) T(msg string) string {
	if translated, ok := c.messages[msg]; ok {
		return translated
	}
	return msg
}

// Noop is a passthrough Translator for contexts where no catalog is loaded.
type Noop struct{}

// T returns msg unchanged
func (Noop) T(msg string) string {
	return msg
}
