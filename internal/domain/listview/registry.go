package listview

import (
	"fmt"
	"sort"
	"sync"

	"github.com/NamanGarg4/procurement/internal/i18n"
)

// IndicatorFunc resolves a record's status to an indicator. The boolean is
// false when the status matches no rule, in which case the list renders no
// badge; an unmatched status is not an error. The translator localizes the
// indicator label.
type IndicatorFunc func(doc StatusHolder, tr i18n.Translator) (Indicator, bool)

// Settings is the list-view configuration registered for one document type.
type Settings struct {
	// AddFields are the field names the list query must load for every row,
	// in declaration order. They feed display columns and the indicator
	// resolver; the registry does not interpret them.
	AddFields []string

	// GetIndicator resolves a row's status badge. Nil means the doctype
	// renders no indicators.
	GetIndicator IndicatorFunc
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Settings)
)

// Register installs the list-view settings for a document type. Settings are
// registered once at startup, from package init functions, and are read-only
// afterwards; registering the same doctype twice panics.
func Register(doctype string, settings Settings) {
	mu.Lock()
	defer mu.Unlock()

	if doctype == "" {
		panic("listview: empty doctype")
	}
	if _, exists := registry[doctype]; exists {
		panic(fmt.Sprintf("listview: settings already registered for %q", doctype))
	}
	registry[doctype] = settings
}

// Lookup returns the settings registered for a document type.
func Lookup(doctype string) (Settings, bool) {
	mu.RLock()
	defer mu.RUnlock()

	settings, ok := registry[doctype]
	return settings, ok
}

// Doctypes returns the registered document type names, sorted.
func Doctypes() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve runs the doctype's indicator resolver against a record. It returns
// false when the doctype is unknown, has no resolver, or the status matches
// no rule.
func Resolve(doctype string, doc StatusHolder, tr i18n.Translator) (Indicator, bool) {
	settings, ok := Lookup(doctype)
	if !ok || settings.GetIndicator == nil {
		return Indicator{}, false
	}
	return settings.GetIndicator(doc, tr)
}
