// Package i18n holds the embedded message catalogs used for every outgoing
// Telegram message. Lookup order: requested locale, default locale, then the
// key itself so a missing translation is visible instead of silent.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

const DefaultLocale = "en"

type Catalog struct {
	messages      map[string]map[string]string
	defaultLocale string
}

// Load parses every embedded locale file. The file stem is the locale tag.
func Load() (*Catalog, error) {
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	catalog := &Catalog{
		messages:      make(map[string]map[string]string, len(entries)),
		defaultLocale: DefaultLocale,
	}
	for _, entry := range entries {
		name := entry.Name()
		data, err := localeFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}
		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}
		locale := strings.TrimSuffix(name, ".json")
		catalog.messages[locale] = messages
	}
	if _, ok := catalog.messages[DefaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q missing from embedded catalogs", DefaultLocale)
	}
	return catalog, nil
}

func (c *Catalog) Supported(locale string) bool {
	_, ok := c.messages[locale]
	return ok
}

// Locales returns the supported locale tags, default first.
func (c *Catalog) Locales() []string {
	out := []string{c.defaultLocale}
	for locale := range c.messages {
		if locale != c.defaultLocale {
			out = append(out, locale)
		}
	}
	return out
}

// T resolves key in the given locale and substitutes {name} placeholders
// from args.
func (c *Catalog) T(locale, key string, args map[string]string) string {
	text, ok := c.messages[locale][key]
	if !ok {
		text, ok = c.messages[c.defaultLocale][key]
	}
	if !ok {
		return key
	}
	for name, value := range args {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}
