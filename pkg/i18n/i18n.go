// Package i18n resolves dotted message keys against the embedded id and en
// catalogs. Indonesian is the default and the fallback for missing keys.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
)

//go:embed messages/*.json
var messagesFS embed.FS

const (
	LocaleIndonesian = "id"
	LocaleEnglish    = "en"
	DefaultLocale    = LocaleIndonesian
)

var locales = []string{LocaleIndonesian, LocaleEnglish}

type localeKey struct{}

// catalog maps locale to flattened "section.name" keys
type catalog map[string]map[string]string

var catalogs = sync.OnceValue(func() catalog {
	c := make(catalog, len(locales))
	for _, locale := range locales {
		data, err := messagesFS.ReadFile("messages/" + locale + ".json")
		if err != nil {
			panic(fmt.Sprintf("i18n: missing catalog %s: %v", locale, err))
		}
		var tree map[string]any
		if err := json.Unmarshal(data, &tree); err != nil {
			panic(fmt.Sprintf("i18n: malformed catalog %s: %v", locale, err))
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		c[locale] = flat
	}
	return c
})

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case string:
			out[key] = v
		case map[string]any:
			flatten(key, v, out)
		}
	}
}

// Localizer renders messages in one locale
type Localizer struct {
	locale string
}

// NewLocalizer returns a localizer for locale, or Indonesian when there is
// no catalog for it
func NewLocalizer(locale string) *Localizer {
	if !IsSupported(locale) {
		locale = DefaultLocale
	}
	return &Localizer{locale: locale}
}

// IsSupported reports whether a catalog exists for locale
func IsSupported(locale string) bool {
	return lo.Contains(locales, locale)
}

// LocalizerFromContext returns a localizer for the request locale
func LocalizerFromContext(ctx context.Context) *Localizer {
	return NewLocalizer(GetLocaleFromContext(ctx))
}

func (l *Localizer) lookup(key string) (string, bool) {
	c := catalogs()
	if msg, ok := c[l.locale][key]; ok {
		return msg, true
	}
	msg, ok := c[DefaultLocale][key]
	return msg, ok
}

// T renders key, substituting {name} placeholders from params. Unknown keys
// render as the key itself.
func (l *Localizer) T(key string, params ...map[string]string) string {
	msg, ok := l.lookup(key)
	if !ok {
		return key
	}
	if len(params) == 0 || len(params[0]) == 0 {
		return msg
	}
	pairs := make([]string, 0, 2*len(params[0]))
	for k, v := range params[0] {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Has reports whether key resolves in this locale or the default one
func (l *Localizer) Has(key string) bool {
	_, ok := l.lookup(key)
	return ok
}

// GetLocale returns the localizer's locale
func (l *Localizer) GetLocale() string {
	return l.locale
}

// WithLocale stores locale in ctx
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// GetLocaleFromContext returns the locale stored in ctx or the default
func GetLocaleFromContext(ctx context.Context) string {
	if locale, ok := ctx.Value(localeKey{}).(string); ok && locale != "" {
		return locale
	}
	return DefaultLocale
}

// ParseAcceptLanguage picks English only when the first preference is
// English. Reporters are local residents, so everything else is Indonesian.
func ParseAcceptLanguage(header string) string {
	first, _, _ := strings.Cut(header, ",")
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(first)), "en") {
		return LocaleEnglish
	}
	return LocaleIndonesian
}

// T renders key in the default locale
func T(key string, params ...map[string]string) string {
	return NewLocalizer(DefaultLocale).T(key, params...)
}

// TFromContext renders key in the locale stored in ctx
func TFromContext(ctx context.Context, key string, params ...map[string]string) string {
	return LocalizerFromContext(ctx).T(key, params...)
}
