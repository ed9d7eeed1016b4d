package i18n

import (
	"context"
	"strings"
)

// DefaultLanguage is used when no language is requested or matched.
const DefaultLanguage = "en"

type localeKey struct{}

// SetLocale returns a context carrying the locale FormatContext renders
// messages in. Underscores are accepted as separators, so "pt_BR" is
// stored as "pt-BR".
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, normalizeLocale(locale))
}

// LocaleFromContext returns the locale stored by SetLocale.
func LocaleFromContext(ctx context.Context) (string, bool) {
	locale, _ := ctx.Value(localeKey{}).(string)
	return locale, locale != ""
}

// GetLocale returns the locale stored by SetLocale, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if locale, ok := LocaleFromContext(ctx); ok {
		return locale
	}
	return DefaultLanguage
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}
