package i18n

import (
	"log/slog"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the catalogue language used when the requested
// language matches nothing. It must exist in the catalogue.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang = normalizeLocale(lang); lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithLabelsSection sets the catalogue section property labels are
// translated from. An empty name leaves labels untranslated.
func WithLabelsSection(name string) Option {
	return func(t *Translator) {
		t.labelsKey = name
	}
}

// WithFallbackToKey controls whether T returns the key when a translation
// is missing (the default) or an empty string. Format always falls back to
// the message template.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

// WithLogger sets the logger for catalogue reloads and missing
// translations. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(t *Translator) {
		if log != nil {
			t.logger = log
		}
	}
}

// WithMissingTranslationsLogging logs every message or label without a
// translation at warn level.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) {
		t.missingLogMode = enabled
	}
}

// WithNoLogging discards all translator logs.
func WithNoLogging() Option {
	return func(t *Translator) {
		t.logger = logger.Discard()
		t.missingLogMode = false
	}
}
