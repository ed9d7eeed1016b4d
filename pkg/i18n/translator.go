package i18n

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// LabelsKey is the default catalogue section holding translated property
// labels. A label "email" is looked up as "labels.email".
const LabelsKey = "labels"

// Translator renders validation messages from a translation catalogue.
// Catalogue keys are the untranslated message templates, so a missing
// translation still renders a readable English message.
type Translator struct {
	translations   map[string]map[string]any
	langs          []string
	matcher        language.Matcher
	defaultLang    string
	labelsKey      string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	mu             sync.RWMutex
	adapter        TranslationAdapter
}

// NewTranslator creates a Translator and loads the catalogue from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrAdapterRequired
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		labelsKey:     LabelsKey,
		fallbackToKey: true,
		logger:        logger.Discard(),
		adapter:       adapter,
	}
	for _, option := range options {
		option(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload reads the catalogue from the adapter again and swaps it in.
// The previous catalogue stays active when loading fails.
func (t *Translator) Reload(ctx context.Context) error {
	translations, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	if err := validateTranslations(translations); err != nil {
		return err
	}
	if len(translations) == 0 {
		t.logger.WarnContext(ctx, "no translations provided")
	}

	langs := supportedLanguages(translations)
	matcher := newMatcher(t.defaultLang, langs)

	t.mu.Lock()
	t.translations = translations
	t.langs = langs
	t.matcher = matcher
	t.mu.Unlock()

	t.logger.InfoContext(ctx, "translations loaded",
		logger.Component("i18n"),
		slog.Any("languages", langs),
	)
	return nil
}

func validateTranslations(trans map[string]map[string]any) error {
	for lang, translations := range trans {
		if lang == "" {
			return fmt.Errorf("%w: empty language code", ErrInvalidTranslations)
		}
		if translations == nil {
			return fmt.Errorf("%w: nil translations for language %q", ErrInvalidTranslations, lang)
		}
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("%w: language %q: %w", ErrInvalidTranslations, lang, err)
		}
	}
	return nil
}

func supportedLanguages(trans map[string]map[string]any) []string {
	langs := make([]string, 0, len(trans))
	for lang := range trans {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// newMatcher puts the default language first so it wins when nothing matches.
func newMatcher(defaultLang string, langs []string) language.Matcher {
	tags := make([]language.Tag, 0, len(langs)+1)
	tags = append(tags, language.Make(defaultLang))
	for _, lang := range langs {
		if lang != defaultLang {
			tags = append(tags, language.Make(lang))
		}
	}
	return language.NewMatcher(tags)
}

// SupportedLanguages returns the catalogue languages in sorted order.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.langs)
}

// DefaultLanguage returns the language used when a request matches nothing.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match resolves a requested language ("en-US", "de_AT", "fr") to the closest
// catalogue language. Unknown or malformed tags resolve to the default.
func (t *Translator) Match(lang string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.match(lang)
}

func (t *Translator) match(lang string) string {
	if _, ok := t.translations[lang]; ok {
		return lang
	}
	tag, err := language.Parse(normalizeLocale(lang))
	if err != nil {
		return t.defaultLang
	}
	_, index, confidence := t.matcher.Match(tag)
	if confidence == language.No {
		return t.defaultLang
	}
	if index == 0 {
		return t.defaultLang
	}
	rest := slices.DeleteFunc(slices.Clone(t.langs), func(l string) bool { return l == t.defaultLang })
	return rest[index-1]
}

// HasTranslation reports whether key is translated in the matched language.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.lookup(t.match(lang), key)
	return ok
}

// lookup tries key verbatim first because message templates contain dots,
// then walks nested sections by dot-separated parts.
func (t *Translator) lookup(lang, key string) (string, bool) {
	m, ok := t.translations[lang]
	if !ok {
		return "", false
	}
	if s, ok := m[key].(string); ok {
		return s, true
	}

	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, ok := val.(string)
			return s, ok
		}
		next, ok := val.(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}
	return "", false
}

// translate returns the template for key in lang, trying the default
// language second.
func (t *Translator) translate(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	matched := t.match(lang)
	if s, ok := t.lookup(matched, key); ok {
		return s, true
	}
	if matched != t.defaultLang {
		if s, ok := t.lookup(t.defaultLang, key); ok {
			return s, true
		}
	}
	if t.missingLogMode {
		t.logger.Warn("translation not found", logger.Locale(lang), slog.String("key", key))
	}
	return "", false
}

// T translates key and substitutes {name} placeholders from args given as
// name/value pairs. A trailing name without a value is ignored.
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl, ok := t.translate(lang, key)
	if !ok {
		if !t.fallbackToKey {
			return ""
		}
		tmpl = key
	}
	params := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return validator.FormatMessage(tmpl, params)
}

// Format translates a validation message template and renders its params.
// The untranslated template is used when no translation exists. Property
// labels are translated from the labels section when present.
func (t *Translator) Format(lang, message string, params map[string]any) string {
	tmpl, ok := t.translate(lang, message)
	if !ok {
		tmpl = message
	}
	return validator.FormatMessage(tmpl, t.translateLabel(lang, params))
}

func (t *Translator) translateLabel(lang string, params map[string]any) map[string]any {
	label, ok := params["property"].(string)
	if !ok || label == "" || t.labelsKey == "" {
		return params
	}
	translated, ok := t.translate(lang, t.labelsKey+"."+label)
	if !ok {
		return params
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	out["property"] = translated
	out["Property"] = upperFirst(translated)
	return out
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Formatter binds the translator to a language for use with
// validator.Result rendering methods.
func (t *Translator) Formatter(lang string) validator.MessageFormatter {
	return validator.FormatterFunc(func(message string, params map[string]any) string {
		return t.Format(lang, message, params)
	})
}

// FormatContext renders a message in the locale stored in ctx.
func (t *Translator) FormatContext(ctx context.Context, message string, params map[string]any) string {
	return t.Format(GetLocale(ctx), message, params)
}

// ExportJSON returns the catalogue of the matched language as JSON.
func (t *Translator) ExportJSON(lang string) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	data, err := json.Marshal(t.translations[t.match(lang)])
	if err != nil {
		return nil, errors.Join(ErrFailedToMarshalJSON, err)
	}
	return data, nil
}
