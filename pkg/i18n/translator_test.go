package i18n_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

type adapterFunc func(ctx context.Context) (map[string]map[string]any, error)

func (f adapterFunc) Load(ctx context.Context) (map[string]map[string]any, error) { return f(ctx) }

func catalogue() map[string]map[string]any {
	return map[string]map[string]any{
		"en": {
			"greeting": "Hello",
			"welcome":  "Welcome, {name}!",
			"nested":   map[string]any{"greeting": "Nested hello"},
			"labels":   map[string]any{"email": "e-mail address"},
		},
		"de": {
			"greeting":                    "Hallo",
			"{Property} cannot be blank.": "{Property} darf nicht leer sein.",
			"labels":                      map[string]any{"email": "E-Mail-Adresse"},
		},
		"fr": {
			"greeting": "Bonjour",
		},
	}
}

func newTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: catalogue()}, opts...)
	require.NoError(t, err)
	return tr
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	t.Run("requires an adapter", func(t *testing.T) {
		_, err := i18n.NewTranslator(context.Background(), nil)
		require.ErrorIs(t, err, i18n.ErrAdapterRequired)
	})

	t.Run("propagates adapter errors", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := i18n.NewTranslator(context.Background(), adapterFunc(func(context.Context) (map[string]map[string]any, error) {
			return nil, boom
		}))
		require.ErrorIs(t, err, boom)
	})

	t.Run("rejects invalid catalogues", func(t *testing.T) {
		for name, data := range map[string]map[string]map[string]any{
			"empty language": {"": {"a": "b"}},
			"nil messages":   {"en": nil},
			"malformed tag":  {"not a language!": {"a": "b"}},
		} {
			t.Run(name, func(t *testing.T) {
				_, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: data})
				require.ErrorIs(t, err, i18n.ErrInvalidTranslations)
			})
		}
	})

	t.Run("empty catalogue is allowed", func(t *testing.T) {
		tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{})
		require.NoError(t, err)
		assert.Empty(t, tr.SupportedLanguages())
		assert.Equal(t, "x", tr.T("en", "x"))
	})

	t.Run("options", func(t *testing.T) {
		tr := newTranslator(t, i18n.WithDefaultLanguage("de"), i18n.WithNoLogging())
		assert.Equal(t, "de", tr.DefaultLanguage())
		assert.Equal(t, []string{"de", "en", "fr"}, tr.SupportedLanguages())
	})
}

func TestTranslator_Match(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	tests := []struct {
		lang string
		want string
	}{
		{"de", "de"},
		{"de-AT", "de"},
		{"de_AT", "de"},
		{"fr-CA", "fr"},
		{"en-US", "en"},
		{"ja", "en"},
		{"not a tag!", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.lang))
		})
	}
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	assert.Equal(t, "Hallo", tr.T("de", "greeting"))
	assert.Equal(t, "Welcome, Jane!", tr.T("en", "welcome", "name", "Jane"))
	assert.Equal(t, "Nested hello", tr.T("en", "nested.greeting"))
	assert.Equal(t, "Welcome, Jane!", tr.T("de", "welcome", "name", "Jane"), "falls back to the default language")
	assert.Equal(t, "Welcome, {name}!", tr.T("en", "welcome", "name"), "dangling name is ignored")
	assert.Equal(t, "missing.key", tr.T("fr", "missing.key"))
	assert.Equal(t, "nested", tr.T("en", "nested"), "sections are not messages")

	strict := newTranslator(t, i18n.WithFallbackToKey(false))
	assert.Empty(t, strict.T("fr", "missing.key"))
}

func TestTranslator_HasTranslation(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	assert.True(t, tr.HasTranslation("de", "{Property} cannot be blank."))
	assert.True(t, tr.HasTranslation("de-CH", "labels.email"))
	assert.False(t, tr.HasTranslation("fr", "{Property} cannot be blank."))
	assert.False(t, tr.HasTranslation("en", "nested"))
}

func TestTranslator_Format(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	blank := "{Property} cannot be blank."

	tests := []struct {
		name   string
		lang   string
		params map[string]any
		want   string
	}{
		{"translated message and label", "de", map[string]any{"property": "email", "Property": "Email"}, "E-Mail-Adresse darf nicht leer sein."},
		{"untranslated label", "de", map[string]any{"property": "name", "Property": "Name"}, "Name darf nicht leer sein."},
		{"template fallback", "fr", map[string]any{"property": "name", "Property": "Name"}, "Name cannot be blank."},
		{"label from default language", "fr", map[string]any{"property": "email", "Property": "Email"}, "E-mail address cannot be blank."},
		{"no params", "de", nil, "{Property} darf nicht leer sein."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Format(tt.lang, blank, tt.params))
		})
	}

	t.Run("does not modify params", func(t *testing.T) {
		params := map[string]any{"property": "email", "Property": "Email"}
		tr.Format("de", blank, params)
		assert.Equal(t, "Email", params["Property"])
	})
}

func TestTranslator_Formatter(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	res, err := validator.New().Validate(context.Background(), map[string]any{"email": "", "name": ""}, validator.Rules{
		"email": {validator.Required()},
		"name":  {validator.Required()},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"email": {"E-Mail-Adresse darf nicht leer sein."},
		"name":  {"Name darf nicht leer sein."},
	}, res.MessagesIndexedByPath(tr.Formatter("de-DE")))

	ctx := i18n.SetLocale(context.Background(), "de")
	e, ok := res.First()
	require.True(t, ok)
	assert.Equal(t, "E-Mail-Adresse darf nicht leer sein.", tr.FormatContext(ctx, e.Message, e.Params))
	assert.Equal(t, "E-mail address cannot be blank.", tr.FormatContext(context.Background(), e.Message, e.Params))
}

func TestTranslator_Reload(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		data = catalogue()
		fail error
	)
	adapter := adapterFunc(func(context.Context) (map[string]map[string]any, error) {
		mu.Lock()
		defer mu.Unlock()
		return data, fail
	})

	tr, err := i18n.NewTranslator(context.Background(), adapter)
	require.NoError(t, err)

	mu.Lock()
	data = map[string]map[string]any{"en": {"greeting": "Hi"}, "es": {"greeting": "Hola"}}
	mu.Unlock()
	require.NoError(t, tr.Reload(context.Background()))
	assert.Equal(t, "Hola", tr.T("es", "greeting"))
	assert.Equal(t, []string{"en", "es"}, tr.SupportedLanguages())

	mu.Lock()
	fail = errors.New("unavailable")
	mu.Unlock()
	require.Error(t, tr.Reload(context.Background()))
	assert.Equal(t, "Hola", tr.T("es", "greeting"), "keeps the previous catalogue")
}

func TestTranslator_Concurrency(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.Equal(t, "Hallo", tr.T("de", "greeting"))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, tr.Reload(context.Background()))
		}()
	}
	wg.Wait()
}

func TestTranslator_ExportJSON(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	data, err := tr.ExportJSON("fr-FR")
	require.NoError(t, err)
	assert.JSONEq(t, `{"greeting":"Bonjour"}`, string(data))
}

func TestTranslator_MissingTranslationLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	tr := newTranslator(t, i18n.WithLogger(log), i18n.WithMissingTranslationsLogging(true))

	tr.T("fr", "missing.key")
	assert.Contains(t, buf.String(), "translation not found")
	assert.Contains(t, buf.String(), "missing.key")
}

func TestLocaleContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(context.Background()))
	assert.Equal(t, "de", i18n.GetLocale(i18n.SetLocale(context.Background(), "de")))
	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(i18n.SetLocale(context.Background(), "")))
	assert.Equal(t, "pt-BR", i18n.GetLocale(i18n.SetLocale(context.Background(), " pt_BR ")))

	_, ok := i18n.LocaleFromContext(context.Background())
	assert.False(t, ok)
	locale, ok := i18n.LocaleFromContext(i18n.SetLocale(context.Background(), "de_AT"))
	assert.True(t, ok)
	assert.Equal(t, "de-AT", locale)
}

func TestTranslator_LabelsSection(t *testing.T) {
	t.Parallel()

	params := map[string]any{"property": "email", "Property": "Email"}
	const blank = "{Property} cannot be blank."

	assert.Equal(t, "E-mail address cannot be blank.", newTranslator(t).Format("en", blank, params))
	assert.Equal(t, "Email cannot be blank.", newTranslator(t, i18n.WithLabelsSection("")).Format("en", blank, params))
	assert.Equal(t, "Email cannot be blank.", newTranslator(t, i18n.WithLabelsSection("fields")).Format("en", blank, params))
}
