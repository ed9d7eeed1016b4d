// Package i18n translates validation messages.
//
// A Translator loads a catalogue through a TranslationAdapter and renders
// validator message templates in a requested language. Catalogue keys are
// the untranslated templates themselves, so a missing entry still renders
// the original English message with its parameters substituted.
//
// # Catalogues
//
// Files are keyed by language at the top level. Keys may be message
// templates or nested sections addressed with dots:
//
//	de:
//	  "{Property} cannot be blank.": "{Property} darf nicht leer sein."
//	  greeting: Hallo
//	  labels:
//	    email: E-Mail-Adresse
//
// The labels section translates property labels, so the message above
// renders as "E-Mail-Adresse darf nicht leer sein." for property "email".
//
// Adapters cover in-memory maps (MapAdapter), single files (FileAdapter),
// directories on disk (NewDirectoryAdapter) and any fs.FS such as embed.FS
// (FSAdapter). JSON files are decoded with goccy/go-json and YAML files
// with yaml.v3.
//
// # Language matching
//
// Requested languages are matched with golang.org/x/text/language, so
// "de-AT" or "de_AT" resolve to a "de" catalogue. A lookup that misses the
// matched language tries the default language before falling back to the
// template.
//
// # Usage
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewDirectoryAdapter(nil, "./translations"),
//		i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//		return err
//	}
//
//	res, err := validator.New().Validate(ctx, data, rules)
//	if err != nil {
//		return err
//	}
//	messages := res.MessagesIndexedByPath(tr.Formatter("de"))
//
// FormatContext reads the locale stored with SetLocale.
package i18n
