package i18n

import "errors"

var (
	ErrAdapterRequired     = errors.New("translation adapter is required")
	ErrInvalidTranslations = errors.New("invalid translations")
	ErrFailedToMarshalJSON = errors.New("failed to marshal translations to JSON")

	ErrJSONParsingCancelled = errors.New("json parsing cancelled")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON content")
	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")

	ErrLoadingCancelled      = errors.New("loading translations cancelled")
	ErrFailedToReadFile      = errors.New("failed to read translation file")
	ErrFailedToParseFile     = errors.New("failed to parse translation file")
	ErrEmptyFile             = errors.New("translation file is empty")
	ErrUnsupportedFormat     = errors.New("unsupported translation file format")
	ErrFailedToReadDirectory = errors.New("failed to read translation directory")
	ErrNoTranslationFiles    = errors.New("no valid translation files found")
)
