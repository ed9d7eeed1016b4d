package i18n

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// JSONParser reads catalogues shaped as {"<lang>": {"<key>": "<message>"}}.
type JSONParser struct{}

// NewJSONParser creates a new JSONParser instance.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// Parse implements Parser.
func (p *JSONParser) Parse(ctx context.Context, content string) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrJSONParsingCancelled, err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}

	result := make(map[string]map[string]any, len(data))
	for lang, translations := range data {
		transMap, ok := translations.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected object, got %T", ErrFailedToParseJSON, lang, translations)
		}
		result[lang] = transMap
	}
	return result, nil
}

// SupportsFileExtension reports whether ext is "json", with or without the dot.
func (p *JSONParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "json")
}
