package i18n

import (
	"context"
	"maps"
	"path"
	"slices"
	"strings"
)

// Parser decodes one catalogue file. The result maps a language tag to its
// messages; a message is a string or a nested section of messages.
type Parser interface {
	Parse(ctx context.Context, content string) (map[string]map[string]any, error)

	// SupportsFileExtension reports whether files with ext are handled.
	// The leading dot is optional.
	SupportsFileExtension(ext string) bool
}

// catalogueFormats maps a lower-case file extension to its parser.
var catalogueFormats = map[string]func() Parser{
	".json": func() Parser { return NewJSONParser() },
	".yaml": func() Parser { return NewYAMLParser() },
	".yml":  func() Parser { return NewYAMLParser() },
}

// NewParserForFile picks a parser from the extension of name. It returns
// nil for files that hold no catalogue.
func NewParserForFile(name string) Parser {
	newParser, ok := catalogueFormats[strings.ToLower(path.Ext(name))]
	if !ok {
		return nil
	}
	return newParser()
}

// CatalogueExtensions lists the file extensions NewParserForFile recognizes.
func CatalogueExtensions() []string {
	return slices.Sorted(maps.Keys(catalogueFormats))
}
