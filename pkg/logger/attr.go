package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Property records the validated property under the key "property".
// The whole-value property "" is logged as is.
func Property(name string) slog.Attr {
	return slog.String("property", name)
}

// Check records a check name under the key "check".
func Check(name string) slog.Attr {
	return slog.String("check", name)
}

// Locale records a language tag under the key "locale".
func Locale(lang string) slog.Attr {
	return slog.String("locale", lang)
}

// PropertyCount records the number of validated properties under the key "properties".
func PropertyCount(n int) slog.Attr {
	return slog.Int("properties", n)
}

// ErrorCount records the number of validation errors under the key "error_count".
func ErrorCount(n int) slog.Attr {
	return slog.Int("error_count", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
