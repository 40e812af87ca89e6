package logger

import (
	"log/slog"
	"strconv"
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

// EntityID records the record identifier under the key "entity_id".
// If id is empty, it returns an empty Attr.
func EntityID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("entity_id", id)
}

// Binding records a source/target field pair as the group "binding".
func Binding(source, target string) slog.Attr {
	return Group("binding",
		slog.String("source", source),
		slog.String("target", target),
	)
}

// ShortName records an assigned short name under the key "short_name".
func ShortName(value string) slog.Attr {
	return slog.String("short_name", value)
}

// Count records a named counter.
func Count(name string, n int) slog.Attr {
	return slog.Int(name, n)
}

// Store records the store backend under the key "store".
func Store(kind string) slog.Attr {
	return slog.String("store", kind)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
