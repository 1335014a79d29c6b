package logger

import "log/slog"

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// CookieName records a cookie name under "cookie". Never log cookie values.
func CookieName(name string) slog.Attr {
	return slog.String("cookie", name)
}

// Count records a count under "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
