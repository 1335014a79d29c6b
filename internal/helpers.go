package internal

import "strconv"

// Scalar lists the types the typed value helpers can parse.
type Scalar interface {
	string | int | int64 | float64 | bool
}

// ContextValue returns the request context value for key as T.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param returns a URL parameter parsed as T, or the zero value.
func Param[T Scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Param(name))
	return v
}

// QueryDefault returns a query parameter parsed as T, or def when it is
// missing or malformed.
func QueryDefault[T Scalar](c Context, name string, def T) T {
	return orDefault(c.Query(name), nil, def)
}

// CookieValue returns a plain cookie parsed as T, or def when the cookie is
// missing, malformed, or the cookie manager is not installed.
//
// Example:
//
//	visits := cookies.CookieValue(c, "visits", 0)
func CookieValue[T Scalar](c Context, name string, def T) T {
	raw, err := c.Cookie(name)
	return orDefault(raw, err, def)
}

// SignedCookieValue is CookieValue for cookies signed with key.
func SignedCookieValue[T Scalar](c Context, key *Key, name string, def T) T {
	raw, err := c.SignedCookie(key, name)
	return orDefault(raw, err, def)
}

// PrivateCookieValue is CookieValue for cookies encrypted with key.
func PrivateCookieValue[T Scalar](c Context, key *Key, name string, def T) T {
	raw, err := c.PrivateCookie(key, name)
	return orDefault(raw, err, def)
}

func orDefault[T Scalar](raw string, err error, def T) T {
	if err != nil || raw == "" {
		return def
	}
	if v, ok := parseScalar[T](raw); ok {
		return v
	}
	return def
}

func parseScalar[T Scalar](raw string) (T, bool) {
	var out T
	var err error
	switch p := any(&out).(type) {
	case *string:
		*p = raw
	case *int:
		*p, err = strconv.Atoi(raw)
	case *int64:
		*p, err = strconv.ParseInt(raw, 10, 64)
	case *float64:
		*p, err = strconv.ParseFloat(raw, 64)
	case *bool:
		*p, err = strconv.ParseBool(raw)
	}
	if err != nil {
		var zero T
		return zero, false
	}
	return out, true
}
