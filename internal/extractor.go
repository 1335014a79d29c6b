package internal

import "strings"

// ExtractorSource reads a value from the request.
// It returns ("", false) when the value is absent.
type ExtractorSource = func(Context) (string, bool)

// Extractor tries sources in order and returns the first non-empty value.
//
// Example:
//
//	token := cookies.NewExtractor(
//	    cookies.FromBearerToken(),
//	    cookies.FromPrivateCookie(key, "token"),
//	)
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor over sources.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first non-empty value.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func nonEmpty(v string) (string, bool) {
	return v, v != ""
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return nonEmpty(c.Header(name))
	}
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return nonEmpty(c.Query(name))
	}
}

// FromParam reads a URL parameter.
func FromParam(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return nonEmpty(c.Param(name))
	}
}

// FromForm reads a form field.
func FromForm(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return nonEmpty(c.Form(name))
	}
}

// FromBearerToken reads the token from an "Authorization: Bearer" header.
func FromBearerToken() ExtractorSource {
	return func(c Context) (string, bool) {
		auth := c.Header("Authorization")
		const prefix = "bearer "
		if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
			return "", false
		}
		return nonEmpty(auth[len(prefix):])
	}
}

// FromCookie reads a plain cookie from the request jar.
func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.Cookie(name)
		if err != nil {
			return "", false
		}
		return nonEmpty(v)
	}
}

// FromSignedCookie reads a cookie signed with key.
func FromSignedCookie(key *Key, name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.SignedCookie(key, name)
		if err != nil {
			return "", false
		}
		return nonEmpty(v)
	}
}

// FromPrivateCookie reads a cookie encrypted with key.
func FromPrivateCookie(key *Key, name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.PrivateCookie(key, name)
		if err != nil {
			return "", false
		}
		return nonEmpty(v)
	}
}
