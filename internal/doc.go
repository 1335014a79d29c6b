// Package internal implements the cookie jar, its signed and private views,
// the cookie manager middleware and the small application host around them.
//
// This package is internal. Import "github.com/dmitrymomot/cookies", which
// re-exports the public API.
//
// # Jar
//
// A Jar is created per request from the raw Cookie header values. Parsing is
// deferred until the first Get, List, Add or Remove and happens once. Every
// Add and Remove marks the jar as changed; reads never do:
//
//	jar, err := c.Cookies()
//	if err != nil {
//	    return err
//	}
//	visits := 0
//	if ck := jar.Get("visits"); ck != nil {
//	    visits, _ = strconv.Atoi(ck.Value)
//	}
//	jar.Add(&http.Cookie{Name: "visits", Value: strconv.Itoa(visits + 1)})
//
// Headers the client sent that are not valid UTF-8 are ignored, as are
// segments that do not parse as name=value. Neither fails the request.
//
// # Signed and Private Views
//
// Signed and Private share the parent jar's namespace. A signed value is
// HMAC-SHA256 tagged and still readable by the client; a private value is
// AES-256-GCM encrypted with the cookie name as additional data. Reading with
// the wrong key, or reading a value that was never transformed, returns nil:
//
//	key, _ := cookies.DeriveKey(secret)
//	jar.Private(key).Add(&http.Cookie{Name: "uid", Value: "42"})
//	uid := jar.Private(key).Get("uid")
//
// # Manager
//
// The Manager attaches a Jar to every request and appends one Set-Cookie
// header per changed cookie when the handler succeeds. Removals are sent as
// an empty value with Max-Age=0. If the handler returns an error, or an error
// handler renders a failure, the jar's changes are discarded.
//
// Handlers reach the jar through Context.Cookies, or FromRequest for plain
// net/http handlers. Both return ErrCookiesNotInstalled when the manager did
// not run.
//
// # Application
//
// App is a chi based host with the same HandlerFunc/Middleware pipeline the
// manager plugs into:
//
//	app := internal.New(
//	    internal.WithCookieManager(),
//	    internal.WithHandlers(&visitHandler{}),
//	)
//	err := app.Run(":8080", internal.Logger(log))
package internal
