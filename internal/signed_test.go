package internal_test

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookies/internal"
	"github.com/dmitrymomot/cookies/pkg/logger"
)

func TestSignedJar(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		key := mustKey(t)
		jar := internal.NewJar(nil)
		jar.Signed(key).Add(&http.Cookie{Name: "user", Value: "alice", Path: "/"})

		got := jar.Signed(key).Get("user")
		require.NotNil(t, got)
		assert.Equal(t, "alice", got.Value)
		assert.Equal(t, "/", got.Path)
	})

	t.Run("raw value is tagged but readable", func(t *testing.T) {
		t.Parallel()

		key := mustKey(t)
		jar := internal.NewJar(nil)
		jar.Signed(key).Add(&http.Cookie{Name: "user", Value: "alice"})

		raw := jar.Get("user")
		require.NotNil(t, raw)
		assert.NotEqual(t, "alice", raw.Value)
		assert.True(t, strings.HasSuffix(raw.Value, "alice"))
		assert.Len(t, raw.Value, 44+len("alice"))
	})

	t.Run("survives a request round trip", func(t *testing.T) {
		t.Parallel()

		key := mustKey(t)
		out := internal.NewJar(nil)
		out.Signed(key).Add(&http.Cookie{Name: "user", Value: "alice"})
		values, _ := out.SetCookieHeaders()
		require.Len(t, values, 1)

		in := internal.NewJar([]string{strings.SplitN(values[0], ";", 2)[0]})
		got := in.Signed(key).Get("user")
		require.NotNil(t, got)
		assert.Equal(t, "alice", got.Value)
	})

	t.Run("unsigned value is absent", func(t *testing.T) {
		t.Parallel()

		jar := internal.NewJar([]string{"user=alice"})
		assert.Nil(t, jar.Signed(mustKey(t)).Get("user"))
	})

	t.Run("wrong key is absent", func(t *testing.T) {
		t.Parallel()

		jar := internal.NewJar(nil)
		jar.Signed(mustKey(t)).Add(&http.Cookie{Name: "user", Value: "alice"})
		assert.Nil(t, jar.Signed(mustKey(t)).Get("user"))
	})

	t.Run("tampered value is absent", func(t *testing.T) {
		t.Parallel()

		key := mustKey(t)
		jar := internal.NewJar(nil)
		jar.Signed(key).Add(&http.Cookie{Name: "role", Value: "user"})

		raw := jar.Get("role")
		raw.Value = strings.TrimSuffix(raw.Value, "user") + "admin"
		jar.Add(raw)
		assert.Nil(t, jar.Signed(key).Get("role"))
	})

	t.Run("tag is bound to the name", func(t *testing.T) {
		t.Parallel()

		key := mustKey(t)
		jar := internal.NewJar(nil)
		jar.Signed(key).Add(&http.Cookie{Name: "a", Value: "v"})
		jar.Add(&http.Cookie{Name: "b", Value: jar.Get("a").Value})
		assert.Nil(t, jar.Signed(key).Get("b"))
	})

	t.Run("remove forwards to parent", func(t *testing.T) {
		t.Parallel()

		key := mustKey(t)
		jar := internal.NewJar([]string{"user=x"})
		jar.Signed(key).RemoveByName("user")

		assert.Nil(t, jar.Get("user"))
		values, _ := jar.SetCookieHeaders()
		assert.Equal(t, []string{"user=; Max-Age=0"}, values)
	})

	t.Run("nil key", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		jar := internal.NewJar(nil, internal.WithJarLogger(logger.New(logger.WithOutput(&buf))))
		jar.Signed(nil).Add(&http.Cookie{Name: "user", Value: "alice"})
		assert.False(t, jar.Changed())
		assert.Nil(t, jar.Signed(nil).Get("user"))
		assert.Contains(t, buf.String(), `"msg":"sign cookie"`)
		assert.Contains(t, buf.String(), `"cookie":"user"`)
		assert.Contains(t, buf.String(), internal.ErrNilKey.Error())
		assert.NotContains(t, buf.String(), "alice")
	})
}
