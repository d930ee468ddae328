package instance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticContext(t *testing.T) {
	s := NewStaticContext("2.38.1", []string{"/dhis-web-maps/", " /api/apps/x/index.html "})
	ctx := context.Background()

	v, err := s.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2.38.1", v)

	assert.True(t, s.IsAppInstalledByURL(ctx, ""))
	assert.True(t, s.IsAppInstalledByURL(ctx, "/dhis-web-maps/"))
	assert.True(t, s.IsAppInstalledByURL(ctx, "/api/apps/x/index.html"))
	assert.False(t, s.IsAppInstalledByURL(ctx, "/dhis-web-capture/"))
}

func newDHIS2Server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "district" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/system/info":
			_, _ = w.Write([]byte(`{"version":"2.37.4","revision":"abc"}`))
		case "/dhis-web-maps/":
			_, _ = w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDHIS2_Version(t *testing.T) {
	srv := newDHIS2Server(t)

	v, err := NewDHIS2(srv.URL+"/", "admin", "district", srv.Client()).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.37.4", v)

	_, err = NewDHIS2(srv.URL, "admin", "wrong", srv.Client()).Version(context.Background())
	assert.Error(t, err)
}

func TestDHIS2_IsAppInstalledByURL(t *testing.T) {
	srv := newDHIS2Server(t)
	d := NewDHIS2(srv.URL, "admin", "district", srv.Client())
	ctx := context.Background()

	assert.True(t, d.IsAppInstalledByURL(ctx, ""))
	assert.True(t, d.IsAppInstalledByURL(ctx, "/dhis-web-maps/"))
	assert.True(t, d.IsAppInstalledByURL(ctx, "dhis-web-maps/"))
	assert.False(t, d.IsAppInstalledByURL(ctx, "/dhis-web-capture/"))

	down := NewDHIS2("http://127.0.0.1:1", "", "", nil)
	assert.False(t, down.IsAppInstalledByURL(ctx, "/dhis-web-maps/"))
}
