package translation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPoEditor(t *testing.T, h http.HandlerFunc) *PoEditor {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p := NewPoEditor(srv.URL, "tok", srv.Client())
	p.backoff = time.Millisecond
	return p
}

func TestListLanguages(t *testing.T) {
	p := newTestPoEditor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/languages/list", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "tok", r.PostForm.Get("api_token"))
		assert.Equal(t, "123", r.PostForm.Get("id"))
		fmt.Fprint(w, `{"response":{"status":"success","code":"200","message":"OK"},
			"result":{"languages":[{"name":"English","code":"en"},{"name":"French","code":"fr"}]}}`)
	})

	langs, err := p.ListLanguages(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr"}, langs)
}

func TestListTerms_SkipsNonStringContent(t *testing.T) {
	p := newTestPoEditor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/terms/list", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "fr", r.PostForm.Get("language"))
		fmt.Fprint(w, `{"response":{"status":"success","code":"200","message":"OK"},
			"result":{"terms":[
				{"term":"t1","translation":{"content":"Bonjour"}},
				{"term":"t2","translation":{"content":{"one":"a","other":"b"}}},
				{"term":"t3","translation":{"content":""}}
			]}}`)
	})

	terms, err := p.ListTerms(context.Background(), "123", "fr")
	require.NoError(t, err)
	assert.Equal(t, []Term{{Term: "t1", Translation: "Bonjour"}, {Term: "t3", Translation: ""}}, terms)
}

func TestCall_APIFailure(t *testing.T) {
	p := newTestPoEditor(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response":{"status":"fail","code":"4011","message":"Invalid API Token"}}`)
	})

	_, err := p.ListLanguages(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Token")
}

func TestCall_RetriesTransientStatus(t *testing.T) {
	var calls int32
	p := newTestPoEditor(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"response":{"status":"success"},"result":{"languages":[]}}`)
	})

	langs, err := p.ListLanguages(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, langs)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestCall_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	p := newTestPoEditor(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := p.ListLanguages(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, int32(maxRetries+1), atomic.LoadInt32(&calls))
}

func TestCall_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	p := newTestPoEditor(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := p.ListTerms(context.Background(), "1", "en")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestInvalidProject(t *testing.T) {
	p := NewPoEditor("", "tok", nil)
	assert.Equal(t, DefaultPoEditorEndpoint, p.endpoint)

	_, err := p.ListLanguages(context.Background(), "not-a-number")
	assert.Error(t, err)
	_, err = p.ListTerms(context.Background(), "", "en")
	assert.Error(t, err)
}
