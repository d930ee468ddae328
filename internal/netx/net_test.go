package netx

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.HandlerFunc) *http.Response {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestReadBody_OK(t *testing.T) {
	resp := get(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "payload")
	})

	body, err := ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))
}

func TestReadBody_StatusError(t *testing.T) {
	resp := get(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	})

	_, err := ReadBody(resp)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Code)
	assert.Equal(t, "upstream down", se.Body)
	assert.True(t, se.Transient())
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "body: upstream down")
}

func TestReadBody_TruncatesErrorBody(t *testing.T) {
	resp := get(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, strings.Repeat("x", 4096))
	})

	_, err := ReadBody(resp)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Len(t, se.Body, maxErrorBody)
	assert.False(t, se.Transient())
}

func TestStatusError_NoBody(t *testing.T) {
	err := &StatusError{Code: 404, Status: "404 Not Found"}
	assert.Equal(t, "unexpected status 404 Not Found", err.Error())
	assert.False(t, err.Transient())
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(200))
	assert.True(t, IsSuccess(204))
	assert.False(t, IsSuccess(199))
	assert.False(t, IsSuccess(302))
	assert.False(t, IsSuccess(500))
}
