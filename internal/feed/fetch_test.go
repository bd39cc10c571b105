package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_SendsValidatorsOnSecondRequest(t *testing.T) {
	var sawIfNoneMatch string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawIfNoneMatch = r.Header.Get("If-None-Match")
		if sawIfNoneMatch == `"abc"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"abc"`)
		w.Write([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"))
	}))
	defer srv.Close()

	f := NewFetcher()

	first, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, first.NotModified)
	assert.NotEmpty(t, first.Body)

	second, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, second.NotModified)
	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, `"abc"`, sawIfNoneMatch)
}

func TestFetcher_RejectsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := NewFetcher().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestFetcher_RejectsInvalidURL(t *testing.T) {
	_, err := NewFetcher().Fetch(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestRedactURL_StripsQuery(t *testing.T) {
	got := redactURL("https://example.com/cal.ics?token=secret123#frag")
	assert.Equal(t, "https://example.com/cal.ics", got)
	assert.NotContains(t, got, "secret123")
}
