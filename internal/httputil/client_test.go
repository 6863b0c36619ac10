package httputil

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDecodesBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		switch r.URL.Path {
		case "/gzip":
			zw := gzip.NewWriter(&buf)
			zw.Write([]byte("gzipped"))
			zw.Close()
			w.Header().Set("Content-Encoding", "gzip")
		case "/br":
			bw := brotli.NewWriter(&buf)
			bw.Write([]byte("brotlied"))
			bw.Close()
			w.Header().Set("Content-Encoding", "br")
		default:
			buf.WriteString("plain")
		}
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	client := NewHTTPClient(nil, 0)
	cases := map[string]string{"/gzip": "gzipped", "/br": "brotlied", "/": "plain"}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			h := http.Header{}
			// set explicitly so net/http does not transparently decode
			h.Set("Accept-Encoding", "gzip, br")
			got, err := Fetch(context.Background(), client, http.MethodGet, srv.URL+path, h, nil)
			require.NoError(t, err)
			assert.Equal(t, want, string(got))
		})
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), NewHTTPClient(nil, 0), http.MethodGet, srv.URL, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestWatchPageHeaders(t *testing.T) {
	assert.Equal(t, "en-US,en;q=0.9", WatchPageHeaders("").Get("Accept-Language"))
	assert.Equal(t, "de,en;q=0.8", WatchPageHeaders("de").Get("Accept-Language"))
}
