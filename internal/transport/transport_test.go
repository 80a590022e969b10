package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallygate-dev/tallygate/internal/tallyerr"
)

func TestSend_PostsXMLAndReturnsBody(t *testing.T) {
	var gotMethod, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`<ENVELOPE>ok</ENVELOPE>`))
	}))
	defer server.Close()

	tr := NewHTTP(server.URL, 5*time.Second, nil)
	body, err := tr.Send(context.Background(), []byte(`<ENVELOPE/>`))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/xml", gotContentType)
	assert.Equal(t, `<ENVELOPE>ok</ENVELOPE>`, string(body))
}

func TestSend_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "engine busy", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	tr := NewHTTP(server.URL, 5*time.Second, nil)
	_, err := tr.Send(context.Background(), []byte(`<ENVELOPE/>`))

	var terr *tallyerr.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, server.URL, terr.Endpoint)
	assert.Contains(t, terr.Error(), "503")
}

func TestSend_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	tr := NewHTTP(server.URL, time.Second, nil)
	_, err := tr.Send(context.Background(), []byte(`<ENVELOPE/>`))

	var terr *tallyerr.TransportError
	assert.True(t, errors.As(err, &terr))
}

func TestSend_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := NewHTTP(server.URL, 5*time.Second, nil)
	_, err := tr.Send(ctx, []byte(`<ENVELOPE/>`))

	var terr *tallyerr.TransportError
	require.True(t, errors.As(err, &terr))
	assert.True(t, errors.Is(err, context.Canceled))
}
