package snapurl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestDoAttachesBearerByDefault(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	})
	defer server.Close()

	_, err := client.do(context.Background(), http.MethodGet, "/x", "tok123", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestDoSkipAuthSuppressesBearer(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	})
	defer server.Close()

	_, err := client.do(context.Background(), http.MethodGet, "/x", "tok123", nil, SkipAuth())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDoNormalizesTextBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("pong\n"))
	})
	defer server.Close()

	env, err := client.do(context.Background(), http.MethodGet, "/ping", "", nil)
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, "pong", env.Message)
}

func TestDoNormalizesBinaryBody(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	})
	defer server.Close()

	env, err := client.do(context.Background(), http.MethodGet, "/qr", "", nil)
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, payload, env.Blob)
}

func TestDoErrorKinds(t *testing.T) {
	tests := []struct {
		status   int
		body     string
		wantKind ErrorKind
		wantMsg  string
	}{
		{http.StatusUnauthorized, `{"success":false,"error":"token expired"}`, KindUnauthorized, "token expired"},
		{http.StatusBadRequest, `{"success":false,"message":"alias taken"}`, KindValidation, "alias taken"},
		{http.StatusInternalServerError, ``, KindServer, "HTTP 500"},
		{http.StatusBadGateway, `{"success":false}`, KindServer, "HTTP 502"},
	}
	for _, tt := range tests {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tt.status)
			w.Write([]byte(tt.body))
		})

		_, err := client.do(context.Background(), http.MethodGet, "/x", "", nil)
		require.Error(t, err)
		apiErr, ok := err.(*APIError)
		require.True(t, ok, "status %d", tt.status)
		assert.Equal(t, tt.wantKind, apiErr.Kind, "status %d", tt.status)
		assert.Equal(t, tt.status, apiErr.Status)
		assert.Equal(t, tt.wantMsg, apiErr.Message)

		server.Close()
	}
}

func TestDoNetworkFailureIsKindNetwork(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second)

	_, err := client.do(context.Background(), http.MethodGet, "/x", "", nil)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, apiErr.Kind)
	assert.True(t, IsUnauthorized(&APIError{Kind: KindUnauthorized}))
	assert.False(t, IsUnauthorized(apiErr))
}

func TestLoginDecodesPayload(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"user":{"id":"u1","role":"admin"},"token":"tok"}}`))
	})
	defer server.Close()

	payload, err := client.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", payload.Token)
	require.NotNil(t, payload.User)
	assert.Equal(t, "u1", payload.User.ID)
}
