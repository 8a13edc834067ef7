package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/koustreak/bootprofile/internal/logger"
	"github.com/koustreak/bootprofile/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return New(Options{ShutdownTimeout: time.Second}, profile.DefaultProject(), logger.Nop())
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProfile(t *testing.T) {
	rec := get(t, newTestServer(), "/v1/profile/?db=mysql&tls=false&port=8081&fork=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "jdbc:mysql://localhost/filiale", body[profile.KeyDatasourceURL])
	assert.Equal(t, "false", body[profile.KeySSLEnabled])
	assert.Equal(t, "8081", body[profile.KeyServerPort])
	assert.Equal(t, "2", body[profile.KeyForkCount])
}

func TestTaskProfile(t *testing.T) {
	rec := get(t, newTestServer(), "/v1/profile/test?db=oracle&fork=4")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Task       string            `json:"task"`
		Properties map[string]string `json:"properties"`
		JVMArgs    []string          `json:"jvmArgs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "test", body.Task)
	assert.Equal(t, "4", body.Properties[profile.KeyForkCount])
	assert.Equal(t, "false", body.Properties[profile.KeySSLEnabled])
	assert.Equal(t, []string{"--enable-preview"}, body.JVMArgs)
}

func TestProfile_ClientErrors(t *testing.T) {
	tests := []struct {
		target string
		kind   string
	}{
		{"/v1/profile/?db=sqlite", "configuration"},
		{"/v1/profile/?port=http", "parse"},
		{"/v1/profile/?fork=0", "parse"},
		{"/v1/profile/deploy", "invalid_input"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, newTestServer(), tt.target)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Kind)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestServe_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newTestServer().Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
