package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"":               ":8080",
		"8080":           ":8080",
		":9090":          ":9090",
		" 7000 ":         ":7000",
		"127.0.0.1:8081": "127.0.0.1:8081",
	}
	for in, want := range cases {
		assert.Equal(t, want, Addr(in), "input %q", in)
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	s := New(Options{WriteTimeout: 3 * time.Second})
	hs := s.newHTTPServer(":0", http.NotFoundHandler())

	assert.Equal(t, defaultReadHeaderTimeout, hs.ReadHeaderTimeout)
	assert.Equal(t, 3*time.Second, hs.WriteTimeout)
	assert.Equal(t, defaultIdleTimeout, hs.IdleTimeout)
	assert.Equal(t, maxHeaderBytes, hs.MaxHeaderBytes)
}

func TestServe_ShutdownReturnsNil(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(Options{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	done := make(chan error, 1)
	go func() { done <- s.Serve(ln, handler) }()

	resp, err := http.Get("http://" + ln.Addr().String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	require.NoError(t, <-done)
}

func TestShutdown_BeforeRunIsNoop(t *testing.T) {
	assert.NoError(t, New(Options{}).Shutdown(context.Background()))
}
