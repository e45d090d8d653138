package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":               ":8080",
		"9090":           ":9090",
		":9090":          ":9090",
		"127.0.0.1:9090": "127.0.0.1:9090",
		" 7000 ":         ":7000",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeAddr(in), "input %q", in)
	}
}

func TestServer_RunAndShutdown(t *testing.T) {
	s := &Server{}
	done := make(chan error, 1)
	go func() {
		done <- s.Run("127.0.0.1:0", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "pong")
		}))
	}()

	require.Eventually(t, func() bool { return s.Addr() != "" }, time.Second, 5*time.Millisecond)

	resp, err := http.Get("http://" + s.Addr() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err, "clean shutdown is not an error")
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestServer_ShutdownBeforeRun(t *testing.T) {
	assert.NoError(t, (&Server{}).Shutdown(context.Background()))
}

func TestServer_RunBadAddress(t *testing.T) {
	assert.Error(t, (&Server{}).Run("127.0.0.1:notaport", http.NotFoundHandler()))
}
