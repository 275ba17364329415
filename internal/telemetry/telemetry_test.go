package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"dorm-menu-csv/internal/config"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

type collector struct {
	mu      sync.Mutex
	paths   []string
	headers []string
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.paths = append(c.paths, r.URL.Path)
	c.headers = append(c.headers, r.Header.Get("Authorization"))
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func keepGlobalProvider(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestSetupDisabled(t *testing.T) {
	keepGlobalProvider(t)
	before := otel.GetTracerProvider()

	tel, err := Setup(context.Background(), "dorm-menu-csv", config.Tracing{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Equal(t, before, otel.GetTracerProvider())
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetupExportsOnShutdown(t *testing.T) {
	keepGlobalProvider(t)
	c := &collector{}
	srv := httptest.NewServer(c)
	defer srv.Close()

	tel, err := Setup(context.Background(), "dorm-menu-csv", config.Tracing{
		Endpoint: srv.URL + "/v1/traces",
		Headers:  map[string]string{"Authorization": "Bearer abc"},
	})
	require.NoError(t, err)
	require.Same(t, tel.TracerProvider, otel.GetTracerProvider())

	_, span := otel.Tracer("telemetry_test").Start(context.Background(), "fetchPage")
	span.End()
	require.NoError(t, tel.Shutdown(context.Background()))

	c.mu.Lock()
	defer c.mu.Unlock()
	require.Equal(t, []string{"/v1/traces"}, c.paths)
	require.Equal(t, []string{"Bearer abc"}, c.headers)
}
